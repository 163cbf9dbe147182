package audio

import (
	"math"
	"math/rand"
)

// cueDurations are the generated sample lengths in seconds.
var cueDurations = map[Cue]float64{
	CueLaser:         0.15,
	CueExplosion:     0.8,
	CueThrust:        0.5,
	CueAsteroidBreak: 0.4,
	CuePowerUp:       0.6,
	CueAmbient:       10,
}

// synthesize renders cue as mono samples at rate. Unknown cues yield nil.
func synthesize(cue Cue, rate int, rng *rand.Rand) []float64 {
	duration, ok := cueDurations[cue]
	if !ok {
		return nil
	}
	n := int(float64(rate) * duration)
	out := make([]float64, n)
	noise := func() float64 { return (rng.Float64() - 0.5) * 2 }

	for i := range out {
		t := float64(i) / float64(rate)
		switch cue {
		case CueLaser:
			freq := 800 - t*600
			out[i] = math.Sin(2*math.Pi*freq*t) * math.Exp(-t*8) * 0.3
		case CueExplosion:
			low := math.Sin(2 * math.Pi * 60 * t)
			out[i] = (noise()*0.7 + low*0.3) * math.Exp(-t*2) * 0.4
		case CueThrust:
			mod := 1 + math.Sin(2*math.Pi*30*t)*0.3
			wave := math.Sin(2 * math.Pi * 120 * mod * t)
			env := math.Min(1, t*10) * math.Exp(-t*0.5)
			out[i] = (wave + noise()*0.15) * env * 0.2
		case CueAsteroidBreak:
			f1 := 200 * math.Exp(-t*3)
			f2 := 150 * math.Exp(-t*2)
			wave := math.Sin(2*math.Pi*f1*t) + math.Sin(2*math.Pi*f2*t)
			out[i] = (wave*0.4 + noise()*0.6) * math.Exp(-t*4) * 0.3
		case CuePowerUp:
			freq := 200 + t*400
			out[i] = math.Sin(2*math.Pi*freq*t) * math.Sin(math.Pi*t/duration) * 0.4
		case CueAmbient:
			out[i] = math.Sin(2*math.Pi*40*t)*0.1 +
				math.Sin(2*math.Pi*60*t)*0.08 +
				math.Sin(2*math.Pi*35*t)*0.06
		}
	}
	return out
}

package audio

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// Config holds the audio device and mixing settings.
type Config struct {
	SampleRate    int
	MasterVolume  float64
	EffectsVolume float64
	MusicVolume   float64
}

// DefaultConfig returns the stock volumes at 48 kHz.
func DefaultConfig() Config {
	return Config{
		SampleRate:    48000,
		MasterVolume:  0.7,
		EffectsVolume: 0.8,
		MusicVolume:   0.3,
	}
}

// Manager plays cues through the system speaker. Until Init succeeds every
// call is a no-op, so the game can run without an audio device.
//
// The mixing graph is effects and music mixers, each behind its own volume,
// summed into a master volume that feeds the speaker.
type Manager struct {
	mu          sync.Mutex
	cfg         Config
	rate        beep.SampleRate
	sounds      map[Cue]*beep.Buffer
	effectsMix  *beep.Mixer
	musicMix    *beep.Mixer
	master      *effects.Volume
	effectsVol  *effects.Volume
	musicVol    *effects.Volume
	initialized bool
	muted       bool
	suspended   bool
	logger      *log.Logger
}

// NewManager creates an uninitialized manager.
func NewManager(cfg Config, logger *log.Logger) *Manager {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	if logger == nil {
		logger = log.Default()
	}
	cfg.MasterVolume = clamp01(cfg.MasterVolume)
	cfg.EffectsVolume = clamp01(cfg.EffectsVolume)
	cfg.MusicVolume = clamp01(cfg.MusicVolume)
	return &Manager{
		cfg:    cfg,
		rate:   beep.SampleRate(cfg.SampleRate),
		sounds: make(map[Cue]*beep.Buffer),
		logger: logger,
	}
}

// Init opens the speaker and renders every cue. Calling it again is a no-op.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(m.rate, m.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	format := beep.Format{SampleRate: m.rate, NumChannels: 2, Precision: 2}
	for _, cue := range Cues {
		m.sounds[cue] = render(format, synthesize(cue, int(m.rate), rng))
	}

	m.effectsMix = &beep.Mixer{}
	m.musicMix = &beep.Mixer{}
	m.effectsVol = newVolume(m.effectsMix, m.cfg.EffectsVolume)
	m.musicVol = newVolume(m.musicMix, m.cfg.MusicVolume)
	root := &beep.Mixer{}
	root.Add(m.effectsVol, m.musicVol)
	m.master = newVolume(root, m.cfg.MasterVolume)

	speaker.Play(m.master)
	m.initialized = true
	m.logger.Info("audio initialized", "rate", int(m.rate), "cues", len(m.sounds))
	return nil
}

// render copies mono samples into a stereo buffer.
func render(format beep.Format, samples []float64) *beep.Buffer {
	buf := beep.NewBuffer(format)
	pos := 0
	buf.Append(beep.StreamerFunc(func(out [][2]float64) (int, bool) {
		if pos >= len(samples) {
			return 0, false
		}
		n := copy2(out, samples[pos:])
		pos += n
		return n, true
	}))
	return buf
}

func copy2(dst [][2]float64, src []float64) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i][0] = src[i]
		dst[i][1] = src[i]
	}
	return n
}

// newVolume wraps s in a linear gain using a base-2 volume control.
func newVolume(s beep.Streamer, gain float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setGain(v, gain)
	return v
}

func setGain(v *effects.Volume, gain float64) {
	if gain <= 0 {
		v.Silent = true
		v.Volume = 0
		return
	}
	v.Silent = false
	v.Volume = math.Log2(gain)
}

// Play starts cue. It returns a handle for looping sounds and nil otherwise,
// and nil whenever audio is unavailable, muted or the cue is unknown.
func (m *Manager) Play(cue Cue, opts PlayOptions) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.muted {
		return nil
	}
	buf, ok := m.sounds[cue]
	if !ok {
		m.logger.Warn("unknown sound cue", "cue", cue)
		return nil
	}

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if opts.Loop {
		s = beep.Loop(-1, buf.Streamer(0, buf.Len()))
	}
	if opts.Pitch > 0 && opts.Pitch != 1 {
		s = beep.ResampleRatio(3, opts.Pitch, s)
	}
	ctrl := &beep.Ctrl{Streamer: newVolume(s, opts.Volume)}

	mix := m.effectsMix
	if cue == CueAmbient {
		mix = m.musicMix
	}
	speaker.Lock()
	mix.Add(ctrl)
	speaker.Unlock()

	if !opts.Loop {
		return nil
	}
	return &handle{ctrl: ctrl}
}

type handle struct {
	ctrl *beep.Ctrl
}

// Stop ends the sound. The mixer drops it on its next pass.
func (h *handle) Stop() {
	speaker.Lock()
	h.ctrl.Streamer = nil
	speaker.Unlock()
}

// SetMasterVolume changes the overall gain, clamped to 0..1.
func (m *Manager) SetMasterVolume(v float64) {
	m.setVolume(&m.cfg.MasterVolume, func() *effects.Volume { return m.master }, v)
}

// SetEffectsVolume changes the gain of every cue except ambient.
func (m *Manager) SetEffectsVolume(v float64) {
	m.setVolume(&m.cfg.EffectsVolume, func() *effects.Volume { return m.effectsVol }, v)
}

// SetMusicVolume changes the ambient gain.
func (m *Manager) SetMusicVolume(v float64) {
	m.setVolume(&m.cfg.MusicVolume, func() *effects.Volume { return m.musicVol }, v)
}

func (m *Manager) setVolume(field *float64, node func() *effects.Volume, v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	*field = clamp01(v)
	if !m.initialized {
		return
	}
	speaker.Lock()
	switch {
	case m.muted && node() == m.master:
		setGain(m.master, 0)
	default:
		setGain(node(), *field)
	}
	speaker.Unlock()
}

// Volumes returns the current master, effects and music gains.
func (m *Manager) Volumes() (master, effectsGain, music float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg.MasterVolume, m.cfg.EffectsVolume, m.cfg.MusicVolume
}

// Mute silences all output and makes Play a no-op.
func (m *Manager) Mute() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.muted = true
	if m.initialized {
		speaker.Lock()
		setGain(m.master, 0)
		speaker.Unlock()
	}
}

// Unmute restores the master volume.
func (m *Manager) Unmute() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.muted = false
	if m.initialized {
		speaker.Lock()
		setGain(m.master, m.cfg.MasterVolume)
		speaker.Unlock()
	}
}

// Suspend pauses the speaker, for example while the game is paused.
func (m *Manager) Suspend() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.suspended {
		return
	}
	if err := speaker.Suspend(); err != nil {
		m.logger.Warn("suspend audio", "err", err)
		return
	}
	m.suspended = true
}

// Resume undoes Suspend.
func (m *Manager) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || !m.suspended {
		return
	}
	if err := speaker.Resume(); err != nil {
		m.logger.Warn("resume audio", "err", err)
		return
	}
	m.suspended = false
}

// Close stops every sound. The manager stays usable as a no-op afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	m.initialized = false
}

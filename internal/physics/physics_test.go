package physics

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestVectorInPlaceAndValueForms(t *testing.T) {
	v := Vec(3, 4)
	w := v.Added(Vec(1, 1))
	if v != Vec(3, 4) {
		t.Fatalf("Added mutated receiver: %v", v)
	}
	if w != Vec(4, 5) {
		t.Fatalf("Added = %v, want (4, 5)", w)
	}

	v.Add(Vec(1, 1)).Scale(2)
	if v != Vec(8, 10) {
		t.Fatalf("in-place chain = %v, want (8, 10)", v)
	}

	s := v.Scaled(0.5)
	if s != Vec(4, 5) || v != Vec(8, 10) {
		t.Fatalf("Scaled = %v (receiver %v)", s, v)
	}

	v.Subtract(Vec(8, 10))
	if v != (Vector2{}) {
		t.Fatalf("Subtract = %v, want zero", v)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vector2
		want Vector2
	}{
		{"axis", Vec(0, 5), Vec(0, 1)},
		{"diagonal", Vec(3, 4), Vec(0.6, 0.8)},
		{"zero stays zero", Vec(0, 0), Vec(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalized()
			if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) {
				t.Errorf("Normalized(%v) = %v, want %v", tt.in, got, tt.want)
			}
			v := tt.in
			v.Normalize()
			if v != got {
				t.Errorf("Normalize in place = %v, want %v", v, got)
			}
		})
	}
}

func TestRotateAndFromAngle(t *testing.T) {
	v := Vec(1, 0).Rotated(math.Pi / 2)
	if !approx(v.X, 0) || !approx(v.Y, 1) {
		t.Fatalf("Rotated = %v, want (0, 1)", v)
	}

	f := FromAngle(-math.Pi / 2)
	if !approx(f.X, 0) || !approx(f.Y, -1) {
		t.Fatalf("FromAngle(-pi/2) = %v", f)
	}
	if !approx(f.Length(), 1) {
		t.Fatalf("FromAngle length = %v", f.Length())
	}
	if !approx(Vec(0, 0).AngleTo(Vec(0, 2)), math.Pi/2) {
		t.Fatal("AngleTo mismatch")
	}
}

func TestLerpAndDistance(t *testing.T) {
	a, b := Vec(0, 0), Vec(10, -20)
	mid := Lerp(a, b, 0.25)
	if mid != Vec(2.5, -5) {
		t.Fatalf("Lerp = %v", mid)
	}
	if got := Distance(Vec(0, 0), Vec(3, 4)); !approx(got, 5) {
		t.Fatalf("Distance = %v", got)
	}
	if got := DistanceSquared(Vec(1, 1), Vec(4, 5)); !approx(got, 25) {
		t.Fatalf("DistanceSquared = %v", got)
	}
	if Vec(1, 2).Dot(Vec(3, 4)) != 11 {
		t.Fatal("Dot mismatch")
	}
}

type circle struct {
	p Vector2
	r float64
}

func (c circle) Bounds() (Vector2, float64) { return c.p, c.r }

func TestCollidesSymmetric(t *testing.T) {
	tests := []struct {
		name string
		a, b circle
		want bool
	}{
		{"overlapping", circle{Vec(0, 0), 10}, circle{Vec(15, 0), 10}, true},
		{"touching is not a hit", circle{Vec(0, 0), 10}, circle{Vec(20, 0), 10}, false},
		{"apart", circle{Vec(0, 0), 3}, circle{Vec(100, 100), 40}, false},
		{"contained", circle{Vec(5, 5), 40}, circle{Vec(6, 6), 3}, true},
		{"diagonal just inside", circle{Vec(0, 0), 12}, circle{Vec(30, 40), 38.01}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab := Collides(tt.a, tt.b)
			ba := Collides(tt.b, tt.a)
			if ab != ba {
				t.Fatalf("asymmetric: %v vs %v", ab, ba)
			}
			byDistance := Distance(tt.a.p, tt.b.p) < tt.a.r+tt.b.r
			if ab != byDistance || ab != tt.want {
				t.Fatalf("Collides = %v, distance rule = %v, want %v", ab, byDistance, tt.want)
			}
		})
	}
}

func TestPointInCircleInclusive(t *testing.T) {
	if !PointInCircle(Vec(10, 0), Vec(0, 0), 10) {
		t.Fatal("point on the rim should be inside")
	}
	if PointInCircle(Vec(10.01, 0), Vec(0, 0), 10) {
		t.Fatal("point past the rim should be outside")
	}
}

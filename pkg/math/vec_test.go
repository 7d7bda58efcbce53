package math

import (
	gomath "math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{2, 3, 6}
	if got := v.Length(); got != 7 {
		t.Errorf("Vec3.Length() = %v, want 7", got)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	v := Vec3{}
	if got := v.Normalize(); got != (Vec3{}) {
		t.Errorf("normalizing the zero vector should return zero, got %v", got)
	}
}

func TestVec3RotatedY(t *testing.T) {
	v := Vec3{1, 0, 0}
	got := v.RotatedY(float32(gomath.Pi / 2))
	want := Vec3{0, 0, -1}
	if got.Distance(want) > 1e-6 {
		t.Errorf("Vec3.RotatedY(pi/2) = %v, want %v", got, want)
	}
	// A full turn must come back to the start.
	got = v.RotatedY(float32(2 * gomath.Pi))
	if got.Distance(v) > 1e-6 {
		t.Errorf("Vec3.RotatedY(2pi) = %v, want %v", got, v)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -3}
	b := Vec3{2, -4, 0}
	if got := a.Min(b); got != (Vec3{1, -4, -3}) {
		t.Errorf("Vec3.Min() = %v", got)
	}
	if got := a.Max(b); got != (Vec3{2, 5, 0}) {
		t.Errorf("Vec3.Max() = %v", got)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	l := v.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}
}

package math

import (
	gomath "math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)
	// Translation lands in column 4 (indices 12, 13, 14).
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformPoint(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}
}

func TestTranslatedScaled(t *testing.T) {
	m := Identity().Translated(1, 2, 3).Scaled(2, 2, 2)
	got := m.TransformPoint(Vec3{1, 0, 0})
	want := Vec3{3, 2, 3}
	if got != want {
		t.Errorf("Translated+Scaled transform: got %v, want %v", got, want)
	}
}

func TestInverse(t *testing.T) {
	m := Translate(3, -2, 7).Mul(Scale(2, 4, 0.5))
	inv := m.Inverse()
	result := m.Mul(inv)
	id := Identity()

	for i := 0; i < 16; i++ {
		if diff := result[i] - id[i]; diff > 1e-5 || diff < -1e-5 {
			t.Errorf("M * M^-1 element %d: got %f, want %f", i, result[i], id[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	var zero Mat4
	if zero.Inverse() != Identity() {
		t.Error("inverse of a singular matrix should fall back to identity")
	}
}

func TestNormalMatrixUniformScale(t *testing.T) {
	// For a pure rotation the normal matrix equals the upper-left 3x3.
	m := RotateY(float32(gomath.Pi / 3))
	nm := m.NormalMatrix()
	m3 := m.Mat3x3()
	for i := 0; i < 9; i++ {
		if diff := nm[i] - m3[i]; diff > 1e-5 || diff < -1e-5 {
			t.Errorf("NormalMatrix element %d: got %f, want %f", i, nm[i], m3[i])
		}
	}
}

func TestLookAtOrigin(t *testing.T) {
	// Camera at +Z looking at the origin maps the origin in front of the camera.
	view := LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})
	p := view.TransformPoint(Vec3{})
	if p.Z >= 0 {
		t.Errorf("origin should be in front of the camera (negative Z), got %v", p)
	}
}

func TestPerspectiveW(t *testing.T) {
	proj := Perspective(float32(gomath.Pi/3), 16.0/9.0, 0.5, 1000)
	if proj[11] != -1 {
		t.Errorf("perspective matrix should carry -1 at [11], got %f", proj[11])
	}
}

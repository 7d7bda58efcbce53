// Package camera provides the free-flying first-person camera.
package camera

import (
	gomath "math"

	"github.com/Faultbox/terrascape/pkg/math"
)

// Pitch is clamped so the view direction never reaches the vertical axis,
// where the yaw-derived basis would collapse.
const (
	MinPitch = -70.0
	MaxPitch = 70.0
)

// FlyCamera flies freely through the scene. Orientation is tracked as yaw and
// pitch in degrees; the view direction is recomputed from them on every
// rotation.
type FlyCamera struct {
	Position math.Vec3

	// Units per Move step and degrees per Rotate unit.
	MovementSpeed    float32
	MouseSensitivity float32

	angleX float32 // yaw, degrees, wrapped to [0, 360)
	angleY float32 // pitch, degrees, clamped to [MinPitch, MaxPitch]
	dir    math.Vec3
}

// NewFlyCamera returns a camera at pos looking down -Z.
func NewFlyCamera(pos math.Vec3) *FlyCamera {
	c := &FlyCamera{
		Position:         pos,
		MovementSpeed:    0.02,
		MouseSensitivity: 1.0,
	}
	c.updateDir()
	return c
}

// Dir returns the unit view direction.
func (c *FlyCamera) Dir() math.Vec3 { return c.dir }

// AngleX returns the yaw in degrees, in [0, 360).
func (c *FlyCamera) AngleX() float32 { return c.angleX }

// AngleY returns the pitch in degrees, in [MinPitch, MaxPitch].
func (c *FlyCamera) AngleY() float32 { return c.angleY }

// SetAngles sets yaw and pitch directly, applying the same wrapping and
// clamping as Rotate.
func (c *FlyCamera) SetAngles(yaw, pitch float32) {
	c.angleX = wrapDegrees(yaw)
	c.angleY = clampPitch(pitch)
	c.updateDir()
}

// Rotate turns the camera by mouse deltas scaled by the sensitivity. Yaw
// wraps around, pitch saturates at the clamp limits.
func (c *FlyCamera) Rotate(deltaX, deltaY float32) {
	c.angleX = wrapDegrees(c.angleX + deltaX*c.MouseSensitivity)
	c.angleY = clampPitch(c.angleY + deltaY*c.MouseSensitivity)
	c.updateDir()
}

// Move translates the camera along its view basis: forward along the view
// direction, sideways along the horizontal right vector, upward along the
// view-local up. Each amount is scaled by the movement speed.
func (c *FlyCamera) Move(forward, sideways, upward float32) {
	right := c.rightVector()
	up := right.Cross(c.dir).Normalize()

	delta := c.dir.Scale(forward).
		Add(right.Scale(sideways)).
		Add(up.Scale(upward)).
		Scale(c.MovementSpeed)
	c.Position = c.Position.Add(delta)
}

// ViewMatrix returns the look-at matrix for the current position and
// orientation.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	right := c.rightVector()
	up := right.Cross(c.dir).Normalize()
	return math.LookAt(c.Position, c.Position.Add(c.dir), up)
}

// rightVector is the horizontal vector perpendicular to the view direction.
// The pitch clamp guarantees it never degenerates.
func (c *FlyCamera) rightVector() math.Vec3 {
	return math.Vec3{X: -c.dir.Z, Z: c.dir.X}.Normalize()
}

// updateDir derives the unit view direction from yaw and pitch. The vertical
// component comes from the unit-length constraint, signed by the pitch.
func (c *FlyCamera) updateDir() {
	radX := float64(c.angleX) * gomath.Pi / 180
	radY := float64(c.angleY) * gomath.Pi / 180

	x := gomath.Sin(radX) * gomath.Cos(radY)
	z := -gomath.Cos(radX) * gomath.Cos(radY)

	y := gomath.Sqrt(1 - x*x - z*z)
	if gomath.IsNaN(y) {
		y = 0
	}
	y = gomath.Min(gomath.Max(y, 0), 1)
	if c.angleY < 0 {
		y = -y
	}

	c.dir = math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}
}

func wrapDegrees(deg float32) float32 {
	wrapped := float32(gomath.Mod(float64(deg), 360))
	if wrapped < 0 {
		wrapped += 360
	}
	return wrapped
}

func clampPitch(deg float32) float32 {
	if deg < MinPitch {
		return MinPitch
	}
	if deg > MaxPitch {
		return MaxPitch
	}
	return deg
}

package render

import (
	"github.com/Faultbox/terrascape/pkg/math"
)

// Plane is a clip plane in the form n.x*x + n.y*y + n.z*z + d >= 0 for points
// inside the frustum.
type Plane struct {
	N math.Vec3
	D float32
}

// ExtractFrustumPlanes derives the six clip planes from a combined
// projection*model-view matrix using the row identities (row3 +- row0 for
// left/right, row3 +- row1 for bottom/top, row3 +- row2 for near/far). Each
// plane is normalized by the magnitude of its normal.
func ExtractFrustumPlanes(vp math.Mat4) [6]Plane {
	// Column-major: row r of column c is vp[c*4+r].
	row := func(r int) [4]float32 {
		return [4]float32{vp[r], vp[4+r], vp[8+r], vp[12+r]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	planes := [6]Plane{
		{math.Vec3{X: r3[0] + r0[0], Y: r3[1] + r0[1], Z: r3[2] + r0[2]}, r3[3] + r0[3]}, // left
		{math.Vec3{X: r3[0] - r0[0], Y: r3[1] - r0[1], Z: r3[2] - r0[2]}, r3[3] - r0[3]}, // right
		{math.Vec3{X: r3[0] + r1[0], Y: r3[1] + r1[1], Z: r3[2] + r1[2]}, r3[3] + r1[3]}, // bottom
		{math.Vec3{X: r3[0] - r1[0], Y: r3[1] - r1[1], Z: r3[2] - r1[2]}, r3[3] - r1[3]}, // top
		{math.Vec3{X: r3[0] + r2[0], Y: r3[1] + r2[1], Z: r3[2] + r2[2]}, r3[3] + r2[3]}, // near
		{math.Vec3{X: r3[0] - r2[0], Y: r3[1] - r2[1], Z: r3[2] - r2[2]}, r3[3] - r2[3]}, // far
	}

	for i := range planes {
		mag := planes[i].N.Length()
		if mag > 0 {
			planes[i].N = planes[i].N.Scale(1 / mag)
			planes[i].D /= mag
		}
	}
	return planes
}

// Inside reports whether p lies on the inner half-space of the plane.
func (pl Plane) Inside(p math.Vec3) bool {
	return pl.N.Dot(p)+pl.D >= 0
}

// IsVisible classifies a bounding-box midpoint against the view frustum of
// projection*modelView. Only the midpoint is tested, not the full box; large
// objects near the frustum border may be culled while still partly visible.
func IsVisible(mid math.Vec3, projection, modelView math.Mat4) bool {
	planes := ExtractFrustumPlanes(projection.Mul(modelView))
	for _, pl := range planes {
		if !pl.Inside(mid) {
			return false
		}
	}
	return true
}

package mesh

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/terrascape/pkg/math"
)

const epsilon = 1e-5

func approxEqual(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < epsilon
}

func vecApproxEqual(a, b math.Vec3) bool {
	return approxEqual(a.X, b.X) && approxEqual(a.Y, b.Y) && approxEqual(a.Z, b.Z)
}

func TestClearResetsBoundingBoxSentinel(t *testing.T) {
	m := New()
	m.vertices = []math.Vec3{{X: 1, Y: 2, Z: 3}}
	m.calculateBoundingBox()

	m.Clear()
	bb := m.BoundingBox()
	if !gomath.IsInf(float64(bb.Min.X), 1) || !gomath.IsInf(float64(bb.Max.X), -1) {
		t.Errorf("cleared bounding box should carry the +inf/-inf sentinel, got %+v", bb)
	}
	if len(m.Vertices()) != 0 || len(m.Triangles()) != 0 {
		t.Error("cleared mesh should hold no geometry")
	}
}

func TestBoundingBox(t *testing.T) {
	m := New()
	m.vertices = []math.Vec3{
		{X: -2, Y: 1, Z: 0},
		{X: 4, Y: -3, Z: 2},
		{X: 0, Y: 5, Z: -6},
	}
	m.calculateBoundingBox()

	bb := m.BoundingBox()
	if bb.Min != (math.Vec3{X: -2, Y: -3, Z: -6}) {
		t.Errorf("Min = %v", bb.Min)
	}
	if bb.Max != (math.Vec3{X: 4, Y: 5, Z: 2}) {
		t.Errorf("Max = %v", bb.Max)
	}
	if bb.Mid != (math.Vec3{X: 1, Y: 1, Z: -2}) {
		t.Errorf("Mid = %v", bb.Mid)
	}
	if bb.Size != (math.Vec3{X: 6, Y: 8, Z: 8}) {
		t.Errorf("Size = %v", bb.Size)
	}
}

func TestNormalsByAreaSingleTriangle(t *testing.T) {
	m := New()
	m.vertices = []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 2, Y: 0, Z: 0},
		{X: 0, Y: 3, Z: 0},
	}
	m.triangles = []Triangle{{0, 1, 2}}
	m.calculateNormalsByArea()

	want := math.Vec3{Z: 1} // normalized edge cross product
	for i, n := range m.Normals() {
		if !approxEqual(n.Length(), 1) {
			t.Errorf("normal %d not unit length: %f", i, n.Length())
		}
		if !vecApproxEqual(n, want) {
			t.Errorf("normal %d = %v, want %v", i, n, want)
		}
	}
}

func TestNormalsByAreaFlatQuad(t *testing.T) {
	m := New()
	m.vertices = []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 1},
	}
	m.triangles = []Triangle{{0, 2, 1}, {2, 3, 1}}
	m.calculateNormalsByArea()

	up := math.Vec3{Y: 1}
	for i, n := range m.Normals() {
		if !vecApproxEqual(n, up) {
			t.Errorf("normal %d = %v, want %v", i, n, up)
		}
	}
}

func TestNormalsByAreaWeighting(t *testing.T) {
	// Vertex 0 is shared by a large triangle in the XZ plane and a tiny one
	// in the XY plane; the synthesized normal must lean toward the larger.
	m := New()
	m.vertices = []math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 10, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 10},
		{X: 0.1, Y: 0, Z: 0},
		{X: 0, Y: 0.1, Z: 0},
	}
	m.triangles = []Triangle{{0, 2, 1}, {0, 3, 4}}
	m.calculateNormalsByArea()

	n := m.Normals()[0]
	if n.Y < 0.9 {
		t.Errorf("shared normal %v should be dominated by the larger face (+Y)", n)
	}
	if n.Z <= 0 {
		t.Errorf("shared normal %v should carry a small contribution from the XY face", n)
	}
}

func TestSphereMappingDegenerateVertex(t *testing.T) {
	m := New()
	m.vertices = []math.Vec3{
		{X: -1, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 0}, // exactly at the midpoint
	}
	m.calculateBoundingBox()
	m.calculateTexCoordsSphereMapping()

	tc := m.TexCoords()
	if tc[2] != (math.Vec2{X: 0.5, Y: 0.5}) {
		t.Errorf("midpoint vertex maps to %v, want (0.5, 0.5)", tc[2])
	}
	for i, uv := range tc {
		if uv.X < 0 || uv.X > 1 {
			t.Errorf("texcoord %d u = %f out of [0,1]", i, uv.X)
		}
		if uv.Y < -0.5 || uv.Y > 0.5 {
			t.Errorf("texcoord %d v = %f out of [-0.5,0.5]", i, uv.Y)
		}
	}
}

func TestFlipNormals(t *testing.T) {
	m := New()
	m.normals = []math.Vec3{{Y: 1}, {X: -1}}
	m.FlipNormals()

	if m.Normals()[0] != (math.Vec3{Y: -1}) || m.Normals()[1] != (math.Vec3{X: 1}) {
		t.Errorf("flipped normals = %v", m.Normals())
	}
}

func TestTranslateToCenter(t *testing.T) {
	m := New()
	m.vertices = []math.Vec3{{X: 2, Y: 2, Z: 2}, {X: 4, Y: 4, Z: 4}}
	m.calculateBoundingBox()

	m.TranslateToCenter(math.Vec3{})
	if !vecApproxEqual(m.BoundingBox().Mid, math.Vec3{}) {
		t.Errorf("Mid after centering = %v, want origin", m.BoundingBox().Mid)
	}
	if !vecApproxEqual(m.Vertices()[0], math.Vec3{X: -1, Y: -1, Z: -1}) {
		t.Errorf("vertex 0 = %v, want (-1,-1,-1)", m.Vertices()[0])
	}
}

func TestScaleToLength(t *testing.T) {
	m := New()
	m.vertices = []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 4, Y: 2, Z: 1}}
	m.calculateBoundingBox()

	m.ScaleToLength(1)
	sz := m.BoundingBox().Size
	if !approxEqual(sz.X, 1) || !approxEqual(sz.Y, 0.5) || !approxEqual(sz.Z, 0.25) {
		t.Errorf("Size after scaling = %v, want (1, 0.5, 0.25)", sz)
	}
}

func TestScaleToLengthDegenerate(t *testing.T) {
	m := New()
	m.vertices = []math.Vec3{{X: 1, Y: 1, Z: 1}}
	m.calculateBoundingBox()

	m.ScaleToLength(10) // zero-size box, must not divide by zero
	if m.Vertices()[0] != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("degenerate scale moved vertex to %v", m.Vertices()[0])
	}
}

func TestEffectiveColoringFallbacks(t *testing.T) {
	cases := []struct {
		name     string
		mode     ColoringMode
		diffuse  uint32
		texVBO   uint32
		colorVBO uint32
		want     ColoringMode
	}{
		{"texture fully bound", Texture, 7, 8, 9, Texture},
		{"texture without diffuse", Texture, 0, 8, 9, ColorArray},
		{"texture without texcoords", Texture, 7, 0, 9, ColorArray},
		{"texture without anything", Texture, 0, 0, 0, StaticColor},
		{"color array bound", ColorArray, 0, 0, 9, ColorArray},
		{"color array without buffer", ColorArray, 0, 0, 0, StaticColor},
		{"static stays static", StaticColor, 7, 8, 9, StaticColor},
		{"bump stays bump", BumpMapping, 0, 0, 0, BumpMapping},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.SetColoringMode(tt.mode)
			m.textures.diffuse = tt.diffuse
			m.gpu.texCoord = tt.texVBO
			m.gpu.color = tt.colorVBO
			if got := m.effectiveColoring(); got != tt.want {
				t.Errorf("effectiveColoring() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTakeFromMovesOwnership(t *testing.T) {
	src := New()
	src.vertices = []math.Vec3{{X: 1}, {X: 2}}
	src.triangles = []Triangle{{0, 1, 0}}
	src.colors = []math.Vec3{{X: 1}, {Y: 1}}
	src.SetColoringMode(ColorArray)
	src.calculateBoundingBox()
	src.gpu = bufferSet{vao: 11, vertex: 12, index: 13}

	dst := New()
	dst.TakeFrom(src)

	if len(dst.Vertices()) != 2 || len(dst.Triangles()) != 1 {
		t.Fatal("destination should own the source geometry")
	}
	if dst.gpu.vao != 11 || dst.gpu.vertex != 12 || dst.gpu.index != 13 {
		t.Errorf("destination should own the source GPU handles, got %+v", dst.gpu)
	}
	if dst.ColoringMode() != ColorArray {
		t.Error("coloring mode should move with the geometry")
	}

	if len(src.Vertices()) != 0 || len(src.Triangles()) != 0 {
		t.Error("source should be left empty")
	}
	if src.gpu != (bufferSet{}) {
		t.Errorf("source handles should be zeroed, got %+v", src.gpu)
	}
}

func TestTakeFromSelf(t *testing.T) {
	m := New()
	m.vertices = []math.Vec3{{X: 1}}
	m.TakeFrom(m)
	if len(m.Vertices()) != 1 {
		t.Error("self-move must be a no-op")
	}
}

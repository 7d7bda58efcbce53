package mesh

import (
	"testing"

	"github.com/Faultbox/terrascape/internal/engine/terrain"
	"github.com/Faultbox/terrascape/pkg/math"
)

func mustHeightmap(t *testing.T, elevations [][]float64) *terrain.Heightmap {
	t.Helper()
	hm, err := terrain.NewHeightmap(elevations)
	if err != nil {
		t.Fatalf("NewHeightmap: %v", err)
	}
	return hm
}

func TestGenerateTerrainGrid(t *testing.T) {
	hm := mustHeightmap(t, [][]float64{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{9, 10, 11},
	})

	m := New()
	m.GenerateTerrain(hm, terrain.WaveCosine)

	if got := len(m.Vertices()); got != 12 {
		t.Fatalf("vertex count = %d, want 12", got)
	}
	// 2 triangles per interior cell: (4-1)*(3-1)*2.
	if got := len(m.Triangles()); got != 12 {
		t.Fatalf("triangle count = %d, want 12", got)
	}
	if len(m.Colors()) != 12 || len(m.Normals()) != 12 || len(m.TexCoords()) != 12 {
		t.Fatal("colors, normals and texcoords must pair with vertices")
	}

	// Cell (x,z) lands at index x*width+z as (x, elevation, z).
	v := m.Vertices()[1*3+2]
	if v != (math.Vec3{X: 1, Y: 5, Z: 2}) {
		t.Errorf("vertex for cell (1,2) = %v, want (1, 5, 2)", v)
	}

	if m.ColoringMode() != ColorArray {
		t.Error("terrain should default to per-vertex colors")
	}
}

func TestGenerateTerrainColorsFollowElevation(t *testing.T) {
	hm := mustHeightmap(t, [][]float64{
		{-10, 6},
		{-10, 6},
	})

	m := New()
	m.GenerateTerrain(hm, terrain.Displacement(2))

	want0 := terrain.ColorFor(-10, terrain.Displacement(2))
	want1 := terrain.ColorFor(6, terrain.Displacement(2))
	if m.Colors()[0] != want0 {
		t.Errorf("color at elevation -10 = %v, want %v", m.Colors()[0], want0)
	}
	if m.Colors()[1] != want1 {
		t.Errorf("color at elevation 6 = %v, want %v", m.Colors()[1], want1)
	}
}

func TestGenerateTerrainFlatNormalsPointUp(t *testing.T) {
	hm := mustHeightmap(t, [][]float64{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	})

	m := New()
	m.GenerateTerrain(hm, terrain.WaveCosine)

	up := math.Vec3{Y: 1}
	for i, n := range m.Normals() {
		if !vecApproxEqual(n, up) {
			t.Fatalf("flat terrain normal %d = %v, want straight up", i, n)
		}
	}
}

func TestGenerateTerrainSingleCell(t *testing.T) {
	hm := mustHeightmap(t, [][]float64{{3}})

	m := New()
	m.GenerateTerrain(hm, terrain.WaveSine)

	if len(m.Vertices()) != 1 {
		t.Errorf("vertex count = %d, want 1", len(m.Vertices()))
	}
	if len(m.Triangles()) != 0 {
		t.Errorf("a single cell cannot form triangles, got %d", len(m.Triangles()))
	}
}

func TestGenerateSphere(t *testing.T) {
	const radius = 2.0
	m := New()
	m.GenerateSphere(radius, 16, 8)

	wantVerts := (16 + 1) * (8 + 1)
	if got := len(m.Vertices()); got != wantVerts {
		t.Fatalf("vertex count = %d, want %d", got, wantVerts)
	}
	if got := len(m.Triangles()); got != 2*16*8 {
		t.Fatalf("triangle count = %d, want %d", got, 2*16*8)
	}

	for i, v := range m.Vertices() {
		if !approxEqual(v.Length(), radius) {
			t.Fatalf("vertex %d at distance %f, want %f", i, v.Length(), radius)
		}
		n := m.Normals()[i]
		if !approxEqual(n.Length(), 1) {
			t.Fatalf("normal %d not unit length: %f", i, n.Length())
		}
		if !vecApproxEqual(v.Normalize(), n) {
			t.Fatalf("normal %d = %v does not point radially for %v", i, n, v)
		}
		if tan := m.tangents[i]; !approxEqual(tan.Dot(n), 0) {
			t.Fatalf("tangent %d not perpendicular to normal (dot %f)", i, tan.Dot(n))
		}
	}

	bb := m.BoundingBox()
	if !vecApproxEqual(bb.Mid, math.Vec3{}) {
		t.Errorf("sphere midpoint = %v, want origin", bb.Mid)
	}
}

func TestGenerateSphereRejectsDegenerateDivisions(t *testing.T) {
	m := New()
	m.GenerateSphere(1, 2, 1)
	if len(m.Vertices()) != 0 {
		t.Error("degenerate divisions should leave the mesh empty")
	}
}

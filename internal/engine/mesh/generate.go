package mesh

import (
	gomath "math"

	"github.com/Faultbox/terrascape/internal/engine/terrain"
	"github.com/Faultbox/terrascape/pkg/math"
)

// GenerateTerrain populates the mesh from a heightmap: one vertex per cell at
// (x, elevation, z), elevation-band colors for the given displacement family,
// and two triangles per interior cell. Normals and texture coordinates are
// synthesized afterwards. Any previous content is cleared first.
func (m *Mesh) GenerateTerrain(hm *terrain.Heightmap, kind terrain.Displacement) {
	m.Clear()

	length, width := hm.Len(), hm.Width()
	m.vertices = make([]math.Vec3, 0, length*width)
	m.colors = make([]math.Vec3, 0, length*width)
	for x := 0; x < length; x++ {
		for z := 0; z < width; z++ {
			h := hm.At(x, z)
			m.vertices = append(m.vertices, math.Vec3{X: float32(x), Y: float32(h), Z: float32(z)})
			m.colors = append(m.colors, terrain.ColorFor(h, kind))
		}
	}

	// Cell (x,z) sits at index x*width+z; the last row and column only close
	// the quads of their neighbors.
	m.triangles = make([]Triangle, 0, 2*(length-1)*(width-1))
	for x := 0; x < length-1; x++ {
		for z := 0; z < width-1; z++ {
			cell := uint32(x*width + z)
			right := uint32((x+1)*width + z)
			below := cell + 1
			belowRight := right + 1
			m.triangles = append(m.triangles,
				Triangle{cell, below, right},
				Triangle{below, belowRight, right})
		}
	}

	m.calculateBoundingBox()
	m.calculateNormalsByArea()
	m.calculateTexCoordsSphereMapping()
	m.coloring = ColorArray
}

// GenerateSphere populates the mesh with a UV sphere of the given radius,
// centered at the origin. The seam column is duplicated so texture
// coordinates wrap cleanly, and per-vertex tangents are emitted for bump
// mapping. Any previous content is cleared first.
func (m *Mesh) GenerateSphere(radius float32, longDivs, latDivs int) {
	m.Clear()
	if longDivs < 3 || latDivs < 2 {
		return
	}

	cols := longDivs + 1
	for i := 0; i <= latDivs; i++ {
		theta := gomath.Pi * float64(i) / float64(latDivs)
		sinT, cosT := gomath.Sin(theta), gomath.Cos(theta)
		for j := 0; j <= longDivs; j++ {
			phi := 2 * gomath.Pi * float64(j) / float64(longDivs)
			sinP, cosP := gomath.Sin(phi), gomath.Cos(phi)

			normal := math.Vec3{
				X: float32(sinT * cosP),
				Y: float32(cosT),
				Z: float32(sinT * sinP),
			}
			m.vertices = append(m.vertices, normal.Scale(radius))
			m.normals = append(m.normals, normal)
			m.tangents = append(m.tangents, math.Vec3{X: float32(-sinP), Z: float32(cosP)})
			m.texCoords = append(m.texCoords, math.Vec2{
				X: float32(j) / float32(longDivs),
				Y: 1 - float32(i)/float32(latDivs),
			})
		}
	}

	for i := 0; i < latDivs; i++ {
		for j := 0; j < longDivs; j++ {
			a := uint32(i*cols + j)
			b := a + uint32(cols)
			m.triangles = append(m.triangles,
				Triangle{a, b, a + 1},
				Triangle{a + 1, b, b + 1})
		}
	}

	m.calculateBoundingBox()
}

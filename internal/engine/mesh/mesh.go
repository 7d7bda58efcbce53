// Package mesh implements the triangle-mesh data model: CPU-side geometry
// arrays, the owned GPU buffer set, and the draw paths for the different
// coloring modes.
package mesh

import (
	gomath "math"

	"github.com/Faultbox/terrascape/pkg/math"
)

// ColoringMode selects the shading-input strategy of a mesh.
type ColoringMode int

const (
	// StaticColor uses the single fallback color for every vertex.
	StaticColor ColoringMode = iota
	// ColorArray uses the per-vertex color buffer.
	ColorArray
	// Texture samples the diffuse texture using the synthesized coordinates.
	Texture
	// BumpMapping samples diffuse/normal/displacement maps per channel toggle.
	BumpMapping
)

// Triangle indexes three vertices, 0-based.
type Triangle [3]uint32

// BoundingBox is the axis-aligned extent of a mesh. Mid and Size are always
// recomputed together with Min and Max.
type BoundingBox struct {
	Min, Max, Mid, Size math.Vec3
}

// noCopy makes `go vet` reject value copies of Mesh; duplicating a live GPU
// handle would double-release it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Mesh owns triangle geometry and the GPU buffers built from it. A Mesh must
// not be copied; ownership moves with TakeFrom.
type Mesh struct {
	noCopy noCopy

	vertices  []math.Vec3
	normals   []math.Vec3
	triangles []Triangle
	colors    []math.Vec3
	texCoords []math.Vec2
	tangents  []math.Vec3

	staticColor math.Vec3
	coloring    ColoringMode

	bbox BoundingBox

	gpu      bufferSet
	overlay  overlaySet
	textures textureSet

	withBB      bool
	withNormals bool

	useDiffuse      bool
	useNormalMap    bool
	useDisplacement bool
}

// New returns an empty mesh with a white static color.
func New() *Mesh {
	m := &Mesh{}
	m.Clear()
	m.staticColor = math.Vec3{X: 1, Y: 1, Z: 1}
	return m
}

// Clear releases any GPU buffers, resets all CPU arrays and restores the
// bounding-box sentinel. Must be called before re-population.
func (m *Mesh) Clear() {
	m.ReleaseBuffers()

	m.vertices = nil
	m.normals = nil
	m.triangles = nil
	m.colors = nil
	m.texCoords = nil
	m.tangents = nil

	m.coloring = StaticColor
	m.withBB = false
	m.withNormals = false
	m.textures = textureSet{}

	m.resetBoundingBox()
}

func (m *Mesh) resetBoundingBox() {
	inf := float32(gomath.Inf(1))
	m.bbox = BoundingBox{
		Min: math.Vec3{X: inf, Y: inf, Z: inf},
		Max: math.Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// Accessors for raw geometry.

// Vertices returns the vertex positions.
func (m *Mesh) Vertices() []math.Vec3 { return m.vertices }

// Normals returns the per-vertex normals.
func (m *Mesh) Normals() []math.Vec3 { return m.normals }

// Triangles returns the triangle index list.
func (m *Mesh) Triangles() []Triangle { return m.triangles }

// Colors returns the per-vertex colors.
func (m *Mesh) Colors() []math.Vec3 { return m.colors }

// TexCoords returns the per-vertex texture coordinates.
func (m *Mesh) TexCoords() []math.Vec2 { return m.texCoords }

// BoundingBox returns the current axis-aligned bounding box.
func (m *Mesh) BoundingBox() BoundingBox { return m.bbox }

// SetColoringMode sets the shading-input strategy used by Draw.
func (m *Mesh) SetColoringMode(mode ColoringMode) { m.coloring = mode }

// ColoringMode returns the configured (not the effective) coloring mode.
func (m *Mesh) ColoringMode() ColoringMode { return m.coloring }

// SetStaticColor sets the fallback color.
func (m *Mesh) SetStaticColor(c math.Vec3) { m.staticColor = c }

// SetTexture assigns the diffuse texture handle.
func (m *Mesh) SetTexture(id uint32) { m.textures.diffuse = id }

// SetNormalTexture assigns the normal-map texture handle.
func (m *Mesh) SetNormalTexture(id uint32) { m.textures.normalMap = id }

// SetDisplacementTexture assigns the displacement-map texture handle.
func (m *Mesh) SetDisplacementTexture(id uint32) { m.textures.displacement = id }

// ToggleBoundingBox enables the wireframe bounding-box overlay.
func (m *Mesh) ToggleBoundingBox(enable bool) { m.withBB = enable }

// ToggleNormals enables the normal-line overlay.
func (m *Mesh) ToggleNormals(enable bool) { m.withNormals = enable }

// ToggleDiffuse enables the diffuse channel in bump mapping.
func (m *Mesh) ToggleDiffuse(enable bool) { m.useDiffuse = enable }

// ToggleNormalMapping enables the normal-map channel in bump mapping.
func (m *Mesh) ToggleNormalMapping(enable bool) { m.useNormalMap = enable }

// ToggleDisplacementMapping enables the displacement channel in bump mapping.
func (m *Mesh) ToggleDisplacementMapping(enable bool) { m.useDisplacement = enable }

// calculateNormalsByArea synthesizes per-vertex normals: every triangle adds
// its unnormalized cross-product normal (magnitude proportional to twice its
// area) to the accumulators of its three vertices, weighting shared-vertex
// normals by triangle area. The accumulators are normalized at the end.
func (m *Mesh) calculateNormalsByArea() {
	m.normals = make([]math.Vec3, len(m.vertices))
	for _, tri := range m.triangles {
		v0, v1, v2 := m.vertices[tri[0]], m.vertices[tri[1]], m.vertices[tri[2]]
		normal := v1.Sub(v0).Cross(v2.Sub(v0))
		m.normals[tri[0]] = m.normals[tri[0]].Add(normal)
		m.normals[tri[1]] = m.normals[tri[1]].Add(normal)
		m.normals[tri[2]] = m.normals[tri[2]].Add(normal)
	}
	for i := range m.normals {
		m.normals[i] = m.normals[i].Normalize()
	}
}

// calculateTexCoordsSphereMapping synthesizes texture coordinates by a
// spherical projection around the bounding-box midpoint. A vertex exactly at
// the midpoint has no defined direction and maps to (0.5, 0.5).
func (m *Mesh) calculateTexCoordsSphereMapping() {
	m.texCoords = make([]math.Vec2, 0, len(m.vertices))
	for _, v := range m.vertices {
		offset := v.Sub(m.bbox.Mid)
		r := offset.Length()
		if r == 0 {
			m.texCoords = append(m.texCoords, math.Vec2{X: 0.5, Y: 0.5})
			continue
		}
		u := float32(gomath.Atan2(float64(offset.X), float64(offset.Z))/(2*gomath.Pi)) + 0.5
		vv := float32(gomath.Asin(float64(offset.Y/r)) / gomath.Pi)
		m.texCoords = append(m.texCoords, math.Vec2{X: u, Y: vv})
	}
}

// calculateBoundingBox recomputes Min/Max/Mid/Size from the vertices.
func (m *Mesh) calculateBoundingBox() {
	m.resetBoundingBox()
	for _, v := range m.vertices {
		m.bbox.Min = m.bbox.Min.Min(v)
		m.bbox.Max = m.bbox.Max.Max(v)
	}
	m.bbox.Mid = m.bbox.Min.Add(m.bbox.Max).Scale(0.5)
	m.bbox.Size = m.bbox.Max.Sub(m.bbox.Min)
}

// FlipNormals inverts every vertex normal. When buffers exist the normal
// buffer is patched in place.
func (m *Mesh) FlipNormals() {
	for i := range m.normals {
		m.normals[i] = m.normals[i].Scale(-1)
	}
	m.patchNormalBuffer()
}

// TranslateToCenter moves the mesh so its bounding-box midpoint lands on
// newMid, then rebuilds any existing buffers.
func (m *Mesh) TranslateToCenter(newMid math.Vec3) {
	trans := newMid.Sub(m.bbox.Mid)
	for i := range m.vertices {
		m.vertices[i] = m.vertices[i].Add(trans)
	}
	m.bbox.Min = m.bbox.Min.Add(trans)
	m.bbox.Max = m.bbox.Max.Add(trans)
	m.bbox.Mid = m.bbox.Mid.Add(trans)
	m.rebuildIfBuilt()
}

// ScaleToLength scales the mesh uniformly so the largest bounding-box side
// has the given length, then rebuilds any existing buffers.
func (m *Mesh) ScaleToLength(newLength float32) {
	length := max(m.bbox.Size.X, m.bbox.Size.Y, m.bbox.Size.Z)
	if length == 0 {
		return
	}
	scale := newLength / length
	for i := range m.vertices {
		m.vertices[i] = m.vertices[i].Scale(scale)
	}
	m.bbox.Min = m.bbox.Min.Scale(scale)
	m.bbox.Max = m.bbox.Max.Scale(scale)
	m.bbox.Mid = m.bbox.Mid.Scale(scale)
	m.bbox.Size = m.bbox.Size.Scale(scale)
	m.rebuildIfBuilt()
}

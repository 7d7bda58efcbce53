package mesh

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrascape/internal/engine/render"
	"github.com/Faultbox/terrascape/internal/logger"
	"github.com/Faultbox/terrascape/pkg/math"
)

// bufferSet holds the GPU handles of the main geometry. A zero handle means
// the buffer does not exist; vao==0 means no geometry is uploaded at all.
type bufferSet struct {
	vao      uint32
	vertex   uint32
	normal   uint32
	color    uint32
	texCoord uint32
	tangent  uint32
	index    uint32
}

// overlaySet holds the GPU handles of the debug overlays (bounding-box
// wireframe and normal lines).
type overlaySet struct {
	bbVAO       uint32
	bbVertex    uint32
	bbIndex     uint32
	normalsVAO  uint32
	normalsVBO  uint32
	normalCount int32
}

// textureSet holds texture handles referenced by the mesh. Textures are owned
// by the texture loader, not the mesh, and are never deleted here.
type textureSet struct {
	diffuse      uint32
	normalMap    uint32
	displacement uint32
}

// Unit cube centered at the origin; translated onto the bounding-box midpoint
// and scaled by its size for the wireframe overlay.
var boxVertices = []math.Vec3{
	{X: -0.5, Y: -0.5, Z: -0.5},
	{X: 0.5, Y: -0.5, Z: -0.5},
	{X: 0.5, Y: 0.5, Z: -0.5},
	{X: -0.5, Y: 0.5, Z: -0.5},
	{X: -0.5, Y: -0.5, Z: 0.5},
	{X: 0.5, Y: -0.5, Z: 0.5},
	{X: 0.5, Y: 0.5, Z: 0.5},
	{X: -0.5, Y: 0.5, Z: 0.5},
}

var boxLineIndices = []uint32{
	0, 1, 1, 2, 2, 3, 3, 0, // back face
	4, 5, 5, 6, 6, 7, 7, 4, // front face
	0, 4, 1, 5, 2, 6, 3, 7, // connecting edges
}

const normalLineLength = 0.1

// createVBO uploads size bytes to a fresh buffer and verifies the allocation
// with GL_BUFFER_SIZE. On a size mismatch (out of GPU memory) the buffer is
// deleted and 0 is returned; the caller decides whether that is fatal.
func createVBO(target uint32, size int, data unsafe.Pointer) uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(target, id)
	gl.BufferData(target, size, data, gl.STATIC_DRAW)

	var uploaded int32
	gl.GetBufferParameteriv(target, gl.BUFFER_SIZE, &uploaded)
	if int(uploaded) != size {
		logger.Error("buffer upload incomplete",
			zap.Int("want", size),
			zap.Int32("got", uploaded))
		gl.BindBuffer(target, 0)
		gl.DeleteBuffers(1, &id)
		return 0
	}
	return id
}

// HasBuffers reports whether geometry is currently uploaded.
func (m *Mesh) HasBuffers() bool {
	return m.gpu.vao != 0
}

// BuildBuffers uploads the CPU geometry to fresh GPU buffers, replacing any
// previous set. Vertices, normals and indices are mandatory; if any of them
// fails to upload, everything is released and the mesh stays undrawable.
// Optional attribute buffers that fail are dropped individually and Draw
// falls back accordingly.
func (m *Mesh) BuildBuffers() {
	m.ReleaseBuffers()
	if len(m.vertices) == 0 || len(m.triangles) == 0 {
		return
	}

	vec3Size := int(unsafe.Sizeof(math.Vec3{}))
	vec2Size := int(unsafe.Sizeof(math.Vec2{}))

	gl.GenVertexArrays(1, &m.gpu.vao)
	gl.BindVertexArray(m.gpu.vao)

	m.gpu.vertex = createVBO(gl.ARRAY_BUFFER, len(m.vertices)*vec3Size, unsafe.Pointer(&m.vertices[0]))
	if m.gpu.vertex != 0 {
		gl.VertexAttribPointerWithOffset(render.PositionLocation, 3, gl.FLOAT, false, 0, 0)
		gl.EnableVertexAttribArray(render.PositionLocation)
	}

	// Optional attribute arrays are used only when they pair one-to-one with
	// the vertices; anything else never reaches the GPU.
	if len(m.normals) == len(m.vertices) {
		m.gpu.normal = createVBO(gl.ARRAY_BUFFER, len(m.normals)*vec3Size, unsafe.Pointer(&m.normals[0]))
		if m.gpu.normal != 0 {
			gl.VertexAttribPointerWithOffset(render.NormalLocation, 3, gl.FLOAT, false, 0, 0)
			gl.EnableVertexAttribArray(render.NormalLocation)
		}
	}

	if len(m.colors) == len(m.vertices) {
		m.gpu.color = createVBO(gl.ARRAY_BUFFER, len(m.colors)*vec3Size, unsafe.Pointer(&m.colors[0]))
		if m.gpu.color != 0 {
			gl.VertexAttribPointerWithOffset(render.ColorLocation, 3, gl.FLOAT, false, 0, 0)
			gl.EnableVertexAttribArray(render.ColorLocation)
		}
	}

	if len(m.texCoords) == len(m.vertices) {
		m.gpu.texCoord = createVBO(gl.ARRAY_BUFFER, len(m.texCoords)*vec2Size, unsafe.Pointer(&m.texCoords[0]))
		if m.gpu.texCoord != 0 {
			gl.VertexAttribPointerWithOffset(render.TexCoordLocation, 2, gl.FLOAT, false, 0, 0)
			gl.EnableVertexAttribArray(render.TexCoordLocation)
		}
	}

	if len(m.tangents) == len(m.vertices) {
		m.gpu.tangent = createVBO(gl.ARRAY_BUFFER, len(m.tangents)*vec3Size, unsafe.Pointer(&m.tangents[0]))
		if m.gpu.tangent != 0 {
			gl.VertexAttribPointerWithOffset(render.TangentLocation, 3, gl.FLOAT, false, 0, 0)
			gl.EnableVertexAttribArray(render.TangentLocation)
		}
	}

	triSize := int(unsafe.Sizeof(Triangle{}))
	m.gpu.index = createVBO(gl.ELEMENT_ARRAY_BUFFER, len(m.triangles)*triSize, unsafe.Pointer(&m.triangles[0]))

	gl.BindVertexArray(0)

	if m.gpu.vertex == 0 || m.gpu.normal == 0 || m.gpu.index == 0 {
		logger.Error("mesh upload failed, releasing partial buffers",
			zap.Int("vertices", len(m.vertices)),
			zap.Int("triangles", len(m.triangles)))
		m.ReleaseBuffers()
		return
	}

	m.buildOverlayBuffers()

	logger.Debug("mesh buffers built",
		zap.Int("vertices", len(m.vertices)),
		zap.Int("triangles", len(m.triangles)))
}

// buildOverlayBuffers uploads the bounding-box wireframe and the normal-line
// geometry. Overlay upload failures are non-fatal; the overlay simply stays
// off.
func (m *Mesh) buildOverlayBuffers() {
	vec3Size := int(unsafe.Sizeof(math.Vec3{}))

	gl.GenVertexArrays(1, &m.overlay.bbVAO)
	gl.BindVertexArray(m.overlay.bbVAO)
	m.overlay.bbVertex = createVBO(gl.ARRAY_BUFFER, len(boxVertices)*vec3Size, unsafe.Pointer(&boxVertices[0]))
	if m.overlay.bbVertex != 0 {
		gl.VertexAttribPointerWithOffset(render.PositionLocation, 3, gl.FLOAT, false, 0, 0)
		gl.EnableVertexAttribArray(render.PositionLocation)
	}
	m.overlay.bbIndex = createVBO(gl.ELEMENT_ARRAY_BUFFER, len(boxLineIndices)*4, unsafe.Pointer(&boxLineIndices[0]))

	// One line segment per vertex, from the vertex along its normal.
	lines := make([]math.Vec3, 0, 2*len(m.vertices))
	for i, v := range m.vertices {
		lines = append(lines, v, v.Add(m.normals[i].Scale(normalLineLength)))
	}
	m.overlay.normalCount = int32(len(lines))

	gl.GenVertexArrays(1, &m.overlay.normalsVAO)
	gl.BindVertexArray(m.overlay.normalsVAO)
	m.overlay.normalsVBO = createVBO(gl.ARRAY_BUFFER, len(lines)*vec3Size, unsafe.Pointer(&lines[0]))
	if m.overlay.normalsVBO != 0 {
		gl.VertexAttribPointerWithOffset(render.PositionLocation, 3, gl.FLOAT, false, 0, 0)
		gl.EnableVertexAttribArray(render.PositionLocation)
	}

	gl.BindVertexArray(0)
}

// ReleaseBuffers deletes all GPU buffers of the mesh. Safe to call on a mesh
// that never uploaded anything; referenced textures are left alone.
func (m *Mesh) ReleaseBuffers() {
	deleteBuffer := func(id *uint32) {
		if *id != 0 {
			gl.DeleteBuffers(1, id)
			*id = 0
		}
	}
	deleteVAO := func(id *uint32) {
		if *id != 0 {
			gl.DeleteVertexArrays(1, id)
			*id = 0
		}
	}

	deleteBuffer(&m.gpu.vertex)
	deleteBuffer(&m.gpu.normal)
	deleteBuffer(&m.gpu.color)
	deleteBuffer(&m.gpu.texCoord)
	deleteBuffer(&m.gpu.tangent)
	deleteBuffer(&m.gpu.index)
	deleteVAO(&m.gpu.vao)

	deleteBuffer(&m.overlay.bbVertex)
	deleteBuffer(&m.overlay.bbIndex)
	deleteBuffer(&m.overlay.normalsVBO)
	deleteVAO(&m.overlay.bbVAO)
	deleteVAO(&m.overlay.normalsVAO)
	m.overlay.normalCount = 0
}

// rebuildIfBuilt re-uploads the geometry after a CPU-side edit, but only when
// buffers already exist.
func (m *Mesh) rebuildIfBuilt() {
	if m.gpu.vao != 0 {
		m.BuildBuffers()
	}
}

// patchNormalBuffer overwrites the normal buffer in place after FlipNormals.
func (m *Mesh) patchNormalBuffer() {
	if m.gpu.normal == 0 || len(m.normals) == 0 {
		return
	}
	vec3Size := int(unsafe.Sizeof(math.Vec3{}))
	gl.BindBuffer(gl.ARRAY_BUFFER, m.gpu.normal)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(m.normals)*vec3Size, unsafe.Pointer(&m.normals[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// TakeFrom moves the geometry of src into m, transferring GPU buffer
// ownership. Handle sets are swapped, so buffers m previously owned end up in
// src and are released by the final clear; when m held none, the move makes
// no GL calls at all. src is left empty and reusable.
func (m *Mesh) TakeFrom(src *Mesh) {
	if src == m {
		return
	}

	m.vertices, src.vertices = src.vertices, nil
	m.normals, src.normals = src.normals, nil
	m.triangles, src.triangles = src.triangles, nil
	m.colors, src.colors = src.colors, nil
	m.texCoords, src.texCoords = src.texCoords, nil
	m.tangents, src.tangents = src.tangents, nil

	m.staticColor = src.staticColor
	m.coloring = src.coloring
	m.bbox = src.bbox
	m.textures = src.textures
	m.withBB = src.withBB
	m.withNormals = src.withNormals
	m.useDiffuse = src.useDiffuse
	m.useNormalMap = src.useNormalMap
	m.useDisplacement = src.useDisplacement

	m.gpu, src.gpu = src.gpu, m.gpu
	m.overlay, src.overlay = src.overlay, m.overlay

	src.Clear()
}

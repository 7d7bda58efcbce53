package mesh

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/terrascape/internal/engine/render"
	"github.com/Faultbox/terrascape/pkg/math"
)

// effectiveColoring resolves the configured coloring mode against the buffers
// and textures actually available: Texture without a diffuse texture degrades
// to ColorArray, ColorArray without a color buffer degrades to StaticColor.
func (m *Mesh) effectiveColoring() ColoringMode {
	mode := m.coloring
	if mode == Texture && (m.textures.diffuse == 0 || m.gpu.texCoord == 0) {
		mode = ColorArray
	}
	if mode == ColorArray && m.gpu.color == 0 {
		mode = StaticColor
	}
	return mode
}

// Visible classifies the bounding-box midpoint against the view frustum.
func (m *Mesh) Visible(state *render.State) bool {
	return render.IsVisible(m.bbox.Mid, state.Projection(), state.ModelView())
}

// Draw renders the mesh under the current model-view frame and returns the
// number of triangles issued. Meshes without uploaded buffers or with their
// midpoint outside the frustum draw nothing.
func (m *Mesh) Draw(state *render.State) int {
	if m.gpu.vao == 0 || !m.Visible(state) {
		return 0
	}

	if m.withBB || m.withNormals {
		former := state.CurrentProgram()
		state.SwitchToStandardProgram()
		state.UploadProjection()
		if m.withBB {
			m.drawBoundingBox(state)
		}
		if m.withNormals {
			m.drawNormalLines(state)
		}
		state.SetCurrentProgram(former)
	}

	m.drawGeometry(state)
	return len(m.triangles)
}

func (m *Mesh) drawGeometry(state *render.State) {
	state.UploadModelView()
	gl.BindVertexArray(m.gpu.vao)

	switch m.effectiveColoring() {
	case Texture:
		gl.Uniform1i(state.UseTextureUniform(), 1)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, m.textures.diffuse)
		gl.Uniform1i(state.TextureUniform(), 0)
		m.useStaticColorAttrib(math.Vec3{X: 1, Y: 1, Z: 1})
	case ColorArray:
		gl.Uniform1i(state.UseTextureUniform(), 0)
		gl.EnableVertexAttribArray(render.ColorLocation)
	case StaticColor:
		gl.Uniform1i(state.UseTextureUniform(), 0)
		m.useStaticColorAttrib(m.staticColor)
	case BumpMapping:
		m.bindBumpChannels(state)
	}

	gl.DrawElements(gl.TRIANGLES, int32(3*len(m.triangles)), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// useStaticColorAttrib feeds a constant vertex color instead of the color
// buffer.
func (m *Mesh) useStaticColorAttrib(c math.Vec3) {
	gl.DisableVertexAttribArray(render.ColorLocation)
	gl.VertexAttrib3f(render.ColorLocation, c.X, c.Y, c.Z)
}

// bindBumpChannels binds diffuse/normal/displacement maps to texture units
// 0/1/2 and uploads the per-channel toggles. Channels whose texture is
// missing are forced off.
func (m *Mesh) bindBumpChannels(state *render.State) {
	program := state.CurrentProgram()
	m.useStaticColorAttrib(m.staticColor)

	uniform := func(name string) int32 {
		return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	}
	toggle := func(enabled bool, tex uint32) int32 {
		if enabled && tex != 0 {
			return 1
		}
		return 0
	}

	gl.Uniform1i(uniform("uUseDiffuse"), toggle(m.useDiffuse, m.textures.diffuse))
	gl.Uniform1i(uniform("uUseNormalMap"), toggle(m.useNormalMap, m.textures.normalMap))
	gl.Uniform1i(uniform("uUseDisplacement"), toggle(m.useDisplacement, m.textures.displacement))

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, m.textures.diffuse)
	gl.Uniform1i(uniform("uDiffuseMap"), 0)

	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, m.textures.normalMap)
	gl.Uniform1i(uniform("uNormalMap"), 1)

	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, m.textures.displacement)
	gl.Uniform1i(uniform("uDisplacementMap"), 2)

	gl.ActiveTexture(gl.TEXTURE0)
}

// drawBoundingBox draws the unit cube translated onto the bounding-box
// midpoint and scaled to its size, as red lines.
func (m *Mesh) drawBoundingBox(state *render.State) {
	if m.overlay.bbVAO == 0 {
		return
	}

	state.PushModelView()
	state.MulModelView(math.Translate(m.bbox.Mid.X, m.bbox.Mid.Y, m.bbox.Mid.Z))
	state.MulModelView(math.Scale(m.bbox.Size.X, m.bbox.Size.Y, m.bbox.Size.Z))
	state.UploadModelView()

	gl.Uniform1i(state.UseTextureUniform(), 0)
	gl.BindVertexArray(m.overlay.bbVAO)
	gl.VertexAttrib3f(render.ColorLocation, 1, 0, 0)
	gl.DrawElements(gl.LINES, int32(len(boxLineIndices)), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	state.PopModelView()
}

// drawNormalLines draws one short green line per vertex along its normal.
func (m *Mesh) drawNormalLines(state *render.State) {
	if m.overlay.normalsVAO == 0 {
		return
	}

	state.UploadModelView()
	gl.Uniform1i(state.UseTextureUniform(), 0)
	gl.BindVertexArray(m.overlay.normalsVAO)
	gl.VertexAttrib3f(render.ColorLocation, 0, 1, 0)
	gl.DrawArrays(gl.LINES, 0, m.overlay.normalCount)
	gl.BindVertexArray(0)
}

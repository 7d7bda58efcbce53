// Package render holds the per-frame rendering state: the model-view matrix
// stack, the projection matrix, the active shader program and the light
// position shared by all draw calls of a frame.
package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/terrascape/pkg/math"
)

// Vertex attribute locations shared by all shader programs.
const (
	PositionLocation = 0
	NormalLocation   = 1
	ColorLocation    = 2
	TexCoordLocation = 3
	TangentLocation  = 4
)

// uniforms caches the uniform locations of one program.
type uniforms struct {
	modelView    int32
	projection   int32
	normalMatrix int32
	lightPos     int32
	useTexture   int32
	texture      int32
}

// State is the shared render state. A single instance is passed to every draw
// call within a frame; access follows a strict push/use/pop pattern.
type State struct {
	// Model-view stack. Invariant: never empty, the base identity frame
	// always exists.
	modelView []math.Mat4

	projection math.Mat4

	currentProgram  uint32
	standardProgram uint32

	lightPos math.Vec3

	locs map[uint32]uniforms
}

// NewState returns a render state with an identity base frame.
func NewState() *State {
	return &State{
		modelView:  []math.Mat4{math.Identity()},
		projection: math.Identity(),
		locs:       make(map[uint32]uniforms),
	}
}

// PushModelView duplicates the top of the model-view stack.
func (s *State) PushModelView() {
	s.modelView = append(s.modelView, s.ModelView())
}

// PopModelView removes the top of the model-view stack. Popping the sole
// remaining frame is a programming error and panics.
func (s *State) PopModelView() {
	if len(s.modelView) <= 1 {
		panic("render: model-view stack underflow")
	}
	s.modelView = s.modelView[:len(s.modelView)-1]
}

// StackDepth returns the number of frames on the model-view stack.
func (s *State) StackDepth() int {
	return len(s.modelView)
}

// ModelView returns a copy of the current (top) model-view matrix.
func (s *State) ModelView() math.Mat4 {
	return s.modelView[len(s.modelView)-1]
}

// SetModelView replaces the current model-view matrix.
func (s *State) SetModelView(m math.Mat4) {
	s.modelView[len(s.modelView)-1] = m
}

// MulModelView post-multiplies the current model-view matrix by m.
func (s *State) MulModelView(m math.Mat4) {
	s.SetModelView(s.ModelView().Mul(m))
}

// LoadIdentityModelView resets the stack to a single identity frame.
func (s *State) LoadIdentityModelView() {
	s.modelView = s.modelView[:1]
	s.modelView[0] = math.Identity()
}

// Projection returns the current projection matrix.
func (s *State) Projection() math.Mat4 {
	return s.projection
}

// SetProjection replaces the current projection matrix.
func (s *State) SetProjection(m math.Mat4) {
	s.projection = m
}

// LightPos returns the light position in world space.
func (s *State) LightPos() math.Vec3 {
	return s.lightPos
}

// SetLightPos sets the light position in world space.
func (s *State) SetLightPos(p math.Vec3) {
	s.lightPos = p
}

// SetStandardProgram registers the default lighting program.
func (s *State) SetStandardProgram(program uint32) {
	s.standardProgram = program
}

// StandardProgram returns the default lighting program handle.
func (s *State) StandardProgram() uint32 {
	return s.standardProgram
}

// CurrentProgram returns the program that uniform uploads currently target.
func (s *State) CurrentProgram() uint32 {
	return s.currentProgram
}

// SetCurrentProgram activates a shader program and caches its uniform
// locations on first use.
func (s *State) SetCurrentProgram(program uint32) {
	s.currentProgram = program
	gl.UseProgram(program)
	if _, ok := s.locs[program]; !ok {
		s.locs[program] = uniforms{
			modelView:    gl.GetUniformLocation(program, gl.Str("uModelView\x00")),
			projection:   gl.GetUniformLocation(program, gl.Str("uProjection\x00")),
			normalMatrix: gl.GetUniformLocation(program, gl.Str("uNormalMatrix\x00")),
			lightPos:     gl.GetUniformLocation(program, gl.Str("uLightPos\x00")),
			useTexture:   gl.GetUniformLocation(program, gl.Str("uUseTexture\x00")),
			texture:      gl.GetUniformLocation(program, gl.Str("uTexture\x00")),
		}
	}
}

// SwitchToStandardProgram makes the standard program current.
func (s *State) SwitchToStandardProgram() {
	s.SetCurrentProgram(s.standardProgram)
}

// ModelViewUniform returns the model-view uniform of the current program.
func (s *State) ModelViewUniform() int32 { return s.locs[s.currentProgram].modelView }

// ProjectionUniform returns the projection uniform of the current program.
func (s *State) ProjectionUniform() int32 { return s.locs[s.currentProgram].projection }

// NormalMatrixUniform returns the normal-matrix uniform of the current program.
func (s *State) NormalMatrixUniform() int32 { return s.locs[s.currentProgram].normalMatrix }

// UseTextureUniform returns the texture-toggle uniform of the current program.
func (s *State) UseTextureUniform() int32 { return s.locs[s.currentProgram].useTexture }

// TextureUniform returns the texture-sampler uniform of the current program.
func (s *State) TextureUniform() int32 { return s.locs[s.currentProgram].texture }

// NormalMatrix returns the normal matrix of the current model-view matrix.
func (s *State) NormalMatrix() [9]float32 {
	return s.ModelView().NormalMatrix()
}

// UploadModelView sends the current model-view and normal matrices to the
// current program.
func (s *State) UploadModelView() {
	mv := s.ModelView()
	gl.UniformMatrix4fv(s.ModelViewUniform(), 1, false, mv.Ptr())
	nm := s.NormalMatrix()
	gl.UniformMatrix3fv(s.NormalMatrixUniform(), 1, false, &nm[0])
}

// UploadProjection sends the projection matrix to the current program.
func (s *State) UploadProjection() {
	proj := s.projection
	gl.UniformMatrix4fv(s.ProjectionUniform(), 1, false, proj.Ptr())
}

// SetLightUniform uploads the light position, transformed by the current
// model-view matrix, to the current program.
func (s *State) SetLightUniform() {
	p := s.ModelView().TransformPoint(s.lightPos)
	gl.Uniform3f(s.locs[s.currentProgram].lightPos, p.X, p.Y, p.Z)
}

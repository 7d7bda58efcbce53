// Package scene owns the world content: the procedural terrain, the airplane
// models scattered over it, the orbiting light and the bump-mapped showcase
// sphere.
package scene

import (
	gomath "math"
	"math/rand"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrascape/internal/engine/camera"
	"github.com/Faultbox/terrascape/internal/engine/mesh"
	"github.com/Faultbox/terrascape/internal/engine/render"
	"github.com/Faultbox/terrascape/internal/engine/scene/shaders"
	"github.com/Faultbox/terrascape/internal/engine/shader"
	"github.com/Faultbox/terrascape/internal/engine/terrain"
	"github.com/Faultbox/terrascape/internal/engine/texture"
	"github.com/Faultbox/terrascape/internal/logger"
	"github.com/Faultbox/terrascape/pkg/math"
)

const (
	fieldOfView = 65 * gomath.Pi / 180
	nearPlane   = 0.5
	farPlane    = 10000

	// Degrees per second the light orbits the scene center.
	lightOrbitSpeed = 15

	axisLength = 10

	sphereLongDivs = 200
	sphereLatDivs  = 100
)

// Params configures scene creation.
type Params struct {
	TerrainLength     int
	TerrainWidth      int
	TerrainIterations int
	AirplaneCount     int
	Seed              int64

	// Optional assets; features degrade gracefully when files are missing.
	AirplaneModel    string
	BumpDiffuse      string
	BumpNormal       string
	BumpDisplacement string
}

// DrawStats summarizes one rendered frame.
type DrawStats struct {
	Triangles int
	Drawn     int
	Culled    int
}

type airplaneInstance struct {
	pos   math.Vec3
	color math.Vec3
}

// Scene holds all world content and the shared render state.
type Scene struct {
	state *render.State
	cam   *camera.FlyCamera

	gen    *terrain.Generator
	rng    *rand.Rand
	params Params

	heightmap   *terrain.Heightmap
	terrainMesh *mesh.Mesh

	airplaneMesh *mesh.Mesh
	airplanes    []airplaneInstance

	lightSphere *mesh.Mesh
	bumpSphere  *mesh.Mesh
	bumpPos     math.Vec3

	standardProgram uint32
	bumpProgram     uint32

	axesVAO      uint32
	axesPosVBO   uint32
	axesColorVBO uint32

	lightMotion bool
}

// New builds the scene: compiles the programs, generates the initial terrain,
// scatters the airplanes and creates the light and bump spheres. Requires a
// current GL context.
func New(params Params, cam *camera.FlyCamera) (*Scene, error) {
	seed := params.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Scene{
		state:       render.NewState(),
		cam:         cam,
		gen:         terrain.NewGenerator(seed),
		rng:         rand.New(rand.NewSource(seed + 1)),
		params:      params,
		lightMotion: true,
	}

	var err error
	s.standardProgram, err = shader.CompileProgram(shaders.StandardVertexShader, shaders.LambertFragmentShader)
	if err != nil {
		return nil, err
	}
	s.bumpProgram, err = shader.CompileProgram(shaders.BumpVertexShader, shaders.BumpFragmentShader)
	if err != nil {
		gl.DeleteProgram(s.standardProgram)
		return nil, err
	}
	s.state.SetStandardProgram(s.standardProgram)
	s.state.SetLightPos(math.Vec3{Y: 10, Z: 20})

	if err := s.buildTerrain(); err != nil {
		s.Release()
		return nil, err
	}
	s.loadAirplanes()
	s.buildSpheres()
	s.buildAxes()

	return s, nil
}

// buildTerrain generates a fresh terrain mesh and swaps it in. The previous
// terrain keeps drawing until the replacement is fully built and uploaded.
func (s *Scene) buildTerrain() error {
	kind := s.gen.RandomDisplacement()
	hm, err := s.gen.Generate(s.params.TerrainLength, s.params.TerrainWidth, s.params.TerrainIterations, kind)
	if err != nil {
		return err
	}

	fresh := mesh.New()
	fresh.GenerateTerrain(hm, kind)
	fresh.BuildBuffers()

	if s.terrainMesh == nil {
		s.terrainMesh = mesh.New()
	}
	s.terrainMesh.TakeFrom(fresh)
	s.heightmap = hm

	logger.Info("terrain generated",
		zap.Int("length", hm.Len()),
		zap.Int("width", hm.Width()),
		zap.Int("iterations", s.params.TerrainIterations),
		zap.Stringer("displacement", kind))
	return nil
}

// RegenerateTerrain replaces the terrain with a fresh random generation and
// re-scatters the airplanes onto the new surface.
func (s *Scene) RegenerateTerrain() error {
	if err := s.buildTerrain(); err != nil {
		return err
	}
	s.airplanes = placeAirplanes(s.rng, s.heightmap, s.params.AirplaneCount)
	return nil
}

func (s *Scene) loadAirplanes() {
	if s.params.AirplaneModel == "" || s.params.AirplaneCount == 0 {
		return
	}

	m := mesh.New()
	if err := m.LoadOBJ(s.params.AirplaneModel); err != nil {
		logger.Warn("airplane model unavailable", zap.Error(err))
		return
	}
	m.TranslateToCenter(math.Vec3{})
	m.ScaleToLength(4)
	m.BuildBuffers()

	s.airplaneMesh = m
	s.airplanes = placeAirplanes(s.rng, s.heightmap, s.params.AirplaneCount)
}

// placeAirplanes scatters count airplanes over the heightmap, each hovering a
// few units above the surface with a random bright color.
func placeAirplanes(rng *rand.Rand, hm *terrain.Heightmap, count int) []airplaneInstance {
	out := make([]airplaneInstance, 0, count)
	for i := 0; i < count; i++ {
		x := rng.Intn(hm.Len())
		z := rng.Intn(hm.Width())
		y := hm.At(x, z) + 2 + float64(rng.Intn(5))

		out = append(out, airplaneInstance{
			pos: math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)},
			color: math.Vec3{
				X: 0.3 + 0.7*rng.Float32(),
				Y: 0.3 + 0.7*rng.Float32(),
				Z: 0.3 + 0.7*rng.Float32(),
			},
		})
	}
	return out
}

func (s *Scene) buildSpheres() {
	s.lightSphere = mesh.New()
	s.lightSphere.GenerateSphere(0.5, 16, 8)
	s.lightSphere.SetStaticColor(math.Vec3{X: 1, Y: 1, Z: 0.8})
	s.lightSphere.BuildBuffers()

	s.bumpSphere = mesh.New()
	s.bumpSphere.GenerateSphere(3, sphereLongDivs, sphereLatDivs)
	s.bumpSphere.SetColoringMode(mesh.BumpMapping)
	s.bumpSphere.ToggleDiffuse(true)
	s.bumpSphere.ToggleNormalMapping(true)
	s.bumpSphere.ToggleDisplacementMapping(true)
	s.bumpSphere.BuildBuffers()

	s.bumpPos = math.Vec3{
		X: float32(s.params.TerrainLength) / 2,
		Y: 15,
		Z: float32(s.params.TerrainWidth) / 2,
	}

	loadTex := func(path string, assign func(uint32)) {
		if path == "" {
			return
		}
		id, err := texture.Load(path, texture.Repeat)
		if err != nil {
			logger.Warn("bump texture unavailable", zap.String("path", path), zap.Error(err))
			return
		}
		assign(id)
	}
	loadTex(s.params.BumpDiffuse, s.bumpSphere.SetTexture)
	loadTex(s.params.BumpNormal, s.bumpSphere.SetNormalTexture)
	loadTex(s.params.BumpDisplacement, s.bumpSphere.SetDisplacementTexture)
}

// buildAxes uploads the coordinate-axes overlay: one colored line per world
// axis, owned by the scene rather than any mesh.
func (s *Scene) buildAxes() {
	positions := []float32{
		0, 0, 0, axisLength, 0, 0,
		0, 0, 0, 0, axisLength, 0,
		0, 0, 0, 0, 0, axisLength,
	}
	colors := []float32{
		1, 0, 0, 1, 0, 0,
		0, 1, 0, 0, 1, 0,
		0, 0, 1, 0, 0, 1,
	}

	gl.GenVertexArrays(1, &s.axesVAO)
	gl.BindVertexArray(s.axesVAO)

	gl.GenBuffers(1, &s.axesPosVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.axesPosVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, gl.Ptr(positions), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(render.PositionLocation, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(render.PositionLocation)

	gl.GenBuffers(1, &s.axesColorVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.axesColorVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(colors)*4, gl.Ptr(colors), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(render.ColorLocation, 3, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(render.ColorLocation)

	gl.BindVertexArray(0)
}

// Update advances the animated parts of the scene by dt seconds.
func (s *Scene) Update(dt float32) {
	if s.lightMotion {
		angle := lightOrbitSpeed * dt * gomath.Pi / 180
		s.state.SetLightPos(s.state.LightPos().RotatedY(angle))
	}
}

// Draw renders one frame and returns its statistics. The aspect ratio comes
// from the current drawable size.
func (s *Scene) Draw(aspect float32) DrawStats {
	gl.ClearColor(0.05, 0.07, 0.12, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)

	s.state.SetProjection(math.Perspective(fieldOfView, aspect, nearPlane, farPlane))
	s.state.LoadIdentityModelView()
	s.state.SetModelView(s.cam.ViewMatrix())

	s.state.SwitchToStandardProgram()
	s.state.UploadProjection()
	s.state.SetLightUniform()

	var stats DrawStats
	s.drawAxes()

	stats.add(s.drawMeshAt(s.terrainMesh, math.Vec3{}))

	if s.airplaneMesh != nil {
		for _, a := range s.airplanes {
			s.airplaneMesh.SetStaticColor(a.color)
			stats.add(s.drawMeshAt(s.airplaneMesh, a.pos))
		}
	}

	stats.add(s.drawMeshAt(s.lightSphere, s.state.LightPos()))

	s.state.SetCurrentProgram(s.bumpProgram)
	s.state.UploadProjection()
	s.state.SetLightUniform()
	stats.add(s.drawMeshAt(s.bumpSphere, s.bumpPos))
	s.state.SwitchToStandardProgram()

	return stats
}

// drawMeshAt draws m translated to pos and reports the triangles issued along
// with whether the mesh was culled.
func (s *Scene) drawMeshAt(m *mesh.Mesh, pos math.Vec3) (int, bool) {
	if m == nil {
		return 0, false
	}

	s.state.PushModelView()
	defer s.state.PopModelView()
	s.state.MulModelView(math.Translate(pos.X, pos.Y, pos.Z))

	if !m.Visible(s.state) {
		return 0, true
	}
	return m.Draw(s.state), false
}

func (st *DrawStats) add(triangles int, culled bool) {
	if culled {
		st.Culled++
		return
	}
	st.Drawn++
	st.Triangles += triangles
}

func (s *Scene) drawAxes() {
	if s.axesVAO == 0 {
		return
	}
	s.state.UploadModelView()
	gl.Uniform1i(s.state.UseTextureUniform(), 0)
	gl.VertexAttrib3f(render.NormalLocation, 0, 0, 0)
	gl.BindVertexArray(s.axesVAO)
	gl.DrawArrays(gl.LINES, 0, 6)
	gl.BindVertexArray(0)
}

// ToggleBoundingBoxes switches the bounding-box overlay on every mesh.
func (s *Scene) ToggleBoundingBoxes(enable bool) {
	for _, m := range s.meshes() {
		m.ToggleBoundingBox(enable)
	}
}

// ToggleNormals switches the normal-line overlay on every mesh.
func (s *Scene) ToggleNormals(enable bool) {
	for _, m := range s.meshes() {
		m.ToggleNormals(enable)
	}
}

// ToggleLightMotion starts or stops the light orbit.
func (s *Scene) ToggleLightMotion() {
	s.lightMotion = !s.lightMotion
}

func (s *Scene) meshes() []*mesh.Mesh {
	out := make([]*mesh.Mesh, 0, 4)
	for _, m := range []*mesh.Mesh{s.terrainMesh, s.airplaneMesh, s.lightSphere, s.bumpSphere} {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

// Release frees all GPU resources of the scene.
func (s *Scene) Release() {
	for _, m := range s.meshes() {
		m.Clear()
	}

	if s.axesVAO != 0 {
		gl.DeleteBuffers(1, &s.axesPosVBO)
		gl.DeleteBuffers(1, &s.axesColorVBO)
		gl.DeleteVertexArrays(1, &s.axesVAO)
		s.axesVAO = 0
	}

	if s.standardProgram != 0 {
		gl.DeleteProgram(s.standardProgram)
		s.standardProgram = 0
	}
	if s.bumpProgram != 0 {
		gl.DeleteProgram(s.bumpProgram)
		s.bumpProgram = 0
	}
}

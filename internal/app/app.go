// Package app implements the interactive viewer loop: window and scene
// lifetime, input dispatch and frame timing.
package app

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrascape/internal/config"
	"github.com/Faultbox/terrascape/internal/engine/camera"
	"github.com/Faultbox/terrascape/internal/engine/input"
	"github.com/Faultbox/terrascape/internal/engine/scene"
	"github.com/Faultbox/terrascape/internal/engine/window"
	"github.com/Faultbox/terrascape/internal/logger"
	"github.com/Faultbox/terrascape/pkg/math"
)

// Default asset locations, resolved relative to the working directory.
const (
	airplaneModelPath    = "assets/models/airplane.obj"
	bumpDiffusePath      = "assets/textures/rock_diffuse.png"
	bumpNormalPath       = "assets/textures/rock_normal.png"
	bumpDisplacementPath = "assets/textures/rock_height.png"
)

// App is the running viewer instance.
type App struct {
	cfg     *config.Config
	running bool

	window *window.Window
	input  *input.Input
	cam    *camera.FlyCamera
	scene  *scene.Scene

	showBounds  bool
	showNormals bool
}

// New creates the window, GL context and scene.
func New(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	var err error
	a.window, err = window.New(window.Config{
		Title:      "Terrascape",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	a.cam = camera.NewFlyCamera(math.Vec3{X: -12, Y: 32, Z: 32})
	// Config speed is units per millisecond of movement input.
	a.cam.MovementSpeed = cfg.Camera.MovementSpeed * 1000
	a.cam.MouseSensitivity = cfg.Camera.MouseSensitivity * 0.25
	a.cam.SetAngles(135, -35)

	a.scene, err = scene.New(scene.Params{
		TerrainLength:     cfg.Terrain.Length,
		TerrainWidth:      cfg.Terrain.Width,
		TerrainIterations: cfg.Terrain.Iterations,
		AirplaneCount:     cfg.Terrain.Airplanes,
		Seed:              cfg.Terrain.Seed,
		AirplaneModel:     airplaneModelPath,
		BumpDiffuse:       bumpDiffusePath,
		BumpNormal:        bumpNormalPath,
		BumpDisplacement:  bumpDisplacementPath,
	}, a.cam)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("creating scene: %w", err)
	}

	a.input = input.New()
	a.window.CaptureMouse(true)

	return a, nil
}

// Run drives the frame loop until quit.
func (a *App) Run() error {
	a.running = true
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	var lastStats scene.DrawStats

	logger.Info("starting viewer loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()
		a.handleMovement(dt)

		a.scene.Update(dt)
		lastStats = a.scene.Draw(a.window.AspectRatio())
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("frame stats",
				zap.Int("fps", frameCount),
				zap.Int("triangles", lastStats.Triangles),
				zap.Int("drawn", lastStats.Drawn),
				zap.Int("culled", lastStats.Culled))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// handleEvents reacts to discrete events: quit, resize, look and the toggle
// keys.
func (a *App) handleEvents() {
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			gl.Viewport(0, 0, int32(e.Width), int32(e.Height))

		case input.EventMouseLook:
			a.cam.Rotate(float32(e.DeltaX), -float32(e.DeltaY))

		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				a.running = false
			case sdl.SCANCODE_R:
				if err := a.scene.RegenerateTerrain(); err != nil {
					logger.Error("terrain regeneration failed", zap.Error(err))
				}
			case sdl.SCANCODE_B:
				a.showBounds = !a.showBounds
				a.scene.ToggleBoundingBoxes(a.showBounds)
			case sdl.SCANCODE_N:
				a.showNormals = !a.showNormals
				a.scene.ToggleNormals(a.showNormals)
			case sdl.SCANCODE_L:
				a.scene.ToggleLightMotion()
			}
		}
	}
}

// handleMovement applies the held movement keys scaled by the elapsed time.
func (a *App) handleMovement(dt float32) {
	var forward, sideways, upward float32

	if a.input.IsKeyDown(sdl.SCANCODE_W) {
		forward++
	}
	if a.input.IsKeyDown(sdl.SCANCODE_S) {
		forward--
	}
	if a.input.IsKeyDown(sdl.SCANCODE_D) {
		sideways++
	}
	if a.input.IsKeyDown(sdl.SCANCODE_A) {
		sideways--
	}
	if a.input.IsKeyDown(sdl.SCANCODE_E) {
		upward++
	}
	if a.input.IsKeyDown(sdl.SCANCODE_Q) {
		upward--
	}

	if forward != 0 || sideways != 0 || upward != 0 {
		a.cam.Move(forward*dt, sideways*dt, upward*dt)
	}
}

// Close releases the scene and window.
func (a *App) Close() {
	if a.scene != nil {
		a.scene.Release()
	}
	if a.window != nil {
		a.window.Close()
	}
}

// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Camera   CameraConfig   `yaml:"camera"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// TerrainConfig holds terrain generation parameters.
type TerrainConfig struct {
	Length     int   `yaml:"length"`
	Width      int   `yaml:"width"`
	Iterations int   `yaml:"iterations"`
	Airplanes  int   `yaml:"airplanes"`
	Seed       int64 `yaml:"seed"` // 0 means time-seeded
}

// CameraConfig holds camera control settings.
type CameraConfig struct {
	// Units per millisecond of held movement input.
	MovementSpeed    float32 `yaml:"movement_speed"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Terrain: TerrainConfig{
			Length:     50,
			Width:      50,
			Iterations: 4000,
			Airplanes:  20,
			Seed:       0,
		},
		Camera: CameraConfig{
			MovementSpeed:    0.02,
			MouseSensitivity: 1.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

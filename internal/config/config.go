// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Pools   PoolsConfig   `yaml:"pools"`
	Camera  CameraConfig  `yaml:"camera"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
}

// RenderConfig holds renderer settings.
type RenderConfig struct {
	Width          int     `yaml:"width"`  // Headless output width
	Height         int     `yaml:"height"` // Headless output height
	FovY           float64 `yaml:"fov_y"`  // Degrees
	TallPixelRatio float64 `yaml:"tall_pixel_ratio"`
	Wireframe      bool    `yaml:"wireframe"`
	TargetFPS      int     `yaml:"target_fps"`
}

// PoolsConfig caps renderer resource pools. Zero means unbounded.
type PoolsConfig struct {
	MaxVertexBuffers    int `yaml:"max_vertex_buffers"`
	MaxAttributeBuffers int `yaml:"max_attribute_buffers"`
	MaxIndexBuffers     int `yaml:"max_index_buffers"`
	MaxObjectTextures   int `yaml:"max_object_textures"`
}

// CameraConfig holds the starting pose and controls.
type CameraConfig struct {
	Position  [3]float64 `yaml:"position"`
	Yaw       float64    `yaml:"yaw"`   // Degrees
	Pitch     float64    `yaml:"pitch"` // Degrees
	MoveSpeed float64    `yaml:"move_speed"`
	TurnSpeed float64    `yaml:"turn_speed"` // Degrees per key press
}

// SceneConfig holds optional asset paths.
type SceneConfig struct {
	ModelPath   string `yaml:"model_path"`   // glTF/GLB model placed in the room
	TexturePath string `yaml:"texture_path"` // PNG/BMP used for the walls
	PalettePath string `yaml:"palette_path"` // Paletted image whose color table becomes the palette
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// OutputConfig selects headless rendering.
type OutputConfig struct {
	Screenshot string `yaml:"screenshot"` // .png or .bmp; empty runs the terminal viewer
	Frames     int    `yaml:"frames"`     // Frames rendered before the screenshot is taken
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:          320,
			Height:         200,
			FovY:           60,
			TallPixelRatio: 1.2,
			Wireframe:      false,
			TargetFPS:      30,
		},
		Camera: CameraConfig{
			Position:  [3]float64{0, 1.6, -6},
			MoveSpeed: 0.25,
			TurnSpeed: 5,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Output: OutputConfig{
			Frames: 1,
		},
	}
}

// Validate reports every setting that would make the viewer fail.
func (c *Config) Validate() error {
	var errs []error
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size %dx%d must be positive", c.Render.Width, c.Render.Height))
	}
	if c.Render.FovY <= 0 || c.Render.FovY >= 180 {
		errs = append(errs, fmt.Errorf("fov_y %v must be between 0 and 180", c.Render.FovY))
	}
	if c.Render.TallPixelRatio <= 0 {
		errs = append(errs, fmt.Errorf("tall_pixel_ratio %v must be positive", c.Render.TallPixelRatio))
	}
	if c.Render.TargetFPS <= 0 {
		errs = append(errs, fmt.Errorf("target_fps %d must be positive", c.Render.TargetFPS))
	}
	if c.Pools.MaxVertexBuffers < 0 || c.Pools.MaxAttributeBuffers < 0 ||
		c.Pools.MaxIndexBuffers < 0 || c.Pools.MaxObjectTextures < 0 {
		errs = append(errs, errors.New("pool limits must not be negative"))
	}
	if c.Camera.MoveSpeed <= 0 || c.Camera.TurnSpeed <= 0 {
		errs = append(errs, errors.New("camera speeds must be positive"))
	}
	if c.Output.Frames < 1 {
		errs = append(errs, fmt.Errorf("output frames %d must be at least 1", c.Output.Frames))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Logging.Level))
	}
	return errors.Join(errs...)
}

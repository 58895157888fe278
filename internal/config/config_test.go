package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Render.Width != 320 || cfg.Render.Height != 200 {
		t.Errorf("expected 320x200, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Render.TallPixelRatio != 1.2 {
		t.Errorf("expected tall pixel ratio 1.2, got %v", cfg.Render.TallPixelRatio)
	}
	if cfg.Render.Wireframe {
		t.Error("expected wireframe to be off by default")
	}
	if cfg.Pools != (PoolsConfig{}) {
		t.Errorf("expected unbounded pools, got %+v", cfg.Pools)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Output.Screenshot != "" || cfg.Output.Frames != 1 {
		t.Errorf("unexpected output defaults %+v", cfg.Output)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
render:
  width: 640
  height: 400
  fov_y: 90
  wireframe: true

pools:
  max_object_textures: 64

camera:
  position: [1, 2, 3]
  yaw: 45

scene:
  model_path: "assets/statue.glb"

logging:
  level: "debug"
  log_file: "arena.log"

output:
  screenshot: "frame.bmp"
  frames: 3
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Render.Width != 640 || cfg.Render.Height != 400 {
		t.Errorf("expected 640x400, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Render.FovY != 90 || !cfg.Render.Wireframe {
		t.Errorf("render = %+v", cfg.Render)
	}
	// Unset keys keep their defaults
	if cfg.Render.TallPixelRatio != 1.2 {
		t.Errorf("expected default tall pixel ratio, got %v", cfg.Render.TallPixelRatio)
	}
	if cfg.Pools.MaxObjectTextures != 64 {
		t.Errorf("expected 64 textures, got %d", cfg.Pools.MaxObjectTextures)
	}
	if cfg.Camera.Position != [3]float64{1, 2, 3} || cfg.Camera.Yaw != 45 {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	if cfg.Scene.ModelPath != "assets/statue.glb" {
		t.Errorf("model path = %q", cfg.Scene.ModelPath)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "arena.log" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Output.Screenshot != "frame.bmp" || cfg.Output.Frames != 3 {
		t.Errorf("output = %+v", cfg.Output)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
render:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Render.Width = 0 }, "render size"},
		{"fov too wide", func(c *Config) { c.Render.FovY = 180 }, "fov_y"},
		{"flat pixels", func(c *Config) { c.Render.TallPixelRatio = 0 }, "tall_pixel_ratio"},
		{"no fps", func(c *Config) { c.Render.TargetFPS = 0 }, "target_fps"},
		{"negative pool", func(c *Config) { c.Pools.MaxIndexBuffers = -1 }, "pool limits"},
		{"frozen camera", func(c *Config) { c.Camera.MoveSpeed = 0 }, "camera speeds"},
		{"no frames", func(c *Config) { c.Output.Frames = 0 }, "frames"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error mentioning %q", err, tt.want)
			}
		})
	}

	t.Run("reports every problem", func(t *testing.T) {
		cfg := Default()
		cfg.Render.Width = 0
		cfg.Logging.Level = "loud"
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "render size") || !strings.Contains(err.Error(), "log level") {
			t.Errorf("Validate() = %v", err)
		}
	})
}

func TestSaveTo(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	cfg := Default()
	cfg.Render.Width = 800
	cfg.Scene.TexturePath = "walls.bmp"
	cfg.Camera.Position = [3]float64{4, 5, 6}

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, configPath); err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}

	if loaded.Render.Width != 800 {
		t.Errorf("expected width 800, got %d", loaded.Render.Width)
	}
	if loaded.Scene.TexturePath != "walls.bmp" {
		t.Errorf("expected texture walls.bmp, got %s", loaded.Scene.TexturePath)
	}
	if loaded.Camera.Position != cfg.Camera.Position {
		t.Errorf("expected position %v, got %v", cfg.Camera.Position, loaded.Camera.Position)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(t *testing.T, cfg *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected debug level, got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "size and fov flags",
			setup: func() {
				*flagWidth = 1024
				*flagHeight = 768
				*flagFov = 75
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Render.Width != 1024 || cfg.Render.Height != 768 || cfg.Render.FovY != 75 {
					t.Errorf("render = %+v", cfg.Render)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
				*flagFov = 0
			},
		},
		{
			name: "scene flags",
			setup: func() {
				*flagModel = "m.glb"
				*flagTexture = "t.png"
				*flagPalette = "p.bmp"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene != (SceneConfig{ModelPath: "m.glb", TexturePath: "t.png", PalettePath: "p.bmp"}) {
					t.Errorf("scene = %+v", cfg.Scene)
				}
			},
			teardown: func() {
				*flagModel = ""
				*flagTexture = ""
				*flagPalette = ""
			},
		},
		{
			name: "output flags",
			setup: func() {
				*flagScreenshot = "out.png"
				*flagFrames = 5
				*flagWireframe = true
				*flagLogFile = "arena.log"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.Screenshot != "out.png" || cfg.Output.Frames != 5 {
					t.Errorf("output = %+v", cfg.Output)
				}
				if !cfg.Render.Wireframe {
					t.Error("expected wireframe")
				}
				if cfg.Logging.LogFile != "arena.log" {
					t.Errorf("log file = %q", cfg.Logging.LogFile)
				}
			},
			teardown: func() {
				*flagScreenshot = ""
				*flagFrames = 0
				*flagWireframe = false
				*flagLogFile = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
render:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file
	if cfg.Render.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Render.Width)
	}
	if cfg.Render.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Render.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  fov_y: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected validation error")
	}
}

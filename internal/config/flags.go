package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWidth      = flag.Int("width", 0, "Headless output width")
	flagHeight     = flag.Int("height", 0, "Headless output height")
	flagFov        = flag.Float64("fov", 0, "Vertical field of view in degrees")
	flagWireframe  = flag.Bool("wireframe", false, "Overlay triangle edges")
	flagModel      = flag.String("model", "", "glTF/GLB model to place in the room")
	flagTexture    = flag.String("texture", "", "PNG/BMP wall texture")
	flagPalette    = flag.String("palette", "", "Paletted image providing the color table")
	flagScreenshot = flag.String("screenshot", "", "Render headless and save a .png or .bmp")
	flagFrames     = flag.Int("frames", 0, "Frames to render before the screenshot")
	flagLogFile    = flag.String("log-file", "", "Write logs to a rotating file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.Height = *flagHeight
	}
	if *flagFov > 0 {
		cfg.Render.FovY = *flagFov
	}
	if *flagWireframe {
		cfg.Render.Wireframe = true
	}
	if *flagModel != "" {
		cfg.Scene.ModelPath = *flagModel
	}
	if *flagTexture != "" {
		cfg.Scene.TexturePath = *flagTexture
	}
	if *flagPalette != "" {
		cfg.Scene.PalettePath = *flagPalette
	}
	if *flagScreenshot != "" {
		cfg.Output.Screenshot = *flagScreenshot
	}
	if *flagFrames > 0 {
		cfg.Output.Frames = *flagFrames
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}

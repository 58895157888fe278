// arena - software-rendered first-person viewer
// Walks a small textured room drawn by the CPU renderer, in the terminal or
// headless to a screenshot.
//
// Controls:
//
//	W/S or Up/Down     - Walk forward/back
//	A/D                - Strafe left/right
//	Left/Right         - Turn
//	PgUp/PgDn          - Look up/down
//	Space/C            - Rise/sink
//	X                  - Toggle wireframe
//	?                  - Toggle HUD overlay
//	Esc                - Quit
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/taigrr/arena/internal/config"
	"github.com/taigrr/arena/internal/logger"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "arena - software-rendered first-person viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: arena [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Walk and strafe\n")
		fmt.Fprintf(os.Stderr, "  Arrows      - Walk and turn\n")
		fmt.Fprintf(os.Stderr, "  PgUp/PgDn   - Look up/down\n")
		fmt.Fprintf(os.Stderr, "  Space/C     - Rise/sink\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The terminal viewer owns the screen, so it only logs to the file
	headless := cfg.Output.Screenshot != ""
	fileCfg := logger.FileConfig{
		Path:       cfg.Logging.LogFile,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, headless); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if headless {
		err = runHeadless(cfg)
	} else {
		err = runTerminal(cfg)
	}
	if err != nil {
		logger.Error("arena failed", zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

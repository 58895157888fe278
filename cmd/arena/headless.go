package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/taigrr/arena/internal/config"
	"github.com/taigrr/arena/internal/logger"
	"github.com/taigrr/arena/pkg/render"
)

// runHeadless renders cfg.Output.Frames frames without a terminal, turning
// one step right per extra frame, and saves the last one.
func runHeadless(cfg *config.Config) error {
	log := logger.Named("headless")

	save, err := screenshotWriter(cfg.Output.Screenshot)
	if err != nil {
		return err
	}

	r := newRenderer(cfg)
	if err := r.Init(render.RenderInitSettings{Width: cfg.Render.Width, Height: cfg.Render.Height}); err != nil {
		return err
	}
	defer r.Shutdown()

	sc, err := newScene(r, cfg, logger.Named("scene"))
	if err != nil {
		return err
	}
	defer sc.release()

	fb := render.NewFramebuffer(cfg.Render.Width, cfg.Render.Height)
	v := newViewer(cfg)

	for frame := range cfg.Output.Frames {
		if frame > 0 {
			v.cam.Rotate(0, v.turnStep)
		}
		cam := v.snapshot(fb.Width, fb.Height)
		sc.draw(&cam, fb, v.wireframe)

		stats := r.ProfilerData()
		log.Debug("frame rendered",
			zap.Int("frame", frame),
			zap.Int("drawCalls", stats.DrawCallCount),
			zap.Int("presented", stats.PresentedTriangleCount),
			zap.Int("visible", stats.VisibleTriangleCount))
	}

	if err := save(fb, cfg.Output.Screenshot); err != nil {
		return err
	}
	log.Info("screenshot saved", zap.String("path", cfg.Output.Screenshot))
	return nil
}

// screenshotWriter picks the image encoder from the file extension.
func screenshotWriter(path string) (func(*render.Framebuffer, string) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return (*render.Framebuffer).SavePNG, nil
	case ".bmp":
		return (*render.Framebuffer).SaveBMP, nil
	}
	return nil, fmt.Errorf("unsupported screenshot format %q (want .png or .bmp)", path)
}

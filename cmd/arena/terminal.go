package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/arena/internal/config"
	"github.com/taigrr/arena/internal/logger"
	"github.com/taigrr/arena/pkg/render"
)

// runTerminal runs the interactive viewer until Esc, Ctrl+C or a signal.
func runTerminal(cfg *config.Config) error {
	log := logger.Named("viewer")

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	// Each cell shows two pixels stacked
	r := newRenderer(cfg)
	if err := r.Init(render.RenderInitSettings{Width: width, Height: height * 2}); err != nil {
		cleanup()
		return err
	}
	defer r.Shutdown()

	sc, err := newScene(r, cfg, logger.Named("scene"))
	if err != nil {
		cleanup()
		return err
	}
	defer sc.release()

	fb := render.NewFramebuffer(width, height*2)
	v := newViewer(cfg)
	hud := NewHUD()

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	events := term.Events()
	ticker := time.NewTicker(time.Second / time.Duration(cfg.Render.TargetFPS))
	defer ticker.Stop()

	log.Info("viewer started", zap.Int("columns", width), zap.Int("rows", height))

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil

		case ev, ok := <-events:
			if !ok {
				cleanup()
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				if ev.Width <= 0 || ev.Height <= 0 {
					continue
				}
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				if err := r.Resize(width, height*2); err != nil {
					cleanup()
					return err
				}
				fb.Resize(width, height*2)
				log.Debug("terminal resized", zap.Int("columns", width), zap.Int("rows", height))

			case uv.KeyPressEvent:
				if handleKey(ev, v) {
					cleanup()
					return nil
				}
			}

		case <-ticker.C:
			v.update()

			cam := v.snapshot(fb.Width, fb.Height)
			sc.draw(&cam, fb, v.wireframe)
			fb.Draw(term, uv.Rect(0, 0, width, height))

			hud.UpdateFPS()
			if v.showHUD {
				hud.Draw(term, width, height, r.ProfilerData(), v)
			}

			if err := term.Display(); err != nil {
				cleanup()
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}

// handleKey applies one key press to the viewer and reports whether to quit.
func handleKey(ev uv.KeyPressEvent, v *viewer) bool {
	switch {
	case ev.MatchString("escape", "ctrl+c"):
		return true
	case ev.MatchString("w", "up"):
		v.walk(1)
	case ev.MatchString("s", "down"):
		v.walk(-1)
	case ev.MatchString("a"):
		v.strafe(-1)
	case ev.MatchString("d"):
		v.strafe(1)
	case ev.MatchString("left"):
		v.turn(-1)
	case ev.MatchString("right"):
		v.turn(1)
	case ev.MatchString("pgup"):
		v.look(1)
	case ev.MatchString("pgdown"):
		v.look(-1)
	case ev.MatchString("space"):
		v.rise(1)
	case ev.MatchString("c"):
		v.rise(-1)
	case ev.MatchString("x"):
		v.wireframe = !v.wireframe
	case ev.MatchString("?", "shift+/"):
		v.showHUD = !v.showHUD
	}
	return false
}

// newRenderer creates a renderer with the configured pool limits.
func newRenderer(cfg *config.Config) *render.SoftwareRenderer {
	return render.NewSoftwareRenderer(
		render.WithLogger(logger.Named("render")),
		render.WithPoolLimits(render.PoolLimits{
			VertexBuffers:    cfg.Pools.MaxVertexBuffers,
			AttributeBuffers: cfg.Pools.MaxAttributeBuffers,
			IndexBuffers:     cfg.Pools.MaxIndexBuffers,
			ObjectTextures:   cfg.Pools.MaxObjectTextures,
		}),
	)
}

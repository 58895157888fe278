package main

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/taigrr/arena/internal/config"
	"github.com/taigrr/arena/pkg/render"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Render.Width = 80
	cfg.Render.Height = 50
	return cfg
}

func TestSceneDraws(t *testing.T) {
	cfg := testConfig()
	r := newRenderer(cfg)
	if err := r.Init(render.RenderInitSettings{Width: cfg.Render.Width, Height: cfg.Render.Height}); err != nil {
		t.Fatal(err)
	}
	defer r.Shutdown()

	sc, err := newScene(r, cfg, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer sc.release()

	fb := render.NewFramebuffer(cfg.Render.Width, cfg.Render.Height)
	v := newViewer(cfg)
	cam := v.snapshot(fb.Width, fb.Height)
	sc.draw(&cam, fb, false)

	stats := r.ProfilerData()
	if stats.DrawCallCount != len(sc.drawCalls) {
		t.Errorf("DrawCallCount = %d, want %d", stats.DrawCallCount, len(sc.drawCalls))
	}
	if stats.PresentedTriangleCount != sc.triangles {
		t.Errorf("PresentedTriangleCount = %d, want %d", stats.PresentedTriangleCount, sc.triangles)
	}
	if stats.VisibleTriangleCount == 0 {
		t.Error("no triangles visible from the start position")
	}

	// Standing inside the room, walls cover almost the whole view
	cleared := 0
	for _, p := range fb.Pixels {
		if p == render.ClearColor {
			cleared++
		}
	}
	if cleared > len(fb.Pixels)/20 {
		t.Errorf("%d of %d pixels left at the clear color", cleared, len(fb.Pixels))
	}
}

func TestSceneReleaseFreesTextures(t *testing.T) {
	cfg := testConfig()
	// Palette plus the six scene textures
	cfg.Pools.MaxObjectTextures = 7
	r := newRenderer(cfg)
	if err := r.Init(render.RenderInitSettings{Width: 8, Height: 8}); err != nil {
		t.Fatal(err)
	}
	defer r.Shutdown()

	sc, err := newScene(r, cfg, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := newScene(r, cfg, zap.NewNop()); err == nil {
		t.Fatal("second scene fit in a pool sized for one")
	}

	sc.release()
	sc, err = newScene(r, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("scene after release: %v", err)
	}
	sc.release()
}

func TestLoadPalette(t *testing.T) {
	colors, err := loadPalette("")
	if err != nil {
		t.Fatal(err)
	}
	if len(colors) != render.PaletteSize {
		t.Fatalf("len = %d, want %d", len(colors), render.PaletteSize)
	}
	if colors[0] != 0 {
		t.Errorf("index 0 = %#x, want transparent", colors[0])
	}
	for _, idx := range []int{rampGray, rampBrown, rampBlue, rampGreen} {
		if colors[idx]>>24 != 0xFF {
			t.Errorf("ramp start %d = %#x, want opaque", idx, colors[idx])
		}
	}

	if _, err := loadPalette(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for a missing palette")
	}
}

func TestRunHeadless(t *testing.T) {
	cfg := testConfig()
	cfg.Output.Frames = 3
	cfg.Output.Screenshot = filepath.Join(t.TempDir(), "shot.png")

	if err := runHeadless(cfg); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(cfg.Output.Screenshot)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != cfg.Render.Width || b.Dy() != cfg.Render.Height {
		t.Errorf("screenshot is %dx%d, want %dx%d", b.Dx(), b.Dy(), cfg.Render.Width, cfg.Render.Height)
	}
}

func TestRunHeadlessRejectsFormat(t *testing.T) {
	cfg := testConfig()
	cfg.Output.Screenshot = filepath.Join(t.TempDir(), "shot.gif")

	err := runHeadless(cfg)
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("err = %v, want unsupported format", err)
	}
	if _, statErr := os.Stat(cfg.Output.Screenshot); !os.IsNotExist(statErr) {
		t.Error("screenshot written for an unsupported format")
	}
}

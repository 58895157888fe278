package main

import (
	"fmt"
	"image/color"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/arena/pkg/render"
)

var (
	hudBg    = color.RGBA{0, 0, 0, 255}
	hudGreen = color.RGBA{80, 250, 120, 255}
	hudWhite = color.RGBA{240, 240, 240, 255}
	hudCyan  = color.RGBA{100, 220, 250, 255}
	hudDim   = color.RGBA{150, 150, 110, 255}
)

// HUD draws frame statistics over the top and bottom terminal rows.
type HUD struct {
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD.
func NewHUD() *HUD {
	return &HUD{fpsTime: time.Now()}
}

// UpdateFPS counts a frame. Call once per frame.
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Draw writes the overlay onto scr, which is width x height cells.
func (h *HUD) Draw(scr uv.Screen, width, height int, stats render.ProfilerData, v *viewer) {
	fps := fmt.Sprintf(" %.0f FPS ", h.fps)
	drawText(scr, 0, 0, width, fps, hudGreen)

	size := fmt.Sprintf(" %dx%d ", stats.Width, stats.Height)
	drawText(scr, max((width-len(size))/2, 0), 0, width, size, hudWhite)

	tris := fmt.Sprintf(" %d/%d tris %d draws ", stats.VisibleTriangleCount, stats.PresentedTriangleCount, stats.DrawCallCount)
	drawText(scr, max(width-len(tris), 0), 0, width, tris, hudCyan)

	check := "[ ]"
	if v.wireframe {
		check = "[x]"
	}
	drawText(scr, 0, height-1, width, " "+check+" Wireframe ", hudWhite)

	chunk := v.cam.Chunk
	where := fmt.Sprintf(" chunk %d,%d  %.1f %.1f %.1f ", chunk.X, chunk.Z, v.cam.Point.X, v.cam.Point.Y, v.cam.Point.Z)
	drawText(scr, max(width-len(where), 0), height-1, width, where, hudDim)
}

// drawText writes s at (x, y) on a black background, clipped to width.
func drawText(scr uv.Screen, x, y, width int, s string, fg color.Color) {
	for _, r := range s {
		if x >= width {
			return
		}
		scr.SetCell(x, y, &uv.Cell{
			Content: string(r),
			Width:   1,
			Style:   uv.Style{Fg: fg, Bg: hudBg},
		})
		x++
	}
}

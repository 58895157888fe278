package render

import (
	"github.com/taigrr/arena/pkg/math3d"
)

// WireframeColor is the default edge color for the wireframe overlay.
const WireframeColor = ColorYellow

// drawTriangleEdges outlines a projected triangle on top of the color buffer.
// Depth is neither tested nor written.
func drawTriangleEdges(colors []uint32, width, height int, s [3]math3d.Vec2, argb uint32) {
	for i := range 3 {
		a := s[i]
		b := s[(i+1)%3]
		drawLine(colors, width, height, int(a.X), int(a.Y), int(b.X), int(b.Y), argb)
	}
}

// drawLine rasterizes a line with Bresenham's algorithm, skipping pixels
// outside the buffer.
func drawLine(colors []uint32, width, height, x0, y0, x1, y1 int, argb uint32) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if x0 >= 0 && x0 < width && y0 >= 0 && y0 < height {
			colors[y0*width+x0] = argb
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package render

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/bmp"
)

// Framebuffer is the ARGB output image the renderer writes into.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []uint32 // Row-major 0xAARRGGBB, no padding
}

// NewFramebuffer creates a framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}
}

// Resize reallocates the pixels. Contents are cleared.
func (fb *Framebuffer) Resize(width, height int) {
	fb.Width = width
	fb.Height = height
	fb.Pixels = make([]uint32, width*height)
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(argb uint32) {
	fillUint32(fb.Pixels, argb)
}

// SetPixel sets a pixel at (x, y). Out-of-bounds writes are ignored.
func (fb *Framebuffer) SetPixel(x, y int, argb uint32) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = argb
}

// GetPixel returns the color at (x, y), or 0 when out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) uint32 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1).
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, argb uint32) {
	drawLine(fb.Pixels, fb.Width, fb.Height, x0, y0, x1, y1, argb)
}

// ToImage converts the framebuffer to an image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := range fb.Height {
		for x := range fb.Width {
			img.SetRGBA(x, y, UnpackARGB(fb.Pixels[y*fb.Width+x]))
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return png.Encode(f, fb.ToImage())
}

// SaveBMP saves the framebuffer as a BMP file.
func (fb *Framebuffer) SaveBMP(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return bmp.Encode(f, fb.ToImage())
}

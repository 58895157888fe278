package render

import "image/color"

// Colors are stored as 0xAARRGGBB.
const (
	ColorBlack   uint32 = 0xFF000000
	ColorWhite   uint32 = 0xFFFFFFFF
	ColorRed     uint32 = 0xFFFF0000
	ColorGreen   uint32 = 0xFF00FF00
	ColorBlue    uint32 = 0xFF0000FF
	ColorYellow  uint32 = 0xFFFFFF00
	ColorMagenta uint32 = 0xFFFF00FF
)

// ClearColor is the background every frame starts from.
const ClearColor = ColorBlack

// PackARGB packs channels into 0xAARRGGBB.
func PackARGB(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// UnpackARGB converts 0xAARRGGBB to a color.RGBA.
func UnpackARGB(argb uint32) color.RGBA {
	return color.RGBA{
		R: uint8(argb >> 16),
		G: uint8(argb >> 8),
		B: uint8(argb),
		A: uint8(argb >> 24),
	}
}

// ColorToARGB converts any color to 0xAARRGGBB.
func ColorToARGB(c color.Color) uint32 {
	r, g, b, a := c.RGBA()
	// RGBA returns 16-bit values, scale to 8-bit
	return PackARGB(uint8(a>>8), uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

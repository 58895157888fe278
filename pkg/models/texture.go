package models

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"golang.org/x/image/draw"

	"github.com/taigrr/arena/pkg/render"
)

// alphaThreshold is the alpha below which a pixel maps to the transparent
// palette index 0.
const alphaThreshold = 0x80

// IndexImage converts img to palette indices for an 8-bit object texture.
// Images larger than maxSize on either side are scaled down first; maxSize
// <= 0 disables scaling. Opaque pixels map to the nearest non-zero palette
// entry, so index 0 stays reserved for transparency.
func IndexImage(img image.Image, palette []uint32, maxSize int) *render.TextureBuilder {
	img = fitImage(img, maxSize)
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	// Entry i of opaque is palette index i+1
	opaque := make(color.Palette, 0, len(palette))
	for _, argb := range palette[min(1, len(palette)):min(len(palette), render.PaletteSize)] {
		opaque = append(opaque, render.UnpackARGB(argb))
	}

	texels := make([]uint8, width*height)
	if len(opaque) == 0 {
		return render.NewPalettedTextureBuilder(width, height, texels)
	}

	for y := range height {
		for x := range width {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			if _, _, _, a := c.RGBA(); a>>8 < alphaThreshold {
				continue
			}
			texels[y*width+x] = uint8(opaque.Index(c) + 1)
		}
	}
	return render.NewPalettedTextureBuilder(width, height, texels)
}

// LoadTexture decodes a PNG, JPEG or BMP file into an 8-bit texture builder.
// Paletted images keep their indices; anything else is matched against
// palette with IndexImage.
func LoadTexture(path string, palette []uint32, maxSize int) (*render.TextureBuilder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if _, ok := img.(*image.Paletted); ok && maxSize <= 0 {
		return render.TextureBuilderFromImage(img), nil
	}
	return IndexImage(img, palette, maxSize), nil
}

// fitImage scales img down to fit in a maxSize square, keeping its aspect
// ratio.
func fitImage(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if maxSize <= 0 || (width <= maxSize && height <= maxSize) {
		return img
	}

	scale := float64(maxSize) / float64(max(width, height))
	dstW := max(1, int(float64(width)*scale))
	dstH := max(1, int(float64(height)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

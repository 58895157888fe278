package render

import (
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"os"

	_ "golang.org/x/image/bmp" // Register BMP decoder
)

// ObjectTexture is either an 8-bit indexed image or a palette of ARGB colors.
// Exactly one of Texels and Palette is set.
type ObjectTexture struct {
	Width   int
	Height  int
	Texels  []uint8  // Row-major palette indices
	Palette []uint32 // ARGB colors, Width*Height entries
}

func (t *ObjectTexture) init8Bit(width, height int) {
	t.Width = width
	t.Height = height
	t.Texels = make([]uint8, width*height)
	t.Palette = nil
}

func (t *ObjectTexture) initPalette(width, height int) {
	t.Width = width
	t.Height = height
	t.Texels = nil
	t.Palette = make([]uint32, width*height)
}

// IsPalette reports whether the texture holds palette colors.
func (t *ObjectTexture) IsPalette() bool {
	return t.Palette != nil
}

// LockedTexture exposes a texture's storage for writing. IsTrueColor means
// Colors is set instead of Texels.
type LockedTexture struct {
	Texels      []uint8
	Colors      []uint32
	IsTrueColor bool
}

// IsValid reports whether the lock refers to any storage.
func (l LockedTexture) IsValid() bool {
	return l.Texels != nil || l.Colors != nil
}

// TextureBuilderType is the pixel format of a TextureBuilder.
type TextureBuilderType int

const (
	TextureBuilderPaletted TextureBuilderType = iota
	TextureBuilderTrueColor
)

// TextureBuilder describes decoded image data before upload.
type TextureBuilder struct {
	Type      TextureBuilderType
	Width     int
	Height    int
	Paletted  []uint8  // Palette indices when Type is TextureBuilderPaletted
	TrueColor []uint32 // ARGB when Type is TextureBuilderTrueColor
}

// NewPalettedTextureBuilder wraps row-major palette indices.
func NewPalettedTextureBuilder(width, height int, texels []uint8) *TextureBuilder {
	return &TextureBuilder{
		Type:     TextureBuilderPaletted,
		Width:    width,
		Height:   height,
		Paletted: texels,
	}
}

// NewTrueColorTextureBuilder wraps row-major ARGB pixels.
func NewTrueColorTextureBuilder(width, height int, texels []uint32) *TextureBuilder {
	return &TextureBuilder{
		Type:      TextureBuilderTrueColor,
		Width:     width,
		Height:    height,
		TrueColor: texels,
	}
}

// LoadTextureBuilder decodes a PNG or BMP file.
func LoadTextureBuilder(path string) (*TextureBuilder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return TextureBuilderFromImage(img), nil
}

// TextureBuilderFromImage converts an image. Paletted images keep their
// indices; anything else becomes true color.
func TextureBuilderFromImage(img image.Image) *TextureBuilder {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if pal, ok := img.(*image.Paletted); ok {
		texels := make([]uint8, width*height)
		for y := range height {
			off := pal.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(texels[y*width:(y+1)*width], pal.Pix[off:off+width])
		}
		return NewPalettedTextureBuilder(width, height, texels)
	}

	texels := make([]uint32, width*height)
	for y := range height {
		for x := range width {
			texels[y*width+x] = ColorToARGB(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return NewTrueColorTextureBuilder(width, height, texels)
}

// NewCheckerTextureBuilder creates a procedural checkerboard of two palette indices.
func NewCheckerTextureBuilder(width, height, checkSize int, a, b uint8) *TextureBuilder {
	texels := make([]uint8, width*height)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				texels[y*width+x] = a
			} else {
				texels[y*width+x] = b
			}
		}
	}
	return NewPalettedTextureBuilder(width, height, texels)
}

// PaletteSize is the number of colors in a full palette.
const PaletteSize = 256

// PaletteFromImage extracts the color table of a paletted image, padded with
// transparent black to PaletteSize entries.
func PaletteFromImage(img image.Image) ([]uint32, bool) {
	pal, ok := img.(*image.Paletted)
	if !ok {
		return nil, false
	}
	colors := make([]uint32, PaletteSize)
	for i, c := range pal.Palette {
		if i >= PaletteSize {
			break
		}
		colors[i] = ColorToARGB(c)
	}
	return colors, true
}

// NewGrayscalePalette returns a gray ramp with index 0 reserved as transparent
// black.
func NewGrayscalePalette() []uint32 {
	colors := make([]uint32, PaletteSize)
	for i := 1; i < PaletteSize; i++ {
		v := uint8(i)
		colors[i] = PackARGB(255, v, v, v)
	}
	return colors
}

package render

import (
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestFramebufferPixels(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.Clear(ColorBlue)

	fb.SetPixel(1, 2, ColorRed)
	fb.SetPixel(-1, 0, ColorRed)
	fb.SetPixel(4, 0, ColorRed)

	if got := fb.GetPixel(1, 2); got != ColorRed {
		t.Errorf("GetPixel(1, 2) = %#x, want red", got)
	}
	if got := fb.GetPixel(0, 0); got != ColorBlue {
		t.Errorf("GetPixel(0, 0) = %#x, want clear color", got)
	}
	if got := fb.GetPixel(9, 9); got != 0 {
		t.Errorf("out of bounds GetPixel = %#x, want 0", got)
	}
}

func TestFramebufferResize(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Clear(ColorWhite)
	fb.Resize(3, 5)

	if len(fb.Pixels) != 15 {
		t.Fatalf("len = %d, want 15", len(fb.Pixels))
	}
	if fb.GetPixel(0, 0) != 0 {
		t.Error("resize should clear pixels")
	}
}

func TestFramebufferDrawLine(t *testing.T) {
	fb := NewFramebuffer(5, 5)
	fb.DrawLine(0, 0, 4, 4, ColorYellow)

	for i := range 5 {
		if fb.GetPixel(i, i) != ColorYellow {
			t.Errorf("diagonal pixel %d not drawn", i)
		}
	}
	if fb.GetPixel(4, 0) != 0 {
		t.Error("off-diagonal pixel drawn")
	}

	// Lines leaving the buffer are clipped, not wrapped
	fb.Clear(0)
	fb.DrawLine(-3, 2, 8, 2, ColorYellow)
	for x := range 5 {
		if fb.GetPixel(x, 2) != ColorYellow {
			t.Errorf("pixel (%d, 2) not drawn", x)
		}
	}
	if fb.GetPixel(0, 3) != 0 {
		t.Error("line wrapped into the next row")
	}
}

func TestFramebufferToImage(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Pixels[0] = PackARGB(255, 10, 20, 30)
	fb.Pixels[1] = ColorGreen

	img := fb.ToImage()
	if img.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	c := img.RGBAAt(0, 0)
	if c.R != 10 || c.G != 20 || c.B != 30 || c.A != 255 {
		t.Errorf("pixel 0 = %+v", c)
	}
	if ColorToARGB(img.At(1, 0)) != ColorGreen {
		t.Errorf("pixel 1 = %+v, want green", img.At(1, 0))
	}
}

func TestFramebufferSave(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Clear(ColorBlack)
	fb.SetPixel(2, 1, ColorRed)
	fb.SetPixel(0, 0, ColorBlue)

	tests := []struct {
		name string
		save func(string) error
	}{
		{"frame.png", fb.SavePNG},
		{"frame.bmp", fb.SaveBMP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.name)
			if err := tt.save(path); err != nil {
				t.Fatalf("save failed: %v", err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			img, _, err := image.Decode(f)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
				t.Fatalf("size = %v", img.Bounds())
			}
			for y := range 2 {
				for x := range 3 {
					if got := ColorToARGB(img.At(x, y)); got != fb.GetPixel(x, y) {
						t.Errorf("(%d, %d) = %#x, want %#x", x, y, got, fb.GetPixel(x, y))
					}
				}
			}
		})
	}

	t.Run("bad path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "frame.png")
		if err := fb.SavePNG(path); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}

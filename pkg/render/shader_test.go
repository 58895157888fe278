package render

import (
	"testing"

	"github.com/taigrr/arena/pkg/math3d"
)

func newTestTarget(pixels int) *shaderTarget {
	palette := make([]uint32, PaletteSize)
	palette[testRed] = ColorRed
	palette[testGreen] = ColorGreen
	palette[testBlue] = ColorBlue

	target := &shaderTarget{
		colors:  make([]uint32, pixels),
		depth:   make([]float64, pixels),
		palette: palette,
	}
	fillUint32(target.colors, ClearColor)
	fillFloat64(target.depth, 100)
	return target
}

func TestSampleUVClamps(t *testing.T) {
	tex := shaderTexture{texels: []uint8{1, 2, 3, 4}, width: 2, height: 2}

	tests := []struct {
		name string
		uv   math3d.Vec2
		want uint8
	}{
		{"top-left", math3d.V2(0, 0), 1},
		{"top-right", math3d.V2(0.75, 0.25), 2},
		{"bottom-left", math3d.V2(0.25, 0.75), 3},
		{"exactly one", math3d.V2(1, 1), 4},
		{"past the end", math3d.V2(3, 2), 4},
		{"negative", math3d.V2(-0.7, 0.6), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tex.sampleUV(tt.uv); got != tt.want {
				t.Errorf("sampleUV(%+v) = %d, want %d", tt.uv, got, tt.want)
			}
		})
	}
}

func TestSampleScreenSpaceRepeatY(t *testing.T) {
	// One column, two rows: the pattern repeats twice down the screen
	tex := shaderTexture{texels: []uint8{1, 2}, width: 1, height: 2}

	tests := []struct {
		yPercent float64
		want     uint8
	}{
		{0.1, 1},
		{0.3, 2},
		{0.6, 1},
		{0.8, 2},
		{0.999, 2},
	}

	for _, tt := range tests {
		if got := tex.sampleScreenSpaceRepeatY(0.5, tt.yPercent); got != tt.want {
			t.Errorf("yPercent %v: got %d, want %d", tt.yPercent, got, tt.want)
		}
	}
}

func TestSampleEmptyTexture(t *testing.T) {
	var tex shaderTexture
	if got := tex.sampleUV(math3d.V2(0.5, 0.5)); got != 0 {
		t.Errorf("empty texture sample = %d, want 0", got)
	}
}

func TestShadeOpaque(t *testing.T) {
	target := newTestTarget(1)
	tex := shaderTexture{texels: []uint8{testGreen}, width: 1, height: 1}
	f := fragment{depth: 4, index: 0}

	shadeOpaque(&f, &tex, nil, target)

	if target.colors[0] != ColorGreen || target.depth[0] != 4 {
		t.Errorf("pixel = %#x depth %v, want green at 4", target.colors[0], target.depth[0])
	}
}

func TestShadeOpaqueScreenSpaceSampling(t *testing.T) {
	target := newTestTarget(1)
	tex := shaderTexture{
		texels:   []uint8{testRed, testBlue},
		width:    1,
		height:   2,
		sampling: TextureSamplingScreenSpaceRepeatY,
	}
	// Mesh UV points at red, screen position at blue
	f := fragment{texCoord: math3d.V2(0, 0), xPercent: 0.5, yPercent: 0.3, depth: 1}

	shadeOpaque(&f, &tex, nil, target)

	if target.colors[0] != ColorBlue {
		t.Errorf("pixel = %#x, want blue", target.colors[0])
	}
}

func TestShadeAlphaTested(t *testing.T) {
	tex := shaderTexture{texels: []uint8{0, testRed}, width: 2, height: 1}

	t.Run("transparent texel", func(t *testing.T) {
		target := newTestTarget(1)
		f := fragment{texCoord: math3d.V2(0.25, 0.5), depth: 2}
		shadeAlphaTested(&f, &tex, nil, target)
		if target.colors[0] != ClearColor || target.depth[0] != 100 {
			t.Errorf("pixel = %#x depth %v, want untouched", target.colors[0], target.depth[0])
		}
	})

	t.Run("opaque texel", func(t *testing.T) {
		target := newTestTarget(1)
		f := fragment{texCoord: math3d.V2(0.75, 0.5), depth: 2}
		shadeAlphaTested(&f, &tex, nil, target)
		if target.colors[0] != ColorRed || target.depth[0] != 2 {
			t.Errorf("pixel = %#x depth %v, want red at 2", target.colors[0], target.depth[0])
		}
	})
}

func TestShadeOpaqueWithAlphaTestLayer(t *testing.T) {
	base := shaderTexture{texels: []uint8{testBlue}, width: 1, height: 1}
	layer := shaderTexture{texels: []uint8{0, testGreen}, width: 2, height: 1}

	tests := []struct {
		name string
		uv   math3d.Vec2
		want uint32
	}{
		{"layer texel wins", math3d.V2(0.75, 0.5), ColorGreen},
		{"transparent layer shows base", math3d.V2(0.25, 0.5), ColorBlue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := newTestTarget(1)
			f := fragment{texCoord: tt.uv, xPercent: 0.5, yPercent: 0.5, depth: 3}
			shadeOpaqueWithAlphaTestLayer(&f, &base, &layer, target)
			if target.colors[0] != tt.want {
				t.Errorf("pixel = %#x, want %#x", target.colors[0], tt.want)
			}
			if target.depth[0] != 3 {
				t.Errorf("depth = %v, want 3", target.depth[0])
			}
		})
	}
}

func TestPaletteResolveOutOfRange(t *testing.T) {
	target := &shaderTarget{palette: []uint32{0, ColorRed}}
	if got := target.resolve(200); got != 0 {
		t.Errorf("resolve(200) = %#x, want 0", got)
	}
	if got := target.resolve(1); got != ColorRed {
		t.Errorf("resolve(1) = %#x, want red", got)
	}
}

func TestLookupPixelShader(t *testing.T) {
	for _, st := range []PixelShaderType{PixelShaderOpaque, PixelShaderAlphaTested, PixelShaderOpaqueWithAlphaTestLayer} {
		if _, ok := lookupPixelShader(st); !ok {
			t.Errorf("%v should resolve", st)
		}
	}
	if _, ok := lookupPixelShader(PixelShaderType(42)); ok {
		t.Error("unknown shader type should not resolve")
	}
	if got := PixelShaderType(42).String(); got != "PixelShaderType(42)" {
		t.Errorf("String = %q", got)
	}
}

package render

import (
	"fmt"

	"github.com/taigrr/arena/pkg/math3d"
)

// PixelShaderType selects how a draw call's pixels are colored.
type PixelShaderType int

const (
	// PixelShaderOpaque always writes color and depth.
	PixelShaderOpaque PixelShaderType = iota
	// PixelShaderAlphaTested skips pixels whose texel is palette index 0.
	PixelShaderAlphaTested
	// PixelShaderOpaqueWithAlphaTestLayer draws the second texture over a
	// screen-space tiled first texture, used for chasm floors.
	PixelShaderOpaqueWithAlphaTestLayer
)

func (t PixelShaderType) String() string {
	switch t {
	case PixelShaderOpaque:
		return "Opaque"
	case PixelShaderAlphaTested:
		return "AlphaTested"
	case PixelShaderOpaqueWithAlphaTestLayer:
		return "OpaqueWithAlphaTestLayer"
	default:
		return fmt.Sprintf("PixelShaderType(%d)", int(t))
	}
}

// TextureSamplingType selects how the primary texture is addressed.
type TextureSamplingType int

const (
	// TextureSamplingDefault uses the mesh UV.
	TextureSamplingDefault TextureSamplingType = iota
	// TextureSamplingScreenSpaceRepeatY uses the pixel's screen position,
	// tiling the texture twice down the screen.
	TextureSamplingScreenSpaceRepeatY
)

func (t TextureSamplingType) String() string {
	switch t {
	case TextureSamplingDefault:
		return "Default"
	case TextureSamplingScreenSpaceRepeatY:
		return "ScreenSpaceRepeatY"
	default:
		return fmt.Sprintf("TextureSamplingType(%d)", int(t))
	}
}

// fragment is the interpolated state of one covered pixel.
type fragment struct {
	texCoord math3d.Vec2 // Perspective-correct UV
	depth    float64     // Camera-space Z
	xPercent float64     // Pixel center across the screen, 0..1
	yPercent float64     // Pixel center down the screen, 0..1
	index    int         // Row-major pixel index
}

// shaderTexture is an 8-bit texture bound for one draw call.
type shaderTexture struct {
	texels   []uint8
	width    int
	height   int
	sampling TextureSamplingType
}

func newShaderTexture(tex *ObjectTexture, sampling TextureSamplingType) shaderTexture {
	if tex == nil {
		return shaderTexture{sampling: sampling}
	}
	return shaderTexture{
		texels:   tex.Texels,
		width:    tex.Width,
		height:   tex.Height,
		sampling: sampling,
	}
}

// texelAt clamps a texel coordinate into the texture and reads it.
func (t *shaderTexture) texelAt(x, y int) uint8 {
	if len(t.texels) == 0 {
		return 0
	}
	x = max(0, min(t.width-1, x))
	y = max(0, min(t.height-1, y))
	return t.texels[y*t.width+x]
}

// sampleUV reads the texel under a mesh UV. There is no wrapping.
func (t *shaderTexture) sampleUV(uv math3d.Vec2) uint8 {
	return t.texelAt(int(uv.X*float64(t.width)), int(uv.Y*float64(t.height)))
}

// sampleScreenSpaceRepeatY reads by screen position, repeating twice vertically.
func (t *shaderTexture) sampleScreenSpaceRepeatY(xPercent, yPercent float64) uint8 {
	v := yPercent * 2
	if v >= 1 {
		v--
	}
	return t.texelAt(int(xPercent*float64(t.width)), int(v*float64(t.height)))
}

// sample reads using the texture's bound sampling mode.
func (t *shaderTexture) sample(f *fragment) uint8 {
	if t.sampling == TextureSamplingScreenSpaceRepeatY {
		return t.sampleScreenSpaceRepeatY(f.xPercent, f.yPercent)
	}
	return t.sampleUV(f.texCoord)
}

// shaderTarget is the color and depth storage shaders write into.
type shaderTarget struct {
	colors  []uint32
	depth   []float64
	palette []uint32
}

// resolve maps a palette index to ARGB. Indices past the palette are black.
func (s *shaderTarget) resolve(texel uint8) uint32 {
	if int(texel) >= len(s.palette) {
		return 0
	}
	return s.palette[texel]
}

func (s *shaderTarget) write(f *fragment, texel uint8) {
	s.colors[f.index] = s.resolve(texel)
	s.depth[f.index] = f.depth
}

// pixelShader colors a fragment that already passed the depth test.
type pixelShader func(f *fragment, tex0, tex1 *shaderTexture, target *shaderTarget)

func shadeOpaque(f *fragment, tex0, _ *shaderTexture, target *shaderTarget) {
	target.write(f, tex0.sample(f))
}

func shadeAlphaTested(f *fragment, tex0, _ *shaderTexture, target *shaderTarget) {
	texel := tex0.sample(f)
	if texel == 0 {
		return
	}
	target.write(f, texel)
}

// shadeOpaqueWithAlphaTestLayer reads the mesh-UV layer from tex1 and falls
// back to tex0 addressed in screen space.
func shadeOpaqueWithAlphaTestLayer(f *fragment, tex0, tex1 *shaderTexture, target *shaderTarget) {
	texel := tex1.sampleUV(f.texCoord)
	if texel == 0 {
		texel = tex0.sampleScreenSpaceRepeatY(f.xPercent, f.yPercent)
	}
	target.write(f, texel)
}

// lookupPixelShader resolves a shader type once per draw call.
func lookupPixelShader(t PixelShaderType) (pixelShader, bool) {
	switch t {
	case PixelShaderOpaque:
		return shadeOpaque, true
	case PixelShaderAlphaTested:
		return shadeAlphaTested, true
	case PixelShaderOpaqueWithAlphaTestLayer:
		return shadeOpaqueWithAlphaTestLayer, true
	default:
		return nil, false
	}
}

// Package render is a CPU-only renderer for chunked voxel worlds. Geometry
// lives in handle-addressed buffers, draw calls are culled and clipped against
// the camera frustum, and visible triangles are rasterized with
// perspective-correct UVs into an 8-bit palette-resolved ARGB image.
package render

import (
	"math"

	"github.com/taigrr/arena/pkg/math3d"
)

// Depth range of the projection used for world geometry.
const (
	NearPlane = 0.001
	FarPlane  = 1000.0
)

// Rasterizer owns the depth buffer and fills triangles into a color buffer.
type Rasterizer struct {
	width  int
	height int
	depth  []float64 // Camera-space Z per pixel, row-major
}

// NewRasterizer creates a rasterizer for the given output size.
func NewRasterizer(width, height int) *Rasterizer {
	r := &Rasterizer{}
	r.Resize(width, height)
	return r
}

// Resize reallocates the depth buffer.
func (r *Rasterizer) Resize(width, height int) {
	r.width = width
	r.height = height
	r.depth = make([]float64, width*height)
	r.ClearDepth()
}

// Width returns the output width in pixels.
func (r *Rasterizer) Width() int {
	return r.width
}

// Height returns the output height in pixels.
func (r *Rasterizer) Height() int {
	return r.height
}

// ClearDepth resets every pixel to infinitely far.
func (r *Rasterizer) ClearDepth() {
	fillFloat64(r.depth, math.Inf(1))
}

// Depth returns the depth at (x, y), or +Inf outside the buffer.
func (r *Rasterizer) Depth(x, y int) float64 {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return math.Inf(1)
	}
	return r.depth[y*r.width+x]
}

// RasterParams is the per-draw-call state the rasterizer needs.
type RasterParams struct {
	Camera   *RenderCamera
	Shader   pixelShader
	Sampling TextureSamplingType
	Textures *Pool[ObjectTextureID, ObjectTexture]
	Palette  []uint32
	Colors   []uint32 // Output, width*height ARGB

	// Wireframe draws each triangle's edges after filling it.
	Wireframe      bool
	WireframeColor uint32
}

// screenTriangle is a triangle after projection.
type screenTriangle struct {
	s       [3]math3d.Vec2 // Pixel coordinates
	invZ    [3]float64     // 1 / camera-space Z
	uvOverZ [3]math3d.Vec2 // UV / camera-space Z
}

// baryCoeffs caches the terms of the dot-product barycentric formula that do
// not depend on the pixel.
type baryCoeffs struct {
	origin   math3d.Vec2
	e0, e1   math3d.Vec2 // s1-s0, s2-s0
	d00, d01 float64
	d11      float64
	invDenom float64
}

func newBaryCoeffs(s0, s1, s2 math3d.Vec2) (baryCoeffs, bool) {
	e0 := s1.Sub(s0)
	e1 := s2.Sub(s0)
	d00 := e0.Dot(e0)
	d01 := e0.Dot(e1)
	d11 := e1.Dot(e1)
	denom := d00*d11 - d01*d01
	if denom == 0 {
		return baryCoeffs{}, false
	}
	return baryCoeffs{
		origin:   s0,
		e0:       e0,
		e1:       e1,
		d00:      d00,
		d01:      d01,
		d11:      d11,
		invDenom: 1 / denom,
	}, true
}

// weights returns the barycentric weights of p for s0, s1 and s2.
func (b *baryCoeffs) weights(p math3d.Vec2) (u, v, w float64) {
	e2 := p.Sub(b.origin)
	d20 := e2.Dot(b.e0)
	d21 := e2.Dot(b.e1)
	v = (b.d11*d20 - b.d01*d21) * b.invDenom
	w = (b.d00*d21 - b.d01*d20) * b.invDenom
	return 1 - v - w, v, w
}

// RasterizeTriangles fills triangles that already passed clipping. Triangles
// must be wound counter-clockwise as seen from the camera.
func (r *Rasterizer) RasterizeTriangles(tris []Triangle, p *RasterParams) {
	if len(tris) == 0 || r.width == 0 || r.height == 0 {
		return
	}

	cam := p.Camera
	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix(NearPlane, FarPlane)

	target := shaderTarget{
		colors:  p.Colors,
		depth:   r.depth,
		palette: p.Palette,
	}

	var boundIDs [2]ObjectTextureID
	var tex0, tex1 shaderTexture
	bound := false

	for i := range tris {
		tri := &tris[i]
		if !bound || tri.TextureIDs != boundIDs {
			tex0 = newShaderTexture(r.lookupTexture(p.Textures, tri.TextureIDs[0]), p.Sampling)
			tex1 = newShaderTexture(r.lookupTexture(p.Textures, tri.TextureIDs[1]), TextureSamplingDefault)
			boundIDs = tri.TextureIDs
			bound = true
		}

		st := r.project(tri, view, proj, cam.YShear)
		r.fill(&st, p.Shader, &tex0, &tex1, &target)

		if p.Wireframe {
			drawTriangleEdges(p.Colors, r.width, r.height, st.s, p.WireframeColor)
		}
	}
}

func (r *Rasterizer) lookupTexture(pool *Pool[ObjectTextureID, ObjectTexture], id ObjectTextureID) *ObjectTexture {
	if id == 0 || pool == nil {
		return nil
	}
	return pool.Get(id)
}

// project moves a triangle from world space to pixel coordinates.
func (r *Rasterizer) project(tri *Triangle, view, proj math3d.Mat4, yShear float64) screenTriangle {
	var st screenTriangle
	for i := range 3 {
		v := tri.V[i]
		camPoint := view.MulVec4(math3d.V4FromV3(v.Position, 1))
		clip := proj.MulVec4(camPoint)
		st.s[i] = math3d.NDCToScreenSpace(clip.PerspectiveDivide(), yShear, r.width, r.height)
		st.invZ[i] = 1 / camPoint.Z
		st.uvOverZ[i] = v.UV.Scale(st.invZ[i])
	}
	return st
}

// fill shades every pixel center inside the triangle that passes the depth test.
func (r *Rasterizer) fill(st *screenTriangle, shader pixelShader, tex0, tex1 *shaderTexture, target *shaderTarget) {
	s0, s1, s2 := st.s[0], st.s[1], st.s[2]

	bary, ok := newBaryCoeffs(s0, s1, s2)
	if !ok {
		return
	}

	// Bounding box, clamped to the screen. End bounds are exclusive.
	xStart := int(math.Max(0, math.Floor(min3(s0.X, s1.X, s2.X))))
	xEnd := int(math.Min(float64(r.width), math.Ceil(max3(s0.X, s1.X, s2.X))))
	yStart := int(math.Max(0, math.Floor(min3(s0.Y, s1.Y, s2.Y))))
	yEnd := int(math.Min(float64(r.height), math.Ceil(max3(s0.Y, s1.Y, s2.Y))))

	n01 := s1.Sub(s0).RightPerp()
	n12 := s2.Sub(s1).RightPerp()
	n20 := s0.Sub(s2).RightPerp()

	invWidth := 1 / float64(r.width)
	invHeight := 1 / float64(r.height)

	var f fragment
	for y := yStart; y < yEnd; y++ {
		py := float64(y) + 0.5
		f.yPercent = py * invHeight

		for x := xStart; x < xEnd; x++ {
			px := float64(x) + 0.5
			pixel := math3d.V2(px, py)

			if !math3d.IsPointInHalfSpace(pixel, s0, n01) ||
				!math3d.IsPointInHalfSpace(pixel, s1, n12) ||
				!math3d.IsPointInHalfSpace(pixel, s2, n20) {
				continue
			}

			u, v, w := bary.weights(pixel)
			depth := 1 / (u*st.invZ[0] + v*st.invZ[1] + w*st.invZ[2])

			index := y*r.width + x
			if !(depth < r.depth[index]) {
				continue
			}

			f.depth = depth
			f.index = index
			f.xPercent = px * invWidth
			f.texCoord = st.uvOverZ[0].Scale(u).
				Add(st.uvOverZ[1].Scale(v)).
				Add(st.uvOverZ[2].Scale(w)).
				Scale(depth)

			shader(&f, tex0, tex1, target)
		}
	}
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

// fillFloat64 sets every element using copy-doubling.
func fillFloat64(buf []float64, value float64) {
	if len(buf) == 0 {
		return
	}
	buf[0] = value
	for i := 1; i < len(buf); i *= 2 {
		copy(buf[i:], buf[:i])
	}
}

// fillUint32 sets every element using copy-doubling.
func fillUint32(buf []uint32, value uint32) {
	if len(buf) == 0 {
		return
	}
	buf[0] = value
	for i := 1; i < len(buf); i *= 2 {
		copy(buf[i:], buf[:i])
	}
}

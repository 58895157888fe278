package render

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/taigrr/arena/pkg/math3d"
)

// RenderDrawCall references everything needed to draw one mesh. It only holds
// handles; the caller keeps them alive until SubmitFrame returns.
type RenderDrawCall struct {
	VertexBufferID      VertexBufferID
	NormalBufferID      AttributeBufferID
	TexCoordBufferID    AttributeBufferID
	IndexBufferID       IndexBufferID
	TextureIDs          [2]ObjectTextureID // Second slot is 0 unless the shader needs it
	WorldSpaceOffset    math3d.Vec3
	PixelShaderType     PixelShaderType
	TextureSamplingType TextureSamplingType
	AllowBackFaces      bool
}

// RenderInitSettings configures the output size.
type RenderInitSettings struct {
	Width  int
	Height int
}

// RenderFrameSettings holds per-frame state shared by all draw calls.
type RenderFrameSettings struct {
	PaletteTextureID    ObjectTextureID
	LightTableTextureID ObjectTextureID // Reserved, not sampled yet
	Wireframe           bool
}

// PoolLimits caps the number of live resources per pool. Zero means unbounded.
type PoolLimits struct {
	VertexBuffers    int
	AttributeBuffers int
	IndexBuffers     int
	ObjectTextures   int
}

// ProfilerData is a read-only summary of the last frame.
type ProfilerData struct {
	Width                  int
	Height                 int
	ThreadCount            int
	DrawCallCount          int
	PresentedTriangleCount int // Triangles read from index buffers
	VisibleTriangleCount   int // Triangles left after culling and clipping
	VisibleLightCount      int
}

// SoftwareRenderer is a single-threaded CPU renderer. Resources are created
// and freed between frames; SubmitFrame must not run concurrently with any
// other method.
type SoftwareRenderer struct {
	log *zap.Logger

	vertexBuffers    *Pool[VertexBufferID, VertexBuffer]
	attributeBuffers *Pool[AttributeBufferID, AttributeBuffer]
	indexBuffers     *Pool[IndexBufferID, IndexBuffer]
	objectTextures   *Pool[ObjectTextureID, ObjectTexture]

	geometry   *GeometryProcessor
	rasterizer *Rasterizer

	drawCallCount int
	inited        bool
}

// Option configures a SoftwareRenderer.
type Option func(*rendererOptions)

type rendererOptions struct {
	log    *zap.Logger
	limits PoolLimits
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(o *rendererOptions) {
		o.log = log
	}
}

// WithPoolLimits caps resource pool sizes.
func WithPoolLimits(limits PoolLimits) Option {
	return func(o *rendererOptions) {
		o.limits = limits
	}
}

// NewSoftwareRenderer creates a renderer. Call Init before SubmitFrame.
func NewSoftwareRenderer(opts ...Option) *SoftwareRenderer {
	o := rendererOptions{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return &SoftwareRenderer{
		log:              o.log,
		vertexBuffers:    NewPool[VertexBufferID, VertexBuffer]("vertex buffer", o.limits.VertexBuffers),
		attributeBuffers: NewPool[AttributeBufferID, AttributeBuffer]("attribute buffer", o.limits.AttributeBuffers),
		indexBuffers:     NewPool[IndexBufferID, IndexBuffer]("index buffer", o.limits.IndexBuffers),
		objectTextures:   NewPool[ObjectTextureID, ObjectTexture]("object texture", o.limits.ObjectTextures),
		geometry:         NewGeometryProcessor(),
		rasterizer:       NewRasterizer(0, 0),
	}
}

// Init sizes the renderer's internal buffers.
func (r *SoftwareRenderer) Init(settings RenderInitSettings) error {
	if err := validateSize(settings.Width, settings.Height); err != nil {
		return err
	}
	r.rasterizer.Resize(settings.Width, settings.Height)
	r.inited = true
	r.log.Info("software renderer initialized",
		zap.Int("width", settings.Width),
		zap.Int("height", settings.Height))
	return nil
}

// IsInited reports whether Init succeeded and Shutdown has not run.
func (r *SoftwareRenderer) IsInited() bool {
	return r.inited
}

// Resize changes the output size. The next SubmitFrame expects an output
// buffer of the new size.
func (r *SoftwareRenderer) Resize(width, height int) error {
	if err := validateSize(width, height); err != nil {
		return err
	}
	r.rasterizer.Resize(width, height)
	r.log.Debug("software renderer resized", zap.Int("width", width), zap.Int("height", height))
	return nil
}

// Width returns the output width in pixels.
func (r *SoftwareRenderer) Width() int {
	return r.rasterizer.Width()
}

// Height returns the output height in pixels.
func (r *SoftwareRenderer) Height() int {
	return r.rasterizer.Height()
}

// Shutdown frees every resource. Outstanding handles become invalid.
func (r *SoftwareRenderer) Shutdown() {
	r.vertexBuffers.Clear()
	r.attributeBuffers.Clear()
	r.indexBuffers.Clear()
	r.objectTextures.Clear()
	r.geometry.Release()
	r.rasterizer.Resize(0, 0)
	r.drawCallCount = 0
	r.inited = false
	r.log.Info("software renderer shut down")
}

func validateSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid render size %dx%d", width, height)
	}
	return nil
}

// SubmitFrame renders draw calls in order into out, which must hold
// Width()*Height() pixels.
func (r *SoftwareRenderer) SubmitFrame(cam *RenderCamera, drawCalls []RenderDrawCall, settings RenderFrameSettings, out []uint32) {
	if !r.inited {
		r.log.Error("submit frame before init")
		return
	}
	width, height := r.Width(), r.Height()
	if len(out) != width*height {
		r.log.Error("output buffer size mismatch",
			zap.Int("got", len(out)),
			zap.Int("want", width*height))
		return
	}

	fillUint32(out, ClearColor)
	r.rasterizer.ClearDepth()
	r.geometry.ResetCounters()
	r.drawCallCount = len(drawCalls)

	palette := r.objectTextures.Get(settings.PaletteTextureID)
	if !palette.IsPalette() {
		r.log.Error("frame palette texture is not a palette", zap.Uint64("texture", uint64(settings.PaletteTextureID)))
		return
	}

	frustum := NewFrustum(cam)
	params := RasterParams{
		Camera:         cam,
		Textures:       r.objectTextures,
		Palette:        palette.Palette,
		Colors:         out,
		Wireframe:      settings.Wireframe,
		WireframeColor: WireframeColor,
	}

	var in GeometryInput
	for i := range drawCalls {
		drawCall := &drawCalls[i]

		shader, ok := lookupPixelShader(drawCall.PixelShaderType)
		if !ok {
			r.log.Error("unhandled pixel shader type, skipping draw call",
				zap.Int("drawCall", i),
				zap.Stringer("shader", drawCall.PixelShaderType))
			continue
		}
		if !r.resolveGeometry(drawCall, &in) {
			continue
		}

		tris := r.geometry.Process(&in, cam.WorldPoint, &frustum)

		params.Shader = shader
		params.Sampling = drawCall.TextureSamplingType
		r.rasterizer.RasterizeTriangles(tris, &params)
	}
}

// resolveGeometry fills in with the buffers a draw call references.
func (r *SoftwareRenderer) resolveGeometry(drawCall *RenderDrawCall, in *GeometryInput) bool {
	positions := r.vertexBuffers.Get(drawCall.VertexBufferID)
	normals := r.attributeBuffers.Get(drawCall.NormalBufferID)
	texCoords := r.attributeBuffers.Get(drawCall.TexCoordBufferID)
	indices := r.indexBuffers.Get(drawCall.IndexBufferID)

	if positions.ComponentsPerVertex != PositionComponents ||
		normals.ComponentsPerAttribute != NormalComponents ||
		texCoords.ComponentsPerAttribute != TexCoordComponents {
		r.log.Error("draw call buffers have unexpected component counts, skipping",
			zap.Int("position", positions.ComponentsPerVertex),
			zap.Int("normal", normals.ComponentsPerAttribute),
			zap.Int("texCoord", texCoords.ComponentsPerAttribute))
		return false
	}

	*in = GeometryInput{
		Positions:      positions.Vertices,
		Normals:        normals.Attributes,
		TexCoords:      texCoords.Attributes,
		Indices:        indices.Indices,
		WorldOffset:    drawCall.WorldSpaceOffset,
		TextureIDs:     drawCall.TextureIDs,
		AllowBackFaces: drawCall.AllowBackFaces,
	}
	return true
}

// ProfilerData reports counters from the last SubmitFrame.
func (r *SoftwareRenderer) ProfilerData() ProfilerData {
	return ProfilerData{
		Width:                  r.Width(),
		Height:                 r.Height(),
		ThreadCount:            1,
		DrawCallCount:          r.drawCallCount,
		PresentedTriangleCount: r.geometry.TotalTriangleCount,
		VisibleTriangleCount:   r.geometry.VisibleTriangleCount,
		VisibleLightCount:      0,
	}
}

// Present is a no-op. The caller owns the output buffer and displays it.
func (r *SoftwareRenderer) Present() {}

// Depth returns the depth buffer value at (x, y) from the last frame.
func (r *SoftwareRenderer) Depth(x, y int) float64 {
	return r.rasterizer.Depth(x, y)
}

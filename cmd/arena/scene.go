package main

import (
	"fmt"
	"image"
	"math"
	"os"

	"go.uber.org/zap"

	"github.com/taigrr/arena/internal/config"
	"github.com/taigrr/arena/pkg/math3d"
	"github.com/taigrr/arena/pkg/models"
	"github.com/taigrr/arena/pkg/render"
)

// Palette layout: 0 transparent, then four 63-entry ramps.
const (
	rampGray  = 1
	rampBrown = 64
	rampBlue  = 128
	rampGreen = 192
	rampLen   = 63
)

// maxTextureSize bounds loaded textures; bigger ones are scaled down.
const maxTextureSize = 128

// Room dimensions in world units.
const (
	roomWidth  = 16.0
	roomHeight = 4.0
	roomDepth  = 16.0
)

// demoPalette builds the built-in palette of gray, brown, blue and green
// ramps.
func demoPalette() []uint32 {
	colors := make([]uint32, render.PaletteSize)
	ramp := func(start int, r, g, b float64) {
		for i := range rampLen {
			t := float64(i+1) / rampLen
			colors[start+i] = render.PackARGB(255, uint8(r*t), uint8(g*t), uint8(b*t))
		}
	}
	ramp(rampGray, 255, 255, 255)
	ramp(rampBrown, 200, 130, 70)
	ramp(rampBlue, 60, 120, 255)
	ramp(rampGreen, 90, 220, 90)
	return colors
}

// shade picks the entry at fraction t (0..1) of a ramp.
func shade(ramp int, t float64) uint8 {
	return uint8(ramp + int(math.Round(t*float64(rampLen-1))))
}

// scene owns every renderer resource of the demo room.
type scene struct {
	renderer  *render.SoftwareRenderer
	log       *zap.Logger
	paletteID render.ObjectTextureID
	palette   []uint32
	textures  []*render.ScopedObjectTextureRef
	meshes    []models.MeshBuffers
	drawCalls []render.RenderDrawCall
	triangles int
}

// newScene uploads the room, its props and the optional model.
func newScene(r *render.SoftwareRenderer, cfg *config.Config, log *zap.Logger) (*scene, error) {
	s := &scene{renderer: r, log: log}
	if err := s.build(cfg); err != nil {
		s.release()
		return nil, err
	}
	log.Info("scene ready",
		zap.Int("drawCalls", len(s.drawCalls)),
		zap.Int("triangles", s.triangles),
		zap.Int("textures", len(s.textures)))
	return s, nil
}

func (s *scene) build(cfg *config.Config) error {
	palette, err := loadPalette(cfg.Scene.PalettePath)
	if err != nil {
		return err
	}
	s.palette = palette
	id, ok := s.renderer.TryCreatePaletteTexture(palette)
	if !ok {
		return fmt.Errorf("couldn't create palette texture")
	}
	s.paletteID = id

	wallBuilder := brickTexture()
	if cfg.Scene.TexturePath != "" {
		if wallBuilder, err = models.LoadTexture(cfg.Scene.TexturePath, palette, maxTextureSize); err != nil {
			return err
		}
	}
	wall, err := s.addTexture(wallBuilder)
	if err != nil {
		return err
	}
	floor, err := s.addTexture(render.NewCheckerTextureBuilder(64, 64, 8, shade(rampGray, 0.35), shade(rampGray, 0.6)))
	if err != nil {
		return err
	}
	crate, err := s.addTexture(render.NewCheckerTextureBuilder(16, 16, 4, shade(rampGreen, 0.5), shade(rampGreen, 0.9)))
	if err != nil {
		return err
	}
	fence, err := s.addTexture(fenceTexture())
	if err != nil {
		return err
	}
	water, err := s.addTexture(waterTexture())
	if err != nil {
		return err
	}
	frame, err := s.addTexture(frameTexture())
	if err != nil {
		return err
	}

	room := drawable{mesh: models.NewRoomMesh(roomWidth, roomHeight, roomDepth), shader: render.PixelShaderOpaque}
	room.textures[0] = wall

	ground := drawable{
		mesh:   models.NewFloorMesh(roomWidth, roomDepth, 2),
		offset: math3d.V3(0, 0.001, 0),
		shader: render.PixelShaderOpaque,
	}
	ground.textures[0] = floor

	box := drawable{mesh: models.NewCubeMesh(1), offset: math3d.V3(-3, 0.5, 3), shader: render.PixelShaderOpaque}
	box.textures[0] = crate

	// Seen from both sides, see-through between the bars
	railing := drawable{
		mesh:           models.NewQuadMesh(4, 1.5),
		offset:         math3d.V3(2.5, 0.75, 1),
		shader:         render.PixelShaderAlphaTested,
		allowBackFaces: true,
	}
	railing.textures[0] = fence

	// Water shows through the frame's hole, fixed to the screen
	portal := drawable{
		mesh:     models.NewQuadMesh(3, 2.5),
		offset:   math3d.V3(0, 1.5, roomDepth/2-0.01),
		shader:   render.PixelShaderOpaqueWithAlphaTestLayer,
		sampling: render.TextureSamplingScreenSpaceRepeatY,
	}
	portal.textures = [2]render.ObjectTextureID{water, frame}

	for _, d := range []drawable{room, ground, box, railing, portal} {
		if err := s.add(d); err != nil {
			return err
		}
	}

	if cfg.Scene.ModelPath != "" {
		return s.addModel(cfg.Scene.ModelPath)
	}
	return nil
}

// drawable is one mesh waiting for upload.
type drawable struct {
	mesh           *models.Mesh
	offset         math3d.Vec3
	shader         render.PixelShaderType
	sampling       render.TextureSamplingType
	textures       [2]render.ObjectTextureID
	allowBackFaces bool
}

func (s *scene) add(d drawable) error {
	buffers, err := models.Upload(s.renderer, d.mesh)
	if err != nil {
		return err
	}
	s.meshes = append(s.meshes, buffers)

	dc := buffers.DrawCall(d.offset, d.shader, d.textures[:]...)
	dc.TextureSamplingType = d.sampling
	dc.AllowBackFaces = d.allowBackFaces
	s.drawCalls = append(s.drawCalls, dc)
	s.triangles += buffers.TriangleCount
	return nil
}

func (s *scene) addTexture(b *render.TextureBuilder) (render.ObjectTextureID, error) {
	id, ok := s.renderer.TryCreateObjectTextureFromBuilder(b)
	if !ok {
		return 0, fmt.Errorf("couldn't create %dx%d texture", b.Width, b.Height)
	}
	s.textures = append(s.textures, render.NewScopedObjectTextureRef(id, s.renderer))
	return id, nil
}

// addModel loads a glTF model, fits it into a 1.5 unit box and stands it on
// the floor near the far wall.
func (s *scene) addModel(path string) error {
	mesh, img, err := models.NewGLTFLoader(models.WithLogger(s.log)).Load(path)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	center, size := mesh.Center(), mesh.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim > 0 {
		scale := 1.5 / maxDim
		mesh.Transform(math3d.Scale(math3d.V3(scale, scale, scale)).Mul(math3d.Translate(center.Negate())))
	}

	var builder *render.TextureBuilder
	if img != nil {
		builder = models.IndexImage(img, s.palette, maxTextureSize)
	} else {
		builder = render.NewCheckerTextureBuilder(32, 32, 4, shade(rampGray, 0.5), shade(rampGray, 0.8))
	}
	texture, err := s.addTexture(builder)
	if err != nil {
		return err
	}

	d := drawable{
		mesh:   mesh,
		offset: math3d.V3(0, 0.75, 4),
		shader: render.PixelShaderOpaque,
	}
	d.textures[0] = texture
	return s.add(d)
}

// draw renders one frame into fb.
func (s *scene) draw(cam *render.RenderCamera, fb *render.Framebuffer, wireframe bool) {
	s.renderer.SubmitFrame(cam, s.drawCalls, render.RenderFrameSettings{
		PaletteTextureID: s.paletteID,
		Wireframe:        wireframe,
	}, fb.Pixels)
	s.renderer.Present()
}

// release frees everything the scene uploaded.
func (s *scene) release() {
	for i := range s.meshes {
		s.meshes[i].Free(s.renderer)
	}
	for _, tex := range s.textures {
		tex.Destroy()
	}
	if s.paletteID != 0 {
		s.renderer.FreeObjectTexture(s.paletteID)
	}
	s.meshes, s.textures, s.drawCalls = nil, nil, nil
	s.paletteID = 0
}

// loadPalette reads the color table of a paletted image, or returns the
// built-in palette when path is empty.
func loadPalette(path string) ([]uint32, error) {
	if path == "" {
		return demoPalette(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open palette: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode palette %s: %w", path, err)
	}
	colors, ok := render.PaletteFromImage(img)
	if !ok {
		return nil, fmt.Errorf("palette %s is not a paletted image", path)
	}
	return colors, nil
}

// brickTexture is the default wall: staggered bricks with dark mortar.
func brickTexture() *render.TextureBuilder {
	const size = 64
	texels := make([]uint8, size*size)
	for y := range size {
		row := y / 8
		for x := range size {
			bx := x + (row%2)*8
			switch {
			case y%8 == 0 || bx%16 == 0:
				texels[y*size+x] = shade(rampGray, 0.2)
			default:
				// Vary brightness per brick
				brick := (bx/16)*7 + row*3
				texels[y*size+x] = shade(rampBrown, 0.55+0.1*float64(brick%4))
			}
		}
	}
	return render.NewPalettedTextureBuilder(size, size, texels)
}

// fenceTexture is vertical bars between two rails, transparent elsewhere.
func fenceTexture() *render.TextureBuilder {
	const size = 32
	texels := make([]uint8, size*size)
	for y := range size {
		for x := range size {
			if y < 3 || y >= size-3 || x%8 < 2 {
				texels[y*size+x] = shade(rampBrown, 0.4)
			}
		}
	}
	return render.NewPalettedTextureBuilder(size, size, texels)
}

// waterTexture is a one-column blue gradient that repeats down the screen.
func waterTexture() *render.TextureBuilder {
	const height = 32
	texels := make([]uint8, height)
	for y := range height {
		t := 0.5 + 0.5*math.Sin(float64(y)/height*2*math.Pi)
		texels[y] = shade(rampBlue, 0.4+0.5*t)
	}
	return render.NewPalettedTextureBuilder(1, height, texels)
}

// frameTexture is a stone border around a transparent opening.
func frameTexture() *render.TextureBuilder {
	const size = 32
	texels := make([]uint8, size*size)
	for y := range size {
		for x := range size {
			if x < 4 || x >= size-4 || y < 4 || y >= size-4 {
				texels[y*size+x] = shade(rampGray, 0.5)
			}
		}
	}
	return render.NewPalettedTextureBuilder(size, size, texels)
}

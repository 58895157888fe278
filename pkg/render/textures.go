package render

import (
	"go.uber.org/zap"

	"github.com/taigrr/arena/pkg/math3d"
)

// TryCreateObjectTexture allocates a zero-filled texture. A palette texture
// holds width*height ARGB colors instead of indices.
func (r *SoftwareRenderer) TryCreateObjectTexture(width, height int, isPalette bool) (ObjectTextureID, bool) {
	if width <= 0 || height <= 0 {
		r.log.Warn("invalid object texture size", zap.Int("width", width), zap.Int("height", height))
		return 0, false
	}

	id, ok := r.objectTextures.TryAlloc()
	if !ok {
		r.log.Warn("object texture pool exhausted", zap.Int("live", r.objectTextures.Len()))
		return 0, false
	}

	texture := r.objectTextures.Get(id)
	if isPalette {
		texture.initPalette(width, height)
	} else {
		texture.init8Bit(width, height)
	}
	return id, true
}

// TryCreateObjectTextureFromBuilder allocates an 8-bit texture and copies a
// paletted builder into it. True-color builders are not converted; the
// texture stays zero-filled.
func (r *SoftwareRenderer) TryCreateObjectTextureFromBuilder(builder *TextureBuilder) (ObjectTextureID, bool) {
	id, ok := r.TryCreateObjectTexture(builder.Width, builder.Height, false)
	if !ok {
		r.log.Warn("couldn't create object texture from builder",
			zap.Int("width", builder.Width),
			zap.Int("height", builder.Height))
		return 0, false
	}

	texture := r.objectTextures.Get(id)
	switch builder.Type {
	case TextureBuilderPaletted:
		copy(texture.Texels, builder.Paletted)
	case TextureBuilderTrueColor:
		r.log.Warn("true color object textures are not supported, leaving texture blank",
			zap.Uint64("texture", uint64(id)))
	}
	return id, true
}

// TryCreatePaletteTexture allocates a palette texture holding colors.
func (r *SoftwareRenderer) TryCreatePaletteTexture(colors []uint32) (ObjectTextureID, bool) {
	id, ok := r.TryCreateObjectTexture(len(colors), 1, true)
	if !ok {
		return 0, false
	}
	copy(r.objectTextures.Get(id).Palette, colors)
	return id, true
}

// TryGetObjectTextureDims returns a texture's size.
func (r *SoftwareRenderer) TryGetObjectTextureDims(id ObjectTextureID) (width, height int, ok bool) {
	texture, ok := r.objectTextures.TryGet(id)
	if !ok {
		return 0, 0, false
	}
	return texture.Width, texture.Height, true
}

// LockObjectTexture exposes a texture's storage for direct writes.
func (r *SoftwareRenderer) LockObjectTexture(id ObjectTextureID) LockedTexture {
	texture := r.objectTextures.Get(id)
	if texture.IsPalette() {
		return LockedTexture{Colors: texture.Palette, IsTrueColor: true}
	}
	return LockedTexture{Texels: texture.Texels}
}

// UnlockObjectTexture ends a LockObjectTexture. Writes are already visible.
func (r *SoftwareRenderer) UnlockObjectTexture(id ObjectTextureID) {
	r.objectTextures.Get(id)
}

// FreeObjectTexture releases a texture.
func (r *SoftwareRenderer) FreeObjectTexture(id ObjectTextureID) {
	r.objectTextures.Free(id)
}

// TryGetEntitySelectionData reports whether uv selects the texture. With
// pixelPerfect the texel under uv must be opaque; otherwise uv only needs to
// fall inside the texture.
func (r *SoftwareRenderer) TryGetEntitySelectionData(uv math3d.Vec2, id ObjectTextureID, pixelPerfect bool) (selected, ok bool) {
	texture, ok := r.objectTextures.TryGet(id)
	if !ok || texture.IsPalette() {
		return false, false
	}

	inside := uv.X >= 0 && uv.X <= 1 && uv.Y >= 0 && uv.Y <= 1
	if !pixelPerfect || !inside {
		return inside, true
	}

	tex := newShaderTexture(texture, TextureSamplingDefault)
	return tex.sampleUV(uv) != 0, true
}

// ScopedObjectTextureRef owns one object texture and caches its size.
type ScopedObjectTextureRef struct {
	id       ObjectTextureID
	renderer *SoftwareRenderer
	width    int
	height   int
}

// NewScopedObjectTextureRef takes ownership of id.
func NewScopedObjectTextureRef(id ObjectTextureID, renderer *SoftwareRenderer) *ScopedObjectTextureRef {
	ref := &ScopedObjectTextureRef{id: id, renderer: renderer}
	ref.width, ref.height, _ = renderer.TryGetObjectTextureDims(id)
	return ref
}

// ID returns the owned handle, or 0 after Destroy.
func (s *ScopedObjectTextureRef) ID() ObjectTextureID {
	return s.id
}

// Width returns the cached texture width.
func (s *ScopedObjectTextureRef) Width() int {
	return s.width
}

// Height returns the cached texture height.
func (s *ScopedObjectTextureRef) Height() int {
	return s.height
}

// Lock exposes the texture's storage.
func (s *ScopedObjectTextureRef) Lock() LockedTexture {
	return s.renderer.LockObjectTexture(s.id)
}

// Unlock ends a Lock.
func (s *ScopedObjectTextureRef) Unlock() {
	s.renderer.UnlockObjectTexture(s.id)
}

// Destroy frees the texture. Calling it again is a no-op.
func (s *ScopedObjectTextureRef) Destroy() {
	if s.id == 0 {
		return
	}
	s.renderer.FreeObjectTexture(s.id)
	s.id = 0
	s.width = 0
	s.height = 0
}

package models

import (
	"fmt"

	"github.com/taigrr/arena/pkg/math3d"
	"github.com/taigrr/arena/pkg/render"
)

// MeshBuffers are the renderer handles holding one uploaded mesh.
type MeshBuffers struct {
	VertexBufferID   render.VertexBufferID
	NormalBufferID   render.AttributeBufferID
	TexCoordBufferID render.AttributeBufferID
	IndexBufferID    render.IndexBufferID
	TriangleCount    int
}

// Upload copies mesh into new renderer buffers. On failure nothing stays
// allocated.
func Upload(r *render.SoftwareRenderer, mesh *Mesh) (MeshBuffers, error) {
	if err := mesh.Validate(); err != nil {
		return MeshBuffers{}, err
	}
	vertexCount := mesh.VertexCount()
	if vertexCount == 0 || len(mesh.Indices) == 0 {
		return MeshBuffers{}, fmt.Errorf("mesh %q is empty", mesh.Name)
	}

	var b MeshBuffers
	var ok bool
	fail := func(what string) (MeshBuffers, error) {
		b.Free(r)
		return MeshBuffers{}, fmt.Errorf("mesh %q: couldn't create %s", mesh.Name, what)
	}

	if b.VertexBufferID, ok = r.TryCreateVertexBuffer(vertexCount, render.PositionComponents); !ok {
		return fail("vertex buffer")
	}
	if b.NormalBufferID, ok = r.TryCreateAttributeBuffer(vertexCount, render.NormalComponents); !ok {
		return fail("normal buffer")
	}
	if b.TexCoordBufferID, ok = r.TryCreateAttributeBuffer(vertexCount, render.TexCoordComponents); !ok {
		return fail("tex coord buffer")
	}
	if b.IndexBufferID, ok = r.TryCreateIndexBuffer(len(mesh.Indices)); !ok {
		return fail("index buffer")
	}

	r.PopulateVertexBuffer(b.VertexBufferID, mesh.Positions)
	r.PopulateAttributeBuffer(b.NormalBufferID, mesh.Normals)
	r.PopulateAttributeBuffer(b.TexCoordBufferID, mesh.TexCoords)
	r.PopulateIndexBuffer(b.IndexBufferID, mesh.Indices)
	b.TriangleCount = mesh.TriangleCount()
	return b, nil
}

// DrawCall builds a draw call for the uploaded mesh placed at offset.
func (b MeshBuffers) DrawCall(offset math3d.Vec3, shader render.PixelShaderType, textures ...render.ObjectTextureID) render.RenderDrawCall {
	dc := render.RenderDrawCall{
		VertexBufferID:   b.VertexBufferID,
		NormalBufferID:   b.NormalBufferID,
		TexCoordBufferID: b.TexCoordBufferID,
		IndexBufferID:    b.IndexBufferID,
		WorldSpaceOffset: offset,
		PixelShaderType:  shader,
	}
	copy(dc.TextureIDs[:], textures)
	return dc
}

// Free releases every allocated buffer and zeroes the handles. Calling it
// again is a no-op.
func (b *MeshBuffers) Free(r *render.SoftwareRenderer) {
	if b.VertexBufferID != 0 {
		r.FreeVertexBuffer(b.VertexBufferID)
	}
	if b.NormalBufferID != 0 {
		r.FreeAttributeBuffer(b.NormalBufferID)
	}
	if b.TexCoordBufferID != 0 {
		r.FreeAttributeBuffer(b.TexCoordBufferID)
	}
	if b.IndexBufferID != 0 {
		r.FreeIndexBuffer(b.IndexBufferID)
	}
	*b = MeshBuffers{}
}

package render

import (
	"slices"

	"go.uber.org/zap"
)

// VertexBuffer holds model-local positions.
type VertexBuffer struct {
	Vertices            []float64
	ComponentsPerVertex int
}

// AttributeBuffer holds per-vertex normals or texture coordinates.
type AttributeBuffer struct {
	Attributes             []float64
	ComponentsPerAttribute int
}

// IndexBuffer holds triangle vertex indices, three per triangle.
type IndexBuffer struct {
	Indices []int32
}

// TryCreateVertexBuffer allocates a zeroed buffer of vertexCount vertices.
func (r *SoftwareRenderer) TryCreateVertexBuffer(vertexCount, componentsPerVertex int) (VertexBufferID, bool) {
	if vertexCount <= 0 || componentsPerVertex <= 0 {
		r.log.Warn("invalid vertex buffer size",
			zap.Int("vertexCount", vertexCount),
			zap.Int("componentsPerVertex", componentsPerVertex))
		return 0, false
	}

	id, ok := r.vertexBuffers.TryAlloc()
	if !ok {
		r.log.Warn("vertex buffer pool exhausted", zap.Int("live", r.vertexBuffers.Len()))
		return 0, false
	}

	buffer := r.vertexBuffers.Get(id)
	buffer.Vertices = make([]float64, vertexCount*componentsPerVertex)
	buffer.ComponentsPerVertex = componentsPerVertex
	return id, true
}

// TryCreateAttributeBuffer allocates a zeroed buffer of attributeCount entries.
func (r *SoftwareRenderer) TryCreateAttributeBuffer(attributeCount, componentsPerAttribute int) (AttributeBufferID, bool) {
	if attributeCount <= 0 || componentsPerAttribute <= 0 {
		r.log.Warn("invalid attribute buffer size",
			zap.Int("attributeCount", attributeCount),
			zap.Int("componentsPerAttribute", componentsPerAttribute))
		return 0, false
	}

	id, ok := r.attributeBuffers.TryAlloc()
	if !ok {
		r.log.Warn("attribute buffer pool exhausted", zap.Int("live", r.attributeBuffers.Len()))
		return 0, false
	}

	buffer := r.attributeBuffers.Get(id)
	buffer.Attributes = make([]float64, attributeCount*componentsPerAttribute)
	buffer.ComponentsPerAttribute = componentsPerAttribute
	return id, true
}

// TryCreateIndexBuffer allocates a zeroed buffer. indexCount must be a
// positive multiple of 3.
func (r *SoftwareRenderer) TryCreateIndexBuffer(indexCount int) (IndexBufferID, bool) {
	if indexCount <= 0 || indexCount%3 != 0 {
		r.log.Warn("invalid index buffer size", zap.Int("indexCount", indexCount))
		return 0, false
	}

	id, ok := r.indexBuffers.TryAlloc()
	if !ok {
		r.log.Warn("index buffer pool exhausted", zap.Int("live", r.indexBuffers.Len()))
		return 0, false
	}

	r.indexBuffers.Get(id).Indices = make([]int32, indexCount)
	return id, true
}

// PopulateVertexBuffer copies vertices into the buffer. A length mismatch is
// logged and the buffer is left unchanged.
func (r *SoftwareRenderer) PopulateVertexBuffer(id VertexBufferID, vertices []float64) {
	buffer := r.vertexBuffers.Get(id)
	if len(vertices) != len(buffer.Vertices) {
		r.log.Error("mismatched vertex buffer sizes",
			zap.Uint64("id", uint64(id)),
			zap.Int("src", len(vertices)),
			zap.Int("dst", len(buffer.Vertices)))
		return
	}
	copy(buffer.Vertices, vertices)
}

// PopulateAttributeBuffer copies attributes into the buffer. A length mismatch
// is logged and the buffer is left unchanged.
func (r *SoftwareRenderer) PopulateAttributeBuffer(id AttributeBufferID, attributes []float64) {
	buffer := r.attributeBuffers.Get(id)
	if len(attributes) != len(buffer.Attributes) {
		r.log.Error("mismatched attribute buffer sizes",
			zap.Uint64("id", uint64(id)),
			zap.Int("src", len(attributes)),
			zap.Int("dst", len(buffer.Attributes)))
		return
	}
	copy(buffer.Attributes, attributes)
}

// PopulateIndexBuffer copies indices into the buffer. A length mismatch is
// logged and the buffer is left unchanged.
func (r *SoftwareRenderer) PopulateIndexBuffer(id IndexBufferID, indices []int32) {
	buffer := r.indexBuffers.Get(id)
	if len(indices) != len(buffer.Indices) {
		r.log.Error("mismatched index buffer sizes",
			zap.Uint64("id", uint64(id)),
			zap.Int("src", len(indices)),
			zap.Int("dst", len(buffer.Indices)))
		return
	}
	copy(buffer.Indices, indices)
}

// VertexBufferData returns a copy of a vertex buffer's contents.
func (r *SoftwareRenderer) VertexBufferData(id VertexBufferID) []float64 {
	return slices.Clone(r.vertexBuffers.Get(id).Vertices)
}

// AttributeBufferData returns a copy of an attribute buffer's contents.
func (r *SoftwareRenderer) AttributeBufferData(id AttributeBufferID) []float64 {
	return slices.Clone(r.attributeBuffers.Get(id).Attributes)
}

// IndexBufferData returns a copy of an index buffer's contents.
func (r *SoftwareRenderer) IndexBufferData(id IndexBufferID) []int32 {
	return slices.Clone(r.indexBuffers.Get(id).Indices)
}

// FreeVertexBuffer releases a vertex buffer.
func (r *SoftwareRenderer) FreeVertexBuffer(id VertexBufferID) {
	r.vertexBuffers.Free(id)
}

// FreeAttributeBuffer releases an attribute buffer.
func (r *SoftwareRenderer) FreeAttributeBuffer(id AttributeBufferID) {
	r.attributeBuffers.Free(id)
}

// FreeIndexBuffer releases an index buffer.
func (r *SoftwareRenderer) FreeIndexBuffer(id IndexBufferID) {
	r.indexBuffers.Free(id)
}

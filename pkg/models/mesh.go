// Package models holds CPU-side meshes for the software renderer: flat
// attribute arrays ready for upload, glTF loading, and a few generated
// shapes.
package models

import (
	"fmt"
	"slices"

	"github.com/taigrr/arena/pkg/math3d"
)

// Mesh is indexed triangle geometry with one position, normal and UV per
// vertex. Front faces wind counter-clockwise seen from the side the normal
// points to.
type Mesh struct {
	Name      string
	Positions []float64 // XYZ per vertex
	Normals   []float64 // XYZ per vertex
	TexCoords []float64 // UV per vertex, V grows downward
	Indices   []int32   // Three per triangle

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Position returns vertex i's position.
func (m *Mesh) Position(i int) math3d.Vec3 {
	return math3d.V3(m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2])
}

// Normal returns vertex i's normal.
func (m *Mesh) Normal(i int) math3d.Vec3 {
	return math3d.V3(m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2])
}

// TexCoord returns vertex i's UV.
func (m *Mesh) TexCoord(i int) math3d.Vec2 {
	return math3d.V2(m.TexCoords[i*2], m.TexCoords[i*2+1])
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(pos, normal math3d.Vec3, uv math3d.Vec2) int32 {
	index := int32(m.VertexCount())
	m.Positions = append(m.Positions, pos.X, pos.Y, pos.Z)
	m.Normals = append(m.Normals, normal.X, normal.Y, normal.Z)
	m.TexCoords = append(m.TexCoords, uv.X, uv.Y)
	return index
}

// AddTriangle appends a triangle by vertex index.
func (m *Mesh) AddTriangle(a, b, c int32) {
	m.Indices = append(m.Indices, a, b, c)
}

// Validate checks that the attribute arrays agree and every index is in
// range.
func (m *Mesh) Validate() error {
	vertexCount := m.VertexCount()
	switch {
	case len(m.Positions)%3 != 0:
		return fmt.Errorf("mesh %q: %d position components is not a multiple of 3", m.Name, len(m.Positions))
	case len(m.Normals) != vertexCount*3:
		return fmt.Errorf("mesh %q: %d normal components for %d vertices", m.Name, len(m.Normals), vertexCount)
	case len(m.TexCoords) != vertexCount*2:
		return fmt.Errorf("mesh %q: %d tex coord components for %d vertices", m.Name, len(m.TexCoords), vertexCount)
	case len(m.Indices)%3 != 0:
		return fmt.Errorf("mesh %q: %d indices is not a multiple of 3", m.Name, len(m.Indices))
	}
	for i, index := range m.Indices {
		if index < 0 || int(index) >= vertexCount {
			return fmt.Errorf("mesh %q: index %d at %d out of range", m.Name, index, i)
		}
	}
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if m.VertexCount() == 0 {
		return
	}

	m.BoundsMin = m.Position(0)
	m.BoundsMax = m.BoundsMin
	for i := 1; i < m.VertexCount(); i++ {
		p := m.Position(i)
		m.BoundsMin = m.BoundsMin.Min(p)
		m.BoundsMax = m.BoundsMax.Max(p)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// CalculateSmoothNormals replaces the normals with area-weighted averages of
// the adjacent face normals.
func (m *Mesh) CalculateSmoothNormals() {
	vertexCount := m.VertexCount()
	sums := make([]math3d.Vec3, vertexCount)

	for t := range m.TriangleCount() {
		i0, i1, i2 := m.Indices[t*3], m.Indices[t*3+1], m.Indices[t*3+2]
		v0, v1, v2 := m.Position(int(i0)), m.Position(int(i1)), m.Position(int(i2))

		// Don't normalize yet, larger faces weigh more
		normal := v1.Sub(v0).Cross(v2.Sub(v0))
		sums[i0] = sums[i0].Add(normal)
		sums[i1] = sums[i1].Add(normal)
		sums[i2] = sums[i2].Add(normal)
	}

	m.Normals = make([]float64, vertexCount*3)
	for i, n := range sums {
		n = n.Normalize()
		m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2] = n.X, n.Y, n.Z
	}
}

// hasNormals reports whether any normal is non-zero.
func (m *Mesh) hasNormals() bool {
	if len(m.Normals) != m.VertexCount()*3 {
		return false
	}
	for i := range m.VertexCount() {
		if m.Normal(i).Len() > 0.001 {
			return true
		}
	}
	return false
}

// Transform applies a transformation matrix to all vertices. Normals only
// get the rotation and scale part, so non-uniform scales skew them.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.VertexCount() {
		p := mat.MulVec3(m.Position(i))
		m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2] = p.X, p.Y, p.Z

		if len(m.Normals) == len(m.Positions) {
			n := mat.MulVec3Dir(m.Normal(i)).Normalize()
			m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2] = n.X, n.Y, n.Z
		}
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Name:      m.Name,
		Positions: slices.Clone(m.Positions),
		Normals:   slices.Clone(m.Normals),
		TexCoords: slices.Clone(m.TexCoords),
		Indices:   slices.Clone(m.Indices),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
}

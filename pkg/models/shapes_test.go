package models

import (
	"testing"

	"github.com/taigrr/arena/pkg/math3d"
)

// checkFacing verifies every triangle's winding agrees with its vertex
// normals and that the front faces are visible from eye.
func checkFacing(t *testing.T, m *Mesh, eye func(tri int) math3d.Vec3) {
	t.Helper()
	for tri := range m.TriangleCount() {
		i0, i1, i2 := int(m.Indices[tri*3]), int(m.Indices[tri*3+1]), int(m.Indices[tri*3+2])
		v0, v1, v2 := m.Position(i0), m.Position(i1), m.Position(i2)
		geometric := v1.Sub(v0).Cross(v2.Sub(v0))

		if geometric.Dot(m.Normal(i0)) <= 0 {
			t.Errorf("%s triangle %d: winding disagrees with normal %+v", m.Name, tri, m.Normal(i0))
		}
		if eye != nil && eye(tri).Sub(v0).Dot(geometric) <= 0 {
			t.Errorf("%s triangle %d: not facing the viewer", m.Name, tri)
		}
	}
}

func TestNewQuadMesh(t *testing.T) {
	m := NewQuadMesh(4, 2)
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if m.TriangleCount() != 2 {
		t.Fatalf("triangles = %d, want 2", m.TriangleCount())
	}
	checkFacing(t, m, func(int) math3d.Vec3 { return math3d.V3(0, 0, -5) })

	// Viewed from -Z, the top-left corner is at +X, +Y
	for i := range m.VertexCount() {
		if m.TexCoord(i) == math3d.V2(0, 0) {
			if p := m.Position(i); p.X != 2 || p.Y != 1 {
				t.Errorf("UV (0,0) at %+v, want (2, 1, 0)", p)
			}
		}
	}
	if m.BoundsMin != math3d.V3(-2, -1, 0) || m.BoundsMax != math3d.V3(2, 1, 0) {
		t.Errorf("bounds = %+v .. %+v", m.BoundsMin, m.BoundsMax)
	}
}

func TestNewFloorMesh(t *testing.T) {
	m := NewFloorMesh(8, 4, 2)
	checkFacing(t, m, func(int) math3d.Vec3 { return math3d.V3(0, 1, 0) })

	maxU, maxV := 0.0, 0.0
	for i := range m.VertexCount() {
		uv := m.TexCoord(i)
		maxU, maxV = max(maxU, uv.X), max(maxV, uv.Y)
	}
	if maxU != 4 || maxV != 2 {
		t.Errorf("UV extent = (%v, %v), want (4, 2)", maxU, maxV)
	}
}

func TestNewCubeMesh(t *testing.T) {
	m := NewCubeMesh(2)
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if m.TriangleCount() != 12 {
		t.Fatalf("triangles = %d, want 12", m.TriangleCount())
	}
	// Each face is visible from a point outside along its normal
	checkFacing(t, m, func(tri int) math3d.Vec3 {
		return m.Normal(int(m.Indices[tri*3])).Scale(10)
	})
	if m.BoundsMin != math3d.V3(-1, -1, -1) || m.BoundsMax != math3d.V3(1, 1, 1) {
		t.Errorf("bounds = %+v .. %+v", m.BoundsMin, m.BoundsMax)
	}
}

func TestNewRoomMesh(t *testing.T) {
	m := NewRoomMesh(10, 4, 6)
	center := math3d.V3(0, 2, 0)
	checkFacing(t, m, func(int) math3d.Vec3 { return center })

	if m.BoundsMin.Y != 0 || m.BoundsMax.Y != 4 {
		t.Errorf("room spans y %v..%v, want 0..4", m.BoundsMin.Y, m.BoundsMax.Y)
	}
}

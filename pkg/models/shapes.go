package models

import "github.com/taigrr/arena/pkg/math3d"

// addQuad appends a quad with corners given around its edge. The winding is
// fixed up so the front face looks along normal. UVs map a to (0,0) and c
// to (uMax,vMax).
func (m *Mesh) addQuad(a, b, c, d, normal math3d.Vec3, uMax, vMax float64) {
	ia := m.AddVertex(a, normal, math3d.V2(0, 0))
	ib := m.AddVertex(b, normal, math3d.V2(uMax, 0))
	ic := m.AddVertex(c, normal, math3d.V2(uMax, vMax))
	id := m.AddVertex(d, normal, math3d.V2(0, vMax))

	if b.Sub(a).Cross(c.Sub(a)).Dot(normal) < 0 {
		ib, id = id, ib
	}
	m.AddTriangle(ia, ib, ic)
	m.AddTriangle(ia, ic, id)
}

// NewQuadMesh creates a width x height quad in the XY plane, centered on the
// origin and facing -Z. The texture is upright when viewed from -Z with +Y up.
func NewQuadMesh(width, height float64) *Mesh {
	m := NewMesh("quad")
	hw, hh := width/2, height/2
	// Seen from -Z, +X is on the left
	m.addQuad(
		math3d.V3(hw, hh, 0),
		math3d.V3(-hw, hh, 0),
		math3d.V3(-hw, -hh, 0),
		math3d.V3(hw, -hh, 0),
		math3d.V3(0, 0, -1),
		1, 1,
	)
	m.CalculateBounds()
	return m
}

// NewFloorMesh creates a width x depth quad in the XZ plane at y=0 facing
// up, with the texture repeated once per repeat world units.
func NewFloorMesh(width, depth, repeat float64) *Mesh {
	m := NewMesh("floor")
	hw, hd := width/2, depth/2
	m.addQuad(
		math3d.V3(-hw, 0, hd),
		math3d.V3(hw, 0, hd),
		math3d.V3(hw, 0, -hd),
		math3d.V3(-hw, 0, -hd),
		math3d.Up(),
		width/repeat, depth/repeat,
	)
	m.CalculateBounds()
	return m
}

// boxFaces lists the six faces of a unit cube as outward normal plus four
// corners, top edge first.
var boxFaces = [6]struct {
	normal  math3d.Vec3
	corners [4]math3d.Vec3
}{
	{math3d.V3(0, 0, -1), [4]math3d.Vec3{{X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}}},
	{math3d.V3(0, 0, 1), [4]math3d.Vec3{{X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: 1}}},
	{math3d.V3(1, 0, 0), [4]math3d.Vec3{{X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}}},
	{math3d.V3(-1, 0, 0), [4]math3d.Vec3{{X: -1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: 1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: -1}}},
	{math3d.V3(0, 1, 0), [4]math3d.Vec3{{X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1}}},
	{math3d.V3(0, -1, 0), [4]math3d.Vec3{{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: 1}}},
}

func newBox(name string, size math3d.Vec3, inward bool) *Mesh {
	m := NewMesh(name)
	half := size.Scale(0.5)
	for _, face := range boxFaces {
		normal := face.normal
		if inward {
			normal = normal.Negate()
		}
		var c [4]math3d.Vec3
		for i, corner := range face.corners {
			c[i] = corner.Mul(half)
		}
		m.addQuad(c[0], c[1], c[2], c[3], normal, 1, 1)
	}
	m.CalculateBounds()
	return m
}

// NewCubeMesh creates an axis-aligned cube centered on the origin with
// outward-facing sides.
func NewCubeMesh(size float64) *Mesh {
	return newBox("cube", math3d.V3(size, size, size), false)
}

// NewRoomMesh creates a box whose faces point inward, for standing inside.
// The floor sits at y=0.
func NewRoomMesh(width, height, depth float64) *Mesh {
	m := newBox("room", math3d.V3(width, height, depth), true)
	m.Transform(math3d.Translate(math3d.V3(0, height/2, 0)))
	return m
}

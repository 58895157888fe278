package render

import (
	"math"

	"github.com/taigrr/arena/pkg/math3d"
)

// Epsilon is the tolerance for back-face and edge-on tests.
const Epsilon = 1e-6

// Vertex is one corner of a world-space triangle.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Triangle is a world-space triangle ready for rasterization. It only lives
// for the frame that produced it.
type Triangle struct {
	V          [3]Vertex
	TextureIDs [2]ObjectTextureID
}

// GeometricNormal returns (v1-v0) × (v2-v0), unnormalized. It points toward
// a viewer that sees the vertices in counter-clockwise order.
func (t *Triangle) GeometricNormal() math3d.Vec3 {
	p0 := t.V[0].Position
	return t.V[1].Position.Sub(p0).Cross(t.V[2].Position.Sub(p0))
}

// facesEye reports whether the winding is counter-clockwise as seen from eye.
func (t *Triangle) facesEye(eye math3d.Vec3) bool {
	return eye.Sub(t.V[0].Position).Dot(t.GeometricNormal()) > 0
}

// orientToEye swaps two vertices if the triangle is wound away from eye.
func orientToEye(t Triangle, eye math3d.Vec3) Triangle {
	if !t.facesEye(eye) {
		t.V[1], t.V[2] = t.V[2], t.V[1]
	}
	return t
}

// isBackFacing applies the vertex-normal cull test. With allowBackFaces only
// edge-on triangles are rejected.
func isBackFacing(v0, n0, eye math3d.Vec3, allowBackFaces bool) bool {
	dot := eye.Sub(v0).Dot(n0)
	if allowBackFaces {
		return math.Abs(dot) < Epsilon
	}
	return dot < Epsilon
}

// lerpVertex interpolates every attribute at parameter t along a -> b.
func lerpVertex(a, b Vertex, t float64) Vertex {
	return Vertex{
		Position: a.Position.Lerp(b.Position, t),
		Normal:   a.Normal.Lerp(b.Normal, t),
		UV:       a.UV.Lerp(b.UV, t),
	}
}

// crossing returns the vertex where the edge a -> b meets the plane, given the
// signed distances of both ends. da and db must have opposite signs.
func crossing(a, b Vertex, da, db float64) Vertex {
	return lerpVertex(a, b, da/(da-db))
}

// ClipTriangle clips a triangle against one plane and returns 0, 1 or 2
// triangles covering the part on the plane's inner side. Every output is wound
// counter-clockwise as seen from eye.
func ClipTriangle(tri Triangle, eye math3d.Vec3, plane Plane) (out [2]Triangle, n int) {
	var dist [3]float64
	var inside, outside [3]int
	insideCount, outsideCount := 0, 0
	for i := range 3 {
		dist[i] = plane.DistanceToPoint(tri.V[i].Position)
		if dist[i] >= 0 {
			inside[insideCount] = i
			insideCount++
		} else {
			outside[outsideCount] = i
			outsideCount++
		}
	}

	switch insideCount {
	case 0:
		return out, 0

	case 3:
		out[0] = orientToEye(tri, eye)
		return out, 1

	case 1:
		a := inside[0]
		b, c := outside[0], outside[1]
		ab := crossing(tri.V[a], tri.V[b], dist[a], dist[b])
		ac := crossing(tri.V[a], tri.V[c], dist[a], dist[c])

		out[0] = orientToEye(Triangle{
			V:          [3]Vertex{tri.V[a], ab, ac},
			TextureIDs: tri.TextureIDs,
		}, eye)
		return out, 1

	default:
		// Two inside: the kept region is the quad a, b, bc, ac.
		a, b := inside[0], inside[1]
		c := outside[0]
		ac := crossing(tri.V[a], tri.V[c], dist[a], dist[c])
		bc := crossing(tri.V[b], tri.V[c], dist[b], dist[c])

		out[0] = orientToEye(Triangle{
			V:          [3]Vertex{tri.V[a], tri.V[b], ac},
			TextureIDs: tri.TextureIDs,
		}, eye)
		out[1] = orientToEye(Triangle{
			V:          [3]Vertex{tri.V[b], bc, ac},
			TextureIDs: tri.TextureIDs,
		}, eye)
		return out, 2
	}
}

package render

import (
	"github.com/taigrr/arena/pkg/math3d"
)

// Plane represents a plane in 3D space using the equation: Ax + By + Cz + D = 0
// where (A, B, C) is the normal and D is the distance from origin.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// NewPlane creates a plane through point with the given normal.
func NewPlane(point, normal math3d.Vec3) Plane {
	return Plane{Normal: normal, D: -normal.Dot(point)}
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
// The result is scaled by the normal's length.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum holds the planes every visible triangle is clipped against.
// Each plane's normal points inward. There is no far plane.
type Frustum struct {
	Planes [ClipPlaneCount]Plane
}

// Clip plane indices, in clipping order.
const (
	ClipNear = iota
	ClipLeft
	ClipRight
	ClipBottom
	ClipTop
	ClipPlaneCount
)

// NewFrustum builds the clip planes for a camera. The near plane sits
// NearPlane units in front of the eye and the side planes pass through it.
func NewFrustum(cam *RenderCamera) Frustum {
	eye := cam.WorldPoint

	var f Frustum
	f.Planes[ClipNear] = NewPlane(eye.Add(cam.Forward.Scale(NearPlane)), cam.Forward)
	f.Planes[ClipLeft] = NewPlane(eye, cam.LeftFrustumNormal)
	f.Planes[ClipRight] = NewPlane(eye, cam.RightFrustumNormal)
	f.Planes[ClipBottom] = NewPlane(eye, cam.BottomFrustumNormal)
	f.Planes[ClipTop] = NewPlane(eye, cam.TopFrustumNormal)
	return f
}

// ContainsPoint reports whether a point is on the inner side of every plane.
func (f *Frustum) ContainsPoint(point math3d.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(point) < 0 {
			return false
		}
	}
	return true
}

package math3d

import "math"

// Vec2 represents a 2D vector. Used for screen-space points and texture coordinates.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Add returns the vector sum a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns the vector difference a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Scale returns the scalar product a * s.
func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// Dot returns the dot product a · b.
func (a Vec2) Dot(b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Cross returns the z component of the 3D cross product of a and b.
func (a Vec2) Cross(b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Len returns the length of the vector.
func (a Vec2) Len() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y)
}

// RightPerp returns a rotated 90 degrees clockwise in a y-up frame.
// In y-down screen space this is the counter-clockwise perpendicular.
func (a Vec2) RightPerp() Vec2 {
	return Vec2{a.Y, -a.X}
}

// LeftPerp returns the opposite of RightPerp.
func (a Vec2) LeftPerp() Vec2 {
	return Vec2{-a.Y, a.X}
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
	}
}

// IsPointInHalfSpace reports whether point lies on the positive side of the
// line through planePoint with the given normal. Points on the line count as inside.
func IsPointInHalfSpace(point, planePoint, planeNormal Vec2) bool {
	return point.Sub(planePoint).Dot(planeNormal) >= 0
}

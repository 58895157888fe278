package render

import (
	"math"

	"github.com/taigrr/arena/pkg/math3d"
)

// ChunkSize is the width and depth of one world chunk in world units.
const ChunkSize = 64.0

// ChunkCoord identifies a chunk on the horizontal XZ grid.
type ChunkCoord struct {
	X, Z int
}

// WorldPoint converts a chunk-local point to a world-space point.
func (c ChunkCoord) WorldPoint(local math3d.Vec3) math3d.Vec3 {
	return math3d.V3(
		float64(c.X)*ChunkSize+local.X,
		local.Y,
		float64(c.Z)*ChunkSize+local.Z,
	)
}

// RenderCamera is an immutable per-frame snapshot of the viewer.
type RenderCamera struct {
	Chunk      ChunkCoord
	ChunkPoint math3d.Vec3
	WorldPoint math3d.Vec3 // Eye position in world space

	Forward math3d.Vec3
	Right   math3d.Vec3
	Up      math3d.Vec3

	ForwardScaled math3d.Vec3 // Forward * zoom, zoom = 1/tan(fovY/2)
	RightScaled   math3d.Vec3 // Right * aspect ratio
	UpScaled      math3d.Vec3 // Up * tall pixel ratio

	// Inward-facing normals of the side clip planes. All four planes pass
	// through the eye.
	LeftFrustumNormal   math3d.Vec3
	RightFrustumNormal  math3d.Vec3
	BottomFrustumNormal math3d.Vec3
	TopFrustumNormal    math3d.Vec3

	FovY           float64 // Vertical field of view in degrees
	AspectRatio    float64 // Width / Height
	TallPixelRatio float64 // Vertical stretch applied to the image
	YShear         float64 // Vertical image offset as a fraction of screen height
}

// NewRenderCamera builds a camera snapshot. direction does not need to be
// normalized. fovY is in degrees.
func NewRenderCamera(chunk ChunkCoord, point, direction math3d.Vec3, fovY, aspectRatio, tallPixelRatio float64) RenderCamera {
	if tallPixelRatio <= 0 {
		tallPixelRatio = 1
	}

	forward := direction.Normalize()
	right := forward.Cross(math3d.Up()).Normalize()
	if right.LenSq() == 0 {
		// Looking straight up or down
		right = math3d.Right()
	}
	up := right.Cross(forward)

	halfFov := fovY * math.Pi / 360
	tanHalf := math.Tan(halfFov)
	zoom := 1 / tanHalf
	tanH := tanHalf * aspectRatio
	tanV := tanHalf / tallPixelRatio

	return RenderCamera{
		Chunk:               chunk,
		ChunkPoint:          point,
		WorldPoint:          chunk.WorldPoint(point),
		Forward:             forward,
		Right:               right,
		Up:                  up,
		ForwardScaled:       forward.Scale(zoom),
		RightScaled:         right.Scale(aspectRatio),
		UpScaled:            up.Scale(tallPixelRatio),
		LeftFrustumNormal:   right.Add(forward.Scale(tanH)).Normalize(),
		RightFrustumNormal:  forward.Scale(tanH).Sub(right).Normalize(),
		BottomFrustumNormal: up.Add(forward.Scale(tanV)).Normalize(),
		TopFrustumNormal:    forward.Scale(tanV).Sub(up).Normalize(),
		FovY:                fovY,
		AspectRatio:         aspectRatio,
		TallPixelRatio:      tallPixelRatio,
	}
}

// ViewMatrix returns the world-to-camera transform. The up axis is scaled by
// the tall pixel ratio.
func (c *RenderCamera) ViewMatrix() math3d.Mat4 {
	return math3d.View(c.WorldPoint, c.Forward, c.Right, c.UpScaled)
}

// ProjectionMatrix returns the perspective transform for the given depth range.
func (c *RenderCamera) ProjectionMatrix(near, far float64) math3d.Mat4 {
	return math3d.Perspective(c.FovY*math.Pi/180, c.AspectRatio, near, far)
}

// ScreenPointToRay returns the world-space unit direction through a point on
// screen. (0, 0) is the top-left corner and (1, 1) the bottom-right.
func ScreenPointToRay(xPercent, yPercent float64, cam *RenderCamera) math3d.Vec3 {
	x := xPercent*2 - 1
	y := 1 - (yPercent-cam.YShear)*2
	return cam.ForwardScaled.
		Add(cam.RightScaled.Scale(x)).
		Add(cam.Up.Scale(y / cam.TallPixelRatio)).
		Normalize()
}

// Camera is a first-person viewer that walks the chunk grid.
type Camera struct {
	Chunk ChunkCoord
	Point math3d.Vec3 // Chunk-local position

	Yaw   float64 // Radians, positive turns right
	Pitch float64 // Radians, positive looks up

	FovY           float64 // Degrees
	TallPixelRatio float64
}

// NewCamera creates a camera at the origin looking down +Z.
func NewCamera() *Camera {
	return &Camera{
		FovY:           60,
		TallPixelRatio: 1,
	}
}

// Forward returns the view direction.
func (c *Camera) Forward() math3d.Vec3 {
	return math3d.V3(
		-math.Sin(c.Yaw)*math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
}

// Right returns the horizontal right direction.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.V3(-math.Cos(c.Yaw), 0, -math.Sin(c.Yaw))
}

// WorldPoint returns the eye position in world space.
func (c *Camera) WorldPoint() math3d.Vec3 {
	return c.Chunk.WorldPoint(c.Point)
}

// SetWorldPoint places the camera at a world-space position.
func (c *Camera) SetWorldPoint(p math3d.Vec3) {
	c.Chunk = ChunkCoord{}
	c.Point = p
	c.normalizeChunk()
}

// MoveForward walks along the horizontal view direction.
func (c *Camera) MoveForward(distance float64) {
	dir := math3d.V3(-math.Sin(c.Yaw), 0, math.Cos(c.Yaw))
	c.Point = c.Point.Add(dir.Scale(distance))
	c.normalizeChunk()
}

// MoveRight strafes along the horizontal right direction.
func (c *Camera) MoveRight(distance float64) {
	c.Point = c.Point.Add(c.Right().Scale(distance))
	c.normalizeChunk()
}

// MoveUp moves the camera vertically.
func (c *Camera) MoveUp(distance float64) {
	c.Point.Y += distance
}

// Rotate turns the camera by the given angles (in radians).
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.Pitch += deltaPitch
	c.Yaw = math.Mod(c.Yaw+deltaYaw, 2*math.Pi)

	// Clamp pitch so the basis never degenerates
	const maxPitch = math.Pi/2 - 0.01
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch))
}

// Snapshot returns the immutable camera used to render one frame.
func (c *Camera) Snapshot(aspectRatio float64) RenderCamera {
	return NewRenderCamera(c.Chunk, c.Point, c.Forward(), c.FovY, aspectRatio, c.TallPixelRatio)
}

// normalizeChunk keeps the local point inside [0, ChunkSize) on X and Z.
func (c *Camera) normalizeChunk() {
	dx := math.Floor(c.Point.X / ChunkSize)
	dz := math.Floor(c.Point.Z / ChunkSize)
	c.Chunk.X += int(dx)
	c.Chunk.Z += int(dz)
	c.Point.X -= dx * ChunkSize
	c.Point.Z -= dz * ChunkSize
}

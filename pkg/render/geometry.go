package render

import (
	"github.com/taigrr/arena/pkg/math3d"
)

// Component counts for each buffer kind read by the geometry stage.
const (
	PositionComponents = 3
	NormalComponents   = 3
	TexCoordComponents = 2
)

// GeometryInput is one draw call's resolved buffer contents.
type GeometryInput struct {
	Positions      []float64 // 3 per vertex, model-local
	Normals        []float64 // 3 per vertex
	TexCoords      []float64 // 2 per vertex
	Indices        []int32   // 3 per triangle
	WorldOffset    math3d.Vec3
	TextureIDs     [2]ObjectTextureID
	AllowBackFaces bool
}

// GeometryProcessor culls and clips draw-call triangles. It owns the scratch
// buffers the clipper works in, so one processor must not be shared between
// goroutines.
type GeometryProcessor struct {
	clipWork []Triangle
	clipNext []Triangle
	visible  []Triangle

	// Running totals since the last ResetCounters.
	TotalTriangleCount   int
	VisibleTriangleCount int
}

// NewGeometryProcessor creates a processor with empty scratch buffers.
func NewGeometryProcessor() *GeometryProcessor {
	return &GeometryProcessor{}
}

// ResetCounters zeroes the profiling totals.
func (g *GeometryProcessor) ResetCounters() {
	g.TotalTriangleCount = 0
	g.VisibleTriangleCount = 0
}

// Release drops the scratch buffers.
func (g *GeometryProcessor) Release() {
	g.clipWork = nil
	g.clipNext = nil
	g.visible = nil
}

// Process turns one draw call into the triangles visible from eye. The
// returned slice is reused by the next call.
func (g *GeometryProcessor) Process(in *GeometryInput, eye math3d.Vec3, frustum *Frustum) []Triangle {
	g.visible = g.visible[:0]

	triangleCount := len(in.Indices) / 3
	for i := range triangleCount {
		tri := g.assemble(in, i)
		if isBackFacing(tri.V[0].Position, tri.V[0].Normal, eye, in.AllowBackFaces) {
			continue
		}
		g.clip(tri, eye, frustum)
		g.visible = append(g.visible, g.clipWork...)
	}

	g.TotalTriangleCount += triangleCount
	g.VisibleTriangleCount += len(g.visible)
	return g.visible
}

// assemble reads the i'th indexed triangle and moves it into world space.
func (g *GeometryProcessor) assemble(in *GeometryInput, i int) Triangle {
	tri := Triangle{TextureIDs: in.TextureIDs}
	for corner := range 3 {
		index := int(in.Indices[i*3+corner])
		p := index * PositionComponents
		n := index * NormalComponents
		t := index * TexCoordComponents
		tri.V[corner] = Vertex{
			Position: math3d.V3(in.Positions[p], in.Positions[p+1], in.Positions[p+2]).Add(in.WorldOffset),
			Normal:   math3d.V3(in.Normals[n], in.Normals[n+1], in.Normals[n+2]),
			UV:       math3d.V2(in.TexCoords[t], in.TexCoords[t+1]),
		}
	}
	return tri
}

// clip runs tri through every frustum plane, leaving the survivors in clipWork.
func (g *GeometryProcessor) clip(tri Triangle, eye math3d.Vec3, frustum *Frustum) {
	g.clipWork = append(g.clipWork[:0], tri)
	for i := range frustum.Planes {
		g.clipNext = g.clipNext[:0]
		for _, t := range g.clipWork {
			out, n := ClipTriangle(t, eye, frustum.Planes[i])
			g.clipNext = append(g.clipNext, out[:n]...)
		}
		g.clipWork, g.clipNext = g.clipNext, g.clipWork
		if len(g.clipWork) == 0 {
			return
		}
	}
}

package render

import (
	"math"
	"testing"

	"github.com/taigrr/arena/pkg/math3d"
)

// Palette indices used by the tests.
const (
	testRed   uint8 = 1
	testGreen uint8 = 2
	testBlue  uint8 = 3
)

// testMesh is raw buffer contents for one draw call.
type testMesh struct {
	positions []float64
	normals   []float64
	texCoords []float64
	indices   []int32
}

// quadMesh is a square facing -Z at depth z, centered on the Z axis.
// Both triangles are counter-clockwise seen from the origin.
func quadMesh(z, half float64) testMesh {
	return testMesh{
		positions: []float64{
			-half, -half, z,
			-half, half, z,
			half, half, z,
			half, -half, z,
		},
		normals: []float64{
			0, 0, -1,
			0, 0, -1,
			0, 0, -1,
			0, 0, -1,
		},
		texCoords: []float64{
			0, 1,
			0, 0,
			1, 0,
			1, 1,
		},
		indices: []int32{0, 1, 2, 0, 2, 3},
	}
}

// triangleMesh is one triangle at depth z. With facingEye false the winding
// and normal are both reversed.
func triangleMesh(z float64, facingEye bool) testMesh {
	m := testMesh{
		positions: []float64{
			-1, -1, z,
			-1, 1, z,
			1, 1, z,
		},
		normals:   []float64{0, 0, -1, 0, 0, -1, 0, 0, -1},
		texCoords: []float64{0, 1, 0, 0, 1, 0},
		indices:   []int32{0, 1, 2},
	}
	if !facingEye {
		m.normals = []float64{0, 0, 1, 0, 0, 1, 0, 0, 1}
		m.indices = []int32{0, 2, 1}
	}
	return m
}

func newTestRenderer(t testing.TB, width, height int) (*SoftwareRenderer, ObjectTextureID) {
	t.Helper()
	r := NewSoftwareRenderer()
	if err := r.Init(RenderInitSettings{Width: width, Height: height}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	colors := make([]uint32, PaletteSize)
	colors[testRed] = ColorRed
	colors[testGreen] = ColorGreen
	colors[testBlue] = ColorBlue
	paletteID, ok := r.TryCreatePaletteTexture(colors)
	if !ok {
		t.Fatal("failed to create palette")
	}
	return r, paletteID
}

// testCamera looks down +Z from the origin with a 90 degree vertical FOV.
func testCamera(aspect float64) RenderCamera {
	return NewRenderCamera(ChunkCoord{}, math3d.Zero3(), math3d.Forward(), 90, aspect, 1)
}

func solidTexture(t testing.TB, r *SoftwareRenderer, index uint8) ObjectTextureID {
	t.Helper()
	id, ok := r.TryCreateObjectTextureFromBuilder(NewPalettedTextureBuilder(1, 1, []uint8{index}))
	if !ok {
		t.Fatal("failed to create texture")
	}
	return id
}

func uploadMesh(t testing.TB, r *SoftwareRenderer, m testMesh) RenderDrawCall {
	t.Helper()
	vertexCount := len(m.positions) / 3

	vb, ok := r.TryCreateVertexBuffer(vertexCount, PositionComponents)
	if !ok {
		t.Fatal("failed to create vertex buffer")
	}
	nb, ok := r.TryCreateAttributeBuffer(vertexCount, NormalComponents)
	if !ok {
		t.Fatal("failed to create normal buffer")
	}
	tb, ok := r.TryCreateAttributeBuffer(vertexCount, TexCoordComponents)
	if !ok {
		t.Fatal("failed to create tex coord buffer")
	}
	ib, ok := r.TryCreateIndexBuffer(len(m.indices))
	if !ok {
		t.Fatal("failed to create index buffer")
	}

	r.PopulateVertexBuffer(vb, m.positions)
	r.PopulateAttributeBuffer(nb, m.normals)
	r.PopulateAttributeBuffer(tb, m.texCoords)
	r.PopulateIndexBuffer(ib, m.indices)

	return RenderDrawCall{
		VertexBufferID:   vb,
		NormalBufferID:   nb,
		TexCoordBufferID: tb,
		IndexBufferID:    ib,
	}
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func vec3ApproxEqual(a, b math3d.Vec3, tolerance float64) bool {
	return approxEqual(a.X, b.X, tolerance) &&
		approxEqual(a.Y, b.Y, tolerance) &&
		approxEqual(a.Z, b.Z, tolerance)
}

package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec4(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V4(1, 2, 3, 1)

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkViewProjectVertex(b *testing.B) {
	// Same per-vertex chain the rasterizer runs
	view := View(V3(0, 1, 0), Forward(), Right(), Up())
	proj := Perspective(math90, 16.0/9.0, 0.001, 1000)
	v := V4(1, 2, 5, 1)

	for b.Loop() {
		clip := proj.MulVec4(view.MulVec4(v))
		_ = NDCToScreenSpace(clip.PerspectiveDivide(), 0, 320, 200)
	}
}

func BenchmarkHalfSpace(b *testing.B) {
	p := V2(10.5, 20.5)
	a := V2(0, 0)
	n := V2(30, 40).RightPerp()

	for b.Loop() {
		_ = IsPointInHalfSpace(p, a, n)
	}
}

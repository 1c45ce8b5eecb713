package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFrustumContainsSphere(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	proj := Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	f := ExtractFrustum(proj.Mul4(view))

	cases := []struct {
		name   string
		center mgl32.Vec3
		radius float32
		inside bool
	}{
		{"in_front", mgl32.Vec3{0, 0, -5}, 0.5, true},
		{"behind", mgl32.Vec3{0, 0, 5}, 0.5, false},
		{"beyond_far", mgl32.Vec3{0, 0, -200}, 0.5, false},
		{"far_left", mgl32.Vec3{-100, 0, -5}, 0.5, false},
		{"straddles_right_edge", mgl32.Vec3{2.3, 0, -5}, 0.5, true},
		{"above", mgl32.Vec3{0, 50, -5}, 0.5, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := f.ContainsSphere(c.center, c.radius); got != c.inside {
				t.Fatalf("expected %v, got %v", c.inside, got)
			}
		})
	}
}

func TestExtractFrustumNormalizesPlanes(t *testing.T) {
	proj := Perspective(mgl32.DegToRad(60), 1.5, 0.5, 50)
	f := ExtractFrustum(proj)
	for i, p := range f.Planes {
		if l := p.Normal.Len(); !within(l, 1, 1e-5) {
			t.Fatalf("plane %d normal length %v", i, l)
		}
	}
}

package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPerspectiveDepthRange(t *testing.T) {
	const near, far = 0.1, 100.0
	proj := Perspective(mgl32.DegToRad(45), 16.0/9.0, near, far)

	cases := []struct {
		name  string
		z     float32
		depth float32
	}{
		{"near_plane", -near, 0},
		{"far_plane", -far, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clip := proj.Mul4x1(mgl32.Vec4{0, 0, c.z, 1})
			got := clip[2] / clip[3]
			if !within(got, c.depth, 1e-4) {
				t.Fatalf("expected depth %v, got %v", c.depth, got)
			}
		})
	}
}

func TestModelMatrix(t *testing.T) {
	pos := mgl32.Vec3{1, 2, 3}

	t.Run("zero_axis_is_translation", func(t *testing.T) {
		m := ModelMatrix(pos, 1.3, mgl32.Vec3{})
		if m != mgl32.Translate3D(1, 2, 3) {
			t.Fatalf("expected pure translation, got %v", m)
		}
	})

	t.Run("rotation_about_unnormalized_axis", func(t *testing.T) {
		m := ModelMatrix(pos, mgl32.DegToRad(90), mgl32.Vec3{0, 5, 0})
		got := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
		want := mgl32.Vec3{1, 2, 2}
		if !within(got[0], want[0], 1e-5) || !within(got[1], want[1], 1e-5) || !within(got[2], want[2], 1e-5) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})
}

func within(a, b, tolerance float32) bool {
	d := a - b
	return d <= tolerance && d >= -tolerance
}

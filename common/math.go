package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Perspective creates a right-handed perspective projection matrix that maps view-space
// depth into the WebGPU clip range [0, 1]. mgl32.Perspective targets the OpenGL range [-1, 1]
// which would clip everything closer than twice the near plane on a WebGPU surface.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))

	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// ModelMatrix builds translate(position) * rotate(angle, axis). A zero-length axis yields
// a pure translation.
//
// Parameters:
//   - position: world-space translation
//   - angle: rotation in radians
//   - axis: rotation axis, normalized internally
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func ModelMatrix(position mgl32.Vec3, angle float32, axis mgl32.Vec3) mgl32.Mat4 {
	t := mgl32.Translate3D(position[0], position[1], position[2])
	if axis.Len() < 1e-6 {
		return t
	}
	return t.Mul4(mgl32.HomogRotate3D(angle, axis.Normalize()))
}

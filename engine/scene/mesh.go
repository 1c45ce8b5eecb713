package scene

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// CubeBoundingRadius encloses a unit cube centred on its origin under any rotation.
const CubeBoundingRadius = 0.87

// CubeVertices returns a unit cube as 36 non-indexed vertices of x, y, z, u, v.
func CubeVertices() []float32 {
	return []float32{
		-0.5, -0.5, -0.5, 0.0, 0.0,
		0.5, -0.5, -0.5, 1.0, 0.0,
		0.5, 0.5, -0.5, 1.0, 1.0,
		0.5, 0.5, -0.5, 1.0, 1.0,
		-0.5, 0.5, -0.5, 0.0, 1.0,
		-0.5, -0.5, -0.5, 0.0, 0.0,

		-0.5, -0.5, 0.5, 0.0, 0.0,
		0.5, -0.5, 0.5, 1.0, 0.0,
		0.5, 0.5, 0.5, 1.0, 1.0,
		0.5, 0.5, 0.5, 1.0, 1.0,
		-0.5, 0.5, 0.5, 0.0, 1.0,
		-0.5, -0.5, 0.5, 0.0, 0.0,

		-0.5, 0.5, 0.5, 1.0, 0.0,
		-0.5, 0.5, -0.5, 1.0, 1.0,
		-0.5, -0.5, -0.5, 0.0, 1.0,
		-0.5, -0.5, -0.5, 0.0, 1.0,
		-0.5, -0.5, 0.5, 0.0, 0.0,
		-0.5, 0.5, 0.5, 1.0, 0.0,

		0.5, 0.5, 0.5, 1.0, 0.0,
		0.5, 0.5, -0.5, 1.0, 1.0,
		0.5, -0.5, -0.5, 0.0, 1.0,
		0.5, -0.5, -0.5, 0.0, 1.0,
		0.5, -0.5, 0.5, 0.0, 0.0,
		0.5, 0.5, 0.5, 1.0, 0.0,

		-0.5, -0.5, -0.5, 0.0, 1.0,
		0.5, -0.5, -0.5, 1.0, 1.0,
		0.5, -0.5, 0.5, 1.0, 0.0,
		0.5, -0.5, 0.5, 1.0, 0.0,
		-0.5, -0.5, 0.5, 0.0, 0.0,
		-0.5, -0.5, -0.5, 0.0, 1.0,

		-0.5, 0.5, -0.5, 0.0, 1.0,
		0.5, 0.5, -0.5, 1.0, 1.0,
		0.5, 0.5, 0.5, 1.0, 0.0,
		0.5, 0.5, 0.5, 1.0, 0.0,
		-0.5, 0.5, 0.5, 0.0, 0.0,
		-0.5, 0.5, -0.5, 0.0, 1.0,
	}
}

// Instance is one spinning copy of the mesh.
type Instance struct {
	Position mgl32.Vec3

	// Axis need not be normalized. A zero axis disables rotation.
	Axis mgl32.Vec3

	DegreesPerSecond float32
}

// DefaultCubePositions returns the ten classic cube positions scattered in front of a camera at +z.
func DefaultCubePositions() []mgl32.Vec3 {
	return []mgl32.Vec3{
		{0.0, 0.0, 0.0},
		{2.0, 5.0, -15.0},
		{-1.5, -2.2, -2.5},
		{-3.8, -2.0, -12.3},
		{2.4, -0.4, -3.5},
		{-1.7, 3.0, -7.5},
		{1.3, -2.0, -2.5},
		{1.5, 2.0, -2.5},
		{1.5, 0.2, -1.5},
		{-1.3, 1.0, -1.5},
	}
}

// RandomInstances places an instance at each position with a random axis in [0,1)^3 and a
// random speed in [0,360) degrees per second.
//
// Parameters:
//   - rng: the random source; pass a seeded source for reproducible scenes
//   - positions: instance positions
//
// Returns:
//   - []Instance: one instance per position
func RandomInstances(rng *rand.Rand, positions []mgl32.Vec3) []Instance {
	out := make([]Instance, len(positions))
	for i, p := range positions {
		out[i] = Instance{
			Position:         p,
			Axis:             mgl32.Vec3{rng.Float32(), rng.Float32(), rng.Float32()},
			DegreesPerSecond: rng.Float32() * 360,
		}
	}
	return out
}

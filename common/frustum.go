package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustum extracts frustum planes from a view-projection matrix using the
// Gribb/Hartmann method. The near plane uses row 2 alone because the projection maps depth
// into [0, 1] (see Perspective).
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the combined projection * view matrix (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustum(viewProj mgl32.Mat4) Frustum {
	var f Frustum

	r0 := viewProj.Row(0)
	r1 := viewProj.Row(1)
	r2 := viewProj.Row(2)
	r3 := viewProj.Row(3)

	f.Planes[FrustumLeft] = planeFrom(r3.Add(r0))
	f.Planes[FrustumRight] = planeFrom(r3.Sub(r0))
	f.Planes[FrustumBottom] = planeFrom(r3.Add(r1))
	f.Planes[FrustumTop] = planeFrom(r3.Sub(r1))
	f.Planes[FrustumNear] = planeFrom(r2)
	f.Planes[FrustumFar] = planeFrom(r3.Sub(r2))

	return f
}

// ContainsSphere reports whether a sphere intersects or lies inside the frustum.
//
// Parameters:
//   - center: world-space sphere center
//   - radius: sphere radius
//
// Returns:
//   - bool: false only when the sphere is entirely outside one of the planes
func (f Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for _, p := range f.Planes {
		if p.Normal.Dot(center)+p.Distance < -radius {
			return false
		}
	}
	return true
}

// planeFrom builds a normalized plane from an (a, b, c, d) row combination.
func planeFrom(v mgl32.Vec4) Plane {
	p := Plane{Normal: v.Vec3(), Distance: v[3]}
	if length := p.Normal.Len(); length > 0 {
		invLen := 1.0 / length
		p.Normal = p.Normal.Mul(invLen)
		p.Distance *= invLen
	}
	return p
}

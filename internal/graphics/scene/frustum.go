package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Plane is a*x + b*y + c*z + d = 0 with the normal pointing inside.
type Plane struct {
	A, B, C, D float32
}

// Frustum holds the six clip planes: left, right, bottom, top, near, far.
type Frustum [6]Plane

// Margin inflates boxes before culling, in blocks.
const Margin float32 = 1.0

// FrustumFromMatrix extracts the planes of a projection*view matrix.
func FrustumFromMatrix(clip mgl32.Mat4) Frustum {
	// Matrix is in column-major order in mgl32
	m00, m01, m02, m03 := clip[0], clip[4], clip[8], clip[12]
	m10, m11, m12, m13 := clip[1], clip[5], clip[9], clip[13]
	m20, m21, m22, m23 := clip[2], clip[6], clip[10], clip[14]
	m30, m31, m32, m33 := clip[3], clip[7], clip[11], clip[15]

	return Frustum{
		normalizePlane(Plane{m30 + m00, m31 + m01, m32 + m02, m33 + m03}),
		normalizePlane(Plane{m30 - m00, m31 - m01, m32 - m02, m33 - m03}),
		normalizePlane(Plane{m30 + m10, m31 + m11, m32 + m12, m33 + m13}),
		normalizePlane(Plane{m30 - m10, m31 - m11, m32 - m12, m33 - m13}),
		normalizePlane(Plane{m30 + m20, m31 + m21, m32 + m22, m33 + m23}),
		normalizePlane(Plane{m30 - m20, m31 - m21, m32 - m22, m33 - m23}),
	}
}

func normalizePlane(p Plane) Plane {
	l := float32(math.Sqrt(float64(p.A*p.A + p.B*p.B + p.C*p.C)))
	if l == 0 {
		return p
	}
	return Plane{p.A / l, p.B / l, p.C / l, p.D / l}
}

// IntersectsAABB reports whether the box, grown by Margin, touches the
// frustum. Only the corner farthest along each plane normal is tested.
func (f Frustum) IntersectsAABB(lo, hi mgl32.Vec3) bool {
	m := mgl32.Vec3{Margin, Margin, Margin}
	lo = lo.Sub(m)
	hi = hi.Add(m)
	for _, p := range f {
		px := hi.X()
		if p.A < 0 {
			px = lo.X()
		}
		py := hi.Y()
		if p.B < 0 {
			py = lo.Y()
		}
		pz := hi.Z()
		if p.C < 0 {
			pz = lo.Z()
		}
		if p.A*px+p.B*py+p.C*pz+p.D < 0 {
			return false
		}
	}
	return true
}

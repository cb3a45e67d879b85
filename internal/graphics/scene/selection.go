package scene

import "github.com/go-gl/mathgl/mgl32"

// selectionGrow keeps the outline off the block faces.
const selectionGrow = 1.01

// SelectionModel places a unit cube centred at the origin over block b.
func SelectionModel(b [3]int) mgl32.Mat4 {
	return mgl32.Translate3D(float32(b[0])+0.5, float32(b[1])+0.5, float32(b[2])+0.5).
		Mul4(mgl32.Scale3D(selectionGrow, selectionGrow, selectionGrow))
}

// DigTint is the outline colour for a dig progress fraction: black when
// idle, shading to red as the block nears breaking.
func DigTint(fraction float64) mgl32.Vec3 {
	f := float32(min(max(fraction, 0), 1))
	return mgl32.Vec3{0.9, 0.1, 0.1}.Mul(f)
}

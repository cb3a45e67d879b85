package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestSelectionModelCoversVoxel(t *testing.T) {
	m := SelectionModel([3]int{2, 64, -3})
	lo := m.Mul4x1(mgl32.Vec4{-0.5, -0.5, -0.5, 1}).Vec3()
	hi := m.Mul4x1(mgl32.Vec4{0.5, 0.5, 0.5, 1}).Vec3()
	assert.InDelta(t, 1.995, lo.X(), 1e-4)
	assert.InDelta(t, 63.995, lo.Y(), 1e-4)
	assert.InDelta(t, -3.005, lo.Z(), 1e-4)
	assert.InDelta(t, 3.005, hi.X(), 1e-4)
	assert.InDelta(t, 65.005, hi.Y(), 1e-4)
	assert.InDelta(t, -1.995, hi.Z(), 1e-4)
}

func TestDigTint(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{}, DigTint(0))
	assert.Equal(t, DigTint(1), DigTint(3))
	mid := DigTint(0.5)
	assert.InDelta(t, 0.45, mid.X(), 1e-6)
	assert.Greater(t, DigTint(0.8).X(), mid.X())
}

package physics

import (
	"math"

	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// parallelEpsilon rejects rays nearly parallel to a face plane.
const parallelEpsilon = 0.001

// Hit is the block face the observer is aiming at.
type Hit struct {
	Block    [3]int
	Normal   [3]int // outward normal of the face that was hit
	Distance float32
}

// Adjacent returns the cell in front of the hit face, where a placed block goes.
func (h Hit) Adjacent() [3]int {
	return [3]int{h.Block[0] + h.Normal[0], h.Block[1] + h.Normal[1], h.Block[2] + h.Normal[2]}
}

// Pick finds the nearest solid block face hit by the ray within reach.
//
// Every solid block in the cube of half-width ceil(reach) around the
// observer's cell is tested, but only on faces that can face the observer.
// The nearest face wins; on an exact tie the first block in ascending
// x, y, z offset order is kept. A winner whose block coordinate (its
// minimum corner) lies farther than reach from origin is dropped.
func Pick(blocks world.BlockReader, origin, direction mgl32.Vec3, reach float32) (Hit, bool) {
	defer profiling.Track("physics.Pick")()

	if reach <= 0 || direction.Len() == 0 {
		return Hit{}, false
	}

	orig := mgl64.Vec3{float64(origin[0]), float64(origin[1]), float64(origin[2])}
	dir := mgl64.Vec3{float64(direction[0]), float64(direction[1]), float64(direction[2])}
	cell := [3]int{
		int(math.Floor(orig[0])),
		int(math.Floor(orig[1])),
		int(math.Floor(orig[2])),
	}
	half := int(math.Ceil(float64(reach)))

	best := Hit{}
	bestT := math.Inf(1)
	found := false

	for ox := -half; ox <= half; ox++ {
		for oy := -half; oy <= half; oy++ {
			for oz := -half; oz <= half; oz++ {
				b := [3]int{cell[0] + ox, cell[1] + oy, cell[2] + oz}
				if blocks.Get(b[0], b[1], b[2]) == world.BlockTypeAir {
					continue
				}
				t, normal, ok := nearestFace(orig, dir, b, [3]int{ox, oy, oz})
				if ok && t < bestT {
					bestT = t
					best = Hit{Block: b, Normal: normal, Distance: float32(t)}
					found = true
				}
			}
		}
	}
	if !found {
		return Hit{}, false
	}

	corner := mgl64.Vec3{float64(best.Block[0]), float64(best.Block[1]), float64(best.Block[2])}
	if corner.Sub(orig).Len() > float64(reach) {
		return Hit{}, false
	}
	return best, true
}

// nearestFace tests the faces of block b that can face an observer at
// offset -o from it and returns the smallest positive hit distance.
func nearestFace(orig, dir mgl64.Vec3, b, o [3]int) (float64, [3]int, bool) {
	bestT := math.Inf(1)
	var normal [3]int
	found := false

	for axis := 0; axis < 3; axis++ {
		if o[axis] == 0 {
			continue
		}
		// A target ahead on this axis shows its near (negative) face.
		side := 1
		if o[axis] > 0 {
			side = -1
		}
		quad := faceQuad(b, axis, side)
		t, ok := rayQuad(orig, dir, quad)
		if ok && t < bestT {
			bestT = t
			normal = [3]int{}
			normal[axis] = side
			found = true
		}
	}
	return bestT, normal, found
}

// faceQuad returns the corners, in order around the edge, of the face of
// block b on the given axis and side.
func faceQuad(b [3]int, axis, side int) [4]mgl64.Vec3 {
	u := (axis + 1) % 3
	v := (axis + 2) % 3
	plane := float64(b[axis])
	if side > 0 {
		plane++
	}
	corner := func(du, dv float64) mgl64.Vec3 {
		var p mgl64.Vec3
		p[axis] = plane
		p[u] = float64(b[u]) + du
		p[v] = float64(b[v]) + dv
		return p
	}
	return [4]mgl64.Vec3{corner(0, 0), corner(1, 0), corner(1, 1), corner(0, 1)}
}

// rayQuad intersects the ray with a planar convex quad. The hit point must
// lie on the inner side of all four edges.
func rayQuad(orig, dir mgl64.Vec3, q [4]mgl64.Vec3) (float64, bool) {
	n := q[1].Sub(q[0]).Cross(q[2].Sub(q[0]))

	nd := n.Dot(dir)
	if math.Abs(nd) < parallelEpsilon {
		return 0, false
	}
	t := (n.Dot(q[0]) - n.Dot(orig)) / nd
	if t <= 0 {
		return 0, false
	}
	p := orig.Add(dir.Mul(t))

	for i := 0; i < 4; i++ {
		a, b := q[i], q[(i+1)%4]
		if b.Sub(a).Cross(p.Sub(a)).Dot(n) < 0 {
			return 0, false
		}
	}
	return t, true
}

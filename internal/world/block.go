package world

type BlockType uint8

const (
	BlockTypeAir BlockType = iota
	BlockTypeGrass
	BlockTypeDirt
	BlockTypeStone
	BlockTypeBedrock
	BlockTypeLog
	BlockTypeLeaves
	BlockTypeCactus
	BlockTypeSand
	BlockTypeSandstone
	BlockTypeTorch
	BlockTypePlanks
	BlockTypeCobblestone

	blockTypeCount
)

var blockNames = [blockTypeCount]string{
	BlockTypeAir:         "air",
	BlockTypeGrass:       "grass",
	BlockTypeDirt:        "dirt",
	BlockTypeStone:       "stone",
	BlockTypeBedrock:     "bedrock",
	BlockTypeLog:         "log",
	BlockTypeLeaves:      "leaves",
	BlockTypeCactus:      "cactus",
	BlockTypeSand:        "sand",
	BlockTypeSandstone:   "sandstone",
	BlockTypeTorch:       "torch",
	BlockTypePlanks:      "planks",
	BlockTypeCobblestone: "cobblestone",
}

func (b BlockType) String() string {
	if b < blockTypeCount {
		return blockNames[b]
	}
	return "unknown"
}

// IsSolid reports whether the block occupies its cell for collision and picking.
func (b BlockType) IsSolid() bool {
	return b != BlockTypeAir
}

// IsTransparent reports whether faces of neighbouring blocks stay visible
// through this block.
func (b BlockType) IsTransparent() bool {
	switch b {
	case BlockTypeAir, BlockTypeLeaves, BlockTypeCactus:
		return true
	}
	return false
}

// BlockFace identifies a face of a block
type BlockFace int

const (
	FaceTop BlockFace = iota
	FaceBottom
	FaceWest  // -X
	FaceEast  // +X
	FaceNorth // -Z
	FaceSouth // +Z
)

// Normal returns the outward unit normal of the face as integer offsets.
func (f BlockFace) Normal() [3]int {
	switch f {
	case FaceTop:
		return [3]int{0, 1, 0}
	case FaceBottom:
		return [3]int{0, -1, 0}
	case FaceWest:
		return [3]int{-1, 0, 0}
	case FaceEast:
		return [3]int{1, 0, 0}
	case FaceNorth:
		return [3]int{0, 0, -1}
	case FaceSouth:
		return [3]int{0, 0, 1}
	}
	return [3]int{}
}

package inventory

import "mini-voxel/internal/world"

// ItemType is something the observer can carry.
type ItemType uint8

const (
	ItemDirt ItemType = iota
	ItemLog
	ItemPlank
	ItemCobblestone
	ItemSand
	ItemCactus
	ItemSandstone

	itemTypeCount
)

var itemNames = [itemTypeCount]string{
	ItemDirt:        "dirt",
	ItemLog:         "log",
	ItemPlank:       "plank",
	ItemCobblestone: "cobblestone",
	ItemSand:        "sand",
	ItemCactus:      "cactus",
	ItemSandstone:   "sandstone",
}

var itemBlocks = [itemTypeCount]world.BlockType{
	ItemDirt:        world.BlockTypeDirt,
	ItemLog:         world.BlockTypeLog,
	ItemPlank:       world.BlockTypePlanks,
	ItemCobblestone: world.BlockTypeCobblestone,
	ItemSand:        world.BlockTypeSand,
	ItemCactus:      world.BlockTypeCactus,
	ItemSandstone:   world.BlockTypeSandstone,
}

func (t ItemType) String() string {
	if t < itemTypeCount {
		return itemNames[t]
	}
	return "unknown"
}

// Block returns the block placed when the item is used.
func (t ItemType) Block() world.BlockType {
	if t < itemTypeCount {
		return itemBlocks[t]
	}
	return world.BlockTypeAir
}

// DropFor returns the item collected when a block is dug out. Blocks
// without a drop (bedrock, leaves) report false.
func DropFor(b world.BlockType) (ItemType, bool) {
	switch b {
	case world.BlockTypeDirt, world.BlockTypeGrass:
		return ItemDirt, true
	case world.BlockTypeStone, world.BlockTypeCobblestone:
		return ItemCobblestone, true
	case world.BlockTypeLog:
		return ItemLog, true
	case world.BlockTypePlanks:
		return ItemPlank, true
	case world.BlockTypeSand:
		return ItemSand, true
	case world.BlockTypeSandstone:
		return ItemSandstone, true
	case world.BlockTypeCactus:
		return ItemCactus, true
	}
	return 0, false
}

// Stack is a number of items of one type held in a slot.
type Stack struct {
	Type  ItemType
	Count int
}

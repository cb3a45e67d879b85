package inventory

import "mini-voxel/internal/world"

const (
	HotbarSize   = 9
	MaxStackSize = 64
)

// Inventory is the observer's hotbar. Slots hold nil when empty.
type Inventory struct {
	Slots    [HotbarSize]*Stack
	Selected int // index 0-8
}

func New() *Inventory {
	return &Inventory{}
}

// Current returns the stack in the selected slot, or nil.
func (inv *Inventory) Current() *Stack {
	return inv.Slots[inv.Selected]
}

// Select sets the selected slot directly; out of range indices are ignored.
func (inv *Inventory) Select(index int) {
	if index >= 0 && index < HotbarSize {
		inv.Selected = index
	}
}

// Scroll moves the selection by steps slots, wrapping around the hotbar.
func (inv *Inventory) Scroll(steps int) {
	inv.Selected = ((inv.Selected+steps)%HotbarSize + HotbarSize) % HotbarSize
}

// Add puts n items of type t into the hotbar, topping up existing stacks
// before filling empty slots. It returns how many did not fit.
func (inv *Inventory) Add(t ItemType, n int) int {
	if n <= 0 {
		return 0
	}

	// 1. Merge into stacks of the same type.
	for _, s := range inv.Slots {
		if s != nil && s.Type == t && s.Count < MaxStackSize {
			toAdd := min(n, MaxStackSize-s.Count)
			s.Count += toAdd
			n -= toAdd
			if n == 0 {
				return 0
			}
		}
	}

	// 2. Open new stacks in empty slots.
	for i := range inv.Slots {
		if inv.Slots[i] != nil {
			continue
		}
		toAdd := min(n, MaxStackSize)
		inv.Slots[i] = &Stack{Type: t, Count: toAdd}
		n -= toAdd
		if n == 0 {
			return 0
		}
	}
	return n
}

// Remove takes up to n items of type t out of the hotbar, emptying slots
// that run out, and returns how many were removed.
func (inv *Inventory) Remove(t ItemType, n int) int {
	removed := 0
	for i, s := range inv.Slots {
		if removed == n {
			break
		}
		if s == nil || s.Type != t {
			continue
		}
		take := min(s.Count, n-removed)
		s.Count -= take
		removed += take
		if s.Count == 0 {
			inv.Slots[i] = nil
		}
	}
	return removed
}

// Count returns the total number of items of type t held.
func (inv *Inventory) Count(t ItemType) int {
	total := 0
	for _, s := range inv.Slots {
		if s != nil && s.Type == t {
			total += s.Count
		}
	}
	return total
}

// CollectDrop adds the item dropped by a dug block. It reports whether
// anything was picked up.
func (inv *Inventory) CollectDrop(b world.BlockType) bool {
	it, ok := DropFor(b)
	if !ok {
		return false
	}
	return inv.Add(it, 1) == 0
}

// SelectedBlock returns the block the selected stack would place.
func (inv *Inventory) SelectedBlock() (world.BlockType, bool) {
	s := inv.Current()
	if s == nil || s.Count == 0 {
		return world.BlockTypeAir, false
	}
	return s.Type.Block(), true
}

// TakeSelected consumes one item from the selected slot and returns the
// block it places.
func (inv *Inventory) TakeSelected() (world.BlockType, bool) {
	b, ok := inv.SelectedBlock()
	if !ok {
		return b, false
	}
	s := inv.Current()
	s.Count--
	if s.Count == 0 {
		inv.Slots[inv.Selected] = nil
	}
	return b, true
}

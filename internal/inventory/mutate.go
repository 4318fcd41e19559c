package inventory

import (
	"github.com/pixil98/go-stash/internal/item"
)

// Add places it into the inventory. An empty valid index is used directly;
// otherwise the item is merged into the first stack of the same kind and any
// remainder goes to the lowest empty slot. Whatever cannot be placed is
// handed to the overflow handler.
func (inv *Inventory) Add(it *item.Item, index int) {
	if it == nil || inv.Contains(it) {
		return
	}
	if it.IsDepleted() {
		it.Destroy()
		return
	}
	if inv.IsValidItem(it) && inv.place(it, index) {
		return
	}
	inv.overflowItem(it)
}

// TryAdd places it like Add but reports false instead of overflowing. On
// false the item is left untouched.
func (inv *Inventory) TryAdd(it *item.Item, index int) bool {
	if it == nil || it.IsDepleted() || inv.Contains(it) || !inv.IsValidItem(it) {
		return false
	}
	if !inv.fits(it, index) {
		return false
	}
	return inv.place(it, index)
}

// place returns true once it has been stored or fully absorbed.
func (inv *Inventory) place(it *item.Item, index int) bool {
	if inv.IsValidIndex(index) && inv.slots[index] == nil {
		inv.occupy(index, it)
		return true
	}

	if i := inv.IndexOfStackable(it); i != NoSlot && inv.slots[i].AddCount(it) {
		inv.notifyChanged(i)
		if it.IsDepleted() {
			it.Destroy()
			return true
		}
	}

	if i := inv.IndexOfEmptySlot(); i != NoSlot {
		inv.occupy(i, it)
		return true
	}
	return false
}

// fits reports whether place would store all of it.
func (inv *Inventory) fits(it *item.Item, index int) bool {
	if inv.IsValidIndex(index) && inv.slots[index] == nil {
		return true
	}
	if !inv.IsFull() {
		return true
	}
	i := inv.IndexOfStackable(it)
	if i == NoSlot {
		return false
	}
	s := inv.slots[i]
	return s.StackLimit() == 0 || s.StackLimit()-s.Count() >= it.Count()
}

func (inv *Inventory) overflowItem(it *item.Item) {
	if inv.overflow != nil {
		inv.overflow.Overflow(inv, it, it.Count())
	}
}

// Remove takes amount from the stack in slot index, destroying it when the
// count reaches zero. Returns false if the slot is empty or out of range.
func (inv *Inventory) Remove(index int, amount int) bool {
	if inv.IsEmpty() || !inv.IsValidIndex(index) || inv.slots[index] == nil {
		return false
	}
	inv.decrement(index, amount)
	return true
}

// RemoveItem is Remove for the slot holding exactly this instance.
func (inv *Inventory) RemoveItem(it *item.Item, amount int) bool {
	if inv.IsEmpty() {
		return false
	}
	index := inv.IndexOf(it)
	if index == NoSlot {
		return false
	}
	inv.decrement(index, amount)
	return true
}

func (inv *Inventory) decrement(index int, amount int) {
	it := inv.slots[index]
	it.SetCount(it.Count() - max(0, amount))
	if it.IsDepleted() {
		inv.release(index)
	}
	inv.notifyChanged(index)
}

// Delete destroys the item in slot index regardless of its count.
func (inv *Inventory) Delete(index int) bool {
	if inv.IsEmpty() || !inv.IsValidIndex(index) || inv.slots[index] == nil {
		return false
	}
	inv.release(index)
	inv.notifyChanged(index)
	return true
}

// Clear destroys every item.
func (inv *Inventory) Clear() {
	for i, it := range inv.slots {
		if it != nil {
			it.Destroy()
			inv.slots[i] = nil
		}
	}
	inv.emptySlots = len(inv.slots)
	inv.notifyCleared()
}

// Move transfers the item in slot index to targetIndex of target, which may
// be inv itself. A compatible stack at the target absorbs as much as it can.
// Otherwise the item moves into an empty slot of another inventory, or the
// two slots swap contents. Returns false without changing anything when the
// indices, item types or clone fail.
func (inv *Inventory) Move(index int, target *Inventory, targetIndex int) bool {
	if target == nil || !inv.IsValidIndex(index) || !target.IsValidIndex(targetIndex) {
		return false
	}
	if target == inv && index == targetIndex {
		return false
	}

	src := inv.slots[index]
	if src == nil || !target.IsValidItem(src) {
		return false
	}
	dst := target.slots[targetIndex]
	if dst != nil && !inv.IsValidItem(dst) {
		return false
	}

	// A partial merge ends the move; the remainder stays in the source slot.
	if dst != nil && dst.AddCount(src) {
		if src.IsDepleted() {
			inv.release(index)
		}
		inv.notifyChanged(index)
		target.notifyChanged(targetIndex)
		return true
	}

	if target != inv && dst == nil {
		c, err := inv.clone(src)
		if err != nil || c == nil {
			return false
		}
		target.occupy(targetIndex, c)
		inv.release(index)
		inv.notifyChanged(index)
		return true
	}

	inv.slots[index], target.slots[targetIndex] = dst, src
	if target == inv {
		inv.notifySwapped(index, targetIndex)
		return true
	}

	dst.OnAdd(inv.name)
	src.OnAdd(target.name)
	inv.notifyChanged(index)
	target.notifyChanged(targetIndex)
	return true
}

package inventory

import (
	"github.com/pixil98/go-stash/internal/item"
)

const (
	// AnySlot lets Add and TryAdd choose the slot.
	AnySlot = -1
	// NoSlot is returned by index lookups that find nothing.
	NoSlot  = -1
)

// Cloner duplicates an item instance for cross-inventory moves.
type Cloner interface {
	Clone(*item.Item) (*item.Item, error)
}

// Inventory is a fixed number of slots, each holding at most one item stack.
//
// An Inventory is not safe for concurrent use. Callers that share inventories
// between goroutines must serialise every operation, including Move calls
// that touch two inventories at once.
type Inventory struct {
	name       string
	slots      []*item.Item
	accepted   item.TagSet
	emptySlots int

	sink     Sink
	overflow OverflowHandler
	cloner   Cloner
}

// New creates and initializes an inventory with size slots accepting items
// tagged with any of tags.
func New(name string, size int, tags []item.Tag, opts ...Option) *Inventory {
	inv := &Inventory{name: name}
	for _, opt := range opts {
		opt(inv)
	}
	inv.Initialize(size, tags)
	return inv
}

// Initialize sets the slot count and accepted tags. Any current contents are
// destroyed without notification.
func (inv *Inventory) Initialize(size int, tags []item.Tag) {
	for _, it := range inv.slots {
		if it != nil {
			it.Destroy()
		}
	}
	if size < 0 {
		size = 0
	}
	inv.slots = make([]*item.Item, size)
	inv.accepted = item.NewTagSet(tags...)
	inv.emptySlots = size
}

// Teardown clears the inventory and detaches its collaborators.
func (inv *Inventory) Teardown() {
	inv.Clear()
	inv.sink = nil
	inv.overflow = nil
}

// SetSink replaces the notification sink. A nil sink disables notifications.
func (inv *Inventory) SetSink(s Sink) {
	inv.sink = s
}

// SetOverflow replaces the overflow handler used by Add.
func (inv *Inventory) SetOverflow(h OverflowHandler) {
	inv.overflow = h
}

func (inv *Inventory) Name() string      { return inv.name }
func (inv *Inventory) Size() int         { return len(inv.slots) }
func (inv *Inventory) EmptySlots() int   { return inv.emptySlots }
func (inv *Inventory) IsFull() bool      { return inv.emptySlots == 0 }
func (inv *Inventory) IsEmpty() bool     { return inv.emptySlots == len(inv.slots) }
func (inv *Inventory) Tags() item.TagSet { return inv.accepted }

// Get returns the item in slot index, or nil if the slot is empty or the
// index is out of range.
func (inv *Inventory) Get(index int) *item.Item {
	if !inv.IsValidIndex(index) {
		return nil
	}
	return inv.slots[index]
}

// Slots returns a copy of the slot array.
func (inv *Inventory) Slots() []*item.Item {
	out := make([]*item.Item, len(inv.slots))
	copy(out, inv.slots)
	return out
}

func (inv *Inventory) IsValidIndex(index int) bool {
	return index >= 0 && index < len(inv.slots)
}

// IsValidItem reports whether it carries a tag this inventory accepts.
func (inv *Inventory) IsValidItem(it *item.Item) bool {
	return it != nil && inv.accepted.Intersects(it.Tags())
}

// IndexOf returns the slot holding exactly this instance.
func (inv *Inventory) IndexOf(it *item.Item) int {
	if it == nil {
		return NoSlot
	}
	for i, s := range inv.slots {
		if s == it {
			return i
		}
	}
	return NoSlot
}

// IndexOfID returns the first slot holding an instance with the given id.
func (inv *Inventory) IndexOfID(id string) int {
	for i, s := range inv.slots {
		if s != nil && s.ID() == id {
			return i
		}
	}
	return NoSlot
}

// IndexOfStackable returns the first slot holding the same kind as it with
// room left on the stack.
func (inv *Inventory) IndexOfStackable(it *item.Item) int {
	if it == nil {
		return NoSlot
	}
	for i, s := range inv.slots {
		if s != nil && s != it && s.SameKind(it) && !s.IsMaxStack() {
			return i
		}
	}
	return NoSlot
}

// IndexOfEmptySlot returns the lowest empty slot.
func (inv *Inventory) IndexOfEmptySlot() int {
	if inv.IsFull() {
		return NoSlot
	}
	for i, s := range inv.slots {
		if s == nil {
			return i
		}
	}
	return NoSlot
}

func (inv *Inventory) Contains(it *item.Item) bool          { return inv.IndexOf(it) != NoSlot }
func (inv *Inventory) ContainsID(id string) bool            { return inv.IndexOfID(id) != NoSlot }
func (inv *Inventory) ContainsStackable(it *item.Item) bool { return inv.IndexOfStackable(it) != NoSlot }

// occupy places it into the empty slot index.
func (inv *Inventory) occupy(index int, it *item.Item) {
	inv.slots[index] = it
	it.OnAdd(inv.name)
	inv.emptySlots--
	inv.notifyChanged(index)
}

// release destroys the item in slot index and frees the slot.
func (inv *Inventory) release(index int) {
	inv.slots[index].Destroy()
	inv.slots[index] = nil
	inv.emptySlots++
}

func (inv *Inventory) clone(it *item.Item) (*item.Item, error) {
	if inv.cloner == nil {
		return it.Clone(), nil
	}
	return inv.cloner.Clone(it)
}

func (inv *Inventory) notifyChanged(index int) {
	if inv.sink != nil {
		inv.sink.SlotChanged(index)
	}
}

func (inv *Inventory) notifySwapped(a, b int) {
	if inv.sink != nil {
		inv.sink.SlotsSwapped(a, b)
	}
}

func (inv *Inventory) notifyCleared() {
	if inv.sink != nil {
		inv.sink.Cleared()
	}
}

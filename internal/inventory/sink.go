package inventory

import (
	"log/slog"

	"github.com/pixil98/go-stash/internal/item"
)

// Sink is notified synchronously after the inventory changes.
type Sink interface {
	// SlotChanged is called when the contents or count of a slot change.
	SlotChanged(index int)

	// SlotsSwapped is called when two slots of the same inventory exchange
	// their contents.
	SlotsSwapped(a, b int)

	// Cleared is called after every slot was emptied.
	Cleared()
}

// MultiSink fans notifications out to several sinks in order.
type MultiSink []Sink

func (m MultiSink) SlotChanged(index int) {
	for _, s := range m {
		s.SlotChanged(index)
	}
}

func (m MultiSink) SlotsSwapped(a, b int) {
	for _, s := range m {
		s.SlotsSwapped(a, b)
	}
}

func (m MultiSink) Cleared() {
	for _, s := range m {
		s.Cleared()
	}
}

// OverflowHandler receives items Add could not place.
type OverflowHandler interface {
	Overflow(inv *Inventory, it *item.Item, amount int)
}

// OverflowFunc adapts a function to OverflowHandler.
type OverflowFunc func(inv *Inventory, it *item.Item, amount int)

func (f OverflowFunc) Overflow(inv *Inventory, it *item.Item, amount int) {
	f(inv, it, amount)
}

// Discard destroys overflowing items.
type Discard struct{}

func (Discard) Overflow(inv *Inventory, it *item.Item, amount int) {
	slog.Warn("discarding item that did not fit", "inventory", inv.Name(), "item", it.DefId(), "amount", amount)
	it.Destroy()
}

// Pile collects overflowing items so they can be picked up later.
type Pile struct {
	items []*item.Item
}

func (p *Pile) Overflow(inv *Inventory, it *item.Item, amount int) {
	slog.Debug("item dropped to pile", "inventory", inv.Name(), "item", it.DefId(), "amount", amount)
	it.OnRemove()
	p.items = append(p.items, it)
}

// Items returns the items currently in the pile, oldest first.
func (p *Pile) Items() []*item.Item {
	out := make([]*item.Item, len(p.items))
	copy(out, p.items)
	return out
}

// Len returns the number of stacks in the pile.
func (p *Pile) Len() int {
	return len(p.items)
}

// Take removes and returns the oldest stack of kind defId, or nil.
func (p *Pile) Take(defId string) *item.Item {
	for i, it := range p.items {
		if it.DefId() == defId {
			p.items = append(p.items[:i], p.items[i+1:]...)
			return it
		}
	}
	return nil
}

// Contains reports whether it is on the pile.
func (p *Pile) Contains(it *item.Item) bool {
	for _, held := range p.items {
		if held == it {
			return true
		}
	}
	return false
}

package messaging

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-stash/internal/inventory"
	"github.com/pixil98/go-stash/internal/item"
)

const (
	EventSlotChanged  = "changed"
	EventSlotsSwapped = "swapped"
	EventCleared      = "cleared"

	// EventWildcard matches the event subject of every inventory.
	EventWildcard = "inventory.*.events"
)

// Publisher provides the ability to publish messages to subjects
type Publisher interface {
	Publish(subject string, data []byte) error
}

// EventSubject returns the subject slot events of an inventory are sent to.
func EventSubject(inventoryName string) string {
	return fmt.Sprintf("inventory.%s.events", inventoryName)
}

// SlotEvent is the message published for each inventory notification. Slots
// carry the contents after the change.
type SlotEvent struct {
	Inventory string     `json:"inventory"`
	Kind      string     `json:"kind"`
	Slots     []SlotView `json:"slots,omitempty"`
}

type SlotView struct {
	Index int       `json:"index"`
	Item  *ItemView `json:"item,omitempty"`
}

type ItemView struct {
	Id         string `json:"id"`
	DefId      string `json:"def_id"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
	StackLimit int    `json:"stack_limit,omitempty"`
}

// NewItemView returns nil for an empty slot.
func NewItemView(it *item.Item) *ItemView {
	if it == nil {
		return nil
	}
	return &ItemView{
		Id:         it.ID(),
		DefId:      it.DefId(),
		Name:       it.Name(),
		Count:      it.Count(),
		StackLimit: it.StackLimit(),
	}
}

// SlotPublisher is an inventory.Sink that publishes SlotEvents for one
// inventory.
type SlotPublisher struct {
	pub     Publisher
	inv     *inventory.Inventory
	subject string
}

// NewSlotPublisher creates a sink reporting on inv. The caller attaches it
// with inv.SetSink.
func NewSlotPublisher(pub Publisher, inv *inventory.Inventory) *SlotPublisher {
	p := &SlotPublisher{
		pub:     pub,
		inv:     inv,
		subject: EventSubject(inv.Name()),
	}
	return p
}

func (p *SlotPublisher) SlotChanged(index int) {
	p.send(EventSlotChanged, index)
}

func (p *SlotPublisher) SlotsSwapped(a, b int) {
	p.send(EventSlotsSwapped, a, b)
}

func (p *SlotPublisher) Cleared() {
	p.send(EventCleared)
}

func (p *SlotPublisher) send(kind string, indexes ...int) {
	ev := SlotEvent{
		Inventory: p.inv.Name(),
		Kind:      kind,
	}
	for _, i := range indexes {
		ev.Slots = append(ev.Slots, SlotView{Index: i, Item: NewItemView(p.inv.Get(i))})
	}

	data, err := json.Marshal(ev)
	if err != nil {
		slog.Error("marshalling slot event", "inventory", ev.Inventory, "error", err)
		return
	}

	if err := p.pub.Publish(p.subject, data); err != nil {
		slog.Warn("publishing slot event", "subject", p.subject, "error", err)
	}
}

package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/pixil98/go-stash/internal/display"
	"github.com/pixil98/go-stash/internal/inventory"
	"github.com/pixil98/go-stash/internal/item"
	"github.com/pixil98/go-stash/internal/messaging"
	"github.com/pixil98/go-stash/internal/registry"
)

const (
	OverflowDiscard = "discard"
	OverflowPile    = "pile"
	OverflowReject  = "reject"
)

// Subscriber provides subscription to message subjects.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (unsubscribe func(), err error)
}

// InventorySpec describes an inventory the world creates on startup.
type InventorySpec struct {
	Name     string
	Size     int
	Tags     []item.Tag
	Overflow string
}

// World owns every inventory and applies queued requests once per tick.
// Inventories are only touched from Tick.
type World struct {
	registry    *registry.Registry
	publisher   messaging.Publisher
	inventories map[string]*inventory.Inventory
	rejecting   map[string]bool
	pile        *inventory.Pile

	mu    sync.Mutex
	queue []Request
}

// NewWorld builds the configured inventories. When pub is non-nil every
// inventory publishes its slot events through it.
func NewWorld(reg *registry.Registry, pub messaging.Publisher, specs []InventorySpec) (*World, error) {
	w := &World{
		registry:    reg,
		publisher:   pub,
		inventories: make(map[string]*inventory.Inventory, len(specs)),
		rejecting:   make(map[string]bool),
		pile:        &inventory.Pile{},
	}

	for _, spec := range specs {
		if _, exists := w.inventories[spec.Name]; exists {
			return nil, fmt.Errorf("duplicate inventory %q", spec.Name)
		}

		opts := []inventory.Option{inventory.WithCloner(reg)}
		switch spec.Overflow {
		case OverflowDiscard:
			opts = append(opts, inventory.WithOverflow(inventory.Discard{}))
		case OverflowPile:
			opts = append(opts, inventory.WithOverflow(w.pile))
		case OverflowReject, "":
			w.rejecting[spec.Name] = true
		default:
			return nil, fmt.Errorf("inventory %q: unknown overflow policy %q", spec.Name, spec.Overflow)
		}

		inv := inventory.New(spec.Name, spec.Size, spec.Tags, opts...)
		if pub != nil {
			inv.SetSink(messaging.NewSlotPublisher(pub, inv))
		}
		w.inventories[spec.Name] = inv
	}

	return w, nil
}

// Inventory returns the named inventory or nil.
func (w *World) Inventory(name string) *inventory.Inventory {
	return w.inventories[name]
}

// Inventories returns the inventory names in sorted order.
func (w *World) Inventories() []string {
	names := make([]string, 0, len(w.inventories))
	for name := range w.inventories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pile returns the shared pile collecting overflow.
func (w *World) Pile() *inventory.Pile {
	return w.pile
}

// Listen subscribes to RequestSubject and queues every decoded request.
func (w *World) Listen(sub Subscriber) (func(), error) {
	return sub.Subscribe(RequestSubject, func(data []byte) {
		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			slog.Warn("discarding malformed request", "error", err)
			return
		}
		w.Enqueue(req)
	})
}

// Enqueue adds a request to be applied on the next tick. Safe for
// concurrent use.
func (w *World) Enqueue(req Request) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.queue = append(w.queue, req)
}

// Pending returns the number of queued requests.
func (w *World) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.queue)
}

// Tick applies every queued request in arrival order.
func (w *World) Tick(ctx context.Context) error {
	w.mu.Lock()
	queue := w.queue
	w.queue = nil
	w.mu.Unlock()

	for _, req := range queue {
		if err := ctx.Err(); err != nil {
			return err
		}

		res := w.Apply(req)
		if req.Reply == "" || w.publisher == nil {
			continue
		}

		data, err := json.Marshal(res)
		if err != nil {
			slog.Error("marshalling result", "request", req.Id, "error", err)
			continue
		}
		if err := w.publisher.Publish(req.Reply, data); err != nil {
			slog.Warn("publishing result", "reply", req.Reply, "error", err)
		}
	}

	return nil
}

// Apply runs a single request and reports its outcome.
func (w *World) Apply(req Request) Result {
	res := Result{Id: req.Id}

	listing, err := w.apply(req)
	if err != nil {
		slog.Debug("request failed", "op", req.Op, "inventory", req.Inventory, "error", err)
		res.Error = err.Error()
		return res
	}

	res.Ok = true
	res.Listing = listing
	return res
}

func (w *World) apply(req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	inv := w.inventories[req.Inventory]
	if inv == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownInventory, req.Inventory)
	}

	switch req.Op {
	case OpAdd:
		it, err := w.registry.Spawn(req.Item, req.Count)
		if err != nil {
			return "", err
		}
		// Without an overflow handler a partial merge would strand the rest.
		if w.rejecting[inv.Name()] {
			if !inv.TryAdd(it, indexOr(req.Index, inventory.AnySlot)) {
				return "", fmt.Errorf("%w: %s does not fit in %s", ErrOperationFailed, req.Item, inv.Name())
			}
			break
		}
		inv.Add(it, indexOr(req.Index, inventory.AnySlot))

	case OpTryAdd:
		it, err := w.registry.Spawn(req.Item, req.Count)
		if err != nil {
			return "", err
		}
		if !inv.TryAdd(it, indexOr(req.Index, inventory.AnySlot)) {
			return "", fmt.Errorf("%w: %s does not fit in %s", ErrOperationFailed, req.Item, inv.Name())
		}

	case OpPickup:
		it := w.pile.Take(req.Item)
		if it == nil {
			return "", fmt.Errorf("%w: no %s on the pile", ErrOperationFailed, req.Item)
		}
		if !inv.TryAdd(it, indexOr(req.Index, inventory.AnySlot)) {
			w.pile.Overflow(inv, it, it.Count())
			return "", fmt.Errorf("%w: %s does not fit in %s", ErrOperationFailed, req.Item, inv.Name())
		}

	case OpRemove:
		if !inv.Remove(*req.Index, countOr(req.Count, 1)) {
			return "", fmt.Errorf("%w: slot %d of %s is empty", ErrOperationFailed, *req.Index, inv.Name())
		}

	case OpDelete:
		if !inv.Delete(*req.Index) {
			return "", fmt.Errorf("%w: slot %d of %s is empty", ErrOperationFailed, *req.Index, inv.Name())
		}

	case OpMove:
		target := w.inventories[req.Target]
		if target == nil {
			return "", fmt.Errorf("%w: %q", ErrUnknownInventory, req.Target)
		}
		if !inv.Move(*req.Index, target, *req.TargetIndex) {
			return "", fmt.Errorf("%w: cannot move %s[%d] to %s[%d]", ErrOperationFailed, inv.Name(), *req.Index, target.Name(), *req.TargetIndex)
		}

	case OpClear:
		inv.Clear()

	case OpLook:
		return display.Inventory(inv)

	case OpExamine:
		it := inv.Get(*req.Index)
		if it == nil {
			return "", fmt.Errorf("%w: slot %d of %s is empty", ErrOperationFailed, *req.Index, inv.Name())
		}
		return display.Item(it), nil
	}

	return "", nil
}

// countOr treats an omitted count as def.
func countOr(count int, def int) int {
	if count == 0 {
		return def
	}
	return count
}

func indexOr(index *int, def int) int {
	if index == nil {
		return def
	}
	return *index
}

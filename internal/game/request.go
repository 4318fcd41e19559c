package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// RequestSubject is where clients send inventory requests.
const RequestSubject = "inventory.requests"

const (
	OpAdd     = "add"
	OpTryAdd  = "try_add"
	OpRemove  = "remove"
	OpDelete  = "delete"
	OpMove    = "move"
	OpClear   = "clear"
	OpLook    = "look"
	OpPickup  = "pickup"
	OpExamine = "examine"
)

// Request is a single inventory operation received from a client. A zero
// Count means one for add, try_add and remove.
type Request struct {
	Id          string `json:"id,omitempty"`
	Op          string `json:"op"`
	Inventory   string `json:"inventory"`
	Index       *int   `json:"index,omitempty"`
	Item        string `json:"item,omitempty"`
	Count       int    `json:"count,omitempty"`
	Target      string `json:"target,omitempty"`
	TargetIndex *int   `json:"target_index,omitempty"`
	Reply       string `json:"reply,omitempty"`
}

// Validate checks the fields each operation depends on.
func (r *Request) Validate() error {
	el := errors.NewErrorList()

	if r.Inventory == "" {
		el.Add(fmt.Errorf("inventory is required"))
	}

	switch r.Op {
	case OpAdd, OpTryAdd, OpPickup:
		if r.Item == "" {
			el.Add(fmt.Errorf("item is required for %s", r.Op))
		}
	case OpRemove, OpDelete, OpExamine:
		if r.Index == nil {
			el.Add(fmt.Errorf("%s: %w", r.Op, ErrMissingIndex))
		}
	case OpMove:
		if r.Index == nil || r.TargetIndex == nil {
			el.Add(fmt.Errorf("%s: %w", r.Op, ErrMissingIndex))
		}
		if r.Target == "" {
			el.Add(fmt.Errorf("target is required for move"))
		}
	case OpClear, OpLook:
	case "":
		el.Add(fmt.Errorf("op is required"))
	default:
		el.Add(fmt.Errorf("%w: %q", ErrUnknownOp, r.Op))
	}

	return el.Err()
}

// Result is published to a request's reply subject once it is applied.
type Result struct {
	Id      string `json:"id,omitempty"`
	Ok      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	Listing string `json:"listing,omitempty"`
}

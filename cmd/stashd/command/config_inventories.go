package command

import (
	"fmt"
	"regexp"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-stash/internal/game"
	"github.com/pixil98/go-stash/internal/item"
)

// Inventory names become part of NATS subjects.
var inventoryName = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

type InventoryConfig struct {
	Name     string     `json:"name"`
	Size     int        `json:"size"`
	Tags     []item.Tag `json:"tags"`
	Overflow string     `json:"overflow"`
}

func (c *InventoryConfig) validate() error {
	el := errors.NewErrorList()

	if !inventoryName.MatchString(c.Name) {
		el.Add(fmt.Errorf("name %q must be lowercase letters, digits, '-' or '_'", c.Name))
	}
	if c.Size <= 0 {
		el.Add(fmt.Errorf("size must be positive"))
	}
	if len(c.Tags) == 0 {
		el.Add(fmt.Errorf("at least one tag is required"))
	}
	switch c.Overflow {
	case "", game.OverflowDiscard, game.OverflowPile, game.OverflowReject:
	default:
		el.Add(fmt.Errorf("unknown overflow policy %q", c.Overflow))
	}

	return el.Err()
}

func (c *InventoryConfig) spec() game.InventorySpec {
	return game.InventorySpec{
		Name:     c.Name,
		Size:     c.Size,
		Tags:     c.Tags,
		Overflow: c.Overflow,
	}
}

package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval string            `json:"tick_interval"`
	Storage      StorageConfig     `json:"storage"`
	Nats         NatsConfig        `json:"nats"`
	Inventories  []InventoryConfig `json:"inventories"`
	Stream       StreamConfig      `json:"stream"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if _, err := c.tickInterval(); err != nil {
		el.Add(err)
	}

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Stream.validate())

	if len(c.Inventories) == 0 {
		el.Add(fmt.Errorf("at least one inventory is required"))
	}
	seen := make(map[string]bool, len(c.Inventories))
	for i, inv := range c.Inventories {
		if err := inv.validate(); err != nil {
			el.Add(fmt.Errorf("inventory %d: %w", i, err))
		}
		if seen[inv.Name] {
			el.Add(fmt.Errorf("inventory %d: duplicate name %q", i, inv.Name))
		}
		seen[inv.Name] = true
	}

	return el.Err()
}

func (c *Config) tickInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return 0, fmt.Errorf("parsing tick_interval: %w", err)
	}
	if d < 10*time.Millisecond {
		return 0, fmt.Errorf("tick_interval must be at least 10ms")
	}
	return d, nil
}

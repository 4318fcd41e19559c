package driver

import (
	"context"
	"fmt"
	"time"
)

const (
	DefaultTickLength = time.Millisecond * 100
)

// Manager is advanced once per tick. All inventory mutations happen inside
// Tick, so managers never run concurrently with each other.
type Manager interface {
	Tick(context.Context) error
}

type TickDriver struct {
	tickLength time.Duration
	managers   []Manager
	ticks      uint64
}

func NewTickDriver(managers []Manager, opts ...TickDriverOpt) *TickDriver {
	d := &TickDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *TickDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

func (d *TickDriver) Tick(ctx context.Context) error {
	d.ticks++
	for i, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return fmt.Errorf("tick %d: manager %d: %w", d.ticks, i, err)
		}
	}
	return nil
}

// Ticks returns how many ticks have run.
func (d *TickDriver) Ticks() uint64 {
	return d.ticks
}

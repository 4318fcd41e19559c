package game

import (
	"context"
	"log/slog"
)

// Broker is a Subscriber that becomes usable some time after startup.
type Broker interface {
	Subscriber
	Ready() <-chan struct{}
}

// RequestListener feeds requests from a broker into a World for as long as
// it runs.
type RequestListener struct {
	world  *World
	broker Broker
}

func NewRequestListener(world *World, broker Broker) *RequestListener {
	return &RequestListener{world: world, broker: broker}
}

func (l *RequestListener) Start(ctx context.Context) error {
	select {
	case <-l.broker.Ready():
	case <-ctx.Done():
		return nil
	}

	unsub, err := l.world.Listen(l.broker)
	if err != nil {
		return err
	}
	defer unsub()

	slog.InfoContext(ctx, "listening for inventory requests", "subject", RequestSubject, "inventories", l.world.Inventories())
	<-ctx.Done()
	return nil
}

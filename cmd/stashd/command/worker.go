package command

import (
	"fmt"

	"github.com/pixil98/go-service/service"
	"github.com/pixil98/go-stash/internal/driver"
	"github.com/pixil98/go-stash/internal/game"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	tick, err := cfg.tickInterval()
	if err != nil {
		return nil, err
	}

	reg, err := cfg.Storage.BuildRegistry()
	if err != nil {
		return nil, err
	}

	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	specs := make([]game.InventorySpec, len(cfg.Inventories))
	for i, inv := range cfg.Inventories {
		specs[i] = inv.spec()
	}
	world, err := game.NewWorld(reg, natsServer, specs)
	if err != nil {
		return nil, fmt.Errorf("creating world: %w", err)
	}

	workers := service.WorkerList{
		"nats":     natsServer,
		"requests": game.NewRequestListener(world, natsServer),
		"driver":   driver.NewTickDriver([]driver.Manager{world}, driver.WithTickLength(tick)),
	}
	if cfg.Stream.enabled() {
		srv, err := cfg.Stream.buildServer(natsServer)
		if err != nil {
			return nil, err
		}
		workers["stream"] = srv
	}

	return workers, nil
}

package driver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type countingManager struct {
	ticks int
	err   error
	order *[]string
	name  string
}

func (m *countingManager) Tick(context.Context) error {
	m.ticks++
	if m.order != nil {
		*m.order = append(*m.order, m.name)
	}
	return m.err
}

func TestTickDriver_Tick(t *testing.T) {
	var order []string
	a := &countingManager{name: "a", order: &order}
	b := &countingManager{name: "b", order: &order}
	d := NewTickDriver([]Manager{a, b})

	for i := 0; i < 3; i++ {
		if err := d.Tick(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	testutil.AssertEqual(t, "a ticks", a.ticks, 3)
	testutil.AssertEqual(t, "b ticks", b.ticks, 3)
	testutil.AssertEqual(t, "driver ticks", d.Ticks(), uint64(3))
	testutil.AssertEqual(t, "order", len(order), 6)
	testutil.AssertEqual(t, "first", order[0], "a")
	testutil.AssertEqual(t, "second", order[1], "b")
}

func TestTickDriver_TickError(t *testing.T) {
	a := &countingManager{err: errors.New("queue closed")}
	b := &countingManager{}
	d := NewTickDriver([]Manager{a, b})

	err := d.Tick(context.Background())

	testutil.AssertErrorContains(t, err, "manager 0: queue closed")
	testutil.AssertEqual(t, "b skipped", b.ticks, 0)
}

func TestTickDriver_Start(t *testing.T) {
	m := &countingManager{}
	d := NewTickDriver([]Manager{m}, WithTickLength(time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ticks == 0 {
		t.Error("expected at least one tick")
	}
}

func TestTickDriver_StartStopsOnError(t *testing.T) {
	m := &countingManager{err: errors.New("boom")}
	d := NewTickDriver([]Manager{m}, WithTickLength(time.Millisecond))

	err := d.Start(context.Background())

	testutil.AssertErrorContains(t, err, "boom")
	testutil.AssertEqual(t, "ticks", m.ticks, 1)
}

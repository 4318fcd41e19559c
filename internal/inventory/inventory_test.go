package inventory

import (
	"fmt"
	"testing"

	"github.com/pixil98/go-stash/internal/item"
	"github.com/pixil98/go-testutil"
)

var testDefs = map[string]*item.Definition{
	"food-apple":  {Name: "apple", StackLimit: 5, Tags: []item.Tag{"food"}},
	"food-bread":  {Name: "bread", StackLimit: 5, Tags: []item.Tag{"food"}},
	"food-salt":   {Name: "salt", Tags: []item.Tag{"food"}},
	"food-pie":    {Name: "pie", StackLimit: 1, Tags: []item.Tag{"food"}},
	"tool-hammer": {Name: "hammer", StackLimit: 1, Tags: []item.Tag{"tool"}},
}

var nextTestId int

func newItem(defId string, count int) *item.Item {
	nextTestId++
	return item.New(fmt.Sprintf("%s-%d", defId, nextTestId), defId, testDefs[defId], count)
}

// recordingSink records notifications as short strings.
type recordingSink struct {
	events []string
}

func (s *recordingSink) SlotChanged(index int) {
	s.events = append(s.events, fmt.Sprintf("changed:%d", index))
}

func (s *recordingSink) SlotsSwapped(a, b int) {
	s.events = append(s.events, fmt.Sprintf("swapped:%d:%d", a, b))
}

func (s *recordingSink) Cleared() {
	s.events = append(s.events, "cleared")
}

// recordingOverflow records what Add could not place.
type recordingOverflow struct {
	items   []*item.Item
	amounts []int
}

func (o *recordingOverflow) Overflow(_ *Inventory, it *item.Item, amount int) {
	o.items = append(o.items, it)
	o.amounts = append(o.amounts, amount)
}

func newTestInventory(name string, size int, tags ...item.Tag) (*Inventory, *recordingSink, *recordingOverflow) {
	sink := &recordingSink{}
	over := &recordingOverflow{}
	inv := New(name, size, tags, WithSink(sink), WithOverflow(over))
	return inv, sink, over
}

// fill places items into consecutive slots starting at 0; nil leaves a gap.
func fill(t *testing.T, inv *Inventory, items ...*item.Item) {
	t.Helper()
	for i, it := range items {
		if it == nil {
			continue
		}
		if !inv.TryAdd(it, i) {
			t.Fatalf("failed to place %s in slot %d", it.DefId(), i)
		}
	}
}

func checkInvariants(t *testing.T, inv *Inventory) {
	t.Helper()

	occupied := 0
	for i, it := range inv.Slots() {
		if it == nil {
			continue
		}
		occupied++
		if it.IsDepleted() {
			t.Errorf("slot %d holds a depleted item", i)
		}
		if !inv.IsValidItem(it) {
			t.Errorf("slot %d holds an item the inventory does not accept", i)
		}
	}
	testutil.AssertEqual(t, "empty slots", inv.EmptySlots(), inv.Size()-occupied)
}

// describe renders slots as "defId:count" with "-" for empty slots.
func describe(inv *Inventory) string {
	out := ""
	for i, it := range inv.Slots() {
		if i > 0 {
			out += " "
		}
		if it == nil {
			out += "-"
			continue
		}
		out += fmt.Sprintf("%s:%d", it.DefId(), it.Count())
	}
	return out
}

func TestInventory_New(t *testing.T) {
	inv, _, _ := newTestInventory("pantry", 3, "food")

	testutil.AssertEqual(t, "name", inv.Name(), "pantry")
	testutil.AssertEqual(t, "size", inv.Size(), 3)
	testutil.AssertEqual(t, "empty slots", inv.EmptySlots(), 3)
	testutil.AssertEqual(t, "is empty", inv.IsEmpty(), true)
	testutil.AssertEqual(t, "is full", inv.IsFull(), false)
	testutil.AssertEqual(t, "accepts food", inv.Tags().Has("food"), true)
}

func TestInventory_Queries(t *testing.T) {
	inv, _, _ := newTestInventory("pantry", 4, "food")
	apple := newItem("food-apple", 2)
	fullApple := newItem("food-apple", 5)
	fill(t, inv, fullApple, nil, apple)

	tests := map[string]struct {
		got any
		exp any
	}{
		"valid index low":         {got: inv.IsValidIndex(0), exp: true},
		"valid index high":        {got: inv.IsValidIndex(3), exp: true},
		"invalid index negative":  {got: inv.IsValidIndex(-1), exp: false},
		"invalid index past end":  {got: inv.IsValidIndex(4), exp: false},
		"valid item":              {got: inv.IsValidItem(newItem("food-bread", 1)), exp: true},
		"invalid item":            {got: inv.IsValidItem(newItem("tool-hammer", 1)), exp: false},
		"nil item invalid":        {got: inv.IsValidItem(nil), exp: false},
		"stackable skips full":    {got: inv.IndexOfStackable(newItem("food-apple", 1)), exp: 2},
		"no stackable other kind": {got: inv.ContainsStackable(newItem("food-bread", 1)), exp: false},
		"lowest empty slot":       {got: inv.IndexOfEmptySlot(), exp: 1},
		"index of reference":      {got: inv.IndexOf(apple), exp: 2},
		"index of other instance": {got: inv.IndexOf(newItem("food-apple", 2)), exp: NoSlot},
		"index of id":             {got: inv.IndexOfID(fullApple.ID()), exp: 0},
		"contains id":             {got: inv.ContainsID(apple.ID()), exp: true},
		"contains missing id":     {got: inv.ContainsID("nope"), exp: false},
		"get empty slot":          {got: inv.Get(1) == nil, exp: true},
		"get out of range":        {got: inv.Get(9) == nil, exp: true},
		"get occupied slot":       {got: inv.Get(2) == apple, exp: true},
		"owner set on add":        {got: apple.Owner(), exp: "pantry"},
		"contains reference":      {got: inv.Contains(apple), exp: true},
		"no stackable salt":       {got: inv.ContainsStackable(newItem("food-salt", 1)), exp: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, name, tt.got, tt.exp)
		})
	}
}

func TestInventory_Add(t *testing.T) {
	tests := map[string]struct {
		size      int
		initial   []*item.Item
		add       *item.Item
		index     int
		exp       string
		expEvents []string
		expOver   int
	}{
		"explicit empty slot": {
			size:      3,
			add:       newItem("food-apple", 1),
			index:     2,
			exp:       "- - food-apple:1",
			expEvents: []string{"changed:2"},
		},
		"explicit slot wins over stacking": {
			size:      3,
			initial:   []*item.Item{newItem("food-apple", 1)},
			add:       newItem("food-apple", 1),
			index:     2,
			exp:       "food-apple:1 - food-apple:1",
			expEvents: []string{"changed:2"},
		},
		"merges into existing stack": {
			size:      2,
			initial:   []*item.Item{newItem("food-apple", 1)},
			add:       newItem("food-apple", 1),
			index:     AnySlot,
			exp:       "food-apple:2 -",
			expEvents: []string{"changed:0"},
		},
		"different kind takes lowest empty slot": {
			size:      2,
			initial:   []*item.Item{newItem("food-apple", 1)},
			add:       newItem("food-bread", 1),
			index:     AnySlot,
			exp:       "food-apple:1 food-bread:1",
			expEvents: []string{"changed:1"},
		},
		"occupied explicit slot falls back to stacking": {
			size:      3,
			initial:   []*item.Item{newItem("food-bread", 1), newItem("food-apple", 2)},
			add:       newItem("food-apple", 2),
			index:     0,
			exp:       "food-bread:1 food-apple:4 -",
			expEvents: []string{"changed:1"},
		},
		"invalid explicit index uses lowest empty slot": {
			size:      3,
			initial:   []*item.Item{newItem("food-bread", 1)},
			add:       newItem("food-apple", 1),
			index:     7,
			exp:       "food-bread:1 food-apple:1 -",
			expEvents: []string{"changed:1"},
		},
		"partial merge remainder takes empty slot": {
			size:      3,
			initial:   []*item.Item{newItem("food-apple", 4)},
			add:       newItem("food-apple", 3),
			index:     AnySlot,
			exp:       "food-apple:5 food-apple:2 -",
			expEvents: []string{"changed:0", "changed:1"},
		},
		"partial merge remainder overflows when full": {
			size:      1,
			initial:   []*item.Item{newItem("food-apple", 4)},
			add:       newItem("food-apple", 3),
			index:     AnySlot,
			exp:       "food-apple:5",
			expEvents: []string{"changed:0"},
			expOver:   2,
		},
		"full inventory overflows": {
			size:    1,
			initial: []*item.Item{newItem("food-pie", 1)},
			add:     newItem("food-pie", 1),
			index:   AnySlot,
			exp:     "food-pie:1",
			expOver: 1,
		},
		"unbounded stack always absorbs": {
			size:      1,
			initial:   []*item.Item{newItem("food-salt", 900)},
			add:       newItem("food-salt", 200),
			index:     AnySlot,
			exp:       "food-salt:1100",
			expEvents: []string{"changed:0"},
		},
		"wrong type overflows": {
			size:    2,
			add:     newItem("tool-hammer", 1),
			index:   AnySlot,
			exp:     "- -",
			expOver: 1,
		},
		"nil is a no-op": {
			size:  2,
			index: AnySlot,
			exp:   "- -",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			inv, sink, over := newTestInventory("pantry", tt.size, "food")
			fill(t, inv, tt.initial...)
			sink.events = nil

			inv.Add(tt.add, tt.index)

			testutil.AssertEqual(t, "slots", describe(inv), tt.exp)
			testutil.AssertEqual(t, "events", fmt.Sprint(sink.events), fmt.Sprint(tt.expEvents))
			testutil.AssertEqual(t, "overflow calls", len(over.items), min(tt.expOver, 1))
			if tt.expOver > 0 {
				testutil.AssertEqual(t, "overflow item", over.items[0] == tt.add, true)
				testutil.AssertEqual(t, "overflow amount", over.amounts[0], tt.expOver)
			}
			checkInvariants(t, inv)
		})
	}
}

func TestInventory_Add_AbsorbedItemDestroyed(t *testing.T) {
	inv, _, _ := newTestInventory("pantry", 2, "food")
	fill(t, inv, newItem("food-apple", 1))

	extra := newItem("food-apple", 2)
	inv.Add(extra, AnySlot)

	testutil.AssertEqual(t, "destroyed", extra.Destroyed(), true)
	testutil.AssertEqual(t, "contains", inv.Contains(extra), false)
}

func TestInventory_Add_WithoutOverflowHandler(t *testing.T) {
	inv := New("pantry", 1, []item.Tag{"food"})
	fill(t, inv, newItem("food-pie", 1))

	extra := newItem("food-pie", 1)
	inv.Add(extra, AnySlot)

	testutil.AssertEqual(t, "destroyed", extra.Destroyed(), false)
	testutil.AssertEqual(t, "slots", describe(inv), "food-pie:1")
}

func TestInventory_TryAdd(t *testing.T) {
	tests := map[string]struct {
		size     int
		initial  []*item.Item
		add      *item.Item
		index    int
		expOk    bool
		exp      string
		expCount int
	}{
		"empty slot": {
			size:     2,
			add:      newItem("food-apple", 1),
			index:    AnySlot,
			expOk:    true,
			exp:      "food-apple:1 -",
			expCount: 1,
		},
		"fully absorbed into stack": {
			size:     1,
			initial:  []*item.Item{newItem("food-apple", 3)},
			add:      newItem("food-apple", 2),
			index:    AnySlot,
			expOk:    true,
			exp:      "food-apple:5",
			expCount: 0,
		},
		"full without stack fails": {
			size:     1,
			initial:  []*item.Item{newItem("food-pie", 1)},
			add:      newItem("food-pie", 1),
			index:    AnySlot,
			expOk:    false,
			exp:      "food-pie:1",
			expCount: 1,
		},
		"full with partial room fails untouched": {
			size:     1,
			initial:  []*item.Item{newItem("food-apple", 4)},
			add:      newItem("food-apple", 3),
			index:    AnySlot,
			expOk:    false,
			exp:      "food-apple:4",
			expCount: 3,
		},
		"wrong type fails": {
			size:     1,
			add:      newItem("tool-hammer", 1),
			index:    0,
			expOk:    false,
			exp:      "-",
			expCount: 1,
		},
		"nil fails": {
			size:  1,
			index: AnySlot,
			expOk: false,
			exp:   "-",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			inv, _, over := newTestInventory("pantry", tt.size, "food")
			fill(t, inv, tt.initial...)

			ok := inv.TryAdd(tt.add, tt.index)

			testutil.AssertEqual(t, "ok", ok, tt.expOk)
			testutil.AssertEqual(t, "slots", describe(inv), tt.exp)
			testutil.AssertEqual(t, "overflow calls", len(over.items), 0)
			if tt.add != nil {
				testutil.AssertEqual(t, "item count", tt.add.Count(), tt.expCount)
				if !ok {
					testutil.AssertEqual(t, "owner", tt.add.Owner(), "")
				}
			}
			checkInvariants(t, inv)
		})
	}
}

func TestInventory_Add_TwiceIsNoop(t *testing.T) {
	inv, sink, _ := newTestInventory("pantry", 2, "food")
	apple := newItem("food-apple", 1)
	fill(t, inv, apple)
	sink.events = nil

	inv.Add(apple, AnySlot)

	testutil.AssertEqual(t, "ok", inv.TryAdd(apple, 1), false)
	testutil.AssertEqual(t, "slots", describe(inv), "food-apple:1 -")
	testutil.AssertEqual(t, "events", len(sink.events), 0)
}

func TestInventory_Remove(t *testing.T) {
	tests := map[string]struct {
		index     int
		amount    int
		expOk     bool
		exp       string
		expEvents []string
	}{
		"partial": {
			index:     0,
			amount:    2,
			expOk:     true,
			exp:       "food-apple:3 -",
			expEvents: []string{"changed:0"},
		},
		"depletes and frees slot": {
			index:     0,
			amount:    5,
			expOk:     true,
			exp:       "- -",
			expEvents: []string{"changed:0"},
		},
		"more than count frees slot": {
			index:     0,
			amount:    50,
			expOk:     true,
			exp:       "- -",
			expEvents: []string{"changed:0"},
		},
		"negative amount removes nothing": {
			index:     0,
			amount:    -3,
			expOk:     true,
			exp:       "food-apple:5 -",
			expEvents: []string{"changed:0"},
		},
		"empty slot": {
			index:  1,
			amount: 1,
			expOk:  false,
			exp:    "food-apple:5 -",
		},
		"invalid index": {
			index:  4,
			amount: 1,
			expOk:  false,
			exp:    "food-apple:5 -",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			inv, sink, _ := newTestInventory("pantry", 2, "food")
			fill(t, inv, newItem("food-apple", 5))
			sink.events = nil

			ok := inv.Remove(tt.index, tt.amount)

			testutil.AssertEqual(t, "ok", ok, tt.expOk)
			testutil.AssertEqual(t, "slots", describe(inv), tt.exp)
			testutil.AssertEqual(t, "events", fmt.Sprint(sink.events), fmt.Sprint(tt.expEvents))
			checkInvariants(t, inv)
		})
	}
}

func TestInventory_Remove_EmptyInventory(t *testing.T) {
	inv, sink, _ := newTestInventory("pantry", 2, "food")

	testutil.AssertEqual(t, "ok", inv.Remove(0, 1), false)
	testutil.AssertEqual(t, "events", len(sink.events), 0)
}

func TestInventory_RemoveItem(t *testing.T) {
	inv, sink, _ := newTestInventory("pantry", 2, "food")
	apple := newItem("food-apple", 2)
	fill(t, inv, nil, apple)
	sink.events = nil

	lookalike := apple.Clone()
	testutil.AssertEqual(t, "lookalike", inv.RemoveItem(lookalike, 1), false)
	testutil.AssertEqual(t, "nil", inv.RemoveItem(nil, 1), false)

	testutil.AssertEqual(t, "first", inv.RemoveItem(apple, 1), true)
	testutil.AssertEqual(t, "after first", describe(inv), "- food-apple:1")

	testutil.AssertEqual(t, "second", inv.RemoveItem(apple, 1), true)
	testutil.AssertEqual(t, "after second", describe(inv), "- -")
	testutil.AssertEqual(t, "destroyed", apple.Destroyed(), true)
	testutil.AssertEqual(t, "events", fmt.Sprint(sink.events), "[changed:1 changed:1]")

	testutil.AssertEqual(t, "gone", inv.RemoveItem(apple, 1), false)
	checkInvariants(t, inv)
}

func TestInventory_Delete(t *testing.T) {
	inv, sink, _ := newTestInventory("pantry", 3, "food")
	apple := newItem("food-apple", 5)
	fill(t, inv, apple, newItem("food-bread", 1))
	sink.events = nil

	testutil.AssertEqual(t, "delete", inv.Delete(0), true)
	testutil.AssertEqual(t, "slots", describe(inv), "- food-bread:1 -")
	testutil.AssertEqual(t, "destroyed", apple.Destroyed(), true)

	// Deleting an empty slot changes nothing.
	testutil.AssertEqual(t, "again", inv.Delete(0), false)
	testutil.AssertEqual(t, "never filled", inv.Delete(2), false)
	testutil.AssertEqual(t, "out of range", inv.Delete(-1), false)
	testutil.AssertEqual(t, "slots unchanged", describe(inv), "- food-bread:1 -")
	testutil.AssertEqual(t, "events", fmt.Sprint(sink.events), "[changed:0]")
	checkInvariants(t, inv)
}

func TestInventory_Clear(t *testing.T) {
	inv, sink, _ := newTestInventory("pantry", 3, "food")
	apple := newItem("food-apple", 5)
	bread := newItem("food-bread", 1)
	fill(t, inv, apple, nil, bread)
	sink.events = nil

	inv.Clear()

	testutil.AssertEqual(t, "slots", describe(inv), "- - -")
	testutil.AssertEqual(t, "empty slots", inv.EmptySlots(), 3)
	testutil.AssertEqual(t, "apple destroyed", apple.Destroyed(), true)
	testutil.AssertEqual(t, "bread destroyed", bread.Destroyed(), true)
	testutil.AssertEqual(t, "events", fmt.Sprint(sink.events), "[cleared]")
}

func TestInventory_Teardown(t *testing.T) {
	inv, sink, over := newTestInventory("pantry", 1, "food")
	fill(t, inv, newItem("food-pie", 1))
	sink.events = nil

	inv.Teardown()
	testutil.AssertEqual(t, "events", fmt.Sprint(sink.events), "[cleared]")

	fill(t, inv, newItem("food-pie", 1))
	inv.Add(newItem("food-pie", 1), AnySlot)
	testutil.AssertEqual(t, "no events after teardown", len(sink.events), 1)
	testutil.AssertEqual(t, "no overflow after teardown", len(over.items), 0)
}

func TestInventory_Initialize(t *testing.T) {
	inv, _, _ := newTestInventory("pantry", 2, "food")
	apple := newItem("food-apple", 1)
	fill(t, inv, apple)

	inv.Initialize(4, []item.Tag{"tool"})

	testutil.AssertEqual(t, "size", inv.Size(), 4)
	testutil.AssertEqual(t, "empty", inv.EmptySlots(), 4)
	testutil.AssertEqual(t, "old item destroyed", apple.Destroyed(), true)
	testutil.AssertEqual(t, "accepts tools", inv.IsValidItem(newItem("tool-hammer", 1)), true)
	testutil.AssertEqual(t, "rejects food", inv.IsValidItem(newItem("food-apple", 1)), false)
}

func TestMultiSink(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	inv := New("pantry", 2, []item.Tag{"food"}, WithSink(MultiSink{a, b}))

	fill(t, inv, newItem("food-apple", 1), newItem("food-bread", 1))
	inv.Move(0, inv, 1)
	inv.Clear()

	exp := "[changed:0 changed:1 swapped:0:1 cleared]"
	testutil.AssertEqual(t, "a", fmt.Sprint(a.events), exp)
	testutil.AssertEqual(t, "b", fmt.Sprint(b.events), exp)
}

package item

// Item is one stack of a single kind occupying at most one inventory slot.
//
// Two notions of sameness apply: ID identifies the instance (preserved by
// Clone), while DefId identifies the kind and decides stacking.
type Item struct {
	id         string
	defId      string
	name       string
	desc       string
	stackLimit int
	tags       TagSet

	count     int
	owner     string
	destroyed bool
}

// New creates an item instance of the given definition. The count is set
// through SetCount so it is clamped to the definition's stack limit.
func New(id string, defId string, def *Definition, count int) *Item {
	limit := def.StackLimit
	if limit < 0 {
		limit = 0
	}
	it := &Item{
		id:         id,
		defId:      defId,
		name:       def.Name,
		desc:       def.Description,
		stackLimit: limit,
		tags:       NewTagSet(def.Tags...),
	}
	it.SetCount(count)
	return it
}

func (it *Item) ID() string          { return it.id }
func (it *Item) DefId() string       { return it.defId }
func (it *Item) Name() string        { return it.name }
func (it *Item) Description() string { return it.desc }
func (it *Item) StackLimit() int     { return it.stackLimit }
func (it *Item) Tags() TagSet        { return it.tags }
func (it *Item) Count() int          { return it.count }

// Owner returns the name of the inventory that last took the item.
func (it *Item) Owner() string { return it.owner }

// Destroyed reports whether an inventory discarded this instance.
func (it *Item) Destroyed() bool { return it.destroyed }

// SetCount sets the count, clamped to [0, StackLimit] or [0, inf) when the
// stack is unbounded.
func (it *Item) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	if it.stackLimit > 0 && n > it.stackLimit {
		n = it.stackLimit
	}
	it.count = n
}

// IsMaxStack reports whether the item cannot take any more count.
func (it *Item) IsMaxStack() bool {
	return it.stackLimit != 0 && it.count == it.stackLimit
}

// IsDepleted reports whether the count reached zero.
func (it *Item) IsDepleted() bool {
	return it.count == 0
}

// SameKind reports whether other was spawned from the same definition.
func (it *Item) SameKind(other *Item) bool {
	return other != nil && it.defId == other.defId
}

// AddCount merges as much of other into it as the stack limit allows. The
// remainder stays on other, which may drop to zero. Returns false without
// changing either item when the kinds differ or it is already full.
func (it *Item) AddCount(other *Item) bool {
	if other == nil || other == it || !it.SameKind(other) || it.IsMaxStack() {
		return false
	}

	if it.stackLimit == 0 {
		it.SetCount(it.count + other.count)
		other.SetCount(0)
		return true
	}

	room := it.stackLimit - it.count
	it.SetCount(it.count + other.count)
	other.SetCount(other.count - room)
	return true
}

// Clone returns a fresh instance with the same identity and kind. The count
// is at least one.
func (it *Item) Clone() *Item {
	c := &Item{
		id:         it.id,
		defId:      it.defId,
		name:       it.name,
		desc:       it.desc,
		stackLimit: it.stackLimit,
		tags:       it.tags,
	}
	c.SetCount(max(1, it.count))
	return c
}

// OnAdd records the inventory now holding the item.
func (it *Item) OnAdd(owner string) {
	it.owner = owner
}

// OnRemove clears the owner once the item leaves an inventory intact.
func (it *Item) OnRemove() {
	it.owner = ""
}

// Destroy marks the instance as discarded and zeroes its count.
func (it *Item) Destroy() {
	it.count = 0
	it.destroyed = true
}

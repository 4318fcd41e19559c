package item

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// Tag is a capability label attached to an item definition. Inventories
// accept items by tag rather than by inspecting concrete types.
type Tag string

// TagSet is an unordered set of tags.
type TagSet map[Tag]struct{}

// NewTagSet builds a set from the given tags. Tags are lowercased.
func NewTagSet(tags ...Tag) TagSet {
	ts := make(TagSet, len(tags))
	for _, t := range tags {
		ts[Tag(strings.ToLower(string(t)))] = struct{}{}
	}
	return ts
}

// Has reports whether t is in the set.
func (ts TagSet) Has(t Tag) bool {
	_, ok := ts[Tag(strings.ToLower(string(t)))]
	return ok
}

// Intersects reports whether any tag in other is also in ts.
func (ts TagSet) Intersects(other TagSet) bool {
	for t := range other {
		if _, ok := ts[t]; ok {
			return true
		}
	}
	return false
}

// Definition describes a kind of item loaded from asset files.
// Many instances can be spawned from one definition.
// Definition IDs follow the convention <category>-<name> (e.g., "food-apple").
type Definition struct {
	// Name is shown in listings (e.g., "apple")
	Name string `json:"name"`

	// Description is shown when the item is inspected
	Description string `json:"description"`

	// StackLimit is the largest count one slot can hold. 0 means unbounded.
	StackLimit int `json:"stack_limit"`

	// Tags decide which inventories accept the item
	Tags []Tag `json:"tags"`
}

// Validate satisfies storage.ValidatingSpec
func (d *Definition) Validate() error {
	el := errors.NewErrorList()
	if d.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	if d.StackLimit < 0 {
		el.Add(fmt.Errorf("stack_limit must not be negative"))
	}
	if len(d.Tags) < 1 {
		el.Add(fmt.Errorf("at least one tag is required"))
	}
	for i, t := range d.Tags {
		if t == "" {
			el.Add(fmt.Errorf("tag %d is empty", i))
		}
	}
	return el.Err()
}

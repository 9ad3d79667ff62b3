// Package cursor provides an ordered collection with several independently
// addressable cursors, each restricted to positions whose item satisfies that
// cursor's invariant, plus a capacity-limited selection set.
package cursor

import (
	"fmt"
	"slices"
)

// Invariant reports whether item v at index i is a legal position for a cursor.
// It sees the whole container, so it may refer to other cursors' positions.
type Invariant[T any] func(c *Cursor[T], i int, v T) bool

// Always is an invariant satisfied by every position.
func Always[T any](*Cursor[T], int, T) bool { return true }

// Cursor is an ordered mutable sequence with one cursor per invariant.
// A Cursor is not safe for concurrent use.
type Cursor[T any] struct {
	data       []T
	positions  []int
	invariants []Invariant[T]
	selected   []int // sorted indices
	limit      int   // 0 means unlimited
}

// New creates a container over data with one cursor per invariant.
// Cursors start at index 0 and are canonicalized immediately.
func New[T any](data []T, invariants []Invariant[T]) *Cursor[T] {
	if len(invariants) == 0 {
		panic("cursor: New precondition violated: at least one invariant required")
	}
	c := &Cursor[T]{
		data:       slices.Clone(data),
		positions:  make([]int, len(invariants)),
		invariants: slices.Clone(invariants),
	}
	c.canonicalize()
	return c
}

// Len returns the number of items.
func (c *Cursor[T]) Len() int { return len(c.data) }

// Cursors returns the number of cursors.
func (c *Cursor[T]) Cursors() int { return len(c.positions) }

// At returns the item at index i.
func (c *Cursor[T]) At(i int) T { return c.data[i] }

// Items returns a copy of the sequence.
func (c *Cursor[T]) Items() []T { return slices.Clone(c.data) }

// Index returns the position of cursor id.
func (c *Cursor[T]) Index(id int) int {
	c.checkID(id)
	return c.positions[id]
}

// Read returns the position of cursor id and the item it references.
func (c *Cursor[T]) Read(id int) (int, T) {
	c.checkID(id)
	c.checkNonEmpty("Read")
	i := c.positions[id]
	return i, c.data[i]
}

// Legal reports whether index i satisfies the invariant of cursor id.
func (c *Cursor[T]) Legal(id, i int) bool {
	c.checkID(id)
	if i < 0 || i >= len(c.data) {
		return false
	}
	return c.invariants[id](c, i, c.data[i])
}

// Advance moves cursor id to the nearest later index that satisfies its
// invariant. It is a no-op when there is none.
func (c *Cursor[T]) Advance(id int) {
	c.checkID(id)
	c.checkNonEmpty("Advance")
	for i := c.positions[id] + 1; i < len(c.data); i++ {
		if c.invariants[id](c, i, c.data[i]) {
			c.moveTo(id, i)
			return
		}
	}
}

// Retreat moves cursor id to the nearest earlier index that satisfies its
// invariant. It is a no-op when there is none.
func (c *Cursor[T]) Retreat(id int) {
	c.checkID(id)
	c.checkNonEmpty("Retreat")
	for i := c.positions[id] - 1; i >= 0; i-- {
		if c.invariants[id](c, i, c.data[i]) {
			c.moveTo(id, i)
			return
		}
	}
}

// moveTo places cursor id at i and repairs any other cursor whose invariant
// the move broke, such as a cursor that must not share a position with id.
func (c *Cursor[T]) moveTo(id, i int) {
	c.positions[id] = i
	c.canonicalize()
}

// ReplaceData swaps the whole sequence, clears the selection and
// canonicalizes the cursors.
func (c *Cursor[T]) ReplaceData(data []T) {
	c.data = slices.Clone(data)
	c.selected = c.selected[:0]
	c.canonicalize()
}

// ReplaceInvariants swaps the invariant set and canonicalizes the cursors.
// The number of invariants must match the number of cursors.
func (c *Cursor[T]) ReplaceInvariants(invariants []Invariant[T]) {
	if len(invariants) != len(c.positions) {
		panic(fmt.Sprintf("cursor: ReplaceInvariants precondition violated: got %d invariants for %d cursors",
			len(invariants), len(c.positions)))
	}
	c.invariants = slices.Clone(invariants)
	c.canonicalize()
}

// MutateValue overwrites the item at index i in place. A new value may break
// the invariant of a cursor resting on it, so cursors are canonicalized.
func (c *Cursor[T]) MutateValue(i int, v T) {
	c.checkIndex("MutateValue", i)
	c.data[i] = v
	c.canonicalize()
}

// RemoveAt removes and returns the item at index i. Cursor positions are kept
// as raw indices, so they now reference the following item, and are then
// canonicalized. Selected indices after i shift down by one.
func (c *Cursor[T]) RemoveAt(i int) T {
	c.checkIndex("RemoveAt", i)
	v := c.data[i]
	c.data = slices.Delete(c.data, i, i+1)

	kept := c.selected[:0]
	for _, s := range c.selected {
		switch {
		case s < i:
			kept = append(kept, s)
		case s > i:
			kept = append(kept, s-1)
		}
	}
	c.selected = kept

	c.canonicalize()
	return v
}

// RetainWhere keeps only the items for which keep returns true and returns
// the removed items in order. The selection follows surviving items.
func (c *Cursor[T]) RetainWhere(keep func(i int, v T) bool) []T {
	var removed []T
	remap := make([]int, len(c.data))
	out := make([]T, 0, len(c.data))
	for i, v := range c.data {
		if keep(i, v) {
			remap[i] = len(out)
			out = append(out, v)
		} else {
			remap[i] = -1
			removed = append(removed, v)
		}
	}
	if len(removed) == 0 {
		return nil
	}

	kept := c.selected[:0]
	for _, s := range c.selected {
		if remap[s] >= 0 {
			kept = append(kept, remap[s])
		}
	}
	c.selected = kept
	c.data = out

	c.canonicalize()
	return removed
}

// Append adds v at the end and canonicalizes, since a cursor that had no
// legal position may gain one.
func (c *Cursor[T]) Append(v T) {
	c.data = append(c.data, v)
	c.canonicalize()
}

// ToggleSelect flips selection membership of the index cursor id references.
// Insertion is refused once the selection is at its limit; removal always
// succeeds. Returns whether the selection changed.
func (c *Cursor[T]) ToggleSelect(id int) bool {
	c.checkID(id)
	c.checkNonEmpty("ToggleSelect")
	i := c.positions[id]
	pos, found := slices.BinarySearch(c.selected, i)
	if found {
		c.selected = slices.Delete(c.selected, pos, pos+1)
		return true
	}
	if c.limit > 0 && len(c.selected) >= c.limit {
		return false
	}
	c.selected = slices.Insert(c.selected, pos, i)
	return true
}

// SetSelectionLimit caps the selection size; 0 means unlimited. An existing
// selection larger than the new cap is left as is but cannot grow.
func (c *Cursor[T]) SetSelectionLimit(n int) {
	if n < 0 {
		panic(fmt.Sprintf("cursor: SetSelectionLimit precondition violated: negative limit %d", n))
	}
	c.limit = n
}

// SelectionLimit returns the selection cap; 0 means unlimited.
func (c *Cursor[T]) SelectionLimit() int { return c.limit }

// ClearSelection empties the selection.
func (c *Cursor[T]) ClearSelection() { c.selected = c.selected[:0] }

// Selected returns the selected indices in ascending order.
func (c *Cursor[T]) Selected() []int { return slices.Clone(c.selected) }

// SelectionLen returns the number of selected indices.
func (c *Cursor[T]) SelectionLen() int { return len(c.selected) }

// IsSelected reports whether index i is selected.
func (c *Cursor[T]) IsSelected(i int) bool {
	_, found := slices.BinarySearch(c.selected, i)
	return found
}

// Count returns how many items satisfy pred.
func (c *Cursor[T]) Count(pred func(v T) bool) int {
	n := 0
	for _, v := range c.data {
		if pred(v) {
			n++
		}
	}
	return n
}

// Any reports whether some item satisfies pred.
func (c *Cursor[T]) Any(pred func(v T) bool) bool {
	return slices.ContainsFunc(c.data, pred)
}

// canonicalize relocates every cursor that is out of bounds or on an item
// failing its invariant. Cursors are repaired in id order.
func (c *Cursor[T]) canonicalize() {
	n := len(c.data)
	for id := range c.positions {
		if n == 0 {
			c.positions[id] = 0
			continue
		}
		inv := c.invariants[id]
		if c.positions[id] >= n {
			c.positions[id] = n - 1
			if i, ok := c.scanBackward(inv, n-1); ok {
				c.positions[id] = i
			}
			continue
		}
		if inv(c, c.positions[id], c.data[c.positions[id]]) {
			continue
		}
		if i, ok := c.scanForward(inv, 0); ok {
			c.positions[id] = i
		} else if i, ok := c.scanBackward(inv, n-1); ok {
			c.positions[id] = i
		}
	}
}

func (c *Cursor[T]) scanForward(inv Invariant[T], from int) (int, bool) {
	for i := from; i < len(c.data); i++ {
		if inv(c, i, c.data[i]) {
			return i, true
		}
	}
	return 0, false
}

func (c *Cursor[T]) scanBackward(inv Invariant[T], from int) (int, bool) {
	for i := from; i >= 0; i-- {
		if inv(c, i, c.data[i]) {
			return i, true
		}
	}
	return 0, false
}

func (c *Cursor[T]) checkID(id int) {
	if id < 0 || id >= len(c.positions) {
		panic(fmt.Sprintf("cursor: cursor id %d out of range [0, %d)", id, len(c.positions)))
	}
}

func (c *Cursor[T]) checkNonEmpty(op string) {
	if len(c.data) == 0 {
		panic("cursor: " + op + " precondition violated: container is empty")
	}
}

func (c *Cursor[T]) checkIndex(op string, i int) {
	if i < 0 || i >= len(c.data) {
		panic(fmt.Sprintf("cursor: %s precondition violated: index %d out of range [0, %d)", op, i, len(c.data)))
	}
}

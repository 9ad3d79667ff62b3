package cursor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	primary = 0
	second  = 1
)

func even(_ *Cursor[int], _ int, v int) bool { return v%2 == 0 }

func notPrimary(c *Cursor[int], i int, _ int) bool { return i != c.Index(primary) }

func TestNewCanonicalizes(t *testing.T) {
	c := New([]int{1, 3, 4, 5, 6}, []Invariant[int]{even})

	i, v := c.Read(primary)
	assert.Equal(t, 2, i)
	assert.Equal(t, 4, v)
}

func TestNewFallsBackWhenNothingLegal(t *testing.T) {
	c := New([]int{1, 3}, []Invariant[int]{even})
	assert.Equal(t, 0, c.Index(primary), "cursor stays put when no legal index exists")
}

func TestNewRequiresInvariant(t *testing.T) {
	assert.Panics(t, func() { New[int](nil, nil) })
}

func TestAdvanceRetreatSkipIllegal(t *testing.T) {
	c := New([]int{2, 1, 3, 4, 5, 8}, []Invariant[int]{even})
	require.Equal(t, 0, c.Index(primary))

	c.Advance(primary)
	assert.Equal(t, 3, c.Index(primary))
	c.Advance(primary)
	assert.Equal(t, 5, c.Index(primary))

	c.Advance(primary)
	assert.Equal(t, 5, c.Index(primary), "advance at the legal boundary is a no-op")

	c.Retreat(primary)
	assert.Equal(t, 3, c.Index(primary))
	c.Retreat(primary)
	assert.Equal(t, 0, c.Index(primary))
	c.Retreat(primary)
	assert.Equal(t, 0, c.Index(primary), "retreat at the legal boundary is a no-op")
}

func TestCrossCursorExclusion(t *testing.T) {
	c := New([]int{10, 20, 30}, []Invariant[int]{Always[int], notPrimary})
	require.Equal(t, 0, c.Index(primary))
	require.Equal(t, 1, c.Index(second))

	// Moving the primary cursor onto the second one relocates the second.
	c.Advance(primary)
	assert.Equal(t, 1, c.Index(primary))
	assert.NotEqual(t, c.Index(primary), c.Index(second))

	// The second cursor skips over the primary one.
	require.Equal(t, 0, c.Index(second))
	c.Advance(second)
	c.Advance(second)
	assert.Equal(t, 2, c.Index(second))
	c.Retreat(second)
	assert.NotEqual(t, c.Index(primary), c.Index(second))
}

func TestRemoveAtRepairsCursors(t *testing.T) {
	c := New([]int{2, 4, 6}, []Invariant[int]{even})
	c.Advance(primary)
	c.Advance(primary)
	require.Equal(t, 2, c.Index(primary))

	got := c.RemoveAt(2)
	assert.Equal(t, 6, got)
	assert.Equal(t, 1, c.Index(primary), "out of bounds cursor scans back from the new end")
	assert.Equal(t, []int{2, 4}, c.Items())
}

func TestRemoveAtKeepsRawIndex(t *testing.T) {
	c := New([]int{2, 4, 6, 8}, []Invariant[int]{even})
	c.Advance(primary)
	require.Equal(t, 1, c.Index(primary))

	c.RemoveAt(1)
	i, v := c.Read(primary)
	assert.Equal(t, 1, i)
	assert.Equal(t, 6, v, "cursor now references the following item")
}

func TestRemoveOutOfBoundsDefaultsToLast(t *testing.T) {
	c := New([]int{2, 1, 4}, []Invariant[int]{Always[int]})
	c.Advance(primary)
	c.Advance(primary)
	c.ReplaceInvariants([]Invariant[int]{func(_ *Cursor[int], _ int, v int) bool { return v > 100 }})
	c.RemoveAt(2)
	assert.Equal(t, 1, c.Index(primary))
}

func TestRetainWhere(t *testing.T) {
	c := New([]int{1, 2, 1, 3, 1}, []Invariant[int]{Always[int]})
	c.Advance(primary)
	c.Advance(primary)
	c.Advance(primary)
	c.ToggleSelect(primary) // index 3
	require.Equal(t, []int{3}, c.Selected())

	removed := c.RetainWhere(func(_ int, v int) bool { return v != 1 })
	assert.Equal(t, []int{1, 1, 1}, removed)
	assert.Equal(t, []int{2, 3}, c.Items())
	assert.Equal(t, []int{1}, c.Selected(), "selection follows the surviving item")
	assert.Equal(t, 1, c.Index(primary))
}

func TestRetainWhereNothingRemoved(t *testing.T) {
	c := New([]int{1, 2}, []Invariant[int]{Always[int]})
	assert.Nil(t, c.RetainWhere(func(int, int) bool { return true }))
	assert.Equal(t, 2, c.Len())
}

func TestRemoveToEmpty(t *testing.T) {
	c := New([]int{7}, []Invariant[int]{Always[int]})
	c.RemoveAt(0)
	assert.Equal(t, 0, c.Len())
	assert.Panics(t, func() { c.Advance(primary) })
	assert.Panics(t, func() { c.Read(primary) })
	assert.Panics(t, func() { c.ToggleSelect(primary) })

	c.Append(9)
	_, v := c.Read(primary)
	assert.Equal(t, 9, v)
}

func TestMutateValueCanonicalizes(t *testing.T) {
	c := New([]int{1, 2, 4}, []Invariant[int]{even})
	require.Equal(t, 1, c.Index(primary))

	c.MutateValue(1, 3)
	assert.Equal(t, 2, c.Index(primary))
}

func TestReplaceInvariants(t *testing.T) {
	c := New([]int{1, 2, 3}, []Invariant[int]{Always[int]})
	require.Equal(t, 0, c.Index(primary))

	c.ReplaceInvariants([]Invariant[int]{even})
	assert.Equal(t, 1, c.Index(primary))

	assert.Panics(t, func() {
		c.ReplaceInvariants([]Invariant[int]{even, even})
	})
}

func TestReplaceDataClearsSelection(t *testing.T) {
	c := New([]int{1, 2, 3}, []Invariant[int]{Always[int]})
	c.ToggleSelect(primary)
	c.ReplaceData([]int{4, 5})
	assert.Zero(t, c.SelectionLen())
	assert.Equal(t, 0, c.Index(primary))
}

func TestToggleSelectLimit(t *testing.T) {
	c := New([]int{1, 2, 3, 4}, []Invariant[int]{Always[int]})
	c.SetSelectionLimit(2)

	assert.True(t, c.ToggleSelect(primary))
	c.Advance(primary)
	assert.True(t, c.ToggleSelect(primary))
	c.Advance(primary)
	assert.False(t, c.ToggleSelect(primary), "insertion refused at capacity")
	assert.Equal(t, []int{0, 1}, c.Selected())

	c.Retreat(primary)
	assert.True(t, c.ToggleSelect(primary), "removal always allowed")
	assert.Equal(t, []int{0}, c.Selected())

	c.ClearSelection()
	assert.Zero(t, c.SelectionLen())
	assert.Panics(t, func() { c.SetSelectionLimit(-1) })
}

func TestUnlimitedSelection(t *testing.T) {
	c := New([]int{1, 2, 3, 4}, []Invariant[int]{Always[int]})
	for i := 0; i < 4; i++ {
		require.True(t, c.ToggleSelect(primary))
		c.Advance(primary)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, c.Selected())
	assert.True(t, c.IsSelected(2))
}

func TestCursorIDOutOfRangePanics(t *testing.T) {
	c := New([]int{1}, []Invariant[int]{Always[int]})
	assert.Panics(t, func() { c.Advance(1) })
	assert.Panics(t, func() { c.Index(-1) })
}

func TestCountAndAny(t *testing.T) {
	c := New([]int{1, 2, 4}, []Invariant[int]{Always[int]})
	assert.Equal(t, 2, c.Count(func(v int) bool { return v%2 == 0 }))
	assert.True(t, c.Any(func(v int) bool { return v == 4 }))
	assert.False(t, c.Any(func(v int) bool { return v == 5 }))
}

// TestCanonicalizationProperty checks on random sequences that every cursor
// rests on a legal index after any structural change whenever one exists.
func TestCanonicalizationProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	invs := []Invariant[int]{even, notPrimary}

	legalExists := func(c *Cursor[int], id int) bool {
		for i := 0; i < c.Len(); i++ {
			if c.Legal(id, i) {
				return true
			}
		}
		return false
	}
	check := func(c *Cursor[int]) {
		for id := 0; id < c.Cursors(); id++ {
			if c.Len() > 0 && legalExists(c, id) {
				require.True(t, c.Legal(id, c.Index(id)), "cursor %d on illegal index %d of %v", id, c.Index(id), c.Items())
			}
		}
	}

	for round := 0; round < 200; round++ {
		data := make([]int, 1+rng.Intn(8))
		for i := range data {
			data[i] = rng.Intn(10)
		}
		c := New(data, invs)
		check(c)

		for step := 0; step < 10 && c.Len() > 0; step++ {
			switch rng.Intn(5) {
			case 0:
				c.RemoveAt(rng.Intn(c.Len()))
			case 1:
				c.MutateValue(rng.Intn(c.Len()), rng.Intn(10))
			case 2:
				c.Advance(rng.Intn(2))
			case 3:
				c.Retreat(rng.Intn(2))
			case 4:
				c.RetainWhere(func(_ int, v int) bool { return v != rng.Intn(10) })
			}
			check(c)
			if c.Len() > 0 {
				for id := 0; id < c.Cursors(); id++ {
					require.Less(t, c.Index(id), c.Len())
				}
			}
		}
	}
}

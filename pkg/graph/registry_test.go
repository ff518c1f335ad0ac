package graph

import (
	"testing"

	"github.com/google/uuid"
	"github.com/itohio/traceview/pkg/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AssignAndLookup(t *testing.T) {
	r := NewRegistry()
	a := uuid.New()
	b := uuid.New()

	assert.Equal(t, 0, r.Assign(a))
	assert.Equal(t, 1, r.Assign(b))
	assert.Equal(t, 2, r.Len())

	slot, ok := r.SlotFor(a)
	require.True(t, ok)
	assert.Equal(t, 0, slot)

	id, ok := r.IDFor(1)
	require.True(t, ok)
	assert.Equal(t, b, id)
}

func TestRegistry_AssignIdempotent(t *testing.T) {
	r := NewRegistry()
	a := uuid.New()

	first := r.Assign(a)
	second := r.Assign(a)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_ReleaseCompacts(t *testing.T) {
	r := NewRegistry()
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()
	r.Assign(a)
	r.Assign(b)
	r.Assign(c)

	slot, ok := r.Release(b)
	require.True(t, ok)
	assert.Equal(t, 1, slot)
	assert.Equal(t, 2, r.Len())

	// c shifted down into b's slot
	slot, ok = r.SlotFor(c)
	require.True(t, ok)
	assert.Equal(t, 1, slot)

	slot, ok = r.SlotFor(a)
	require.True(t, ok)
	assert.Equal(t, 0, slot)
}

func TestRegistry_ReleaseUnknownIsNoOp(t *testing.T) {
	r := NewRegistry()
	a := uuid.New()
	r.Assign(a)

	_, ok := r.Release(uuid.New())
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_LookupMisses(t *testing.T) {
	r := NewRegistry()

	_, ok := r.SlotFor(uuid.New())
	assert.False(t, ok)

	_, ok = r.IDFor(0)
	assert.False(t, ok)

	_, ok = r.IDFor(-1)
	assert.False(t, ok)
}

func TestRegistry_SlotsStayContiguous(t *testing.T) {
	// Arbitrary interleavings of assign/release must keep slots 0..n-1 with
	// no duplicate identities.
	r := NewRegistry()
	ids := make([]dataset.ID, 8)
	for i := range ids {
		ids[i] = uuid.New()
	}

	ops := []struct {
		release bool
		idx     int
	}{
		{false, 0}, {false, 1}, {false, 2},
		{true, 1},
		{false, 3}, {false, 4},
		{true, 0}, {true, 4},
		{false, 5},
		{false, 1}, // re-add a released id
		{true, 7},  // release never-assigned id
		{false, 6}, {false, 7},
	}

	present := map[dataset.ID]bool{}
	for _, op := range ops {
		id := ids[op.idx]
		if op.release {
			r.Release(id)
			delete(present, id)
		} else {
			r.Assign(id)
			present[id] = true
		}

		// Contiguity and uniqueness after every operation.
		require.Equal(t, len(present), r.Len())
		seen := map[dataset.ID]bool{}
		for slot := 0; slot < r.Len(); slot++ {
			id, ok := r.IDFor(slot)
			require.True(t, ok, "gap at slot %d", slot)
			require.False(t, seen[id], "duplicate id at slot %d", slot)
			require.True(t, present[id])
			seen[id] = true

			back, ok := r.SlotFor(id)
			require.True(t, ok)
			require.Equal(t, slot, back)
		}
	}
}

func TestRegistry_IDsReturnsCopy(t *testing.T) {
	r := NewRegistry()
	a := uuid.New()
	r.Assign(a)

	ids := r.IDs()
	require.Len(t, ids, 1)
	ids[0] = uuid.New()

	got, ok := r.IDFor(0)
	require.True(t, ok)
	assert.Equal(t, a, got)
}

package graph

import "github.com/itohio/traceview/pkg/dataset"

// Registry owns the ordered correspondence between dataset identity and the
// positional slot a line occupies in the draw order. Slot numbering is always
// contiguous starting at 0; releasing a slot compacts the remaining ones.
//
// Registry is not safe for concurrent use; the graph widget serializes access.
type Registry struct {
	table []dataset.ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{table: make([]dataset.ID, 0)}
}

// SlotFor returns the slot occupied by id.
func (r *Registry) SlotFor(id dataset.ID) (int, bool) {
	for slot, got := range r.table {
		if got == id {
			return slot, true
		}
	}
	return 0, false
}

// IDFor returns the identity occupying slot.
func (r *Registry) IDFor(slot int) (dataset.ID, bool) {
	if slot < 0 || slot >= len(r.table) {
		return dataset.ID{}, false
	}
	return r.table[slot], true
}

// Assign appends id to the table and returns its slot. If id is already
// present the existing slot is returned, so repeated assignment is safe.
func (r *Registry) Assign(id dataset.ID) int {
	if slot, ok := r.SlotFor(id); ok {
		return slot
	}
	r.table = append(r.table, id)
	return len(r.table) - 1
}

// Release removes id from the table, shifting all subsequent slots down by
// one. Returns the slot that was freed. Releasing an unknown id is a no-op.
func (r *Registry) Release(id dataset.ID) (int, bool) {
	slot, ok := r.SlotFor(id)
	if !ok {
		return 0, false
	}
	r.table = append(r.table[:slot], r.table[slot+1:]...)
	return slot, true
}

// Len returns the number of occupied slots.
func (r *Registry) Len() int {
	return len(r.table)
}

// IDs returns a copy of the lookup table in slot order.
func (r *Registry) IDs() []dataset.ID {
	out := make([]dataset.ID, len(r.table))
	copy(out, r.table)
	return out
}

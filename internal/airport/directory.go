// Package airport assigns dense integer indices to airport names. The indices
// double as vertex numbers in the route graph, so an index, once handed out,
// never changes and never gets reused.
package airport

import (
	"fmt"

	"github.com/dharmasatrya/flightreservation/internal/models"
)

const DefaultCapacity = 50

type slot struct {
	name  string
	index int
	used  bool
}

// Directory is an open-addressing hash table with linear probing. It is
// append-only: there is no delete, matching the graph's fixed vertex space.
type Directory struct {
	slots []slot
	names []string
}

func New(capacity int) *Directory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Directory{
		slots: make([]slot, capacity),
		names: make([]string, 0, capacity),
	}
}

func (d *Directory) hash(name string) int {
	n := uint32(len(d.slots))
	var h uint32
	for i := 0; i < len(name); i++ {
		h = (h*31 + uint32(name[i])) % n
	}
	return int(h)
}

// probe returns the slot holding name, or the first empty slot on its probe
// sequence. ok is false when the sequence wraps to the start without finding
// either.
func (d *Directory) probe(name string) (pos int, ok bool) {
	start := d.hash(name)
	pos = start
	for d.slots[pos].used && d.slots[pos].name != name {
		pos = (pos + 1) % len(d.slots)
		if pos == start {
			return 0, false
		}
	}
	return pos, true
}

// IndexFor returns the index for name, allocating the next unused one on first
// sight. Repeated calls with a known name never grow the directory.
func (d *Directory) IndexFor(name string) (int, error) {
	if name == "" {
		return -1, fmt.Errorf("airport name is empty: %w", models.ErrInvalidInput)
	}
	pos, ok := d.probe(name)
	if !ok {
		return -1, fmt.Errorf("airport directory full (%d airports): %w", len(d.slots), models.ErrCapacityExceeded)
	}
	s := &d.slots[pos]
	if !s.used {
		s.name = name
		s.index = len(d.names)
		s.used = true
		d.names = append(d.names, name)
	}
	return s.index, nil
}

// Lookup reports the index of a known airport without allocating.
func (d *Directory) Lookup(name string) (int, bool) {
	if name == "" {
		return -1, false
	}
	pos, ok := d.probe(name)
	if !ok || !d.slots[pos].used {
		return -1, false
	}
	return d.slots[pos].index, true
}

func (d *Directory) NameFor(index int) (string, error) {
	if index < 0 || index >= len(d.names) {
		return "", fmt.Errorf("airport index %d: %w", index, models.ErrNotFound)
	}
	return d.names[index], nil
}

func (d *Directory) Len() int {
	return len(d.names)
}

func (d *Directory) Capacity() int {
	return len(d.slots)
}

// Remaining is the number of names that can still be allocated.
func (d *Directory) Remaining() int {
	return len(d.slots) - len(d.names)
}

// Names returns all airports in index order.
func (d *Directory) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

package inventory

import (
	"fmt"
	"sort"

	"github.com/dharmasatrya/flightreservation/internal/models"
)

type node struct {
	flight      *Flight
	left, right *node
}

// Index is an unbalanced binary search tree keyed by flight ID. Depth is
// O(n) in the worst case; flight tables here are small.
type Index struct {
	root *node
	size int
}

func NewIndex() *Index {
	return &Index{}
}

func (x *Index) Len() int {
	return x.size
}

func (x *Index) Insert(f *Flight) error {
	link := &x.root
	for *link != nil {
		switch n := *link; {
		case f.ID < n.flight.ID:
			link = &n.left
		case f.ID > n.flight.ID:
			link = &n.right
		default:
			return fmt.Errorf("flight %s already exists: %w", f.ID, models.ErrDuplicateKey)
		}
	}
	*link = &node{flight: f}
	x.size++
	return nil
}

func (x *Index) Find(id string) (*Flight, bool) {
	n := x.root
	for n != nil {
		switch {
		case id < n.flight.ID:
			n = n.left
		case id > n.flight.ID:
			n = n.right
		default:
			return n.flight, true
		}
	}
	return nil, false
}

// Delete removes the flight and releases its waitlist and passenger records.
func (x *Index) Delete(id string) error {
	var removed *Flight
	x.root, removed = removeNode(x.root, id)
	if removed == nil {
		return fmt.Errorf("flight %s: %w", id, models.ErrNotFound)
	}
	removed.release()
	x.size--
	return nil
}

// removeNode deletes id from the subtree rooted at n and returns the new
// subtree root along with the flight that was removed. A node with two
// children takes over its in-order successor's record, and the successor's
// node is then removed from the right subtree.
func removeNode(n *node, id string) (*node, *Flight) {
	if n == nil {
		return nil, nil
	}
	var removed *Flight
	switch {
	case id < n.flight.ID:
		n.left, removed = removeNode(n.left, id)
		return n, removed
	case id > n.flight.ID:
		n.right, removed = removeNode(n.right, id)
		return n, removed
	}

	removed = n.flight
	if n.left == nil {
		return n.right, removed
	}
	if n.right == nil {
		return n.left, removed
	}
	successor := minNode(n.right)
	n.flight = successor.flight
	n.right, _ = removeNode(n.right, successor.flight.ID)
	return n, removed
}

func minNode(n *node) *node {
	for n.left != nil {
		n = n.left
	}
	return n
}

// Walk visits flights in ascending ID order until fn returns false.
func (x *Index) Walk(fn func(*Flight) bool) {
	walk(x.root, fn)
}

func walk(n *node, fn func(*Flight) bool) bool {
	if n == nil {
		return true
	}
	if !walk(n.left, fn) {
		return false
	}
	if !fn(n.flight) {
		return false
	}
	return walk(n.right, fn)
}

func (x *Index) InOrder() []*Flight {
	out := make([]*Flight, 0, x.size)
	x.Walk(func(f *Flight) bool {
		out = append(out, f)
		return true
	})
	return out
}

// ByRoute returns flights matching origin and destination in ID order. An
// empty origin or destination matches any airport.
func (x *Index) ByRoute(origin, destination string) []*Flight {
	var out []*Flight
	x.Walk(func(f *Flight) bool {
		if (origin == "" || f.Origin == origin) && (destination == "" || f.Destination == destination) {
			out = append(out, f)
		}
		return true
	})
	return out
}

// SortByPrice returns a new slice ordered by ascending price. Equal prices keep
// their input order.
func SortByPrice(flights []*Flight) []*Flight {
	out := make([]*Flight, len(flights))
	copy(out, flights)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Price < out[j].Price
	})
	return out
}

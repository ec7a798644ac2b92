// Package waitlist implements the per-flight bounded priority queue of
// passengers waiting for a seat.
package waitlist

import (
	"fmt"
	"sort"

	"github.com/dharmasatrya/flightreservation/internal/models"
)

const DefaultCapacity = 100

// ErrEmpty is returned by Pop on an empty queue.
var ErrEmpty = fmt.Errorf("waitlist empty: %w", models.ErrNotFound)

type Entry struct {
	Name        string
	PassengerID int
	Priority    int
	seq         uint64
}

// outranks reports whether a must leave the queue before b: higher priority
// first, and among equal priorities the earlier arrival.
func outranks(a, b Entry) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.seq < b.seq
}

// Queue is a fixed-capacity binary max-heap. It is not safe for concurrent use.
type Queue struct {
	items    []Entry
	capacity int
	nextSeq  uint64
}

func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{
		items:    make([]Entry, 0, capacity),
		capacity: capacity,
	}
}

func (q *Queue) Len() int {
	return len(q.items)
}

func (q *Queue) Cap() int {
	return q.capacity
}

func (q *Queue) Empty() bool {
	return len(q.items) == 0
}

func (q *Queue) Push(name string, passengerID, priority int) error {
	if len(q.items) >= q.capacity {
		return fmt.Errorf("waitlist full (%d entries): %w", q.capacity, models.ErrCapacityExceeded)
	}
	if q.Contains(passengerID) {
		return fmt.Errorf("passenger %d already waitlisted: %w", passengerID, models.ErrDuplicateKey)
	}
	q.nextSeq++
	q.items = append(q.items, Entry{
		Name:        name,
		PassengerID: passengerID,
		Priority:    priority,
		seq:         q.nextSeq,
	})
	q.siftUp(len(q.items) - 1)
	return nil
}

func (q *Queue) Pop() (Entry, error) {
	if len(q.items) == 0 {
		return Entry{}, ErrEmpty
	}
	top := q.items[0]
	last := len(q.items) - 1
	q.items[0] = q.items[last]
	q.items = q.items[:last]
	if len(q.items) > 0 {
		q.siftDown(0)
	}
	return top, nil
}

func (q *Queue) Peek() (Entry, bool) {
	if len(q.items) == 0 {
		return Entry{}, false
	}
	return q.items[0], true
}

func (q *Queue) Contains(passengerID int) bool {
	return q.find(passengerID) >= 0
}

func (q *Queue) Get(passengerID int) (Entry, bool) {
	i := q.find(passengerID)
	if i < 0 {
		return Entry{}, false
	}
	return q.items[i], true
}

// Remove takes a passenger out of the queue. The hole is filled with the last
// entry, which may belong above or below that position.
func (q *Queue) Remove(passengerID int) (Entry, error) {
	i := q.find(passengerID)
	if i < 0 {
		return Entry{}, fmt.Errorf("passenger %d not waitlisted: %w", passengerID, models.ErrNotFound)
	}
	removed := q.items[i]
	last := len(q.items) - 1
	if i != last {
		q.items[i] = q.items[last]
	}
	q.items = q.items[:last]
	if i < len(q.items) {
		q.fix(i)
	}
	return removed, nil
}

// ModifyPriority changes a waiting passenger's priority in place. Arrival
// order is kept, so the passenger competes with its original sequence number.
func (q *Queue) ModifyPriority(passengerID, priority int) error {
	i := q.find(passengerID)
	if i < 0 {
		return fmt.Errorf("passenger %d not waitlisted: %w", passengerID, models.ErrNotFound)
	}
	q.items[i].Priority = priority
	q.fix(i)
	return nil
}

// Entries returns a copy of the heap array.
func (q *Queue) Entries() []Entry {
	out := make([]Entry, len(q.items))
	copy(out, q.items)
	return out
}

// Ordered returns the entries in the order Pop would return them.
func (q *Queue) Ordered() []Entry {
	out := q.Entries()
	sort.Slice(out, func(i, j int) bool {
		return outranks(out[i], out[j])
	})
	return out
}

// Clear drops every entry. Sequence numbers keep counting.
func (q *Queue) Clear() {
	q.items = q.items[:0]
}

func (q *Queue) find(passengerID int) int {
	for i := range q.items {
		if q.items[i].PassengerID == passengerID {
			return i
		}
	}
	return -1
}

func (q *Queue) fix(i int) {
	q.siftUp(i)
	q.siftDown(i)
}

func (q *Queue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !outranks(q.items[i], q.items[parent]) {
			break
		}
		q.items[i], q.items[parent] = q.items[parent], q.items[i]
		i = parent
	}
}

func (q *Queue) siftDown(i int) {
	n := len(q.items)
	for {
		best := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && outranks(q.items[left], q.items[best]) {
			best = left
		}
		if right < n && outranks(q.items[right], q.items[best]) {
			best = right
		}
		if best == i {
			break
		}
		q.items[i], q.items[best] = q.items[best], q.items[i]
		i = best
	}
}

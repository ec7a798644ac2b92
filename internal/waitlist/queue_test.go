package waitlist

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/flightreservation/internal/models"
)

func assertHeap(t *testing.T, q *Queue) {
	t.Helper()
	for i := 1; i < len(q.items); i++ {
		parent := (i - 1) / 2
		require.False(t, outranks(q.items[i], q.items[parent]),
			"heap order violated at %d (parent %d)", i, parent)
	}
}

func drain(t *testing.T, q *Queue) []int {
	t.Helper()
	var ids []int
	for !q.Empty() {
		e, err := q.Pop()
		require.NoError(t, err)
		ids = append(ids, e.PassengerID)
	}
	return ids
}

func TestQueue_PopOrdersByPriorityThenArrival(t *testing.T) {
	q := New(10)
	require.NoError(t, q.Push("low-first", 1, 1))
	require.NoError(t, q.Push("high-first", 2, 3))
	require.NoError(t, q.Push("mid", 3, 2))
	require.NoError(t, q.Push("high-second", 4, 3))
	require.NoError(t, q.Push("low-second", 5, 1))
	assertHeap(t, q)

	assert.Equal(t, []int{2, 4, 3, 1, 5}, drain(t, q))
}

func TestQueue_EqualPriorityIsFirstComeFirstServed(t *testing.T) {
	q := New(DefaultCapacity)
	for id := 1; id <= 20; id++ {
		require.NoError(t, q.Push(fmt.Sprintf("p%d", id), id, 2))
	}

	want := make([]int, 20)
	for i := range want {
		want[i] = i + 1
	}
	assert.Equal(t, want, drain(t, q))
}

func TestQueue_PushBeyondCapacity(t *testing.T) {
	q := New(2)
	require.NoError(t, q.Push("a", 1, 1))
	require.NoError(t, q.Push("b", 2, 2))
	before := q.Entries()

	err := q.Push("c", 3, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrCapacityExceeded)
	assert.Equal(t, before, q.Entries())
	assert.Equal(t, 2, q.Len())
	assert.False(t, q.Contains(3))
}

func TestQueue_DuplicatePassenger(t *testing.T) {
	q := New(5)
	require.NoError(t, q.Push("a", 7, 1))

	err := q.Push("a again", 7, 3)
	assert.ErrorIs(t, err, models.ErrDuplicateKey)
	assert.Equal(t, 1, q.Len())
}

func TestQueue_PopEmpty(t *testing.T) {
	q := New(5)
	_, err := q.Pop()
	assert.ErrorIs(t, err, ErrEmpty)
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, ok := q.Peek()
	assert.False(t, ok)
}

func TestQueue_Remove(t *testing.T) {
	tests := []struct {
		name     string
		removeID int
		want     []int
		wantErr  bool
	}{
		{name: "root", removeID: 2, want: []int{4, 3, 1, 5}},
		{name: "leaf", removeID: 5, want: []int{2, 4, 3, 1}},
		{name: "middle", removeID: 3, want: []int{2, 4, 1, 5}},
		{name: "absent", removeID: 99, want: []int{2, 4, 3, 1, 5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := New(10)
			require.NoError(t, q.Push("a", 1, 1))
			require.NoError(t, q.Push("b", 2, 3))
			require.NoError(t, q.Push("c", 3, 2))
			require.NoError(t, q.Push("d", 4, 3))
			require.NoError(t, q.Push("e", 5, 1))

			removed, err := q.Remove(tt.removeID)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrNotFound)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.removeID, removed.PassengerID)
			}
			assertHeap(t, q)
			assert.Equal(t, tt.want, drain(t, q))
		})
	}
}

func TestQueue_ModifyPriority(t *testing.T) {
	q := New(10)
	require.NoError(t, q.Push("a", 1, 1))
	require.NoError(t, q.Push("b", 2, 2))
	require.NoError(t, q.Push("c", 3, 3))

	require.NoError(t, q.ModifyPriority(1, 3))
	assertHeap(t, q)
	// Passenger 1 arrived before 3, so at equal priority it goes first.
	top, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, 1, top.PassengerID)

	require.NoError(t, q.ModifyPriority(1, 1))
	assertHeap(t, q)
	assert.Equal(t, []int{3, 2, 1}, drain(t, q))

	assert.ErrorIs(t, q.ModifyPriority(42, 2), models.ErrNotFound)
}

func TestQueue_OrderedMatchesPopOrder(t *testing.T) {
	q := New(20)
	priorities := []int{2, 1, 3, 3, 2, 1, 2, 3}
	for i, p := range priorities {
		require.NoError(t, q.Push("p", i+1, p))
	}

	var ordered []int
	for _, e := range q.Ordered() {
		ordered = append(ordered, e.PassengerID)
	}
	assert.Equal(t, len(priorities), q.Len())
	assert.Equal(t, drain(t, q), ordered)
}

func TestQueue_RandomOperationsKeepHeapOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	q := New(64)
	nextID := 1

	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(4); {
		case op <= 1:
			err := q.Push("p", nextID, 1+rng.Intn(3))
			if q.Len() == q.Cap() && err != nil {
				assert.ErrorIs(t, err, models.ErrCapacityExceeded)
			}
			nextID++
		case op == 2 && !q.Empty():
			top, _ := q.Peek()
			popped, err := q.Pop()
			require.NoError(t, err)
			assert.Equal(t, top, popped)
			for _, rest := range q.items {
				assert.GreaterOrEqual(t, popped.Priority, rest.Priority)
				if rest.Priority == popped.Priority {
					assert.Less(t, popped.seq, rest.seq)
				}
			}
		case op == 3 && !q.Empty():
			victim := q.items[rng.Intn(q.Len())].PassengerID
			if rng.Intn(2) == 0 {
				_, err := q.Remove(victim)
				require.NoError(t, err)
			} else {
				require.NoError(t, q.ModifyPriority(victim, 1+rng.Intn(3)))
			}
		}
		assertHeap(t, q)
		require.LessOrEqual(t, q.Len(), q.Cap())
	}
}

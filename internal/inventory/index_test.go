package inventory

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/flightreservation/internal/models"
)

func testFlight(id string, price float64) *Flight {
	return NewFlight(id, "GA", "CGK", "DPS", "08:00", "10:50", price, 3, 5)
}

func ids(flights []*Flight) []string {
	out := make([]string, len(flights))
	for i, f := range flights {
		out[i] = f.ID
	}
	return out
}

func TestIndex_InsertFindAndOrder(t *testing.T) {
	x := NewIndex()
	for _, id := range []string{"F5", "F2", "F8", "F1", "F3", "F9", "F7"} {
		require.NoError(t, x.Insert(testFlight(id, 100)))
	}

	assert.Equal(t, 7, x.Len())
	assert.Equal(t, []string{"F1", "F2", "F3", "F5", "F7", "F8", "F9"}, ids(x.InOrder()))

	f, ok := x.Find("F3")
	require.True(t, ok)
	assert.Equal(t, "F3", f.ID)

	_, ok = x.Find("F4")
	assert.False(t, ok)
}

func TestIndex_InsertDuplicate(t *testing.T) {
	x := NewIndex()
	require.NoError(t, x.Insert(testFlight("F1", 100)))

	err := x.Insert(testFlight("F1", 999))
	assert.ErrorIs(t, err, models.ErrDuplicateKey)
	assert.Equal(t, 1, x.Len())

	f, _ := x.Find("F1")
	assert.Equal(t, 100.0, f.Price)
}

func TestIndex_Delete(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want []string
	}{
		{name: "leaf", id: "F1", want: []string{"F2", "F5", "F7", "F8", "F9"}},
		{name: "one child", id: "F2", want: []string{"F1", "F5", "F7", "F8", "F9"}},
		{name: "two children", id: "F8", want: []string{"F1", "F2", "F5", "F7", "F9"}},
		{name: "root with two children", id: "F5", want: []string{"F1", "F2", "F7", "F8", "F9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := NewIndex()
			// F5 at the root, F2 with a single left child, F8 with two.
			for _, id := range []string{"F5", "F2", "F8", "F1", "F7", "F9"} {
				require.NoError(t, x.Insert(testFlight(id, 100)))
			}

			require.NoError(t, x.Delete(tt.id))
			assert.Equal(t, tt.want, ids(x.InOrder()))
			_, ok := x.Find(tt.id)
			assert.False(t, ok)
			assert.Equal(t, len(tt.want), x.Len())
		})
	}
}

func TestIndex_DeleteMissing(t *testing.T) {
	x := NewIndex()
	require.NoError(t, x.Insert(testFlight("F1", 100)))
	assert.ErrorIs(t, x.Delete("F2"), models.ErrNotFound)
	assert.Equal(t, 1, x.Len())
}

func TestIndex_DeleteReleasesOwnedRecords(t *testing.T) {
	x := NewIndex()
	f := testFlight("F1", 100)
	require.NoError(t, x.Insert(f))
	require.NoError(t, f.Seat("alice", 1))
	require.NoError(t, f.Waitlist().Push("bob", 2, 1))

	require.NoError(t, x.Delete("F1"))
	assert.Nil(t, f.Waitlist())
	assert.Empty(t, f.Passengers())
	assert.Equal(t, 0, f.Booked())
}

func TestIndex_DeleteTwoChildrenKeepsSuccessorState(t *testing.T) {
	x := NewIndex()
	for _, id := range []string{"F5", "F2", "F8", "F7", "F9"} {
		require.NoError(t, x.Insert(testFlight(id, 100)))
	}
	succ, _ := x.Find("F7")
	require.NoError(t, succ.Seat("carol", 3))
	require.NoError(t, succ.Waitlist().Push("dave", 4, 2))

	require.NoError(t, x.Delete("F5"))

	moved, ok := x.Find("F7")
	require.True(t, ok)
	assert.Equal(t, 1, moved.Booked())
	assert.True(t, moved.HasPassenger(3))
	assert.True(t, moved.Waitlist().Contains(4))
}

func TestIndex_RandomInsertDeleteStaysSorted(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	x := NewIndex()
	live := map[string]bool{}

	for step := 0; step < 1500; step++ {
		id := fmt.Sprintf("F%03d", rng.Intn(120))
		if rng.Intn(3) == 0 {
			err := x.Delete(id)
			if live[id] {
				require.NoError(t, err)
				delete(live, id)
			} else {
				require.ErrorIs(t, err, models.ErrNotFound)
			}
		} else {
			err := x.Insert(testFlight(id, 1))
			if live[id] {
				require.ErrorIs(t, err, models.ErrDuplicateKey)
			} else {
				require.NoError(t, err)
				live[id] = true
			}
		}

		got := ids(x.InOrder())
		require.True(t, sort.StringsAreSorted(got))
		require.Len(t, got, len(live))
		require.Equal(t, len(live), x.Len())
	}

	for i := 0; i < 120; i++ {
		id := fmt.Sprintf("F%03d", i)
		_, ok := x.Find(id)
		assert.Equal(t, live[id], ok, id)
	}
}

func TestIndex_ByRoute(t *testing.T) {
	x := NewIndex()
	flights := []*Flight{
		NewFlight("F1", "AA", "NYC", "LAX", "", "", 300, 1, 1),
		NewFlight("F2", "AA", "NYC", "SFO", "", "", 250, 1, 1),
		NewFlight("F3", "UA", "LAX", "NYC", "", "", 280, 1, 1),
		NewFlight("F4", "UA", "NYC", "LAX", "", "", 150, 1, 1),
	}
	for _, f := range flights {
		require.NoError(t, x.Insert(f))
	}

	tests := []struct {
		name        string
		origin      string
		destination string
		want        []string
	}{
		{name: "both", origin: "NYC", destination: "LAX", want: []string{"F1", "F4"}},
		{name: "origin only", origin: "NYC", want: []string{"F1", "F2", "F4"}},
		{name: "destination only", destination: "NYC", want: []string{"F3"}},
		{name: "wildcard", want: []string{"F1", "F2", "F3", "F4"}},
		{name: "no match", origin: "SFO", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := x.ByRoute(tt.origin, tt.destination)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSortByPrice(t *testing.T) {
	in := []*Flight{testFlight("A", 300), testFlight("B", 100), testFlight("C", 200), testFlight("D", 100)}
	out := SortByPrice(in)

	assert.Equal(t, []string{"B", "D", "C", "A"}, ids(out))
	assert.Equal(t, []string{"A", "B", "C", "D"}, ids(in))
}

func TestFlight_SeatAndUnseat(t *testing.T) {
	f := NewFlight("F1", "AA", "NYC", "LAX", "", "", 100, 2, 5)
	require.NoError(t, f.Seat("alice", 1))
	require.NoError(t, f.Seat("bob", 2))
	assert.True(t, f.IsFull())
	assert.ErrorIs(t, f.Seat("carol", 3), models.ErrCapacityExceeded)
	assert.Equal(t, 2, f.Booked())

	assert.False(t, f.Unseat("alice", 2), "name and id must both match")
	assert.True(t, f.Unseat("alice", 1))
	assert.Equal(t, 1, f.Booked())
	assert.Equal(t, []Passenger{{Name: "bob", ID: 2}}, f.Passengers())
}

func TestFlight_RestoredCounts(t *testing.T) {
	f := NewFlight("F1", "AA", "NYC", "LAX", "", "", 100, 3, 5)
	require.NoError(t, f.SetBooked(2))
	require.NoError(t, f.AttachPassenger("alice", 1))
	assert.Equal(t, 2, f.Booked())
	assert.Len(t, f.Passengers(), 1)

	require.NoError(t, f.AttachPassenger("bob", 2))
	require.NoError(t, f.AttachPassenger("carol", 3))
	assert.Equal(t, 3, f.Booked())
	assert.ErrorIs(t, f.AttachPassenger("dave", 4), models.ErrCapacityExceeded)

	assert.ErrorIs(t, f.SetBooked(4), models.ErrInvalidInput)
}

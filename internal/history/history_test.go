package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRecorder_AppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "passenger_history.txt")
	r, err := NewFileRecorder(path)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, r.Record(ctx, Event{Action: ActionBooked, FlightID: "F1", PassengerName: "Alice", PassengerID: 1}))
	require.NoError(t, r.Record(ctx, Event{Action: ActionBookedFromWaitlist, FlightID: "F1", PassengerName: "Bob", PassengerID: 2}))
	require.NoError(t, r.Close())

	// Reopening appends rather than truncates.
	r, err = NewFileRecorder(path)
	require.NoError(t, err)
	require.NoError(t, r.Record(ctx, Event{Action: ActionRoundTripReturn, FlightID: "F9", PassengerName: "Alice"}))
	require.NoError(t, r.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Booked FlightID:F1 Passenger:Alice\n"+
			"Booked from Waitlist FlightID:F1 Passenger:Bob\n"+
			"Round-trip Return FlightID:F9 Passenger:Alice\n",
		string(data))
}

type recorderFunc func(Event) error

func (f recorderFunc) Record(_ context.Context, e Event) error { return f(e) }
func (f recorderFunc) Close() error { return nil }

func TestMulti_FansOutAndJoinsErrors(t *testing.T) {
	var seen []Action
	ok := recorderFunc(func(e Event) error {
		seen = append(seen, e.Action)
		return nil
	})
	boom := errors.New("boom")
	failing := recorderFunc(func(Event) error { return boom })

	m := Multi{ok, failing, ok}
	err := m.Record(context.Background(), Event{Action: ActionCancelled})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []Action{ActionCancelled, ActionCancelled}, seen)
	assert.NoError(t, m.Close())
}

func TestNoOp(t *testing.T) {
	var r Recorder = NoOp{}
	assert.NoError(t, r.Record(context.Background(), Event{}))
	assert.NoError(t, r.Close())
}

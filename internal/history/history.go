// Package history records passenger-facing booking events. Recording is a
// side effect: callers log failures and carry on.
package history

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Action string

const (
	ActionBooked              Action = "Booked"
	ActionWaitlisted          Action = "Waitlisted"
	ActionCancelled           Action = "Cancelled"
	ActionBookedFromWaitlist  Action = "Booked from Waitlist"
	ActionRemovedFromWaitlist Action = "Removed from Waitlist"
	ActionRoundTripOutbound   Action = "Round-trip Outbound"
	ActionRoundTripReturn     Action = "Round-trip Return"
)

type Event struct {
	Action        Action    `json:"action"`
	FlightID      string    `json:"flight_id"`
	PassengerName string    `json:"passenger_name"`
	PassengerID   int       `json:"passenger_id"`
	Priority      int       `json:"priority,omitempty"`
	At            time.Time `json:"at"`
}

type Recorder interface {
	Record(ctx context.Context, event Event) error
	Close() error
}

// FileRecorder appends one line per event:
//
//	Booked FlightID:F1 Passenger:Alice
type FileRecorder struct {
	mu   sync.Mutex
	file *os.File
}

func NewFileRecorder(path string) (*FileRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening history file: %w", err)
	}
	return &FileRecorder{file: f}, nil
}

func FormatLine(event Event) string {
	return fmt.Sprintf("%s FlightID:%s Passenger:%s", event.Action, event.FlightID, event.PassengerName)
}

func (r *FileRecorder) Record(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := fmt.Fprintln(r.file, FormatLine(event)); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

func (r *FileRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file.Close()
}

// Multi fans each event out to every recorder and joins their errors.
type Multi []Recorder

func (m Multi) Record(ctx context.Context, event Event) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, r := range m {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type NoOp struct{}

func (NoOp) Record(context.Context, Event) error { return nil }

func (NoOp) Close() error { return nil }

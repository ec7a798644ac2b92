package reservation

import (
	"fmt"

	"github.com/dharmasatrya/flightreservation/internal/models"
)

// RestoreFlight re-creates a flight from an exported record, including the
// booked count it carried.
func (e *Engine) RestoreFlight(spec FlightSpec, booked int) error {
	if booked < 0 || booked > spec.Capacity {
		return fmt.Errorf("flight %s booked %d of %d: %w", spec.ID, booked, spec.Capacity, models.ErrInvalidInput)
	}
	f, err := e.addFlight(spec)
	if err != nil {
		return err
	}
	return f.SetBooked(booked)
}

// RestorePassenger names a booked seat. Seats beyond the flight's recorded
// count are booked afresh while capacity allows.
func (e *Engine) RestorePassenger(flightID, name string, passengerID int) error {
	if err := validatePassenger(name); err != nil {
		return err
	}
	f, err := e.flight(flightID)
	if err != nil {
		return err
	}
	if f.HasPassenger(passengerID) {
		return fmt.Errorf("passenger %d already booked on %s: %w", passengerID, flightID, models.ErrDuplicateKey)
	}
	return f.AttachPassenger(name, passengerID)
}

func (e *Engine) RestoreWaitlistEntry(flightID, name string, passengerID, priority int) error {
	if err := validatePassenger(name); err != nil {
		return err
	}
	if err := models.ValidatePriority(priority); err != nil {
		return err
	}
	f, err := e.flight(flightID)
	if err != nil {
		return err
	}
	if f.HasPassenger(passengerID) {
		return fmt.Errorf("passenger %d already booked on %s: %w", passengerID, flightID, models.ErrDuplicateKey)
	}
	return f.Waitlist().Push(name, passengerID, priority)
}

// PromoteWaitlisted seats waitlisted passengers on every flight that has free
// seats, restoring the rule that a free seat and a waiting passenger never
// coexist. It returns how many passengers were seated.
func (e *Engine) PromoteWaitlisted() int {
	promoted := 0
	for _, f := range e.flights.InOrder() {
		for !f.IsFull() && !f.Waitlist().Empty() {
			next, err := f.Waitlist().Pop()
			if err != nil {
				break
			}
			if err := f.Seat(next.Name, next.PassengerID); err != nil {
				break
			}
			promoted++
		}
	}
	return promoted
}

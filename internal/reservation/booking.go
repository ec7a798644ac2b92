package reservation

import (
	"errors"
	"fmt"

	"github.com/dharmasatrya/flightreservation/internal/inventory"
	"github.com/dharmasatrya/flightreservation/internal/models"
	"github.com/dharmasatrya/flightreservation/internal/waitlist"
)

type BookingStatus string

const (
	StatusConfirmed  BookingStatus = "confirmed"
	StatusWaitlisted BookingStatus = "waitlisted"
)

type BookingOutcome struct {
	FlightID  string
	Status    BookingStatus
	Passenger inventory.Passenger
	Priority  int
}

type CancelStatus string

const (
	StatusCancelled             CancelStatus = "cancelled"
	StatusCancelledFromWaitlist CancelStatus = "cancelled_from_waitlist"
)

type CancelOutcome struct {
	FlightID  string
	Status    CancelStatus
	Passenger inventory.Passenger
	// Promoted is the waitlisted passenger seated into the freed seat, if any.
	Promoted *waitlist.Entry
}

func validatePassenger(name string) error {
	if name == "" {
		return fmt.Errorf("passenger name is required: %w", models.ErrInvalidInput)
	}
	return checkToken("passenger name", name)
}

// BookSeat confirms a seat when one is free and otherwise puts the passenger on
// the flight's waitlist.
func (e *Engine) BookSeat(flightID, name string, passengerID, priority int) (BookingOutcome, error) {
	if err := validatePassenger(name); err != nil {
		return BookingOutcome{}, err
	}
	if err := models.ValidatePriority(priority); err != nil {
		return BookingOutcome{}, err
	}
	f, err := e.flight(flightID)
	if err != nil {
		return BookingOutcome{}, err
	}
	return book(f, name, passengerID, priority)
}

func book(f *inventory.Flight, name string, passengerID, priority int) (BookingOutcome, error) {
	outcome := BookingOutcome{
		FlightID:  f.ID,
		Passenger: inventory.Passenger{Name: name, ID: passengerID},
		Priority:  priority,
	}
	if f.HasPassenger(passengerID) || f.Waitlist().Contains(passengerID) {
		return BookingOutcome{}, fmt.Errorf("passenger %d already holds a booking on %s: %w", passengerID, f.ID, models.ErrDuplicateKey)
	}

	if !f.IsFull() {
		if err := f.Seat(name, passengerID); err != nil {
			return BookingOutcome{}, err
		}
		outcome.Status = StatusConfirmed
		return outcome, nil
	}

	if err := f.Waitlist().Push(name, passengerID, priority); err != nil {
		return BookingOutcome{}, fmt.Errorf("flight %s: %w", f.ID, err)
	}
	outcome.Status = StatusWaitlisted
	return outcome, nil
}

// CancelSeat frees a booked seat or, failing that, withdraws the passenger
// from the waitlist. A freed seat is handed straight to the top waitlisted
// passenger, so it never stays empty while anyone is waiting.
func (e *Engine) CancelSeat(flightID, name string, passengerID int) (CancelOutcome, error) {
	f, err := e.flight(flightID)
	if err != nil {
		return CancelOutcome{}, err
	}
	outcome := CancelOutcome{
		FlightID:  f.ID,
		Passenger: inventory.Passenger{Name: name, ID: passengerID},
	}

	if f.Unseat(name, passengerID) {
		outcome.Status = StatusCancelled
		next, err := f.Waitlist().Pop()
		switch {
		case errors.Is(err, waitlist.ErrEmpty):
		case err != nil:
			return CancelOutcome{}, err
		default:
			if err := f.Seat(next.Name, next.PassengerID); err != nil {
				return CancelOutcome{}, err
			}
			outcome.Promoted = &next
		}
		return outcome, nil
	}

	if _, err := f.Waitlist().Remove(passengerID); err != nil {
		return CancelOutcome{}, fmt.Errorf("passenger %d on flight %s: %w", passengerID, f.ID, models.ErrNotFound)
	}
	outcome.Status = StatusCancelledFromWaitlist
	return outcome, nil
}

type RoundTripRequest struct {
	PassengerName    string
	PassengerID      int
	Priority         int
	OutboundFlightID string
	ReturnFlightID   string
}

type LegOutcome struct {
	BookingOutcome
	Err error
}

type RoundTripOutcome struct {
	Outbound LegOutcome
	Return   LegOutcome
}

// BookRoundTrip books both legs independently. One leg confirmed and the other
// waitlisted, or even failed, is a valid result; nothing is rolled back.
func (e *Engine) BookRoundTrip(req RoundTripRequest) (RoundTripOutcome, error) {
	if err := validatePassenger(req.PassengerName); err != nil {
		return RoundTripOutcome{}, err
	}
	if err := models.ValidatePriority(req.Priority); err != nil {
		return RoundTripOutcome{}, err
	}
	if req.OutboundFlightID == req.ReturnFlightID {
		return RoundTripOutcome{}, fmt.Errorf("outbound and return are both %s: %w", req.OutboundFlightID, models.ErrInvalidInput)
	}
	outbound, err := e.flight(req.OutboundFlightID)
	if err != nil {
		return RoundTripOutcome{}, err
	}
	inbound, err := e.flight(req.ReturnFlightID)
	if err != nil {
		return RoundTripOutcome{}, err
	}

	var result RoundTripOutcome
	result.Outbound.BookingOutcome, result.Outbound.Err = book(outbound, req.PassengerName, req.PassengerID, req.Priority)
	result.Outbound.FlightID = outbound.ID
	result.Return.BookingOutcome, result.Return.Err = book(inbound, req.PassengerName, req.PassengerID, req.Priority)
	result.Return.FlightID = inbound.ID
	return result, nil
}

// Waitlist returns the flight's waiting passengers in promotion order.
func (e *Engine) Waitlist(flightID string) ([]waitlist.Entry, error) {
	f, err := e.flight(flightID)
	if err != nil {
		return nil, err
	}
	return f.Waitlist().Ordered(), nil
}

func (e *Engine) RemoveFromWaitlist(flightID string, passengerID int) (waitlist.Entry, error) {
	f, err := e.flight(flightID)
	if err != nil {
		return waitlist.Entry{}, err
	}
	entry, err := f.Waitlist().Remove(passengerID)
	if err != nil {
		return waitlist.Entry{}, fmt.Errorf("flight %s: %w", f.ID, err)
	}
	return entry, nil
}

func (e *Engine) ModifyWaitlistPriority(flightID string, passengerID, priority int) error {
	if err := models.ValidatePriority(priority); err != nil {
		return err
	}
	f, err := e.flight(flightID)
	if err != nil {
		return err
	}
	if err := f.Waitlist().ModifyPriority(passengerID, priority); err != nil {
		return fmt.Errorf("flight %s: %w", f.ID, err)
	}
	return nil
}

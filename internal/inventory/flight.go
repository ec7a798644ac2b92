// Package inventory owns flight records: their seat state, their booked
// passengers and their waitlists, indexed by flight ID.
package inventory

import (
	"fmt"

	"github.com/dharmasatrya/flightreservation/internal/models"
	"github.com/dharmasatrya/flightreservation/internal/waitlist"
)

type Passenger struct {
	Name string
	ID   int
}

// Flight is one scheduled flight. Descriptive fields are plain data; the seat
// state is only changed through the methods below.
type Flight struct {
	ID            string
	Airline       string
	Origin        string
	Destination   string
	DepartureTime string
	ArrivalTime   string
	Price         float64
	Capacity      int

	// booked can exceed len(passengers) for seats restored from records that
	// carried a count but no names.
	booked     int
	passengers []Passenger
	waitlist   *waitlist.Queue
}

func NewFlight(id, airline, origin, destination, departure, arrival string, price float64, capacity, waitlistCapacity int) *Flight {
	return &Flight{
		ID:            id,
		Airline:       airline,
		Origin:        origin,
		Destination:   destination,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		Price:         price,
		Capacity:      capacity,
		passengers:    make([]Passenger, 0, capacity),
		waitlist:      waitlist.New(waitlistCapacity),
	}
}

func (f *Flight) Booked() int {
	return f.booked
}

func (f *Flight) Available() int {
	return f.Capacity - f.booked
}

func (f *Flight) IsFull() bool {
	return f.booked >= f.Capacity
}

func (f *Flight) Waitlist() *waitlist.Queue {
	return f.waitlist
}

// Passengers returns a copy of the named booked passengers.
func (f *Flight) Passengers() []Passenger {
	out := make([]Passenger, len(f.passengers))
	copy(out, f.passengers)
	return out
}

func (f *Flight) HasPassenger(id int) bool {
	for _, p := range f.passengers {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Seat books one seat for the passenger.
func (f *Flight) Seat(name string, id int) error {
	if f.IsFull() {
		return fmt.Errorf("flight %s has no free seat: %w", f.ID, models.ErrCapacityExceeded)
	}
	f.passengers = append(f.passengers, Passenger{Name: name, ID: id})
	f.booked++
	return nil
}

// Unseat frees the seat held by the passenger matching both name and id. The
// last passenger record takes the vacated slot.
func (f *Flight) Unseat(name string, id int) bool {
	for i, p := range f.passengers {
		if p.ID == id && p.Name == name {
			last := len(f.passengers) - 1
			f.passengers[i] = f.passengers[last]
			f.passengers = f.passengers[:last]
			f.booked--
			return true
		}
	}
	return false
}

// SetBooked restores an anonymous booked count from an imported record.
func (f *Flight) SetBooked(n int) error {
	if n < len(f.passengers) || n > f.Capacity {
		return fmt.Errorf("booked count %d outside [%d,%d]: %w", n, len(f.passengers), f.Capacity, models.ErrInvalidInput)
	}
	f.booked = n
	return nil
}

// AttachPassenger names one of the already counted seats. It is used when
// passenger records are replayed after the flight's booked count.
func (f *Flight) AttachPassenger(name string, id int) error {
	if len(f.passengers) >= f.booked {
		return f.Seat(name, id)
	}
	f.passengers = append(f.passengers, Passenger{Name: name, ID: id})
	return nil
}

func (f *Flight) release() {
	f.passengers = nil
	f.booked = 0
	if f.waitlist != nil {
		f.waitlist.Clear()
		f.waitlist = nil
	}
}

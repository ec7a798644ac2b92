// Package reservation orchestrates bookings across the flight index, the
// per-flight waitlists, the airport directory and the route graph. Engine is
// the only type that changes seat counts.
//
// An Engine is not safe for concurrent use; callers serialise access.
package reservation

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/dharmasatrya/flightreservation/internal/airport"
	"github.com/dharmasatrya/flightreservation/internal/inventory"
	"github.com/dharmasatrya/flightreservation/internal/models"
	"github.com/dharmasatrya/flightreservation/internal/routing"
	"github.com/dharmasatrya/flightreservation/internal/waitlist"
)

// MaxPrice bounds a single fare so that a route summed over every airport
// stays finite.
const MaxPrice = 1e12

// unsetTime is how flat records write an empty schedule time.
const unsetTime = "-"

type Config struct {
	MaxAirports      int
	WaitlistCapacity int
}

func DefaultConfig() Config {
	return Config{
		MaxAirports:      airport.DefaultCapacity,
		WaitlistCapacity: waitlist.DefaultCapacity,
	}
}

type Engine struct {
	flights  *inventory.Index
	airports *airport.Directory
	routes   *routing.Graph
	config   Config
}

func New(cfg Config) *Engine {
	if cfg.MaxAirports <= 0 {
		cfg.MaxAirports = airport.DefaultCapacity
	}
	if cfg.WaitlistCapacity <= 0 {
		cfg.WaitlistCapacity = waitlist.DefaultCapacity
	}
	return &Engine{
		flights:  inventory.NewIndex(),
		airports: airport.New(cfg.MaxAirports),
		routes:   routing.New(cfg.MaxAirports),
		config:   cfg,
	}
}

type FlightSpec struct {
	ID            string
	Airline       string
	Origin        string
	Destination   string
	DepartureTime string
	ArrivalTime   string
	Price         float64
	Capacity      int
}

func (s FlightSpec) validate() error {
	fields := []struct {
		name, value string
		required    bool
	}{
		{"id", s.ID, true},
		{"airline", s.Airline, true},
		{"origin", s.Origin, true},
		{"destination", s.Destination, true},
		{"departure time", s.DepartureTime, false},
		{"arrival time", s.ArrivalTime, false},
	}
	for _, f := range fields {
		if f.required && f.value == "" {
			return fmt.Errorf("%s is required: %w", f.name, models.ErrInvalidInput)
		}
		if err := checkToken(f.name, f.value); err != nil {
			return err
		}
	}
	if s.DepartureTime == unsetTime || s.ArrivalTime == unsetTime {
		return fmt.Errorf("schedule time %q is reserved: %w", unsetTime, models.ErrInvalidInput)
	}
	if s.Capacity <= 0 {
		return fmt.Errorf("capacity %d must be at least 1: %w", s.Capacity, models.ErrInvalidInput)
	}
	if s.Price < 0 || s.Price > MaxPrice || math.IsNaN(s.Price) || math.IsInf(s.Price, 0) {
		return fmt.Errorf("price %v: %w", s.Price, models.ErrInvalidInput)
	}
	return nil
}

// checkToken rejects whitespace, which would break flat record export.
func checkToken(field, value string) error {
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%s %q contains whitespace: %w", field, value, models.ErrInvalidInput)
	}
	return nil
}

// AddFlight inserts a flight and registers its route edge. Nothing changes when
// it fails.
func (e *Engine) AddFlight(spec FlightSpec) error {
	_, err := e.addFlight(spec)
	return err
}

func (e *Engine) addFlight(spec FlightSpec) (*inventory.Flight, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	if _, exists := e.flights.Find(spec.ID); exists {
		return nil, fmt.Errorf("flight %s already exists: %w", spec.ID, models.ErrDuplicateKey)
	}
	if err := e.reserveAirports(spec.Origin, spec.Destination); err != nil {
		return nil, err
	}

	f := inventory.NewFlight(spec.ID, spec.Airline, spec.Origin, spec.Destination,
		spec.DepartureTime, spec.ArrivalTime, spec.Price, spec.Capacity, e.config.WaitlistCapacity)
	if err := e.flights.Insert(f); err != nil {
		return nil, err
	}

	src, err := e.airports.IndexFor(spec.Origin)
	if err != nil {
		return nil, err
	}
	dst, err := e.airports.IndexFor(spec.Destination)
	if err != nil {
		return nil, err
	}
	if err := e.routes.Grow(e.airports.Len()); err != nil {
		return nil, err
	}
	if err := e.routes.AddEdge(src, dst, spec.Price, spec.ID); err != nil {
		return nil, err
	}
	return f, nil
}

// reserveAirports checks the directory can take any unknown airport names
// before anything is mutated.
func (e *Engine) reserveAirports(names ...string) error {
	needed := 0
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		if _, ok := e.airports.Lookup(n); !ok {
			needed++
		}
	}
	if needed > e.airports.Remaining() {
		return fmt.Errorf("airport directory full (%d airports): %w", e.airports.Capacity(), models.ErrCapacityExceeded)
	}
	return nil
}

func (e *Engine) FindFlight(id string) (*inventory.Flight, bool) {
	return e.flights.Find(id)
}

func (e *Engine) flight(id string) (*inventory.Flight, error) {
	f, ok := e.flights.Find(id)
	if !ok {
		return nil, fmt.Errorf("flight %s: %w", id, models.ErrNotFound)
	}
	return f, nil
}

// DeleteFlight removes the flight, its waitlist and passengers, and its route
// edge. Airports stay registered.
func (e *Engine) DeleteFlight(id string) error {
	f, err := e.flight(id)
	if err != nil {
		return err
	}
	origin := f.Origin
	if err := e.flights.Delete(id); err != nil {
		return err
	}
	if src, ok := e.airports.Lookup(origin); ok {
		e.routes.RemoveEdge(src, id)
	}
	return nil
}

func (e *Engine) ListFlights() []*inventory.Flight {
	return e.flights.InOrder()
}

func (e *Engine) ListFlightsByRoute(origin, destination string) []*inventory.Flight {
	return e.flights.ByRoute(origin, destination)
}

func (e *Engine) SortFlightsByPrice(flights []*inventory.Flight) []*inventory.Flight {
	return inventory.SortByPrice(flights)
}

func (e *Engine) Airports() []string {
	return e.airports.Names()
}

func (e *Engine) Config() Config {
	return e.config
}

type Stats struct {
	Flights    int
	Airports   int
	Routes     int
	Booked     int
	Waitlisted int
}

func (e *Engine) Stats() Stats {
	s := Stats{
		Flights:  e.flights.Len(),
		Airports: e.airports.Len(),
		Routes:   e.routes.EdgeCount(),
	}
	e.flights.Walk(func(f *inventory.Flight) bool {
		s.Booked += f.Booked()
		s.Waitlisted += f.Waitlist().Len()
		return true
	})
	return s
}

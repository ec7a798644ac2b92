// Package service puts the reservation engine behind a mutex and translates
// between engine values and API models. It also drives the side effects of each
// operation: passenger history and the route cache.
package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dharmasatrya/flightreservation/internal/cache"
	"github.com/dharmasatrya/flightreservation/internal/filter"
	"github.com/dharmasatrya/flightreservation/internal/history"
	"github.com/dharmasatrya/flightreservation/internal/inventory"
	"github.com/dharmasatrya/flightreservation/internal/models"
	"github.com/dharmasatrya/flightreservation/internal/reservation"
	"github.com/dharmasatrya/flightreservation/internal/schedule"
	"github.com/dharmasatrya/flightreservation/internal/store"
	"github.com/dharmasatrya/flightreservation/internal/waitlist"
	"github.com/dharmasatrya/flightreservation/pkg/currency"
)

type Reservations struct {
	mu       sync.Mutex
	engine   *reservation.Engine
	recorder history.Recorder
	routes   cache.Cache
	epoch    string
	now      func() time.Time
}

// New wraps engine. A nil recorder or cache disables that side effect. Route
// cache keys carry a fresh epoch per Reservations, since graph versions restart
// from zero with the engine while cached entries outlive the process.
func New(engine *reservation.Engine, recorder history.Recorder, routes cache.Cache) *Reservations {
	if recorder == nil {
		recorder = history.NoOp{}
	}
	if routes == nil {
		routes = cache.NewNoOpCache()
	}
	return &Reservations{
		engine:   engine,
		recorder: recorder,
		routes:   routes,
		epoch:    uuid.NewString(),
		now:      time.Now,
	}
}

func (s *Reservations) record(ctx context.Context, events ...history.Event) {
	for _, ev := range events {
		ev.At = s.now().UTC()
		if err := s.recorder.Record(ctx, ev); err != nil {
			log.Printf("history: %s %s passenger %d: %v", ev.Action, ev.FlightID, ev.PassengerID, err)
		}
	}
}

func (s *Reservations) AddFlight(ctx context.Context, req models.AddFlightRequest) (models.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.engine.AddFlight(reservation.FlightSpec{
		ID:            req.ID,
		Airline:       req.Airline,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		Price:         req.Price,
		Capacity:      req.Capacity,
	})
	if err != nil {
		return models.Flight{}, err
	}
	f, _ := s.engine.FindFlight(req.ID)
	return toFlight(f, false), nil
}

func (s *Reservations) GetFlight(ctx context.Context, id string) (models.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.engine.FindFlight(id)
	if !ok {
		return models.Flight{}, fmt.Errorf("flight %s: %w", id, models.ErrNotFound)
	}
	return toFlight(f, true), nil
}

func (s *Reservations) DeleteFlight(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.DeleteFlight(id)
}

// ListFlights returns flights matching the request's route, filters and sort.
// Without an origin or destination every flight is considered.
func (s *Reservations) ListFlights(ctx context.Context, req models.ListRequest) []models.Flight {
	s.mu.Lock()
	var flights []*inventory.Flight
	if req.Origin == "" && req.Destination == "" {
		flights = s.engine.ListFlights()
	} else {
		flights = s.engine.ListFlightsByRoute(req.Origin, req.Destination)
	}
	out := make([]models.Flight, len(flights))
	for i, f := range flights {
		out[i] = toFlight(f, false)
	}
	s.mu.Unlock()

	return filter.Apply(out, req.Filters, req.SortBy, req.SortOrder)
}

func (s *Reservations) Book(ctx context.Context, flightID string, req models.BookingRequest) (models.BookingResponse, error) {
	s.mu.Lock()
	outcome, err := s.engine.BookSeat(flightID, req.PassengerName, req.PassengerID, req.Priority)
	if err != nil {
		s.mu.Unlock()
		return models.BookingResponse{}, err
	}
	f, _ := s.engine.FindFlight(outcome.FlightID)
	resp := models.BookingResponse{
		FlightID:  outcome.FlightID,
		Status:    string(outcome.Status),
		Passenger: models.Passenger{Name: outcome.Passenger.Name, ID: outcome.Passenger.ID},
		Priority:  outcome.Priority,
		Booked:    f.Booked(),
		Capacity:  f.Capacity,
	}
	s.mu.Unlock()

	s.record(ctx, history.Event{
		Action:        bookingAction(outcome.Status),
		FlightID:      outcome.FlightID,
		PassengerName: outcome.Passenger.Name,
		PassengerID:   outcome.Passenger.ID,
		Priority:      outcome.Priority,
	})
	return resp, nil
}

func bookingAction(status reservation.BookingStatus) history.Action {
	if status == reservation.StatusWaitlisted {
		return history.ActionWaitlisted
	}
	return history.ActionBooked
}

func (s *Reservations) Cancel(ctx context.Context, flightID string, req models.CancelRequest) (models.CancelResponse, error) {
	s.mu.Lock()
	outcome, err := s.engine.CancelSeat(flightID, req.PassengerName, req.PassengerID)
	s.mu.Unlock()
	if err != nil {
		return models.CancelResponse{}, err
	}

	resp := models.CancelResponse{
		FlightID:  outcome.FlightID,
		Status:    string(outcome.Status),
		Passenger: models.Passenger{Name: outcome.Passenger.Name, ID: outcome.Passenger.ID},
	}
	events := []history.Event{{
		Action:        history.ActionCancelled,
		FlightID:      outcome.FlightID,
		PassengerName: outcome.Passenger.Name,
		PassengerID:   outcome.Passenger.ID,
	}}
	if outcome.Status == reservation.StatusCancelledFromWaitlist {
		events[0].Action = history.ActionRemovedFromWaitlist
	}
	if p := outcome.Promoted; p != nil {
		resp.Promoted = &models.WaitlistEntry{Name: p.Name, PassengerID: p.PassengerID, Priority: p.Priority}
		events = append(events, history.Event{
			Action:        history.ActionBookedFromWaitlist,
			FlightID:      outcome.FlightID,
			PassengerName: p.Name,
			PassengerID:   p.PassengerID,
			Priority:      p.Priority,
		})
	}
	s.record(ctx, events...)
	return resp, nil
}

func (s *Reservations) BookRoundTrip(ctx context.Context, req models.RoundTripRequest) (models.RoundTripResponse, error) {
	s.mu.Lock()
	outcome, err := s.engine.BookRoundTrip(reservation.RoundTripRequest{
		PassengerName:    req.PassengerName,
		PassengerID:      req.PassengerID,
		Priority:         req.Priority,
		OutboundFlightID: req.OutboundFlightID,
		ReturnFlightID:   req.ReturnFlightID,
	})
	s.mu.Unlock()
	if err != nil {
		return models.RoundTripResponse{}, err
	}

	resp := models.RoundTripResponse{
		Passenger: models.Passenger{Name: req.PassengerName, ID: req.PassengerID},
		Outbound:  toLeg(outcome.Outbound),
		Return:    toLeg(outcome.Return),
	}
	var events []history.Event
	legs := []struct {
		leg    reservation.LegOutcome
		action history.Action
	}{
		{outcome.Outbound, history.ActionRoundTripOutbound},
		{outcome.Return, history.ActionRoundTripReturn},
	}
	for _, l := range legs {
		if l.leg.Err != nil {
			continue
		}
		events = append(events, history.Event{
			Action:        l.action,
			FlightID:      l.leg.FlightID,
			PassengerName: req.PassengerName,
			PassengerID:   req.PassengerID,
			Priority:      req.Priority,
		})
	}
	s.record(ctx, events...)
	return resp, nil
}

func toLeg(leg reservation.LegOutcome) models.LegResponse {
	resp := models.LegResponse{FlightID: leg.FlightID}
	if leg.Err != nil {
		resp.Error = leg.Err.Error()
		return resp
	}
	resp.Status = string(leg.Status)
	return resp
}

func (s *Reservations) Waitlist(ctx context.Context, flightID string) (models.WaitlistResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.engine.Waitlist(flightID)
	if err != nil {
		return models.WaitlistResponse{}, err
	}
	f, _ := s.engine.FindFlight(flightID)
	resp := models.WaitlistResponse{
		FlightID: flightID,
		Size:     len(entries),
		Capacity: f.Waitlist().Cap(),
		Entries:  make([]models.WaitlistEntry, len(entries)),
	}
	for i, e := range entries {
		resp.Entries[i] = toWaitlistEntry(i+1, e)
	}
	return resp, nil
}

func toWaitlistEntry(position int, e waitlist.Entry) models.WaitlistEntry {
	return models.WaitlistEntry{
		Position:    position,
		Name:        e.Name,
		PassengerID: e.PassengerID,
		Priority:    e.Priority,
	}
}

func (s *Reservations) RemoveFromWaitlist(ctx context.Context, flightID string, passengerID int) (models.WaitlistEntry, error) {
	s.mu.Lock()
	entry, err := s.engine.RemoveFromWaitlist(flightID, passengerID)
	s.mu.Unlock()
	if err != nil {
		return models.WaitlistEntry{}, err
	}

	s.record(ctx, history.Event{
		Action:        history.ActionRemovedFromWaitlist,
		FlightID:      flightID,
		PassengerName: entry.Name,
		PassengerID:   entry.PassengerID,
		Priority:      entry.Priority,
	})
	return toWaitlistEntry(0, entry), nil
}

func (s *Reservations) ModifyPriority(ctx context.Context, flightID string, passengerID, priority int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ModifyWaitlistPriority(flightID, passengerID, priority)
}

// CheapestRoute answers from the route cache when the graph has not changed
// since the answer was stored.
func (s *Reservations) CheapestRoute(ctx context.Context, origin, destination string) (models.RouteResponse, error) {
	s.mu.Lock()
	key := cache.RouteKey{Epoch: s.epoch, Origin: origin, Destination: destination, Version: s.engine.RouteVersion()}
	s.mu.Unlock()

	if cached, ok := s.routes.Get(ctx, key); ok {
		cached.CacheHit = true
		return cached, nil
	}

	s.mu.Lock()
	key.Version = s.engine.RouteVersion()
	route, err := s.engine.ShortestRoute(origin, destination)
	s.mu.Unlock()
	if err != nil {
		return models.RouteResponse{}, err
	}

	resp := models.RouteResponse{
		Origin:      route.Origin,
		Destination: route.Destination,
		Cost:        toPrice(route.Cost),
		Airports:    route.Airports,
		Flights:     route.FlightIDs,
		Hops:        len(route.FlightIDs),
	}
	if err := s.routes.Set(ctx, key, resp); err != nil {
		log.Printf("route cache: %s to %s: %v", origin, destination, err)
	}
	return resp, nil
}

func (s *Reservations) Airports(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Airports()
}

func (s *Reservations) Health(ctx context.Context) models.HealthResponse {
	s.mu.Lock()
	stats := s.engine.Stats()
	s.mu.Unlock()

	return models.HealthResponse{
		Status:     "ok",
		Flights:    stats.Flights,
		Airports:   stats.Airports,
		Routes:     stats.Routes,
		Booked:     stats.Booked,
		Waitlisted: stats.Waitlisted,
	}
}

func (s *Reservations) Load(paths store.Paths) (store.LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return store.Load(paths, s.engine)
}

func (s *Reservations) Save(paths store.Paths) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return store.Save(paths, s.engine)
}

func toPrice(amount float64) models.Price {
	return models.Price{
		Amount:    amount,
		Currency:  currency.USD,
		Formatted: currency.FormatUSD(amount),
	}
}

func toFlight(f *inventory.Flight, withPassengers bool) models.Flight {
	out := models.Flight{
		ID:             f.ID,
		Airline:        f.Airline,
		Origin:         f.Origin,
		Destination:    f.Destination,
		DepartureTime:  f.DepartureTime,
		ArrivalTime:    f.ArrivalTime,
		Price:          toPrice(f.Price),
		Capacity:       f.Capacity,
		Booked:         f.Booked(),
		AvailableSeats: f.Available(),
		Waitlisted:     f.Waitlist().Len(),
	}
	if d, err := schedule.Duration(f.DepartureTime, f.ArrivalTime); err == nil {
		dur := schedule.ToModel(d)
		out.Duration = &dur
	}
	if withPassengers {
		for _, p := range f.Passengers() {
			out.Passengers = append(out.Passengers, models.Passenger{Name: p.Name, ID: p.ID})
		}
	}
	return out
}

package models

import "strings"

type SearchFilters struct {
	PriceMin         *float64 `json:"price_min,omitempty"`
	PriceMax         *float64 `json:"price_max,omitempty"`
	Airlines         []string `json:"airlines,omitempty"`
	DepartureTimeMin *string  `json:"departure_time_min,omitempty"`
	DepartureTimeMax *string  `json:"departure_time_max,omitempty"`
	MaxDuration      *int     `json:"max_duration,omitempty"`
	AvailableOnly    bool     `json:"available_only,omitempty"`
}

type ListRequest struct {
	Origin      string         `json:"origin,omitempty"`
	Destination string         `json:"destination,omitempty"`
	Filters     *SearchFilters `json:"filters,omitempty"`
	SortBy      string         `json:"sort_by,omitempty"`
	SortOrder   string         `json:"sort_order,omitempty"`
}

func (r *ListRequest) Validate() error {
	r.Origin = strings.TrimSpace(r.Origin)
	r.Destination = strings.TrimSpace(r.Destination)
	if r.SortBy == "" {
		r.SortBy = "id"
	}
	if r.SortOrder == "" {
		r.SortOrder = "asc"
	}
	return nil
}

type AddFlightRequest struct {
	ID            string  `json:"id"`
	Airline       string  `json:"airline"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Price         float64 `json:"price"`
	Capacity      int     `json:"capacity"`
}

func (r *AddFlightRequest) Validate() error {
	if r.ID == "" {
		return ErrMissingFlightID
	}
	if r.Airline == "" {
		return ErrMissingAirline
	}
	if r.Origin == "" {
		return ErrMissingOrigin
	}
	if r.Destination == "" {
		return ErrMissingDestination
	}
	if r.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if r.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

type BookingRequest struct {
	PassengerName string `json:"passenger_name"`
	PassengerID   int    `json:"passenger_id"`
	Priority      int    `json:"priority"`
}

func (r *BookingRequest) Validate() error {
	if r.PassengerName == "" {
		return ErrMissingPassengerName
	}
	if r.Priority == 0 {
		r.Priority = MinPriority
	}
	if r.Priority < MinPriority || r.Priority > MaxPriority {
		return ErrInvalidPriority
	}
	return nil
}

type CancelRequest struct {
	PassengerName string `json:"passenger_name"`
	PassengerID   int    `json:"passenger_id"`
}

func (r *CancelRequest) Validate() error {
	if r.PassengerName == "" {
		return ErrMissingPassengerName
	}
	return nil
}

type PriorityRequest struct {
	Priority int `json:"priority"`
}

func (r *PriorityRequest) Validate() error {
	if r.Priority < MinPriority || r.Priority > MaxPriority {
		return ErrInvalidPriority
	}
	return nil
}

type RoundTripRequest struct {
	PassengerName    string `json:"passenger_name"`
	PassengerID      int    `json:"passenger_id"`
	Priority         int    `json:"priority"`
	OutboundFlightID string `json:"outbound_flight_id"`
	ReturnFlightID   string `json:"return_flight_id"`
}

func (r *RoundTripRequest) Validate() error {
	if r.PassengerName == "" {
		return ErrMissingPassengerName
	}
	if r.OutboundFlightID == "" || r.ReturnFlightID == "" {
		return ErrMissingFlightID
	}
	if r.Priority == 0 {
		r.Priority = MinPriority
	}
	if r.Priority < MinPriority || r.Priority > MaxPriority {
		return ErrInvalidPriority
	}
	return nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingFlightID      ValidationError = "flight id is required"
	ErrMissingAirline       ValidationError = "airline is required"
	ErrMissingOrigin        ValidationError = "origin is required"
	ErrMissingDestination   ValidationError = "destination is required"
	ErrMissingPassengerName ValidationError = "passenger_name is required"
	ErrInvalidCapacity      ValidationError = "capacity must be at least 1"
	ErrInvalidPrice         ValidationError = "price must not be negative"
	ErrInvalidPriority      ValidationError = "priority must be between 1 and 3"
)

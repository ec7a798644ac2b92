package models

type Duration struct {
	Hours        int `json:"hours"`
	Minutes      int `json:"minutes"`
	TotalMinutes int `json:"total_minutes"`
}

type Price struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
}

type Passenger struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

type WaitlistEntry struct {
	Position    int    `json:"position"`
	Name        string `json:"name"`
	PassengerID int    `json:"passenger_id"`
	Priority    int    `json:"priority"`
}

type Flight struct {
	ID             string      `json:"id"`
	Airline        string      `json:"airline"`
	Origin         string      `json:"origin"`
	Destination    string      `json:"destination"`
	DepartureTime  string      `json:"departure_time"`
	ArrivalTime    string      `json:"arrival_time"`
	Duration       *Duration   `json:"duration,omitempty"`
	Price          Price       `json:"price"`
	Capacity       int         `json:"capacity"`
	Booked         int         `json:"booked"`
	AvailableSeats int         `json:"available_seats"`
	Waitlisted     int         `json:"waitlisted"`
	Passengers     []Passenger `json:"passengers,omitempty"`
	BestValueScore float64     `json:"best_value_score,omitempty"`
}

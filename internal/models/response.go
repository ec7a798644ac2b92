package models

type ListMetadata struct {
	TotalResults int   `json:"total_results"`
	SearchTimeMs int64 `json:"search_time_ms"`
}

type ListCriteria struct {
	Origin      string         `json:"origin,omitempty"`
	Destination string         `json:"destination,omitempty"`
	Filters     *SearchFilters `json:"filters,omitempty"`
	SortBy      string         `json:"sort_by"`
	SortOrder   string         `json:"sort_order"`
}

type ListResponse struct {
	Criteria ListCriteria `json:"criteria"`
	Metadata ListMetadata `json:"metadata"`
	Flights  []Flight     `json:"flights"`
}

type BookingResponse struct {
	FlightID  string    `json:"flight_id"`
	Status    string    `json:"status"`
	Passenger Passenger `json:"passenger"`
	Priority  int       `json:"priority,omitempty"`
	Booked    int       `json:"booked"`
	Capacity  int       `json:"capacity"`
}

type CancelResponse struct {
	FlightID  string         `json:"flight_id"`
	Status    string         `json:"status"`
	Passenger Passenger      `json:"passenger"`
	Promoted  *WaitlistEntry `json:"promoted,omitempty"`
}

type LegResponse struct {
	FlightID string `json:"flight_id"`
	Status   string `json:"status,omitempty"`
	Error    string `json:"error,omitempty"`
}

type RoundTripResponse struct {
	Passenger Passenger   `json:"passenger"`
	Outbound  LegResponse `json:"outbound"`
	Return    LegResponse `json:"return"`
}

type WaitlistResponse struct {
	FlightID string          `json:"flight_id"`
	Size     int             `json:"size"`
	Capacity int             `json:"capacity"`
	Entries  []WaitlistEntry `json:"entries"`
}

type RouteResponse struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Cost        Price    `json:"cost"`
	Airports    []string `json:"airports"`
	Flights     []string `json:"flights"`
	Hops        int      `json:"hops"`
	CacheHit    bool     `json:"cache_hit"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	Flights    int    `json:"flights"`
	Airports   int    `json:"airports"`
	Routes     int    `json:"routes"`
	Booked     int    `json:"booked"`
	Waitlisted int    `json:"waitlisted"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

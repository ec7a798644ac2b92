package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dharmasatrya/flightreservation/internal/models"
)

func ptr[T any](v T) *T { return &v }

func sampleFlights() []models.Flight {
	return []models.Flight{
		{ID: "F3", Airline: "GA", DepartureTime: "18:00", ArrivalTime: "20:00", Price: models.Price{Amount: 300}, Capacity: 10, Booked: 10, AvailableSeats: 0, Duration: &models.Duration{TotalMinutes: 120}},
		{ID: "F1", Airline: "QZ", DepartureTime: "06:00", ArrivalTime: "09:30", Price: models.Price{Amount: 120}, Capacity: 10, Booked: 2, AvailableSeats: 8, Duration: &models.Duration{TotalMinutes: 210}},
		{ID: "F2", Airline: "ga", DepartureTime: "tbd", ArrivalTime: "tbd", Price: models.Price{Amount: 90}, Capacity: 5, Booked: 1, AvailableSeats: 4},
	}
}

func ids(flights []models.Flight) []string {
	out := make([]string, len(flights))
	for i, f := range flights {
		out[i] = f.ID
	}
	return out
}

func TestApply_Filters(t *testing.T) {
	tests := []struct {
		name    string
		filters *models.SearchFilters
		want    []string
	}{
		{name: "nil filters", filters: nil, want: []string{"F1", "F2", "F3"}},
		{name: "price range", filters: &models.SearchFilters{PriceMin: ptr(100.0), PriceMax: ptr(200.0)}, want: []string{"F1"}},
		{name: "airline case-insensitive", filters: &models.SearchFilters{Airlines: []string{"GA"}}, want: []string{"F2", "F3"}},
		{name: "available only", filters: &models.SearchFilters{AvailableOnly: true}, want: []string{"F1", "F2"}},
		{name: "departure window keeps unparseable", filters: &models.SearchFilters{DepartureTimeMin: ptr("12:00")}, want: []string{"F2", "F3"}},
		{name: "departure upper bound", filters: &models.SearchFilters{DepartureTimeMax: ptr("07:00")}, want: []string{"F1", "F2"}},
		{name: "max duration", filters: &models.SearchFilters{MaxDuration: ptr(150)}, want: []string{"F2", "F3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(sampleFlights(), tt.filters, "id", "asc")
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_Sort(t *testing.T) {
	tests := []struct {
		sortBy string
		order  string
		want   []string
	}{
		{sortBy: "", order: "", want: []string{"F1", "F2", "F3"}},
		{sortBy: "id", order: "desc", want: []string{"F3", "F2", "F1"}},
		{sortBy: "price", order: "asc", want: []string{"F2", "F1", "F3"}},
		{sortBy: "price", order: "desc", want: []string{"F3", "F1", "F2"}},
		{sortBy: "departure", order: "asc", want: []string{"F1", "F3", "F2"}},
		{sortBy: "arrival", order: "asc", want: []string{"F1", "F3", "F2"}},
		{sortBy: "duration", order: "asc", want: []string{"F3", "F1", "F2"}},
		{sortBy: "availability", order: "desc", want: []string{"F1", "F2", "F3"}},
		{sortBy: "nonsense", order: "asc", want: []string{"F1", "F2", "F3"}},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy+"_"+tt.order, func(t *testing.T) {
			flights := Apply(sampleFlights(), nil, "id", "asc")
			got := Apply(flights, nil, tt.sortBy, tt.order)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_BestValueScoresFlights(t *testing.T) {
	got := Apply(sampleFlights(), nil, "best_value", "asc")

	assert.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].BestValueScore, got[i].BestValueScore)
	}
	assert.Equal(t, "F3", got[2].ID)
}

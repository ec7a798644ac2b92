package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dharmasatrya/flightreservation/internal/models"
)

func flight(id string, price float64, minutes, booked, capacity int) models.Flight {
	f := models.Flight{
		ID:       id,
		Price:    models.Price{Amount: price},
		Booked:   booked,
		Capacity: capacity,
	}
	if minutes > 0 {
		f.Duration = &models.Duration{TotalMinutes: minutes}
	}
	return f
}

func TestCalculateBestValue(t *testing.T) {
	tests := []struct {
		name        string
		flight      models.Flight
		maxPrice    float64
		maxDuration float64
		want        float64
	}{
		{name: "most expensive, longest, full", flight: flight("A", 200, 120, 10, 10), maxPrice: 200, maxDuration: 120, want: 100},
		{name: "half price, no schedule, empty", flight: flight("B", 100, 0, 0, 10), maxPrice: 200, maxDuration: 120, want: 25},
		{name: "half of everything", flight: flight("C", 100, 60, 5, 10), maxPrice: 200, maxDuration: 120, want: 50},
		{name: "free flight on empty set maxima", flight: flight("D", 0, 0, 0, 1), maxPrice: 0, maxDuration: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateBestValue(tt.flight, tt.maxPrice, tt.maxDuration), 0.001)
		})
	}
}

func TestCalculateScores(t *testing.T) {
	in := []models.Flight{
		flight("CHEAP", 100, 90, 0, 10),
		flight("PRICEY", 400, 60, 9, 10),
	}

	out := CalculateScores(in)

	assert.Len(t, out, 2)
	assert.Less(t, out[0].BestValueScore, out[1].BestValueScore)
	assert.Zero(t, in[0].BestValueScore, "input is not modified")
	assert.Empty(t, CalculateScores(nil))
}

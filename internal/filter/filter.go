package filter

import (
	"sort"
	"strings"

	"github.com/dharmasatrya/flightreservation/internal/models"
	"github.com/dharmasatrya/flightreservation/internal/ranking"
	"github.com/dharmasatrya/flightreservation/internal/schedule"
)

func Apply(flights []models.Flight, filters *models.SearchFilters, sortBy, sortOrder string) []models.Flight {
	filtered := applyFilters(flights, filters)

	if strings.EqualFold(sortBy, "best_value") {
		filtered = ranking.CalculateScores(filtered)
	}

	return applySort(filtered, sortBy, sortOrder)
}

func applyFilters(flights []models.Flight, filters *models.SearchFilters) []models.Flight {
	if filters == nil {
		return flights
	}

	result := make([]models.Flight, 0, len(flights))

	for _, f := range flights {
		if matchesFilters(f, filters) {
			result = append(result, f)
		}
	}

	return result
}

func matchesFilters(f models.Flight, filters *models.SearchFilters) bool {
	if filters.PriceMin != nil && f.Price.Amount < *filters.PriceMin {
		return false
	}
	if filters.PriceMax != nil && f.Price.Amount > *filters.PriceMax {
		return false
	}

	if filters.AvailableOnly && f.AvailableSeats <= 0 {
		return false
	}

	if len(filters.Airlines) > 0 {
		found := false
		for _, airline := range filters.Airlines {
			if strings.EqualFold(f.Airline, airline) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	// Time-of-day bounds only apply to flights whose departure parses.
	if dep, err := schedule.MinuteOfDay(f.DepartureTime); err == nil {
		if filters.DepartureTimeMin != nil {
			if minTime, err := schedule.MinuteOfDay(*filters.DepartureTimeMin); err == nil && dep < minTime {
				return false
			}
		}
		if filters.DepartureTimeMax != nil {
			if maxTime, err := schedule.MinuteOfDay(*filters.DepartureTimeMax); err == nil && dep > maxTime {
				return false
			}
		}
	}

	if filters.MaxDuration != nil && f.Duration != nil && f.Duration.TotalMinutes > *filters.MaxDuration {
		return false
	}

	return true
}

// minuteKey orders unparseable schedule tokens after every parseable one.
func minuteKey(token string) int {
	m, err := schedule.MinuteOfDay(token)
	if err != nil {
		return 24 * 60
	}
	return m
}

func durationKey(f models.Flight) int {
	if f.Duration == nil {
		return int(^uint(0) >> 1)
	}
	return f.Duration.TotalMinutes
}

func applySort(flights []models.Flight, sortBy, sortOrder string) []models.Flight {
	if len(flights) == 0 {
		return flights
	}

	ascending := strings.ToLower(sortOrder) != "desc"

	var less func(a, b models.Flight) bool
	switch strings.ToLower(sortBy) {
	case "price":
		less = func(a, b models.Flight) bool { return a.Price.Amount < b.Price.Amount }
	case "departure":
		less = func(a, b models.Flight) bool { return minuteKey(a.DepartureTime) < minuteKey(b.DepartureTime) }
	case "arrival":
		less = func(a, b models.Flight) bool { return minuteKey(a.ArrivalTime) < minuteKey(b.ArrivalTime) }
	case "duration":
		less = func(a, b models.Flight) bool { return durationKey(a) < durationKey(b) }
	case "availability":
		less = func(a, b models.Flight) bool { return a.AvailableSeats < b.AvailableSeats }
	case "best_value":
		less = func(a, b models.Flight) bool { return a.BestValueScore < b.BestValueScore }
	default:
		less = func(a, b models.Flight) bool { return a.ID < b.ID }
	}

	sort.SliceStable(flights, func(i, j int) bool {
		a, b := flights[i], flights[j]
		if ascending {
			return less(a, b)
		}
		return less(b, a)
	})

	return flights
}

package reservation

import "github.com/dharmasatrya/flightreservation/internal/inventory"

func flightIDs(flights []*inventory.Flight) []string {
	out := make([]string, len(flights))
	for i, f := range flights {
		out[i] = f.ID
	}
	return out
}

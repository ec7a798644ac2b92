package reservation

import (
	"fmt"

	"github.com/dharmasatrya/flightreservation/internal/models"
)

type Route struct {
	Origin      string
	Destination string
	Cost        float64
	Airports    []string
	FlightIDs   []string
}

// ShortestRoute returns the cheapest chain of flights from origin to
// destination, priced by the sum of ticket prices.
func (e *Engine) ShortestRoute(origin, destination string) (Route, error) {
	src, ok := e.airports.Lookup(origin)
	if !ok {
		return Route{}, fmt.Errorf("%q: %w", origin, models.ErrUnknownAirport)
	}
	dst, ok := e.airports.Lookup(destination)
	if !ok {
		return Route{}, fmt.Errorf("%q: %w", destination, models.ErrUnknownAirport)
	}

	path, err := e.routes.ShortestPath(src, dst)
	if err != nil {
		return Route{}, fmt.Errorf("%s to %s: %w", origin, destination, err)
	}

	names := make([]string, len(path.Vertices))
	for i, v := range path.Vertices {
		name, err := e.airports.NameFor(v)
		if err != nil {
			return Route{}, err
		}
		names[i] = name
	}
	return Route{
		Origin:      origin,
		Destination: destination,
		Cost:        path.Cost,
		Airports:    names,
		FlightIDs:   path.FlightIDs,
	}, nil
}

// RouteVersion changes whenever the route graph does; cached routes keyed by
// it never go stale.
func (e *Engine) RouteVersion() uint64 {
	return e.routes.Version()
}

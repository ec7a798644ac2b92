// Package routing holds the directed, weighted route graph over airport
// indices and answers cheapest-path queries on it.
package routing

import (
	"fmt"
	"math"

	"github.com/dharmasatrya/flightreservation/internal/models"
)

// Edge is one flight leg. Parallel edges between the same pair are kept; each
// one is a distinct flight.
type Edge struct {
	To       int
	Cost     float64
	FlightID string
}

type Path struct {
	Cost      float64
	Vertices  []int
	FlightIDs []string
}

type Graph struct {
	adj         [][]Edge
	maxVertices int
	edges       int
	version     uint64
}

func New(maxVertices int) *Graph {
	return &Graph{maxVertices: maxVertices}
}

func (g *Graph) VertexCount() int {
	return len(g.adj)
}

func (g *Graph) EdgeCount() int {
	return g.edges
}

// Version changes whenever the vertex space or the edge set changes.
func (g *Graph) Version() uint64 {
	return g.version
}

// Grow extends the vertex space to [0, n). It never shrinks.
func (g *Graph) Grow(n int) error {
	if n > g.maxVertices {
		return fmt.Errorf("vertex count %d exceeds maximum %d: %w", n, g.maxVertices, models.ErrOutOfRange)
	}
	if n <= len(g.adj) {
		return nil
	}
	for len(g.adj) < n {
		g.adj = append(g.adj, nil)
	}
	g.version++
	return nil
}

func (g *Graph) inRange(v int) bool {
	return v >= 0 && v < len(g.adj)
}

func (g *Graph) AddEdge(src, dst int, cost float64, flightID string) error {
	if !g.inRange(src) || !g.inRange(dst) {
		return fmt.Errorf("edge %d->%d with %d vertices: %w", src, dst, len(g.adj), models.ErrOutOfRange)
	}
	if cost < 0 || math.IsNaN(cost) || math.IsInf(cost, 0) {
		return fmt.Errorf("edge cost %v: %w", cost, models.ErrInvalidInput)
	}
	g.adj[src] = append(g.adj[src], Edge{To: dst, Cost: cost, FlightID: flightID})
	g.edges++
	g.version++
	return nil
}

// RemoveEdge drops the outgoing edge of src labelled flightID.
func (g *Graph) RemoveEdge(src int, flightID string) bool {
	if !g.inRange(src) {
		return false
	}
	edges := g.adj[src]
	for i, e := range edges {
		if e.FlightID == flightID {
			g.adj[src] = append(edges[:i:i], edges[i+1:]...)
			g.edges--
			g.version++
			return true
		}
	}
	return false
}

// ShortestPath runs Dijkstra from src with a linear selection scan, O(V^2).
// Among unvisited vertices at equal tentative distance the lowest index is
// settled first, and a relaxation only wins on a strictly smaller cost, so
// the chosen path is reproducible.
func (g *Graph) ShortestPath(src, dst int) (Path, error) {
	n := len(g.adj)
	if n < 2 {
		return Path{}, fmt.Errorf("need at least two airports, have %d: %w", n, models.ErrUnreachable)
	}
	if !g.inRange(src) || !g.inRange(dst) {
		return Path{}, fmt.Errorf("vertex %d->%d outside [0,%d): %w", src, dst, n, models.ErrUnreachable)
	}

	dist := make([]float64, n)
	parent := make([]int, n)
	via := make([]string, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		parent[i] = -1
	}
	dist[src] = 0

	for {
		u := -1
		best := math.Inf(1)
		for i := 0; i < n; i++ {
			if !visited[i] && dist[i] < best {
				best = dist[i]
				u = i
			}
		}
		if u == -1 || u == dst {
			break
		}
		visited[u] = true

		for _, e := range g.adj[u] {
			if visited[e.To] {
				continue
			}
			if d := dist[u] + e.Cost; d < dist[e.To] {
				dist[e.To] = d
				parent[e.To] = u
				via[e.To] = e.FlightID
			}
		}
	}

	if math.IsInf(dist[dst], 1) {
		return Path{}, fmt.Errorf("no route from %d to %d: %w", src, dst, models.ErrUnreachable)
	}

	var vertices []int
	var flights []string
	for v := dst; v != -1; v = parent[v] {
		vertices = append(vertices, v)
		if parent[v] != -1 {
			flights = append(flights, via[v])
		}
	}
	reverseInts(vertices)
	reverseStrings(flights)

	return Path{Cost: dist[dst], Vertices: vertices, FlightIDs: flights}, nil
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseStrings(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Package graph holds the campus path network: typed nodes, symmetric
// weighted edges and the builder that assembles them from authored data.
package graph

import (
	"errors"
	"fmt"
	"math"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/campusnav/routing/navigation/geo"
)

var (
	ErrNodeNotFound = errors.New("node not found")
	ErrEdgeNotFound = errors.New("edge not found")
)

// CampusGraph is built once and read-mostly afterwards. The only supported
// post-build mutation is toggling an edge's accessibility flag (dynamic
// closures); searches take a read token for their whole run.
type CampusGraph struct {
	nodes map[string]*Node
	// adjacency, node id -> out edges
	edges map[string][]Edge

	mu *xsync.RBMutex
}

func newCampusGraph() *CampusGraph {
	return &CampusGraph{
		nodes: make(map[string]*Node),
		edges: make(map[string][]Edge),
		mu:    xsync.NewRBMutex(),
	}
}

func (g *CampusGraph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

func (g *CampusGraph) NodeCount() int { return len(g.nodes) }

// Nodes exposes the full node map for iteration; callers must not mutate it.
func (g *CampusGraph) Nodes() map[string]*Node { return g.nodes }

// Edges returns the out edges of a node. The returned slice is owned by the
// graph and must not be mutated by the caller.
func (g *CampusGraph) Edges(id string) []Edge {
	return g.edges[id]
}

// RLock takes a read token covering edge flags for the duration of a search.
func (g *CampusGraph) RLock() *xsync.RToken { return g.mu.RLock() }

func (g *CampusGraph) RUnlock(t *xsync.RToken) { g.mu.RUnlock(t) }

// SetEdgeAccessible flips the accessibility flag on both directions of the
// connection between from and to. Used to model temporary closures.
func (g *CampusGraph) SetEdgeAccessible(from, to string, accessible bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.setDirected(from, to, accessible) {
		return fmt.Errorf("%w: %s -> %s", ErrEdgeNotFound, from, to)
	}
	if !g.setDirected(to, from, accessible) {
		return fmt.Errorf("%w: %s -> %s", ErrEdgeNotFound, to, from)
	}
	return nil
}

func (g *CampusGraph) setDirected(from, to string, accessible bool) bool {
	for i, e := range g.edges[from] {
		if e.To == to {
			g.edges[from][i].Accessible = accessible
			return true
		}
	}
	return false
}

// FindNearestNode scans all nodes (optionally restricted to the given types)
// and returns the one closest to loc. The boolean is false only when no node
// matches the filter.
func (g *CampusGraph) FindNearestNode(loc geo.Location, types ...NodeType) (*Node, bool) {
	var best *Node
	bestDist := math.Inf(1)
	for _, n := range g.nodes {
		if len(types) > 0 && !containsType(types, n.Type) {
			continue
		}
		d := geo.Distance(loc, n.Location)
		// stable outcome for equidistant candidates
		if d < bestDist || (d == bestDist && best != nil && n.ID < best.ID) {
			best = n
			bestDist = d
		}
	}
	return best, best != nil
}

func containsType(types []NodeType, t NodeType) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}

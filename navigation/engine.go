// Package navigation is the campus routing core: the engine facade over the
// graph pathfinder, the route assembler, the hybrid on/off-campus router and
// the route stitcher.
package navigation

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/campusnav/routing/navigation/algo"
	"github.com/campusnav/routing/navigation/geo"
	"github.com/campusnav/routing/navigation/graph"
)

const DefaultCacheCapacity = 20

// pathFinder is what the engine needs from the search layer; satisfied by
// algo.Pathfinder and replaceable in tests.
type pathFinder interface {
	FindPath(start, end *graph.Node, cfg algo.PathfindingConfig) ([]*graph.Node, error)
}

// EngineConfig carries the deployment-level engine tunables. Zero values fall
// back to the package defaults.
type EngineConfig struct {
	CacheCapacity int
	// default walking speed in m/s for requests that do not set one
	WalkingSpeed float64
	// A* expansion cap; <= 0 means the algo package default
	MaxIterations int
}

// Engine owns one campus graph and one pathfinder and answers routing
// queries. Queries are synchronous and safe to call concurrently; graph
// mutation (SetEdgeAccessible) must be single-writer.
type Engine struct {
	graph  *graph.CampusGraph
	finder pathFinder

	walkingSpeed  float64
	maxIterations int

	// bounded best-effort route cache; eviction order is arbitrary
	cache         *xsync.MapOf[string, *Route]
	cacheCapacity int
}

func NewEngine(g *graph.CampusGraph, cfg EngineConfig) *Engine {
	if cfg.CacheCapacity <= 0 {
		cfg.CacheCapacity = DefaultCacheCapacity
	}
	if cfg.WalkingSpeed <= 0 {
		cfg.WalkingSpeed = DefaultWalkingSpeed
	}
	return &Engine{
		graph:         g,
		finder:        algo.NewPathfinder(g),
		walkingSpeed:  cfg.WalkingSpeed,
		maxIterations: cfg.MaxIterations,
		cache:         xsync.NewMapOf[string, *Route](),
		cacheCapacity: cfg.CacheCapacity,
	}
}

// IsReady reports whether the graph has been built. Routing methods called
// before readiness return RouteError, never panic.
func (e *Engine) IsReady() bool {
	return e.graph != nil && e.graph.NodeCount() > 0
}

// FindRoute resolves both points to their nearest graph nodes, runs the
// pathfinder and assembles the route. Identical queries are served from the
// cache.
func (e *Engine) FindRoute(start, end geo.Location, opts RoutingOptions) (result RouteResult) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: FindRoute %v with input start=%v, end=%v", r, start, end)
			log.Errorln(err)
			result = RouteError{Reason: err.Error()}
		}
	}()
	if !e.IsReady() {
		return RouteError{Reason: "campus graph is not built"}
	}
	if opts.WalkingSpeed <= 0 {
		opts.WalkingSpeed = e.walkingSpeed
	}
	key := cacheKey(start, end, opts)
	if cached, ok := e.cache.Load(key); ok {
		return Success{Route: cached}
	}

	startNode, ok := e.graph.FindNearestNode(start)
	if !ok {
		return NoRouteFound{Reason: "no graph node near start"}
	}
	endNode, ok := e.graph.FindNearestNode(end)
	if !ok {
		return NoRouteFound{Reason: "no graph node near end"}
	}

	var route *Route
	if startNode.ID == endNode.ID {
		route = DirectRoute(start, end, opts.WalkingSpeed)
	} else {
		path, err := e.finder.FindPath(startNode, endNode, e.pathfindingConfig(opts))
		if err != nil {
			log.Debugf("routing failed between %s and %s: %v", startNode.ID, endNode.ID, err)
			return NoRouteFound{Reason: err.Error()}
		}
		route = AssembleRoute(path, start, end, opts.WalkingSpeed)
	}
	e.storeCached(key, route)
	return Success{Route: route}
}

// FindAlternativeRoutes reruns the search under preset option profiles and
// returns up to max sufficiently distinct routes.
func (e *Engine) FindAlternativeRoutes(start, end geo.Location, max int) []*Route {
	// zero walking speed defers to the engine's configured default
	presets := []RoutingOptions{
		{PreferOutdoor: true},
		{PreferAccessible: true, AvoidStairs: true},
		{PreferOutdoor: true, AvoidStairs: true},
		{PreferOutdoor: false},
	}
	routes := make([]*Route, 0, max)
	for _, preset := range presets {
		if len(routes) >= max {
			break
		}
		res, ok := e.FindRoute(start, end, preset).(Success)
		if !ok {
			continue
		}
		duplicate := false
		for _, r := range routes {
			if routeOverlap(r, res.Route) > 0.8 {
				duplicate = true
				break
			}
		}
		if !duplicate {
			routes = append(routes, res.Route)
		}
	}
	return routes
}

func (e *Engine) FindNearestNode(loc geo.Location, types ...graph.NodeType) (*graph.Node, bool) {
	if !e.IsReady() {
		return nil, false
	}
	return e.graph.FindNearestNode(loc, types...)
}

// SetEdgeAccessible toggles a closure on the underlying graph and drops the
// cache, which may hold routes over the changed edge.
func (e *Engine) SetEdgeAccessible(from, to string, accessible bool) error {
	if !e.IsReady() {
		return fmt.Errorf("campus graph is not built")
	}
	if err := e.graph.SetEdgeAccessible(from, to, accessible); err != nil {
		return err
	}
	e.ClearCache()
	return nil
}

// Reset drops the graph and the cache. The engine is not ready afterwards.
func (e *Engine) Reset() {
	e.graph = nil
	e.finder = nil
	e.ClearCache()
}

func (e *Engine) ClearCache() {
	e.cache.Clear()
}

func (e *Engine) storeCached(key string, route *Route) {
	if e.cache.Size() >= e.cacheCapacity {
		// arbitrary-eviction: bounded memory is all that matters here
		e.cache.Range(func(k string, _ *Route) bool {
			e.cache.Delete(k)
			return false
		})
	}
	e.cache.Store(key, route)
}

// cacheKey rounds coordinates to ~1 m so equivalent queries share an entry.
func cacheKey(start, end geo.Location, opts RoutingOptions) string {
	return fmt.Sprintf("%.5f,%.5f|%.5f,%.5f|%t|%t|%t|%.2f",
		start.Lat, start.Lon, end.Lat, end.Lon,
		opts.PreferAccessible, opts.PreferOutdoor, opts.AvoidStairs, opts.WalkingSpeed)
}

func (e *Engine) pathfindingConfig(o RoutingOptions) algo.PathfindingConfig {
	cfg := algo.DefaultConfig()
	cfg.PreferAccessible = o.PreferAccessible
	cfg.PreferOutdoor = o.PreferOutdoor
	cfg.AvoidStairs = o.AvoidStairs
	if o.WalkingSpeed > 0 {
		cfg.WalkingSpeed = o.WalkingSpeed
	}
	if e.maxIterations > 0 {
		cfg.MaxIterations = e.maxIterations
	}
	return cfg
}

// routeOverlap reports the fraction of the shorter route's waypoints that
// have a counterpart within 15 m on the other route.
func routeOverlap(a, b *Route) float64 {
	short, long := a.Waypoints, b.Waypoints
	if len(long) < len(short) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}
	matched := 0
	for _, w := range short {
		for _, v := range long {
			if geo.Distance(w.Location, v.Location) <= 15 {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(short))
}

// Package algo implements the A* search over the campus graph with the
// pedestrian cost model: indoor/outdoor preference, accessibility and stairs
// handling, climbing penalties.
package algo

import (
	"container/heap"
	"math"

	"github.com/samber/lo"

	"github.com/campusnav/routing/navigation/geo"
	"github.com/campusnav/routing/navigation/graph"
)

// PathfindingConfig selects the cost model of one search.
type PathfindingConfig struct {
	PreferAccessible bool
	PreferOutdoor    bool
	AvoidStairs      bool
	// search budget in meters of accumulated cost; <= 0 means unbounded
	MaxWalkingDistance float64
	// m/s, used by callers for time estimates
	WalkingSpeed float64
	// expansion cap; <= 0 means MAX_ITERATIONS
	MaxIterations int
}

func DefaultConfig() PathfindingConfig {
	return PathfindingConfig{
		PreferOutdoor: true,
		WalkingSpeed:  WALKING_SPEED,
		MaxIterations: MAX_ITERATIONS,
	}
}

type Pathfinder struct {
	g *graph.CampusGraph
}

func NewPathfinder(g *graph.CampusGraph) *Pathfinder {
	return &Pathfinder{g: g}
}

// FindPath runs A* from start to end and returns the node sequence including
// both endpoints. The heuristic is the great-circle distance to the goal,
// admissible because every edge cost is at least its geodesic distance.
// Returns ErrNoPath when the search space is exhausted, the iteration cap is
// hit, or the distance budget prunes every remaining state.
func (p *Pathfinder) FindPath(start, end *graph.Node, cfg PathfindingConfig) ([]*graph.Node, error) {
	token := p.g.RLock()
	defer p.g.RUnlock(token)

	if start.ID == end.ID {
		return []*graph.Node{start}, nil
	}
	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = MAX_ITERATIONS
	}

	openSet := make(PriorityQueue, 1)
	openSetMap := make(map[string]*Item, 1)
	cameFrom := make(map[string]string)
	gScore := map[string]float64{start.ID: 0}
	closed := make(map[string]struct{})

	openSet[0] = &Item{Value: start.ID, Priority: geo.Distance(start.Location, end.Location), Index: 0}
	openSetMap[start.ID] = openSet[0]
	heap.Init(&openSet)

	iterations := 0
	for openSet.Len() > 0 {
		cur := heap.Pop(&openSet).(*Item).Value
		delete(openSetMap, cur)
		if cur == end.ID {
			return p.reconstructPath(cameFrom, cur), nil
		}
		if _, ok := closed[cur]; ok {
			continue
		}
		closed[cur] = struct{}{}
		iterations++
		if iterations > maxIterations {
			// circuit breaker, treated as no path rather than an error
			break
		}
		curNode, _ := p.g.Node(cur)
		for _, e := range p.g.Edges(cur) {
			if _, ok := closed[e.To]; ok {
				continue
			}
			neighbor, ok := p.g.Node(e.To)
			if !ok {
				continue
			}
			if !isEdgeAllowed(cfg, curNode, neighbor, e) {
				continue
			}
			gScoreTentative := gScore[cur] + calculateEdgeCost(cfg, e)
			if cfg.MaxWalkingDistance > 0 && gScoreTentative > cfg.MaxWalkingDistance {
				continue
			}
			gScoreNeighbor, visited := gScore[e.To]
			if !visited {
				gScoreNeighbor = math.Inf(1)
			}
			if gScoreTentative < gScoreNeighbor {
				cameFrom[e.To] = cur
				gScore[e.To] = gScoreTentative
				fScore := gScoreTentative + geo.Distance(neighbor.Location, end.Location)
				if item, inOpen := openSetMap[e.To]; inOpen {
					item.Priority = fScore
					heap.Fix(&openSet, item.Index)
				} else {
					item := &Item{Value: e.To, Priority: fScore}
					heap.Push(&openSet, item)
					openSetMap[e.To] = item
				}
			}
		}
	}
	return nil, ErrNoPath
}

func (p *Pathfinder) reconstructPath(cameFrom map[string]string, cur string) []*graph.Node {
	node, _ := p.g.Node(cur)
	pathBeforeReversed := []*graph.Node{node}
	for {
		from, ok := cameFrom[cur]
		if !ok {
			break
		}
		cur = from
		node, _ = p.g.Node(cur)
		pathBeforeReversed = append(pathBeforeReversed, node)
	}
	return lo.Reverse(pathBeforeReversed)
}

// isEdgeAllowed is the hard admissibility filter. Elevator-to-elevator edges
// always pass: they are the accessible alternative to stairs regardless of
// the stored flag.
func isEdgeAllowed(cfg PathfindingConfig, from, to *graph.Node, e graph.Edge) bool {
	elevator := from.Type == graph.NodeTypeElevator && to.Type == graph.NodeTypeElevator
	if elevator {
		return true
	}
	if cfg.PreferAccessible && !e.Accessible {
		return false
	}
	if cfg.AvoidStairs && math.Abs(e.ElevationChange) > STAIRS_ELEVATION_LIMIT {
		return false
	}
	return true
}

// calculateEdgeCost layers the preference penalties over the geodesic base
// distance. Costs never drop below the base distance, which keeps the
// geodesic heuristic admissible.
func calculateEdgeCost(cfg PathfindingConfig, e graph.Edge) float64 {
	cost := e.Distance
	if cfg.PreferOutdoor && e.Indoor {
		cost *= INDOOR_PENALTY
	}
	if !cfg.PreferOutdoor && !e.Indoor {
		cost *= OUTDOOR_PENALTY
	}
	climb := math.Abs(e.ElevationChange)
	cost += climb * CLIMB_COST_PER_METER
	if cfg.PreferAccessible && climb > ACCESSIBLE_ELEVATION_LIMIT {
		cost *= ACCESSIBLE_CLIMB_PENALTY
	}
	if cfg.PreferAccessible && !e.Accessible {
		// soft discouragement for edges that survive the hard filter
		// (the elevator exception)
		cost *= INACCESSIBLE_PENALTY
	}
	return cost
}

package graph

import (
	"fmt"

	"github.com/campusnav/routing/navigation/geo"
)

const (
	// assumed vertical distance between floors
	DefaultFloorHeight = 3.2
	// proximity below which points of different polylines are connected
	DefaultMergeThreshold = 15.0
)

// GraphBuilder assembles a CampusGraph from authored buildings, path nodes
// and polylines. All Add/Connect calls return the builder for chaining; the
// first error is kept and reported by Build.
type GraphBuilder struct {
	g              *CampusGraph
	floorHeight    float64
	mergeThreshold float64
	// polyline id -> node ids, for intersection detection at Build
	polylines map[string][]string
	err       error
}

func NewBuilder() *GraphBuilder {
	return &GraphBuilder{
		g:              newCampusGraph(),
		floorHeight:    DefaultFloorHeight,
		mergeThreshold: DefaultMergeThreshold,
		polylines:      make(map[string][]string),
	}
}

func (b *GraphBuilder) FloorHeight(h float64) *GraphBuilder {
	b.floorHeight = h
	return b
}

func (b *GraphBuilder) MergeThreshold(m float64) *GraphBuilder {
	b.mergeThreshold = m
	return b
}

// AddBuilding creates the building node and one entrance node per entrance
// location, named {buildingID}_entrance_{i}, each wired to the building with
// an indoor edge.
func (b *GraphBuilder) AddBuilding(bld Building) *GraphBuilder {
	b.addNode(&Node{
		ID:         bld.ID,
		Location:   bld.Location,
		Type:       NodeTypeBuilding,
		BuildingID: bld.ID,
	})
	for i, entrance := range bld.Entrances {
		entranceID := EntranceID(bld.ID, i)
		b.addNode(&Node{
			ID:         entranceID,
			Location:   entrance,
			Type:       NodeTypeEntrance,
			BuildingID: bld.ID,
		})
		b.connect(bld.ID, entranceID, true)
	}
	return b
}

func (b *GraphBuilder) AddPathNode(id string, loc geo.Location) *GraphBuilder {
	b.addNode(&Node{ID: id, Location: loc, Type: NodeTypePath})
	return b
}

// AddPolyline creates path nodes {id}_{i} for each point, connects
// consecutive points, and registers the polyline for intersection detection.
func (b *GraphBuilder) AddPolyline(id string, points []geo.Location) *GraphBuilder {
	ids := make([]string, len(points))
	for i, p := range points {
		ids[i] = fmt.Sprintf("%s_%d", id, i)
		b.AddPathNode(ids[i], p)
		if i > 0 {
			b.connect(ids[i-1], ids[i], true)
		}
	}
	b.polylines[id] = ids
	return b
}

// AddStairs creates one node per floor at {id}_floor_{n} and connects
// consecutive floors only. Stair edges are not accessible.
func (b *GraphBuilder) AddStairs(id string, loc geo.Location, buildingID string, floors int) *GraphBuilder {
	ids := b.addFloors(id, loc, buildingID, floors, NodeTypeStairs)
	for i := 1; i < len(ids); i++ {
		b.connect(ids[i-1], ids[i], false)
	}
	return b
}

// AddElevator creates one node per floor at {id}_floor_{n} and connects every
// floor pair. Elevator edges are always accessible.
func (b *GraphBuilder) AddElevator(id string, loc geo.Location, buildingID string, floors int) *GraphBuilder {
	ids := b.addFloors(id, loc, buildingID, floors, NodeTypeElevator)
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			b.connect(ids[i], ids[j], true)
		}
	}
	return b
}

func (b *GraphBuilder) addFloors(id string, loc geo.Location, buildingID string, floors int, t NodeType) []string {
	if floors < 2 {
		b.setErr(fmt.Errorf("%s %q needs at least 2 floors, got %d", t, id, floors))
		return nil
	}
	ids := make([]string, floors)
	for n := 0; n < floors; n++ {
		floorLoc := loc
		floorLoc.Altitude = loc.Altitude + float64(n)*b.floorHeight
		ids[n] = fmt.Sprintf("%s_floor_%d", id, n)
		b.addNode(&Node{
			ID:         ids[n],
			Location:   floorLoc,
			Type:       t,
			BuildingID: buildingID,
			Floor:      n,
		})
	}
	return ids
}

// ConnectPath adds a symmetric edge between two existing nodes with the
// geodesic distance as base cost.
func (b *GraphBuilder) ConnectPath(a, c string, accessible bool) *GraphBuilder {
	b.connect(a, c, accessible)
	return b
}

// ConnectBuildingToPath wires entrance {buildingID}_entrance_{entranceIndex}
// to a path node.
func (b *GraphBuilder) ConnectBuildingToPath(buildingID string, entranceIndex int, pathNodeID string) *GraphBuilder {
	b.connect(EntranceID(buildingID, entranceIndex), pathNodeID, true)
	return b
}

// Build runs intersection detection over the registered polylines and
// returns the finished graph. The graph is immutable from here apart from
// accessibility toggles.
func (b *GraphBuilder) Build() (*CampusGraph, error) {
	if b.err != nil {
		return nil, b.err
	}
	b.connectIntersections()
	return b.g, nil
}

// connectIntersections inserts an edge between every pair of points that
// belong to different polylines and lie within the merge threshold. The scan
// is O(n^2) over all polyline points, fine for campus-scale data (low
// hundreds of points).
func (b *GraphBuilder) connectIntersections() {
	ids := make([]string, 0, len(b.polylines))
	for id := range b.polylines {
		ids = append(ids, id)
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			for _, a := range b.polylines[ids[i]] {
				for _, c := range b.polylines[ids[j]] {
					na := b.g.nodes[a]
					nc := b.g.nodes[c]
					if geo.Distance(na.Location, nc.Location) <= b.mergeThreshold && !b.hasEdge(a, c) {
						b.connect(a, c, true)
					}
				}
			}
		}
	}
}

func (b *GraphBuilder) addNode(n *Node) {
	if _, ok := b.g.nodes[n.ID]; ok {
		b.setErr(fmt.Errorf("duplicate node id %q", n.ID))
		return
	}
	b.g.nodes[n.ID] = n
}

func (b *GraphBuilder) connect(from, to string, accessible bool) {
	a, ok := b.g.nodes[from]
	if !ok {
		b.setErr(fmt.Errorf("connect %s -> %s: %w: %s", from, to, ErrNodeNotFound, from))
		return
	}
	c, ok := b.g.nodes[to]
	if !ok {
		b.setErr(fmt.Errorf("connect %s -> %s: %w: %s", from, to, ErrNodeNotFound, to))
		return
	}
	distance := geo.Distance(a.Location, c.Location)
	elevation := c.Location.Altitude - a.Location.Altitude
	if distance == 0 && elevation != 0 {
		// vertical connection (stairs, elevator shaft)
		distance = abs(elevation)
	}
	indoor := a.BuildingID != "" && a.BuildingID == c.BuildingID
	b.g.edges[from] = append(b.g.edges[from], Edge{
		To: to, Distance: distance, Accessible: accessible, Indoor: indoor, ElevationChange: elevation,
	})
	b.g.edges[to] = append(b.g.edges[to], Edge{
		To: from, Distance: distance, Accessible: accessible, Indoor: indoor, ElevationChange: -elevation,
	})
}

func (b *GraphBuilder) hasEdge(from, to string) bool {
	for _, e := range b.g.edges[from] {
		if e.To == to {
			return true
		}
	}
	return false
}

func (b *GraphBuilder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// EntranceID is the node id of the i-th entrance of a building.
func EntranceID(buildingID string, index int) string {
	return fmt.Sprintf("%s_entrance_%d", buildingID, index)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusnav/routing/navigation/geo"
	"github.com/campusnav/routing/navigation/graph"
)

func loc(lat, lon float64) geo.Location {
	return geo.Location{Lat: lat, Lon: lon}
}

func pathNode(id string, l geo.Location) *graph.Node {
	return &graph.Node{ID: id, Location: l, Type: graph.NodeTypePath}
}

func TestAssembleStraightRoute(t *testing.T) {
	path := []*graph.Node{
		pathNode("a", loc(9.8500, 122.8850)),
		pathNode("b", loc(9.8510, 122.8850)),
		pathNode("c", loc(9.8520, 122.8850)),
	}
	r := AssembleRoute(path, path[0].Location, path[2].Location, 1.4)

	assert.Len(t, r.Waypoints, 3)
	assert.Len(t, r.Steps, 2)
	assert.Equal(t, len(r.Waypoints), len(r.Steps)+1)

	assert.Equal(t, WaypointStart, r.Waypoints[0].Type)
	assert.Equal(t, WaypointContinueStraight, r.Waypoints[1].Type)
	assert.Equal(t, WaypointEnd, r.Waypoints[2].Type)

	assert.Equal(t, DirectionForward, r.Steps[0].Direction)
	assert.Equal(t, DirectionArrive, r.Steps[1].Direction)

	// ~222 m of straight walking, never less than the direct geodesic
	assert.InDelta(t, 222, r.TotalDistance, 3)
	assert.GreaterOrEqual(t, r.TotalDistance, geo.Distance(r.Origin, r.Destination)-1e-9)
	assert.InDelta(t, r.TotalDistance/1.4, r.EstimatedTime, 1e-9)
	assert.NotEmpty(t, r.ID)
}

func TestAssembleTurns(t *testing.T) {
	// north, then a 90 degree left to the west
	path := []*graph.Node{
		pathNode("a", loc(9.8500, 122.8850)),
		pathNode("b", loc(9.8510, 122.8850)),
		pathNode("c", loc(9.8510, 122.8840)),
	}
	r := AssembleRoute(path, path[0].Location, path[2].Location, 1.4)

	assert.Equal(t, WaypointTurnLeft, r.Waypoints[1].Type)
	assert.Equal(t, DirectionLeft, r.Steps[0].Direction)
	assert.Contains(t, r.Waypoints[1].Instruction, "Turn left")

	// and the mirror image turns right
	path[2] = pathNode("c", loc(9.8510, 122.8860))
	r = AssembleRoute(path, path[0].Location, path[2].Location, 1.4)
	assert.Equal(t, WaypointTurnRight, r.Waypoints[1].Type)
	assert.Equal(t, DirectionRight, r.Steps[0].Direction)
}

func TestAssembleSlightAndSharpTurns(t *testing.T) {
	// ~30 degree right is a slight right
	path := []*graph.Node{
		pathNode("a", loc(9.8500, 122.88500)),
		pathNode("b", loc(9.8510, 122.88500)),
		pathNode("c", loc(9.8518, 122.88547)),
	}
	r := AssembleRoute(path, path[0].Location, path[2].Location, 1.4)
	assert.Equal(t, WaypointTurnRight, r.Waypoints[1].Type)
	assert.Equal(t, DirectionSlightRight, r.Steps[0].Direction)

	// ~135 degree right is a sharp right
	path[2] = pathNode("c", loc(9.8503, 122.88570))
	r = AssembleRoute(path, path[0].Location, path[2].Location, 1.4)
	assert.Equal(t, DirectionSharpRight, r.Steps[0].Direction)
}

func TestAssembleBuildingTransitions(t *testing.T) {
	entrance := &graph.Node{
		ID: "lib_entrance_0", Location: loc(9.8510, 122.8850),
		Type: graph.NodeTypeEntrance, BuildingID: "lib",
	}
	building := &graph.Node{
		ID: "lib", Location: loc(9.8512, 122.8850),
		Type: graph.NodeTypeBuilding, BuildingID: "lib",
	}
	path := []*graph.Node{
		pathNode("p", loc(9.8500, 122.8850)),
		entrance,
		building,
	}
	r := AssembleRoute(path, path[0].Location, path[2].Location, 1.4)

	assert.Equal(t, WaypointEnterBuilding, r.Waypoints[1].Type)
	assert.Contains(t, r.Waypoints[1].Instruction, "Enter lib")
	// the entrance-to-building leg is indoor
	assert.True(t, r.Steps[1].Indoor)
	assert.False(t, r.Steps[0].Indoor)

	// leaving again produces an exit waypoint
	out := []*graph.Node{building, entrance, pathNode("p", loc(9.8500, 122.8850))}
	// entrance shares the building id, the exit happens on the path node
	r = AssembleRoute(append(out, pathNode("q", loc(9.8490, 122.8850))), building.Location, loc(9.8490, 122.8850), 1.4)
	assert.Equal(t, WaypointExitBuilding, r.Waypoints[2].Type)
}

func TestAssembleStairsAndElevator(t *testing.T) {
	up := loc(9.8500, 122.8850)
	up.Altitude = 3.2
	stairs0 := &graph.Node{ID: "s_floor_0", Location: loc(9.8500, 122.8850), Type: graph.NodeTypeStairs, BuildingID: "hall"}
	stairs1 := &graph.Node{ID: "s_floor_1", Location: up, Type: graph.NodeTypeStairs, BuildingID: "hall", Floor: 1}
	hallway := &graph.Node{ID: "h", Location: up, Type: graph.NodeTypeIndoorJunction, BuildingID: "hall", Floor: 1}
	path := []*graph.Node{
		&graph.Node{ID: "lobby", Location: loc(9.8499, 122.8850), Type: graph.NodeTypeIndoorJunction, BuildingID: "hall"},
		stairs0,
		stairs1,
		hallway,
	}
	r := AssembleRoute(path, path[0].Location, hallway.Location, 1.4)

	assert.Equal(t, WaypointStairsUp, r.Waypoints[1].Type)
	assert.Contains(t, r.Waypoints[1].Instruction, "stairs up")
	// the vertical leg is reported by its climb height
	assert.InDelta(t, 3.2, r.Steps[1].Distance, 1e-9)
}

func TestDirectRoute(t *testing.T) {
	a := loc(9.8500, 122.8850)
	b := loc(9.8501, 122.8850)
	r := DirectRoute(a, b, 1.4)

	assert.Len(t, r.Waypoints, 2)
	assert.Len(t, r.Steps, 1)
	assert.Equal(t, WaypointStart, r.Waypoints[0].Type)
	assert.Equal(t, WaypointEnd, r.Waypoints[1].Type)
	assert.Equal(t, DirectionArrive, r.Steps[0].Direction)
	assert.InDelta(t, geo.Distance(a, b), r.TotalDistance, 1e-9)
}

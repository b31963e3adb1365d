package navigation

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/campusnav/routing/navigation/geo"
	"github.com/campusnav/routing/navigation/graph"
)

const (
	// default pedestrian speed in m/s
	DefaultWalkingSpeed = 1.4

	// turn classification thresholds in degrees
	StraightThreshold = 20.0
	SlightThreshold   = 45.0
	SharpThreshold    = 120.0
	UTurnThreshold    = 150.0
)

// AssembleRoute turns a node path from the pathfinder into a full Route:
// typed waypoints, instructed steps and aggregate distance/time. The
// reported distance is the sum of consecutive geodesic distances, not the
// (penalty-biased) search cost, so time estimates reflect real walking
// distance. Produces len(steps) == len(waypoints)-1.
func AssembleRoute(path []*graph.Node, origin, destination geo.Location, speed float64) *Route {
	if speed <= 0 {
		speed = DefaultWalkingSpeed
	}
	if len(path) < 2 {
		return DirectRoute(origin, destination, speed)
	}

	waypoints := make([]Waypoint, len(path))
	angles := make([]float64, len(path))
	for i, node := range path {
		var angle float64
		if i > 0 && i < len(path)-1 {
			angle = geo.TurnAngle(path[i-1].Location, node.Location, path[i+1].Location)
		}
		angles[i] = angle
		t := waypointType(path, i, angle)
		waypoints[i] = Waypoint{
			Location:    node.Location,
			Type:        t,
			Instruction: instruction(path, i, t),
		}
	}

	steps := make([]NavigationStep, 0, len(path)-1)
	total := 0.0
	for i := 0; i < len(path)-1; i++ {
		a, b := path[i], path[i+1]
		d := geo.Distance(a.Location, b.Location)
		if d == 0 {
			// vertical leg
			d = math.Abs(b.Location.Altitude - a.Location.Altitude)
		}
		total += d
		steps = append(steps, NavigationStep{
			Instruction: waypoints[i+1].Instruction,
			Distance:    d,
			Direction:   stepDirection(waypoints[i+1].Type, angles[i+1]),
			Start:       a.Location,
			End:         b.Location,
			Indoor:      a.BuildingID != "" && a.BuildingID == b.BuildingID,
		})
	}

	return &Route{
		ID:            uuid.NewString(),
		Origin:        origin,
		Destination:   destination,
		Waypoints:     waypoints,
		Steps:         steps,
		TotalDistance: total,
		EstimatedTime: total / speed,
	}
}

// DirectRoute synthesizes a two-waypoint route over the raw geodesic
// distance, used when start and end resolve to the same graph node.
func DirectRoute(origin, destination geo.Location, speed float64) *Route {
	if speed <= 0 {
		speed = DefaultWalkingSpeed
	}
	d := geo.Distance(origin, destination)
	return &Route{
		ID:          uuid.NewString(),
		Origin:      origin,
		Destination: destination,
		Waypoints: []Waypoint{
			{Location: origin, Type: WaypointStart, Instruction: fmt.Sprintf("Head to your destination, %d m away", round(d))},
			{Location: destination, Type: WaypointEnd, Instruction: "You have arrived at your destination"},
		},
		Steps: []NavigationStep{{
			Instruction: "You have arrived at your destination",
			Distance:    d,
			Direction:   DirectionArrive,
			Start:       origin,
			End:         destination,
		}},
		TotalDistance: d,
		EstimatedTime: d / speed,
	}
}

func waypointType(path []*graph.Node, i int, angle float64) WaypointType {
	if i == 0 {
		return WaypointStart
	}
	if i == len(path)-1 {
		return WaypointEnd
	}
	prev, curr, next := path[i-1], path[i], path[i+1]
	// building transitions beat everything else
	if curr.BuildingID != "" && prev.BuildingID != curr.BuildingID {
		return WaypointEnterBuilding
	}
	if curr.BuildingID == "" && prev.BuildingID != "" {
		return WaypointExitBuilding
	}
	switch curr.Type {
	case graph.NodeTypeStairs:
		if next.Location.Altitude < curr.Location.Altitude {
			return WaypointStairsDown
		}
		return WaypointStairsUp
	case graph.NodeTypeElevator:
		return WaypointElevator
	}
	if math.Abs(angle) <= StraightThreshold {
		return WaypointContinueStraight
	}
	if angle < 0 {
		return WaypointTurnLeft
	}
	return WaypointTurnRight
}

func instruction(path []*graph.Node, i int, t WaypointType) string {
	var next float64
	if i < len(path)-1 {
		next = geo.Distance(path[i].Location, path[i+1].Location)
	}
	switch t {
	case WaypointStart:
		return fmt.Sprintf("Head out and continue for %d m", round(next))
	case WaypointEnd:
		return "You have arrived at your destination"
	case WaypointTurnLeft:
		return fmt.Sprintf("Turn left and continue for %d m", round(next))
	case WaypointTurnRight:
		return fmt.Sprintf("Turn right and continue for %d m", round(next))
	case WaypointContinueStraight:
		return fmt.Sprintf("Continue straight for %d m", round(next))
	case WaypointEnterBuilding:
		return fmt.Sprintf("Enter %s", path[i].BuildingID)
	case WaypointExitBuilding:
		return fmt.Sprintf("Exit %s", path[i-1].BuildingID)
	case WaypointStairsUp:
		return fmt.Sprintf("Take the stairs up to floor %d", path[i+1].Floor)
	case WaypointStairsDown:
		return fmt.Sprintf("Take the stairs down to floor %d", path[i+1].Floor)
	case WaypointElevator:
		return fmt.Sprintf("Take the elevator to floor %d", path[i+1].Floor)
	default:
		return ""
	}
}

// stepDirection maps the waypoint at the end of a leg to the step direction,
// refining turns by the turn angle magnitude.
func stepDirection(t WaypointType, angle float64) Direction {
	switch t {
	case WaypointEnd:
		return DirectionArrive
	case WaypointTurnLeft, WaypointTurnRight:
		mag := math.Abs(angle)
		left := angle < 0
		switch {
		case mag > UTurnThreshold:
			return DirectionUTurn
		case mag >= SharpThreshold:
			if left {
				return DirectionSharpLeft
			}
			return DirectionSharpRight
		case mag <= SlightThreshold:
			if left {
				return DirectionSlightLeft
			}
			return DirectionSlightRight
		default:
			if left {
				return DirectionLeft
			}
			return DirectionRight
		}
	default:
		return DirectionForward
	}
}

func round(d float64) int {
	return int(math.Round(d))
}

package navigation

import (
	"fmt"

	"github.com/campusnav/routing/navigation/geo"
)

// WaypointType is the semantic role of a waypoint along a route.
type WaypointType int

const (
	WaypointStart WaypointType = iota
	WaypointEnd
	WaypointTurnLeft
	WaypointTurnRight
	WaypointContinueStraight
	WaypointEnterBuilding
	WaypointExitBuilding
	WaypointStairsUp
	WaypointStairsDown
	WaypointElevator
	WaypointLandmark
)

var waypointTypeNames = map[WaypointType]string{
	WaypointStart:            "start",
	WaypointEnd:              "end",
	WaypointTurnLeft:         "turn_left",
	WaypointTurnRight:        "turn_right",
	WaypointContinueStraight: "continue_straight",
	WaypointEnterBuilding:    "enter_building",
	WaypointExitBuilding:     "exit_building",
	WaypointStairsUp:         "stairs_up",
	WaypointStairsDown:       "stairs_down",
	WaypointElevator:         "elevator",
	WaypointLandmark:         "landmark",
}

func (t WaypointType) String() string {
	if s, ok := waypointTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("waypoint_type(%d)", int(t))
}

func (t WaypointType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// Direction is the compass-relative instruction of one navigation step.
type Direction int

const (
	DirectionForward Direction = iota
	DirectionLeft
	DirectionSlightLeft
	DirectionSharpLeft
	DirectionRight
	DirectionSlightRight
	DirectionSharpRight
	DirectionUTurn
	DirectionArrive
)

var directionNames = map[Direction]string{
	DirectionForward:     "forward",
	DirectionLeft:        "left",
	DirectionSlightLeft:  "slight_left",
	DirectionSharpLeft:   "sharp_left",
	DirectionRight:       "right",
	DirectionSlightRight: "slight_right",
	DirectionSharpRight:  "sharp_right",
	DirectionUTurn:       "u_turn",
	DirectionArrive:      "arrive",
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

func (d Direction) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// Waypoint is a point of the route with its semantic type and an optional
// spoken/displayed instruction.
type Waypoint struct {
	Location    geo.Location `json:"location"`
	Type        WaypointType `json:"type"`
	Instruction string       `json:"instruction,omitempty"`
}

// NavigationStep is one leg of the route between consecutive waypoints.
type NavigationStep struct {
	Instruction string       `json:"instruction"`
	Distance    float64      `json:"distance"`
	Direction   Direction    `json:"direction"`
	Start       geo.Location `json:"start"`
	End         geo.Location `json:"end"`
	Indoor      bool         `json:"indoor"`
}

// Route is the sole data contract handed to rendering, voice and AR
// consumers. Immutable after construction.
type Route struct {
	ID            string           `json:"id"`
	Origin        geo.Location     `json:"origin"`
	Destination   geo.Location     `json:"destination"`
	Waypoints     []Waypoint       `json:"waypoints"`
	Steps         []NavigationStep `json:"steps"`
	TotalDistance float64          `json:"totalDistance"`
	EstimatedTime float64          `json:"estimatedTime"`
}

// RoutingOptions are the caller-facing routing preferences.
type RoutingOptions struct {
	PreferAccessible bool    `json:"preferAccessible"`
	PreferOutdoor    bool    `json:"preferOutdoor"`
	AvoidStairs      bool    `json:"avoidStairs"`
	WalkingSpeed     float64 `json:"walkingSpeed"` // m/s
}

func DefaultOptions() RoutingOptions {
	return RoutingOptions{PreferOutdoor: true, WalkingSpeed: DefaultWalkingSpeed}
}

// RouteResult is the three-way outcome of every routing query. No route is
// ever represented as a nil or empty Route; absence is always NoRouteFound
// or RouteError. Consumers must type-switch over all three variants.
type RouteResult interface {
	routeResult()
}

// Success carries a complete route.
type Success struct {
	Route *Route
}

// NoRouteFound means the graph was searched and no path exists (or the
// endpoints could not be resolved to graph nodes). Recoverable by relaxing
// options or falling back to external routing.
type NoRouteFound struct {
	Reason string
}

// RouteError means the query could not be computed: graph not built, a
// collaborator failed, or an unexpected panic converted at the boundary.
type RouteError struct {
	Reason string
}

func (Success) routeResult()      {}
func (NoRouteFound) routeResult() {}
func (RouteError) routeResult()   {}

package navigation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/campusnav/routing/navigation/geo"
)

var ErrExternalRouting = errors.New("external routing failed")

// ExternalRouter computes the off-campus legs of hybrid routes. One blocking
// call per leg; implementations must honor the context deadline.
type ExternalRouter interface {
	Route(ctx context.Context, start, end geo.Location, walkingSpeed float64) (*Route, error)
}

// OSRMRouter adapts an OSRM-compatible walking profile to the Route model.
type OSRMRouter struct {
	baseURL string
	client  *http.Client
}

func NewOSRMRouter(baseURL string, timeout time.Duration) *OSRMRouter {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OSRMRouter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type osrmResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Distance float64   `json:"distance"`
	Duration float64   `json:"duration"`
	Legs     []osrmLeg `json:"legs"`
}

type osrmLeg struct {
	Steps []osrmStep `json:"steps"`
}

type osrmStep struct {
	Distance float64      `json:"distance"`
	Duration float64      `json:"duration"`
	Name     string       `json:"name"`
	Maneuver osrmManeuver `json:"maneuver"`
}

type osrmManeuver struct {
	Location [2]float64 `json:"location"` // lon, lat
	Type     string     `json:"type"`
	Modifier string     `json:"modifier"`
}

func (r *OSRMRouter) Route(ctx context.Context, start, end geo.Location, walkingSpeed float64) (*Route, error) {
	url := fmt.Sprintf("%s/%f,%f;%f,%f?overview=false&steps=true",
		r.baseURL, start.Lon, start.Lat, end.Lon, end.Lat)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalRouting, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrExternalRouting, resp.StatusCode)
	}
	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalRouting, err)
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return nil, fmt.Errorf("%w: code %q", ErrExternalRouting, body.Code)
	}
	return convertOSRMRoute(body.Routes[0], start, end), nil
}

func convertOSRMRoute(osrm osrmRoute, start, end geo.Location) *Route {
	// flatten legs into one step list
	var raw []osrmStep
	for _, leg := range osrm.Legs {
		raw = append(raw, leg.Steps...)
	}

	waypoints := make([]Waypoint, 0, len(raw)+1)
	steps := make([]NavigationStep, 0, len(raw))
	for i, s := range raw {
		from := geo.Location{Lat: s.Maneuver.Location[1], Lon: s.Maneuver.Location[0]}
		to := end
		if i+1 < len(raw) {
			next := raw[i+1].Maneuver
			to = geo.Location{Lat: next.Location[1], Lon: next.Location[0]}
		}
		dir := osrmDirection(s.Maneuver)
		waypoints = append(waypoints, Waypoint{
			Location:    from,
			Type:        waypointForDirection(dir, i == 0),
			Instruction: osrmInstruction(s, dir),
		})
		steps = append(steps, NavigationStep{
			Instruction: osrmInstruction(s, dir),
			Distance:    s.Distance,
			Direction:   dir,
			Start:       from,
			End:         to,
		})
	}
	waypoints = append(waypoints, Waypoint{
		Location:    end,
		Type:        WaypointEnd,
		Instruction: "You have arrived at your destination",
	})
	if len(waypoints) == 1 {
		// routes without steps still get a start marker
		waypoints = append([]Waypoint{{Location: start, Type: WaypointStart}}, waypoints...)
	}

	return &Route{
		ID:            uuid.NewString(),
		Origin:        start,
		Destination:   end,
		Waypoints:     waypoints,
		Steps:         steps,
		TotalDistance: osrm.Distance,
		EstimatedTime: osrm.Duration,
	}
}

func osrmDirection(m osrmManeuver) Direction {
	if m.Type == "arrive" {
		return DirectionArrive
	}
	switch m.Modifier {
	case "left":
		return DirectionLeft
	case "slight left":
		return DirectionSlightLeft
	case "sharp left":
		return DirectionSharpLeft
	case "right":
		return DirectionRight
	case "slight right":
		return DirectionSlightRight
	case "sharp right":
		return DirectionSharpRight
	case "uturn":
		return DirectionUTurn
	default:
		return DirectionForward
	}
}

func waypointForDirection(d Direction, first bool) WaypointType {
	if first {
		return WaypointStart
	}
	switch d {
	case DirectionLeft, DirectionSlightLeft, DirectionSharpLeft:
		return WaypointTurnLeft
	case DirectionRight, DirectionSlightRight, DirectionSharpRight:
		return WaypointTurnRight
	case DirectionArrive:
		return WaypointEnd
	default:
		return WaypointContinueStraight
	}
}

func osrmInstruction(s osrmStep, d Direction) string {
	verb := map[Direction]string{
		DirectionForward:     "Continue straight",
		DirectionLeft:        "Turn left",
		DirectionSlightLeft:  "Turn slightly left",
		DirectionSharpLeft:   "Turn sharply left",
		DirectionRight:       "Turn right",
		DirectionSlightRight: "Turn slightly right",
		DirectionSharpRight:  "Turn sharply right",
		DirectionUTurn:       "Make a U-turn",
		DirectionArrive:      "Arrive at your destination",
	}[d]
	if s.Name != "" && d != DirectionArrive {
		return fmt.Sprintf("%s onto %s", verb, s.Name)
	}
	return verb
}

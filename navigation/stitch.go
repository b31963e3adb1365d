package navigation

import (
	"github.com/google/uuid"

	"github.com/campusnav/routing/navigation/geo"
)

// maximum distance in meters between two waypoints for them to be treated as
// the same physical point at a stitch seam
const DefaultSeamThreshold = 18.0

// Stitch merges two partial routes into one continuous route. Short-circuits
// to whichever leg is not a Success. When leg2's first waypoint coincides
// with leg1's last (within the seam threshold), the duplicate is dropped;
// steps are concatenated unconditionally and totals are summed.
//
// Stitched routes keep only the step sequence and totals consistent; the
// waypoints==steps+1 invariant of assembled routes is not guaranteed here.
func Stitch(leg1, leg2 RouteResult, seamThreshold float64) RouteResult {
	if seamThreshold <= 0 {
		seamThreshold = DefaultSeamThreshold
	}
	s1, ok := leg1.(Success)
	if !ok {
		return leg1
	}
	s2, ok := leg2.(Success)
	if !ok {
		return leg2
	}
	r1, r2 := s1.Route, s2.Route

	waypoints := make([]Waypoint, 0, len(r1.Waypoints)+len(r2.Waypoints))
	waypoints = append(waypoints, r1.Waypoints...)
	tail := r2.Waypoints
	if len(r1.Waypoints) > 0 && len(tail) > 0 {
		seam := geo.Distance(r1.Waypoints[len(r1.Waypoints)-1].Location, tail[0].Location)
		if seam <= seamThreshold {
			tail = tail[1:]
		}
	}
	waypoints = append(waypoints, tail...)

	steps := make([]NavigationStep, 0, len(r1.Steps)+len(r2.Steps))
	steps = append(steps, r1.Steps...)
	steps = append(steps, r2.Steps...)

	return Success{Route: &Route{
		ID:            uuid.NewString(),
		Origin:        r1.Origin,
		Destination:   r2.Destination,
		Waypoints:     waypoints,
		Steps:         steps,
		TotalDistance: r1.TotalDistance + r2.TotalDistance,
		EstimatedTime: r1.EstimatedTime + r2.EstimatedTime,
	}}
}

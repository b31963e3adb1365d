package navigation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const osrmBody = `{
	"code": "Ok",
	"routes": [{
		"distance": 350.5,
		"duration": 250.4,
		"legs": [{
			"steps": [
				{"distance": 200, "duration": 143, "name": "University Ave",
				 "maneuver": {"location": [122.8950, 9.8600], "type": "depart", "modifier": ""}},
				{"distance": 150.5, "duration": 107.4, "name": "Campus Rd",
				 "maneuver": {"location": [122.8940, 9.8610], "type": "turn", "modifier": "left"}},
				{"distance": 0, "duration": 0, "name": "",
				 "maneuver": {"location": [122.8931, 9.8574], "type": "arrive", "modifier": ""}}
			]
		}]
	}]
}`

func TestOSRMRoute(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		w.Write([]byte(osrmBody))
	}))
	defer srv.Close()

	router := NewOSRMRouter(srv.URL, 0)
	start := loc(9.8600, 122.8950)
	end := loc(9.8574, 122.8931)
	route, err := router.Route(context.Background(), start, end, 1.4)
	assert.NoError(t, err)

	// lon,lat;lon,lat coordinate order with step geometry requested
	assert.Contains(t, gotPath, "122.895000,9.860000;122.893100,9.857400")
	assert.Contains(t, gotPath, "steps=true")

	assert.Equal(t, start, route.Origin)
	assert.Equal(t, end, route.Destination)
	assert.InDelta(t, 350.5, route.TotalDistance, 1e-9)
	assert.InDelta(t, 250.4, route.EstimatedTime, 1e-9)

	assert.Equal(t, len(route.Waypoints), len(route.Steps)+1)
	assert.Equal(t, WaypointStart, route.Waypoints[0].Type)
	assert.Equal(t, WaypointEnd, route.Waypoints[len(route.Waypoints)-1].Type)

	assert.Equal(t, DirectionForward, route.Steps[0].Direction)
	assert.Contains(t, route.Steps[0].Instruction, "University Ave")
	assert.Equal(t, DirectionLeft, route.Steps[1].Direction)
	assert.Equal(t, WaypointTurnLeft, route.Waypoints[1].Type)
	assert.Equal(t, DirectionArrive, route.Steps[2].Direction)
}

func TestOSRMRouteNoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer srv.Close()

	router := NewOSRMRouter(srv.URL, 0)
	_, err := router.Route(context.Background(), loc(9.86, 122.895), loc(9.857, 122.893), 1.4)
	assert.ErrorIs(t, err, ErrExternalRouting)
}

func TestOSRMRouteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	router := NewOSRMRouter(srv.URL, 0)
	_, err := router.Route(context.Background(), loc(9.86, 122.895), loc(9.857, 122.893), 1.4)
	assert.ErrorIs(t, err, ErrExternalRouting)
}

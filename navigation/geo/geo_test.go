package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusnav/routing/navigation/geo"
)

func TestDistance(t *testing.T) {
	a := geo.Location{Lat: 9.8500, Lon: 122.8850}
	b := geo.Location{Lat: 9.8590, Lon: 122.8850}

	// 0.009 degrees of latitude is about one kilometer
	d := geo.Distance(a, b)
	assert.InDelta(t, 1000.0, d, 5.0)

	// symmetric and zero on itself
	assert.Equal(t, d, geo.Distance(b, a))
	assert.Equal(t, 0.0, geo.Distance(a, a))
}

func TestDistanceKnownCities(t *testing.T) {
	paris := geo.Location{Lat: 48.8566, Lon: 2.3522}
	london := geo.Location{Lat: 51.5074, Lon: -0.1278}
	assert.InDelta(t, 343_500, geo.Distance(paris, london), 1_500)
}

func TestBearing(t *testing.T) {
	origin := geo.Location{Lat: 9.8500, Lon: 122.8850}
	north := geo.Location{Lat: 9.8510, Lon: 122.8850}
	east := geo.Location{Lat: 9.8500, Lon: 122.8860}
	south := geo.Location{Lat: 9.8490, Lon: 122.8850}
	west := geo.Location{Lat: 9.8500, Lon: 122.8840}

	assert.InDelta(t, 0.0, geo.Bearing(origin, north), 0.1)
	assert.InDelta(t, 90.0, geo.Bearing(origin, east), 0.1)
	assert.InDelta(t, 180.0, geo.Bearing(origin, south), 0.1)
	assert.InDelta(t, 270.0, geo.Bearing(origin, west), 0.1)
}

func TestTurnAngle(t *testing.T) {
	a := geo.Location{Lat: 9.8500, Lon: 122.8850}
	b := geo.Location{Lat: 9.8510, Lon: 122.8850}

	// continuing north is no turn
	straight := geo.Location{Lat: 9.8520, Lon: 122.8850}
	assert.InDelta(t, 0.0, geo.TurnAngle(a, b, straight), 0.5)

	// west after heading north is a 90 degree left turn
	left := geo.Location{Lat: 9.8510, Lon: 122.8840}
	assert.InDelta(t, -90.0, geo.TurnAngle(a, b, left), 0.5)

	// east after heading north is a 90 degree right turn
	right := geo.Location{Lat: 9.8510, Lon: 122.8860}
	assert.InDelta(t, 90.0, geo.TurnAngle(a, b, right), 0.5)

	// doubling back normalizes into (-180, 180]
	back := a
	angle := geo.TurnAngle(a, b, back)
	assert.LessOrEqual(t, angle, 180.0)
	assert.Greater(t, angle, -180.0)
	assert.InDelta(t, 180.0, angle, 0.5)
}

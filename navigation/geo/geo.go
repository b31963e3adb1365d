// Package geo provides WGS-84 geodesy primitives for the campus navigation
// engine: great-circle distance, initial bearing and signed turn angles.
package geo

import "math"

// Mean Earth radius in meters.
const EarthRadiusM = 6_371_000.0

// Location is an immutable WGS-84 point. Identity is by construction context
// (two locations are never merged because they are geometrically close).
type Location struct {
	ID       string  `json:"id,omitempty" bson:"id,omitempty"`
	Lat      float64 `json:"lat" bson:"lat"`
	Lon      float64 `json:"lon" bson:"lon"`
	Altitude float64 `json:"altitude,omitempty" bson:"altitude,omitempty"`
	Accuracy float64 `json:"accuracy,omitempty" bson:"accuracy,omitempty"`
}

func NewLocation(id string, lat, lon float64) Location {
	return Location{ID: id, Lat: lat, Lon: lon}
}

// Distance returns the Haversine great-circle distance between a and b in
// meters. Symmetric, zero for identical coordinates.
func Distance(a, b Location) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)
	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*sinLon*sinLon
	return 2 * EarthRadiusM * math.Asin(math.Sqrt(h))
}

// Bearing returns the initial compass bearing from one point to another in
// degrees [0, 360).
func Bearing(from, to Location) float64 {
	lat1 := radians(from.Lat)
	lat2 := radians(to.Lat)
	dLon := radians(to.Lon - from.Lon)
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	deg := degrees(math.Atan2(y, x))
	return math.Mod(deg+360, 360)
}

// TurnAngle returns the signed change of heading at curr when walking
// prev -> curr -> next, normalized to (-180, 180]. Negative is a left turn,
// positive a right turn.
func TurnAngle(prev, curr, next Location) float64 {
	in := Bearing(prev, curr)
	out := Bearing(curr, next)
	angle := out - in
	for angle > 180 {
		angle -= 360
	}
	for angle <= -180 {
		angle += 360
	}
	return angle
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

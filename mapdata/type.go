// Package mapdata defines the authored campus map document (buildings,
// paths, stairs, elevators) and loads it from a JSON file or a MongoDB
// collection, optionally through a local cache directory.
package mapdata

import (
	"github.com/samber/lo"

	"github.com/campusnav/routing/navigation/geo"
	"github.com/campusnav/routing/navigation/graph"
)

type Point struct {
	Lat      float64 `json:"lat" bson:"lat"`
	Lon      float64 `json:"lon" bson:"lon"`
	Altitude float64 `json:"altitude,omitempty" bson:"altitude,omitempty"`
}

func (p Point) location(id string) geo.Location {
	return geo.Location{ID: id, Lat: p.Lat, Lon: p.Lon, Altitude: p.Altitude}
}

type Building struct {
	ID        string  `json:"id" bson:"id"`
	Name      string  `json:"name" bson:"name"`
	Location  Point   `json:"location" bson:"location"`
	Entrances []Point `json:"entrances" bson:"entrances"`
}

type PathNode struct {
	ID       string `json:"id" bson:"id"`
	Location Point  `json:"location" bson:"location"`
}

// Connection joins two authored nodes. Accessible defaults to true when
// omitted.
type Connection struct {
	From       string `json:"from" bson:"from"`
	To         string `json:"to" bson:"to"`
	Accessible *bool  `json:"accessible,omitempty" bson:"accessible,omitempty"`
}

// Polyline is an independently authored path segment; intersections between
// polylines are detected by proximity at build time.
type Polyline struct {
	ID     string  `json:"id" bson:"id"`
	Points []Point `json:"points" bson:"points"`
}

// Lift describes a multi-floor vertical connector (stairs or elevator).
type Lift struct {
	ID         string `json:"id" bson:"id"`
	Location   Point  `json:"location" bson:"location"`
	BuildingID string `json:"buildingId" bson:"buildingId"`
	Floors     int    `json:"floors" bson:"floors"`
}

// EntranceLink wires a building entrance to a path node.
type EntranceLink struct {
	BuildingID string `json:"buildingId" bson:"buildingId"`
	Entrance   int    `json:"entrance" bson:"entrance"`
	PathNodeID string `json:"pathNodeId" bson:"pathNodeId"`
}

// Document is the full campus map record as stored on disk or in Mongo.
type Document struct {
	Name          string         `json:"name" bson:"name"`
	Buildings     []Building     `json:"buildings" bson:"buildings"`
	PathNodes     []PathNode     `json:"pathNodes" bson:"pathNodes"`
	Connections   []Connection   `json:"connections" bson:"connections"`
	Polylines     []Polyline     `json:"polylines,omitempty" bson:"polylines,omitempty"`
	Stairs        []Lift         `json:"stairs,omitempty" bson:"stairs,omitempty"`
	Elevators     []Lift         `json:"elevators,omitempty" bson:"elevators,omitempty"`
	EntranceLinks []EntranceLink `json:"entranceLinks,omitempty" bson:"entranceLinks,omitempty"`
}

// BuildGraph feeds the document through the graph builder and returns the
// finished campus graph.
func (d *Document) BuildGraph(floorHeight, mergeThreshold float64) (*graph.CampusGraph, error) {
	b := graph.NewBuilder()
	if floorHeight > 0 {
		b.FloorHeight(floorHeight)
	}
	if mergeThreshold > 0 {
		b.MergeThreshold(mergeThreshold)
	}
	for _, bld := range d.Buildings {
		b.AddBuilding(graph.Building{
			ID:       bld.ID,
			Name:     bld.Name,
			Location: bld.Location.location(bld.ID),
			Entrances: lo.Map(bld.Entrances, func(p Point, _ int) geo.Location {
				return p.location("")
			}),
		})
	}
	for _, n := range d.PathNodes {
		b.AddPathNode(n.ID, n.Location.location(n.ID))
	}
	for _, p := range d.Polylines {
		b.AddPolyline(p.ID, lo.Map(p.Points, func(pt Point, _ int) geo.Location {
			return pt.location("")
		}))
	}
	for _, s := range d.Stairs {
		b.AddStairs(s.ID, s.Location.location(s.ID), s.BuildingID, s.Floors)
	}
	for _, e := range d.Elevators {
		b.AddElevator(e.ID, e.Location.location(e.ID), e.BuildingID, e.Floors)
	}
	for _, c := range d.Connections {
		accessible := c.Accessible == nil || *c.Accessible
		b.ConnectPath(c.From, c.To, accessible)
	}
	for _, l := range d.EntranceLinks {
		b.ConnectBuildingToPath(l.BuildingID, l.Entrance, l.PathNodeID)
	}
	return b.Build()
}

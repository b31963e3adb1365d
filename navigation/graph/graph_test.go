package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusnav/routing/navigation/geo"
	"github.com/campusnav/routing/navigation/graph"
)

func buildCampus(t *testing.T) *graph.CampusGraph {
	g, err := graph.NewBuilder().
		AddBuilding(graph.Building{
			ID:        "library",
			Location:  loc(9.8500, 122.8850),
			Entrances: []geo.Location{loc(9.8501, 122.8850)},
		}).
		AddPathNode("p1", loc(9.8503, 122.8850)).
		AddPathNode("p2", loc(9.8520, 122.8850)).
		ConnectPath("p1", "p2", true).
		ConnectBuildingToPath("library", 0, "p1").
		Build()
	assert.NoError(t, err)
	return g
}

func TestFindNearestNode(t *testing.T) {
	g := buildCampus(t)

	n, ok := g.FindNearestNode(loc(9.8519, 122.8850))
	assert.True(t, ok)
	assert.Equal(t, "p2", n.ID)

	// type filter skips the closer path node
	n, ok = g.FindNearestNode(loc(9.8519, 122.8850), graph.NodeTypeEntrance)
	assert.True(t, ok)
	assert.Equal(t, "library_entrance_0", n.ID)

	// no node of the requested type
	_, ok = g.FindNearestNode(loc(9.8519, 122.8850), graph.NodeTypeElevator)
	assert.False(t, ok)
}

func TestFindNearestNodeEmptyGraph(t *testing.T) {
	g, err := graph.NewBuilder().Build()
	assert.NoError(t, err)
	_, ok := g.FindNearestNode(loc(9.85, 122.885))
	assert.False(t, ok)
}

func TestSetEdgeAccessible(t *testing.T) {
	g := buildCampus(t)

	assert.NoError(t, g.SetEdgeAccessible("p1", "p2", false))
	for _, e := range g.Edges("p1") {
		if e.To == "p2" {
			assert.False(t, e.Accessible)
		}
	}
	for _, e := range g.Edges("p2") {
		if e.To == "p1" {
			assert.False(t, e.Accessible)
		}
	}

	assert.NoError(t, g.SetEdgeAccessible("p1", "p2", true))
	for _, e := range g.Edges("p1") {
		if e.To == "p2" {
			assert.True(t, e.Accessible)
		}
	}

	assert.ErrorIs(t, g.SetEdgeAccessible("p1", "nope", false), graph.ErrEdgeNotFound)
}

func TestParseNodeType(t *testing.T) {
	tp, ok := graph.ParseNodeType("entrance")
	assert.True(t, ok)
	assert.Equal(t, graph.NodeTypeEntrance, tp)

	_, ok = graph.ParseNodeType("bogus")
	assert.False(t, ok)
}

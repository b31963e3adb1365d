package graph

import (
	"fmt"

	"github.com/campusnav/routing/navigation/geo"
)

// NodeType tags a graph vertex with its role in the campus network.
type NodeType int

const (
	NodeTypePath NodeType = iota
	NodeTypeEntrance
	NodeTypeBuilding
	NodeTypeIndoorJunction
	NodeTypeStairs
	NodeTypeElevator
)

var nodeTypeNames = map[NodeType]string{
	NodeTypePath:           "path",
	NodeTypeEntrance:       "entrance",
	NodeTypeBuilding:       "building",
	NodeTypeIndoorJunction: "indoor_junction",
	NodeTypeStairs:         "stairs",
	NodeTypeElevator:       "elevator",
}

func (t NodeType) String() string {
	if s, ok := nodeTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("node_type(%d)", int(t))
}

// ParseNodeType resolves the wire name of a node type. The boolean reports
// whether the name is known.
func ParseNodeType(s string) (NodeType, bool) {
	for t, name := range nodeTypeNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

func (t NodeType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// Node is a vertex of the campus graph. BuildingID is empty for outdoor
// nodes; Floor is 0 at ground level.
type Node struct {
	ID         string       `json:"id"`
	Location   geo.Location `json:"location"`
	Type       NodeType     `json:"type"`
	BuildingID string       `json:"buildingId,omitempty"`
	Floor      int          `json:"floor,omitempty"`
}

// Edge is one directed adjacency entry. Every connection is stored twice,
// once per direction, with the same base distance and flags and an
// ElevationChange signed per direction.
type Edge struct {
	To              string
	Distance        float64
	Accessible      bool
	Indoor          bool
	ElevationChange float64
}

// Building is the authored record a campus building contributes to the
// graph: one building node plus one entrance node per entrance location.
type Building struct {
	ID        string
	Name      string
	Location  geo.Location
	Entrances []geo.Location
}

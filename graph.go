package lts

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// EdgeID identifies an edge of the street graph. Identifiers are assigned
// sequentially while ways are split, so they stay unique and sortable.
type EdgeID int64

// Node is an endpoint of one or more edges. A node shared by several ways is
// where ways get split.
type Node struct {
	ID            osm.NodeID
	Geom          orb.Point
	IncidentEdges []EdgeID
}

// Edge is a stretch of street between two graph nodes. Interior geometry
// nodes are kept in Geom but do not appear as graph nodes. Attributes are
// inherited from the source way, Stress is filled by the classifier.
type Edge struct {
	ID           EdgeID
	WayID        osm.WayID
	Source       osm.NodeID
	Target       osm.NodeID
	Geom         orb.LineString
	LengthMeters float64
	Attributes   CanonicalAttributes
	Stress       StressClass
	IsLoop       bool
}

// Graph is the street network: nodes keyed by OSM identifier and edges keyed
// by assigned identifier. Edges are undirected for classification purposes,
// the Oneway attribute keeps the travel restriction for routing exports.
type Graph struct {
	Nodes map[osm.NodeID]*Node
	Edges map[EdgeID]*Edge
}

// Verify checks structural consistency: every edge endpoint resolves to a
// node and every incident edge reference resolves to an edge with that node
// as an endpoint.
func (graph *Graph) Verify() error {
	for id, edge := range graph.Edges {
		if _, ok := graph.Nodes[edge.Source]; !ok {
			return fmt.Errorf("edge '%d' references missing source node '%d'", id, edge.Source)
		}
		if _, ok := graph.Nodes[edge.Target]; !ok {
			return fmt.Errorf("edge '%d' references missing target node '%d'", id, edge.Target)
		}
	}
	for nodeID, node := range graph.Nodes {
		for _, edgeID := range node.IncidentEdges {
			edge, ok := graph.Edges[edgeID]
			if !ok {
				return fmt.Errorf("node '%d' references missing edge '%d'", nodeID, edgeID)
			}
			if edge.Source != nodeID && edge.Target != nodeID {
				return fmt.Errorf("node '%d' listed as incident to edge '%d' but is not its endpoint", nodeID, edgeID)
			}
		}
	}
	return nil
}

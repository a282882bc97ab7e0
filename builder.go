package lts

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// excludedFromCycling reports whether a way can not be part of the cycling
// network at all, with a short reason for diagnostics. An explicit bicycle
// permission wins over way-type exclusions.
func excludedFromCycling(tags osm.Tags) (string, bool) {
	highway := tags.Find("highway")
	if highway == "" && findCyclewayTag(tags) == "" {
		return "not a street", true
	}
	// Check `area`
	if area := tags.Find("area"); area != "" && area != "no" {
		return "mapped as an area", true
	}
	// Check `bicycle`
	bicycle := tags.Find("bicycle")
	if bicycle == "no" {
		return "bicycles prohibited", true
	}
	// Check `piste:type`
	if tags.Find("piste:type") == "nordic" {
		return "nordic ski piste", true
	}
	if bicycle == "yes" || bicycle == "designated" {
		return "", false
	}
	if _, ok := negligibleHighwayTags[highway]; ok {
		return fmt.Sprintf("negligible highway type '%s'", highway), true
	}
	if tags.Find("building") != "" || tags.Find("amenity") != "" || tags.Find("leisure") != "" {
		return "point of interest outline", true
	}
	// Check `service`
	if highway == "service" {
		if service := tags.Find("service"); service != "" {
			if _, ok := excludedServiceTags[service]; ok {
				return fmt.Sprintf("service way '%s'", service), true
			}
		}
	}
	// Check `access`
	if tags.Find("access") == "private" {
		return "private access", true
	}
	return "", false
}

// BuildGraph splits ways into edges at every node shared by more than one way
// (or used twice by the same way) and assembles the street graph. Ways which
// are excluded from cycling or malformed are dropped with a diagnostic, they
// never fail the build. The returned graph passed Verify.
func BuildGraph(ways []RawWay, nodes []RawNode, diag *Diagnostics) (*Graph, error) {
	nodeIndex := make(map[osm.NodeID]RawNode, len(nodes))
	for _, node := range nodes {
		nodeIndex[node.ID] = node
	}

	type preparedWay struct {
		nodes []osm.NodeID
		attrs CanonicalAttributes
		id    osm.WayID
	}

	prepared := []preparedWay{}
	useCount := make(map[osm.NodeID]int)
	for _, way := range ways {
		if reason, excluded := excludedFromCycling(way.Tags); excluded {
			diag.infof(DIAG_EXCLUDED_WAY, way.ID, "way excluded: %s", reason)
			continue
		}
		if len(way.Nodes) < 2 {
			diag.warnf(DIAG_MALFORMED_INPUT, way.ID, "way with %d nodes met", len(way.Nodes))
			continue
		}
		dangling := false
		for _, nodeID := range way.Nodes {
			if _, ok := nodeIndex[nodeID]; !ok {
				diag.warnf(DIAG_MALFORMED_INPUT, way.ID, "way references missing node '%d'", nodeID)
				dangling = true
				break
			}
		}
		if dangling {
			continue
		}

		attrs, defaulted := Normalize(way.Tags)
		for _, field := range defaulted {
			diag.infof(DIAG_AMBIGUOUS_ATTRIBUTE, way.ID, "default applied for `%s`", field)
		}

		wayNodes := way.Nodes
		if isReversedOneway(way.Tags) {
			wayNodes = make([]osm.NodeID, len(way.Nodes))
			for i, nodeID := range way.Nodes {
				wayNodes[len(way.Nodes)-1-i] = nodeID
			}
		}
		prepared = append(prepared, preparedWay{
			nodes: wayNodes,
			attrs: attrs,
			id:    way.ID,
		})

		// Endpoints weigh double so a single way still terminates its edges
		for i, nodeID := range wayNodes {
			if i == 0 || i == len(wayNodes)-1 {
				useCount[nodeID] += 2
			} else {
				useCount[nodeID]++
			}
		}
	}

	graph := &Graph{
		Nodes: make(map[osm.NodeID]*Node),
		Edges: make(map[EdgeID]*Edge),
	}
	edgesObserved := EdgeID(0)
	for _, way := range prepared {
		source := way.nodes[0]
		geometry := orb.LineString{nodeIndex[source].Geom}
		for i := 1; i < len(way.nodes); i++ {
			nodeID := way.nodes[i]
			geometry = append(geometry, nodeIndex[nodeID].Geom)
			if useCount[nodeID] > 1 {
				edge := &Edge{
					ID:           edgesObserved,
					WayID:        way.id,
					Source:       source,
					Target:       nodeID,
					Geom:         geometry,
					LengthMeters: geo.LengthHaversign(geometry),
					Attributes:   way.attrs,
					IsLoop:       source == nodeID,
				}
				graph.Edges[edge.ID] = edge
				attachEdge(graph, nodeIndex, edge)
				edgesObserved++
				source = nodeID
				geometry = orb.LineString{nodeIndex[nodeID].Geom}
			}
		}
	}

	if err := graph.Verify(); err != nil {
		return nil, errors.Wrap(err, "Can't keep internally inconsistent graph")
	}
	return graph, nil
}

// attachEdge registers the edge on both endpoint nodes, creating the nodes on
// first touch. A self-loop is registered once.
func attachEdge(graph *Graph, nodeIndex map[osm.NodeID]RawNode, edge *Edge) {
	endpoints := []osm.NodeID{edge.Source}
	if edge.Target != edge.Source {
		endpoints = append(endpoints, edge.Target)
	}
	for _, nodeID := range endpoints {
		node, ok := graph.Nodes[nodeID]
		if !ok {
			node = &Node{
				ID:            nodeID,
				Geom:          nodeIndex[nodeID].Geom,
				IncidentEdges: []EdgeID{},
			}
			graph.Nodes[nodeID] = node
		}
		node.IncidentEdges = append(node.IncidentEdges, edge.ID)
	}
}

package lts

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// Summary is the aggregate picture of a classified street network.
type Summary struct {
	EdgesByClass  map[StressClass]int
	MetersByClass map[StressClass]float64
	TotalEdges    int
	TotalMeters   float64
	TotalNodes    int

	// Connected components of the whole network and of the subnetwork a
	// cautious cyclist would ride (LTS_2 or calmer)
	Components            int
	LargestComponentNodes int
	LowStressComponents   int
	LowStressLargestNodes int
	LowStressMeters       float64

	Centroid orb.Point
}

// Summarize computes per-class and connectivity statistics for a classified
// graph. Per-class counts sum up to the totals.
func Summarize(graph *Graph) Summary {
	summary := Summary{
		EdgesByClass:  make(map[StressClass]int),
		MetersByClass: make(map[StressClass]float64),
		TotalNodes:    len(graph.Nodes),
	}
	for _, edge := range graph.Edges {
		summary.TotalEdges++
		summary.TotalMeters += edge.LengthMeters
		summary.EdgesByClass[edge.Stress]++
		summary.MetersByClass[edge.Stress] += edge.LengthMeters
		if edge.Stress != 0 && edge.Stress <= LTS_2 {
			summary.LowStressMeters += edge.LengthMeters
		}
	}

	summary.Components, summary.LargestComponentNodes = countComponents(graph, 0)
	summary.LowStressComponents, summary.LowStressLargestNodes = countComponents(graph, LTS_2)

	points := make([]orb.Point, 0, len(graph.Nodes))
	for _, node := range graph.Nodes {
		points = append(points, node.Geom)
	}
	summary.Centroid = findCentroid(points)

	return summary
}

// countComponents returns the number of connected components and the node
// count of the largest one. Edge direction is ignored. With maxStress != 0
// only edges of that class or calmer participate and nodes without a single
// qualifying edge are not members of any component.
func countComponents(graph *Graph, maxStress StressClass) (int, int) {
	qualifies := func(edge *Edge) bool {
		if maxStress == 0 {
			return true
		}
		return edge.Stress != 0 && edge.Stress <= maxStress
	}

	visited := make(map[osm.NodeID]struct{})
	components := 0
	largest := 0
	for nodeID, node := range graph.Nodes {
		if _, ok := visited[nodeID]; ok {
			continue
		}
		member := false
		for _, edgeID := range node.IncidentEdges {
			if qualifies(graph.Edges[edgeID]) {
				member = true
				break
			}
		}
		if !member {
			continue
		}

		size := 0
		queue := []osm.NodeID{nodeID}
		visited[nodeID] = struct{}{}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			size++
			for _, edgeID := range graph.Nodes[current].IncidentEdges {
				edge := graph.Edges[edgeID]
				if !qualifies(edge) {
					continue
				}
				neighbor := edge.Source
				if neighbor == current {
					neighbor = edge.Target
				}
				if _, ok := visited[neighbor]; ok {
					continue
				}
				visited[neighbor] = struct{}{}
				queue = append(queue, neighbor)
			}
		}
		components++
		if size > largest {
			largest = size
		}
	}
	return components, largest
}

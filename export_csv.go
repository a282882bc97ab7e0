package lts

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// ExportCSV writes the classified network into a pair of semicolon-separated
// files: '<fname without .csv>_edges.csv' and '<fname without .csv>_nodes.csv'.
// Geometry is WKT in EPSG:4326.
func (graph *Graph) ExportCSV(fname string) error {
	fnameParts := strings.Split(fname, ".csv")
	fnameEdges := fmt.Sprintf(fnameParts[0] + "_edges.csv")
	fnameNodes := fmt.Sprintf(fnameParts[0] + "_nodes.csv")

	err := graph.exportEdgesToCSV(fnameEdges)
	if err != nil {
		return errors.Wrap(err, "Can't export edges")
	}

	err = graph.exportNodesToCSV(fnameNodes)
	if err != nil {
		return errors.Wrap(err, "Can't export nodes")
	}

	return nil
}

func (graph *Graph) exportEdgesToCSV(fname string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"id", "osm_way_id", "source_node", "target_node", "stress", "road_class", "bike_facility", "parking", "lanes_per_direction", "speed_limit_kph", "oneway", "is_loop", "length_meters", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, edgeID := range sortedEdgeIDs(graph) {
		edge := graph.Edges[edgeID]
		err = writer.Write([]string{
			fmt.Sprintf("%d", edge.ID),
			fmt.Sprintf("%d", edge.WayID),
			fmt.Sprintf("%d", edge.Source),
			fmt.Sprintf("%d", edge.Target),
			fmt.Sprintf("%s", edge.Stress),
			fmt.Sprintf("%s", edge.Attributes.RoadClass),
			fmt.Sprintf("%s", edge.Attributes.BikeFacility),
			fmt.Sprintf("%s", edge.Attributes.Parking),
			fmt.Sprintf("%d", edge.Attributes.LanesPerDirection),
			fmt.Sprintf("%d", edge.Attributes.SpeedLimitKph),
			fmt.Sprintf("%t", edge.Attributes.Oneway),
			fmt.Sprintf("%t", edge.IsLoop),
			fmt.Sprintf("%f", edge.LengthMeters),
			fmt.Sprintf("%s", wkt.MarshalString(edge.Geom)),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write edge")
		}
	}
	return nil
}

func (graph *Graph) exportNodesToCSV(fname string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"id", "incident_edges", "longitude", "latitude"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	nodeIDs := make([]int64, 0, len(graph.Nodes))
	for id := range graph.Nodes {
		nodeIDs = append(nodeIDs, int64(id))
	}
	sort.Slice(nodeIDs, func(i, j int) bool { return nodeIDs[i] < nodeIDs[j] })

	for _, id := range nodeIDs {
		node := graph.Nodes[osm.NodeID(id)]
		err = writer.Write([]string{
			fmt.Sprintf("%d", node.ID),
			fmt.Sprintf("%d", len(node.IncidentEdges)),
			fmt.Sprintf("%f", node.Geom.Lon()),
			fmt.Sprintf("%f", node.Geom.Lat()),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write node")
		}
	}
	return nil
}

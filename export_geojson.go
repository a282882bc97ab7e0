package lts

import (
	"fmt"
	"os"
	"sort"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// ExportGeoJSON writes one GeoJSON FeatureCollection per stress class, named
// '<fnamePrefix>_level_1.json' through '<fnamePrefix>_level_4.json'. Every
// classified edge lands in exactly one file. Features carry the canonical
// attributes so a viewer can explain the class.
func (graph *Graph) ExportGeoJSON(fnamePrefix string) error {
	collections := map[StressClass]*geojson.FeatureCollection{
		LTS_1: geojson.NewFeatureCollection(),
		LTS_2: geojson.NewFeatureCollection(),
		LTS_3: geojson.NewFeatureCollection(),
		LTS_4: geojson.NewFeatureCollection(),
	}

	for _, edgeID := range sortedEdgeIDs(graph) {
		edge := graph.Edges[edgeID]
		collection, ok := collections[edge.Stress]
		if !ok {
			return fmt.Errorf("edge '%d' has no stress class assigned", edge.ID)
		}
		collection.AddFeature(edgeFeature(edge))
	}

	for class, collection := range collections {
		fname := fmt.Sprintf("%s_level_%d.json", fnamePrefix, class.Level())
		b, err := collection.MarshalJSON()
		if err != nil {
			return errors.Wrapf(err, "Can't marshal collection for %s", class)
		}
		file, err := os.Create(fname)
		if err != nil {
			return errors.Wrap(err, "Can't create file")
		}
		if _, err := file.Write(b); err != nil {
			file.Close()
			return errors.Wrap(err, "Can't write collection")
		}
		if err := file.Close(); err != nil {
			return errors.Wrap(err, "Can't close file")
		}
	}
	return nil
}

func edgeFeature(edge *Edge) *geojson.Feature {
	coordinates := make([][]float64, len(edge.Geom))
	for i := range edge.Geom {
		coordinates[i] = []float64{edge.Geom[i].Lon(), edge.Geom[i].Lat()}
	}
	feature := geojson.NewLineStringFeature(coordinates)
	feature.ID = fmt.Sprintf("way/%d", edge.WayID)
	feature.SetProperty("edge_id", int64(edge.ID))
	feature.SetProperty("osm_way_id", int64(edge.WayID))
	feature.SetProperty("stress", edge.Stress.String())
	feature.SetProperty("stress_level", edge.Stress.Level())
	feature.SetProperty("road_class", edge.Attributes.RoadClass.String())
	feature.SetProperty("bike_facility", edge.Attributes.BikeFacility.String())
	feature.SetProperty("parking", edge.Attributes.Parking.String())
	feature.SetProperty("lanes_per_direction", edge.Attributes.LanesPerDirection)
	feature.SetProperty("speed_limit_kph", edge.Attributes.SpeedLimitKph)
	feature.SetProperty("oneway", edge.Attributes.Oneway)
	feature.SetProperty("length_meters", edge.LengthMeters)
	return feature
}

// sortedEdgeIDs keeps export order stable between runs.
func sortedEdgeIDs(graph *Graph) []EdgeID {
	edgeIDs := make([]EdgeID, 0, len(graph.Edges))
	for id := range graph.Edges {
		edgeIDs = append(edgeIDs, id)
	}
	sort.Slice(edgeIDs, func(i, j int) bool { return edgeIDs[i] < edgeIDs[j] })
	return edgeIDs
}

package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/LdDl/ch"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
	lts "github.com/shawngettler/cycling-lts"
)

var (
	osmFileName   = flag.String("file", "my_region.osm.pbf", "Filename of *.osm, *.xml or *.osm.pbf file")
	out           = flag.String("out", "lts", "Prefix for output files. E.g.: prefix 'lts' gives 'lts_level_1.json'...'lts_level_4.json' for GeoJSON, 'lts_edges.csv' and 'lts_nodes.csv' for CSV, 'lts.sqlite' for SQLite")
	outFormat     = flag.String("format", "geojson", "Format of classified network output. Expected values: geojson / csv / sqlite")
	routableFile  = flag.String("routable", "", "Filename of CSV file for the routable subnetwork. E.g.: if file name is 'calm.csv' then 3 files will be produced: 'calm.csv' (edges), 'calm_vertices.csv', 'calm_shortcuts.csv'. Empty value disables the export")
	maxStress     = flag.Int("maxlts", 2, "Maximum stress level included into the routable subnetwork. Expected values: 1-4")
	doContraction = flag.Bool("contract", true, "Prepare contraction hierarchies for the routable subnetwork?")
	workersNum    = flag.Int("workers", 1, "Number of workers for edge classification")
	verbose       = flag.Bool("verbose", false, "Print progress and warnings?")
)

func main() {

	flag.Parse()

	analyzer := lts.NewAnalyzer(
		*osmFileName,
		lts.WithWorkersNum(*workersNum),
		lts.WithVerbose(*verbose),
	)
	result, err := analyzer.Run()
	if err != nil {
		fmt.Println(err)
		return
	}
	printSummary(result)

	switch strings.ToLower(*outFormat) {
	case "geojson":
		err = result.Graph.ExportGeoJSON(*out)
	case "csv":
		err = result.Graph.ExportCSV(*out + ".csv")
	case "sqlite":
		_, err = lts.ExportSQLite(*out+".sqlite", *osmFileName, result)
	default:
		err = fmt.Errorf("Output format '%s' is not handled yet", *outFormat)
	}
	if err != nil {
		fmt.Println(err)
		return
	}

	if *routableFile != "" {
		if *maxStress < lts.LTS_1.Level() || *maxStress > lts.LTS_4.Level() {
			fmt.Printf("Maximum stress level %d is out of range 1-4\n", *maxStress)
			return
		}
		err = exportRoutable(result.Graph, *routableFile, lts.StressClass(*maxStress), *doContraction)
		if err != nil {
			fmt.Println(err)
			return
		}
	}
}

func printSummary(result *lts.Result) {
	summary := result.Summary
	fmt.Printf("Classified network:\n")
	fmt.Printf("\tNodes: %d\n", summary.TotalNodes)
	fmt.Printf("\tEdges: %d (%.1f km)\n", summary.TotalEdges, summary.TotalMeters/1000.0)
	for class := lts.LTS_1; class <= lts.LTS_4; class++ {
		fmt.Printf("\t%s: %d edges (%.1f km)\n", class, summary.EdgesByClass[class], summary.MetersByClass[class]/1000.0)
	}
	fmt.Printf("\tComponents: %d (largest has %d nodes)\n", summary.Components, summary.LargestComponentNodes)
	fmt.Printf("\tLow-stress components: %d (largest has %d nodes, %.1f km total)\n", summary.LowStressComponents, summary.LowStressLargestNodes, summary.LowStressMeters/1000.0)
	fmt.Printf("\tCentroid: %f, %f\n", summary.Centroid.Lon(), summary.Centroid.Lat())

	warnings := 0
	for _, entry := range result.Diagnostics {
		if entry.Severity == lts.DIAG_WARNING {
			warnings++
		}
	}
	fmt.Printf("\tDiagnostics: %d (%d warnings)\n", len(result.Diagnostics), warnings)
}

// exportRoutable writes the subnetwork a cyclist tolerating at most the given
// stress level can ride, as a routing-ready edge list with optional
// contraction hierarchies.
func exportRoutable(graph *lts.Graph, fname string, maxStress lts.StressClass, contract bool) error {
	fnamePart := strings.Split(fname, ".csv") // to guarantee proper filename and its extension
	fnameEdges := fmt.Sprintf(fnamePart[0] + ".csv")
	fnameVertices := fmt.Sprintf(fnamePart[0] + "_vertices.csv")
	fnameShortcuts := fmt.Sprintf(fnamePart[0] + "_shortcuts.csv")

	/* Edges file */
	fileEdges, err := os.Create(fnameEdges)
	if err != nil {
		return errors.Wrap(err, "Can't create edges file")
	}
	defer fileEdges.Close()
	writerEdges := csv.NewWriter(fileEdges)
	defer writerEdges.Flush()
	writerEdges.Comma = ';'
	err = writerEdges.Write([]string{"from_vertex_id", "to_vertex_id", "weight", "geom", "stress", "edge_id", "osm_way_id"})
	if err != nil {
		return errors.Wrap(err, "Can't write edges header")
	}

	/* Vertices file */
	fileVertices, err := os.Create(fnameVertices)
	if err != nil {
		return errors.Wrap(err, "Can't create vertices file")
	}
	defer fileVertices.Close()
	writerVertices := csv.NewWriter(fileVertices)
	defer writerVertices.Flush()
	writerVertices.Comma = ';'
	err = writerVertices.Write([]string{"vertex_id", "order_pos", "importance", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write vertices header")
	}

	verticesGeoms := make(map[int64]orb.Point)
	chGraph := ch.Graph{}

	// Prepare graph and write edges. Two-way streets give one routable edge
	// per direction.
	edgeIDs := make([]lts.EdgeID, 0, len(graph.Edges))
	for id := range graph.Edges {
		edgeIDs = append(edgeIDs, id)
	}
	sort.Slice(edgeIDs, func(i, j int) bool { return edgeIDs[i] < edgeIDs[j] })
	for _, edgeID := range edgeIDs {
		edge := graph.Edges[edgeID]
		if edge.Stress == 0 || edge.Stress > maxStress {
			continue
		}
		if edge.IsLoop {
			// Useless for routing
			continue
		}
		source := int64(edge.Source)
		target := int64(edge.Target)
		err := chGraph.CreateVertex(source)
		if err != nil {
			return errors.Wrap(err, "Can not create source vertex")
		}
		err = chGraph.CreateVertex(target)
		if err != nil {
			return errors.Wrap(err, "Can not create target vertex")
		}
		err = chGraph.AddEdge(source, target, edge.LengthMeters)
		if err != nil {
			return errors.Wrap(err, "Can not wrap Source and Target vertices as Edge")
		}

		if _, ok := verticesGeoms[source]; !ok {
			verticesGeoms[source] = edge.Geom[0]
		}
		if _, ok := verticesGeoms[target]; !ok {
			verticesGeoms[target] = edge.Geom[len(edge.Geom)-1]
		}

		err = writerEdges.Write([]string{
			fmt.Sprintf("%d", source),
			fmt.Sprintf("%d", target),
			fmt.Sprintf("%f", edge.LengthMeters),
			wkt.MarshalString(edge.Geom),
			fmt.Sprintf("%s", edge.Stress),
			fmt.Sprintf("%d", edge.ID),
			fmt.Sprintf("%d", edge.WayID),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write edge")
		}

		if !edge.Attributes.Oneway {
			err = chGraph.AddEdge(target, source, edge.LengthMeters)
			if err != nil {
				return errors.Wrap(err, "Can not wrap Target and Source vertices as Edge")
			}
			err = writerEdges.Write([]string{
				fmt.Sprintf("%d", target),
				fmt.Sprintf("%d", source),
				fmt.Sprintf("%f", edge.LengthMeters),
				wkt.MarshalString(reverseLine(edge.Geom)),
				fmt.Sprintf("%s", edge.Stress),
				fmt.Sprintf("%d", edge.ID),
				fmt.Sprintf("%d", edge.WayID),
			})
			if err != nil {
				return errors.Wrap(err, "Can't write reversed edge")
			}
		}
	}

	if contract {
		fmt.Println("Starting contraction process....")
		st := time.Now()
		chGraph.PrepareContractionHierarchies()
		fmt.Printf("Done contraction process in %v\n", time.Since(st))
	}

	/* Write vertices */
	vertices := chGraph.Vertices
	for i := 0; i < len(vertices); i++ {
		currentVertexExternal := vertices[i].Label
		vertexGeom := verticesGeoms[currentVertexExternal]
		err = writerVertices.Write([]string{
			fmt.Sprintf("%d", currentVertexExternal),
			fmt.Sprintf("%d", vertices[i].OrderPos()),
			fmt.Sprintf("%d", vertices[i].Importance()),
			wkt.MarshalString(vertexGeom),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write vertex")
		}
	}

	if contract {
		/* Write shortcuts */
		err = chGraph.ExportShortcutsToFile(fnameShortcuts)
		if err != nil {
			return errors.Wrap(err, "Can't write shortcuts")
		}
	}
	return nil
}

// reverseLine reverses order of points in given line. Returns new slice
func reverseLine(line orb.LineString) orb.LineString {
	inputLen := len(line)
	output := make(orb.LineString, inputLen)
	for i, point := range line {
		output[inputLen-i-1] = point
	}
	return output
}

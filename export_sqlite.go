package lts

import (
	"database/sql"
	_ "embed"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ExportSQLite stores the classified network, its summary and the collected
// diagnostics into a SQLite database, creating the schema when needed. Every
// call writes a new run keyed by a fresh identifier, so repeated analyses of
// the same area can live side by side. Returns the run identifier.
func ExportSQLite(fname string, sourceFile string, result *Result) (string, error) {
	conn, err := sql.Open("sqlite", fname+"?_fk=1&_busy_timeout=5000")
	if err != nil {
		return "", errors.Wrap(err, "Can't open database")
	}
	defer conn.Close()

	if _, err := conn.Exec(schemaSQL); err != nil {
		return "", errors.Wrap(err, "Can't ensure schema")
	}

	tx, err := conn.Begin()
	if err != nil {
		return "", errors.Wrap(err, "Can't begin transaction")
	}
	defer tx.Rollback()

	runID := uuid.New().String()
	graph := result.Graph
	summary := result.Summary

	_, err = tx.Exec(
		"INSERT INTO runs (run_id, created_at_utc, source_file, total_edges, total_nodes, total_meters) VALUES (?, ?, ?, ?, ?, ?)",
		runID, time.Now().UTC().Format(time.RFC3339), sourceFile, summary.TotalEdges, summary.TotalNodes, summary.TotalMeters,
	)
	if err != nil {
		return "", errors.Wrap(err, "Can't insert run")
	}

	edgeStmt, err := tx.Prepare(`
		INSERT INTO edges (
			run_id, edge_id, osm_way_id, source_node, target_node,
			stress, road_class, bike_facility, parking,
			lanes_per_direction, speed_limit_kph, oneway, is_loop,
			length_meters, geom_wkt
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", errors.Wrap(err, "Can't prepare edges statement")
	}
	defer edgeStmt.Close()

	for _, edgeID := range sortedEdgeIDs(graph) {
		edge := graph.Edges[edgeID]
		_, err = edgeStmt.Exec(
			runID, int64(edge.ID), int64(edge.WayID), int64(edge.Source), int64(edge.Target),
			edge.Stress.String(), edge.Attributes.RoadClass.String(), edge.Attributes.BikeFacility.String(), edge.Attributes.Parking.String(),
			edge.Attributes.LanesPerDirection, edge.Attributes.SpeedLimitKph, boolToInt(edge.Attributes.Oneway), boolToInt(edge.IsLoop),
			edge.LengthMeters, wkt.MarshalString(edge.Geom),
		)
		if err != nil {
			return "", errors.Wrap(err, "Can't insert edge")
		}
	}

	nodeStmt, err := tx.Prepare(
		"INSERT INTO nodes (run_id, node_id, longitude, latitude, incident_edges) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return "", errors.Wrap(err, "Can't prepare nodes statement")
	}
	defer nodeStmt.Close()

	for _, node := range graph.Nodes {
		_, err = nodeStmt.Exec(runID, int64(node.ID), node.Geom.Lon(), node.Geom.Lat(), len(node.IncidentEdges))
		if err != nil {
			return "", errors.Wrap(err, "Can't insert node")
		}
	}

	for class := LTS_1; class <= LTS_4; class++ {
		_, err = tx.Exec(
			"INSERT INTO summary (run_id, stress, edge_count, length_meters) VALUES (?, ?, ?, ?)",
			runID, class.String(), summary.EdgesByClass[class], summary.MetersByClass[class],
		)
		if err != nil {
			return "", errors.Wrap(err, "Can't insert summary row")
		}
	}

	for _, entry := range result.Diagnostics {
		_, err = tx.Exec(
			"INSERT INTO diagnostics (run_id, severity, code, osm_way_id, message) VALUES (?, ?, ?, ?, ?)",
			runID, entry.Severity.String(), entry.Code.String(), int64(entry.WayID), entry.Message,
		)
		if err != nil {
			return "", errors.Wrap(err, "Can't insert diagnostic")
		}
	}

	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(err, "Can't commit transaction")
	}
	return runID, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

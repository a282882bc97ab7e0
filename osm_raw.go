package lts

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

// RawWay is an OSM way reduced to what the street graph needs: identity,
// node references in mapped order and the tags.
type RawWay struct {
	ID    osm.WayID
	Nodes []osm.NodeID
	Tags  osm.Tags
}

// RawNode is an OSM node reduced to identity and position.
type RawNode struct {
	ID   osm.NodeID
	Geom orb.Point
}

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

func newOSMScanner(filename string, file *os.File) (OSMScanner, error) {
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		return osmxml.New(context.Background(), file), nil
	case ".pbf", ".osm.pbf":
		return osmpbf.New(context.Background(), file, 4), nil
	}
	return nil, fmt.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
}

// readOSM extracts candidate street ways and the nodes they reference from an
// *.osm, *.xml or *.osm.pbf file. Ways without any street or cycleway tag are
// not even collected; nodes unused by the kept ways are dropped.
func readOSM(filename string, verbose bool) ([]RawWay, []RawNode, error) {
	if verbose {
		fmt.Printf("Opening file: '%s'...\n", filename)
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	/* Process ways */
	if verbose {
		fmt.Printf("\tProcessing ways... ")
	}
	st := time.Now()
	ways := []RawWay{}
	nodesSeen := make(map[osm.NodeID]struct{})
	{
		scannerWays, err := newOSMScanner(filename, file)
		if err != nil {
			return nil, nil, err
		}
		defer scannerWays.Close()

		for scannerWays.Scan() {
			obj := scannerWays.Object()
			if obj.ObjectID().Type() != "way" {
				continue
			}
			way := obj.(*osm.Way)
			if way.Tags.Find("highway") == "" && findCyclewayTag(way.Tags) == "" {
				continue
			}
			preparedWay := RawWay{
				ID:    way.ID,
				Nodes: make([]osm.NodeID, 0, len(way.Nodes)),
				Tags:  make(osm.Tags, len(way.Tags)),
			}
			copy(preparedWay.Tags, way.Tags)
			// Mark way's nodes as seen to drop isolated nodes in further
			for _, node := range way.Nodes {
				nodesSeen[node.ID] = struct{}{}
				preparedWay.Nodes = append(preparedWay.Nodes, node.ID)
			}
			ways = append(ways, preparedWay)
		}
		if err := scannerWays.Err(); err != nil {
			return nil, nil, err
		}
	}
	if verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}

	// Seek file to start
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	/* Process nodes */
	if verbose {
		fmt.Printf("\tProcessing nodes... ")
	}
	st = time.Now()
	nodes := []RawNode{}
	{
		scannerNodes, err := newOSMScanner(filename, file)
		if err != nil {
			return nil, nil, err
		}
		defer scannerNodes.Close()

		for scannerNodes.Scan() {
			obj := scannerNodes.Object()
			if obj.ObjectID().Type() != "node" {
				continue
			}
			node := obj.(*osm.Node)
			if _, ok := nodesSeen[node.ID]; ok {
				delete(nodesSeen, node.ID)
				nodes = append(nodes, RawNode{
					ID:   node.ID,
					Geom: node.Point(),
				})
			}
		}
		if err := scannerNodes.Err(); err != nil {
			return nil, nil, err
		}
	}
	if verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
		fmt.Printf("Number of ways: %d\n", len(ways))
		fmt.Printf("Number of nodes: %d\n", len(nodes))
	}

	return ways, nodes, nil
}

package lts

import (
	"math"
	"sort"
	"sync"
)

// stressThreshold is one row of a threshold table: a segment matches when its
// speed limit and lanes per direction both stay at or below the bounds.
type stressThreshold struct {
	maxSpeedKph int
	maxLanes    int
	class       StressClass
}

const unbounded = math.MaxInt32

// Threshold tables are scanned top to bottom, first row matched assigns the
// class. Rows are arranged so more restrictive conditions come first, which
// keeps the assigned class non-decreasing in both speed and lanes.
var (
	bufferedLaneThresholds = []stressThreshold{
		{maxSpeedKph: 40, maxLanes: 1, class: LTS_1},
		{maxSpeedKph: 50, maxLanes: unbounded, class: LTS_2},
		{maxSpeedKph: unbounded, maxLanes: unbounded, class: LTS_3},
	}

	paintedLaneThresholds = []stressThreshold{
		{maxSpeedKph: 40, maxLanes: 1, class: LTS_2},
		{maxSpeedKph: 50, maxLanes: unbounded, class: LTS_3},
		{maxSpeedKph: unbounded, maxLanes: unbounded, class: LTS_4},
	}

	mixedTrafficThresholds = []stressThreshold{
		{maxSpeedKph: 40, maxLanes: 1, class: LTS_2},
		{maxSpeedKph: 50, maxLanes: 2, class: LTS_3},
		{maxSpeedKph: unbounded, maxLanes: unbounded, class: LTS_4},
	}
)

func classFromThresholds(rows []stressThreshold, attrs CanonicalAttributes) StressClass {
	for _, row := range rows {
		if attrs.SpeedLimitKph <= row.maxSpeedKph && attrs.LanesPerDirection <= row.maxLanes {
			return row.class
		}
	}
	return LTS_4
}

// escalate bumps the class by the given number of levels, capped at LTS_4.
func escalate(class StressClass, levels int) StressClass {
	bumped := int(class) + levels
	if bumped > int(LTS_4) {
		return LTS_4
	}
	return StressClass(bumped)
}

type stressRule struct {
	name  string
	match func(attrs CanonicalAttributes) bool
	class func(attrs CanonicalAttributes) StressClass
}

// stressRules is the ordered decision list of the classifier: the first rule
// whose match holds assigns the class. Physical separation is checked before
// anything else, so a protected track keeps LTS_1 even along a motorway. The
// motorway override sits right behind it: without separation no painted lane
// softens a motorway.
var stressRules = []stressRule{
	{
		name: "separated-facility",
		match: func(attrs CanonicalAttributes) bool {
			return attrs.BikeFacility == FACILITY_SEPARATED || attrs.BikeFacility == FACILITY_OFF_STREET
		},
		class: func(attrs CanonicalAttributes) StressClass {
			return LTS_1
		},
	},
	{
		name: "highway-override",
		match: func(attrs CanonicalAttributes) bool {
			return attrs.RoadClass == ROAD_CLASS_HIGHWAY
		},
		class: func(attrs CanonicalAttributes) StressClass {
			return LTS_4
		},
	},
	{
		name: "buffered-lane",
		match: func(attrs CanonicalAttributes) bool {
			return attrs.BikeFacility == FACILITY_BUFFERED_LANE
		},
		class: func(attrs CanonicalAttributes) StressClass {
			return classFromThresholds(bufferedLaneThresholds, attrs)
		},
	},
	{
		name: "painted-lane",
		match: func(attrs CanonicalAttributes) bool {
			return attrs.BikeFacility == FACILITY_PAINTED_LANE
		},
		class: func(attrs CanonicalAttributes) StressClass {
			class := classFromThresholds(paintedLaneThresholds, attrs)
			// Unknown parking counts as parked cars, the calmer guess is
			// the wrong one to publish
			if attrs.Parking != PARKING_NO {
				class = escalate(class, 1)
			}
			return class
		},
	},
	{
		name: "mixed-traffic",
		match: func(attrs CanonicalAttributes) bool {
			return attrs.BikeFacility == FACILITY_NONE
		},
		class: func(attrs CanonicalAttributes) StressClass {
			return classFromThresholds(mixedTrafficThresholds, attrs)
		},
	},
}

// evalStressRules walks the decision list and returns the assigned class, the
// name of the rule which fired and whether any rule fired at all. When no
// rule matches the attributes the most stressful class is returned.
func evalStressRules(attrs CanonicalAttributes) (StressClass, string, bool) {
	for _, rule := range stressRules {
		if rule.match(attrs) {
			return rule.class(attrs), rule.name, true
		}
	}
	return LTS_4, "", false
}

// Classify assigns a stress class to a single set of street attributes.
func Classify(attrs CanonicalAttributes) StressClass {
	class, _, _ := evalStressRules(attrs)
	return class
}

// ClassifyGraph assigns a stress class to every edge of the graph. Edges are
// independent, so with workersNum > 1 they are classified concurrently; the
// result does not depend on the number of workers.
func ClassifyGraph(graph *Graph, workersNum int, diag *Diagnostics) {
	edgeIDs := make([]EdgeID, 0, len(graph.Edges))
	for id := range graph.Edges {
		edgeIDs = append(edgeIDs, id)
	}
	sort.Slice(edgeIDs, func(i, j int) bool { return edgeIDs[i] < edgeIDs[j] })

	if workersNum <= 1 || len(edgeIDs) < workersNum {
		classifyEdges(graph, edgeIDs, diag)
		return
	}

	chunkSize := (len(edgeIDs) + workersNum - 1) / workersNum
	workerDiags := []*Diagnostics{}
	var wg sync.WaitGroup
	for start := 0; start < len(edgeIDs); start += chunkSize {
		end := start + chunkSize
		if end > len(edgeIDs) {
			end = len(edgeIDs)
		}
		workerDiag := NewDiagnostics(false)
		workerDiags = append(workerDiags, workerDiag)
		wg.Add(1)
		go func(ids []EdgeID, workerDiag *Diagnostics) {
			defer wg.Done()
			classifyEdges(graph, ids, workerDiag)
		}(edgeIDs[start:end], workerDiag)
	}
	wg.Wait()
	for _, workerDiag := range workerDiags {
		diag.merge(workerDiag)
	}
}

func classifyEdges(graph *Graph, edgeIDs []EdgeID, diag *Diagnostics) {
	for _, id := range edgeIDs {
		edge := graph.Edges[id]
		class, _, matched := evalStressRules(edge.Attributes)
		if !matched {
			diag.warnf(DIAG_UNMATCHED_RULE, edge.WayID, "no classification rule matched, falling back to %s", class)
		}
		if edge.Attributes.BikeFacility == FACILITY_PAINTED_LANE && edge.Attributes.Parking == PARKING_UNKNOWN {
			diag.infof(DIAG_AMBIGUOUS_ATTRIBUTE, edge.WayID, "parking presence unknown, treated as parked cars")
		}
		edge.Stress = class
	}
}

package lts

import (
	"testing"

	"github.com/paulmach/osm"
)

func TestClassifyQuietResidential(t *testing.T) {
	attrs, _ := Normalize(osm.Tags{
		{Key: "highway", Value: "residential"},
		{Key: "maxspeed", Value: "30"},
		{Key: "lanes", Value: "1"},
	})
	class := Classify(attrs)
	if class != LTS_2 {
		t.Errorf("Quiet residential street must be %s, but got %s", LTS_2, class)
	}

	// Same street with a protected track drops to the calmest class
	attrs, _ = Normalize(osm.Tags{
		{Key: "highway", Value: "residential"},
		{Key: "maxspeed", Value: "30"},
		{Key: "lanes", Value: "1"},
		{Key: "cycleway", Value: "track"},
	})
	if class := Classify(attrs); class != LTS_1 {
		t.Errorf("Protected track must give %s, but got %s", LTS_1, class)
	}
}

func TestClassifySeparationDominance(t *testing.T) {
	speeds := []int{20, 30, 40, 50, 60, 80, 100}
	lanes := []int{0, 1, 2, 3, 4}
	parking := []ParkingPresence{PARKING_UNKNOWN, PARKING_YES, PARKING_NO}
	classes := []RoadClass{ROAD_CLASS_LOCAL, ROAD_CLASS_COLLECTOR, ROAD_CLASS_ARTERIAL, ROAD_CLASS_HIGHWAY, ROAD_CLASS_OTHER}
	for _, facility := range []BikeFacility{FACILITY_SEPARATED, FACILITY_OFF_STREET} {
		for _, speed := range speeds {
			for _, lanesNum := range lanes {
				for _, parkingValue := range parking {
					for _, roadClass := range classes {
						attrs := CanonicalAttributes{
							LanesPerDirection: lanesNum,
							SpeedLimitKph:     speed,
							BikeFacility:      facility,
							Parking:           parkingValue,
							RoadClass:         roadClass,
						}
						if class := Classify(attrs); class != LTS_1 {
							t.Errorf("Separated segment %v must be %s, but got %s", attrs, LTS_1, class)
						}
					}
				}
			}
		}
	}
}

func TestClassifyHighwayOverride(t *testing.T) {
	// No lane marking softens a motorway
	for _, facility := range []BikeFacility{FACILITY_NONE, FACILITY_PAINTED_LANE, FACILITY_BUFFERED_LANE} {
		attrs := CanonicalAttributes{
			LanesPerDirection: 1,
			SpeedLimitKph:     30,
			BikeFacility:      facility,
			Parking:           PARKING_NO,
			RoadClass:         ROAD_CLASS_HIGHWAY,
		}
		if class := Classify(attrs); class != LTS_4 {
			t.Errorf("Motorway with facility %s must be %s, but got %s", facility, LTS_4, class)
		}
	}
}

func TestClassifyMotorwayPaintedLane(t *testing.T) {
	attrs, _ := Normalize(osm.Tags{
		{Key: "highway", Value: "motorway"},
		{Key: "cycleway", Value: "lane"},
	})
	class := Classify(attrs)
	if class != LTS_4 {
		t.Errorf("Motorway with a painted lane must be %s, but got %s", LTS_4, class)
	}
}

func TestClassifyBufferedLane(t *testing.T) {
	cases := []struct {
		speedKph int
		lanes    int
		class    StressClass
	}{
		{40, 1, LTS_1},
		{30, 1, LTS_1},
		{50, 1, LTS_2},
		{50, 3, LTS_2},
		{45, 2, LTS_2},
		{60, 1, LTS_3},
		{80, 4, LTS_3},
	}
	for _, testCase := range cases {
		attrs := CanonicalAttributes{
			LanesPerDirection: testCase.lanes,
			SpeedLimitKph:     testCase.speedKph,
			BikeFacility:      FACILITY_BUFFERED_LANE,
			Parking:           PARKING_NO,
			RoadClass:         ROAD_CLASS_ARTERIAL,
		}
		if class := Classify(attrs); class != testCase.class {
			t.Errorf("Buffered lane at %d km/h with %d lanes must be %s, but got %s", testCase.speedKph, testCase.lanes, testCase.class, class)
		}
	}
}

func TestClassifyPaintedLane(t *testing.T) {
	cases := []struct {
		speedKph int
		lanes    int
		parking  ParkingPresence
		class    StressClass
	}{
		{40, 1, PARKING_NO, LTS_2},
		{50, 1, PARKING_NO, LTS_3},
		{50, 3, PARKING_NO, LTS_3},
		{60, 1, PARKING_NO, LTS_4},
		// Parked cars push the class one level up
		{40, 1, PARKING_YES, LTS_3},
		{50, 1, PARKING_YES, LTS_4},
		// Unknown parking counts as parked cars
		{40, 1, PARKING_UNKNOWN, LTS_3},
		// Escalation never leaves the scale
		{60, 4, PARKING_YES, LTS_4},
	}
	for _, testCase := range cases {
		attrs := CanonicalAttributes{
			LanesPerDirection: testCase.lanes,
			SpeedLimitKph:     testCase.speedKph,
			BikeFacility:      FACILITY_PAINTED_LANE,
			Parking:           testCase.parking,
			RoadClass:         ROAD_CLASS_COLLECTOR,
		}
		if class := Classify(attrs); class != testCase.class {
			t.Errorf("Painted lane at %d km/h, %d lanes, parking %s must be %s, but got %s", testCase.speedKph, testCase.lanes, testCase.parking, testCase.class, class)
		}
	}
}

func TestClassifyMixedTraffic(t *testing.T) {
	cases := []struct {
		speedKph int
		lanes    int
		class    StressClass
	}{
		{30, 1, LTS_2},
		{40, 1, LTS_2},
		{40, 2, LTS_3},
		{50, 2, LTS_3},
		{50, 3, LTS_4},
		{30, 3, LTS_4},
		{60, 1, LTS_4},
	}
	for _, testCase := range cases {
		attrs := CanonicalAttributes{
			LanesPerDirection: testCase.lanes,
			SpeedLimitKph:     testCase.speedKph,
			BikeFacility:      FACILITY_NONE,
			Parking:           PARKING_UNKNOWN,
			RoadClass:         ROAD_CLASS_COLLECTOR,
		}
		if class := Classify(attrs); class != testCase.class {
			t.Errorf("Mixed traffic at %d km/h with %d lanes must be %s, but got %s", testCase.speedKph, testCase.lanes, testCase.class, class)
		}
	}
}

func TestClassifyTotality(t *testing.T) {
	facilities := []BikeFacility{FACILITY_NONE, FACILITY_PAINTED_LANE, FACILITY_BUFFERED_LANE, FACILITY_SEPARATED, FACILITY_OFF_STREET}
	classes := []RoadClass{ROAD_CLASS_LOCAL, ROAD_CLASS_COLLECTOR, ROAD_CLASS_ARTERIAL, ROAD_CLASS_HIGHWAY, ROAD_CLASS_OTHER}
	parking := []ParkingPresence{PARKING_UNKNOWN, PARKING_YES, PARKING_NO}
	speeds := []int{0, 20, 30, 40, 41, 50, 51, 60, 100, 130}
	lanes := []int{0, 1, 2, 3, 4, 8}
	for _, facility := range facilities {
		for _, roadClass := range classes {
			for _, parkingValue := range parking {
				for _, speed := range speeds {
					for _, lanesNum := range lanes {
						attrs := CanonicalAttributes{
							LanesPerDirection: lanesNum,
							SpeedLimitKph:     speed,
							BikeFacility:      facility,
							Parking:           parkingValue,
							RoadClass:         roadClass,
						}
						class := Classify(attrs)
						if class < LTS_1 || class > LTS_4 {
							t.Errorf("Every attribute combination must classify, got %d for %v", class, attrs)
						}
					}
				}
			}
		}
	}
}

func TestClassifyMonotonicity(t *testing.T) {
	facilities := []BikeFacility{FACILITY_NONE, FACILITY_PAINTED_LANE, FACILITY_BUFFERED_LANE}
	parking := []ParkingPresence{PARKING_UNKNOWN, PARKING_YES, PARKING_NO}
	speeds := []int{10, 20, 30, 40, 45, 50, 55, 60, 80, 100}
	lanes := []int{0, 1, 2, 3, 4, 5}
	for _, facility := range facilities {
		for _, parkingValue := range parking {
			// Hold lanes, raise speed
			for _, lanesNum := range lanes {
				previous := StressClass(0)
				for _, speed := range speeds {
					attrs := CanonicalAttributes{
						LanesPerDirection: lanesNum,
						SpeedLimitKph:     speed,
						BikeFacility:      facility,
						Parking:           parkingValue,
						RoadClass:         ROAD_CLASS_COLLECTOR,
					}
					class := Classify(attrs)
					if class < previous {
						t.Errorf("Class must not drop when speed grows: facility %s, %d lanes, %d km/h gave %s after %s", facility, lanesNum, speed, class, previous)
					}
					previous = class
				}
			}
			// Hold speed, add lanes
			for _, speed := range speeds {
				previous := StressClass(0)
				for _, lanesNum := range lanes {
					attrs := CanonicalAttributes{
						LanesPerDirection: lanesNum,
						SpeedLimitKph:     speed,
						BikeFacility:      facility,
						Parking:           parkingValue,
						RoadClass:         ROAD_CLASS_COLLECTOR,
					}
					class := Classify(attrs)
					if class < previous {
						t.Errorf("Class must not drop when lanes grow: facility %s, %d km/h, %d lanes gave %s after %s", facility, speed, lanesNum, class, previous)
					}
					previous = class
				}
			}
		}
	}
}

func TestClassifyUnmatchedAttributes(t *testing.T) {
	attrs := CanonicalAttributes{
		LanesPerDirection: 1,
		SpeedLimitKph:     30,
		BikeFacility:      BikeFacility(255),
		Parking:           PARKING_NO,
		RoadClass:         ROAD_CLASS_LOCAL,
	}
	class, name, matched := evalStressRules(attrs)
	if matched {
		t.Errorf("Broken facility value should not match any rule, but matched '%s'", name)
	}
	if class != LTS_4 {
		t.Errorf("Unmatched attributes must fall back to %s, but got %s", LTS_4, class)
	}
}

func TestClassifyGraphDeterminism(t *testing.T) {
	ways, nodes := gridFixture()
	analyzer := NewAnalyzer("")
	serial, err := analyzer.RunData(ways, nodes)
	if err != nil {
		t.Error(err)
		return
	}
	parallel, err := NewAnalyzer("", WithWorkersNum(4)).RunData(ways, nodes)
	if err != nil {
		t.Error(err)
		return
	}
	if len(serial.Graph.Edges) != len(parallel.Graph.Edges) {
		t.Errorf("Same input must give same edges: %d != %d", len(serial.Graph.Edges), len(parallel.Graph.Edges))
	}
	for id, edge := range serial.Graph.Edges {
		other, ok := parallel.Graph.Edges[id]
		if !ok {
			t.Errorf("Edge '%d' missing from parallel run", id)
			continue
		}
		if edge.Stress != other.Stress {
			t.Errorf("Edge '%d' classified %s serially but %s with workers", id, edge.Stress, other.Stress)
		}
	}
	for class := LTS_1; class <= LTS_4; class++ {
		if serial.Summary.EdgesByClass[class] != parallel.Summary.EdgesByClass[class] {
			t.Errorf("Per-class count for %s differs: %d != %d", class, serial.Summary.EdgesByClass[class], parallel.Summary.EdgesByClass[class])
		}
	}
}

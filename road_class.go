package lts

// RoadClass is the functional class of a street derived from its 'highway' tag.
type RoadClass uint16

const (
	ROAD_CLASS_LOCAL = RoadClass(iota + 1)
	ROAD_CLASS_COLLECTOR
	ROAD_CLASS_ARTERIAL
	ROAD_CLASS_HIGHWAY
	ROAD_CLASS_OTHER
)

func (iotaIdx RoadClass) String() string {
	return [...]string{"local", "collector", "arterial", "highway", "other"}[iotaIdx-1]
}

var (
	roadClassByHighway = map[string]RoadClass{
		"motorway":       ROAD_CLASS_HIGHWAY,
		"motorway_link":  ROAD_CLASS_HIGHWAY,
		"trunk":          ROAD_CLASS_HIGHWAY,
		"trunk_link":     ROAD_CLASS_HIGHWAY,
		"primary":        ROAD_CLASS_ARTERIAL,
		"primary_link":   ROAD_CLASS_ARTERIAL,
		"secondary":      ROAD_CLASS_ARTERIAL,
		"secondary_link": ROAD_CLASS_ARTERIAL,
		"tertiary":       ROAD_CLASS_COLLECTOR,
		"tertiary_link":  ROAD_CLASS_COLLECTOR,
		"unclassified":   ROAD_CLASS_COLLECTOR,
		"residential":    ROAD_CLASS_LOCAL,
		"living_street":  ROAD_CLASS_LOCAL,
		"service":        ROAD_CLASS_LOCAL,
	}

	// Assumed number of lanes per direction when the 'lanes' tag is missing or broken
	defaultLanesByRoadClass = map[RoadClass]int{
		ROAD_CLASS_LOCAL:     1,
		ROAD_CLASS_COLLECTOR: 1,
		ROAD_CLASS_ARTERIAL:  2,
		ROAD_CLASS_HIGHWAY:   2,
		ROAD_CLASS_OTHER:     1,
	}

	// Assumed speed limit (km/h) when the 'maxspeed' tag is missing or broken
	defaultSpeedByRoadClass = map[RoadClass]int{
		ROAD_CLASS_LOCAL:     30,
		ROAD_CLASS_COLLECTOR: 40,
		ROAD_CLASS_ARTERIAL:  50,
		ROAD_CLASS_HIGHWAY:   100,
		ROAD_CLASS_OTHER:     30,
	}
)

package lts

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/paulmach/osm"
)

// CanonicalAttributes is the complete set of street properties the stress
// classifier works on. Every field is populated: missing or broken tags are
// replaced by documented defaults during normalization.
type CanonicalAttributes struct {
	LanesPerDirection int
	SpeedLimitKph     int
	BikeFacility      BikeFacility
	Parking           ParkingPresence
	RoadClass         RoadClass
	Oneway            bool
}

// Attribute names reported back when a default had to be applied
const (
	fieldRoadClass = "road_class"
	fieldLanes     = "lanes_per_direction"
	fieldSpeed     = "speed_limit_kph"
	fieldOneway    = "oneway"
)

const (
	kphPerMph = 1.609344
	// Speed assumed for `maxspeed` = national without a posted number
	nationalSpeedLimitKph = 40
)

var (
	mphRegExp   = regexp.MustCompile(`^(\d+\.?\d*)\s*mph$`)
	kmhRegExp   = regexp.MustCompile(`^(\d+\.?\d*)(?:\s*km/h)?$`)
	lanesRegExp = regexp.MustCompile(`\d+`)
)

// Normalize maps raw OSM tags to a complete attribute record. The returned
// list names the attributes which fell back to a default so callers can report
// them. Same tags always produce the same record.
func Normalize(tags osm.Tags) (CanonicalAttributes, []string) {
	attrs := CanonicalAttributes{}
	defaulted := []string{}

	// Road class from `highway`. Off-street values map to ROAD_CLASS_OTHER on
	// purpose and are not reported as a fallback.
	highway := tags.Find("highway")
	if class, ok := roadClassByHighway[highway]; ok {
		attrs.RoadClass = class
	} else {
		attrs.RoadClass = ROAD_CLASS_OTHER
		if _, offstreet := offstreetHighwayTags[highway]; !offstreet {
			defaulted = append(defaulted, fieldRoadClass)
		}
	}

	// Direction before lanes: per-direction lane math needs it
	oneway := tags.Find("oneway")
	switch oneway {
	case "yes", "1", "-1":
		attrs.Oneway = true
	case "no", "0", "":
		if _, ok := junctionTypes[tags.Find("junction")]; ok && oneway == "" {
			attrs.Oneway = true
		}
	default:
		if _, ok := onewayReversible[oneway]; !ok {
			defaulted = append(defaulted, fieldOneway)
		}
	}

	if lanesTotal, ok := parseLanes(tags.Find("lanes")); ok {
		if attrs.Oneway {
			attrs.LanesPerDirection = lanesTotal
		} else {
			attrs.LanesPerDirection = int(math.Ceil(float64(lanesTotal) / 2.0))
		}
	} else {
		attrs.LanesPerDirection = defaultLanesByRoadClass[attrs.RoadClass]
		defaulted = append(defaulted, fieldLanes)
	}

	if speed, ok := parseMaxspeed(tags.Find("maxspeed")); ok {
		attrs.SpeedLimitKph = speed
	} else {
		attrs.SpeedLimitKph = defaultSpeedByRoadClass[attrs.RoadClass]
		defaulted = append(defaulted, fieldSpeed)
	}

	attrs.BikeFacility = facilityFromTags(tags)
	attrs.Parking = parkingFromTags(tags)

	return attrs, defaulted
}

// parseLanes extracts the total number of lanes from a `lanes` tag value.
// Semicolon-separated lists take the widest value.
func parseLanes(lanes string) (int, bool) {
	if lanes == "" {
		return 0, false
	}
	if strings.Contains(lanes, ";") {
		maxLanes := 0
		found := false
		for _, part := range strings.Split(lanes, ";") {
			value, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				continue
			}
			found = true
			if value > maxLanes {
				maxLanes = value
			}
		}
		return maxLanes, found
	}
	lanesNum := lanesRegExp.FindString(lanes)
	if lanesNum == "" {
		return 0, false
	}
	value, err := strconv.Atoi(lanesNum)
	if err != nil {
		return 0, false
	}
	return value, true
}

// parseMaxspeed extracts a speed limit in km/h from a `maxspeed` tag value.
// Imperial values are converted and rounded to the nearest km/h.
func parseMaxspeed(maxspeed string) (int, bool) {
	maxspeed = strings.TrimSpace(maxspeed)
	if maxspeed == "" {
		return 0, false
	}
	if maxspeed == "national" {
		return nationalSpeedLimitKph, true
	}
	if matched := mphRegExp.FindStringSubmatch(maxspeed); matched != nil {
		value, err := strconv.ParseFloat(matched[1], 64)
		if err == nil {
			return int(math.Round(value * kphPerMph)), true
		}
	}
	if matched := kmhRegExp.FindStringSubmatch(maxspeed); matched != nil {
		value, err := strconv.ParseFloat(matched[1], 64)
		if err == nil {
			return int(math.Round(value)), true
		}
	}
	return 0, false
}

// isReversedOneway reports whether the node order runs against the allowed
// direction of travel.
func isReversedOneway(tags osm.Tags) bool {
	return tags.Find("oneway") == "-1"
}

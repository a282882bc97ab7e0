package lts

import (
	"github.com/paulmach/osm"
)

// BikeFacility is the best cycling infrastructure present on a street segment.
type BikeFacility uint16

const (
	FACILITY_NONE = BikeFacility(iota + 1)
	FACILITY_PAINTED_LANE
	FACILITY_BUFFERED_LANE
	FACILITY_SEPARATED
	FACILITY_OFF_STREET
)

func (iotaIdx BikeFacility) String() string {
	return [...]string{"none", "painted_lane", "buffered_lane", "separated", "off_street"}[iotaIdx-1]
}

type facilityIndicator struct {
	name     string
	facility BikeFacility
	match    func(tags osm.Tags) bool
}

// facilityIndicators is evaluated top to bottom and the first match wins, so
// an off-street path tagged with a lane keeps the stronger facility. Indicators
// are never merged.
var facilityIndicators = []facilityIndicator{
	{
		name:     "off-street path",
		facility: FACILITY_OFF_STREET,
		match: func(tags osm.Tags) bool {
			_, ok := offstreetHighwayTags[tags.Find("highway")]
			return ok
		},
	},
	{
		name:     "separated track",
		facility: FACILITY_SEPARATED,
		match: func(tags osm.Tags) bool {
			_, ok := cyclewaySeparatedValues[findCyclewayTag(tags)]
			return ok
		},
	},
	{
		name:     "buffered lane",
		facility: FACILITY_BUFFERED_LANE,
		match: func(tags osm.Tags) bool {
			if _, ok := cyclewayLaneValues[findCyclewayTag(tags)]; !ok {
				return false
			}
			return hasBufferTag(tags)
		},
	},
	{
		name:     "painted lane",
		facility: FACILITY_PAINTED_LANE,
		match: func(tags osm.Tags) bool {
			if _, ok := cyclewayLaneValues[findCyclewayTag(tags)]; ok {
				return true
			}
			return tags.Find("shoulder") == "yes"
		},
	},
}

// facilityFromTags picks the facility for a set of way tags.
func facilityFromTags(tags osm.Tags) BikeFacility {
	for _, indicator := range facilityIndicators {
		if indicator.match(tags) {
			return indicator.facility
		}
	}
	return FACILITY_NONE
}

// findCyclewayTag returns the first non-empty cycleway-family tag value.
func findCyclewayTag(tags osm.Tags) string {
	for _, key := range cyclewayTagKeys {
		if value := tags.Find(key); value != "" {
			return value
		}
	}
	return ""
}

// hasBufferTag reports whether any buffer tag carries a truthy value.
func hasBufferTag(tags osm.Tags) bool {
	for _, key := range cyclewayBufferKeys {
		value := tags.Find(key)
		if value != "" && value != "no" && value != "0" {
			return true
		}
	}
	return false
}

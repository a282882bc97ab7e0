package lts

import (
	"github.com/paulmach/osm"
)

// ParkingPresence tells whether cars park along the curb. The zero value is
// PARKING_UNKNOWN so an untagged street stays unknown rather than parking-free.
type ParkingPresence uint16

const (
	PARKING_UNKNOWN = ParkingPresence(iota)
	PARKING_YES
	PARKING_NO
)

func (iotaIdx ParkingPresence) String() string {
	return [...]string{"unknown", "yes", "no"}[iotaIdx]
}

// parkingFromTags inspects the parking:lane family of tags.
func parkingFromTags(tags osm.Tags) ParkingPresence {
	for _, key := range parkingLaneKeys {
		value := tags.Find(key)
		if value == "" {
			continue
		}
		if _, ok := parkingYesValues[value]; ok {
			return PARKING_YES
		}
		if _, ok := parkingNoValues[value]; ok {
			return PARKING_NO
		}
	}
	return PARKING_UNKNOWN
}

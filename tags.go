package lts

var (
	// Highway values mapped to cycling infrastructure away from motor traffic
	offstreetHighwayTags = map[string]struct{}{
		"cycleway":   {},
		"footway":    {},
		"path":       {},
		"pedestrian": {},
		"track":      {},
	}

	negligibleHighwayTags = map[string]struct{}{
		"construction": {},
		"proposed":     {},
		"raceway":      {},
		"bridleway":    {},
		"rest_area":    {},
		"su":           {},
		"road":         {},
		"abandoned":    {},
		"planned":      {},
		"trailhead":    {},
		"stairs":       {},
		"steps":        {},
		"dismantled":   {},
		"disused":      {},
		"razed":        {},
		"access":       {},
		"corridor":     {},
		"elevator":     {},
		"escalator":    {},
		"bus_stop":     {},
		"platform":     {},
		"stop":         {},
	}

	// Service ways no cyclist rides for transportation
	excludedServiceTags = map[string]struct{}{
		"parking_aisle":    {},
		"driveway":         {},
		"parking":          {},
		"emergency_access": {},
		"private":          {},
	}

	junctionTypes = map[string]struct{}{
		"circular":   {},
		"roundabout": {},
	}

	// See ref.: https://wiki.openstreetmap.org/wiki/Tag:oneway%3Dreversible
	onewayReversible = map[string]struct{}{
		"reversible":  {},
		"alternating": {},
	}

	// Keys checked in order, the bare key first
	cyclewayTagKeys = []string{
		"cycleway",
		"cycleway:left",
		"cycleway:right",
		"cycleway:both",
	}

	cyclewayBufferKeys = []string{
		"cycleway:buffer",
		"cycleway:left:buffer",
		"cycleway:right:buffer",
		"cycleway:both:buffer",
	}

	cyclewaySeparatedValues = map[string]struct{}{
		"track":          {},
		"opposite_track": {},
		"separate":       {},
	}

	cyclewayLaneValues = map[string]struct{}{
		"lane":          {},
		"opposite_lane": {},
	}

	parkingLaneKeys = []string{
		"parking:lane",
		"parking:lane:left",
		"parking:lane:right",
		"parking:lane:both",
	}

	parkingYesValues = map[string]struct{}{
		"parallel":      {},
		"perpendicular": {},
		"diagonal":      {},
		"marked":        {},
		"yes":           {},
	}

	parkingNoValues = map[string]struct{}{
		"no":          {},
		"none":        {},
		"no_parking":  {},
		"no_stopping": {},
	}
)

package sweref

import "math"

// Plausible planar ranges for any of the SWEREF99 projections.
const (
	eastingMin  = 30000.0
	eastingMax  = 800000.0
	northingMin = 5900000.0
	northingMax = 7800000.0
)

type axisOrder struct {
	easting  float64
	northing float64
	warning  string
}

func isEastingValue(v float64) bool {
	return v >= eastingMin && v <= eastingMax
}

func isNorthingValue(v float64) bool {
	return v >= northingMin && v <= northingMax
}

// looksGeographic rejects latitude/longitude style input before any axis
// reasoning.
func looksGeographic(a, b float64) bool {
	if math.Abs(a) <= 90 && math.Abs(b) <= 180 {
		return true
	}

	return math.Abs(a) <= 90 && math.Abs(b) <= 90
}

// resolveAxisOrder decides which of the two values is the easting. The
// ambiguous branches default to input order and their warning conditions
// are intentionally not mirror images of each other; keep the structure
// as is.
func resolveAxisOrder(a, b float64) *axisOrder {
	aE, aN := isEastingValue(a), isNorthingValue(a)
	bE, bN := isEastingValue(b), isNorthingValue(b)

	switch {
	case aE && !aN && bN && !bE:
		return &axisOrder{easting: a, northing: b}

	case aN && !aE && bE && !bN:
		return &axisOrder{easting: b, northing: a}

	case aE && !bE && !bN:
		return &axisOrder{easting: a, northing: b}

	case bE && !aE && !aN:
		return &axisOrder{easting: b, northing: a}

	case aN && !bE && !bN:
		return &axisOrder{easting: b, northing: a}

	case bN && !aE && !aN:
		return &axisOrder{easting: a, northing: b}

	case aE && bN:
		// both readings may be range-valid; default to easting first
		res := &axisOrder{easting: a, northing: b}
		if bE && aN {
			res.warning = WarningAmbiguousOrder
		}

		return res

	case aN && bE:
		// default to northing first; warn only when the first value
		// could also be an easting
		res := &axisOrder{easting: b, northing: a}
		if aE {
			res.warning = WarningAmbiguousOrder
		}

		return res
	}

	return nil
}

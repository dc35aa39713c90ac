package sweref

import (
	"math"
	"sort"
)

// Preference narrows detection to one projection family.
type Preference string

const (
	PreferAuto Preference = "auto"
	PreferTM   Preference = "tm"
	PreferZone Preference = "zone"
)

const (
	tmLikelyMin = 300000.0
	tmLikelyMax = 700000.0

	zoneLikelyMin = 50000.0
	zoneLikelyMax = 250000.0

	// boundaryBuffer is the proximity (in meters) at which a chosen
	// projection's easting limits trigger a warning.
	boundaryBuffer = 5000.0
)

// DetectionResult ranks the projections an (easting, northing) pair may
// belong to.
type DetectionResult struct {
	Projection   *Projection   `json:"projection"`
	Confidence   float64       `json:"confidence"`
	Alternatives []*Projection `json:"alternatives,omitempty"`
	Warnings     []string      `json:"warnings,omitempty"`
}

// DetectProjection matches the pair against the fixed table. The map
// center longitude, when known, ranks competing zone candidates by
// central meridian proximity; hasLongitude tells whether centerLon holds
// a value.
func DetectProjection(easting, northing float64, centerLon float64, hasLongitude bool, pref Preference) *DetectionResult {
	tmLikely := easting >= tmLikelyMin && easting <= tmLikelyMax
	zoneLikely := easting >= zoneLikelyMin && easting <= zoneLikelyMax

	var zoneCandidates []*Projection

	if zoneLikely {
		for _, z := range Zones() {
			if z.Bounds.Contains(easting, northing) {
				zoneCandidates = append(zoneCandidates, z)
			}
		}
	}

	ranked := hasLongitude && len(zoneCandidates) > 1
	if ranked {
		rankZones(zoneCandidates, centerLon)
	}

	res := resolve(tmLikely, zoneCandidates, ranked, pref)

	if res.Projection != nil {
		if nearBoundary(easting, res.Projection.Bounds) {
			res.Warnings = append(res.Warnings, WarningNearBoundary)
		}
	}

	return res
}

func resolve(tmLikely bool, zones []*Projection, ranked bool, pref Preference) *DetectionResult {
	switch {
	case pref == PreferZone && len(zones) > 0:
		return &DetectionResult{Projection: zones[0], Confidence: 1.0, Alternatives: zones[1:]}

	case pref == PreferTM && tmLikely:
		return &DetectionResult{Projection: TM(), Confidence: 0.9, Alternatives: zones}

	case len(zones) == 1:
		return &DetectionResult{Projection: zones[0], Confidence: 1.0}

	case len(zones) > 1:
		conf := 0.7
		if ranked {
			conf = 0.85
		}

		return &DetectionResult{Projection: zones[0], Confidence: conf, Alternatives: zones[1:]}

	case tmLikely:
		return &DetectionResult{Projection: TM(), Confidence: 0.6}
	}

	return &DetectionResult{Confidence: 0, Warnings: []string{ErrorNoProjection}}
}

// rankZones sorts candidates by distance between their central meridian
// and the meridian of the zone nearest to the map center longitude. With
// all zones sharing one envelope this is the only disambiguation signal.
func rankZones(zones []*Projection, centerLon float64) {
	ref := nearestZoneMeridian(centerLon)

	sort.SliceStable(zones, func(i, j int) bool {
		return math.Abs(zones[i].CentralMeridian-ref) < math.Abs(zones[j].CentralMeridian-ref)
	})
}

func nearestZoneMeridian(lon float64) float64 {
	best := Zones()[0].CentralMeridian

	for _, z := range Zones() {
		if math.Abs(z.CentralMeridian-lon) < math.Abs(best-lon) {
			best = z.CentralMeridian
		}
	}

	return best
}

func nearBoundary(easting float64, b Bounds) bool {
	return math.Abs(easting-b.EMin) <= boundaryBuffer || math.Abs(b.EMax-easting) <= boundaryBuffer
}

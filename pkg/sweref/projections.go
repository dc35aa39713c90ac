package sweref

import "fmt"

// Kind tells the national TM projection and the local zones apart.
type Kind string

const (
	KindTM   Kind = "tm"
	KindZone Kind = "zone"
)

type Bounds struct {
	EMin float64 `yaml:"e_min" json:"e_min"`
	EMax float64 `yaml:"e_max" json:"e_max"`
	NMin float64 `yaml:"n_min" json:"n_min"`
	NMax float64 `yaml:"n_max" json:"n_max"`
}

func (b Bounds) Contains(e, n float64) bool {
	return e >= b.EMin && e <= b.EMax && n >= b.NMin && n <= b.NMax
}

type Projection struct {
	ID              string  `yaml:"id" json:"id"`
	EPSG            int     `yaml:"epsg" json:"epsg"`
	Name            string  `yaml:"name" json:"name"`
	Kind            Kind    `yaml:"kind" json:"kind"`
	CentralMeridian float64 `yaml:"central_meridian" json:"central_meridian"`
	ScaleFactor     float64 `yaml:"scale_factor" json:"scale_factor"`
	FalseEasting    float64 `yaml:"false_easting" json:"false_easting"`
	FalseNorthing   float64 `yaml:"false_northing" json:"false_northing"`
	Bounds          Bounds  `yaml:"bounds" json:"bounds"`
}

// Global SWEREF99 envelope, used when no projection has been detected.
var GlobalBounds = Bounds{EMin: 30000, EMax: 800000, NMin: 5900000, NMax: 7800000}

var (
	tmBounds = Bounds{EMin: 250000, EMax: 920000, NMin: 6110000, NMax: 7690000}

	// All zone projections share one envelope. Disambiguation between
	// zones is done by central meridian, not by exact zone geometry.
	zoneBounds = Bounds{EMin: 50000, EMax: 250000, NMin: 6100000, NMax: 7700000}
)

var projections = buildProjections()

func buildProjections() []*Projection {
	res := []*Projection{
		{
			ID:              "sweref_99_tm",
			EPSG:            3006,
			Name:            "SWEREF 99 TM",
			Kind:            KindTM,
			CentralMeridian: 15.0,
			ScaleFactor:     0.9996,
			FalseEasting:    500000,
			FalseNorthing:   0,
			Bounds:          tmBounds,
		},
	}

	zones := []struct {
		epsg     int
		meridian float64
	}{
		{3007, 12.0},
		{3008, 13.5},
		{3009, 15.0},
		{3010, 16.5},
		{3011, 18.0},
		{3012, 14.25},
		{3013, 15.75},
		{3014, 17.25},
		{3015, 18.75},
		{3016, 20.25},
		{3017, 21.75},
		{3018, 23.25},
	}

	for _, z := range zones {
		res = append(res, &Projection{
			ID:              zoneID(z.meridian),
			EPSG:            z.epsg,
			Name:            zoneName(z.meridian),
			Kind:            KindZone,
			CentralMeridian: z.meridian,
			ScaleFactor:     1.0,
			FalseEasting:    150000,
			FalseNorthing:   0,
			Bounds:          zoneBounds,
		})
	}

	return res
}

func zoneID(meridian float64) string {
	deg := int(meridian)
	minutes := int((meridian - float64(deg)) * 60)

	return fmt.Sprintf("sweref_99_%02d%02d", deg, minutes)
}

func zoneName(meridian float64) string {
	deg := int(meridian)
	minutes := int((meridian - float64(deg)) * 60)

	return fmt.Sprintf("SWEREF 99 %02d %02d", deg, minutes)
}

// Projections returns the fixed table: one TM definition and twelve zones.
// The returned slice must not be modified.
func Projections() []*Projection {
	return projections
}

func TM() *Projection {
	return projections[0]
}

func Zones() []*Projection {
	return projections[1:]
}

// ByEPSG returns the projection with the given EPSG code, if any.
func ByEPSG(code int) *Projection {
	for _, p := range projections {
		if p.EPSG == code {
			return p
		}
	}

	return nil
}

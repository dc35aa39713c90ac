package transform

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/swegeo/swesearch/pkg/sweref"
)

const (
	SRIDWgs84       = 4326
	SRIDWebMercator = 3857
)

// SwerefModule is the built-in projection engine. It converts between the
// thirteen SWEREF99 definitions, WGS84 and Web Mercator through a
// geodetic intermediate.
type SwerefModule struct {
	loaded atomic.Bool
	byEPSG map[int]*sweref.Projection
}

func NewSwerefModule() *SwerefModule {
	return &SwerefModule{}
}

func (m *SwerefModule) Name() string {
	return "sweref99"
}

func (m *SwerefModule) Load(_ context.Context) error {
	byEPSG := make(map[int]*sweref.Projection)

	for _, p := range sweref.Projections() {
		byEPSG[p.EPSG] = p
	}

	m.byEPSG = byEPSG
	m.loaded.Store(true)

	return nil
}

func (m *SwerefModule) Project(p Point, targetSRID int) (Point, error) {
	if !m.loaded.Load() {
		return Point{}, fmt.Errorf("module %s is not loaded", m.Name())
	}

	if p.SRID == targetSRID {
		return p, nil
	}

	lat, lon, err := m.toGeodetic(p)
	if err != nil {
		return Point{}, err
	}

	return m.fromGeodetic(lat, lon, targetSRID)
}

func (m *SwerefModule) toGeodetic(p Point) (lat, lon float64, err error) {
	switch {
	case p.SRID == SRIDWgs84:
		return p.Y, p.X, nil

	case p.SRID == SRIDWebMercator:
		lat, lon = sweref.FromWebMercator(p.X, p.Y)

		return lat, lon, nil
	}

	proj, ok := m.byEPSG[p.SRID]
	if !ok {
		return 0, 0, fmt.Errorf("unsupported source srid %d", p.SRID)
	}

	lat, lon = sweref.Inverse(p.X, p.Y, proj)

	return lat, lon, nil
}

func (m *SwerefModule) fromGeodetic(lat, lon float64, srid int) (Point, error) {
	switch {
	case srid == SRIDWgs84:
		return Point{X: lon, Y: lat, SRID: srid}, nil

	case srid == SRIDWebMercator:
		x, y := sweref.ToWebMercator(lat, lon)

		return Point{X: x, Y: y, SRID: srid}, nil
	}

	proj, ok := m.byEPSG[srid]
	if !ok {
		return Point{}, fmt.Errorf("unsupported target srid %d", srid)
	}

	e, n := sweref.Forward(lat, lon, proj)

	return Point{X: e, Y: n, SRID: srid}, nil
}

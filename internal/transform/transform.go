package transform

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/swegeo/swesearch/pkg/sweref"
)

var ErrNotFinite = errors.New("transform produced non-finite coordinates")

// Transformer converts a validated source point into the host map's
// spatial reference, loading the projection module on first use.
type Transformer struct {
	module Module
	loader *Loader
}

func New(module Module, loadTimeout time.Duration) *Transformer {
	return &Transformer{
		module: module,
		loader: NewLoader(loadTimeout),
	}
}

// Transform projects (easting, northing) in proj into targetSRID. When
// the source reference already matches the target the point is returned
// as is, without touching the module.
func (t *Transformer) Transform(ctx context.Context, easting, northing float64, proj *sweref.Projection, targetSRID int) (Point, error) {
	src := Point{X: easting, Y: northing, SRID: proj.EPSG}

	if proj.EPSG == targetSRID {
		return src, nil
	}

	if err := t.loader.Load(ctx, t.module); err != nil {
		return Point{}, err
	}

	res, err := t.module.Project(src, targetSRID)
	if err != nil {
		return Point{}, err
	}

	if !finite(res.X) || !finite(res.Y) {
		return Point{}, ErrNotFinite
	}

	if res.SRID == 0 {
		res.SRID = targetSRID
	}

	return res, nil
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

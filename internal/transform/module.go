package transform

import (
	"context"
	"fmt"
)

// Point is a projected or geodetic position tagged with its spatial
// reference.
type Point struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	SRID int     `json:"srid"`
}

// Module is a projection-computation engine. Load may be slow and is
// called through a memoizing loader; Project is synchronous and must only
// be called after a successful Load.
type Module interface {
	Name() string
	Load(ctx context.Context) error
	Project(p Point, targetSRID int) (Point, error)
}

// LoadError reports a failed or timed out module load.
type LoadError struct {
	Module string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %s", e.Module, e.Err.Error())
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

package sweref

import "math"

// ValidationResult reports whether a pair is usable and with which
// caveats.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Validate re-checks the pair against the detected projection's bounds,
// or against the global SWEREF99 envelope when no projection is given.
func Validate(easting, northing float64, proj *Projection) *ValidationResult {
	if !isFinite(easting) || !isFinite(northing) {
		return &ValidationResult{Errors: []string{ErrorInvalidNumber}}
	}

	bounds := GlobalBounds
	errKey := ErrorOutOfRange

	if proj != nil {
		bounds = proj.Bounds
		errKey = ErrorOutOfBounds
	}

	if !bounds.Contains(easting, northing) {
		return &ValidationResult{Errors: []string{errKey}}
	}

	res := &ValidationResult{Valid: true}

	if nearBoundary(easting, bounds) {
		res.Warnings = append(res.Warnings, WarningNearBoundary)
	}

	return res
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

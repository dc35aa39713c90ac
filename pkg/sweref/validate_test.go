package sweref

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateGlobal(t *testing.T) {
	res := Validate(500000, 6500000, nil)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)

	res = Validate(900000, 6500000, nil)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, ErrorOutOfRange)

	res = Validate(500000, 5000000, nil)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, ErrorOutOfRange)
}

func TestValidateWithProjection(t *testing.T) {
	tm := TM()

	res := Validate(500000, 6500000, tm)
	assert.True(t, res.Valid)

	res = Validate(100000, 6500000, tm)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, ErrorOutOfBounds)
}

func TestValidateNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		res := Validate(v, 6500000, nil)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, ErrorInvalidNumber)

		res = Validate(500000, v, nil)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors, ErrorInvalidNumber)
	}
}

func TestValidateBoundaryProximity(t *testing.T) {
	tm := TM()

	// exactly 5000 from eMin warns, 5001 does not
	res := Validate(tm.Bounds.EMin+5000, 6500000, tm)
	assert.True(t, res.Valid)
	assert.Contains(t, res.Warnings, WarningNearBoundary)

	res = Validate(tm.Bounds.EMin+5001, 6500000, tm)
	assert.True(t, res.Valid)
	assert.NotContains(t, res.Warnings, WarningNearBoundary)

	res = Validate(tm.Bounds.EMax-5000, 6500000, tm)
	assert.True(t, res.Valid)
	assert.Contains(t, res.Warnings, WarningNearBoundary)

	res = Validate(tm.Bounds.EMax-5001, 6500000, tm)
	assert.True(t, res.Valid)
	assert.NotContains(t, res.Warnings, WarningNearBoundary)
}

package sweref

// Error and warning keys are opaque identifiers; mapping them to
// user-facing text is the caller's job.
const (
	ErrorEmpty         = "coordinateErrorEmpty"
	ErrorTooLong       = "coordinateErrorTooLong"
	ErrorParse         = "coordinateErrorParse"
	ErrorNotSweref     = "coordinateErrorNotSweref"
	ErrorInvalidNumber = "coordinateErrorInvalidNumber"
	ErrorOutOfRange    = "coordinateErrorOutOfRange"
	ErrorOutOfBounds   = "coordinateErrorOutOfBounds"
	ErrorNoProjection  = "coordinateErrorNoProjection"
	ErrorTransform     = "coordinateErrorTransform"

	WarningAmbiguousOrder = "coordinateWarningAmbiguousOrder"
	WarningNearBoundary   = "coordinateWarningNearBoundary"
)

// KeyError is an error that carries one of the coordinate keys above.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return e.Key
}

func NewKeyError(key string) *KeyError {
	return &KeyError{Key: key}
}

// KeyOf returns the coordinate key of err, or ErrorTransform for errors
// raised outside the key vocabulary.
func KeyOf(err error) string {
	if e, ok := err.(*KeyError); ok {
		return e.Key
	}

	return ErrorTransform
}

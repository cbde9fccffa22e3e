package model

import "errors"

var (
	// ErrInvalidConfig is returned for configuration values outside their domain.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrUnknownFunction is returned when a reference function name cannot be resolved.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrInvalidDegree is returned for negative polynomial degrees.
	ErrInvalidDegree = errors.New("invalid degree")
	// ErrEmptySampleSet is returned when fitting without any samples.
	ErrEmptySampleSet = errors.New("empty sample set")
	// ErrNonFinite is returned when samples contain NaN or Inf values.
	ErrNonFinite = errors.New("non-finite value")
)

// IsConfigError reports whether the error is caused by the configuration of a run,
// rather than by the computation itself.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrUnknownFunction) ||
		errors.Is(err, ErrInvalidDegree)
}

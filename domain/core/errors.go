package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Invalid-argument errors
	ErrInvalidArgument = errors.New("invalid argument")
	ErrTooFewGroups    = fmt.Errorf("%w: at least 2 groups required", ErrInvalidArgument)
	ErrNoTrials        = fmt.Errorf("%w: trial count must be positive", ErrInvalidArgument)
	ErrBadAlpha        = fmt.Errorf("%w: alpha must be in (0, 1]", ErrInvalidArgument)
	ErrBadSampleSize   = fmt.Errorf("%w: sample size must be positive", ErrInvalidArgument)

	// Numerical errors surfaced by the test statistics
	ErrDegenerateSample = errors.New("degenerate sample: test statistic undefined")

	// Lookup errors
	ErrNotFound          = errors.New("resource not found")
	ErrProcedureNotFound = fmt.Errorf("%w: procedure", ErrNotFound)
)

// Error constructors with context
func NewInvalidArgumentError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidArgument, field, reason)
}

func NewDegenerateSampleError(detail string) error {
	return fmt.Errorf("%w: %s", ErrDegenerateSample, detail)
}

// Error checking helpers
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsDegenerateSample(err error) bool {
	return errors.Is(err, ErrDegenerateSample)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

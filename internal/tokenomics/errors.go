package tokenomics

import "errors"

var (
	// ErrUnknownCategory indicates a parameter section name that does not exist.
	ErrUnknownCategory = errors.New("tokenomics: unknown parameter category")

	// ErrNonNumericParameter indicates a parameter name that is missing or does
	// not resolve to a numeric value.
	ErrNonNumericParameter = errors.New("tokenomics: parameter is not a numeric value")

	// ErrInvalidHorizon indicates a simulation horizon outside [0, MaxMonths].
	ErrInvalidHorizon = errors.New("tokenomics: horizon out of range")
)

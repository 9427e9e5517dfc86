package qrng

import "errors"

// Error kinds surfaced by the parameter engine. Each failure wraps exactly
// one of these, so callers can dispatch with errors.Is and react per kind,
// e.g. by collecting more raw bits on ErrInfeasible. No error is retried
// internally.
var (
	// ErrInputSize indicates mismatched or empty label/outcome sequences.
	ErrInputSize = errors.New("qrng: bad input size")

	// ErrDomain indicates a value outside its valid mathematical range.
	ErrDomain = errors.New("qrng: domain error")

	// ErrInfeasible indicates a computed extractor output size is negative:
	// the supplied raw bits cannot support extraction at the requested
	// security level.
	ErrInfeasible = errors.New("qrng: infeasible extractor configuration")

	// ErrSearchExhausted indicates the modulus search dropped below its
	// lower bound without finding a valid modulus.
	ErrSearchExhausted = errors.New("qrng: modulus search exhausted")
)

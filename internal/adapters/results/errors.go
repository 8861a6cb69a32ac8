package results

import "errors"

// Sentinel kinds for results-provider errors.
var (
	ErrRequest       = errors.New("results request failed")
	ErrUpstream      = errors.New("results provider returned an error")
	ErrMatchNotFound = errors.New("match not found")
	ErrDecode        = errors.New("results response decode failed")
)

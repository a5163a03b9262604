package domain

import (
	"errors"
)

// Error taxonomy for the recommendation core. Only these two are surfaced to
// callers as error outcomes; everything else degrades to safe defaults and is
// recorded in the decision trace. Consent absence is a terminal result, not
// an error.
var (
	// ErrNotFound means the user id is unknown to the data-access layer.
	ErrNotFound = errors.New("user not found")

	// ErrInvalidWindow means the requested window is outside the supported
	// set. Rejected before any computation.
	ErrInvalidWindow = errors.New("invalid window")
)

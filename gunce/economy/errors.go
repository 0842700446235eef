// Package economy holds the shared error taxonomy of the virtual economy
// engine. Every operation surfaces one of these so the API layer can map
// "not enough gems" and "try again later" to different responses.
package economy

import "errors"

var (
	// ErrProfileNotFound means the acting user has no profile row.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrAlreadyClaimed means the daily reward was already claimed on the
	// current calendar day. Expected outcome, not a fault.
	ErrAlreadyClaimed = errors.New("daily reward already claimed today")

	// ErrInsufficientFunds means the gem balance does not cover the crate
	// cost. No mutation has occurred.
	ErrInsufficientFunds = errors.New("insufficient gems")

	// ErrUnknownBadge means the badge identifier is not in the catalog.
	ErrUnknownBadge = errors.New("unknown badge")

	// ErrOpenInProgress means another crate open for the same user is still
	// in flight (duplicate click or network retry).
	ErrOpenInProgress = errors.New("crate open already in progress")
)

// Package outcome decides whether a settled bet wins or loses.
//
// Settlement takes the decision through the Provider interface so tests
// can pin the result; production picks an implementation via config.
package outcome

import "math/rand/v2"

// Provider yields a win/lose decision for one settlement. Calls are
// synchronous and never block on I/O.
type Provider interface {
	DetermineOutcome() bool
}

// Coin is a fair 50/50 provider.
type Coin struct{}

func (Coin) DetermineOutcome() bool {
	return rand.IntN(2) == 0
}

// Fixed always returns the configured result. Test helper.
type Fixed bool

func (f Fixed) DetermineOutcome() bool {
	return bool(f)
}

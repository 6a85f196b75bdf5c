package process

import "github.com/google/uuid"

// Session is the state that lives for exactly one page load. Owned by the
// mutation coordination layer and passed by reference into everything that
// reads or sets it; no ambient globals.
type Session struct {
	ID uuid.UUID

	// Sorted latches true the first time the listing is observed holding a
	// complete page of items and the one-shot sort runs. Never reset, even
	// if more items load later.
	Sorted bool

	// CurrencyResolved latches true once the currency element first becomes
	// readable. The currency observer is terminal after that.
	CurrencyResolved bool
}

// NewSession starts state for a fresh page load.
func NewSession() *Session {
	return &Session{ID: uuid.New()}
}

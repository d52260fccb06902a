package order

import "errors"

var (
	// ErrSessionNotFound means no checkout session matched the caller's
	// shop/user/session ids.
	ErrSessionNotFound = errors.New("checkout session not found")

	// ErrShipOptionNotAvailable means the caller selected a ship option id
	// with no eligible rated fee. Stale client state or a race with an
	// admin edit; the request fails rather than defaulting to free
	// shipping.
	ErrShipOptionNotAvailable = errors.New("ship option not available")

	// ErrRewardExceedsBalance means the caller tried to redeem more points
	// than the ledger holds for the user.
	ErrRewardExceedsBalance = errors.New("used reward exceeds balance")
)

package validator

import "github.com/dtdb/deckcheck/internal/restricted"

// Report is the outcome of validating a deck.
type Report struct {
	// BasicRules is true when no numeric, named, per-entry or group rule
	// failed. Unreleased cards and restricted lists do not affect it.
	BasicRules bool `json:"basicRules"`
	// RestrictedRules and NoBannedCards come from the first configured list.
	RestrictedRules   bool                `json:"restrictedRules"`
	NoBannedCards     bool                `json:"noBannedCards"`
	NoUnreleasedCards bool                `json:"noUnreleasedCards"`
	RestrictedLists   []restricted.Result `json:"restrictedLists"`
	DrawCount         int                 `json:"drawCount"`
	// ExtendedStatus lists every violation: rule messages first, then
	// unreleased cards, then restricted list errors.
	ExtendedStatus []string `json:"extendedStatus"`
}

// Valid reports whether the deck passed every rule, has no unreleased cards
// and is legal under the first restricted list.
func (r *Report) Valid() bool {
	return r.BasicRules && r.NoUnreleasedCards && r.RestrictedRules && r.NoBannedCards
}

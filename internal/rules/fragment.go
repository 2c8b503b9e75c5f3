// Package rules holds deck-building rule fragments and the combinator that
// merges them into the effective rule set for a deck.
package rules

import "github.com/dtdb/deckcheck/internal/card"

// CardPredicate reports something about a single card.
type CardPredicate func(c *card.Card) bool

// Check is a named deck condition. A deck fails the check when Condition
// returns false; Message is reported verbatim.
type Check struct {
	Message   string
	Condition func(deck *card.Deck) bool
}

// Limits holds the numeric overrides a fragment may contribute. A nil field
// means the fragment does not override it.
type Limits struct {
	RequiredDraw         *int
	RequiredPlots        *int
	MaxDoubledPlots      *int
	MaxJokerCount        *int
	MaxStartingCount     *int
	MaxStartingCoreCount *int
}

// Fragment is a partial rule set contributed by the base rules or by one
// special card (agenda, legend, outfit).
type Fragment struct {
	Limits

	MayInclude    CardPredicate
	CannotInclude CardPredicate
	Checks        []Check
}

// Int returns a pointer to v, for building Limits literals.
func Int(v int) *int {
	return &v
}

// IntOr dereferences v, falling back to def when v is nil.
func IntOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// override copies every field set on o into l.
func (l *Limits) override(o Limits) {
	if o.RequiredDraw != nil {
		l.RequiredDraw = o.RequiredDraw
	}
	if o.RequiredPlots != nil {
		l.RequiredPlots = o.RequiredPlots
	}
	if o.MaxDoubledPlots != nil {
		l.MaxDoubledPlots = o.MaxDoubledPlots
	}
	if o.MaxJokerCount != nil {
		l.MaxJokerCount = o.MaxJokerCount
	}
	if o.MaxStartingCount != nil {
		l.MaxStartingCount = o.MaxStartingCount
	}
	if o.MaxStartingCoreCount != nil {
		l.MaxStartingCoreCount = o.MaxStartingCoreCount
	}
}

// Table maps special card codes to the fragment they contribute.
type Table map[string]Fragment

// Select returns the fragments registered for codes, in the order of codes.
// Codes without a fragment contribute nothing.
func (t Table) Select(codes []string) []Fragment {
	var fragments []Fragment
	for _, code := range codes {
		if fragment, ok := t[code]; ok {
			fragments = append(fragments, fragment)
		}
	}
	return fragments
}

package rules

import "github.com/dtdb/deckcheck/internal/card"

// Effective is the rule set obtained by combining an ordered list of fragments.
type Effective struct {
	Limits

	mayInclude    []CardPredicate
	cannotInclude []CardPredicate
	checks        []Check
}

// Combine merges fragments in order. Numeric fields take the value of the last
// fragment that sets them. MayInclude and CannotInclude each become the logical
// OR of the fragments that define them. Checks are concatenated in fragment order.
func Combine(fragments ...Fragment) Effective {
	var eff Effective
	for _, f := range fragments {
		eff.Limits.override(f.Limits)
		if f.MayInclude != nil {
			eff.mayInclude = append(eff.mayInclude, f.MayInclude)
		}
		if f.CannotInclude != nil {
			eff.cannotInclude = append(eff.cannotInclude, f.CannotInclude)
		}
		eff.checks = append(eff.checks, f.Checks...)
	}
	return eff
}

// MayInclude reports whether any fragment explicitly allows c.
func (e Effective) MayInclude(c *card.Card) bool {
	return anyMatch(e.mayInclude, c)
}

// CannotInclude reports whether any fragment forbids c.
func (e Effective) CannotInclude(c *card.Card) bool {
	return anyMatch(e.cannotInclude, c)
}

// Checks returns the combined named checks. The slice must not be modified.
func (e Effective) Checks() []Check {
	return e.checks
}

// FailedChecks evaluates every check against deck and returns the messages of
// the ones that fail, in order.
func (e Effective) FailedChecks(deck *card.Deck) []string {
	var messages []string
	for _, check := range e.checks {
		if !check.Condition(deck) {
			messages = append(messages, check.Message)
		}
	}
	return messages
}

func anyMatch(predicates []CardPredicate, c *card.Card) bool {
	for _, p := range predicates {
		if p(c) {
			return true
		}
	}
	return false
}

package validator

import "github.com/dtdb/deckcheck/internal/card"

// Counts aggregates the draw zone of a deck.
type Counts struct {
	DrawCount         int
	JokerCount        int
	StartingCount     int
	StartingCoreCount int
	StartingCost      int
}

// AggregateCounts computes the draw zone totals of deck in a single pass.
// Jokers are counted separately and never start. Started copies contribute to
// StartingCount through the per-code multipliers of the options.
func (v *DeckValidator) AggregateCounts(deck *card.Deck) Counts {
	var counts Counts
	for _, cq := range deck.DrawCards {
		if cq.Card.IsType(card.TypeJoker) {
			counts.JokerCount += cq.Count
			continue
		}
		if cq.Starting > 0 {
			counts.StartingCount += cq.Starting * v.opts.startingMultiplier(cq.Card.Code)
			counts.StartingCost += cq.Card.Cost * cq.Starting
			if isCoreDeed(cq.Card) {
				counts.StartingCoreCount += cq.Starting
			}
		}
		counts.DrawCount += cq.Count
	}
	return counts
}

func isCoreDeed(c *card.Card) bool {
	return c.IsType(card.TypeDeed) && c.HasKeyword("core")
}

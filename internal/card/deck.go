package card

// CardQuantity pairs a card with the number of copies in a deck zone.
// Starting is the number of copies committed to the starting posse.
type CardQuantity struct {
	Card     *Card `json:"card"`
	Count    int   `json:"count"`
	Starting int   `json:"starting,omitempty"`
}

// Outfit is the outfit chosen by a deck together with its wealth budget.
// A nil Wealth means the deck declares no budget.
type Outfit struct {
	Card   *Card `json:"card"`
	Wealth *int  `json:"wealth,omitempty"`
}

// Deck is read-only input to validation.
type Deck struct {
	Name    string  `json:"name"`
	Faction string  `json:"faction,omitempty"`
	Outfit  *Outfit `json:"outfit,omitempty"`
	Legend  *Card   `json:"legend,omitempty"`
	Agendas []*Card `json:"agendas,omitempty"`

	DrawCards []CardQuantity `json:"drawCards"`
	PlotCards []CardQuantity `json:"plotCards,omitempty"`
}

// SpecialCards returns the special cards chosen by the deck in rule order:
// outfit, legend, then agendas.
func (d *Deck) SpecialCards() []*Card {
	var specials []*Card
	if d.Outfit != nil && d.Outfit.Card != nil {
		specials = append(specials, d.Outfit.Card)
	}
	if d.Legend != nil {
		specials = append(specials, d.Legend)
	}
	for _, agenda := range d.Agendas {
		if agenda != nil {
			specials = append(specials, agenda)
		}
	}
	return specials
}

// SpecialCodes returns the codes of SpecialCards.
func (d *Deck) SpecialCodes() []string {
	specials := d.SpecialCards()
	codes := make([]string, 0, len(specials))
	for _, c := range specials {
		codes = append(codes, c.Code)
	}
	return codes
}

// AllCards returns the draw zone followed by the plot zone.
func (d *Deck) AllCards() []CardQuantity {
	all := make([]CardQuantity, 0, len(d.DrawCards)+len(d.PlotCards))
	all = append(all, d.DrawCards...)
	return append(all, d.PlotCards...)
}

// UniqueCards returns each distinct card of the deck once, in first-appearance
// order across draw cards, plot cards and special cards.
func (d *Deck) UniqueCards() []*Card {
	seen := make(map[string]bool)
	var cards []*Card
	add := func(c *Card) {
		if c == nil || seen[c.Code] {
			return
		}
		seen[c.Code] = true
		cards = append(cards, c)
	}
	for _, cq := range d.DrawCards {
		add(cq.Card)
	}
	for _, cq := range d.PlotCards {
		add(cq.Card)
	}
	for _, c := range d.SpecialCards() {
		add(c)
	}
	return cards
}

// Count sums the copies of the given entries.
func Count(entries []CardQuantity) int {
	total := 0
	for _, cq := range entries {
		total += cq.Count
	}
	return total
}

// Filter returns the entries whose card satisfies keep.
func Filter(entries []CardQuantity, keep func(c *Card) bool) []CardQuantity {
	var out []CardQuantity
	for _, cq := range entries {
		if keep(cq.Card) {
			out = append(out, cq)
		}
	}
	return out
}

package rules

import (
	"fmt"
	"regexp"

	"github.com/dtdb/deckcheck/internal/card"
)

var shadowKeyword = regexp.MustCompile(`Shadow \(\d+\)`)

// AgendaTable returns the fragments contributed by A Game of Thrones agendas,
// keyed by agenda code.
func AgendaTable() Table {
	return Table{
		"01198": bannerRules("baratheon", "Baratheon"),
		"01199": bannerRules("greyjoy", "Greyjoy"),
		"01200": bannerRules("lannister", "Lannister"),
		"01201": bannerRules("martell", "Martell"),
		"01202": bannerRules("thenightswatch", "Night's Watch"),
		"01203": bannerRules("stark", "Stark"),
		"01204": bannerRules("targaryen", "Targaryen"),
		"01205": bannerRules("tyrell", "Tyrell"),

		// Fealty
		"01027": {
			Checks: []Check{{
				Message: "You cannot include more than 15 neutral cards in a deck with Fealty",
				Condition: func(deck *card.Deck) bool {
					return card.Count(card.Filter(deck.DrawCards, ofFaction(card.FactionNeutral))) <= 15
				},
			}},
		},
		// Kings of Summer
		"04037": seasonRules("Kings of Summer", "Winter"),
		// Kings of Winter
		"04038": seasonRules("Kings of Winter", "Summer"),
		// Rains of Castamere
		"05045": {
			Limits: Limits{RequiredPlots: Int(12)},
			Checks: []Check{{
				Message: "Rains of Castamere must contain exactly 5 different Scheme plots",
				Condition: func(deck *card.Deck) bool {
					schemes := card.Filter(deck.PlotCards, withTrait("Scheme"))
					return len(schemes) == 5 && card.Count(schemes) == 5
				},
			}},
		},
		// Alliance
		"06018": {
			Limits: Limits{RequiredDraw: Int(75)},
			Checks: []Check{{
				Message: "Alliance cannot have more than 2 Banner agendas",
				Condition: func(deck *card.Deck) bool {
					banners := 0
					for _, agenda := range deck.Agendas {
						if agenda.HasTrait("Banner") {
							banners++
						}
					}
					return banners <= 2
				},
			}},
		},
		// The Brotherhood Without Banners
		"06119": {
			CannotInclude: func(c *card.Card) bool {
				return c.IsType(card.TypeCharacter) && c.Loyal
			},
			Checks: []Check{{
				Message: "The Brotherhood Without Banners cannot include loyal characters",
				Condition: func(deck *card.Deck) bool {
					return len(card.Filter(deck.DrawCards, func(c *card.Card) bool {
						return c.IsType(card.TypeCharacter) && c.Loyal
					})) == 0
				},
			}},
		},
		// The Conclave
		"09045": traitCharacterRules("Maester", 12, "Must contain 12 or more Maester characters", card.Count),
		// The Wars To Come
		"10045": {Limits: Limits{RequiredPlots: Int(10), MaxDoubledPlots: Int(2)}},
		// The Free Folk
		"11079": {
			CannotInclude: func(c *card.Card) bool {
				return c.Faction != card.FactionNeutral
			},
		},
		// Kingdom of Shadows
		"13079": {MayInclude: nonLoyalShadow},
		// The White Book
		"13099": traitCharacterRules("Kingsguard", 7, "Must contain 7 or more different Kingsguard characters", distinctEntries),
		// Valyrian Steel
		"13118": singletonRules(card.TypeAttachment, "Cannot include more than 1 copy of each attachment (by title)"),
		// Dark Wings, Dark Words
		"16028": singletonRules(card.TypeEvent, "Cannot include more than 1 copy of each event (by title)"),
		// The Long Voyage
		"16030": {Limits: Limits{RequiredDraw: Int(100)}},
		// Kingdom of Shadows (Redesign)
		"17148": {MayInclude: nonLoyalShadow},
		// Sea of Blood (Redesign)
		"17149": {
			CannotInclude: func(c *card.Card) bool {
				return c.Faction == card.FactionNeutral && c.IsType(card.TypeEvent)
			},
		},
		// The Free Folk (Redesign)
		"17150": {
			MayInclude: nonLoyalWildling,
			Checks: []Check{{
				Message: "Must only contain neutral cards or Non-loyal Wildling characters",
				Condition: func(deck *card.Deck) bool {
					for _, cq := range deck.DrawCards {
						if cq.Card.Faction != card.FactionNeutral && !nonLoyalWildling(cq.Card) {
							return false
						}
					}
					for _, cq := range deck.PlotCards {
						if cq.Card.Faction != card.FactionNeutral {
							return false
						}
					}
					return true
				},
			}},
		},
		// The Wars To Come (Redesign)
		"17151": {Limits: Limits{RequiredPlots: Int(10), MaxDoubledPlots: Int(2)}},
		// Valyrian Steel (Redesign)
		"17152": {
			Limits: Limits{RequiredDraw: Int(75)},
			Checks: []Check{{
				Message: "Cannot include more than 1 copy of each attachment",
				Condition: func(deck *card.Deck) bool {
					for _, cq := range card.Filter(deck.AllCards(), ofType(card.TypeAttachment)) {
						if cq.Count > 1 {
							return false
						}
					}
					return true
				},
			}},
		},

		// Draft agendas
		// The Power of Wealth
		"00001": draftRules(Fragment{
			MayInclude: func(*card.Card) bool { return true },
			Checks:     []Check{outsideFactionCheck(1)},
		}),
		// Protectors of the Realm
		"00002": draftRules(Fragment{
			MayInclude: func(c *card.Card) bool {
				return c.IsType(card.TypeCharacter) && (c.HasTrait("Knight") || c.HasTrait("Army"))
			},
		}),
		// Treaty
		"00003": draftRules(Fragment{
			MayInclude: func(*card.Card) bool { return true },
			Checks:     []Check{outsideFactionCheck(2)},
		}),
		// Uniting the Seven Kingdoms
		"00004": draftRules(Fragment{
			MayInclude: func(c *card.Card) bool { return !c.IsType(card.TypePlot) },
		}),
	}
}

func bannerRules(faction, factionName string) Fragment {
	return Fragment{
		MayInclude: func(c *card.Card) bool {
			return c.Faction == faction && !c.Loyal && !c.IsType(card.TypePlot)
		},
		Checks: []Check{{
			Message: fmt.Sprintf("Must contain 12 or more %s cards", factionName),
			Condition: func(deck *card.Deck) bool {
				return card.Count(card.Filter(deck.DrawCards, ofFaction(faction))) >= 12
			},
		}},
	}
}

func seasonRules(agendaName, forbiddenTrait string) Fragment {
	return Fragment{
		CannotInclude: func(c *card.Card) bool {
			return c.IsType(card.TypePlot) && c.HasTrait(forbiddenTrait)
		},
		Checks: []Check{{
			Message: fmt.Sprintf("%s cannot include %s plot cards", agendaName, forbiddenTrait),
			Condition: func(deck *card.Deck) bool {
				return len(card.Filter(deck.PlotCards, withTrait(forbiddenTrait))) == 0
			},
		}},
	}
}

// traitCharacterRules allows non-loyal characters with trait and requires at
// least required of them, counted by count.
func traitCharacterRules(trait string, required int, message string, count func([]card.CardQuantity) int) Fragment {
	isTraitCharacter := func(c *card.Card) bool {
		return c.IsType(card.TypeCharacter) && c.HasTrait(trait)
	}
	return Fragment{
		MayInclude: func(c *card.Card) bool {
			return isTraitCharacter(c) && !c.Loyal
		},
		Checks: []Check{{
			Message: message,
			Condition: func(deck *card.Deck) bool {
				return count(card.Filter(deck.DrawCards, isTraitCharacter)) >= required
			},
		}},
	}
}

// singletonRules limits every card of typeCode to one copy by title across
// draw and plot decks, and raises the draw requirement to 75.
func singletonRules(typeCode, message string) Fragment {
	return Fragment{
		Limits: Limits{RequiredDraw: Int(75)},
		Checks: []Check{{
			Message: message,
			Condition: func(deck *card.Deck) bool {
				copies := make(map[string]int)
				for _, cq := range card.Filter(deck.AllCards(), ofType(typeCode)) {
					copies[cq.Card.DisplayName()] += cq.Count
					if copies[cq.Card.DisplayName()] > 1 {
						return false
					}
				}
				return true
			},
		}},
	}
}

func draftRules(f Fragment) Fragment {
	if f.RequiredDraw == nil {
		f.RequiredDraw = Int(40)
	}
	if f.RequiredPlots == nil {
		f.RequiredPlots = Int(5)
	}
	return f
}

func outsideFactionCheck(limit int) Check {
	noun := "faction"
	if limit != 1 {
		noun = "factions"
	}
	return Check{
		Message: fmt.Sprintf("Cannot include cards from more than %d outside %s", limit, noun),
		Condition: func(deck *card.Deck) bool {
			factions := make(map[string]bool)
			for _, cq := range deck.AllCards() {
				if cq.Card.Faction != deck.Faction && cq.Card.Faction != card.FactionNeutral {
					factions[cq.Card.Faction] = true
				}
			}
			return len(factions) <= limit
		},
	}
}

func nonLoyalShadow(c *card.Card) bool {
	return !c.Loyal && c.HasTextKeyword(shadowKeyword)
}

func nonLoyalWildling(c *card.Card) bool {
	return c.Faction != card.FactionNeutral && c.IsType(card.TypeCharacter) && !c.Loyal && c.HasTrait("Wildling")
}

func ofFaction(faction string) func(*card.Card) bool {
	return func(c *card.Card) bool { return c.Faction == faction }
}

func ofType(typeCode string) func(*card.Card) bool {
	return func(c *card.Card) bool { return c.IsType(typeCode) }
}

func withTrait(trait string) func(*card.Card) bool {
	return func(c *card.Card) bool { return c.HasTrait(trait) }
}

func distinctEntries(entries []card.CardQuantity) int {
	return len(entries)
}

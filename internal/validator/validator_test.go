package validator

import (
	"fmt"
	"testing"
	"time"

	"github.com/dtdb/deckcheck/internal/card"
	"github.com/dtdb/deckcheck/internal/restricted"
	"github.com/dtdb/deckcheck/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testPacks() []card.Pack {
	return []card.Pack{
		{Code: "core", Available: "2017-01-01"},
		{Code: "future", Available: "2030-01-01"},
		{Code: "nodate"},
	}
}

// filler returns n single-copy cards whose values cycle through 1..13 so no
// value exceeds four copies.
func filler(n int) []card.CardQuantity {
	entries := make([]card.CardQuantity, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, card.CardQuantity{
			Card: &card.Card{
				Code:     fmt.Sprintf("%05d", i+1),
				Title:    fmt.Sprintf("Card %d", i+1),
				Type:     card.TypeDude,
				Value:    i%13 + 1,
				PackCode: "core",
			},
			Count: 1,
		})
	}
	return entries
}

func newTestValidator(t *testing.T, mutate func(cfg *Config)) *DeckValidator {
	t.Helper()
	cfg := Config{
		Packs:     testPacks(),
		Base:      rules.DoomtownBase(),
		Fragments: rules.LegendTable(),
		Options:   DoomtownOptions(),
		Now:       func() time.Time { return testNow },
	}
	if mutate != nil {
		mutate(&cfg)
	}
	v, err := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	return v
}

func validate(t *testing.T, v *DeckValidator, deck *card.Deck) *Report {
	t.Helper()
	report, err := v.ValidateDeck(deck)
	require.NoError(t, err)
	return report
}

func TestValidateDeck_ValidDoomtownDeck(t *testing.T) {
	v := newTestValidator(t, nil)

	report := validate(t, v, &card.Deck{Name: "legal", DrawCards: filler(52)})

	assert.True(t, report.BasicRules)
	assert.True(t, report.RestrictedRules)
	assert.True(t, report.NoBannedCards)
	assert.True(t, report.NoUnreleasedCards)
	assert.True(t, report.Valid())
	assert.Equal(t, 52, report.DrawCount)
	assert.Empty(t, report.ExtendedStatus)
	assert.NotNil(t, report.ExtendedStatus)
}

func TestValidateDeck_DrawCount(t *testing.T) {
	v := newTestValidator(t, func(cfg *Config) {
		cfg.Base.RequiredDraw = rules.Int(40)
	})

	exact := validate(t, v, &card.Deck{DrawCards: filler(40)})
	assert.True(t, exact.BasicRules)
	assert.Empty(t, exact.ExtendedStatus)

	short := validate(t, v, &card.Deck{DrawCards: filler(39)})
	assert.False(t, short.BasicRules)
	assert.Equal(t, 39, short.DrawCount)
	assert.Equal(t, []string{"39 cards with printed value (required 40)"}, short.ExtendedStatus)
}

func TestValidateDeck_DrawCountMinimumPolicy(t *testing.T) {
	v := newTestValidator(t, func(cfg *Config) {
		cfg.Base.RequiredDraw = rules.Int(40)
		cfg.Options.DrawCountPolicy = DrawCountMinimum
	})

	assert.Empty(t, validate(t, v, &card.Deck{DrawCards: filler(45)}).ExtendedStatus)
	assert.Equal(t, []string{"39 cards (required at least 40)"}, validate(t, v, &card.Deck{DrawCards: filler(39)}).ExtendedStatus)
}

func TestValidateDeck_TooManyCardsWithSameValue(t *testing.T) {
	v := newTestValidator(t, func(cfg *Config) {
		cfg.Base.RequiredDraw = rules.Int(40)
	})

	draw := filler(35)
	for i, count := range []int{2, 1, 1, 1} {
		draw = append(draw, card.CardQuantity{
			Card:  &card.Card{Code: fmt.Sprintf("9%04d", i), Title: fmt.Sprintf("Seven %d", i), Value: 42, PackCode: "core"},
			Count: count,
		})
	}

	report := validate(t, v, &card.Deck{DrawCards: draw})
	assert.Equal(t, 40, report.DrawCount)
	assert.False(t, report.BasicRules)
	assert.Equal(t, []string{"Too many cards with same value: 42"}, report.ExtendedStatus)
}

func TestValidateDeck_ValueGroupsReportedInAscendingOrder(t *testing.T) {
	v := newTestValidator(t, func(cfg *Config) {
		cfg.Base.RequiredDraw = rules.Int(10)
	})

	draw := []card.CardQuantity{
		{Card: &card.Card{Code: "a", Title: "A", Value: 9, PackCode: "core"}, Count: 5},
		{Card: &card.Card{Code: "b", Title: "B", Value: 2, PackCode: "core"}, Count: 5},
	}
	report := validate(t, v, &card.Deck{DrawCards: draw})
	assert.Equal(t, []string{
		"Too many cards with same value: 2",
		"Too many cards with same value: 9",
	}, report.ExtendedStatus)
}

func TestValidateDeck_GroupByNameWithDeckLimit(t *testing.T) {
	v := newTestValidator(t, func(cfg *Config) {
		cfg.Base.RequiredDraw = rules.Int(6)
		cfg.Options.GroupBy = GroupByName
		cfg.Options.GroupLimit = 0
	})

	draw := []card.CardQuantity{
		{Card: &card.Card{Code: "a", Name: "Hand of the King", DeckLimit: 3, PackCode: "core"}, Count: 2},
		{Card: &card.Card{Code: "b", Name: "Hand of the King", DeckLimit: 3, PackCode: "core"}, Count: 2},
		{Card: &card.Card{Code: "c", Name: "The Iron Throne", DeckLimit: 1, PackCode: "core"}, Count: 1},
		{Card: &card.Card{Code: "d", Name: "Unlimited", PackCode: "core"}, Count: 1},
	}

	report := validate(t, v, &card.Deck{DrawCards: draw})
	assert.Equal(t, []string{"Too many copies of Hand of the King"}, report.ExtendedStatus)
}

func TestValidateDeck_SpecialCardFragmentCheck(t *testing.T) {
	agenda := &card.Card{Code: "10045", Title: "The Wars To Come", PackCode: "core"}
	table := rules.Table{
		"10045": {
			Limits: rules.Limits{RequiredPlots: rules.Int(10)},
			Checks: []rules.Check{{
				Message: "requires exactly 10 plots",
				Condition: func(deck *card.Deck) bool {
					return card.Count(deck.PlotCards) == 10
				},
			}},
		},
	}
	v := newTestValidator(t, func(cfg *Config) {
		cfg.Base = rules.Fragment{Limits: rules.Limits{RequiredDraw: rules.Int(40)}}
		cfg.Fragments = table
	})

	plots := make([]card.CardQuantity, 0, 9)
	for i := 0; i < 9; i++ {
		plots = append(plots, card.CardQuantity{
			Card:  &card.Card{Code: fmt.Sprintf("p%d", i), Title: fmt.Sprintf("Plot %d", i), Type: card.TypePlot, PackCode: "core"},
			Count: 1,
		})
	}
	deck := &card.Deck{Agendas: []*card.Card{agenda}, DrawCards: filler(40), PlotCards: plots}

	eff := v.ResolveRules(deck)
	assert.Equal(t, 10, rules.IntOr(eff.RequiredPlots, 0))

	report := validate(t, v, deck)
	assert.False(t, report.BasicRules)
	assert.Contains(t, report.ExtendedStatus, "requires exactly 10 plots")

	// Without the agenda the fragment does not apply.
	deck.Agendas = nil
	assert.True(t, validate(t, v, deck).BasicRules)
}

func TestValidateDeck_UnknownSpecialCardAddsNothing(t *testing.T) {
	v := newTestValidator(t, nil)
	deck := &card.Deck{
		Legend:    &card.Card{Code: "20001", Title: "Unlisted Legend"},
		DrawCards: filler(52),
	}

	assert.Empty(t, validate(t, v, deck).ExtendedStatus)
}

func TestValidateDeck_StartingPosse(t *testing.T) {
	v := newTestValidator(t, nil)

	draw := filler(46)
	draw = append(draw,
		card.CardQuantity{Card: &card.Card{Code: "s1", Title: "Dude One", Type: card.TypeDude, Value: 21, Cost: 4, PackCode: "core"}, Count: 1, Starting: 1},
		card.CardQuantity{Card: &card.Card{Code: "s2", Title: "Dude Two", Type: card.TypeDude, Value: 22, Cost: 4, PackCode: "core"}, Count: 1, Starting: 1},
		card.CardQuantity{Card: &card.Card{Code: "16005", Title: "Harvester", Type: card.TypeDude, Value: 23, Cost: 2, PackCode: "core"}, Count: 1, Starting: 1},
		card.CardQuantity{Card: &card.Card{Code: "09006", Title: "Xiaodan Li", Type: card.TypeDude, Value: 24, Cost: 3, PackCode: "core"}, Count: 1, Starting: 1},
		card.CardQuantity{Card: &card.Card{Code: "j1", Title: "Joker", Type: card.TypeJoker, PackCode: "core"}, Count: 2},
	)
	deck := &card.Deck{Outfit: &card.Outfit{Card: &card.Card{Code: "o1"}, Wealth: rules.Int(13)}, DrawCards: draw}

	counts := v.AggregateCounts(deck)
	assert.Equal(t, Counts{DrawCount: 50, JokerCount: 2, StartingCount: 5, StartingCost: 13}, counts)

	report := validate(t, v, deck)
	assert.Equal(t, []string{"50 cards with printed value (required 52)"}, report.ExtendedStatus)

	// One more started dude exceeds the posse and the outfit wealth.
	deck.DrawCards = append(deck.DrawCards, card.CardQuantity{
		Card: &card.Card{Code: "s3", Title: "Dude Three", Type: card.TypeDude, Value: 25, Cost: 1, PackCode: "core"}, Count: 2, Starting: 1,
	})
	report = validate(t, v, deck)
	assert.Equal(t, []string{
		"Too many cards in starting posse",
		"Negative starting Ghost Rock",
	}, report.ExtendedStatus)
}

func TestValidateDeck_TooManyJokers(t *testing.T) {
	v := newTestValidator(t, nil)
	draw := append(filler(52), card.CardQuantity{
		Card: &card.Card{Code: "j1", Title: "Joker", Type: card.TypeJoker, PackCode: "core"}, Count: 3,
	})

	report := validate(t, v, &card.Deck{DrawCards: draw})
	assert.Equal(t, 52, report.DrawCount)
	assert.Equal(t, []string{"Too many Joker cards"}, report.ExtendedStatus)
}

func TestValidateDeck_StartingCapCoreInflated(t *testing.T) {
	deck := func() *card.Deck {
		draw := filler(46)
		for i := 0; i < 6; i++ {
			draw = append(draw, card.CardQuantity{
				Card:  &card.Card{Code: fmt.Sprintf("d%d", i), Title: fmt.Sprintf("Dude %d", i), Type: card.TypeDude, Value: 21 + i, PackCode: "core"},
				Count: 1, Starting: 1,
			})
		}
		return &card.Deck{DrawCards: draw}
	}

	standard := newTestValidator(t, nil)
	assert.Equal(t, []string{"Too many cards in starting posse"}, validate(t, standard, deck()).ExtendedStatus)

	inflated := newTestValidator(t, func(cfg *Config) {
		cfg.Options.StartingCap = StartingCapCoreInflated
	})
	assert.Empty(t, validate(t, inflated, deck()).ExtendedStatus)
}

func TestValidateDeck_PerEntryChecks(t *testing.T) {
	v := newTestValidator(t, nil)

	draw := filler(46)
	draw = append(draw,
		card.CardQuantity{Card: &card.Card{Code: "u1", Title: "Unique Dude", Type: card.TypeDude, Value: 21, PackCode: "core"}, Count: 2, Starting: 2},
		card.CardQuantity{Card: &card.Card{Code: "n1", Title: "Grunt", Type: card.TypeDude, Keywords: "Non-Unique", Value: 22, PackCode: "core"}, Count: 1, Starting: 2},
		card.CardQuantity{Card: &card.Card{Code: "d1", Title: "Town Square Deed", Type: card.TypeDeed, Value: 23, PackCode: "core"}, Count: 1, Starting: 1},
		card.CardQuantity{Card: &card.Card{Code: "c1", Title: "Core Deed", Type: card.TypeDeed, Keywords: "Core • Holy Ground", Value: 24, PackCode: "core"}, Count: 1},
	)
	report := validate(t, v, &card.Deck{DrawCards: draw})

	assert.False(t, report.BasicRules)
	assert.Equal(t, []string{
		"51 cards with printed value (required 52)",
		"Starting multiple copies of unique card Unique Dude",
		"Starting count for a card Grunt is greater than its count",
		"Starting non-core deed Town Square Deed",
	}, report.ExtendedStatus)
}

func TestValidateDeck_TooManyCoreDeeds(t *testing.T) {
	v := newTestValidator(t, nil)

	draw := filler(50)
	for i := 0; i < 2; i++ {
		draw = append(draw, card.CardQuantity{
			Card:  &card.Card{Code: fmt.Sprintf("c%d", i), Title: fmt.Sprintf("Core %d", i), Type: card.TypeDeed, Keywords: "Core", Value: 21 + i, PackCode: "core"},
			Count: 1, Starting: 1,
		})
	}

	counts := v.AggregateCounts(&card.Deck{DrawCards: draw})
	assert.Equal(t, 2, counts.StartingCoreCount)
	assert.Equal(t, []string{"Too many core deeds in starting posse"}, validate(t, v, &card.Deck{DrawCards: draw}).ExtendedStatus)
}

func TestValidateDeck_UnreleasedCards(t *testing.T) {
	v := newTestValidator(t, nil)

	draw := filler(50)
	draw = append(draw,
		card.CardQuantity{Card: &card.Card{Code: "f1", Title: "Future Card", Value: 21, PackCode: "future"}, Count: 1},
		card.CardQuantity{Card: &card.Card{Code: "f2", Title: "Undated Card", Value: 22, PackCode: "nodate"}, Count: 1},
	)
	report := validate(t, v, &card.Deck{DrawCards: draw})

	assert.True(t, report.BasicRules)
	assert.False(t, report.NoUnreleasedCards)
	assert.False(t, report.Valid())
	assert.Equal(t, []string{"Future Card is not yet released", "Undated Card is not yet released"}, report.ExtendedStatus)
}

func TestValidateDeck_RestrictedLists(t *testing.T) {
	official, err := restricted.NewList(restricted.ListConfig{
		Name:       "Official",
		Threshold:  restricted.ThresholdAtMostOne,
		Restricted: []string{"00001"},
	})
	require.NoError(t, err)
	community, err := restricted.NewList(restricted.ListConfig{
		Name:      "Community",
		Threshold: restricted.ThresholdAtMostOne,
		Banned:    []string{"00002"},
	})
	require.NoError(t, err)

	v := newTestValidator(t, func(cfg *Config) {
		cfg.RestrictedLists = []*restricted.List{official, community}
	})

	draw := append(filler(52), card.CardQuantity{Card: &card.Card{Code: "f1", Title: "Future Card", Value: 21, PackCode: "future"}, Count: 1})
	report := validate(t, v, &card.Deck{DrawCards: draw})

	assert.True(t, report.RestrictedRules)
	assert.True(t, report.NoBannedCards)
	require.Len(t, report.RestrictedLists, 2)
	assert.True(t, report.RestrictedLists[0].Valid)
	assert.Len(t, report.RestrictedLists[0].RestrictedCards, 1)
	assert.False(t, report.RestrictedLists[1].Valid)
	assert.Equal(t, []string{
		"53 cards with printed value (required 52)",
		"Future Card is not yet released",
		"Community: Contains cards that are not tournament legal: Card 2",
	}, report.ExtendedStatus)
}

func TestValidateDeck_MessageOrder(t *testing.T) {
	list, err := restricted.NewList(restricted.ListConfig{
		Name:      "Official",
		Threshold: restricted.ThresholdAtMostOne,
		Banned:    []string{"00001"},
	})
	require.NoError(t, err)

	table := rules.Table{"L1": {Checks: []rules.Check{{
		Message:   "legend check failed",
		Condition: func(*card.Deck) bool { return false },
	}}}}
	v := newTestValidator(t, func(cfg *Config) {
		cfg.RestrictedLists = []*restricted.List{list}
		cfg.Fragments = table
	})

	draw := filler(52)
	draw = append(draw,
		card.CardQuantity{Card: &card.Card{Code: "u1", Title: "Unique", Value: 2, PackCode: "future"}, Count: 2, Starting: 2},
	)
	deck := &card.Deck{Legend: &card.Card{Code: "L1", Title: "Legend"}, DrawCards: draw}

	report := validate(t, v, deck)
	assert.False(t, report.BasicRules)
	assert.False(t, report.NoBannedCards)
	assert.True(t, report.RestrictedRules)
	assert.Equal(t, []string{
		"54 cards with printed value (required 52)",
		"legend check failed",
		"Starting multiple copies of unique card Unique",
		"Too many cards with same value: 2",
		"Unique is not yet released",
		"Official: Contains cards that are not tournament legal: Card 1",
	}, report.ExtendedStatus)
}

func TestValidateDeck_Deterministic(t *testing.T) {
	v := newTestValidator(t, func(cfg *Config) {
		cfg.Options.GroupBy = GroupByName
		cfg.Options.GroupLimit = 1
	})
	draw := filler(30)
	for i := range draw {
		draw[i].Count = 2
	}
	deck := &card.Deck{DrawCards: draw}

	first := validate(t, v, deck)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, validate(t, v, deck))
	}
	assert.Len(t, first.ExtendedStatus, 31)
}

func TestValidateDeck_ThronesInclusion(t *testing.T) {
	v := newTestValidator(t, func(cfg *Config) {
		cfg.Base = rules.ThronesBase()
		cfg.Fragments = rules.AgendaTable()
		cfg.Options = ThronesOptions()
	})

	draw := make([]card.CardQuantity, 0, 61)
	for i := 0; i < 20; i++ {
		draw = append(draw, card.CardQuantity{
			Card:  &card.Card{Code: fmt.Sprintf("s%02d", i), Name: fmt.Sprintf("Stark %d", i), Faction: "stark", PackCode: "core", DeckLimit: 3},
			Count: 3,
		})
	}
	draw = append(draw,
		card.CardQuantity{Card: &card.Card{Code: "l1", Name: "Lannister Loyal", Faction: "lannister", Loyal: true, PackCode: "core", DeckLimit: 3}, Count: 1},
		card.CardQuantity{Card: &card.Card{Code: "l2", Name: "Lannister Free", Faction: "lannister", PackCode: "core", DeckLimit: 3}, Count: 1},
	)
	plots := make([]card.CardQuantity, 0, 7)
	for i := 0; i < 7; i++ {
		plots = append(plots, card.CardQuantity{
			Card:  &card.Card{Code: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Plot %d", i), Type: card.TypePlot, Faction: card.FactionNeutral, PackCode: "core", DeckLimit: 2},
			Count: 1,
		})
	}
	deck := &card.Deck{Faction: "stark", DrawCards: draw, PlotCards: plots}

	report := validate(t, v, deck)
	assert.Equal(t, []string{
		"Lannister Loyal is not allowed by faction or agenda",
		"Lannister Free is not allowed by faction or agenda",
	}, report.ExtendedStatus)

	// Banner of the Lion allows the non-loyal card but needs 12 Lannister cards.
	deck.Agendas = []*card.Card{{Code: "01200", Name: "Banner of the Lion", PackCode: "core"}}
	report = validate(t, v, deck)
	assert.Equal(t, []string{
		"Must contain 12 or more Lannister cards",
		"Lannister Loyal is not allowed by faction or agenda",
	}, report.ExtendedStatus)
}

func TestValidateDeck_ThronesPlots(t *testing.T) {
	v := newTestValidator(t, func(cfg *Config) {
		cfg.Base = rules.ThronesBase()
		cfg.Fragments = rules.AgendaTable()
		cfg.Options = ThronesOptions()
	})

	draw := make([]card.CardQuantity, 0, 20)
	for i := 0; i < 20; i++ {
		draw = append(draw, card.CardQuantity{
			Card:  &card.Card{Code: fmt.Sprintf("s%02d", i), Name: fmt.Sprintf("Stark %d", i), Faction: "stark", PackCode: "core", DeckLimit: 3},
			Count: 3,
		})
	}
	plot := func(code string, count int) card.CardQuantity {
		return card.CardQuantity{Card: &card.Card{Code: code, Name: "Plot " + code, Type: card.TypePlot, Faction: "stark", PackCode: "core"}, Count: count}
	}
	deck := &card.Deck{Faction: "stark", DrawCards: draw, PlotCards: []card.CardQuantity{
		plot("p1", 2), plot("p2", 2), plot("p3", 3),
	}}

	report := validate(t, v, deck)
	assert.Equal(t, []string{
		"Too many plots with more than one copy",
		"Too many copies of plot Plot p3",
	}, report.ExtendedStatus)

	deck.PlotCards = deck.PlotCards[:2]
	report = validate(t, v, deck)
	assert.Equal(t, []string{
		"4 plot cards (required 7)",
		"Too many plots with more than one copy",
	}, report.ExtendedStatus)
}

func TestValidateDeck_ExternalDataDefects(t *testing.T) {
	v := newTestValidator(t, nil)

	_, err := v.ValidateDeck(&card.Deck{DrawCards: []card.CardQuantity{{Count: 1}}})
	assert.ErrorIs(t, err, ErrInvalidCard)

	_, err = v.ValidateDeck(&card.Deck{DrawCards: []card.CardQuantity{{Card: &card.Card{Title: "No Code"}, Count: 1}}})
	assert.ErrorIs(t, err, ErrInvalidCard)

	_, err = v.ValidateDeck(&card.Deck{DrawCards: []card.CardQuantity{{Card: &card.Card{Code: "x", PackCode: "missing"}, Count: 1}}})
	assert.ErrorIs(t, err, ErrUnknownPack)

	_, err = v.ValidateDeck(nil)
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestNew_ConfigurationDefects(t *testing.T) {
	_, err := New(Config{Options: DoomtownOptions()}, nil)
	assert.ErrorIs(t, err, ErrMissingBaseField)

	_, err = New(Config{Base: rules.Fragment{Limits: rules.Limits{RequiredDraw: rules.Int(60)}}, Options: ThronesOptions()}, nil)
	assert.ErrorIs(t, err, ErrMissingBaseField)

	_, err = New(Config{Base: rules.DoomtownBase(), Options: Options{}}, nil)
	assert.Error(t, err)

	_, err = New(Config{
		Base:    rules.DoomtownBase(),
		Options: DoomtownOptions(),
		Packs:   []card.Pack{{Code: "a"}, {Code: "a"}},
	}, nil)
	assert.Error(t, err)

	_, err = New(Config{
		Base:    rules.DoomtownBase(),
		Options: DoomtownOptions(),
		Packs:   []card.Pack{{Code: "a", Available: "soon"}},
	}, nil)
	assert.Error(t, err)
}

func TestValidateDeck_CardLimitsRequireDeckLimit(t *testing.T) {
	v := newTestValidator(t, func(cfg *Config) {
		cfg.Base = rules.ThronesBase()
		cfg.Fragments = rules.AgendaTable()
		cfg.Options = ThronesOptions()
	})

	deck := &card.Deck{DrawCards: []card.CardQuantity{
		{Card: &card.Card{Code: "s01", Name: "Winterfell Steward", Faction: "stark", PackCode: "core", DeckLimit: 3}, Count: 3},
		{Card: &card.Card{Code: "s02", Name: "Bran Stark", Faction: "stark", PackCode: "core"}, Count: 57},
	}}

	_, err := v.ValidateDeck(deck)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCard)
	assert.Contains(t, err.Error(), "s02")

	deck.DrawCards[1].Card.DeckLimit = 3
	report := validate(t, v, deck)
	assert.Contains(t, report.ExtendedStatus, "Too many copies of Bran Stark")
}

func TestValidateDeck_FixedGroupLimitIgnoresDeckLimit(t *testing.T) {
	v := newTestValidator(t, nil)

	report := validate(t, v, &card.Deck{DrawCards: filler(52)})
	assert.True(t, report.BasicRules)
}

func TestValidateDeck_OutfitWithoutWealth(t *testing.T) {
	v := newTestValidator(t, nil)

	draw := append(filler(51), card.CardQuantity{
		Card:  &card.Card{Code: "s1", Title: "Dude One", Type: card.TypeDude, Value: 21, Cost: 9, PackCode: "core"},
		Count: 1, Starting: 1,
	})
	deck := &card.Deck{Outfit: &card.Outfit{Card: &card.Card{Code: "o1"}}, DrawCards: draw}
	assert.Empty(t, validate(t, v, deck).ExtendedStatus)

	deck.Outfit.Wealth = rules.Int(8)
	assert.Equal(t, []string{"Negative starting Ghost Rock"}, validate(t, v, deck).ExtendedStatus)
}

func TestNew_CopiesStartingMultipliers(t *testing.T) {
	opts := DoomtownOptions()
	v := newTestValidator(t, func(cfg *Config) {
		cfg.Options = opts
	})

	opts.StartingMultipliers["16005"] = 10
	opts.StartingMultipliers["s1"] = 0

	deck := &card.Deck{DrawCards: []card.CardQuantity{
		{Card: &card.Card{Code: "16005", Title: "Harvester", Type: card.TypeDude, PackCode: "core"}, Count: 1, Starting: 1},
		{Card: &card.Card{Code: "s1", Title: "Dude One", Type: card.TypeDude, PackCode: "core"}, Count: 1, Starting: 1},
	}}
	assert.Equal(t, 4, v.AggregateCounts(deck).StartingCount)
}

// Package validator checks decks against deck-building rules, restricted
// lists and pack release dates.
package validator

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"time"

	"github.com/dtdb/deckcheck/internal/card"
	"github.com/dtdb/deckcheck/internal/restricted"
	"github.com/dtdb/deckcheck/internal/rules"
	"go.uber.org/zap"
)

var (
	// ErrMissingBaseField is returned when the base rules lack a required field.
	ErrMissingBaseField = errors.New("base rules missing required field")
	// ErrUnknownPack is returned when a deck card references a pack that is
	// not in the pack list.
	ErrUnknownPack = errors.New("unknown pack")
	// ErrInvalidCard is returned for deck entries with missing card data.
	ErrInvalidCard = errors.New("invalid card entry")
)

// Config holds the immutable inputs of a DeckValidator.
type Config struct {
	Packs           []card.Pack
	RestrictedLists []*restricted.List
	Base            rules.Fragment
	Fragments       rules.Table
	Options         Options
	// Now returns the current time for release checks. Defaults to time.Now.
	Now func() time.Time
}

// DeckValidator validates decks. It holds no mutable state and is safe for
// concurrent use.
type DeckValidator struct {
	packs     map[string]card.Pack
	lists     []*restricted.List
	base      rules.Fragment
	fragments rules.Table
	opts      Options
	now       func() time.Time
	logger    *zap.Logger
}

// New validates cfg and creates a DeckValidator.
func New(cfg Config, logger *zap.Logger) (*DeckValidator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Base.RequiredDraw == nil {
		return nil, fmt.Errorf("%w: required draw", ErrMissingBaseField)
	}
	if cfg.Options.CheckPlots && cfg.Base.RequiredPlots == nil {
		return nil, fmt.Errorf("%w: required plots", ErrMissingBaseField)
	}
	if err := cfg.Options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid validator options: %w", err)
	}

	packs := make(map[string]card.Pack, len(cfg.Packs))
	for _, pack := range cfg.Packs {
		if _, dup := packs[pack.Code]; dup {
			return nil, fmt.Errorf("duplicate pack code %s", pack.Code)
		}
		if _, _, err := pack.ReleaseDate(); err != nil {
			return nil, err
		}
		packs[pack.Code] = pack
	}

	for i, list := range cfg.RestrictedLists {
		if list == nil {
			return nil, fmt.Errorf("restricted list %d is nil", i)
		}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	fragments := maps.Clone(cfg.Fragments)
	if fragments == nil {
		fragments = rules.Table{}
	}

	opts := cfg.Options
	opts.StartingMultipliers = maps.Clone(cfg.Options.StartingMultipliers)

	return &DeckValidator{
		packs:     packs,
		lists:     append([]*restricted.List(nil), cfg.RestrictedLists...),
		base:      cfg.Base,
		fragments: fragments,
		opts:      opts,
		now:       now,
		logger:    logger,
	}, nil
}

// ResolveRules combines the base rules with the fragments of the special
// cards chosen by deck. Special cards without a fragment add nothing.
func (v *DeckValidator) ResolveRules(deck *card.Deck) rules.Effective {
	fragments := append([]rules.Fragment{v.base}, v.fragments.Select(deck.SpecialCodes())...)
	return rules.Combine(fragments...)
}

// ValidateDeck validates deck and returns a report. Rule violations are
// reported in the report; an error means the deck or the card data is
// malformed.
func (v *DeckValidator) ValidateDeck(deck *card.Deck) (*Report, error) {
	if err := checkEntries(deck); err != nil {
		return nil, err
	}
	if err := v.checkDeckLimits(deck); err != nil {
		return nil, err
	}

	effective := v.ResolveRules(deck)
	counts := v.AggregateCounts(deck)

	var messages []string
	messages = append(messages, v.numericChecks(deck, effective, counts)...)
	messages = append(messages, effective.FailedChecks(deck)...)
	messages = append(messages, v.entryChecks(deck, effective)...)
	messages = append(messages, v.groupChecks(deck)...)

	unreleased, err := v.unreleasedCards(deck)
	if err != nil {
		return nil, err
	}

	uniqueCards := deck.UniqueCards()
	results := make([]restricted.Result, 0, len(v.lists))
	var listErrors []string
	for _, list := range v.lists {
		result := list.Validate(uniqueCards)
		results = append(results, result)
		listErrors = append(listErrors, result.Errors...)
	}

	report := &Report{
		BasicRules:        len(messages) == 0,
		RestrictedRules:   true,
		NoBannedCards:     true,
		NoUnreleasedCards: len(unreleased) == 0,
		RestrictedLists:   results,
		DrawCount:         counts.DrawCount,
	}
	if len(results) > 0 {
		report.RestrictedRules = results[0].RestrictedRules
		report.NoBannedCards = results[0].NoBannedCards
	}

	status := make([]string, 0, len(messages)+len(unreleased)+len(listErrors))
	status = append(status, messages...)
	status = append(status, unreleased...)
	report.ExtendedStatus = append(status, listErrors...)

	v.logger.Debug("validated deck",
		zap.String("deck", deck.Name),
		zap.Int("draw_count", counts.DrawCount),
		zap.Bool("basic_rules", report.BasicRules),
		zap.Int("violations", len(report.ExtendedStatus)),
	)

	return report, nil
}

func checkEntries(deck *card.Deck) error {
	if deck == nil {
		return fmt.Errorf("%w: deck is nil", ErrInvalidCard)
	}
	check := func(zone string, entries []card.CardQuantity) error {
		for i, cq := range entries {
			if cq.Card == nil {
				return fmt.Errorf("%w: %s entry %d has no card", ErrInvalidCard, zone, i)
			}
			if cq.Card.Code == "" {
				return fmt.Errorf("%w: %s entry %d has no code", ErrInvalidCard, zone, i)
			}
			if cq.Count < 0 || cq.Starting < 0 {
				return fmt.Errorf("%w: %s has negative quantity", ErrInvalidCard, cq.Card.Code)
			}
		}
		return nil
	}
	if err := check("draw", deck.DrawCards); err != nil {
		return err
	}
	return check("plot", deck.PlotCards)
}

// checkDeckLimits requires a printed deck limit on every draw card when the
// group limit is taken from the cards.
func (v *DeckValidator) checkDeckLimits(deck *card.Deck) error {
	if v.opts.GroupLimit != 0 {
		return nil
	}
	for _, cq := range deck.DrawCards {
		if cq.Card.DeckLimit <= 0 {
			return fmt.Errorf("%w: %s has no deck limit", ErrInvalidCard, cq.Card.Code)
		}
	}
	return nil
}

// numericChecks evaluates the deck size and posse limits.
func (v *DeckValidator) numericChecks(deck *card.Deck, eff rules.Effective, counts Counts) []string {
	var messages []string

	required := rules.IntOr(eff.RequiredDraw, 0)
	switch v.opts.DrawCountPolicy {
	case DrawCountMinimum:
		if counts.DrawCount < required {
			messages = append(messages, fmt.Sprintf("%d cards (required at least %d)", counts.DrawCount, required))
		}
	default:
		if counts.DrawCount != required {
			messages = append(messages, fmt.Sprintf("%d cards with printed value (required %d)", counts.DrawCount, required))
		}
	}

	if eff.MaxJokerCount != nil && counts.JokerCount > *eff.MaxJokerCount {
		messages = append(messages, "Too many Joker cards")
	}

	if eff.MaxStartingCount != nil {
		limit := *eff.MaxStartingCount
		if v.opts.StartingCap == StartingCapCoreInflated {
			limit += rules.IntOr(eff.MaxStartingCoreCount, 0)
		}
		if counts.StartingCount > limit {
			messages = append(messages, "Too many cards in starting posse")
		}
	}

	if v.opts.CoreDeeds && eff.MaxStartingCoreCount != nil && counts.StartingCoreCount > *eff.MaxStartingCoreCount {
		messages = append(messages, "Too many core deeds in starting posse")
	}

	if deck.Outfit != nil && deck.Outfit.Wealth != nil && counts.StartingCost > *deck.Outfit.Wealth {
		messages = append(messages, "Negative starting Ghost Rock")
	}

	if v.opts.CheckPlots {
		messages = append(messages, plotChecks(deck, eff)...)
	}

	return messages
}

func plotChecks(deck *card.Deck, eff rules.Effective) []string {
	var messages []string

	plotCount := card.Count(deck.PlotCards)
	if eff.RequiredPlots != nil && plotCount != *eff.RequiredPlots {
		messages = append(messages, fmt.Sprintf("%d plot cards (required %d)", plotCount, *eff.RequiredPlots))
	}

	doubled := 0
	for _, cq := range deck.PlotCards {
		if cq.Count > 1 {
			doubled++
		}
	}
	if eff.MaxDoubledPlots != nil && doubled > *eff.MaxDoubledPlots {
		messages = append(messages, "Too many plots with more than one copy")
	}

	for _, cq := range deck.PlotCards {
		if cq.Count > 2 {
			messages = append(messages, "Too many copies of plot "+cq.Card.DisplayName())
		}
	}

	return messages
}

// entryChecks evaluates every deck entry on its own.
func (v *DeckValidator) entryChecks(deck *card.Deck, eff rules.Effective) []string {
	var messages []string

	for _, cq := range deck.DrawCards {
		title := cq.Card.DisplayName()
		if cq.Starting > cq.Count {
			messages = append(messages, fmt.Sprintf("Starting count for a card %s is greater than its count", title))
		}
		if cq.Starting > 0 {
			if cq.Starting > 1 && !cq.Card.HasKeyword("non-unique") {
				messages = append(messages, "Starting multiple copies of unique card "+title)
			}
			if v.opts.CoreDeeds && cq.Card.IsType(card.TypeDeed) && !cq.Card.HasKeyword("core") {
				messages = append(messages, "Starting non-core deed "+title)
			}
		}
		if v.opts.EnforceInclusion && !v.allowed(deck, eff, cq.Card) {
			messages = append(messages, title+" is not allowed by faction or agenda")
		}
	}

	if v.opts.EnforceInclusion {
		for _, cq := range deck.PlotCards {
			if !v.allowed(deck, eff, cq.Card) {
				messages = append(messages, cq.Card.DisplayName()+" is not allowed by faction or agenda")
			}
		}
	}

	return messages
}

// allowed resolves the inclusion predicates for c. CannotInclude takes
// precedence over MayInclude.
func (v *DeckValidator) allowed(deck *card.Deck, eff rules.Effective, c *card.Card) bool {
	if eff.CannotInclude(c) {
		return false
	}
	if deck.Faction == "" || c.Faction == deck.Faction || c.Faction == card.FactionNeutral {
		return true
	}
	return eff.MayInclude(c)
}

type group struct {
	label string
	value int
	count int
	limit int
}

// groupChecks enforces the per-group copy limit over the draw zone.
func (v *DeckValidator) groupChecks(deck *card.Deck) []string {
	groups := make(map[string]*group)
	var order []*group

	for _, cq := range deck.DrawCards {
		var key string
		if v.opts.GroupBy == GroupByName {
			key = cq.Card.DisplayName()
		} else {
			key = fmt.Sprint(cq.Card.Value)
		}

		g, ok := groups[key]
		if !ok {
			g = &group{label: key, value: cq.Card.Value, limit: v.opts.GroupLimit}
			groups[key] = g
			order = append(order, g)
		}
		g.count += cq.Count
		if v.opts.GroupLimit == 0 && cq.Card.DeckLimit > g.limit {
			g.limit = cq.Card.DeckLimit
		}
	}

	if v.opts.GroupBy == GroupByValue {
		sort.SliceStable(order, func(i, j int) bool { return order[i].value < order[j].value })
	}

	var messages []string
	for _, g := range order {
		if g.limit <= 0 || g.count <= g.limit {
			continue
		}
		if v.opts.GroupBy == GroupByName {
			messages = append(messages, "Too many copies of "+g.label)
		} else {
			messages = append(messages, "Too many cards with same value: "+g.label)
		}
	}
	return messages
}

// unreleasedCards lists the cards of the deck whose pack is not released.
func (v *DeckValidator) unreleasedCards(deck *card.Deck) ([]string, error) {
	now := v.now()
	var messages []string
	for _, cq := range deck.AllCards() {
		pack, ok := v.packs[cq.Card.PackCode]
		if !ok {
			return nil, fmt.Errorf("%w: card %s references pack %q", ErrUnknownPack, cq.Card.Code, cq.Card.PackCode)
		}
		released, err := pack.ReleasedBy(now)
		if err != nil {
			return nil, err
		}
		if !released {
			messages = append(messages, cq.Card.DisplayName()+" is not yet released")
		}
	}
	return messages, nil
}

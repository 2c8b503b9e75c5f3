// Package deckcheck resolves deck records against a card source and
// validates them.
package deckcheck

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dtdb/deckcheck/internal/card"
	"github.com/dtdb/deckcheck/internal/config"
	"github.com/dtdb/deckcheck/internal/repository"
	"github.com/dtdb/deckcheck/internal/restricted"
	"github.com/dtdb/deckcheck/internal/validator"
	"go.uber.org/zap"
)

// ErrUnknownCard is returned when a deck record references a code the card
// source does not know.
var ErrUnknownCard = errors.New("unknown card")

// CardSource looks up cards by code. Missing codes are absent from the map.
type CardSource interface {
	GetCards(ctx context.Context, codes []string) (map[string]*card.Card, error)
}

// Service validates deck records.
type Service struct {
	source    CardSource
	validator *validator.DeckValidator
	logger    *zap.Logger
	close     func()
}

// New creates a service over an existing card source and validator.
func New(source CardSource, v *validator.DeckValidator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, validator: v, logger: logger, close: func() {}}
}

// NewFromConfig connects to the card database and builds the validator
// described by cfg. Call Close to release the connection pool.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts, err := cfg.Validator.Options()
	if err != nil {
		return nil, err
	}
	base, err := cfg.Validator.BaseFragment()
	if err != nil {
		return nil, err
	}
	listConfigs, err := cfg.AllRestrictedLists()
	if err != nil {
		return nil, err
	}
	lists, err := restricted.NewLists(listConfigs)
	if err != nil {
		return nil, err
	}

	pool, err := repository.NewDB(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	repo := repository.NewCardRepository(pool, logger)

	packs, err := repo.ListPacks(ctx)
	if err != nil {
		pool.Close()
		return nil, err
	}

	v, err := validator.New(validator.Config{
		Packs:           packs,
		RestrictedLists: lists,
		Base:            base,
		Fragments:       cfg.Validator.Fragments(),
		Options:         opts,
	}, logger)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create validator: %w", err)
	}

	logger.Info("deck validator ready",
		zap.String("edition", cfg.Validator.Edition),
		zap.Int("packs", len(packs)),
		zap.Int("restricted_lists", len(lists)),
	)

	svc := New(repo, v, logger)
	svc.close = pool.Close
	return svc, nil
}

// Close releases resources held by the service.
func (s *Service) Close() {
	s.close()
}

// Validate resolves rec into a deck and validates it.
func (s *Service) Validate(ctx context.Context, rec DeckRecord) (*validator.Report, error) {
	deck, err := s.Resolve(ctx, rec)
	if err != nil {
		return nil, err
	}
	return s.validator.ValidateDeck(deck)
}

// Resolve looks up every card of rec. Zones are ordered by card code so the
// same record always yields the same deck.
func (s *Service) Resolve(ctx context.Context, rec DeckRecord) (*card.Deck, error) {
	codes := rec.Codes()
	cards, err := s.source.GetCards(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}

	var missing []string
	for _, code := range codes {
		if cards[code] == nil {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCard, strings.Join(missing, ", "))
	}

	deck := &card.Deck{Name: rec.Name, Faction: rec.Faction}
	if rec.Outfit != "" {
		deck.Outfit = &card.Outfit{Card: cards[rec.Outfit], Wealth: rec.Wealth}
	}
	if rec.Legend != "" {
		deck.Legend = cards[rec.Legend]
	}
	for _, code := range rec.Agendas {
		deck.Agendas = append(deck.Agendas, cards[code])
	}
	for _, code := range sortedKeys(rec.Draw) {
		entry := rec.Draw[code]
		deck.DrawCards = append(deck.DrawCards, card.CardQuantity{
			Card:     cards[code],
			Count:    entry.Count,
			Starting: entry.Starting,
		})
	}
	for _, code := range sortedKeys(rec.Plots) {
		deck.PlotCards = append(deck.PlotCards, card.CardQuantity{Card: cards[code], Count: rec.Plots[code]})
	}

	s.logger.Debug("resolved deck record",
		zap.String("deck", rec.Name),
		zap.Int("codes", len(codes)),
	)
	return deck, nil
}

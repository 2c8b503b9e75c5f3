package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dtdb/deckcheck/internal/card"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Querier is the subset of pgxpool.Pool used by CardRepository.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// CardRepository reads card and pack records.
type CardRepository struct {
	db     Querier
	logger *zap.Logger
}

// NewCardRepository creates a card repository backed by db.
func NewCardRepository(db Querier, logger *zap.Logger) *CardRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CardRepository{db: db, logger: logger}
}

const selectCards = `
SELECT code, title, name, type_code, faction, traits, keywords, text,
       loyal, cost, value, deck_limit, pack_code
FROM cards`

// ListPacks returns every pack ordered by code.
func (r *CardRepository) ListPacks(ctx context.Context) ([]card.Pack, error) {
	rows, err := r.db.Query(ctx, `SELECT code, name, available, date_release FROM packs ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query packs: %w", err)
	}

	packs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (card.Pack, error) {
		var (
			pack        card.Pack
			available   *time.Time
			dateRelease *time.Time
		)
		if err := row.Scan(&pack.Code, &pack.Name, &available, &dateRelease); err != nil {
			return card.Pack{}, err
		}
		pack.Available = formatDate(available)
		pack.DateRelease = formatDate(dateRelease)
		return pack, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan packs: %w", err)
	}

	r.logger.Debug("loaded packs", zap.Int("count", len(packs)))
	return packs, nil
}

// ListCards returns every card ordered by code.
func (r *CardRepository) ListCards(ctx context.Context) ([]*card.Card, error) {
	rows, err := r.db.Query(ctx, selectCards+` ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	return r.collectCards(rows)
}

// GetCards returns the cards with the given codes keyed by code. Codes with
// no card are absent from the result.
func (r *CardRepository) GetCards(ctx context.Context, codes []string) (map[string]*card.Card, error) {
	if len(codes) == 0 {
		return map[string]*card.Card{}, nil
	}

	rows, err := r.db.Query(ctx, selectCards+` WHERE code = ANY($1)`, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	cards, err := r.collectCards(rows)
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]*card.Card, len(cards))
	for _, c := range cards {
		byCode[c.Code] = c
	}
	return byCode, nil
}

func (r *CardRepository) collectCards(rows pgx.Rows) ([]*card.Card, error) {
	cards, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*card.Card, error) {
		c := &card.Card{}
		err := row.Scan(
			&c.Code, &c.Title, &c.Name, &c.Type, &c.Faction, &c.Traits, &c.Keywords, &c.Text,
			&c.Loyal, &c.Cost, &c.Value, &c.DeckLimit, &c.PackCode,
		)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan cards: %w", err)
	}
	r.logger.Debug("loaded cards", zap.Int("count", len(cards)))
	return cards, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(card.ReleaseDateLayout)
}

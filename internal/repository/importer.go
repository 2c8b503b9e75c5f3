package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dtdb/deckcheck/internal/card"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TxBeginner starts transactions. *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ImportStats summarizes an import run.
type ImportStats struct {
	Packs int
	Cards int
}

// Importer upserts pack and card records.
type Importer struct {
	db               TxBeginner
	batchSize        int
	requireDeckLimit bool
	logger           *zap.Logger
}

// NewImporter creates an importer that commits every batchSize cards. When
// requireDeckLimit is set, cards without a positive deck limit are rejected.
func NewImporter(db TxBeginner, batchSize int, requireDeckLimit bool, logger *zap.Logger) *Importer {
	if batchSize <= 0 {
		batchSize = 1000
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{db: db, batchSize: batchSize, requireDeckLimit: requireDeckLimit, logger: logger}
}

const upsertPack = `
INSERT INTO packs (code, name, available, date_release)
VALUES ($1, $2, $3, $4)
ON CONFLICT (code) DO UPDATE SET
	name = EXCLUDED.name,
	available = EXCLUDED.available,
	date_release = EXCLUDED.date_release`

const upsertCard = `
INSERT INTO cards (
	code, title, name, type_code, faction, traits, keywords, text,
	loyal, cost, value, deck_limit, pack_code
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (code) DO UPDATE SET
	title = EXCLUDED.title,
	name = EXCLUDED.name,
	type_code = EXCLUDED.type_code,
	faction = EXCLUDED.faction,
	traits = EXCLUDED.traits,
	keywords = EXCLUDED.keywords,
	text = EXCLUDED.text,
	loyal = EXCLUDED.loyal,
	cost = EXCLUDED.cost,
	value = EXCLUDED.value,
	deck_limit = EXCLUDED.deck_limit,
	pack_code = EXCLUDED.pack_code`

// Import validates and upserts packs, then cards in batches. Packs are
// written first so card rows can reference them.
func (im *Importer) Import(ctx context.Context, packs []card.Pack, cards []*card.Card) (ImportStats, error) {
	var stats ImportStats

	if err := CheckImport(packs, cards, im.requireDeckLimit); err != nil {
		return stats, err
	}

	err := im.inTx(ctx, func(tx pgx.Tx) error {
		for _, pack := range packs {
			if _, err := tx.Exec(ctx, upsertPack, pack.Code, pack.Name,
				nullableDate(pack.Available), nullableDate(pack.DateRelease)); err != nil {
				return fmt.Errorf("failed to upsert pack %s: %w", pack.Code, err)
			}
		}
		return nil
	})
	if err != nil {
		return stats, err
	}
	stats.Packs = len(packs)

	for start := 0; start < len(cards); start += im.batchSize {
		end := min(start+im.batchSize, len(cards))
		batch := cards[start:end]

		err := im.inTx(ctx, func(tx pgx.Tx) error {
			for _, c := range batch {
				traits := c.Traits
				if traits == nil {
					traits = []string{}
				}
				if _, err := tx.Exec(ctx, upsertCard,
					c.Code, c.Title, c.Name, c.Type, c.Faction, traits, c.Keywords, c.Text,
					c.Loyal, c.Cost, c.Value, c.DeckLimit, c.PackCode,
				); err != nil {
					return fmt.Errorf("failed to upsert card %s: %w", c.Code, err)
				}
			}
			return nil
		})
		if err != nil {
			return stats, err
		}
		stats.Cards += len(batch)

		im.logger.Info("imported card batch",
			zap.Int("imported", stats.Cards),
			zap.Int("total", len(cards)),
		)
	}

	return stats, nil
}

func (im *Importer) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := im.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			im.logger.Warn("rollback failed", zap.Error(rbErr))
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CheckImport rejects records the validator could not use: packs with
// malformed dates or duplicate codes, and cards without a code, a type or a
// known pack. Negative deck limits are always rejected; a missing deck limit
// only when requireDeckLimit is set.
func CheckImport(packs []card.Pack, cards []*card.Card, requireDeckLimit bool) error {
	known := make(map[string]bool, len(packs))
	for _, pack := range packs {
		if pack.Code == "" {
			return fmt.Errorf("pack without code")
		}
		if known[pack.Code] {
			return fmt.Errorf("duplicate pack code %s", pack.Code)
		}
		if _, _, err := pack.ReleaseDate(); err != nil {
			return err
		}
		known[pack.Code] = true
	}

	seen := make(map[string]bool, len(cards))
	for i, c := range cards {
		switch {
		case c == nil:
			return fmt.Errorf("card %d is null", i)
		case c.Code == "":
			return fmt.Errorf("card %d has no code", i)
		case seen[c.Code]:
			return fmt.Errorf("duplicate card code %s", c.Code)
		case c.Type == "":
			return fmt.Errorf("card %s has no type", c.Code)
		case !known[c.PackCode]:
			return fmt.Errorf("card %s references unknown pack %q", c.Code, c.PackCode)
		case c.DeckLimit < 0:
			return fmt.Errorf("card %s has negative deck limit %d", c.Code, c.DeckLimit)
		case requireDeckLimit && c.DeckLimit == 0:
			return fmt.Errorf("card %s has no deck limit", c.Code)
		}
		seen[c.Code] = true
	}
	return nil
}

// nullableDate converts a checked pack date to a DATE parameter.
func nullableDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(card.ReleaseDateLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}

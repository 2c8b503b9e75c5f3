package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dtdb/deckcheck/internal/card"
	"github.com/dtdb/deckcheck/internal/config"
	"github.com/dtdb/deckcheck/internal/logging"
	"github.com/dtdb/deckcheck/internal/repository"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	packsPath  = flag.String("packs", "data/packs.json", "path to the pack JSON export")
	cardsPath  = flag.String("cards", "data/cards.json", "path to the card JSON export")
	batchSize  = flag.Int("batch", 1000, "cards per transaction")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts, err := cfg.Validator.Options()
	if err != nil {
		logger.Fatal("invalid validator options", zap.Error(err))
	}

	var packs []card.Pack
	if err := readJSON(*packsPath, &packs); err != nil {
		logger.Fatal("failed to read packs", zap.Error(err))
	}
	var cards []*card.Card
	if err := readJSON(*cardsPath, &cards); err != nil {
		logger.Fatal("failed to read cards", zap.Error(err))
	}
	logger.Info("parsed card data",
		zap.Int("packs", len(packs)),
		zap.Int("cards", len(cards)),
	)

	ctx := context.Background()

	pool, err := repository.NewDB(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := repository.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("failed to prepare schema", zap.Error(err))
	}

	start := time.Now()
	stats, err := repository.NewImporter(pool, *batchSize, opts.GroupLimit == 0, logger).Import(ctx, packs, cards)
	if err != nil {
		logger.Fatal("import failed",
			zap.Int("packs_imported", stats.Packs),
			zap.Int("cards_imported", stats.Cards),
			zap.Error(err),
		)
	}

	duration := time.Since(start)
	logger.Info("import complete",
		zap.Int("packs", stats.Packs),
		zap.Int("cards", stats.Cards),
		zap.Duration("duration", duration),
		zap.Float64("cards_per_second", float64(stats.Cards)/duration.Seconds()),
	)
}

func readJSON(path string, out any) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", absPath, err)
	}
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/spendsense/internal/catalog"
	"github.com/dvloznov/spendsense/internal/config"
	"github.com/dvloznov/spendsense/internal/generator"
	"github.com/dvloznov/spendsense/internal/logger"
	"github.com/dvloznov/spendsense/internal/recommend"
	"github.com/dvloznov/spendsense/internal/store"
	bqstore "github.com/dvloznov/spendsense/internal/store/bigquery"
	"github.com/dvloznov/spendsense/internal/store/inmemory"
)

func main() {
	log := logger.New()

	userID := flag.String("user", "", "User ID to generate recommendations for (required)")
	windowDays := flag.Int("window", 30, "Analysis window in days: 30, 90 or 180")
	flag.Parse()

	if *userID == "" {
		log.Fatal().Msg("Error: --user is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load content catalogs")
	}

	source, cleanup, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open data store")
	}
	defer cleanup()

	var gen generator.ContentGenerator = generator.NewTemplateGenerator(cat, log)
	if cfg.GeminiModel != "" {
		gen = generator.NewGeminiGenerator(cat, cfg.GeminiModel, log)
	}

	engine := recommend.NewStandardEngine(source, cat, gen, log)

	result, err := engine.GenerateRecommendations(ctx, *userID, *windowDays)
	if err != nil {
		log.Fatal().Err(err).Str("user_id", *userID).Msg("Recommendation generation failed")
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode result")
	}
	fmt.Println(string(out))
}

// loadCatalog loads the two catalog halves from local files or gs:// URIs.
func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	content, err := loadOne(ctx, cfg.ContentCatalogPath)
	if err != nil {
		return nil, err
	}
	offers, err := loadOne(ctx, cfg.OffersCatalogPath)
	if err != nil {
		return nil, err
	}
	return catalog.Merge(content, offers), nil
}

func loadOne(ctx context.Context, path string) (*catalog.Catalog, error) {
	if strings.HasPrefix(path, "gs://") {
		return catalog.LoadGCS(ctx, path)
	}
	return catalog.LoadFile(path)
}

// openStore connects the configured backend and returns a cleanup func.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.DataSource, func(), error) {
	switch cfg.Store {
	case config.StoreBigQuery:
		bq, err := bqstore.NewStore(ctx, cfg.ProjectID, cfg.DatasetID)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("project", cfg.ProjectID).Str("dataset", cfg.DatasetID).Msg("Using BigQuery store")
		return bq, func() { _ = bq.Close() }, nil

	default:
		mem := inmemory.NewStore()
		if cfg.SeedPath != "" {
			if err := mem.LoadSeed(cfg.SeedPath); err != nil {
				return nil, nil, err
			}
			log.Info().Str("seed", cfg.SeedPath).Msg("Seeded in-memory store")
		}
		return mem, func() {}, nil
	}
}

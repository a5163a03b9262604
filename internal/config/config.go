// Package config reads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Store backend names accepted in SPENDSENSE_STORE.
const (
	StoreMemory   = "memory"
	StoreBigQuery = "bigquery"
)

// Config is the full process configuration.
type Config struct {
	// Store selects the data backend: "memory" (default) or "bigquery".
	Store string

	// BigQuery settings, required when Store is "bigquery".
	ProjectID string
	DatasetID string

	// Catalog file locations. Local paths by default; gs:// URIs are
	// fetched from Cloud Storage at startup.
	ContentCatalogPath string
	OffersCatalogPath  string

	// SeedPath optionally points at a JSON fixture loaded into the memory
	// store on startup.
	SeedPath string

	// GeminiModel enables the LLM rationale generator when non-empty.
	GeminiModel string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; a missing file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Store:              getenvDefault("SPENDSENSE_STORE", StoreMemory),
		ProjectID:          os.Getenv("SPENDSENSE_BQ_PROJECT"),
		DatasetID:          os.Getenv("SPENDSENSE_BQ_DATASET"),
		ContentCatalogPath: getenvDefault("SPENDSENSE_CONTENT_CATALOG", "data/content_catalog.yaml"),
		OffersCatalogPath:  getenvDefault("SPENDSENSE_OFFERS_CATALOG", "data/partner_offers_catalog.yaml"),
		SeedPath:           os.Getenv("SPENDSENSE_SEED"),
		GeminiModel:        os.Getenv("SPENDSENSE_GEMINI_MODEL"),
	}

	switch cfg.Store {
	case StoreMemory:
	case StoreBigQuery:
		if cfg.ProjectID == "" {
			return nil, fmt.Errorf("Load: SPENDSENSE_BQ_PROJECT is not set")
		}
		if cfg.DatasetID == "" {
			return nil, fmt.Errorf("Load: SPENDSENSE_BQ_DATASET is not set")
		}
	default:
		return nil, fmt.Errorf("Load: unknown store backend %q", cfg.Store)
	}

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

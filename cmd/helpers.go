package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ziadkadry99/asset-atlas/internal/atlas"
	"github.com/ziadkadry99/asset-atlas/internal/audit"
	"github.com/ziadkadry99/asset-atlas/internal/catalog"
	"github.com/ziadkadry99/asset-atlas/internal/config"
	"github.com/ziadkadry99/asset-atlas/internal/db"
	"github.com/ziadkadry99/asset-atlas/internal/layout"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `atlas init` to create a config file", err)
	}
	if catalogFile != "" {
		cfg.Catalog = catalogFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadAtlas builds the explorer session the commands work on.
func loadAtlas(ctx context.Context, cfg *config.Config) (*atlas.Atlas, error) {
	def, err := loadDefinition(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a, err := atlas.New(def, atlas.Options{
		Title: cfg.Title,
		Layout: layout.Spring{
			K:          cfg.Layout.K,
			Iterations: cfg.Layout.Iterations,
			Seed:       cfg.Layout.Seed,
		},
	})
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Fprintln(os.Stderr, a.Summary())
	}
	return a, nil
}

// loadDefinition picks the catalog source: an exported snapshot, a
// definition file, or the built-in catalog.
func loadDefinition(ctx context.Context, cfg *config.Config) (*catalog.Definition, error) {
	switch {
	case snapshotID != "":
		database, err := db.Open(cfg.Snapshot)
		if err != nil {
			return nil, err
		}
		defer database.Close()
		def, err := db.NewStore(database).Definition(ctx, snapshotID)
		if err != nil {
			return nil, fmt.Errorf("loading snapshot %s: %w", snapshotID, err)
		}
		return def, nil
	case cfg.Catalog != "":
		return catalog.LoadFile(cfg.Catalog)
	default:
		return catalog.Builtin()
	}
}

// openJournal opens the exploration journal in the snapshot database when
// --journal is set. The returned close func is never nil.
func openJournal(cfg *config.Config, actor audit.Actor) (*audit.Journal, func(), error) {
	if !journal {
		return nil, func() {}, nil
	}
	database, err := db.Open(cfg.Snapshot)
	if err != nil {
		return nil, nil, fmt.Errorf("opening journal: %w", err)
	}
	return audit.NewJournal(audit.NewStore(database), actor), func() { database.Close() }, nil
}

// setup is the common preamble of commands that need an atlas.
func setup(ctx context.Context) (*config.Config, *atlas.Atlas, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	a, err := loadAtlas(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, a, nil
}

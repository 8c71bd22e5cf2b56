package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/cognicore/shortname/internal/logger"
	"github.com/cognicore/shortname/pkg/shortname"
	"github.com/cognicore/shortname/pkg/shortname/ruleset"
	"github.com/cognicore/shortname/pkg/shortname/store/sqlite"
)

// buildEngine assembles an engine from configuration. A dictionary that
// cannot be loaded is reported and the engine starts empty, so commands
// still run and every result carries the no-dictionary warning.
func buildEngine(ctx context.Context) (*shortname.Engine, func(), error) {
	log := logger.FromContext(ctx)
	rules := ruleset.Default()
	if path := viper.GetString("ruleset.path"); path != "" {
		loaded, err := ruleset.Load(path)
		if err != nil {
			return nil, nil, fmt.Errorf("load ruleset: %w", err)
		}
		rules = loaded
	}

	engine := shortname.New(shortname.Options{
		Rules:     rules,
		Logger:    log,
		Workers:   viper.GetInt("batch.workers"),
		CacheSize: viper.GetInt("cache.size"),
	})
	cleanup := func() {}

	if dbPath := viper.GetString("dictionary.db"); dbPath != "" {
		st, err := sqlite.OpenSQLite(ctx, dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open dictionary database: %w", err)
		}
		cleanup = func() { st.Close() }
		if err := engine.LoadDictionaryFromStore(ctx, st, dbPath); err != nil {
			log.Warn("continuing without dictionary", "error", err)
		}
		return engine, cleanup, nil
	}

	if path := viper.GetString("dictionary.path"); path != "" {
		if err := engine.LoadDictionary(path); err != nil {
			log.Warn("continuing without dictionary", "error", err)
		}
	}
	return engine, cleanup, nil
}

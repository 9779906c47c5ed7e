package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/freshko/config"
	"github.com/shashiranjanraj/freshko/pkg/flat"
	"github.com/shashiranjanraj/freshko/pkg/kv"
	"github.com/shashiranjanraj/freshko/pkg/logger"
	"github.com/shashiranjanraj/freshko/pkg/storage"
)

// boot loads config, wires the log sinks, and assembles the two storage
// tiers behind the facade. An unreachable engine is reported, not fatal:
// the facade comes up degraded on the flat tier.
func boot(ctx context.Context) (*storage.Facade, kv.Engine, flat.Driver, error) {
	if err := config.Load(); err != nil {
		return nil, nil, nil, err
	}
	wireLogSinks()

	fallback, err := flat.Open()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open flat store: %w", err)
	}

	var engine kv.Engine
	if e, err := kv.Open(); err != nil {
		logger.Warn("boot: key-value engine unavailable", "error", err)
	} else {
		engine = e
	}

	return storage.New(ctx, engine, fallback), engine, fallback, nil
}

// wireLogSinks mirrors log records into Mongo when a sink is configured.
func wireLogSinks() {
	uri := config.MongoLogURI()
	if uri == "" {
		return
	}

	mh, err := logger.NewMongoHandler(uri, config.MongoLogDB(), "logs")
	if err != nil {
		logger.Warn("boot: mongo log sink unavailable", "error", err)
		return
	}

	console := slog.NewJSONHandler(os.Stdout, nil)
	logger.SetHandler(logger.NewMultiHandler(console, mh))
}

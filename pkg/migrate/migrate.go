// Package migrate copies legacy flat-store entries into the schema'd engine.
//
// The copy runs once per installation. Completion is recorded in BOTH tiers:
// a marker in the engine's settings store and a parallel flag in the flat
// store, so the "has it run" check never depends on the engine being up.
// One corrupt key is logged and skipped; it must not block the others.
package migrate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shashiranjanraj/freshko/config"
	"github.com/shashiranjanraj/freshko/pkg/bus"
	"github.com/shashiranjanraj/freshko/pkg/flat"
	"github.com/shashiranjanraj/freshko/pkg/kv"
	"github.com/shashiranjanraj/freshko/pkg/logger"
	"github.com/shashiranjanraj/freshko/pkg/metrics"
	"github.com/shashiranjanraj/freshko/pkg/storage"
)

// Report summarises one migration run.
type Report struct {
	Copied  int
	Skipped int
	Failed  int
}

// Coordinator performs the one-shot legacy copy.
type Coordinator struct {
	engine kv.Engine
	flat   flat.Driver
	bus    *bus.Bus
	marker string
}

// New builds a Coordinator over the two storage tiers. events may be nil.
func New(engine kv.Engine, fallback flat.Driver, events *bus.Bus) *Coordinator {
	return &Coordinator{
		engine: engine,
		flat:   fallback,
		bus:    events,
		marker: config.MigrationMarker(),
	}
}

// NeedsMigration reports whether the legacy copy still has to run. A marker
// in either tier counts: the flat flag exists precisely so this check works
// when the engine is unavailable.
func (c *Coordinator) NeedsMigration(ctx context.Context) bool {
	if _, ok := c.flat.Get(c.marker); ok {
		return false
	}
	if c.engine != nil {
		if _, err := c.engine.Get(ctx, kv.StoreSettings, c.marker); err == nil {
			return false
		}
	}
	return true
}

// Run executes the copy. Safe to call repeatedly, including concurrently from
// multiple initialisations: migration only copies, so an overlapping second
// run rewrites identical data before both observe the marker.
func (c *Coordinator) Run(ctx context.Context) (Report, error) {
	var report Report

	if !c.NeedsMigration(ctx) {
		logger.Debug("migrate: already completed, skipping")
		return report, nil
	}

	logger.Info("migrate: copying legacy flat-store entries")

	for _, key := range storage.LegacyKeys {
		raw, ok := c.flat.Get(key)
		if !ok {
			report.Skipped++
			metrics.MigratedKeys.WithLabelValues("skipped").Inc()
			continue
		}

		if !json.Valid([]byte(raw)) {
			report.Failed++
			metrics.MigratedKeys.WithLabelValues("failed").Inc()
			logger.Warn("migrate: corrupt legacy value, skipping key", "key", key)
			continue
		}

		if err := c.engine.Put(ctx, storage.StoreFor(key), key, []byte(raw)); err != nil {
			report.Failed++
			metrics.MigratedKeys.WithLabelValues("failed").Inc()
			logger.Warn("migrate: engine write failed, key not migrated", "key", key, "error", err)
			continue
		}

		report.Copied++
		metrics.MigratedKeys.WithLabelValues("copied").Inc()
		logger.Info("migrate: copied", "key", key)
	}

	if err := c.writeMarkers(ctx); err != nil {
		return report, err
	}

	if c.bus != nil {
		c.bus.Publish(bus.StorageMigrated)
	}

	logger.Info("migrate: done",
		"copied", report.Copied, "skipped", report.Skipped, "failed", report.Failed)
	return report, nil
}

func (c *Coordinator) writeMarkers(ctx context.Context) error {
	marker, _ := json.Marshal(map[string]string{
		"migratedAt": time.Now().UTC().Format(time.RFC3339),
	})

	if err := c.engine.Put(ctx, kv.StoreSettings, c.marker, marker); err != nil {
		return fmt.Errorf("migrate: write engine marker: %w", err)
	}
	if err := c.flat.Set(c.marker, string(marker)); err != nil {
		return fmt.Errorf("migrate: write flat marker: %w", err)
	}
	return nil
}

package migrate_test

import (
	"context"
	"testing"

	"github.com/shashiranjanraj/freshko/config"
	"github.com/shashiranjanraj/freshko/pkg/bus"
	"github.com/shashiranjanraj/freshko/pkg/flat"
	"github.com/shashiranjanraj/freshko/pkg/kv"
	"github.com/shashiranjanraj/freshko/pkg/migrate"
	"github.com/shashiranjanraj/freshko/pkg/storage"
)

// memEngine mirrors the stub in pkg/storage tests: enough Engine to migrate into.
type memEngine struct {
	data map[string]map[string][]byte
}

func newMemEngine() *memEngine {
	return &memEngine{data: map[string]map[string][]byte{}}
}

func (e *memEngine) Init(context.Context) error { return nil }

func (e *memEngine) Get(_ context.Context, store, key string) ([]byte, error) {
	if v, ok := e.data[store][key]; ok {
		return v, nil
	}
	return nil, kv.ErrKeyNotFound
}

func (e *memEngine) Put(_ context.Context, store, key string, value []byte) error {
	if e.data[store] == nil {
		e.data[store] = map[string][]byte{}
	}
	e.data[store][key] = value
	return nil
}

func (e *memEngine) Delete(_ context.Context, store, key string) error {
	delete(e.data[store], key)
	return nil
}

func (e *memEngine) Clear(_ context.Context, store string) error {
	if store == "" {
		e.data = map[string]map[string][]byte{}
	} else {
		delete(e.data, store)
	}
	return nil
}

func (e *memEngine) ListKeys(context.Context, string) ([]string, error) { return nil, nil }

func (e *memEngine) EstimateUsage(context.Context) (kv.Usage, error) { return kv.Usage{}, nil }

func legacyStore(t *testing.T) *flat.MemoryStore {
	t.Helper()
	s := flat.NewMemoryStore()
	_ = s.Set(storage.KeyProducts, `[{"id":1,"title":"Apples"}]`)
	_ = s.Set(storage.KeyUsers, `[{"id":"u1","email":"a@b.c"}]`)
	return s
}

func TestRunCopiesLegacyKeys(t *testing.T) {
	ctx := context.Background()
	engine := newMemEngine()
	legacy := legacyStore(t)

	c := migrate.New(engine, legacy, nil)

	if !c.NeedsMigration(ctx) {
		t.Fatal("fresh install should need migration")
	}

	report, err := c.Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Copied != 2 {
		t.Errorf("expected 2 copied keys, got %d", report.Copied)
	}
	if report.Failed != 0 {
		t.Errorf("expected no failures, got %d", report.Failed)
	}

	got, err := engine.Get(ctx, kv.StoreProducts, storage.KeyProducts)
	if err != nil {
		t.Fatalf("engine read: %v", err)
	}
	if string(got) != `[{"id":1,"title":"Apples"}]` {
		t.Errorf("unexpected migrated value: %s", got)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	engine := newMemEngine()
	legacy := legacyStore(t)

	c := migrate.New(engine, legacy, nil)
	if _, err := c.Run(ctx); err != nil {
		t.Fatal(err)
	}

	if c.NeedsMigration(ctx) {
		t.Fatal("migration should be marked complete")
	}

	// Mutate engine state, then re-run: the second run must be a no-op.
	_ = engine.Put(ctx, kv.StoreProducts, storage.KeyProducts, []byte(`[{"id":99}]`))

	report, err := c.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if report.Copied != 0 {
		t.Errorf("second run copied %d keys, expected 0", report.Copied)
	}

	got, _ := engine.Get(ctx, kv.StoreProducts, storage.KeyProducts)
	if string(got) != `[{"id":99}]` {
		t.Errorf("second run overwrote engine data: %s", got)
	}
}

func TestCorruptKeyDoesNotBlockBatch(t *testing.T) {
	ctx := context.Background()
	engine := newMemEngine()
	legacy := legacyStore(t)
	_ = legacy.Set(storage.KeyOrders, `{broken json`)

	c := migrate.New(engine, legacy, nil)
	report, err := c.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if report.Failed != 1 {
		t.Errorf("expected 1 failed key, got %d", report.Failed)
	}
	if report.Copied != 2 {
		t.Errorf("corrupt key blocked the batch: copied %d", report.Copied)
	}
	if c.NeedsMigration(ctx) {
		t.Error("migration should still complete with a failed key")
	}
}

func TestFlatMarkerAloneSuppressesMigration(t *testing.T) {
	ctx := context.Background()
	legacy := legacyStore(t)
	_ = legacy.Set(config.MigrationMarker(), `{"migratedAt":"2026-01-01T00:00:00Z"}`)

	c := migrate.New(newMemEngine(), legacy, nil)
	if c.NeedsMigration(ctx) {
		t.Error("flat marker alone must suppress migration")
	}
}

func TestRunPublishesStorageMigrated(t *testing.T) {
	ctx := context.Background()
	events := bus.New()

	fired := false
	events.Subscribe(bus.StorageMigrated, func(bus.Event) { fired = true })

	c := migrate.New(newMemEngine(), legacyStore(t), events)
	if _, err := c.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !fired {
		t.Error("expected storage-migrated event")
	}
}

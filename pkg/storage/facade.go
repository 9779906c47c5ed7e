// Package storage provides the facade the rest of the application stores
// through. It looks like a flat get/set/remove/clear API, is backed by the
// key-value engine, and silently redoes any failed engine operation against
// the flat tier. Callers never see a storage error: the worst case is
// degraded persistence, never a crash.
package storage

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/shashiranjanraj/freshko/pkg/flat"
	"github.com/shashiranjanraj/freshko/pkg/kv"
	"github.com/shashiranjanraj/freshko/pkg/logger"
	"github.com/shashiranjanraj/freshko/pkg/metrics"
)

// Well-known collection keys, shared with the legacy flat layout.
const (
	KeyProducts = "freshko-products"
	KeyArticles = "freshko-articles"
	KeyOrders   = "freshko-orders"
	KeyUsers    = "freshko-users"
	KeyStore    = "freshko-store"
)

// storeForKey routes the well-known collection keys to their entity stores
// so the engine's semantic indexes stay warm; everything else lands in
// settings.
var storeForKey = map[string]string{
	KeyProducts: kv.StoreProducts,
	KeyArticles: kv.StoreArticles,
	KeyOrders:   kv.StoreOrders,
	KeyUsers:    kv.StoreUsers,
	KeyStore:    kv.StoreGeneric,
}

// LegacyKeys is the set of flat-store keys the one-time migration copies.
var LegacyKeys = []string{KeyProducts, KeyArticles, KeyOrders, KeyUsers, KeyStore}

// StoreFor returns the engine object store a key routes to.
func StoreFor(key string) string {
	if s, ok := storeForKey[key]; ok {
		return s
	}
	return kv.StoreSettings
}

// Facade is the two-tier storage surface.
type Facade struct {
	engine   kv.Engine
	flat     flat.Driver
	degraded atomic.Bool // set when engine init failed; all ops go flat
}

// New initialises the engine and returns the facade. An engine that fails
// Init is not an error for the caller: the facade comes up degraded on the
// flat tier and keeps working.
func New(ctx context.Context, engine kv.Engine, fallback flat.Driver) *Facade {
	f := &Facade{engine: engine, flat: fallback}

	if engine == nil {
		f.degraded.Store(true)
		logger.Warn("storage: no engine configured, running on flat tier")
		return f
	}

	if err := engine.Init(ctx); err != nil {
		f.degraded.Store(true)
		logger.Warn("storage: engine init failed, running on flat tier", "error", err)
	}
	return f
}

// Degraded reports whether the engine tier is out of service.
func (f *Facade) Degraded() bool {
	return f.degraded.Load()
}

// GetItem returns the serialized value under key. A miss on the engine tier
// falls through to the flat tier: writes made during a degraded period live
// there and must stay readable once the engine recovers.
func (f *Facade) GetItem(ctx context.Context, key string) (string, bool) {
	if !f.degraded.Load() {
		start := time.Now()
		val, err := f.engine.Get(ctx, StoreFor(key), key)
		metrics.ObserveEngineOp("get", start)

		switch {
		case err == nil:
			metrics.RecordStorageOp("get", "engine")
			return string(val), true
		case err != kv.ErrKeyNotFound:
			metrics.RecordFallback("get")
			logger.Warn("storage: engine read failed, using flat store", "key", key, "error", err)
		}
	}

	val, ok := f.flat.Get(key)
	metrics.RecordStorageOp("get", "flat")
	return val, ok
}

// SetItem writes the serialized value under key. Engine failures are
// recovered by writing to the flat tier instead; the caller never branches.
func (f *Facade) SetItem(ctx context.Context, key, value string) {
	if !f.degraded.Load() {
		start := time.Now()
		err := f.engine.Put(ctx, StoreFor(key), key, []byte(value))
		metrics.ObserveEngineOp("put", start)

		if err == nil {
			metrics.RecordStorageOp("set", "engine")
			return
		}
		metrics.RecordFallback("set")
		logger.Warn("storage: engine write failed, using flat store", "key", key, "error", err)
	}

	if err := f.flat.Set(key, value); err != nil {
		logger.Error("storage: flat write failed, value held in memory only", "key", key, "error", err)
	}
	metrics.RecordStorageOp("set", "flat")
}

// RemoveItem deletes key from both tiers; leaving a flat copy behind would
// resurrect deleted data on the next degraded read.
func (f *Facade) RemoveItem(ctx context.Context, key string) {
	if !f.degraded.Load() {
		start := time.Now()
		err := f.engine.Delete(ctx, StoreFor(key), key)
		metrics.ObserveEngineOp("delete", start)

		if err != nil {
			metrics.RecordFallback("remove")
			logger.Warn("storage: engine delete failed", "key", key, "error", err)
		}
	}

	if err := f.flat.Remove(key); err != nil {
		logger.Warn("storage: flat delete failed", "key", key, "error", err)
	}
	metrics.RecordStorageOp("remove", "flat")
}

// Clear empties both tiers.
func (f *Facade) Clear(ctx context.Context) {
	if !f.degraded.Load() {
		start := time.Now()
		err := f.engine.Clear(ctx, "")
		metrics.ObserveEngineOp("clear", start)

		if err != nil {
			metrics.RecordFallback("clear")
			logger.Warn("storage: engine clear failed", "error", err)
		}
	}

	if err := f.flat.Clear(); err != nil {
		logger.Warn("storage: flat clear failed", "error", err)
	}
	metrics.RecordStorageOp("clear", "flat")
}

// GetJSON reads key and unmarshals it into dest. A missing key or corrupt
// value both report false: deserialization errors are treated as key-absent.
func (f *Facade) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	raw, ok := f.GetItem(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		logger.Warn("storage: corrupt value treated as absent", "key", key, "error", err)
		return false
	}
	return true
}

// SetJSON marshals v and stores it under key. A value that cannot marshal
// is dropped with a log line; persistence is best-effort by contract.
func (f *Facade) SetJSON(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		logger.Error("storage: marshal failed, value not persisted", "key", key, "error", err)
		return
	}
	f.SetItem(ctx, key, string(raw))
}

// Usage reports the engine tier's estimated consumption, or zero when degraded.
func (f *Facade) Usage(ctx context.Context) kv.Usage {
	if f.degraded.Load() {
		return kv.Usage{}
	}
	usage, err := f.engine.EstimateUsage(ctx)
	if err != nil {
		logger.Warn("storage: usage estimate failed", "error", err)
		return kv.Usage{}
	}
	metrics.EngineUsageBytes.Set(float64(usage.Used))
	return usage
}

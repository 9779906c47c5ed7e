// Package kv implements the schema'd key-value engine backing the data layer.
//
// The engine owns one object store per entity category. Every store is keyed
// by an application-chosen string and carries secondary indexes on the fields
// range queries actually use (category, title, email, status), so callers
// never need a full scan to find, say, all shipped orders.
//
// All operations are context-aware and may fail; the storage facade is the
// layer that turns failures into a fallback, not this one.
package kv

import (
	"context"
	"errors"
)

// Object store names. The set is fixed for the lifetime of a schema version.
const (
	StoreProducts = "products"
	StoreArticles = "articles"
	StoreOrders   = "orders"
	StoreUsers    = "users"
	StoreSettings = "settings"
	StoreGeneric  = "store"
)

// Stores lists every object store the engine creates at Init.
var Stores = []string{
	StoreProducts,
	StoreArticles,
	StoreOrders,
	StoreUsers,
	StoreSettings,
	StoreGeneric,
}

var (
	// ErrEngineUnavailable wraps any failure to open or prepare the database.
	ErrEngineUnavailable = errors.New("kv: engine unavailable")

	// ErrKeyNotFound is returned by Get for an absent key.
	ErrKeyNotFound = errors.New("kv: key not found")

	// ErrUnknownStore is returned when a store name is not in Stores.
	ErrUnknownStore = errors.New("kv: unknown store")
)

// Usage reports how much the engine currently holds.
type Usage struct {
	Used  int64 `json:"used"`  // bytes of stored values
	Quota int64 `json:"quota"` // 0 when the backend reports no limit
}

// Engine is the asynchronous schema'd object store contract.
type Engine interface {
	// Init opens (creating if absent) the versioned database and its object
	// stores. Idempotent: re-opening at the same version loses nothing.
	Init(ctx context.Context) error

	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, store, key string) ([]byte, error)

	// Put writes value under key, replacing any previous value.
	Put(ctx context.Context, store, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, store, key string) error

	// Clear empties one store, or every store when store is "".
	Clear(ctx context.Context, store string) error

	// ListKeys returns all keys in a store in ascending order.
	ListKeys(ctx context.Context, store string) ([]string, error)

	// EstimateUsage reports current storage consumption.
	EstimateUsage(ctx context.Context) (Usage, error)
}

// ValidStore reports whether name is one of the engine's object stores.
func ValidStore(name string) bool {
	for _, s := range Stores {
		if s == name {
			return true
		}
	}
	return false
}

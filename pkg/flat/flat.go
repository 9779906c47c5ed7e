// Package flat provides the synchronous flat key-value tier.
//
// It is the fallback the storage facade redoes operations against whenever
// the schema'd engine fails, and the source the one-time migration copies
// legacy entries from. Three drivers exist: file (default), memory (tests)
// and redis (shared-origin deployments).
package flat

import (
	"fmt"

	"github.com/shashiranjanraj/freshko/config"
)

// Driver is the flat store contract. Get reports a miss as (_, false);
// read errors count as misses because callers treat absent and unreadable
// identically.
type Driver interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
	Clear() error
	Keys() []string
}

// Open builds the configured driver.
func Open() (Driver, error) {
	switch config.FlatDriver() {
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore()
	case "file":
		return NewFileStore(config.FlatPath())
	default:
		return nil, fmt.Errorf("flat: unsupported driver %q", config.FlatDriver())
	}
}

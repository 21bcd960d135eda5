package cache

import (
	"context"
	"time"
)

// NullCache backs runs with caching switched off. Every lookup misses, so
// each pass recomputes its arrangement and exports.
type NullCache struct{}

// NewNullCache returns the cache used for --no-cache and backend "none".
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}

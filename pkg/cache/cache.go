// Package cache stores encoded arrangement results.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under the user cache directory (CLI)
//   - [RedisCache]: a shared Redis instance (HTTP server, multiple replicas)
//   - [NullCache]: never stores anything (--no-cache, tests)
//
// Keys are produced by a [Keyer] so that every caller derives the same key
// for the same scene and options:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArrangeKey(cache.Hash(sceneJSON), cache.ArrangeKeyOpts{ItemAvoidance: true})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the lifetime of entries written without an explicit TTL.
const DefaultTTL = 24 * time.Hour

// Cache is a byte-oriented key/value store with expiration.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// ArrangeKey identifies the result of one layout pass over a scene.
	ArrangeKey(sceneHash string, opts ArrangeKeyOpts) string

	// ExportKey identifies a rendered visibility graph export.
	ExportKey(sceneHash string, opts ExportKeyOpts) string
}

// ArrangeKeyOpts holds the options that change a layout result.
type ArrangeKeyOpts struct {
	ItemAvoidance bool     `json:"item_avoidance"`
	JoinAvoidance bool     `json:"join_avoidance"`
	Margin        float64  `json:"margin"`
	Padding       float64  `json:"padding"`
	Joins         []string `json:"joins,omitempty"`
}

// ExportKeyOpts holds the options that change a graph export.
type ExportKeyOpts struct {
	Join   string `json:"join"`
	Format string `json:"format"`
}

// DefaultKeyer produces "<kind>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArrangeKey implements Keyer.
func (DefaultKeyer) ArrangeKey(sceneHash string, opts ArrangeKeyOpts) string {
	return hashKey("arrange", sceneHash, opts)
}

// ExportKey implements Keyer.
func (DefaultKeyer) ExportKey(sceneHash string, opts ExportKeyOpts) string {
	return hashKey("export", sceneHash, opts)
}

package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arranger/pkg/arrange/path"
	"github.com/matzehuels/arranger/pkg/arrange/visibility"
	"github.com/matzehuels/arranger/pkg/cache"
	"github.com/matzehuels/arranger/pkg/errors"
	"github.com/matzehuels/arranger/pkg/export"
	"github.com/matzehuels/arranger/pkg/observability"
	"github.com/matzehuels/arranger/pkg/scene"
)

const (
	keyTypeArrange = "arrange"
	keyTypeExport  = "export"
)

// Runner encapsulates pass execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner holds no pass state. Multiple goroutines can share one Runner
// as long as each passes its own scene.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of cache entries. Zero selects cache.DefaultTTL.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Arrange runs a pass over s, serving the result from the cache when the same
// scene was arranged with the same options before. On a hit the cached
// placements are written back to s so callers observe the same state as after
// a fresh pass.
func (r *Runner) Arrange(ctx context.Context, s *scene.Scene, opts Options) (res *Result, err error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	doc := scene.ToDocument(s)
	if err := scene.Validate(doc); err != nil {
		return nil, err
	}
	for _, id := range opts.Joins {
		if _, ok := s.Join(id); !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "join %q not found", id)
		}
	}

	sceneHash, err := hashDocument(doc)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.ArrangeKey(sceneHash, opts.ArrangeKeyOpts())

	hooks := observability.Pipeline()
	hooks.OnArrangeStart(ctx, len(s.Items), len(s.Joins))
	start := time.Now()
	defer func() { hooks.OnArrangeComplete(ctx, time.Since(start), err) }()

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key); ok {
			if applyPlacements(s, cached.Items) {
				r.Logger.Debug("arrangement from cache", "key", key)
				return &Result{Document: cached, SceneHash: sceneHash, CacheHit: true}, nil
			}
		}
	}

	out, err := Arrange(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("arranged scene",
		"items", out.Stats.Items,
		"joins", out.Stats.Joins,
		"moves", out.Stats.Moves,
		"routed", out.Stats.Routed,
		"duration", time.Since(start))

	r.store(ctx, key, out)
	return &Result{Document: out, SceneHash: sceneHash}, nil
}

// Graph runs the item stages on s and returns the visibility graph explored
// for join id. Graphs are debug output and bypass the cache.
func (r *Runner) Graph(ctx context.Context, s *scene.Scene, id string, opts Options) (*visibility.Graph, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	g, _, _, err := ExploreJoin(ctx, s, id, opts)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("explored visibility graph", "join", id, "points", g.Len(), "edges", len(g.Edges()))
	return g, nil
}

// Export renders the visibility graph explored for join id, highlighting the
// shortest path when one exists. Exports are cached like arrangements.
func (r *Runner) Export(ctx context.Context, s *scene.Scene, id string, format export.Format, opts Options) ([]byte, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := export.ValidateFormat(format); err != nil {
		return nil, err
	}

	sceneHash, err := hashDocument(scene.ToDocument(s))
	if err != nil {
		return nil, err
	}
	key := r.Keyer.ExportKey(sceneHash, cache.ExportKeyOpts{Join: id, Format: string(format)})
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, keyTypeExport)
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeExport)
	}

	g, src, dst, err := ExploreJoin(ctx, s, id, opts)
	if err != nil {
		return nil, err
	}
	var eo export.Options
	if p, ok := path.Find(g, src, dst); ok {
		eo.Path = p.IDs
	}
	data, err := export.Render(ctx, g, format, eo)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, data, r.ttl()); err == nil {
		observability.Cache().OnCacheSet(ctx, keyTypeExport, len(data))
	}
	r.Logger.Debug("exported visibility graph", "join", id, "format", format, "bytes", len(data))
	return data, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) lookup(ctx context.Context, key string) (scene.ResultDocument, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		return scene.ResultDocument{}, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeArrange)
		return scene.ResultDocument{}, false
	}
	var doc scene.ResultDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		// Unreadable entries are recomputed and overwritten.
		observability.Cache().OnCacheMiss(ctx, keyTypeArrange)
		return scene.ResultDocument{}, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeArrange)
	return doc, true
}

func (r *Runner) store(ctx context.Context, key string, doc scene.ResultDocument) {
	data, err := json.Marshal(doc)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeArrange, len(data))
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.DefaultTTL
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// hashDocument hashes the canonical JSON form of a scene document.
func hashDocument(doc scene.Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode scene")
	}
	return cache.Hash(data), nil
}

// applyPlacements copies cached positions and sizes onto s. It reports false
// when the cached entry does not cover every item of s.
func applyPlacements(s *scene.Scene, placed []scene.PlacedItem) bool {
	if len(placed) != len(s.Items) {
		return false
	}
	for _, p := range placed {
		if _, ok := s.Item(p.ID); !ok {
			return false
		}
	}
	for _, p := range placed {
		it, _ := s.Item(p.ID)
		it.Position.X, it.Position.Y = p.X, p.Y
		it.Size.W, it.Size.H = p.Width, p.Height
		it.Placed = true
	}
	return true
}

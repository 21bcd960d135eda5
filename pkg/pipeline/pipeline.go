// Package pipeline runs the layout pass of the arranger.
//
// A pass takes a resolved scene and runs, in order:
//
//  1. Place: position every item that arrived without coordinates
//  2. Repair: push overlapping siblings apart, deepest containers first
//  3. Stretch: grow containers so their children fit
//  4. Route: build a visibility graph per join and find the shortest path
//
// The CLI and the HTTP server both drive passes through a [Runner], which adds
// result caching and observability on top of the stages.
//
// # Usage
//
//	s, err := pipeline.LoadScene("diagram.yaml", opts)
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Arrange(ctx, s, pipeline.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	for _, r := range result.Document.Routes {
//	    fmt.Println(r)
//	}
package pipeline

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arranger/pkg/arrange/placement"
	"github.com/matzehuels/arranger/pkg/cache"
	"github.com/matzehuels/arranger/pkg/errors"
	"github.com/matzehuels/arranger/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMargin is the gap kept between items placed by the pass.
	DefaultMargin = placement.DefaultMargin

	// DefaultPadding is the inner padding of containers that declare none.
	DefaultPadding = 10.0
)

// =============================================================================
// Options - Pass Configuration
// =============================================================================

// Options configures a layout pass. The zero value disables both avoidance
// stages; use [DefaultOptions] for the standard configuration.
type Options struct {
	// ItemAvoidance enables collision repair after placement.
	ItemAvoidance bool `json:"item_avoidance"`

	// JoinAvoidance routes joins around items. When false every join is a
	// straight line between its connectors.
	JoinAvoidance bool `json:"join_avoidance"`

	Margin  float64 `json:"margin,omitempty"`
	Padding float64 `json:"padding,omitempty"`

	// Joins restricts routing to the listed join IDs. Empty routes all.
	Joins []string `json:"joins,omitempty"`

	// Refresh bypasses the cache read. The result is still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// DefaultOptions returns options with both avoidance stages enabled.
func DefaultOptions() Options {
	return Options{
		ItemAvoidance: true,
		JoinAvoidance: true,
		Margin:        DefaultMargin,
		Padding:       DefaultPadding,
	}
}

// SetDefaults fills unset numeric fields and the logger.
func (o *Options) SetDefaults() {
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the numeric options.
func (o *Options) Validate() error {
	if math.IsNaN(o.Margin) || math.IsInf(o.Margin, 0) || o.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "margin must be a non-negative number, got %v", o.Margin)
	}
	if math.IsNaN(o.Padding) || math.IsInf(o.Padding, 0) || o.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "padding must be a non-negative number, got %v", o.Padding)
	}
	for _, id := range o.Joins {
		if id == "" {
			return errors.New(errors.ErrCodeInvalidInput, "join filter contains an empty id")
		}
	}
	return nil
}

// ArrangeKeyOpts returns the cache key options for a pass.
func (o *Options) ArrangeKeyOpts() cache.ArrangeKeyOpts {
	return cache.ArrangeKeyOpts{
		ItemAvoidance: o.ItemAvoidance,
		JoinAvoidance: o.JoinAvoidance,
		Margin:        o.Margin,
		Padding:       o.Padding,
		Joins:         o.Joins,
	}
}

// routes reports whether the join with the given id is selected.
func (o *Options) routes(id string) bool {
	if len(o.Joins) == 0 {
		return true
	}
	for _, j := range o.Joins {
		if j == id {
			return true
		}
	}
	return false
}

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of a pass.
type Result struct {
	// Document is the serializable result: placements, routes, bounds, stats.
	Document scene.ResultDocument

	// SceneHash identifies the input scene in cache keys and API responses.
	SceneHash string

	// CacheHit reports whether the document came from the cache.
	CacheHit bool
}

// Route returns the route computed for join id.
func (r *Result) Route(id string) (scene.Route, bool) {
	for _, rt := range r.Document.Routes {
		if rt.Join == id {
			return rt, true
		}
	}
	return scene.Route{}, false
}

// =============================================================================
// Scene Loading
// =============================================================================

// LoadScene reads, validates and resolves the scene at path, applying the
// padding default of opts.
func LoadScene(path string, opts Options) (*scene.Scene, error) {
	opts.SetDefaults()
	return scene.Load(path, opts.Padding)
}

// BuildScene validates and resolves an already decoded document.
func BuildScene(doc scene.Document, opts Options) (*scene.Scene, error) {
	opts.SetDefaults()
	return scene.Build(doc, opts.Padding)
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/arranger/pkg/pipeline"
	"github.com/matzehuels/arranger/pkg/scene"
)

// passFlags are the layout flags shared by every command that runs a pass.
type passFlags struct {
	noItemAvoidance bool
	noJoinAvoidance bool
	margin          float64
	padding         float64
	noCache         bool
	refresh         bool
}

func (f *passFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.BoolVar(&f.noItemAvoidance, "no-item-avoidance", false, "skip collision repair between items")
	fl.BoolVar(&f.noJoinAvoidance, "no-join-avoidance", false, "draw joins as straight lines")
	fl.Float64Var(&f.margin, "margin", pipeline.DefaultMargin, "gap between items placed by the pass")
	fl.Float64Var(&f.padding, "padding", pipeline.DefaultPadding, "inner padding of containers that set none")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable the arrangement cache")
	fl.BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")
}

// apply merges explicitly set flags over the config defaults.
func (f *passFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	if f.noItemAvoidance {
		opts.ItemAvoidance = false
	}
	if f.noJoinAvoidance {
		opts.JoinAvoidance = false
	}
	if cmd.Flags().Changed("margin") {
		opts.Margin = f.margin
	}
	if cmd.Flags().Changed("padding") {
		opts.Padding = f.padding
	}
	opts.Refresh = f.refresh
}

// loadScene reads the scene at path, or JSON from stdin when path is "-".
func loadScene(cmd *cobra.Command, path string, opts pipeline.Options) (*scene.Scene, error) {
	if path != "-" {
		return pipeline.LoadScene(path, opts)
	}
	doc, err := scene.Decode(cmd.InOrStdin(), scene.FormatJSON)
	if err != nil {
		return nil, err
	}
	return pipeline.BuildScene(doc, opts)
}

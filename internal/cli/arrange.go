package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arranger/pkg/pipeline"
	"github.com/matzehuels/arranger/pkg/scene"
)

type arrangeOpts struct {
	passFlags
	output string
	joins  []string
}

// arrangeCommand creates the arrange command.
func (c *CLI) arrangeCommand() *cobra.Command {
	opts := &arrangeOpts{}

	cmd := &cobra.Command{
		Use:   "arrange [scene]",
		Short: "Place items, resolve overlaps and route joins",
		Long: `Arrange reads a scene (JSON or YAML, "-" for JSON on stdin), places
unplaced items, pushes overlapping items apart, stretches containers to fit
their children and routes every join around the items in its way.

The result is written as JSON to stdout, or to --output in the format chosen
by its extension.`,
		Example: `  arranger arrange diagram.yaml
  arranger arrange diagram.json -o result.yaml --join a-to-b
  cat diagram.json | arranger arrange - --no-join-avoidance`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runArrange(cmd, args[0], opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.json, .yaml)")
	cmd.Flags().StringSliceVar(&opts.joins, "join", nil, "route only these joins (repeatable)")

	return cmd
}

func (c *CLI) runArrange(cmd *cobra.Command, path string, opts *arrangeOpts) error {
	ctx := cmd.Context()
	po := c.options()
	opts.apply(cmd, &po)
	po.Joins = opts.joins

	res, err := c.arrange(ctx, cmd, path, po, opts.noCache)
	if err != nil {
		return err
	}

	if opts.output == "" {
		return scene.Encode(cmd.OutOrStdout(), res.Document, scene.FormatJSON)
	}
	if err := scene.WriteFile(opts.output, res.Document); err != nil {
		return err
	}
	printSuccess(c.out, "Arranged %s", path)
	printStats(c.out, res.Document.Stats, res.CacheHit)
	printFile(c.out, opts.output)
	return nil
}

// arrange loads path and runs a cached pass over it with a spinner on the
// log writer.
func (c *CLI) arrange(ctx context.Context, cmd *cobra.Command, path string, po pipeline.Options, noCache bool) (*pipeline.Result, error) {
	s, err := loadScene(cmd, path, po)
	if err != nil {
		return nil, err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	spin := newSpinner(ctx, c.out, fmt.Sprintf("Arranging %d items...", len(s.Items)))
	spin.Start()
	prog := newProgress(c.Logger)
	res, err := runner.Arrange(ctx, s, po)
	spin.Stop()
	if err != nil {
		return nil, err
	}
	prog.done("Pass finished", "scene", path, "cached", res.CacheHit)
	return res, nil
}

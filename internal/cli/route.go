package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/arranger/pkg/errors"
	"github.com/matzehuels/arranger/pkg/scene"
)

// routeCommand creates the route command.
func (c *CLI) routeCommand() *cobra.Command {
	opts := &passFlags{}

	cmd := &cobra.Command{
		Use:   "route [scene] [join]",
		Short: "Print the route of a single join",
		Long: `Route arranges the scene and prints the polyline computed for one join
as JSON. A route that fell back to a straight line has "routed": false.`,
		Example: `  arranger route diagram.yaml a-to-b`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			po := c.options()
			opts.apply(cmd, &po)
			po.Joins = []string{args[1]}

			res, err := c.arrange(cmd.Context(), cmd, args[0], po, opts.noCache)
			if err != nil {
				return err
			}
			rt, ok := res.Route(args[1])
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "join %q not found", args[1])
			}
			if !rt.Routed {
				printWarning(c.out, "No clear path for %s, using a straight line", rt.Join)
			}
			return scene.Encode(cmd.OutOrStdout(), rt, scene.FormatJSON)
		},
	}

	opts.register(cmd)
	return cmd
}

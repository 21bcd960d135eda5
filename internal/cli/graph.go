package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arranger/pkg/errors"
	"github.com/matzehuels/arranger/pkg/export"
)

type graphOpts struct {
	passFlags
	format string
	output string
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	opts := &graphOpts{}

	cmd := &cobra.Command{
		Use:   "graph [scene] [join]",
		Short: "Export the visibility graph explored for a join",
		Long: `Graph runs the item stages of a pass, explores the visibility graph for one
join and exports it. Points are pinned at their scene coordinates, the shortest
path is highlighted and edges crossing an item are drawn dashed.

Formats: dot, svg (rendered with Graphviz), json.`,
		Example: `  arranger graph diagram.yaml a-to-b -o graph.svg
  arranger graph diagram.yaml a-to-b -f dot | dot -Kneato -n -Tpng > graph.png`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := graphFormat(opts.format, opts.output)
			if err != nil {
				return err
			}

			po := c.options()
			opts.apply(cmd, &po)
			s, err := loadScene(cmd, args[0], po)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			data, err := runner.Export(ctx, s, args[1], format, po)
			if err != nil {
				return err
			}
			if opts.output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(opts.output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.output)
			}
			printSuccess(c.out, "Exported graph for %s", args[1])
			printFile(c.out, opts.output)
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, json (default from --output, else dot)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	return cmd
}

// graphFormat resolves the export format from the flag or the output extension.
func graphFormat(flag, output string) (export.Format, error) {
	if flag == "" {
		flag = strings.TrimPrefix(filepath.Ext(output), ".")
	}
	if flag == "" {
		flag = string(export.FormatDOT)
	}
	f := export.Format(strings.ToLower(flag))
	if err := export.ValidateFormat(f); err != nil {
		return "", err
	}
	return f, nil
}

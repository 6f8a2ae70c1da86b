package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cloud/layout"
)

// quadtreeCommand creates the quadtree command for inspecting the spatial
// index a layout ends with.
func (c *CLI) quadtreeCommand() *cobra.Command {
	var (
		output string
		format string
		words  wordFlags
	)
	opts := newLayoutOptions()

	cmd := &cobra.Command{
		Use:   "quadtree [labels|layout.json]",
		Short: "Dump the spatial index of a layout as DOT or SVG (debug tool)",
		Long: `Dump the spatial index of a layout as DOT or SVG.

The placed boxes are replayed into a fresh quadtree in placement order,
which reproduces the index the engine held when it finished. Internal
nodes show their quadrant and bounds; leaves list the boxes they hold.`,
		Example: `  # Inspect the tree for a label file
  wordcloud quadtree labels.json -o tree.svg

  # Raw Graphviz source
  wordcloud quadtree cloud.layout.json --format dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "dot" && format != "svg" {
				return fmt.Errorf("invalid format %q (must be 'dot' or 'svg')", format)
			}
			c.applyConfig(cmd, &opts)

			res, err := c.computeLayout(cmd.Context(), args[0], &words, opts)
			if err != nil {
				return err
			}
			tree := layout.Index(res)

			var data []byte
			if format == "dot" {
				data = []byte(tree.ToDOT())
			} else if data, err = tree.RenderSVG(cmd.Context()); err != nil {
				return fmt.Errorf("render: %w", err)
			}

			if err := writeFile(c.Out, data, output); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			if output == "" {
				return nil
			}

			printSuccess("Quadtree generated")
			printKeyValue("Boxes", strconv.Itoa(tree.Len()))
			printKeyValue("Depth", strconv.Itoa(tree.Depth()))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, dot")
	addLayoutFlags(cmd, &opts)
	words.register(cmd)

	return cmd
}

// writeFile writes data to path, or to stdout when path is empty.
func writeFile(stdout io.Writer, data []byte, path string) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

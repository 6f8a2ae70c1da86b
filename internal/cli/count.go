package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	wio "github.com/matzehuels/wordcloud/pkg/io"
)

// countCommand creates the count command, which turns free text into a
// weighted label file that the other commands accept.
func (c *CLI) countCommand() *cobra.Command {
	var (
		output string
		as     string
		words  wordFlags
	)

	cmd := &cobra.Command{
		Use:   "count [text-file]",
		Short: "Count words in a text file and write them as labels",
		Long: `Count words in a text file and write them as labels.

Words are split on Unicode word boundaries, case-folded, and filtered by
length and a stop-word list. The result is ordered by descending count.
Without --output the labels are written to stdout in the --as format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := words.options()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			labels := wio.CountWords(string(data), opts)
			c.Logger.Debug("counted words", "distinct", len(labels))

			if output != "" {
				if err := wio.WriteLabelsFile(output, labels); err != nil {
					return err
				}
				printSuccess("Counted %d distinct words", len(labels))
				printFile(output)
				printNewline()
				printNextStep("Render", appName+" render "+output)
				return nil
			}

			format, err := wio.ParseFormat(as)
			if err != nil {
				return err
			}
			return wio.WriteLabels(c.Out, labels, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; the extension picks the format")
	cmd.Flags().StringVar(&as, "as", string(wio.FormatJSON), "stdout format: json, yaml, toml, csv")
	words.register(cmd)

	return cmd
}

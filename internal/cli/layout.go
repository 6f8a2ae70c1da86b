package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/matzehuels/wordcloud/pkg/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/cloud/sink"
	"github.com/matzehuels/wordcloud/pkg/cloud/styles"
	"github.com/matzehuels/wordcloud/pkg/errors"
	wio "github.com/matzehuels/wordcloud/pkg/io"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// wordFlags holds the flags that control how plain-text input is counted.
type wordFlags struct {
	minLength int
	top       int
	stopWords string
	keepCase  bool
	lang      string
}

func (f *wordFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.minLength, "min-length", wio.DefaultMinLength, "shortest word counted in text input")
	cmd.Flags().IntVar(&f.top, "top", 0, "keep only the N most frequent words (0 keeps all)")
	cmd.Flags().StringVar(&f.stopWords, "stop-words", "", `comma-separated stop words replacing the defaults ("-" disables them)`)
	cmd.Flags().BoolVar(&f.keepCase, "keep-case", false, "count words case-sensitively")
	cmd.Flags().StringVar(&f.lang, "lang", "und", "BCP 47 language tag for case folding")
}

// options converts the flags into counting options.
func (f *wordFlags) options() (wio.CountOptions, error) {
	tag, err := language.Parse(f.lang)
	if err != nil {
		return wio.CountOptions{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid --lang %q", f.lang)
	}
	opts := wio.CountOptions{
		MinLength: f.minLength,
		Top:       f.top,
		KeepCase:  f.keepCase,
		Language:  tag,
	}
	switch f.stopWords {
	case "":
	case "-":
		opts.StopWords = []string{}
	default:
		opts.StopWords = parseList(f.stopWords)
	}
	return opts, nil
}

// loadLabels reads a label file of any supported input format.
func (f *wordFlags) loadLabels(path string) ([]layout.Label, error) {
	opts, err := f.options()
	if err != nil {
		return nil, err
	}
	return wio.ReadLabelsFile(path, opts)
}

// addLayoutFlags registers the engine parameters on cmd.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "viewport width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "viewport height")
	cmd.Flags().Float64Var(&opts.MinFont, "min-font", opts.MinFont, "font size of the lightest label")
	cmd.Flags().Float64Var(&opts.MaxFont, "max-font", opts.MaxFont, "font size of the heaviest label")
	cmd.Flags().Float64Var(&opts.Padding, "padding", opts.Padding, "space kept around each label")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", opts.Iterations, "candidate positions tried per label")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached layouts and recompute")
}

// newLayoutOptions returns options preloaded with defaults so flag help
// shows real values.
func newLayoutOptions() pipeline.Options {
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	opts.Logger = nil
	return opts
}

// layoutCommand creates the layout command for computing word-cloud layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		words   wordFlags
	)
	opts := newLayoutOptions()

	cmd := &cobra.Command{
		Use:   "layout [labels]",
		Short: "Compute a word-cloud layout from a label file",
		Long: `Compute a word-cloud layout from a label file.

The input is a JSON, YAML, TOML or CSV list of {text, weight} labels, or a
plain-text file whose words are counted. The output is a layout.json file
(the same format as 'render -f json') that 'render' and 'browse' accept.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			if err := pipeline.ValidateStyle(opts.Style); err != nil {
				return err
			}
			labels, err := words.loadLabels(args[0])
			if err != nil {
				return err
			}
			opts.Labels = labels
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "style recorded in the layout: "+strings.Join(styles.Names(), ", "))
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "palette seed recorded in the layout")
	addLayoutFlags(cmd, &opts)
	words.register(cmd)

	return cmd
}

// runLayout computes the layout and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	spinner := newSpinner(ctx, fmt.Sprintf("Placing %d labels...", len(opts.Labels)))
	spinner.Start()

	res, cacheHit, err := runner.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done("layout ready", "labels", res.Len(), "cached", cacheHit)

	output = outputPath(output, input, pipeline.FormatJSON, false)
	if err := wio.ExportLayoutJSON(res, output, sink.WithJSONStyle(opts.Style), sink.WithJSONSeed(opts.Seed)); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(res.Len(), res.DegradedCount(), cacheHit)
	if n := res.DegradedCount(); n > 0 {
		printWarning("%d labels did not fit and sit at the center", n)
	}
	printNewline()
	printNextStep("Render", appName+" render "+output)

	return nil
}

// parseList splits a comma-separated list, trimming spaces and dropping
// empty entries.
func parseList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/cloud/styles"
	wio "github.com/matzehuels/wordcloud/pkg/io"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// addRenderFlags registers the sink parameters on cmd.
func addRenderFlags(cmd *cobra.Command, opts *pipeline.Options, formats *string) {
	cmd.Flags().StringVarP(formats, "format", "f", "", "output format(s): svg (default), json, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: "+strings.Join(styles.Names(), ", "))
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "palette seed")
	cmd.Flags().BoolVar(&opts.Boxes, "boxes", false, "outline each label's bounding box")
	cmd.Flags().BoolVar(&opts.Static, "static", false, "omit the hover and click script from SVG")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background fill color")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor")
}

// renderCommand creates the render command. It accepts either a label file,
// which is laid out first, or a layout.json written by 'layout'.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		words      wordFlags
	)
	opts := newLayoutOptions()

	cmd := &cobra.Command{
		Use:   "render [labels|layout.json]",
		Short: "Render a word cloud to SVG, JSON, PNG or PDF",
		Long: `Render a word cloud to SVG, JSON, PNG or PDF.

The input is either a label file (laid out first, like 'layout') or a
layout.json from 'layout', which is rendered as-is. PNG and PDF need
rsvg-convert on PATH.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			c.applyConfig(cmd, &opts)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.Style); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], opts, &words, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addRenderFlags(cmd, &opts, &formatsStr)
	addLayoutFlags(cmd, &opts)
	words.register(cmd)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts pipeline.Options, words *wordFlags, output string, noCache bool) error {
	ctx := cmd.Context()
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	res, layoutHit, err := c.resolveLayout(cmd, runner, input, &opts, words)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()
	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, res, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	paths, err := writeArtifacts(artifacts, opts.Formats, output, input)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.Len(), res.DegradedCount(), layoutHit && renderHit)
	return nil
}

// resolveLayout loads a layout export directly or computes one from labels.
// A layout file's recorded style and seed apply unless overridden by flags.
func (c *CLI) resolveLayout(cmd *cobra.Command, runner *pipeline.Runner, input string, opts *pipeline.Options, words *wordFlags) (layout.Result, bool, error) {
	ctx := cmd.Context()
	if isLayoutFile(input) {
		doc, err := wio.ImportLayoutJSON(input)
		if err != nil {
			return layout.Result{}, false, err
		}
		if !cmd.Flags().Changed("style") && doc.Style != "" {
			opts.Style = doc.Style
		}
		if !cmd.Flags().Changed("seed") && doc.Seed != 0 {
			opts.Seed = doc.Seed
		}
		c.Logger.Debug("loaded layout", "path", input, "placements", doc.Result.Len())
		return doc.Result, true, nil
	}

	labels, err := words.loadLabels(input)
	if err != nil {
		return layout.Result{}, false, err
	}
	opts.Labels = labels

	spinner := newSpinner(ctx, fmt.Sprintf("Placing %d labels...", len(labels)))
	spinner.Start()
	res, hit, err := runner.LayoutWithCacheInfo(ctx, *opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return layout.Result{}, false, fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	return res, hit, nil
}

// isLayoutFile reports whether path holds a layout export rather than labels.
func isLayoutFile(path string) bool {
	if !strings.HasSuffix(strings.ToLower(path), ".json") {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return wio.IsLayoutJSON(data)
}

// writeArtifacts writes each format in request order and returns the paths.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	multiple := len(formats) > 1
	paths := make([]string, 0, len(formats))
	for _, format := range slices.Compact(slices.Clone(formats)) {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(output, input, format, multiple)
		if path == input {
			return paths, fmt.Errorf("refusing to overwrite input %s; pass --output", input)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// computeLayout loads a layout export or lays out a label file without the
// cache. The browse and quadtree commands use it.
func (c *CLI) computeLayout(ctx context.Context, input string, words *wordFlags, opts pipeline.Options) (layout.Result, error) {
	if isLayoutFile(input) {
		doc, err := wio.ImportLayoutJSON(input)
		if err != nil {
			return layout.Result{}, err
		}
		return doc.Result, nil
	}
	labels, err := words.loadLabels(input)
	if err != nil {
		return layout.Result{}, err
	}
	opts.Labels = labels
	opts.Logger = c.Logger
	return pipeline.ComputeLayout(ctx, opts)
}

// Package pipeline provides the word-cloud pipeline shared by the CLI and the
// HTTP service.
//
// This package implements the layout → render pipeline. By centralizing this
// logic, every entry point validates, caches and renders the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Validate labels and place them in the viewport
//  2. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// Formats are rendered concurrently.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Labels:  labels,
//	    Width:   800,
//	    Height:  600,
//	    Formats: []string{"svg", "json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	res, hit, err := runner.LayoutWithCacheInfo(ctx, opts)
//
//	// Render an existing layout
//	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, res, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/cloud/layout"
	"github.com/matzehuels/wordcloud/pkg/cloud/styles"
	"github.com/matzehuels/wordcloud/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default viewport width.
	DefaultWidth = 800.0

	// DefaultHeight is the default viewport height.
	DefaultHeight = 600.0

	// DefaultSeed is the default palette seed.
	DefaultSeed = uint64(42)

	// DefaultStyle is the default visual style.
	DefaultStyle = styles.SimpleName

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the word-cloud pipeline.
// This struct supports JSON serialization for API requests. Zero values mean
// "use the default".
type Options struct {
	// Input
	Labels []layout.Label `json:"labels,omitempty"`

	// Layout options
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	MinFont    float64 `json:"min_font,omitempty"`
	MaxFont    float64 `json:"max_font,omitempty"`
	Padding    float64 `json:"padding,omitempty"`
	Iterations int     `json:"iterations,omitempty"`
	Refresh    bool    `json:"refresh,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	Seed       uint64   `json:"seed,omitempty"`
	Boxes      bool     `json:"boxes,omitempty"`
	Static     bool     `json:"static,omitempty"` // Omit hover and click script from SVG
	Background string   `json:"background,omitempty"`
	Scale      float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this run in logs and API responses.
	RunID string

	// InputHash is the content hash of the labels.
	InputHash string

	// Layout is the computed (or cached) layout.
	Layout layout.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Labels     int
	Degraded   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !slices.Contains(styles.Names(), style) {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: %s)",
			style, strings.Join(styles.Names(), ", "))
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.MinFont == 0 {
		o.MinFont = layout.MinFontSize
	}
	if o.MaxFont == 0 {
		o.MaxFont = max(layout.MaxFontSize, o.MinFont)
	}
	if o.Padding == 0 {
		o.Padding = layout.Padding
	}
	if o.Iterations == 0 {
		o.Iterations = layout.Iterations
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets defaults and validates labels, viewport and font
// range for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.MinFont <= 0 || o.MaxFont < o.MinFont {
		return errors.New(errors.ErrCodeInvalidInput, "invalid font range %g..%g", o.MinFont, o.MaxFont)
	}
	if o.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "padding must not be negative, got %g", o.Padding)
	}
	if o.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "iterations must not be negative, got %d", o.Iterations)
	}
	for _, l := range o.Labels {
		if err := errors.ValidateLabelText(l.Text); err != nil {
			return err
		}
	}
	return layout.Validate(o.Labels, o.Viewport())
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets defaults and validates formats and style.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return ValidateStyle(o.Style)
}

// Viewport returns the layout viewport.
func (o *Options) Viewport() layout.Viewport {
	return layout.Viewport{Width: o.Width, Height: o.Height}
}

// LayoutOptions converts the options into engine options.
func (o *Options) LayoutOptions() []layout.Option {
	return []layout.Option{
		layout.WithFontRange(o.MinFont, o.MaxFont),
		layout.WithPadding(o.Padding),
		layout.WithIterations(o.Iterations),
		layout.WithLogger(o.Logger),
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:      o.Width,
		Height:     o.Height,
		MinFont:    o.MinFont,
		MaxFont:    o.MaxFont,
		Padding:    o.Padding,
		Iterations: o.Iterations,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:      format,
		Style:       o.Style,
		Seed:        o.Seed,
		Boxes:       o.Boxes,
		Interactive: !o.Static,
		Background:  o.Background,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

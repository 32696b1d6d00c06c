// Package pipeline provides the load → layout → render pipeline shared by
// the CLI and the preview server.
//
// By centralizing this logic, the render command, the watch loop and the
// HTTP handlers produce byte-identical output for the same flow file and
// options.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode a flow file (JSON, YAML, TOML or SQLite) into a graph
//  2. Layout: Partition, sort and size the graph with [layout.Compute]
//  3. Render: Draw the layout and write it in each requested format
//
// Each stage can be run independently or as part of the complete pipeline,
// and each stage is cached by content hash when the runner has a cache.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "energy.json",
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	g, err := runner.Load(ctx, opts)
//	l, err := runner.ComputeLayout(ctx, g, opts)
//	artifacts, err := runner.Render(ctx, l, g, opts)
//
// [layout.Compute]: github.com/matzehuels/sankey/pkg/layout.Compute
package pipeline

import (
	"fmt"
	"image/color"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sankey/pkg/cache"
	"github.com/matzehuels/sankey/pkg/errors"
	"github.com/matzehuels/sankey/pkg/flow"
	flowio "github.com/matzehuels/sankey/pkg/io"
	"github.com/matzehuels/sankey/pkg/layout"
	"github.com/matzehuels/sankey/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 600.0

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0
)

// Visualization types.
const (
	VizTypeSankey   = "sankey"
	VizTypeNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeSankey

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeSankey:   true,
	VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source  string        `json:"source,omitempty"` // Flow file path
	Data    []byte        `json:"-"`                // Inline flow document, used instead of Source
	Format  flowio.Format `json:"format,omitempty"` // Encoding of Data
	Refresh bool          `json:"refresh,omitempty"`

	// Layout options
	VizType string         `json:"viz_type,omitempty"`
	Width   float64        `json:"width,omitempty"`
	Height  float64        `json:"height,omitempty"`
	Layout  layout.Options `json:"layout"`

	// Render options
	Formats    []string     `json:"formats,omitempty"`
	Style      render.Style `json:"style"`
	Title      string       `json:"title,omitempty"`
	Scale      float64      `json:"scale,omitempty"`
	EmbedFont  bool         `json:"embed_font,omitempty"`
	Background color.RGBA   `json:"background"`
	RSVG       bool         `json:"rsvg,omitempty"` // Rasterise PNG with rsvg-convert

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and server responses.
	RunID string

	// Graph is the loaded flow graph.
	Graph *flow.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Layout is the computed layout.
	Layout layout.Layout

	// Issues are the structural problems found by [flow.Check].
	Issues []flow.Issue

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether the decoded graph came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
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

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid viz_type: %q (must be one of: sankey, nodelink)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that a flow source is given.
func (o *Options) ValidateForLoad() error {
	switch {
	case len(o.Data) > 0:
		if o.Format == "" {
			o.Format = flowio.FormatJSON
		}
		if o.Format == flowio.FormatSQLite {
			return errors.New(errors.ErrCodeUnsupported, "inline sqlite data is not supported")
		}
	case o.Source != "":
		if _, err := flowio.DetectFormat(o.Source); err != nil {
			return err
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "source or data is required")
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Layout == (layout.Options{}) {
		o.Layout = layout.DefaultOptions()
	}
	o.Layout = o.Layout.Normalize()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return errors.ValidateDimensions(o.Width, o.Height)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == (render.Style{}) {
		o.Style = render.DefaultStyle()
	}
	o.Style = o.Style.Normalize()
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if slices.Contains(o.Formats, FormatPNG) {
		if err := errors.ValidateDimensions(o.Width*o.Scale, o.Height*o.Scale); err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "png at scale %g: %s", o.Scale, errors.UserMessage(err))
		}
	}
	return nil
}

// IsSankey returns true if this is a Sankey visualization.
func (o *Options) IsSankey() bool {
	return o.VizType == "" || o.VizType == VizTypeSankey
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:         o.Width,
		Height:        o.Height,
		AutoItemWidth: o.Layout.AutoItemWidth,
		ItemWidth:     o.Layout.ItemWidth,
		AutoItemGap:   o.Layout.AutoItemGap,
		ItemGap:       o.Layout.ItemGap,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	styleHash, _ := cache.HashJSON(struct {
		Viz        string       `json:"viz"`
		Style      render.Style `json:"style"`
		EmbedFont  bool         `json:"embed_font"`
		Background color.RGBA   `json:"background"`
		RSVG       bool         `json:"rsvg"`
	}{o.VizType, o.Style, o.EmbedFont, o.Background, o.RSVG})

	opts := cache.ArtifactKeyOpts{
		Format:    format,
		StyleHash: styleHash,
		Title:     o.Title,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// String summarises the options for log lines.
func (o *Options) String() string {
	src := o.Source
	if src == "" {
		src = fmt.Sprintf("<%d bytes %s>", len(o.Data), o.Format)
	}
	return fmt.Sprintf("%s %gx%g %v", src, o.Width, o.Height, o.Formats)
}

// Package pipeline provides the load → render → serialize pipeline.
//
// This package implements the complete pipeline used by the CLI commands and
// the editor. Centralizing it keeps caching, logging and format handling
// consistent across entry points.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Load: Read a record from a JSON file or a spreadsheet export
//  2. Render: Draw the boring log and serialize it (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline,
// and each is cached by content (see [cache]).
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "B-1.csv",
//	    Formats: []string{"svg", "pdf"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	rec, err := runner.Load(ctx, opts)
//	artifacts, err := runner.Render(ctx, rec, opts)
//
// [cache]: github.com/matzehuels/stratalog/pkg/cache
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/cache"
	"github.com/matzehuels/stratalog/pkg/errors"
	"github.com/matzehuels/stratalog/pkg/render/borelog"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI and the Editor
// =============================================================================

// DefaultScale is the PNG rasterization factor.
const DefaultScale = 2.0

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

// Options contains all configuration for the pipeline.
type Options struct {
	// Load options
	Input     string `json:"input,omitempty"`     // path to a .json record or a delimited file
	Delimiter rune   `json:"delimiter,omitempty"` // forces the delimiter of delimited input
	Refresh   bool   `json:"refresh,omitempty"`   // bypass cached results

	// Render options
	Formats     []string        `json:"formats,omitempty"`
	Config      *borelog.Config `json:"config,omitempty"` // nil uses borelog.DefaultConfig
	Scale       float64         `json:"scale,omitempty"`  // PNG only
	Interactive bool            `json:"interactive,omitempty"`
	NoClasses   bool            `json:"no_classes,omitempty"`
	Title       string          `json:"title,omitempty"` // SVG <title>; defaults to the boring ID

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Record is the loaded, normalized record.
	Record *boring.Record

	// RecordHash is the content hash of the record.
	RecordHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Layers     int
	Samples    int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether the record came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
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

// ParseFormats splits a comma-separated format list, trimming and
// lower-casing entries and dropping duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
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

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Config == nil {
		cfg := borelog.DefaultConfig()
		o.Config = &cfg
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// NeedsConverter reports whether any requested format goes through
// rsvg-convert.
func (o *Options) NeedsConverter() bool {
	return slices.Contains(o.Formats, FormatPNG) || slices.Contains(o.Formats, FormatPDF)
}

// RecordKeyOpts returns cache key options for loading.
func (o *Options) RecordKeyOpts(kind string) cache.RecordKeyOpts {
	return cache.RecordKeyOpts{Kind: kind, Delimiter: o.Delimiter}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
// Options that do not affect the format are left out so that, for example,
// changing the PNG scale does not invalidate the SVG.
func (o *Options) ArtifactKeyOpts(format, configHash string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, ConfigHash: configHash}
	if format == FormatJSON {
		return k
	}
	k.Interactive = o.Interactive
	k.NoClasses = o.NoClasses
	k.Title = o.Title
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

// Package config loads diagram settings from TOML or YAML files.
//
// A config file overrides any subset of [borelog.DefaultConfig]. Keys use
// snake_case in both formats:
//
//	width = 900
//	depth_scale = 12
//	show_legend = false
//
//	[column_widths]
//	description = 320
//
//	[palette]
//	groundwater = "#0055aa"
//
//	[output]
//	format = "pdf"
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
//
// [borelog.DefaultConfig]: github.com/matzehuels/stratalog/pkg/render/borelog.DefaultConfig
package config

import (
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stratalog/pkg/errors"
	"github.com/matzehuels/stratalog/pkg/render/borelog"
	"github.com/matzehuels/stratalog/pkg/render/borelog/layout"
)

// File is the on-disk configuration. Nil and empty fields leave the
// corresponding default untouched.
type File struct {
	Width              *float64           `toml:"width" yaml:"width"`
	HeaderHeight       *float64           `toml:"header_height" yaml:"header_height"`
	ColumnHeaderHeight *float64           `toml:"column_header_height" yaml:"column_header_height"`
	FooterHeight       *float64           `toml:"footer_height" yaml:"footer_height"`
	LegendTitleHeight  *float64           `toml:"legend_title_height" yaml:"legend_title_height"`
	LegendRowHeight    *float64           `toml:"legend_row_height" yaml:"legend_row_height"`
	DepthScale         *float64           `toml:"depth_scale" yaml:"depth_scale"`
	WellPanelWidth     *float64           `toml:"well_panel_width" yaml:"well_panel_width"`
	WellPanelHeight    *float64           `toml:"well_panel_height" yaml:"well_panel_height"`
	FontSize           *float64           `toml:"font_size" yaml:"font_size"`
	ShowLegend         *bool              `toml:"show_legend" yaml:"show_legend"`
	Units              string             `toml:"units" yaml:"units"`
	RecoveryUnits      string             `toml:"recovery_units" yaml:"recovery_units"`
	FontFamily         string             `toml:"font_family" yaml:"font_family"`
	ColumnWidths       map[string]float64 `toml:"column_widths" yaml:"column_widths"`
	Margins            Margins            `toml:"margins" yaml:"margins"`
	Palette            borelog.Palette    `toml:"palette" yaml:"palette"`
	Output             Output             `toml:"output" yaml:"output"`
}

// Margins overrides individual drawing insets.
type Margins struct {
	Top    *float64 `toml:"top" yaml:"top"`
	Right  *float64 `toml:"right" yaml:"right"`
	Bottom *float64 `toml:"bottom" yaml:"bottom"`
	Left   *float64 `toml:"left" yaml:"left"`
}

// Output holds defaults for the render command. Command-line flags win.
type Output struct {
	Format      string   `toml:"format" yaml:"format"`
	Scale       *float64 `toml:"scale" yaml:"scale"`
	Interactive *bool    `toml:"interactive" yaml:"interactive"`
}

// Load reads the config file at path. The format follows the extension:
// ".toml", ".yaml" or ".yml".
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var f *File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		f, err = DecodeTOML(data)
	case ".yaml", ".yml":
		f, err = DecodeYAML(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "config %s: unsupported extension %q (use .toml, .yaml or .yml)", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

// DecodeTOML parses and validates a TOML config.
func DecodeTOML(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// DecodeYAML parses and validates a YAML config.
func DecodeYAML(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate rejects non-positive sizes and unknown column names.
func (f *File) Validate() error {
	for name, v := range map[string]*float64{
		"width":                f.Width,
		"header_height":        f.HeaderHeight,
		"column_header_height": f.ColumnHeaderHeight,
		"footer_height":        f.FooterHeight,
		"legend_title_height":  f.LegendTitleHeight,
		"legend_row_height":    f.LegendRowHeight,
		"depth_scale":          f.DepthScale,
		"well_panel_width":     f.WellPanelWidth,
		"well_panel_height":    f.WellPanelHeight,
		"font_size":            f.FontSize,
		"output.scale":         f.Output.Scale,
	} {
		if v != nil && *v <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be positive, got %g", name, *v)
		}
	}
	for name, v := range map[string]*float64{
		"margins.top":    f.Margins.Top,
		"margins.right":  f.Margins.Right,
		"margins.bottom": f.Margins.Bottom,
		"margins.left":   f.Margins.Left,
	} {
		if v != nil && *v < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s cannot be negative, got %g", name, *v)
		}
	}

	known := layout.DefaultColumnWidths()
	for _, name := range slices.Sorted(maps.Keys(f.ColumnWidths)) {
		if _, ok := known[layout.ColumnID(name)]; !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "column_widths: unknown column %q", name)
		}
		if w := f.ColumnWidths[name]; w <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "column_widths.%s must be positive, got %g", name, w)
		}
	}
	return nil
}

// Apply overlays the file on cfg and returns the result. cfg is not
// modified.
func (f *File) Apply(cfg borelog.Config) borelog.Config {
	if f == nil {
		return cfg
	}
	setFloat(&cfg.Width, f.Width)
	setFloat(&cfg.HeaderHeight, f.HeaderHeight)
	setFloat(&cfg.ColumnHeaderHeight, f.ColumnHeaderHeight)
	setFloat(&cfg.FooterHeight, f.FooterHeight)
	setFloat(&cfg.LegendTitleHeight, f.LegendTitleHeight)
	setFloat(&cfg.LegendRowHeight, f.LegendRowHeight)
	setFloat(&cfg.DepthScale, f.DepthScale)
	setFloat(&cfg.WellPanelWidth, f.WellPanelWidth)
	setFloat(&cfg.WellPanelHeight, f.WellPanelHeight)
	setFloat(&cfg.FontSize, f.FontSize)
	setFloat(&cfg.Margins.Top, f.Margins.Top)
	setFloat(&cfg.Margins.Right, f.Margins.Right)
	setFloat(&cfg.Margins.Bottom, f.Margins.Bottom)
	setFloat(&cfg.Margins.Left, f.Margins.Left)
	if f.ShowLegend != nil {
		cfg.HideLegend = !*f.ShowLegend
	}
	setString(&cfg.Units, f.Units)
	setString(&cfg.RecoveryUnits, f.RecoveryUnits)
	setString(&cfg.FontFamily, f.FontFamily)

	if len(f.ColumnWidths) > 0 {
		widths := maps.Clone(cfg.ColumnWidths)
		if widths == nil {
			widths = make(map[layout.ColumnID]float64, len(f.ColumnWidths))
		}
		for name, w := range f.ColumnWidths {
			widths[layout.ColumnID(name)] = w
		}
		cfg.ColumnWidths = widths
	}

	p, fp := &cfg.Palette, f.Palette
	setString(&p.Background, fp.Background)
	setString(&p.Border, fp.Border)
	setString(&p.HeaderBackground, fp.HeaderBackground)
	setString(&p.Grid, fp.Grid)
	setString(&p.Groundwater, fp.Groundwater)
	setString(&p.Text, fp.Text)
	setString(&p.MutedText, fp.MutedText)
	setString(&p.SampleSPT, fp.SampleSPT)
	setString(&p.Sample, fp.Sample)
	setString(&p.Borehole, fp.Borehole)
	setString(&p.Casing, fp.Casing)
	setString(&p.Screen, fp.Screen)
	setString(&p.FilterPack, fp.FilterPack)
	setString(&p.Seal, fp.Seal)
	return cfg
}

// Resolve loads path and overlays it on the default diagram config. An empty
// path yields the defaults and an empty Output.
func Resolve(path string) (borelog.Config, Output, error) {
	if path == "" {
		return borelog.DefaultConfig(), Output{}, nil
	}
	f, err := Load(path)
	if err != nil {
		return borelog.Config{}, Output{}, err
	}
	return f.Apply(borelog.DefaultConfig()), f.Output, nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

package borelog

import (
	"maps"

	"github.com/matzehuels/stratalog/pkg/render/borelog/layout"
)

// Palette holds every color the renderer uses.
type Palette struct {
	Background       string `json:"background" toml:"background" yaml:"background"`
	Border           string `json:"border" toml:"border" yaml:"border"`
	HeaderBackground string `json:"headerBackground" toml:"header_background" yaml:"header_background"`
	Grid             string `json:"grid" toml:"grid" yaml:"grid"`
	Groundwater      string `json:"groundwater" toml:"groundwater" yaml:"groundwater"`
	Text             string `json:"text" toml:"text" yaml:"text"`
	MutedText        string `json:"mutedText" toml:"muted_text" yaml:"muted_text"`
	SampleSPT        string `json:"sampleSpt" toml:"sample_spt" yaml:"sample_spt"`
	Sample           string `json:"sample" toml:"sample" yaml:"sample"`
	Borehole         string `json:"borehole" toml:"borehole" yaml:"borehole"`
	Casing           string `json:"casing" toml:"casing" yaml:"casing"`
	Screen           string `json:"screen" toml:"screen" yaml:"screen"`
	FilterPack       string `json:"filterPack" toml:"filter_pack" yaml:"filter_pack"`
	Seal             string `json:"seal" toml:"seal" yaml:"seal"`
}

// DefaultPalette returns the standard print-friendly colors.
func DefaultPalette() Palette {
	return Palette{
		Background:       "#ffffff",
		Border:           "#333333",
		HeaderBackground: "#eef2f5",
		Grid:             "#d0d0d0",
		Groundwater:      "#1f6fd1",
		Text:             "#1a1a1a",
		MutedText:        "#666666",
		SampleSPT:        "#222222",
		Sample:           "#ffffff",
		Borehole:         "#efe6d6",
		Casing:           "#4a4a4a",
		Screen:           "#9fc3e6",
		FilterPack:       "#f3dc9b",
		Seal:             "#9e9e9e",
	}
}

// Config controls layout and appearance. Start from [DefaultConfig]; zero
// values left in a Config fall back to the defaults when rendering. The zero
// HideLegend shows the legend, and all-zero Margins mean the default insets.
type Config struct {
	Width              float64                     `json:"width"`
	HeaderHeight       float64                     `json:"headerHeight"`
	ColumnHeaderHeight float64                     `json:"columnHeaderHeight"`
	FooterHeight       float64                     `json:"footerHeight"`
	LegendTitleHeight  float64                     `json:"legendTitleHeight"`
	LegendRowHeight    float64                     `json:"legendRowHeight"`
	ColumnWidths       map[layout.ColumnID]float64 `json:"columnWidths"`
	Palette            Palette                     `json:"palette"`
	HideLegend         bool                        `json:"hideLegend"`
	DepthScale         float64                     `json:"depthScale"`
	Margins            layout.Margins              `json:"margins"`
	WellPanelWidth     float64                     `json:"wellPanelWidth"`
	WellPanelHeight    float64                     `json:"wellPanelHeight"`

	Units         string  `json:"units"`         // depth and elevation unit label
	RecoveryUnits string  `json:"recoveryUnits"` // recovery and casing diameter unit label
	FontFamily    string  `json:"fontFamily"`
	FontSize      float64 `json:"fontSize"` // body text size; titles scale from it
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	o := layout.DefaultOptions()
	return Config{
		Width:              o.Width,
		HeaderHeight:       o.HeaderHeight,
		ColumnHeaderHeight: o.ColumnHeaderHeight,
		FooterHeight:       o.FooterHeight,
		LegendTitleHeight:  o.LegendTitleHeight,
		LegendRowHeight:    o.LegendRowHeight,
		ColumnWidths:       o.ColumnWidths,
		Palette:            DefaultPalette(),
		DepthScale:         o.DepthScale,
		Margins:            o.Margins,
		WellPanelWidth:     o.WellPanelWidth,
		WellPanelHeight:    o.WellPanelHeight,
		Units:              "ft",
		RecoveryUnits:      "in",
		FontFamily:         "Helvetica, Arial, sans-serif",
		FontSize:           10,
	}
}

// LayoutOptions extracts the geometric part of the configuration.
func (c Config) LayoutOptions() layout.Options {
	o := layout.DefaultOptions()
	o.Width = c.Width
	o.HeaderHeight = c.HeaderHeight
	o.ColumnHeaderHeight = c.ColumnHeaderHeight
	o.FooterHeight = c.FooterHeight
	o.LegendTitleHeight = c.LegendTitleHeight
	o.LegendRowHeight = c.LegendRowHeight
	o.HideLegend = c.HideLegend
	o.DepthScale = c.DepthScale
	o.Margins = c.Margins
	o.WellPanelWidth = c.WellPanelWidth
	o.WellPanelHeight = c.WellPanelHeight
	maps.Copy(o.ColumnWidths, c.ColumnWidths)
	return o
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	p, dp := &c.Palette, d.Palette
	for _, f := range []struct {
		v   *string
		def string
	}{
		{&p.Background, dp.Background},
		{&p.Border, dp.Border},
		{&p.HeaderBackground, dp.HeaderBackground},
		{&p.Grid, dp.Grid},
		{&p.Groundwater, dp.Groundwater},
		{&p.Text, dp.Text},
		{&p.MutedText, dp.MutedText},
		{&p.SampleSPT, dp.SampleSPT},
		{&p.Sample, dp.Sample},
		{&p.Borehole, dp.Borehole},
		{&p.Casing, dp.Casing},
		{&p.Screen, dp.Screen},
		{&p.FilterPack, dp.FilterPack},
		{&p.Seal, dp.Seal},
		{&c.Units, d.Units},
		{&c.RecoveryUnits, d.RecoveryUnits},
		{&c.FontFamily, d.FontFamily},
	} {
		if *f.v == "" {
			*f.v = f.def
		}
	}
	if c.FontSize <= 0 {
		c.FontSize = d.FontSize
	}
	return c
}

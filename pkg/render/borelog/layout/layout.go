// Package layout computes every geometric position of a boring log diagram
// before anything is drawn.
//
// [Compute] inspects the record once and decides which columns are active,
// how tall the body, header, footer and legend are, and whether a well
// construction panel is needed. The renderer then only reads coordinates from
// the returned [Layout]; it never makes a layout decision while drawing.
//
// All coordinates are in SVG user units with y growing downward. Depth maps
// to y linearly:
//
//	y = HeaderHeight + depth × DepthScale
package layout

import (
	"math"
	"slices"

	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/render/borelog/pattern"
)

const eps = 1e-9

// Margins are insets around the drawing.
type Margins struct {
	Top    float64 `json:"top" toml:"top" yaml:"top"`
	Right  float64 `json:"right" toml:"right" yaml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" toml:"left" yaml:"left"`
}

// Options holds the layout parameters. Use [DefaultOptions] as the base.
type Options struct {
	// Width is the minimum canvas width. When the columns need less, the
	// description column absorbs the slack.
	Width              float64
	HeaderHeight       float64 // everything above depth zero, column headers included
	ColumnHeaderHeight float64
	FooterHeight       float64
	LegendTitleHeight  float64
	LegendRowHeight    float64
	HideLegend         bool
	DepthScale         float64 // pixels per depth unit
	Margins            Margins
	ColumnWidths       map[ColumnID]float64
	WellPanelWidth     float64
	WellPanelHeight    float64
	WellPanelGap       float64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Width:              0,
		HeaderHeight:       170,
		ColumnHeaderHeight: 36,
		FooterHeight:       40,
		LegendTitleHeight:  24,
		LegendRowHeight:    26,
		DepthScale:         20,
		Margins:            Margins{Top: 20, Right: 20, Bottom: 20, Left: 20},
		ColumnWidths:       DefaultColumnWidths(),
		WellPanelWidth:     150,
		WellPanelHeight:    360,
		WellPanelGap:       16,
	}
}

// Layout is the complete geometry of one diagram.
type Layout struct {
	Width, Height float64
	Margins       Margins

	HeaderHeight       float64
	ColumnHeaderTop    float64
	ColumnHeaderHeight float64

	TotalDepth   float64
	DepthScale   float64
	TickInterval float64

	Columns []Column
	Well    *WellPanel // nil when the record has no well

	FooterTop    float64
	FooterHeight float64

	Legend *Legend // nil when disabled or empty
}

// Compute derives the layout of r under opts. Zero-valued heights, scales and
// panel sizes fall back to [DefaultOptions], as do all-zero margins; Width and HideLegend are
// taken as given.
func Compute(r *boring.Record, opts Options) Layout {
	opts = opts.withDefaults()
	total := r.EffectiveTotalDepth()

	l := Layout{
		Margins:            opts.Margins,
		HeaderHeight:       opts.HeaderHeight,
		ColumnHeaderTop:    opts.HeaderHeight - opts.ColumnHeaderHeight,
		ColumnHeaderHeight: opts.ColumnHeaderHeight,
		TotalDepth:         total,
		DepthScale:         opts.DepthScale,
		TickInterval:       TickInterval(total),
		FooterHeight:       opts.FooterHeight,
	}

	l.Columns = buildColumns(ActiveColumns(r), opts)
	right := l.ColumnsRight()

	if r.HasWell() {
		l.Well = &WellPanel{
			X:          right + opts.WellPanelGap,
			Y:          l.BodyTop(),
			Width:      opts.WellPanelWidth,
			Height:     opts.WellPanelHeight,
			Pad:        wellPad,
			TotalDepth: total,
		}
		right = l.Well.X + l.Well.Width
	}

	if need := right + opts.Margins.Right; opts.Width > need+eps {
		widen(l.Columns, ColDescription, opts.Width-need)
		if l.Well != nil {
			l.Well.X += opts.Width - need
		}
	}
	l.Width = max(opts.Width, right+opts.Margins.Right)

	contentBottom := l.BodyBottom()
	if l.Well != nil {
		contentBottom = max(contentBottom, l.Well.Y+l.Well.Height)
	}
	l.FooterTop = contentBottom

	if !opts.HideLegend {
		l.Legend = buildLegend(r, opts, l.Margins.Left, l.FooterTop+l.FooterHeight, l.ColumnsRight()-l.Margins.Left)
	}

	l.Height = l.FooterTop + l.FooterHeight + l.Margins.Bottom
	if l.Legend != nil {
		l.Height += l.Legend.Height
	}
	return l
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.HeaderHeight <= 0 {
		o.HeaderHeight = d.HeaderHeight
	}
	if o.ColumnHeaderHeight <= 0 {
		o.ColumnHeaderHeight = d.ColumnHeaderHeight
	}
	if o.ColumnHeaderHeight > o.HeaderHeight {
		o.ColumnHeaderHeight = o.HeaderHeight
	}
	if o.FooterHeight <= 0 {
		o.FooterHeight = d.FooterHeight
	}
	if o.LegendTitleHeight <= 0 {
		o.LegendTitleHeight = d.LegendTitleHeight
	}
	if o.LegendRowHeight <= 0 {
		o.LegendRowHeight = d.LegendRowHeight
	}
	if o.DepthScale <= 0 {
		o.DepthScale = d.DepthScale
	}
	if o.WellPanelWidth <= 0 {
		o.WellPanelWidth = d.WellPanelWidth
	}
	if o.WellPanelHeight <= 0 {
		o.WellPanelHeight = d.WellPanelHeight
	}
	if o.Margins == (Margins{}) {
		o.Margins = d.Margins
	}
	if o.WellPanelGap < 0 {
		o.WellPanelGap = 0
	}
	return o
}

// TickInterval returns the depth-scale tick spacing: 2 units for shallow
// borings (20 or less), 5 units otherwise.
func TickInterval(totalDepth float64) float64 {
	if totalDepth <= 20 {
		return 2
	}
	return 5
}

// BodyTop is the y of depth zero.
func (l Layout) BodyTop() float64 { return l.HeaderHeight }

// BodyHeight is the drawable height of the depth-scaled body.
func (l Layout) BodyHeight() float64 { return l.TotalDepth * l.DepthScale }

// BodyBottom is the y of the total depth.
func (l Layout) BodyBottom() float64 { return l.BodyTop() + l.BodyHeight() }

// Y maps a depth to its y coordinate in the body.
func (l Layout) Y(depth float64) float64 { return l.HeaderHeight + depth*l.DepthScale }

// Ticks returns the depths of the scale ticks, from zero to the total depth.
func (l Layout) Ticks() []float64 {
	if l.TickInterval <= 0 {
		return nil
	}
	n := int(math.Floor(l.TotalDepth/l.TickInterval+eps)) + 1
	ticks := make([]float64, 0, n)
	for i := range n {
		ticks = append(ticks, float64(i)*l.TickInterval)
	}
	return ticks
}

// Column returns the active column with the given id.
func (l Layout) Column(id ColumnID) (Column, bool) {
	i := slices.IndexFunc(l.Columns, func(c Column) bool { return c.ID == id })
	if i < 0 {
		return Column{}, false
	}
	return l.Columns[i], true
}

// HasColumn reports whether id is part of the active column set.
func (l Layout) HasColumn(id ColumnID) bool {
	_, ok := l.Column(id)
	return ok
}

// ColumnsLeft is the x of the first column.
func (l Layout) ColumnsLeft() float64 {
	if len(l.Columns) == 0 {
		return l.Margins.Left
	}
	return l.Columns[0].X
}

// ColumnsRight is the x of the right edge of the last column.
func (l Layout) ColumnsRight() float64 {
	if len(l.Columns) == 0 {
		return l.Margins.Left
	}
	return l.Columns[len(l.Columns)-1].Right()
}

// legendCodes collects the distinct single codes used by the layers, with
// dual codes split into their constituents.
func legendCodes(r *boring.Record) []string {
	seen := make(map[string]struct{})
	for _, layer := range r.Layers {
		for _, c := range pattern.Split(layer.USCS) {
			seen[c] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func legendSampleTypes(r *boring.Record) []string {
	seen := make(map[string]struct{})
	for _, s := range r.Samples {
		if t := boring.NormalizeCode(s.Type); t != "" {
			seen[t] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

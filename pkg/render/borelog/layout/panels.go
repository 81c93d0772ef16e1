package layout

import (
	"math"

	"github.com/matzehuels/stratalog/pkg/boring"
)

// MaxLegendColumns caps how many code swatches share a legend row.
const MaxLegendColumns = 4

const wellPad = 28

// WellPanel is the well construction side panel. Its internal diagram uses
// its own depth scale so that the whole well fits the fixed panel height.
type WellPanel struct {
	X, Y, Width, Height float64
	Pad                 float64 // vertical inset above and below the diagram
	TotalDepth          float64
}

// DiagramTop is the y of ground surface inside the panel.
func (w WellPanel) DiagramTop() float64 { return w.Y + w.Pad }

// DiagramHeight is the height available to the scaled well diagram.
func (w WellPanel) DiagramHeight() float64 { return max(w.Height-2*w.Pad, 0) }

// DepthY maps depth onto the panel. The depth is divided by the total depth,
// not by the body scale, so the mapping is independent of DepthScale.
func (w WellPanel) DepthY(depth float64) float64 {
	if w.TotalDepth <= 0 {
		return w.DiagramTop()
	}
	frac := min(max(depth/w.TotalDepth, 0), 1)
	return w.DiagramTop() + frac*w.DiagramHeight()
}

// CenterX is the borehole axis.
func (w WellPanel) CenterX() float64 { return w.X + w.Width/2 }

// Legend is the placement and content of the legend block.
type Legend struct {
	X, Y, Width, Height float64
	TitleHeight         float64
	RowHeight           float64

	Codes       []string // distinct single codes, sorted
	SampleTypes []string // distinct sample types, sorted
	Groundwater bool

	Cols     int // code columns per row
	CodeRows int
}

// HasExtraRow reports whether the sample type / groundwater row is drawn.
func (g Legend) HasExtraRow() bool { return len(g.SampleTypes) > 0 || g.Groundwater }

// Rows is the total number of legend rows.
func (g Legend) Rows() int {
	if g.HasExtraRow() {
		return g.CodeRows + 1
	}
	return g.CodeRows
}

// CellWidth is the width of one code swatch cell.
func (g Legend) CellWidth() float64 {
	if g.Cols == 0 {
		return g.Width
	}
	return g.Width / float64(g.Cols)
}

// Cell returns the top-left corner of the i-th code cell.
func (g Legend) Cell(i int) (x, y float64) {
	cols := max(g.Cols, 1)
	row, col := i/cols, i%cols
	return g.X + float64(col)*g.CellWidth(), g.Y + g.TitleHeight + float64(row)*g.RowHeight
}

// ExtraRowY is the top of the sample type / groundwater row.
func (g Legend) ExtraRowY() float64 {
	return g.Y + g.TitleHeight + float64(g.CodeRows)*g.RowHeight
}

// LegendRows returns the number of code rows for n distinct codes:
// ceil(n / min(n, 4)), or zero when there are no codes.
func LegendRows(n int) int {
	if n <= 0 {
		return 0
	}
	cols := min(n, MaxLegendColumns)
	return int(math.Ceil(float64(n) / float64(cols)))
}

func buildLegend(r *boring.Record, opts Options, x, y, width float64) *Legend {
	g := &Legend{
		X:           x,
		Y:           y,
		Width:       width,
		TitleHeight: opts.LegendTitleHeight,
		RowHeight:   opts.LegendRowHeight,
		Codes:       legendCodes(r),
		SampleTypes: legendSampleTypes(r),
		Groundwater: r.HasGroundwater(),
	}
	if n := len(g.Codes); n > 0 {
		g.Cols = min(n, MaxLegendColumns)
		g.CodeRows = LegendRows(n)
	}
	if g.Rows() == 0 {
		return nil
	}
	g.Height = g.TitleHeight + float64(g.Rows())*g.RowHeight
	return g
}

package layout

import "github.com/matzehuels/stratalog/pkg/boring"

// ColumnID names a column of the log.
type ColumnID string

const (
	ColDepth       ColumnID = "depth"
	ColElevation   ColumnID = "elevation"
	ColGraphic     ColumnID = "graphic"
	ColUSCS        ColumnID = "uscs"
	ColDescription ColumnID = "description"
	ColMoisture    ColumnID = "moisture"
	ColOdor        ColumnID = "odor"
	ColPID         ColumnID = "pid"
	ColSample      ColumnID = "sample"
	ColSPT         ColumnID = "spt"
	ColRecovery    ColumnID = "recovery"
)

// BaseColumns are always present, in drawing order.
var BaseColumns = []ColumnID{
	ColDepth, ColElevation, ColGraphic, ColUSCS, ColDescription,
	ColMoisture, ColSample, ColSPT, ColRecovery,
}

// DefaultColumnWidths returns a fresh copy of the default width table,
// including the conditional odor and PID columns.
func DefaultColumnWidths() map[ColumnID]float64 {
	return map[ColumnID]float64{
		ColDepth:       50,
		ColElevation:   55,
		ColGraphic:     60,
		ColUSCS:        50,
		ColDescription: 230,
		ColMoisture:    65,
		ColOdor:        70,
		ColPID:         50,
		ColSample:      75,
		ColSPT:         90,
		ColRecovery:    60,
	}
}

// Column is an active column with its horizontal placement.
type Column struct {
	ID    ColumnID
	X     float64
	Width float64
}

// Right returns the x of the column's right edge.
func (c Column) Right() float64 { return c.X + c.Width }

// Center returns the x of the column's center.
func (c Column) Center() float64 { return c.X + c.Width/2 }

// ActiveColumns returns the ordered column set for r. Odor and PID are
// inserted between moisture and sample only when some layer needs them.
func ActiveColumns(r *boring.Record) []ColumnID {
	cols := make([]ColumnID, 0, len(BaseColumns)+2)
	for _, id := range BaseColumns {
		if id == ColSample {
			if r.HasOdor() {
				cols = append(cols, ColOdor)
			}
			if r.HasPID() {
				cols = append(cols, ColPID)
			}
		}
		cols = append(cols, id)
	}
	return cols
}

func buildColumns(ids []ColumnID, opts Options) []Column {
	defaults := DefaultColumnWidths()
	cols := make([]Column, 0, len(ids))
	x := opts.Margins.Left
	for _, id := range ids {
		w, ok := opts.ColumnWidths[id]
		if !ok || w <= 0 {
			w = defaults[id]
		}
		cols = append(cols, Column{ID: id, X: x, Width: w})
		x += w
	}
	return cols
}

// widen grows column id by delta and shifts everything to its right.
func widen(cols []Column, id ColumnID, delta float64) {
	grown := false
	for i := range cols {
		if grown {
			cols[i].X += delta
			continue
		}
		if cols[i].ID == id {
			cols[i].Width += delta
			grown = true
		}
	}
}

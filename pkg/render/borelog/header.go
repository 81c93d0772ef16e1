package borelog

import (
	"fmt"

	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/render/borelog/layout"
	"github.com/matzehuels/stratalog/pkg/render/borelog/scene"
)

const headerPad = 10

// field is one "Label: value" line of the header block.
type field struct{ label, value string }

// headerColumns returns the three header text columns: project and site,
// consultant and drilling, driller and dates. Empty fields are skipped.
func headerColumns(m boring.Metadata, units string) [3][]field {
	var cols [3][]field
	put := func(col int, label, value string) {
		if value != "" {
			cols[col] = append(cols[col], field{label, value})
		}
	}

	put(0, "Project", m.Project)
	put(0, "Client", m.Client)
	if loc := m.Location; loc != nil {
		put(0, "Location", joinNonEmpty(" ", fmt.Sprintf("%.6f, %.6f", loc.Lat, loc.Lon), paren(loc.System)))
	}
	if m.Elevation != nil {
		put(0, "Elevation", num(*m.Elevation)+" "+units)
	}
	if m.TotalDepth > 0 {
		put(0, "Total depth", num(m.TotalDepth)+" "+units)
	}

	if c := m.Consultant; !c.IsZero() {
		put(1, "Consultant", c.Company)
		put(1, "Contact", c.Contact)
		put(1, "Phone", c.Phone)
	}
	put(1, "Method", m.DrillingMethod)
	put(1, "Equipment", m.Equipment)

	put(2, "Driller", m.Driller.String())
	put(2, "Date", m.Date)
	put(2, "Started", m.DateStart)
	put(2, "Completed", m.DateComplete)
	put(2, "Time", m.Time)
	put(2, "Weather", m.Weather)
	put(2, "Logged by", m.LoggedBy)
	return cols
}

func paren(s string) string {
	if s == "" {
		return ""
	}
	return "(" + s + ")"
}

func (rd *renderer) drawHeader() {
	l := rd.l
	x0, x1 := l.Margins.Left, l.Width-l.Margins.Right
	top, bottom := l.Margins.Top, l.ColumnHeaderTop
	if bottom <= top {
		return
	}

	rd.add(scene.Rect{
		Class: ClassHeader,
		X:     x0,
		Y:     top,
		W:     x1 - x0,
		H:     bottom - top,
		Style: scene.Style{Fill: rd.pal.HeaderBackground, Stroke: rd.pal.Border, StrokeWidth: 1},
	})

	titleSize := rd.cfg.FontSize * 1.6
	title := "BORING LOG"
	if id := rd.rec.Boring.ID; id != "" {
		title += ": " + id
	}
	t := rd.text(ClassTitle, x0+headerPad, top+headerPad+titleSize, title)
	t.Size = titleSize
	t.Bold = true
	rd.add(t)

	size := rd.cfg.FontSize
	lineH := size * lineSpacing * 1.1
	firstY := top + headerPad + titleSize + headerPad + size
	budget := 0
	if bottom-headerPad/2 >= firstY {
		budget = int((bottom-headerPad/2-firstY)/lineH) + 1
	}
	colW := (x1 - x0) / 3

	for i, fields := range headerColumns(rd.rec.Boring, rd.cfg.Units) {
		x := x0 + headerPad + float64(i)*colW
		for j, f := range fields {
			if j >= budget {
				break
			}
			line := fitLabel(f.label+": "+f.value, colW-2*headerPad, size)
			rd.add(rd.text(ClassHeaderField, x, firstY+float64(j)*lineH, line))
		}
	}
}

var columnTitles = map[layout.ColumnID]string{
	layout.ColDepth:       "Depth",
	layout.ColElevation:   "Elev.",
	layout.ColGraphic:     "Graphic",
	layout.ColUSCS:        "USCS",
	layout.ColDescription: "Description",
	layout.ColMoisture:    "Moisture",
	layout.ColOdor:        "Odor",
	layout.ColPID:         "PID",
	layout.ColSample:      "Sample",
	layout.ColSPT:         "SPT Blows",
	layout.ColRecovery:    "Recovery",
}

// columnTitle returns the two header lines of a column; the second carries
// the unit where one applies.
func (rd *renderer) columnTitle(id layout.ColumnID) (string, string) {
	switch id {
	case layout.ColDepth, layout.ColElevation:
		return columnTitles[id], "(" + rd.cfg.Units + ")"
	case layout.ColPID:
		return columnTitles[id], "(ppm)"
	case layout.ColRecovery:
		return columnTitles[id], "(" + rd.cfg.RecoveryUnits + ")"
	}
	return columnTitles[id], ""
}

func (rd *renderer) drawColumnHeaders() {
	l := rd.l
	y, h := l.ColumnHeaderTop, l.ColumnHeaderHeight
	size := rd.cfg.FontSize * 0.9

	for _, c := range l.Columns {
		rd.add(scene.Rect{
			Class: ClassColumnHeader,
			X:     c.X,
			Y:     y,
			W:     c.Width,
			H:     h,
			Style: scene.Style{Fill: rd.pal.HeaderBackground, Stroke: rd.pal.Border, StrokeWidth: 0.8},
		})
		first, second := rd.columnTitle(c.ID)
		if second == "" {
			t := rd.centered(ClassColumnTitle, c.Center(), y+h/2, fitLabel(first, c.Width-4, size))
			t.Size, t.Bold = size, true
			rd.add(t)
			continue
		}
		t1 := rd.centered(ClassColumnTitle, c.Center(), y+h/2-size*0.6, fitLabel(first, c.Width-4, size))
		t1.Size, t1.Bold = size, true
		t2 := rd.centered(ClassColumnTitle, c.Center(), y+h/2+size*0.6, second)
		t2.Size = size
		rd.add(t1, t2)
	}

	if w := l.Well; w != nil {
		t := rd.centered(ClassColumnTitle, w.CenterX(), y+h/2, "Well Construction")
		t.Size, t.Bold = size, true
		rd.add(t)
	}
}

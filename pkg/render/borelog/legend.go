package borelog

import (
	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/render/borelog/pattern"
	"github.com/matzehuels/stratalog/pkg/render/borelog/scene"
)

const (
	swatchWidth = 24
	swatchPad   = 4
)

// sampleTypeNames are display names for common sample types.
var sampleTypeNames = map[string]string{
	"SPT":  "Split spoon",
	"ST":   "Shelby tube",
	"CS":   "California sampler",
	"MC":   "Modified California",
	"GRAB": "Grab sample",
	"CORE": "Rock core",
	"BULK": "Bulk sample",
	"DP":   "Direct push",
}

// LegendLabel returns the legend text for a classification code: the code
// and its name, or the code alone when no name is known.
func LegendLabel(code string) string {
	if name, ok := pattern.Describe(code); ok {
		return code + " — " + name
	}
	return code
}

func sampleTypeLabel(t string) string {
	if name, ok := sampleTypeNames[t]; ok {
		return t + " — " + name
	}
	return t
}

func (rd *renderer) drawFooter() {
	l := rd.l
	x0, x1 := l.Margins.Left, l.ColumnsRight()
	y := l.FooterTop + l.FooterHeight/2
	units := rd.cfg.Units

	left := "Total depth: " + num(l.TotalDepth) + " " + units
	water := "Groundwater: not encountered"
	if rd.rec.HasGroundwater() {
		gw := rd.rec.Groundwater
		water = joinNonEmpty(" ", "Groundwater: "+num(*gw.Depth)+" "+units, paren(gw.Note))
	}

	t := rd.text(ClassFooter, x0, y, left)
	t.Middle = true
	rd.add(t)
	t = rd.centered(ClassFooter, (x0+x1)/2, y, water)
	rd.add(t)
	if by := rd.rec.Boring.LoggedBy; by != "" {
		t = rd.text(ClassFooter, x1, y, "Logged by: "+by)
		t.Anchor, t.Middle = scene.AnchorEnd, true
		rd.add(t)
	}
}

func (rd *renderer) drawLegend() {
	g := rd.l.Legend
	if g == nil {
		return
	}
	size := rd.cfg.FontSize

	t := rd.text(ClassLegendTitle, g.X, g.Y+g.TitleHeight/2, "LEGEND")
	t.Middle, t.Bold = true, true
	rd.add(t)

	labelW := g.CellWidth() - swatchWidth - 3*swatchPad
	for i, code := range g.Codes {
		x, y := g.Cell(i)
		rd.add(
			scene.Rect{
				Class: ClassLegendSwatch,
				X:     x + swatchPad,
				Y:     y + swatchPad,
				W:     swatchWidth,
				H:     g.RowHeight - 2*swatchPad,
				Style: scene.Style{Pattern: rd.patternID(code), Stroke: rd.pal.Border, StrokeWidth: 0.6},
				Title: code,
			},
		)
		label := rd.text(ClassLegendLabel, x+swatchWidth+2*swatchPad, y+g.RowHeight/2, LegendLabel(code))
		label.Middle = true
		if textWidth(label.Value, size) > labelW {
			label.Value = fitLabel(label.Value, labelW, size)
		}
		rd.add(label)
	}

	if !g.HasExtraRow() {
		return
	}
	items := rd.legendRowItems(g.SampleTypes, g.Groundwater)
	// Items keep their natural width while the row fits. Otherwise each gets
	// an equal share of the legend width and its label is cut to fit.
	var total float64
	for _, it := range items {
		total += it.width(size)
	}
	slot := 0.0
	if total > g.Width && len(items) > 0 {
		slot = g.Width / float64(len(items))
	}

	x, cy := g.X, g.ExtraRowY()+g.RowHeight/2
	for _, it := range items {
		w := it.width(size)
		if slot > 0 {
			w = slot
		}
		label := rd.text(it.textClass(), x+it.icon, cy, it.label)
		label.Middle = true
		if room := w - it.icon - swatchPad; textWidth(label.Value, size) > room {
			label.Value = fitLabel(label.Value, room, size)
		}
		if it.water {
			cx := x + swatchPad + triangleSize
			rd.add(scene.Polygon{
				Class:  ClassLegendWater,
				Points: triangle(cx, cy+triangleSize),
				Style:  scene.Style{Fill: rd.pal.Groundwater, Stroke: rd.pal.Groundwater, StrokeWidth: 1},
			})
		} else {
			rd.add(scene.Rect{
				Class: ClassLegendSample,
				X:     x + swatchPad,
				Y:     cy - markerHeight/2,
				W:     markerWidth,
				H:     markerHeight,
				Style: scene.Style{Fill: it.fill, Stroke: rd.pal.Border, StrokeWidth: 1},
			})
		}
		rd.add(label)
		x += w
	}
}

// legendItem is one entry of the sample-type and groundwater row.
type legendItem struct {
	label string
	fill  string
	water bool
	icon  float64 // offset of the label from the item start
}

func (it legendItem) width(size float64) float64 {
	return it.icon + textWidth(it.label, size) + swatchPad
}

func (it legendItem) textClass() string {
	if it.water {
		return ClassLegendWaterText
	}
	return ClassLegendSampleText
}

func (rd *renderer) legendRowItems(types []string, water bool) []legendItem {
	items := make([]legendItem, 0, len(types)+1)
	for _, st := range types {
		fill := rd.pal.Sample
		if st == boring.SampleTypeSPT {
			fill = rd.pal.SampleSPT
		}
		items = append(items, legendItem{label: sampleTypeLabel(st), fill: fill, icon: markerWidth + 2*swatchPad})
	}
	if water {
		items = append(items, legendItem{label: "Groundwater", water: true, icon: 2*triangleSize + 2*swatchPad})
	}
	return items
}

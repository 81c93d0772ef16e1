package borelog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/render/borelog/layout"
	"github.com/matzehuels/stratalog/pkg/render/borelog/scene"
)

const (
	cellPad         = 4
	markerWidth     = 14
	markerHeight    = 10 // point samples
	minMarkerHeight = 8  // interval samples
	waveStep        = 10.0
	triangleSize    = 6
)

func (rd *renderer) drawScale() {
	l := rd.l
	depthCol, hasDepth := l.Column(layout.ColDepth)
	elevCol, hasElev := l.Column(layout.ColElevation)
	grid := scene.Style{Stroke: rd.pal.Grid, StrokeWidth: 0.5, Dash: "2,3"}
	tick := scene.Style{Stroke: rd.pal.Border, StrokeWidth: 0.8}

	for _, d := range l.Ticks() {
		y := l.Y(d)
		if d > 0 && d < l.TotalDepth {
			rd.add(scene.Line{Class: ClassGridLine, X1: l.ColumnsLeft(), Y1: y, X2: l.ColumnsRight(), Y2: y, Style: grid})
		}
		if hasDepth {
			rd.add(
				scene.Line{Class: ClassDepthTick, X1: depthCol.Right() - 6, Y1: y, X2: depthCol.Right(), Y2: y, Style: tick},
				rd.centered(ClassDepthLabel, depthCol.Center(), y, num(d)),
			)
		}
		if hasElev && rd.rec.Boring.Elevation != nil {
			rd.add(rd.centered(ClassElevationLabel, elevCol.Center(), y,
				strconv.FormatFloat(*rd.rec.Boring.Elevation-d, 'f', 1, 64)))
		}
	}
}

// bandSpan clamps a layer to the drawable body and orders its bounds.
func (rd *renderer) bandSpan(top, bottom float64) (y0, y1 float64, ok bool) {
	top, bottom = min(top, bottom), max(top, bottom)
	top = max(top, 0)
	bottom = min(bottom, rd.l.TotalDepth)
	if bottom <= top {
		return 0, 0, false
	}
	return rd.l.Y(top), rd.l.Y(bottom), true
}

func (rd *renderer) drawLayers() {
	l := rd.l
	graphic, _ := l.Column(layout.ColGraphic)
	border := scene.Style{Stroke: rd.pal.Border, StrokeWidth: 0.6}

	for i, layer := range rd.layers {
		y0, y1, ok := rd.bandSpan(layer.DepthTop, layer.DepthBottom)
		if !ok {
			continue
		}
		code := boring.NormalizeCode(layer.USCS)
		desc := strings.TrimSpace(layer.Description)
		placeholder := desc == ""
		if placeholder {
			desc = boring.DefaultDescription
		}

		rd.add(scene.Rect{
			Class:      ClassSoilBand,
			X:          graphic.X,
			Y:          y0,
			W:          graphic.Width,
			H:          y1 - y0,
			Style:      scene.Style{Pattern: rd.patternID(code), Stroke: rd.pal.Border, StrokeWidth: 0.6},
			Title:      joinNonEmpty(": ", code, desc),
			DataRecord: "layer-" + strconv.Itoa(i),
		})
		rd.add(scene.Line{Class: ClassLayerBoundary, X1: graphic.X, Y1: y1, X2: l.ColumnsRight(), Y2: y1, Style: border})

		mid := (y0 + y1) / 2
		if c, ok := l.Column(layout.ColUSCS); ok && code != "" {
			t := rd.centered(ClassUSCSLabel, c.Center(), mid, fitLabel(code, c.Width-2, rd.cfg.FontSize))
			t.Bold = true
			rd.add(t)
		}
		if c, ok := l.Column(layout.ColDescription); ok {
			rd.drawDescription(c, y0, y1, desc, placeholder)
		}
		if c, ok := l.Column(layout.ColMoisture); ok && layer.Moisture != "" {
			rd.add(rd.centered(ClassMoisture, c.Center(), mid, fitLabel(display(string(layer.Moisture)), c.Width-2, rd.cfg.FontSize)))
		}
		if c, ok := l.Column(layout.ColOdor); ok && layer.Odor != "" {
			rd.add(rd.centered(ClassOdor, c.Center(), mid, fitLabel(display(string(layer.Odor)), c.Width-2, rd.cfg.FontSize)))
		}
		if c, ok := l.Column(layout.ColPID); ok && layer.PID != nil {
			rd.add(rd.centered(ClassPID, c.Center(), mid, num(*layer.PID)))
		}
	}
}

// drawDescription wraps desc into the description cell of a band. Lines that
// do not fit the band height are dropped. The placeholder for a missing
// description is set in muted italics.
func (rd *renderer) drawDescription(c layout.Column, y0, y1 float64, desc string, placeholder bool) {
	size := rd.cfg.FontSize
	lineH := size * lineSpacing
	lines := wrap(desc, c.Width-2*cellPad, size, maxLines(y1-y0, size))
	for i, line := range lines {
		t := rd.text(ClassDescription, c.X+cellPad, y0+size+float64(i)*lineH, line)
		if placeholder {
			t.Italic = true
			t.Fill = rd.pal.MutedText
		}
		rd.add(t)
	}
}

func (rd *renderer) drawSamples() {
	l := rd.l
	col, ok := l.Column(layout.ColSample)
	if !ok {
		return
	}
	spt, hasSPT := l.Column(layout.ColSPT)
	rec, hasRec := l.Column(layout.ColRecovery)
	size := rd.cfg.FontSize

	for i, s := range rd.samples {
		pos := s.Position()
		style := scene.Style{Fill: rd.pal.Sample, Stroke: rd.pal.Border, StrokeWidth: 1}
		if s.IsSPT() {
			style.Fill = rd.pal.SampleSPT
		}

		marker := scene.Rect{
			Class:      ClassSampleMarker,
			X:          col.X + cellPad,
			W:          markerWidth,
			Style:      style,
			Title:      joinNonEmpty(" ", boring.NormalizeCode(s.Type), s.ID),
			DataRecord: "sample-" + strconv.Itoa(i),
		}
		labelX := marker.X + markerWidth + 3
		labelW := col.Right() - labelX - 2
		if pos.Interval {
			marker.Y = l.Y(pos.Top)
			marker.H = max(l.Y(pos.Bottom)-marker.Y, minMarkerHeight)
			rd.add(marker)
			cy := marker.CenterY()
			rd.add(
				rd.sampleLabel(labelX, cy-size*0.6, labelW, s.ID),
				rd.sampleLabel(labelX, cy+size*0.6, labelW, depthRange(pos.Top, pos.Bottom)),
			)
		} else {
			marker.Y = l.Y(pos.Top) - markerHeight/2
			marker.H = markerHeight
			rd.add(marker)
			if s.ID != "" {
				rd.add(rd.sampleLabel(labelX, marker.CenterY(), labelW, s.ID))
			}
		}

		cy := marker.CenterY()
		if hasSPT {
			if label := blowsLabel(s); label != "" {
				rd.add(rd.centered(ClassSPT, spt.Center(), cy, label))
			}
		}
		if hasRec && s.Recovery != nil {
			rd.add(rd.centered(ClassRecovery, rec.Center(), cy, num(*s.Recovery)))
		}
	}
}

func (rd *renderer) sampleLabel(x, y, width float64, v string) scene.Text {
	t := rd.text(ClassSampleLabel, x, y, fitLabel(v, width, rd.cfg.FontSize))
	t.Middle = true
	return t
}

// blowsLabel formats the blow counts of s. SPT samples with exactly three
// counts show the N-value followed by the raw counts.
func blowsLabel(s boring.Sample) string {
	if len(s.Blows) == 0 {
		return ""
	}
	raw := make([]string, len(s.Blows))
	for i, b := range s.Blows {
		raw[i] = strconv.Itoa(b)
	}
	joined := strings.Join(raw, "-")
	if n, ok := s.NValue(); ok && s.IsSPT() {
		return fmt.Sprintf("N=%d (%s)", n, joined)
	}
	return joined
}

func (rd *renderer) drawGroundwater() {
	if !rd.rec.HasGroundwater() {
		return
	}
	graphic, ok := rd.l.Column(layout.ColGraphic)
	if !ok {
		return
	}
	y := rd.l.Y(*rd.rec.Groundwater.Depth)
	cx := graphic.Center()

	rd.add(
		scene.Path{
			Class: ClassGroundwaterLine,
			D:     wavePath(graphic.X, graphic.Right(), y),
			Style: scene.Style{Stroke: rd.pal.Groundwater, StrokeWidth: 1.2},
		},
		scene.Polygon{
			Class:  ClassGroundwater,
			Points: triangle(cx, y),
			Style:  scene.Style{Fill: rd.pal.Groundwater, Stroke: rd.pal.Groundwater, StrokeWidth: 1},
		},
	)
}

// triangle returns a downward-pointing marker whose tip touches y.
func triangle(cx, y float64) [][2]float64 {
	return [][2]float64{
		{cx - triangleSize, y - 2*triangleSize},
		{cx + triangleSize, y - 2*triangleSize},
		{cx, y},
	}
}

// wavePath draws quadratic arcs every waveStep units from x0 to x1 at y.
// A trailing remainder shorter than one step is drawn straight.
func wavePath(x0, x1, y float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "M%.2f %.2f", x0, y)
	x := x0
	for ; x+waveStep <= x1+1e-9; x += waveStep {
		fmt.Fprintf(&b, " Q%.2f %.2f %.2f %.2f", x+waveStep/4, y-2, x+waveStep/2, y)
		fmt.Fprintf(&b, " Q%.2f %.2f %.2f %.2f", x+3*waveStep/4, y+2, x+waveStep, y)
	}
	if x < x1 {
		fmt.Fprintf(&b, " L%.2f %.2f", x1, y)
	}
	return b.String()
}

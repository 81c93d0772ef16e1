package borelog

import (
	"github.com/matzehuels/stratalog/pkg/render/borelog/scene"
)

const (
	boreholeRatio = 0.4 // borehole width relative to the panel
	casingRatio   = 0.4 // casing width relative to the borehole
	stickup       = 8
)

func (rd *renderer) drawWell() {
	p := rd.l.Well
	if p == nil {
		return
	}
	w := rd.rec.Well
	size := rd.cfg.FontSize * 0.85

	rd.add(scene.Rect{
		Class: ClassWellPanel,
		X:     p.X,
		Y:     p.Y,
		W:     p.Width,
		H:     p.Height,
		Style: scene.Style{Stroke: rd.pal.Border, StrokeWidth: 1},
	})
	title := w.Type
	if title == "" {
		title = "Well"
	}
	t := rd.centered(ClassWellTitle, p.CenterX(), p.Y+p.Pad/2, fitLabel(title, p.Width-8, size))
	t.Size, t.Bold = size, true
	rd.add(t)

	cx := p.CenterX()
	boreW := p.Width * boreholeRatio
	casingW := boreW * casingRatio
	boreX := cx - boreW/2
	top, bottom := p.DepthY(0), p.DepthY(p.TotalDepth)

	rd.add(scene.Rect{
		Class: ClassWellBorehole,
		X:     boreX,
		Y:     top,
		W:     boreW,
		H:     bottom - top,
		Style: scene.Style{Fill: rd.pal.Borehole, Stroke: rd.pal.Border, StrokeWidth: 1},
	})

	if w.HasSeal() {
		y0, y1 := p.DepthY(min(*w.SealTop, *w.SealBottom)), p.DepthY(max(*w.SealTop, *w.SealBottom))
		rd.add(scene.Rect{
			Class: ClassWellSeal,
			X:     boreX,
			Y:     y0,
			W:     boreW,
			H:     y1 - y0,
			Style: scene.Style{Fill: rd.pal.Seal, Stroke: rd.pal.Border, StrokeWidth: 0.5},
			Title: joinNonEmpty(" ", "Seal", w.SealMaterial),
		})
		rd.wellDepthLabels(boreX, y0, y1, *w.SealTop, *w.SealBottom)
	}

	casingBottom := p.Y + p.Height/2
	if w.HasScreen() {
		st, sb := min(*w.ScreenTop, *w.ScreenBottom), max(*w.ScreenTop, *w.ScreenBottom)
		y0, y1 := p.DepthY(st), p.DepthY(sb)
		rd.add(
			scene.Rect{
				Class: ClassWellFilterPack,
				X:     boreX,
				Y:     y0,
				W:     boreW,
				H:     y1 - y0,
				Style: scene.Style{Fill: rd.pal.FilterPack, Stroke: rd.pal.Border, StrokeWidth: 0.5},
				Title: joinNonEmpty(" ", "Filter pack", w.FilterPack),
			},
			scene.Rect{
				Class: ClassWellScreen,
				X:     cx - casingW/2,
				Y:     y0,
				W:     casingW,
				H:     y1 - y0,
				Style: scene.Style{Fill: rd.pal.Screen, Stroke: rd.pal.Casing, StrokeWidth: 1, Dash: "3,2"},
				Title: joinNonEmpty(" ", "Screen", w.ScreenSlotSize),
			},
		)
		rd.wellDepthLabels(boreX, y0, y1, st, sb)
		casingBottom = y0
	}

	casing := scene.Style{Stroke: rd.pal.Casing, StrokeWidth: 2}
	for _, x := range []float64{cx - casingW/2, cx + casingW/2} {
		rd.add(scene.Line{Class: ClassWellCasing, X1: x, Y1: top - stickup, X2: x, Y2: casingBottom, Style: casing})
	}

	annotY := p.Y + p.Height - size*0.8
	if slot := w.ScreenSlotSize; slot != "" {
		rd.add(rd.wellAnnotation(cx, annotY, p.Width, size, "Slot "+slot))
		annotY -= size * lineSpacing
	}
	var diameter string
	if w.CasingDiameter != nil {
		diameter = num(*w.CasingDiameter) + " " + rd.cfg.RecoveryUnits
	}
	if casingText := joinNonEmpty(" ", diameter, w.CasingMaterial); casingText != "" {
		rd.add(rd.wellAnnotation(cx, annotY, p.Width, size, casingText))
	}
}

// wellDepthLabels writes the bounds of a well interval left of the borehole.
func (rd *renderer) wellDepthLabels(boreX, y0, y1, top, bottom float64) {
	size := rd.cfg.FontSize * 0.75
	for _, v := range []struct{ y, d float64 }{{y0, min(top, bottom)}, {y1, max(top, bottom)}} {
		t := rd.text(ClassWellDepth, boreX-3, v.y, num(v.d))
		t.Anchor, t.Middle, t.Size, t.Fill = scene.AnchorEnd, true, size, rd.pal.MutedText
		rd.add(t)
	}
}

func (rd *renderer) wellAnnotation(cx, y, width, size float64, v string) scene.Text {
	t := rd.centered(ClassWellAnnotation, cx, y, fitLabel(v, width-8, size))
	t.Size = size
	return t
}

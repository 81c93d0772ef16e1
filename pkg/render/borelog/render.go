package borelog

import (
	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/render/borelog/layout"
	"github.com/matzehuels/stratalog/pkg/render/borelog/pattern"
	"github.com/matzehuels/stratalog/pkg/render/borelog/scene"
)

// Element classes. Every element in a rendered scene carries one of these so
// sinks can style them and tests can query them.
const (
	ClassBackground       = "background"
	ClassFrame            = "frame"
	ClassHeader           = "header"
	ClassTitle            = "title"
	ClassHeaderField      = "header-field"
	ClassColumnHeader     = "column-header"
	ClassColumnTitle      = "column-title"
	ClassColumnRule       = "column-rule"
	ClassGridLine         = "grid-line"
	ClassDepthTick        = "depth-tick"
	ClassDepthLabel       = "depth-label"
	ClassElevationLabel   = "elevation-label"
	ClassSoilBand         = "soil-band"
	ClassLayerBoundary    = "layer-boundary"
	ClassUSCSLabel        = "uscs-label"
	ClassDescription      = "description"
	ClassMoisture         = "moisture"
	ClassOdor             = "odor"
	ClassPID              = "pid"
	ClassSampleMarker     = "sample-marker"
	ClassSampleLabel      = "sample-label"
	ClassSPT              = "spt"
	ClassRecovery         = "recovery"
	ClassGroundwater      = "groundwater-marker"
	ClassGroundwaterLine  = "groundwater-line"
	ClassWellPanel        = "well-panel"
	ClassWellTitle        = "well-title"
	ClassWellBorehole     = "well-borehole"
	ClassWellSeal         = "well-seal"
	ClassWellFilterPack   = "well-filter-pack"
	ClassWellScreen       = "well-screen"
	ClassWellCasing       = "well-casing"
	ClassWellDepth        = "well-depth"
	ClassWellAnnotation   = "well-annotation"
	ClassFooter           = "footer"
	ClassLegendTitle      = "legend-title"
	ClassLegendSwatch     = "legend-swatch"
	ClassLegendLabel      = "legend-label"
	ClassLegendSample     = "legend-sample"
	ClassLegendSampleText = "legend-sample-label"
	ClassLegendWater      = "legend-groundwater"
	ClassLegendWaterText  = "legend-groundwater-label"
)

// Render draws r under cfg. It is a pure function: the record is only read,
// and equal inputs produce equal scenes. A nil record renders an empty log.
func Render(r *boring.Record, cfg Config) scene.Scene {
	if r == nil {
		r = &boring.Record{}
	}
	cfg = cfg.withDefaults()
	l := layout.Compute(r, cfg.LayoutOptions())

	rd := &renderer{
		cfg:      cfg,
		pal:      cfg.Palette,
		l:        l,
		rec:      r,
		layers:   r.SortedLayers(),
		samples:  r.SortedSamples(),
		patterns: make(map[string]string),
		scene: scene.Scene{
			Width:      l.Width,
			Height:     l.Height,
			FontFamily: cfg.FontFamily,
			Background: cfg.Palette.Background,
		},
	}

	rd.drawBackground()
	rd.drawHeader()
	rd.drawColumnHeaders()
	rd.drawLayers()
	rd.drawScale()
	rd.drawSamples()
	rd.drawGroundwater()
	rd.drawFrame()
	rd.drawWell()
	rd.drawFooter()
	rd.drawLegend()
	return rd.scene
}

// renderer holds the state of a single Render call. The pattern map is the
// only cache and lives exactly as long as the call.
type renderer struct {
	cfg     Config
	pal     Palette
	l       layout.Layout
	rec     *boring.Record
	layers  []boring.Layer
	samples []boring.Sample

	patterns map[string]string // tile code -> pattern id
	scene    scene.Scene
}

func (rd *renderer) add(els ...scene.Element) { rd.scene.Add(els...) }

// patternID resolves code to a tile and registers its definition on first use.
func (rd *renderer) patternID(code string) string {
	tile := pattern.Lookup(code)
	if id, ok := rd.patterns[tile.Code]; ok {
		return id
	}
	id := tile.ID()
	rd.patterns[tile.Code] = id
	rd.scene.Patterns = append(rd.scene.Patterns, scene.PatternDef{ID: id, Tile: tile})
	return id
}

func (rd *renderer) text(class string, x, y float64, value string) scene.Text {
	return scene.Text{
		Class:  class,
		X:      x,
		Y:      y,
		Value:  value,
		Size:   rd.cfg.FontSize,
		Anchor: scene.AnchorStart,
		Fill:   rd.pal.Text,
	}
}

func (rd *renderer) centered(class string, x, y float64, value string) scene.Text {
	t := rd.text(class, x, y, value)
	t.Anchor = scene.AnchorMiddle
	t.Middle = true
	return t
}

func (rd *renderer) drawBackground() {
	rd.add(scene.Rect{
		Class: ClassBackground,
		W:     rd.l.Width,
		H:     rd.l.Height,
		Style: scene.Style{Fill: rd.pal.Background},
	})
}

// drawFrame outlines the column block and separates the columns. It runs after
// the body content so rules stay visible on top of pattern fills.
func (rd *renderer) drawFrame() {
	l := rd.l
	top, bottom := l.ColumnHeaderTop, l.BodyBottom()
	rule := scene.Style{Stroke: rd.pal.Border, StrokeWidth: 0.8}

	for _, c := range l.Columns[1:] {
		rd.add(scene.Line{Class: ClassColumnRule, X1: c.X, Y1: top, X2: c.X, Y2: bottom, Style: rule})
	}
	rd.add(scene.Rect{
		Class: ClassFrame,
		X:     l.ColumnsLeft(),
		Y:     l.Margins.Top,
		W:     l.ColumnsRight() - l.ColumnsLeft(),
		H:     bottom - l.Margins.Top,
		Style: scene.Style{Stroke: rd.pal.Border, StrokeWidth: 1.5},
	})
}

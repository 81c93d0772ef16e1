package borelog

import (
	"encoding/json"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/render/borelog/layout"
	"github.com/matzehuels/stratalog/pkg/render/borelog/pattern"
	"github.com/matzehuels/stratalog/pkg/render/borelog/scene"
)

func scenarioRecord() *boring.Record {
	return &boring.Record{
		Boring: boring.Metadata{ID: "B-1", TotalDepth: 30},
		Layers: []boring.Layer{{DepthTop: 0, DepthBottom: 3.5, USCS: "SM"}},
		Samples: []boring.Sample{{
			Depth:    boring.Float(2),
			Type:     "SPT",
			ID:       "S-1",
			Blows:    []int{4, 5, 6},
			Recovery: boring.Float(18),
		}},
	}
}

func TestRenderScenario(t *testing.T) {
	cfg := DefaultConfig()
	h := cfg.HeaderHeight
	s := Render(scenarioRecord(), cfg)

	bands := s.Rects(ClassSoilBand)
	if len(bands) != 1 {
		t.Fatalf("got %d soil bands, want 1", len(bands))
	}
	if bands[0].Y != h || bands[0].Bottom() != h+70 {
		t.Errorf("band spans [%v, %v], want [%v, %v]", bands[0].Y, bands[0].Bottom(), h, h+70)
	}

	markers := s.Rects(ClassSampleMarker)
	if len(markers) != 1 {
		t.Fatalf("got %d sample markers, want 1", len(markers))
	}
	if got := markers[0].CenterY(); got != h+40 {
		t.Errorf("marker center = %v, want %v", got, h+40)
	}
	if markers[0].Style.Fill != cfg.Palette.SampleSPT {
		t.Errorf("SPT marker fill = %q, want %q", markers[0].Style.Fill, cfg.Palette.SampleSPT)
	}

	if !s.HasText("N=11 (4-5-6)") {
		t.Error("missing N-value label")
	}
	if !s.HasText("18") {
		t.Error("missing recovery value")
	}

	swatches := s.Rects(ClassLegendSwatch)
	if len(swatches) != 1 {
		t.Fatalf("got %d legend swatches, want 1", len(swatches))
	}
	labels := s.Texts(ClassLegendLabel)
	if len(labels) != 1 || labels[0].Value != "SM — Silty sand" {
		t.Errorf("legend labels = %+v", labels)
	}
	if !s.HasText("BORING LOG: B-1") {
		t.Error("missing title")
	}
}

func TestZeroConfigUsesDefaults(t *testing.T) {
	r := scenarioRecord()
	r.Well = &boring.Well{ScreenTop: boring.Float(10), ScreenBottom: boring.Float(20)}

	want := Render(r, DefaultConfig())
	got := Render(r, Config{})
	if len(got.Rects(ClassLegendSwatch)) == 0 {
		t.Error("zero config should show the legend")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("zero config differs from defaults (-default +zero):\n%s", diff)
	}

	d := New(Config{})
	d.SetData(r)
	if diff := cmp.Diff(want, d.Scene()); diff != "" {
		t.Errorf("diagram with zero config differs from defaults (-default +zero):\n%s", diff)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	r := scenarioRecord()
	r.Layers = append(r.Layers,
		boring.Layer{DepthTop: 3.5, DepthBottom: 12, USCS: "GP-GM", Description: "Sandy gravel with silt", Odor: boring.OdorPetroleum},
		boring.Layer{DepthTop: 12, DepthBottom: 30, USCS: "xyz", PID: boring.Float(4.2)},
	)
	r.Groundwater = &boring.Groundwater{Depth: boring.Float(8), Note: "during drilling"}
	r.Well = &boring.Well{ScreenTop: boring.Float(10), ScreenBottom: boring.Float(20), CasingMaterial: "PVC"}

	cfg := DefaultConfig()
	a, b := Render(r, cfg), Render(r, cfg)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("second render differs (-first +second):\n%s", diff)
	}

	ja, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	jb, _ := json.Marshal(b)
	if string(ja) != string(jb) {
		t.Error("JSON output differs between renders")
	}
}

func TestRenderDoesNotMutateRecord(t *testing.T) {
	build := func() *boring.Record {
		return &boring.Record{
			Layers: []boring.Layer{
				{DepthTop: 5, DepthBottom: 10, USCS: "cl"},
				{DepthTop: 0, DepthBottom: 5, USCS: " sp "},
			},
			Samples: []boring.Sample{
				{Depth: boring.Float(7), ID: "S-2", Type: "st"},
				{Depth: boring.Float(1), ID: "S-1"},
			},
		}
	}
	r := build()
	Render(r, DefaultConfig())
	if diff := cmp.Diff(build(), r); diff != "" {
		t.Errorf("record was modified (-want +got):\n%s", diff)
	}
}

func TestColumnConditionality(t *testing.T) {
	tests := []struct {
		name     string
		layers   []boring.Layer
		odor     bool
		pid      bool
		odorText string
	}{
		{"none", []boring.Layer{{DepthTop: 0, DepthBottom: 2, USCS: "SM"}}, false, false, ""},
		{"odor none", []boring.Layer{{DepthTop: 0, DepthBottom: 2, Odor: boring.OdorNone}}, false, false, ""},
		{"odor", []boring.Layer{{DepthTop: 0, DepthBottom: 2, Odor: boring.OdorChlorinated}}, true, false, "Chlorinated"},
		{"pid", []boring.Layer{{DepthTop: 0, DepthBottom: 2, PID: boring.Float(12.5)}}, false, true, ""},
		{"both", []boring.Layer{
			{DepthTop: 0, DepthBottom: 2, Odor: boring.OdorOrganic},
			{DepthTop: 2, DepthBottom: 4, PID: boring.Float(0)},
		}, true, true, "Organic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Render(&boring.Record{Layers: tt.layers}, DefaultConfig())
			titles := texts(s.Texts(ClassColumnTitle))
			if got := slices.Contains(titles, "Odor"); got != tt.odor {
				t.Errorf("odor column = %v, want %v", got, tt.odor)
			}
			if got := slices.Contains(titles, "PID"); got != tt.pid {
				t.Errorf("pid column = %v, want %v", got, tt.pid)
			}
			if tt.odorText != "" && !s.HasText(tt.odorText) {
				t.Errorf("missing odor cell %q", tt.odorText)
			}
		})
	}
}

func TestLegendCompleteness(t *testing.T) {
	r := &boring.Record{Layers: []boring.Layer{
		{DepthTop: 0, DepthBottom: 1, USCS: "GP-GM"},
		{DepthTop: 1, DepthBottom: 2, USCS: "sm"},
		{DepthTop: 2, DepthBottom: 3, USCS: "SM"},
		{DepthTop: 3, DepthBottom: 4, USCS: "FILL"},
		{DepthTop: 4, DepthBottom: 5, USCS: "QQ"},
	}}
	s := Render(r, DefaultConfig())

	var got []string
	for _, sw := range s.Rects(ClassLegendSwatch) {
		got = append(got, sw.Title)
	}
	want := []string{"FILL", "GM", "GP", "QQ", "SM"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("legend codes mismatch (-want +got):\n%s", diff)
	}
	if !s.HasText("QQ") {
		t.Error("unknown code should be labeled with the code itself")
	}
	if !s.HasText("FILL — Fill") {
		t.Error("extended code should carry its name")
	}
}

func TestLegendSampleRow(t *testing.T) {
	r := scenarioRecord()
	r.Samples = append(r.Samples, boring.Sample{Depth: boring.Float(6), Type: "grab", ID: "G-1"})
	r.Groundwater = &boring.Groundwater{Depth: boring.Float(3)}
	s := Render(r, DefaultConfig())

	if got := len(s.Rects(ClassLegendSample)); got != 2 {
		t.Errorf("got %d sample swatches, want 2", got)
	}
	if !s.HasText("SPT — Split spoon") || !s.HasText("GRAB — Grab sample") {
		t.Errorf("sample labels = %v", texts(s.Texts(ClassLegendSampleText)))
	}
	if len(s.ByClass(ClassLegendWater)) != 1 {
		t.Error("missing groundwater swatch")
	}
}

func TestLegendSampleRowStaysInside(t *testing.T) {
	r := scenarioRecord()
	for i, typ := range []string{"ST", "CS", "MC", "GRAB", "CORE", "BULK", "DP", "VANE-SHEAR", "PISTON-TUBE"} {
		r.Samples = append(r.Samples, boring.Sample{Depth: boring.Float(float64(4 + i)), Type: typ})
	}
	r.Groundwater = &boring.Groundwater{Depth: boring.Float(3)}
	cfg := DefaultConfig()
	s := Render(r, cfg)
	g := layout.Compute(r, cfg.LayoutOptions()).Legend
	right := g.X + g.Width

	if got := len(s.Rects(ClassLegendSample)); got != 10 {
		t.Errorf("got %d sample swatches, want 10", got)
	}
	for _, rect := range s.Rects(ClassLegendSample) {
		if rect.X+rect.W > right {
			t.Errorf("sample swatch ends at %v, past legend edge %v", rect.X+rect.W, right)
		}
	}
	labels := append(s.Texts(ClassLegendSampleText), s.Texts(ClassLegendWaterText)...)
	if len(labels) != 11 {
		t.Errorf("got %d row labels, want 11", len(labels))
	}
	for _, l := range labels {
		if end := l.X + textWidth(l.Value, cfg.FontSize); end > right+0.001 {
			t.Errorf("label %q ends at %v, past legend edge %v", l.Value, end, right)
		}
	}
	water := s.ByClass(ClassLegendWater)
	if len(water) != 1 {
		t.Fatalf("got %d groundwater swatches, want 1", len(water))
	}
	for _, p := range water[0].(scene.Polygon).Points {
		if p[0] > right {
			t.Errorf("groundwater swatch point %v past legend edge %v", p, right)
		}
	}
}

func TestLegendDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HideLegend = true
	s := Render(scenarioRecord(), cfg)
	if len(s.Texts(ClassLegendTitle)) != 0 || len(s.Rects(ClassLegendSwatch)) != 0 {
		t.Error("legend drawn although disabled")
	}
}

func TestBlowsLabel(t *testing.T) {
	tests := []struct {
		name   string
		sample boring.Sample
		want   string
	}{
		{"spt", boring.Sample{Type: "SPT", Blows: []int{4, 5, 6}}, "N=11 (4-5-6)"},
		{"lower-case type", boring.Sample{Type: "spt", Blows: []int{10, 12, 15}}, "N=27 (10-12-15)"},
		{"refusal", boring.Sample{Type: "SPT", Blows: []int{50}}, "50"},
		{"not spt", boring.Sample{Type: "CS", Blows: []int{7, 9, 11}}, "7-9-11"},
		{"no blows", boring.Sample{Type: "SPT"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := blowsLabel(tt.sample); got != tt.want {
				t.Errorf("blowsLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIntervalSample(t *testing.T) {
	r := &boring.Record{
		Boring: boring.Metadata{TotalDepth: 10},
		Samples: []boring.Sample{
			{DepthTop: boring.Float(5), DepthBottom: boring.Float(5.1), ID: "S-2", Type: "ST"},
			{DepthTop: boring.Float(6), DepthBottom: boring.Float(8), ID: "S-3", Type: "ST"},
		},
	}
	cfg := DefaultConfig()
	s := Render(r, cfg)
	l := layout.Compute(r, cfg.LayoutOptions())

	markers := s.Rects(ClassSampleMarker)
	if len(markers) != 2 {
		t.Fatalf("got %d markers", len(markers))
	}
	if markers[0].Y != l.Y(5) || markers[0].H != minMarkerHeight {
		t.Errorf("thin interval marker = %+v, want min height at Y(5)", markers[0])
	}
	if markers[1].Y != l.Y(6) || markers[1].Bottom() != l.Y(8) {
		t.Errorf("interval marker spans [%v, %v], want [%v, %v]", markers[1].Y, markers[1].Bottom(), l.Y(6), l.Y(8))
	}
	if markers[1].Style.Fill != cfg.Palette.Sample {
		t.Error("non-SPT sample should use the plain sample fill")
	}

	got := texts(s.Texts(ClassSampleLabel))
	want := []string{"S-2", "5.0–5.1", "S-3", "6.0–8.0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sample labels mismatch (-want +got):\n%s", diff)
	}
}

func TestDescriptionWrapsWithinBand(t *testing.T) {
	long := strings.Repeat("silty fine sand with trace gravel ", 20)
	r := &boring.Record{
		Boring: boring.Metadata{TotalDepth: 10},
		Layers: []boring.Layer{
			{DepthTop: 0, DepthBottom: 0.5, USCS: "SM", Description: long},
			{DepthTop: 0.5, DepthBottom: 10, USCS: "CL", Description: long},
			{DepthTop: 10, DepthBottom: 10.1, USCS: "CL", Description: "outside"},
		},
	}
	cfg := DefaultConfig()
	s := Render(r, cfg)
	l := layout.Compute(r, cfg.LayoutOptions())
	desc, _ := l.Column(layout.ColDescription)

	var thin, thick int
	for _, tx := range s.Texts(ClassDescription) {
		if w := textWidth(tx.Value, tx.Size); w > desc.Width-2*cellPad && strings.Contains(tx.Value, " ") {
			t.Errorf("line %q is %v wide, column allows %v", tx.Value, w, desc.Width-2*cellPad)
		}
		if strings.HasSuffix(tx.Value, " ") || strings.HasPrefix(tx.Value, " ") {
			t.Errorf("line %q has stray spaces", tx.Value)
		}
		switch {
		case tx.Y <= l.Y(0.5):
			thin++
		case tx.Y <= l.Y(10):
			thick++
		default:
			t.Errorf("description %q drawn below the body", tx.Value)
		}
	}
	if thin != 1 {
		t.Errorf("10px band got %d lines, want 1", thin)
	}
	if thick == 0 || thick > maxLines(l.Y(10)-l.Y(0.5), cfg.FontSize) {
		t.Errorf("thick band got %d lines", thick)
	}
}

func TestDefaultDescription(t *testing.T) {
	s := Render(&boring.Record{Layers: []boring.Layer{{DepthTop: 0, DepthBottom: 5, USCS: "ML"}}}, DefaultConfig())
	if !s.HasText(boring.DefaultDescription) {
		t.Error("empty description should fall back to the default")
	}
	for _, d := range s.Texts(ClassDescription) {
		if !d.Italic || d.Fill != DefaultPalette().MutedText {
			t.Errorf("placeholder %q should be muted italic, got italic=%v fill=%q", d.Value, d.Italic, d.Fill)
		}
	}

	s = Render(&boring.Record{Layers: []boring.Layer{{DepthTop: 0, DepthBottom: 5, USCS: "ML", Description: "Sandy silt"}}}, DefaultConfig())
	for _, d := range s.Texts(ClassDescription) {
		if d.Italic {
			t.Errorf("description %q should not be italic", d.Value)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		width float64
		limit int
		want  []string
	}{
		{"fits", "one two", 100, 3, []string{"one two"}},
		{"breaks", "one two three four", 50, 5, []string{"one two", "three", "four"}},
		{"limit drops words", "one two three four", 50, 2, []string{"one two", "three"}},
		{"long word alone", "a incomprehensibilities b", 30, 5, []string{"a", "incomprehensibilities", "b"}},
		{"no budget", "one", 100, 0, nil},
		{"empty", "   ", 100, 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrap(tt.s, tt.width, 10, tt.limit)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("wrap() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMaxLines(t *testing.T) {
	tests := []struct {
		height float64
		want   int
	}{
		{5, 0}, {9.9, 0}, {10, 1}, {24, 1}, {27, 2}, {70, 5},
	}
	for _, tt := range tests {
		if got := maxLines(tt.height, 10); got != tt.want {
			t.Errorf("maxLines(%v) = %d, want %d", tt.height, got, tt.want)
		}
	}
}

func TestGroundwater(t *testing.T) {
	r := &boring.Record{
		Boring:      boring.Metadata{TotalDepth: 20},
		Groundwater: &boring.Groundwater{Depth: boring.Float(4), Note: "24 h"},
	}
	cfg := DefaultConfig()
	s := Render(r, cfg)
	l := layout.Compute(r, cfg.LayoutOptions())
	graphic, _ := l.Column(layout.ColGraphic)

	marks := s.ByClass(ClassGroundwater)
	if len(marks) != 1 {
		t.Fatalf("got %d groundwater markers", len(marks))
	}
	tri := marks[0].(scene.Polygon)
	if tip := tri.Points[2]; tip[1] != l.Y(4) || tip[0] != graphic.Center() {
		t.Errorf("triangle tip = %v, want (%v, %v)", tip, graphic.Center(), l.Y(4))
	}
	for _, p := range tri.Points {
		if p[1] > l.Y(4) {
			t.Errorf("triangle point %v below the water level", p)
		}
	}

	waves := s.ByClass(ClassGroundwaterLine)
	if len(waves) != 1 {
		t.Fatalf("got %d wave lines", len(waves))
	}
	d := waves[0].(scene.Path).D
	if want := int(graphic.Width/waveStep) * 2; strings.Count(d, "Q") != want {
		t.Errorf("wave has %d arcs, want %d", strings.Count(d, "Q"), want)
	}
	if !s.HasText("Groundwater: 4 ft (24 h)") {
		t.Errorf("footer = %v", texts(s.Texts(ClassFooter)))
	}

	s = Render(&boring.Record{Groundwater: &boring.Groundwater{Note: "dry"}}, cfg)
	if len(s.ByClass(ClassGroundwater)) != 0 {
		t.Error("groundwater without depth should not be drawn")
	}
	if !s.HasText("Groundwater: not encountered") {
		t.Error("footer should report no groundwater")
	}
}

func TestWavePath(t *testing.T) {
	if got, want := wavePath(0, 20, 5), "M0.00 5.00 Q2.50 3.00 5.00 5.00 Q7.50 7.00 10.00 5.00 Q12.50 3.00 15.00 5.00 Q17.50 7.00 20.00 5.00"; got != want {
		t.Errorf("wavePath() = %q, want %q", got, want)
	}
	if got := wavePath(0, 15, 0); !strings.HasSuffix(got, "L15.00 0.00") {
		t.Errorf("partial step should end with a straight segment: %q", got)
	}
}

func TestWellPanel(t *testing.T) {
	r := &boring.Record{
		Boring: boring.Metadata{TotalDepth: 20},
		Well: &boring.Well{
			Type:           "Monitoring well",
			CasingDiameter: boring.Float(2),
			CasingMaterial: "PVC",
			ScreenTop:      boring.Float(10),
			ScreenBottom:   boring.Float(20),
			ScreenSlotSize: "0.010",
			FilterPack:     "#2 sand",
			SealTop:        boring.Float(2),
			SealBottom:     boring.Float(8),
			SealMaterial:   "bentonite",
		},
	}
	cfg := DefaultConfig()
	s := Render(r, cfg)
	p := layout.Compute(r, cfg.LayoutOptions()).Well

	screens := s.Rects(ClassWellScreen)
	if len(screens) != 1 || screens[0].Style.Dash == "" {
		t.Fatalf("screen = %+v, want one dashed rect", screens)
	}
	if screens[0].Y != p.DepthY(10) || !near(screens[0].Bottom(), p.DepthY(20)) {
		t.Errorf("screen spans [%v, %v]", screens[0].Y, screens[0].Bottom())
	}
	if len(s.Rects(ClassWellFilterPack)) != 1 {
		t.Error("missing filter pack")
	}
	seals := s.Rects(ClassWellSeal)
	if len(seals) != 1 || seals[0].Y != p.DepthY(2) || !near(seals[0].Bottom(), p.DepthY(8)) {
		t.Errorf("seal = %+v", seals)
	}

	casing := s.ByClass(ClassWellCasing)
	if len(casing) != 2 {
		t.Fatalf("got %d casing lines, want 2", len(casing))
	}
	for _, e := range casing {
		if ln := e.(scene.Line); ln.Y2 != p.DepthY(10) {
			t.Errorf("casing ends at %v, want screen top %v", ln.Y2, p.DepthY(10))
		}
	}
	for _, want := range []string{"2 in PVC", "Slot 0.010", "Monitoring well"} {
		if !s.HasText(want) {
			t.Errorf("missing annotation %q", want)
		}
	}
}

func TestWellPanelWithoutScreen(t *testing.T) {
	r := &boring.Record{Well: &boring.Well{CasingMaterial: "Steel"}}
	cfg := DefaultConfig()
	s := Render(r, cfg)
	p := layout.Compute(r, cfg.LayoutOptions()).Well

	if len(s.Rects(ClassWellScreen)) != 0 || len(s.Rects(ClassWellSeal)) != 0 {
		t.Error("screen and seal should be omitted")
	}
	for _, e := range s.ByClass(ClassWellCasing) {
		if ln := e.(scene.Line); ln.Y2 != p.Y+p.Height/2 {
			t.Errorf("casing ends at %v, want panel midpoint %v", ln.Y2, p.Y+p.Height/2)
		}
	}

	if got := Render(&boring.Record{}, cfg); len(got.Rects(ClassWellPanel)) != 0 {
		t.Error("no well should mean no panel")
	}
}

func TestPatternsAreRegisteredOnce(t *testing.T) {
	r := &boring.Record{Layers: []boring.Layer{
		{DepthTop: 0, DepthBottom: 1, USCS: "SM"},
		{DepthTop: 1, DepthBottom: 2, USCS: "SM"},
		{DepthTop: 2, DepthBottom: 3, USCS: "GP-GM"},
	}}
	s := Render(r, DefaultConfig())

	var ids []string
	for _, p := range s.Patterns {
		ids = append(ids, p.ID)
	}
	want := []string{pattern.Lookup("SM").ID(), pattern.Lookup("GP").ID(), pattern.Lookup("GM").ID()}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("pattern defs mismatch (-want +got):\n%s", diff)
	}
	for _, b := range s.Rects(ClassSoilBand) {
		if _, ok := s.Pattern(b.Style.Pattern); !ok {
			t.Errorf("band references undefined pattern %q", b.Style.Pattern)
		}
	}
}

func TestHeaderFields(t *testing.T) {
	r := &boring.Record{Boring: boring.Metadata{
		ID:         "MW-3",
		Project:    "Harbor Site",
		Elevation:  boring.Float(102.5),
		Consultant: &boring.Consultant{Company: "Acme Geo"},
		Driller:    boring.Driller{Company: "Deep Drilling", License: "C57"},
		Date:       "2024-03-01",
	}}
	s := Render(r, DefaultConfig())
	for _, want := range []string{
		"Project: Harbor Site",
		"Elevation: 102.5 ft",
		"Consultant: Acme Geo",
		"Driller: Deep Drilling (Lic. C57)",
		"Date: 2024-03-01",
	} {
		if !s.HasText(want) {
			t.Errorf("missing header field %q; have %v", want, texts(s.Texts(ClassHeaderField)))
		}
	}
	if s.HasText("Client: ") {
		t.Error("empty fields should be skipped")
	}
	if !s.HasText("102.5") {
		t.Error("elevation scale should start at the ground elevation")
	}
}

func TestRenderNilRecord(t *testing.T) {
	s := Render(nil, Config{})
	if s.Width <= 0 || s.Height <= 0 {
		t.Errorf("scene size = %vx%v", s.Width, s.Height)
	}
	if !s.HasText("BORING LOG") {
		t.Error("title missing")
	}
}

func TestDiagram(t *testing.T) {
	d := New(DefaultConfig())
	r := scenarioRecord()
	d.SetData(r)

	if d.Data() != r {
		t.Error("Data() should return the record passed to SetData")
	}
	if got := len(d.Scene().Rects(ClassSoilBand)); got != 1 {
		t.Fatalf("got %d bands after SetData", got)
	}

	d.Data().Layers = append(d.Data().Layers, boring.Layer{DepthTop: 3.5, DepthBottom: 9, USCS: "CL"})
	if got := len(d.Scene().Rects(ClassSoilBand)); got != 1 {
		t.Error("scene should not change before Render")
	}
	d.Render()
	if got := len(d.Scene().Rects(ClassSoilBand)); got != 2 {
		t.Errorf("got %d bands after Render, want 2", got)
	}

	cfg := d.Config()
	cfg.HideLegend = true
	d.SetConfig(cfg)
	if len(d.Scene().Texts(ClassLegendTitle)) != 0 {
		t.Error("SetConfig should re-render with the new configuration")
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{Palette: Palette{Border: "#000"}}.withDefaults()
	if cfg.Palette.Border != "#000" {
		t.Errorf("Border = %q, want override kept", cfg.Palette.Border)
	}
	def := DefaultPalette()
	if cfg.Palette.Groundwater != def.Groundwater || cfg.FontSize != DefaultConfig().FontSize {
		t.Error("unset fields should fall back to defaults")
	}

	cfg = DefaultConfig()
	cfg.ColumnWidths = map[layout.ColumnID]float64{layout.ColDescription: 400}
	opts := cfg.LayoutOptions()
	if opts.ColumnWidths[layout.ColDescription] != 400 || opts.ColumnWidths[layout.ColDepth] != 50 {
		t.Errorf("ColumnWidths = %v", opts.ColumnWidths)
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func texts(ts []scene.Text) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Value
	}
	return out
}

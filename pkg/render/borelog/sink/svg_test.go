package sink

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/render/borelog"
	"github.com/matzehuels/stratalog/pkg/render/borelog/scene"
)

func sampleScene() scene.Scene {
	r := &boring.Record{
		Boring: boring.Metadata{ID: "B-1 <east> & co", TotalDepth: 12},
		Layers: []boring.Layer{
			{DepthTop: 0, DepthBottom: 4, USCS: "SM", Description: "Silty sand, \"loose\""},
			{DepthTop: 4, DepthBottom: 12, USCS: "CL-ML"},
		},
		Samples:     []boring.Sample{{Depth: boring.Float(2), Type: "SPT", ID: "S-1", Blows: []int{2, 3, 4}}},
		Groundwater: &boring.Groundwater{Depth: boring.Float(6)},
		Well:        &boring.Well{ScreenTop: boring.Float(5), ScreenBottom: boring.Float(10)},
	}
	return borelog.Render(r, borelog.DefaultConfig())
}

// wellFormed decodes the whole document and counts start elements by name.
func wellFormed(t *testing.T, data []byte) map[string]int {
	t.Helper()
	counts := make(map[string]int)
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return counts
		}
		if err != nil {
			t.Fatalf("SVG is not well-formed: %v", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			counts[se.Name.Local]++
		}
	}
}

func TestSVGWellFormed(t *testing.T) {
	s := sampleScene()
	out := SVG(s, WithTitle("B-1"), WithInteractive())
	counts := wellFormed(t, out)

	if counts["svg"] != 1 {
		t.Errorf("got %d <svg> elements", counts["svg"])
	}
	if counts["pattern"] != len(s.Patterns) {
		t.Errorf("got %d <pattern> defs, want %d", counts["pattern"], len(s.Patterns))
	}
	if counts["style"] != 1 {
		t.Error("interactive output should carry a <style> block")
	}

	var texts int
	for _, e := range s.Elements {
		if e.Kind() == "text" {
			texts++
		}
	}
	if counts["text"] != texts {
		t.Errorf("got %d <text>, want %d", counts["text"], texts)
	}
}

func TestSVGEscapesText(t *testing.T) {
	out := string(SVG(sampleScene()))
	if strings.Contains(out, "<east>") {
		t.Error("raw markup leaked into the document")
	}
	if !strings.Contains(out, "B-1 &lt;east&gt; &amp; co") {
		t.Error("escaped title missing")
	}
}

func TestSVGTextAttributes(t *testing.T) {
	var s scene.Scene
	s.Width, s.Height = 100, 50
	s.Add(scene.Text{X: 5, Y: 10, Value: "No description", Size: 10, Italic: true, Fill: "#777777"})
	s.Add(scene.Text{X: 5, Y: 30, Value: "SM", Size: 10, Bold: true, Anchor: scene.AnchorMiddle})

	out := string(SVG(s))
	for _, want := range []string{
		`font-style="italic" fill="#777777">No description</text>`,
		`text-anchor="middle" font-weight="bold">SM</text>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestSVGPatternReferences(t *testing.T) {
	s := sampleScene()
	out := string(SVG(s))
	for _, b := range s.Rects(borelog.ClassSoilBand) {
		if !strings.Contains(out, `fill="url(#`+b.Style.Pattern+`)"`) {
			t.Errorf("band does not reference pattern %q", b.Style.Pattern)
		}
		if !strings.Contains(out, `<pattern id="`+b.Style.Pattern+`"`) {
			t.Errorf("pattern %q not defined", b.Style.Pattern)
		}
	}
}

func TestSVGClasses(t *testing.T) {
	s := sampleScene()
	if out := string(SVG(s)); !strings.Contains(out, `class="soil-band"`) {
		t.Error("class attributes missing")
	}
	if out := string(SVG(s, WithoutClasses())); strings.Contains(out, "class=") {
		t.Error("WithoutClasses should drop class attributes")
	}
}

func TestSVGIsDeterministic(t *testing.T) {
	if !bytes.Equal(SVG(sampleScene()), SVG(sampleScene())) {
		t.Error("SVG output differs between identical scenes")
	}
}

func TestStyle(t *testing.T) {
	tests := []struct {
		name  string
		style scene.Style
		want  string
	}{
		{"empty", scene.Style{}, ` fill="none"`},
		{"fill", scene.Style{Fill: "#fff"}, ` fill="#fff"`},
		{"pattern wins", scene.Style{Fill: "#fff", Pattern: "pat-sm"}, ` fill="url(#pat-sm)"`},
		{"stroke", scene.Style{Stroke: "#000", StrokeWidth: 1.5}, ` fill="none" stroke="#000" stroke-width="1.5"`},
		{"dash", scene.Style{Stroke: "#000", Dash: "3,2"}, ` fill="none" stroke="#000" stroke-dasharray="3,2"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := style(tt.style); got != tt.want {
				t.Errorf("style() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"}, {170, "170"}, {3.5, "3.5"}, {1.0 / 3, "0.33"}, {228.40000000000001, "228.4"},
	}
	for _, tt := range tests {
		if got := f(tt.in); got != tt.want {
			t.Errorf("f(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJSON(t *testing.T) {
	s := sampleScene()
	for _, opts := range [][]JSONOption{nil, {WithIndent()}} {
		data, err := JSON(s, opts...)
		if err != nil {
			t.Fatalf("JSON: %v", err)
		}
		var out struct {
			Width    float64           `json:"width"`
			Patterns []json.RawMessage `json:"patterns"`
			Elements []json.RawMessage `json:"elements"`
		}
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if out.Width != s.Width || len(out.Elements) != len(s.Elements) || len(out.Patterns) != len(s.Patterns) {
			t.Errorf("JSON lost content: width=%v elements=%d patterns=%d", out.Width, len(out.Elements), len(out.Patterns))
		}
	}
}

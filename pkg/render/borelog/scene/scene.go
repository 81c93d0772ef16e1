// Package scene defines the vector scene graph produced by the boring log
// renderer: an ordered list of draw commands plus the fill patterns they
// reference.
//
// A scene is a plain value. It carries no drawing logic and can be compared,
// queried in tests, serialized to JSON, or handed to a sink that turns it into
// SVG (see package sink).
package scene

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/stratalog/pkg/render/borelog/pattern"
)

// Element is a single draw command.
type Element interface {
	// Kind names the command ("rect", "line", "text", "path", "polygon").
	Kind() string
	// Classname is the semantic role used for styling and queries.
	Classname() string
}

// Style describes stroke and fill. An empty Fill means no fill; a non-empty
// Pattern overrides Fill with a reference to a pattern definition.
type Style struct {
	Fill        string  `json:"fill,omitempty"`
	Pattern     string  `json:"pattern,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Dash        string  `json:"dash,omitempty"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Class      string  `json:"class,omitempty"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	W          float64 `json:"w"`
	H          float64 `json:"h"`
	Style      Style   `json:"style"`
	Title      string  `json:"title,omitempty"` // tooltip
	DataRecord string  `json:"data,omitempty"`  // identifier of the record item drawn
}

// Line is a straight segment.
type Line struct {
	Class string  `json:"class,omitempty"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Style Style   `json:"style"`
}

// Anchor is the horizontal text alignment.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Text is a single line of text. Y is the baseline unless Middle is set, in
// which case the text is vertically centered on Y.
type Text struct {
	Class  string  `json:"class,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Value  string  `json:"value"`
	Size   float64 `json:"size"`
	Anchor Anchor  `json:"anchor,omitempty"`
	Middle bool    `json:"middle,omitempty"`
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
	Fill   string  `json:"fill,omitempty"`
}

// Path is an SVG path.
type Path struct {
	Class string `json:"class,omitempty"`
	D     string `json:"d"`
	Style Style  `json:"style"`
}

// Polygon is a closed shape through Points.
type Polygon struct {
	Class  string       `json:"class,omitempty"`
	Points [][2]float64 `json:"points"`
	Style  Style        `json:"style"`
}

func (Rect) Kind() string    { return "rect" }
func (Line) Kind() string    { return "line" }
func (Text) Kind() string    { return "text" }
func (Path) Kind() string    { return "path" }
func (Polygon) Kind() string { return "polygon" }

func (r Rect) Classname() string    { return r.Class }
func (l Line) Classname() string    { return l.Class }
func (t Text) Classname() string    { return t.Class }
func (p Path) Classname() string    { return p.Class }
func (p Polygon) Classname() string { return p.Class }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Bottom returns the y of the rectangle's lower edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// PatternDef is a tile referenced by Style.Pattern.
type PatternDef struct {
	ID   string       `json:"id"`
	Tile pattern.Tile `json:"tile"`
}

// Scene is a complete diagram.
type Scene struct {
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	FontFamily string       `json:"fontFamily,omitempty"`
	Background string       `json:"background,omitempty"`
	Patterns   []PatternDef `json:"patterns,omitempty"`
	Elements   []Element    `json:"-"`
}

// Add appends elements in drawing order.
func (s *Scene) Add(els ...Element) { s.Elements = append(s.Elements, els...) }

// ByClass returns the elements with the given class, in drawing order.
func (s Scene) ByClass(class string) []Element {
	var out []Element
	for _, e := range s.Elements {
		if e.Classname() == class {
			out = append(out, e)
		}
	}
	return out
}

// Rects returns the rectangles with the given class.
func (s Scene) Rects(class string) []Rect {
	var out []Rect
	for _, e := range s.Elements {
		if r, ok := e.(Rect); ok && r.Class == class {
			out = append(out, r)
		}
	}
	return out
}

// Texts returns the text elements with the given class.
func (s Scene) Texts(class string) []Text {
	var out []Text
	for _, e := range s.Elements {
		if t, ok := e.(Text); ok && t.Class == class {
			out = append(out, t)
		}
	}
	return out
}

// HasText reports whether any text element has exactly the value v.
func (s Scene) HasText(v string) bool {
	for _, e := range s.Elements {
		if t, ok := e.(Text); ok && t.Value == v {
			return true
		}
	}
	return false
}

// Pattern returns the definition with the given id.
func (s Scene) Pattern(id string) (PatternDef, bool) {
	for _, p := range s.Patterns {
		if p.ID == id {
			return p, true
		}
	}
	return PatternDef{}, false
}

// MarshalJSON encodes the scene with each element tagged by its kind.
func (s Scene) MarshalJSON() ([]byte, error) {
	type plain Scene
	head, err := json.Marshal(plain(s))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(head[:len(head)-1])
	buf.WriteString(`,"elements":[`)
	for i, e := range s.Elements {
		if i > 0 {
			buf.WriteByte(',')
		}
		body, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		fmt.Fprintf(&buf, `{"kind":%q`, e.Kind())
		if len(body) > 2 {
			buf.WriteByte(',')
			buf.Write(body[1 : len(body)-1])
		}
		buf.WriteByte('}')
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

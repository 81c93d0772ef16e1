package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/stratalog/pkg/render/borelog/pattern"
	"github.com/matzehuels/stratalog/pkg/render/borelog/scene"
)

const hoverCSS = `
    .soil-band { transition: opacity 0.15s ease; }
    .soil-band:hover { opacity: 0.75; }
    .sample-marker:hover { stroke-width: 2; }`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	interactive bool
	classes     bool
	title       string
}

// WithInteractive adds hover styling for bands and sample markers.
func WithInteractive() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithoutClasses omits class attributes for the smallest possible output.
func WithoutClasses() SVGOption { return func(r *svgRenderer) { r.classes = false } }

// WithTitle sets the document <title>.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// SVG serializes the scene as a standalone SVG document.
func SVG(s scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{classes: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f"`,
		f(s.Width), f(s.Height), s.Width, s.Height)
	if s.FontFamily != "" {
		fmt.Fprintf(&buf, ` font-family="%s"`, escapeXML(s.FontFamily))
	}
	buf.WriteString(">\n")
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}

	renderDefs(&buf, s.Patterns, r.interactive)
	for _, e := range s.Elements {
		r.renderElement(&buf, e)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer, defs []scene.PatternDef, interactive bool) {
	if len(defs) == 0 && !interactive {
		return
	}
	buf.WriteString("  <defs>\n")
	if interactive {
		fmt.Fprintf(buf, "    <style>%s\n    </style>\n", hoverCSS)
	}
	for _, d := range defs {
		renderPattern(buf, d)
	}
	buf.WriteString("  </defs>\n")
}

func renderPattern(buf *bytes.Buffer, d scene.PatternDef) {
	t := d.Tile
	fmt.Fprintf(buf, `    <pattern id="%s" patternUnits="userSpaceOnUse" width="%s" height="%s">`+"\n",
		escapeXML(d.ID), f(pattern.Size), f(pattern.Size))
	fmt.Fprintf(buf, `      <rect width="%s" height="%s" fill="%s"/>`+"\n", f(pattern.Size), f(pattern.Size), escapeXML(t.Background))
	for _, p := range t.Primitives {
		width := p.Width
		if width == 0 {
			width = 1
		}
		switch p.Kind {
		case pattern.Circle:
			fill := "none"
			if p.Filled {
				fill = t.Color
			}
			fmt.Fprintf(buf, `      <circle cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
				f(p.CX), f(p.CY), f(p.R), escapeXML(fill), escapeXML(t.Color), f(width))
		case pattern.Line:
			fmt.Fprintf(buf, `      <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
				f(p.X1), f(p.Y1), f(p.X2), f(p.Y2), escapeXML(t.Color), f(width))
		case pattern.Path:
			fill := "none"
			if p.Filled {
				fill = t.Color
			}
			fmt.Fprintf(buf, `      <path d="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
				escapeXML(p.D), escapeXML(fill), escapeXML(t.Color), f(width))
		}
	}
	buf.WriteString("    </pattern>\n")
}

func (r *svgRenderer) renderElement(buf *bytes.Buffer, e scene.Element) {
	switch el := e.(type) {
	case scene.Rect:
		fmt.Fprintf(buf, `  <rect%s x="%s" y="%s" width="%s" height="%s"%s`,
			r.class(el.Class), f(el.X), f(el.Y), f(el.W), f(el.H), style(el.Style))
		if el.DataRecord != "" {
			fmt.Fprintf(buf, ` data-record="%s"`, escapeXML(el.DataRecord))
		}
		if el.Title != "" {
			fmt.Fprintf(buf, "><title>%s</title></rect>\n", escapeXML(el.Title))
			return
		}
		buf.WriteString("/>\n")
	case scene.Line:
		fmt.Fprintf(buf, `  <line%s x1="%s" y1="%s" x2="%s" y2="%s"%s/>`+"\n",
			r.class(el.Class), f(el.X1), f(el.Y1), f(el.X2), f(el.Y2), style(el.Style))
	case scene.Path:
		fmt.Fprintf(buf, `  <path%s d="%s"%s/>`+"\n", r.class(el.Class), escapeXML(el.D), style(el.Style))
	case scene.Polygon:
		pts := make([]string, len(el.Points))
		for i, p := range el.Points {
			pts[i] = f(p[0]) + "," + f(p[1])
		}
		fmt.Fprintf(buf, `  <polygon%s points="%s"%s/>`+"\n", r.class(el.Class), strings.Join(pts, " "), style(el.Style))
	case scene.Text:
		r.renderText(buf, el)
	}
}

func (r *svgRenderer) renderText(buf *bytes.Buffer, t scene.Text) {
	fmt.Fprintf(buf, `  <text%s x="%s" y="%s" font-size="%s"`, r.class(t.Class), f(t.X), f(t.Y), f(t.Size))
	if t.Anchor != "" && t.Anchor != scene.AnchorStart {
		fmt.Fprintf(buf, ` text-anchor="%s"`, t.Anchor)
	}
	if t.Middle {
		buf.WriteString(` dominant-baseline="central"`)
	}
	if t.Bold {
		buf.WriteString(` font-weight="bold"`)
	}
	if t.Italic {
		buf.WriteString(` font-style="italic"`)
	}
	if t.Fill != "" {
		fmt.Fprintf(buf, ` fill="%s"`, escapeXML(t.Fill))
	}
	fmt.Fprintf(buf, ">%s</text>\n", escapeXML(t.Value))
}

func (r *svgRenderer) class(c string) string {
	if !r.classes || c == "" {
		return ""
	}
	return ` class="` + escapeXML(c) + `"`
}

func style(s scene.Style) string {
	var b strings.Builder
	switch {
	case s.Pattern != "":
		fmt.Fprintf(&b, ` fill="url(#%s)"`, escapeXML(s.Pattern))
	case s.Fill != "":
		fmt.Fprintf(&b, ` fill="%s"`, escapeXML(s.Fill))
	default:
		b.WriteString(` fill="none"`)
	}
	if s.Stroke != "" {
		fmt.Fprintf(&b, ` stroke="%s"`, escapeXML(s.Stroke))
		if s.StrokeWidth > 0 {
			fmt.Fprintf(&b, ` stroke-width="%s"`, f(s.StrokeWidth))
		}
	}
	if s.Dash != "" {
		fmt.Fprintf(&b, ` stroke-dasharray="%s"`, escapeXML(s.Dash))
	}
	return b.String()
}

// f formats a coordinate with at most two decimals and no trailing zeros.
func f(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

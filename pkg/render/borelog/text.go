package borelog

import (
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	charWidthRatio = 0.55 // average glyph advance relative to font size
	lineSpacing    = 1.25
)

var titleCaser = cases.Title(language.English)

// textWidth estimates the rendered width of s at the given font size.
func textWidth(s string, size float64) float64 {
	return float64(runewidth.StringWidth(s)) * size * charWidthRatio
}

// maxLines returns how many lines of text fit into height. A band at least
// one font size tall always gets one line.
func maxLines(height, size float64) int {
	n := int(math.Floor((height - 2) / (size * lineSpacing)))
	if n < 1 && height >= size {
		n = 1
	}
	return max(n, 0)
}

// wrap breaks s into lines no wider than width, stopping after limit lines.
// Words are never split; a single word wider than the column gets a line of
// its own. Words that do not fit into the line budget are dropped.
func wrap(s string, width, size float64, limit int) []string {
	if limit <= 0 {
		return nil
	}
	var (
		lines []string
		cur   strings.Builder
	)
	for _, word := range strings.Fields(s) {
		if cur.Len() == 0 {
			cur.WriteString(word)
			continue
		}
		if textWidth(cur.String()+" "+word, size) <= width {
			cur.WriteByte(' ')
			cur.WriteString(word)
			continue
		}
		lines = append(lines, cur.String())
		if len(lines) == limit {
			return lines
		}
		cur.Reset()
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// fitLabel shortens s with an ellipsis until it fits into width.
func fitLabel(s string, width, size float64) string {
	if textWidth(s, size) <= width {
		return s
	}
	return runewidth.Truncate(s, max(int(width/(size*charWidthRatio)), 1), "…")
}

// num formats v with as few digits as needed.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// depthRange formats an interval for labels.
func depthRange(top, bottom float64) string {
	return strconv.FormatFloat(top, 'f', 1, 64) + "–" + strconv.FormatFloat(bottom, 'f', 1, 64)
}

// display title-cases an enum value such as "saturated" or "petroleum".
func display(v string) string {
	if v == "" {
		return ""
	}
	return titleCaser.String(v)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

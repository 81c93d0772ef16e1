// Package pattern maps soil and material classification codes to tileable
// fill patterns for the soil-graphic column of a boring log.
//
// Every tile lives on a fixed [Size]×[Size] grid and is described by a fill
// color plus a handful of geometric primitives, so it scales uniformly with
// whatever column width the layout produces.
//
// [Lookup] never fails: codes resolve against the standard USCS table, then
// the extended material table, then the first component of a dual code
// ("GP-GM" → "GP"), and finally the generic [Default] cross-hatch.
package pattern

import (
	"slices"
	"strings"
)

// Size is the edge length of every tile in user units.
const Size = 16.0

// Kind identifies a tile primitive.
type Kind uint8

const (
	Circle Kind = iota // CX, CY, R
	Line               // X1, Y1, X2, Y2
	Path               // D
)

// Primitive is one shape drawn inside a tile.
type Primitive struct {
	Kind   Kind    `json:"kind"`
	CX     float64 `json:"cx,omitempty"`
	CY     float64 `json:"cy,omitempty"`
	R      float64 `json:"r,omitempty"`
	X1     float64 `json:"x1,omitempty"`
	Y1     float64 `json:"y1,omitempty"`
	X2     float64 `json:"x2,omitempty"`
	Y2     float64 `json:"y2,omitempty"`
	D      string  `json:"d,omitempty"`
	Filled bool    `json:"filled,omitempty"`
	Width  float64 `json:"width,omitempty"`
}

// Tile is a complete fill pattern.
type Tile struct {
	Code       string      `json:"code"`
	Name       string      `json:"name"`
	Background string      `json:"background"`
	Color      string      `json:"color"`
	Primitives []Primitive `json:"primitives"`
}

// ID returns a stable identifier usable as an SVG element id.
func (t Tile) ID() string {
	var b strings.Builder
	b.WriteString("pat-")
	for _, r := range strings.ToLower(t.Code) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// DefaultCode is the code carried by the fallback tile.
const DefaultCode = "DEFAULT"

// Default is the generic cross-hatch used for unrecognized codes.
var Default = Tile{
	Code:       DefaultCode,
	Name:       "Unclassified",
	Background: "#f2f2f2",
	Color:      "#777777",
	Primitives: []Primitive{
		line(0, 0, 16, 16, 0.6),
		line(16, 0, 0, 16, 0.6),
	},
}

// Lookup resolves a code to its tile. The code may be in any case and may be a
// dual code joined by a hyphen.
func Lookup(code string) Tile {
	code = normalize(code)
	if code == "" {
		return Default
	}
	if t, ok := find(code); ok {
		return t
	}
	if first, _, ok := strings.Cut(code, "-"); ok {
		if t, ok := find(strings.TrimSpace(first)); ok {
			return t
		}
	}
	return Default
}

// Describe returns the human-readable name of a single code. ok is false when
// the code is not in either table.
func Describe(code string) (name string, ok bool) {
	t, ok := find(normalize(code))
	if !ok {
		return "", false
	}
	return t.Name, true
}

// Known reports whether code has its own tile (exact match only).
func Known(code string) bool {
	_, ok := find(normalize(code))
	return ok
}

// Split returns the constituent codes of a possibly dual code, normalized and
// without empties. A code that is itself in a table is not split.
func Split(code string) []string {
	code = normalize(code)
	if code == "" {
		return nil
	}
	if Known(code) || !strings.Contains(code, "-") {
		return []string{code}
	}
	var parts []string
	for p := range strings.SplitSeq(code, "-") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// Codes returns every code with a dedicated tile, sorted.
func Codes() []string {
	codes := make([]string, 0, len(standard)+len(extended))
	for c := range standard {
		codes = append(codes, c)
	}
	for c := range extended {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// IsStandard reports whether code is one of the USCS group symbols.
func IsStandard(code string) bool {
	_, ok := standard[normalize(code)]
	return ok
}

func normalize(code string) string { return strings.ToUpper(strings.TrimSpace(code)) }

func find(code string) (Tile, bool) {
	if t, ok := standard[code]; ok {
		return t, true
	}
	t, ok := extended[code]
	return t, ok
}

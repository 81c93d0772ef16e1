package pattern

import "fmt"

// The tables below are built once at package load and never modified.

var standard = index(
	// Gravels: paired circles.
	tile("GW", "Well-graded gravel", "#fbe9c6", "#8a6d3b", pairedCircles(2.2)...),
	tile("GP", "Poorly graded gravel", "#fdf1d6", "#8a6d3b", pairedCircles(3)...),
	tile("GM", "Silty gravel", "#f3e3c3", "#7a5f33", append(pairedCircles(2.2), line(0, 14, 16, 14, 0.6))...),
	tile("GC", "Clayey gravel", "#ecdcbf", "#6f5530", append(pairedCircles(2.2), line(0, 16, 16, 0, 0.6))...),

	// Sands: scattered dots.
	tile("SW", "Well-graded sand", "#fff6d5", "#9c7a2e", scatteredDots(6)...),
	tile("SP", "Poorly graded sand", "#fffae6", "#9c7a2e", scatteredDots(4)...),
	tile("SM", "Silty sand", "#f8edc8", "#8c6d2a", append(scatteredDots(4), line(0, 12, 16, 12, 0.6))...),
	tile("SC", "Clayey sand", "#f1e4c0", "#80622a", append(scatteredDots(4), line(0, 16, 16, 0, 0.6))...),

	// Silts: horizontal lines.
	tile("ML", "Silt", "#eef0dc", "#6b6b47", horizontalLines(2)...),
	tile("MH", "Elastic silt", "#e5e8cf", "#5f5f3d", horizontalLines(4)...),

	// Clays: diagonal lines at two densities.
	tile("CL", "Lean clay", "#e3eadb", "#4f6b45", diagonalLines(2)...),
	tile("CH", "Fat clay", "#d6e0cc", "#435c3a", diagonalLines(4)...),

	// Organics: wavy path.
	tile("OL", "Organic silt", "#e6e0d3", "#5b4a32", wavy(2)...),
	tile("OH", "Organic clay", "#ddd5c5", "#4d3e29", wavy(3)...),

	// Peat: vertical grass-like strokes.
	tile("PT", "Peat", "#d9cdb8", "#3f5b2a", grass()...),
)

var extended = index(
	tile("TOPSOIL", "Topsoil", "#d8c8a8", "#3f5b2a", append(grass(), dot(4, 13), dot(12, 13))...),
	tile("FILL", "Fill", "#e7e1dc", "#5d5550",
		line(0, 0, 16, 16, 0.6), line(16, 0, 0, 16, 0.6), circle(8, 4, 1.6, false), dot(4, 11)),
	tile("ROCK", "Rock", "#d7d7d7", "#555555", brick()...),
	tile("BEDROCK", "Bedrock", "#cccccc", "#444444", append(brick(), line(0, 0, 8, 8, 0.5))...),
	tile("SANDSTONE", "Sandstone", "#efe1c1", "#7a6540", append(brick(), dot(4, 4), dot(12, 12))...),
	tile("SHALE", "Shale", "#d4d2c8", "#4a4a40", line(0, 3, 10, 3, 0.8), line(6, 8, 16, 8, 0.8), line(0, 13, 10, 13, 0.8)),
	tile("LIMESTONE", "Limestone", "#e4e8ea", "#556066", append(brick(), line(4, 0, 4, 8, 0.5))...),
	tile("CONCRETE", "Concrete", "#e0e0e0", "#666666", dot(3, 3), dot(11, 6), circle(6, 11, 1.5, false), dot(13, 13)),
	tile("ASPHALT", "Asphalt", "#5a5a5a", "#222222", dot(4, 4), dot(12, 4), dot(8, 10), dot(2, 14), dot(14, 14)),
	tile("UNKNOWN", "Unknown", "#f5f5f5", "#999999", line(0, 8, 16, 8, 0.5), line(8, 0, 8, 16, 0.5)),
)

func index(tiles ...Tile) map[string]Tile {
	m := make(map[string]Tile, len(tiles))
	for _, t := range tiles {
		m[t.Code] = t
	}
	return m
}

func tile(code, name, bg, color string, prims ...Primitive) Tile {
	return Tile{Code: code, Name: name, Background: bg, Color: color, Primitives: prims}
}

func line(x1, y1, x2, y2, w float64) Primitive {
	return Primitive{Kind: Line, X1: x1, Y1: y1, X2: x2, Y2: y2, Width: w}
}

func circle(cx, cy, r float64, filled bool) Primitive {
	return Primitive{Kind: Circle, CX: cx, CY: cy, R: r, Filled: filled, Width: 0.6}
}

func dot(cx, cy float64) Primitive { return circle(cx, cy, 0.7, true) }

func path(d string, w float64) Primitive { return Primitive{Kind: Path, D: d, Width: w} }

func pairedCircles(r float64) []Primitive {
	return []Primitive{circle(4, 5, r, false), circle(12, 11, r, false)}
}

// scatteredDots places n dots (at most 6) at fixed offsets.
func scatteredDots(n int) []Primitive {
	pts := [][2]float64{{3, 3}, {11, 5}, {6, 10}, {14, 13}, {2, 14}, {9, 1}}
	n = min(n, len(pts))
	out := make([]Primitive, 0, n)
	for _, p := range pts[:n] {
		out = append(out, dot(p[0], p[1]))
	}
	return out
}

func horizontalLines(n int) []Primitive {
	out := make([]Primitive, 0, n)
	step := Size / float64(n)
	for i := range n {
		y := step*float64(i) + step/2
		out = append(out, line(0, y, Size, y, 0.7))
	}
	return out
}

func diagonalLines(n int) []Primitive {
	if n <= 1 {
		return []Primitive{line(0, Size, Size, 0, 0.7)}
	}
	out := []Primitive{line(0, Size, Size, 0, 0.7)}
	step := Size / float64(n/2+1)
	for i := 1; i <= n/2; i++ {
		o := step * float64(i)
		out = append(out, line(0, Size-o, Size-o, 0, 0.7), line(o, Size, Size, o, 0.7))
	}
	return out
}

// wavy stacks n wave rows across the tile.
func wavy(n int) []Primitive {
	out := make([]Primitive, 0, n)
	step := Size / float64(n)
	for i := range n {
		y := step*float64(i) + step/2
		out = append(out, path(fmt.Sprintf("M0 %g Q4 %g 8 %g T16 %g", y, y-2, y, y), 0.7))
	}
	return out
}

func grass() []Primitive {
	return []Primitive{
		line(3, 10, 3, 4, 0.8), line(3, 10, 1, 5, 0.6), line(3, 10, 5, 5, 0.6),
		line(11, 10, 11, 4, 0.8), line(11, 10, 9, 5, 0.6), line(11, 10, 13, 5, 0.6),
	}
}

func brick() []Primitive {
	return []Primitive{
		line(0, 0, 16, 0, 0.7), line(0, 8, 16, 8, 0.7),
		line(8, 0, 8, 8, 0.7), line(0, 8, 0, 16, 0.7),
	}
}

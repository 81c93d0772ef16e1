package boring

// SampleTypeSPT is the split-spoon Standard Penetration Test sampler.
const SampleTypeSPT = "SPT"

// Sample is a retrieved soil sample. Its depth is either a single Depth or a
// DepthTop/DepthBottom interval; use Position rather than reading the fields.
type Sample struct {
	Depth       *float64 `json:"depth,omitempty"`
	DepthTop    *float64 `json:"depthTop,omitempty"`
	DepthBottom *float64 `json:"depthBottom,omitempty"`
	Type        string   `json:"type,omitempty"`
	ID          string   `json:"id"`
	Blows       []int    `json:"blows,omitempty"`
	Recovery    *float64 `json:"recovery,omitempty"`
}

// Position is the resolved depth of a sample. For point samples Top equals
// Bottom and Interval is false.
type Position struct {
	Top, Bottom float64
	Interval    bool
}

// Center returns the midpoint of the position.
func (p Position) Center() float64 { return (p.Top + p.Bottom) / 2 }

// Position resolves the depth representation. An interval needs both bounds
// and wins over a point depth; a lone bound degrades to a point.
func (s Sample) Position() Position {
	switch {
	case s.DepthTop != nil && s.DepthBottom != nil:
		top, bottom := *s.DepthTop, *s.DepthBottom
		if bottom < top {
			top, bottom = bottom, top
		}
		return Position{Top: top, Bottom: bottom, Interval: true}
	case s.Depth != nil:
		return Position{Top: *s.Depth, Bottom: *s.Depth}
	case s.DepthTop != nil:
		return Position{Top: *s.DepthTop, Bottom: *s.DepthTop}
	case s.DepthBottom != nil:
		return Position{Top: *s.DepthBottom, Bottom: *s.DepthBottom}
	}
	return Position{}
}

// Key returns the depth used for de-duplication: the point depth, or the top
// of the interval.
func (s Sample) Key() float64 {
	if s.Depth != nil {
		return *s.Depth
	}
	return s.Position().Top
}

// IsSPT reports whether the sample came from a split-spoon drive.
func (s Sample) IsSPT() bool { return NormalizeCode(s.Type) == SampleTypeSPT }

// NValue returns the SPT N-value: the blows of the second and third 6-inch
// increments. The first increment is seating and does not count. ok is false
// unless exactly three blow counts are recorded.
func (s Sample) NValue() (n int, ok bool) {
	if len(s.Blows) != 3 {
		return 0, false
	}
	return s.Blows[1] + s.Blows[2], true
}

package boring

import (
	"cmp"
	"slices"
	"strings"
)

// DefaultTotalDepth is used when neither the record nor its contents give a depth.
const DefaultTotalDepth = 30.0

// DefaultDescription replaces empty layer descriptions.
const DefaultDescription = "No description"

// Record is one boring log.
type Record struct {
	Boring      Metadata     `json:"boring"`
	Layers      []Layer      `json:"layers,omitempty"`
	Samples     []Sample     `json:"samples,omitempty"`
	Groundwater *Groundwater `json:"groundwater,omitempty"`
	Well        *Well        `json:"well,omitempty"`
}

// Metadata describes the boring itself. Only ID is required.
type Metadata struct {
	ID             string      `json:"id"`
	Project        string      `json:"project,omitempty"`
	Client         string      `json:"client,omitempty"`
	Date           string      `json:"date,omitempty"`
	DateStart      string      `json:"dateStart,omitempty"`
	DateComplete   string      `json:"dateComplete,omitempty"`
	Time           string      `json:"time,omitempty"`
	Weather        string      `json:"weather,omitempty"`
	Elevation      *float64    `json:"elevation,omitempty"`
	Location       *Location   `json:"location,omitempty"`
	Consultant     *Consultant `json:"consultant,omitempty"`
	Driller        Driller     `json:"driller,omitzero"`
	Equipment      string      `json:"equipment,omitempty"`
	DrillingMethod string      `json:"drillingMethod,omitempty"`
	LoggedBy       string      `json:"loggedBy,omitempty"`
	TotalDepth     float64     `json:"totalDepth,omitempty"`
}

// Location is a coordinate pair with the name of its coordinate system.
type Location struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	System string  `json:"system,omitempty"`
}

// Consultant is the firm responsible for the investigation.
type Consultant struct {
	Company string `json:"company,omitempty"`
	Contact string `json:"contact,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// IsZero reports whether no consultant field is set.
func (c *Consultant) IsZero() bool {
	return c == nil || (c.Company == "" && c.Contact == "" && c.Phone == "")
}

// Moisture is the field moisture condition of a layer.
type Moisture string

const (
	MoistureDry       Moisture = "dry"
	MoistureMoist     Moisture = "moist"
	MoistureWet       Moisture = "wet"
	MoistureSaturated Moisture = "saturated"
)

// MoistureValues lists the recognized moisture conditions.
var MoistureValues = []string{"dry", "moist", "wet", "saturated"}

// Odor is the field odor observation of a layer.
type Odor string

const (
	OdorNone        Odor = "none"
	OdorPetroleum   Odor = "petroleum"
	OdorChlorinated Odor = "chlorinated"
	OdorOrganic     Odor = "organic"
	OdorOther       Odor = "other"
)

// OdorValues lists the recognized odor observations.
var OdorValues = []string{"none", "petroleum", "chlorinated", "organic", "other"}

// Present reports whether the odor is an actual observation.
func (o Odor) Present() bool { return o != "" && o != OdorNone }

// Layer is a soil interval.
type Layer struct {
	DepthTop    float64  `json:"depthTop"`
	DepthBottom float64  `json:"depthBottom"`
	USCS        string   `json:"uscs"`
	Description string   `json:"description,omitempty"`
	Moisture    Moisture `json:"moisture,omitempty"`
	Odor        Odor     `json:"odor,omitempty"`
	PID         *float64 `json:"pid,omitempty"`
}

// Groundwater records the depth at which water was encountered.
type Groundwater struct {
	Depth *float64 `json:"depth,omitempty"`
	Note  string   `json:"note,omitempty"`
}

// Well describes monitoring-well construction. Depths are below ground surface.
type Well struct {
	Type           string   `json:"type,omitempty"`
	CasingDiameter *float64 `json:"casingDiameter,omitempty"`
	CasingMaterial string   `json:"casingMaterial,omitempty"`
	ScreenTop      *float64 `json:"screenTop,omitempty"`
	ScreenBottom   *float64 `json:"screenBottom,omitempty"`
	ScreenSlotSize string   `json:"screenSlotSize,omitempty"`
	FilterPack     string   `json:"filterPack,omitempty"`
	SealTop        *float64 `json:"sealTop,omitempty"`
	SealBottom     *float64 `json:"sealBottom,omitempty"`
	SealMaterial   string   `json:"sealMaterial,omitempty"`
}

// IsEmpty reports whether w carries no construction detail at all.
func (w *Well) IsEmpty() bool {
	if w == nil {
		return true
	}
	return w.Type == "" && w.CasingDiameter == nil && w.CasingMaterial == "" &&
		w.ScreenTop == nil && w.ScreenBottom == nil && w.ScreenSlotSize == "" &&
		w.FilterPack == "" && w.SealTop == nil && w.SealBottom == nil && w.SealMaterial == ""
}

// HasScreen reports whether both screen bounds are known.
func (w *Well) HasScreen() bool { return w != nil && w.ScreenTop != nil && w.ScreenBottom != nil }

// HasSeal reports whether both seal bounds are known.
func (w *Well) HasSeal() bool { return w != nil && w.SealTop != nil && w.SealBottom != nil }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// NormalizeCode upper-cases and trims a classification or sample type code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// MaxDepth returns the deepest depth mentioned by any layer or sample.
func (r *Record) MaxDepth() float64 {
	var deepest float64
	for _, l := range r.Layers {
		deepest = max(deepest, l.DepthTop, l.DepthBottom)
	}
	for _, s := range r.Samples {
		p := s.Position()
		deepest = max(deepest, p.Bottom)
	}
	return deepest
}

// EffectiveTotalDepth returns the total depth to lay the log out against.
// A positive TotalDepth wins; otherwise the deepest observation is used and
// DefaultTotalDepth is the last resort.
func (r *Record) EffectiveTotalDepth() float64 {
	if r.Boring.TotalDepth > 0 {
		return r.Boring.TotalDepth
	}
	if d := r.MaxDepth(); d > 0 {
		return d
	}
	return DefaultTotalDepth
}

// SortedLayers returns a copy of the layers ordered by top depth.
// The record itself is left untouched.
func (r *Record) SortedLayers() []Layer {
	layers := slices.Clone(r.Layers)
	slices.SortStableFunc(layers, func(a, b Layer) int {
		if c := cmp.Compare(a.DepthTop, b.DepthTop); c != 0 {
			return c
		}
		return cmp.Compare(a.DepthBottom, b.DepthBottom)
	})
	return layers
}

// SortedSamples returns a copy of the samples ordered by top depth.
func (r *Record) SortedSamples() []Sample {
	samples := slices.Clone(r.Samples)
	slices.SortStableFunc(samples, func(a, b Sample) int {
		return cmp.Compare(a.Position().Top, b.Position().Top)
	})
	return samples
}

// Normalize applies the canonical form in place: upper-cased codes and sample
// types, default descriptions and depth ordering.
func (r *Record) Normalize() {
	for i := range r.Layers {
		l := &r.Layers[i]
		l.USCS = NormalizeCode(l.USCS)
		l.Description = strings.TrimSpace(l.Description)
		if l.Description == "" {
			l.Description = DefaultDescription
		}
		l.Moisture = Moisture(strings.ToLower(strings.TrimSpace(string(l.Moisture))))
		l.Odor = Odor(strings.ToLower(strings.TrimSpace(string(l.Odor))))
	}
	for i := range r.Samples {
		r.Samples[i].Type = NormalizeCode(r.Samples[i].Type)
	}
	r.Layers = r.SortedLayers()
	r.Samples = r.SortedSamples()
}

// HasOdor reports whether any layer records an odor other than none.
func (r *Record) HasOdor() bool {
	return slices.ContainsFunc(r.Layers, func(l Layer) bool { return l.Odor.Present() })
}

// HasPID reports whether any layer carries a PID reading.
func (r *Record) HasPID() bool {
	return slices.ContainsFunc(r.Layers, func(l Layer) bool { return l.PID != nil })
}

// HasWell reports whether the well panel should be drawn.
func (r *Record) HasWell() bool { return !r.Well.IsEmpty() }

// HasGroundwater reports whether a groundwater depth is known.
func (r *Record) HasGroundwater() bool {
	return r.Groundwater != nil && r.Groundwater.Depth != nil
}

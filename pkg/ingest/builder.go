package ingest

import (
	"slices"
	"strings"

	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/errors"
)

// row is one data row keyed by resolved field. Blank cells are absent.
type row map[Field]string

// builder folds rows into a record.
//
// Metadata, groundwater and well fields follow last-non-empty-wins: every row
// may carry them and a later non-blank cell replaces an earlier value.
// Layers and samples are appended in row order with first-wins
// de-duplication on (top, bottom) and (depth-or-top, id) respectively.
type builder struct {
	rec     boring.Record
	water   boring.Groundwater
	well    boring.Well
	layers  map[layerKey]struct{}
	samples map[sampleKey]struct{}

	duplicates   int
	droppedBlows int
}

type layerKey struct{ top, bottom float64 }

type sampleKey struct {
	depth float64
	id    string
}

func newBuilder() *builder {
	return &builder{
		layers:  make(map[layerKey]struct{}),
		samples: make(map[sampleKey]struct{}),
	}
}

func (b *builder) add(r row) {
	b.addMetadata(r)
	b.addLayer(r)
	b.addSample(r)
	b.addGroundwater(r)
	b.addWell(r)
}

// set overwrites dst with v when v is not blank.
func set(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// setNumber overwrites dst when v parses; malformed cells count as absent.
func setNumber(dst **float64, v string) {
	if n, ok := number(v); ok {
		*dst = &n
	}
}

func number(v string) (float64, bool) {
	if v == "" {
		return 0, false
	}
	n, err := errors.ParseNumber("", v)
	return n, err == nil
}

func (b *builder) addMetadata(r row) {
	m := &b.rec.Boring
	set(&m.ID, r[FieldID])
	set(&m.Project, r[FieldProject])
	set(&m.Client, r[FieldClient])
	set(&m.Date, r[FieldDate])
	set(&m.DateStart, r[FieldDateStart])
	set(&m.DateComplete, r[FieldDateComplete])
	set(&m.Time, r[FieldTime])
	set(&m.Weather, r[FieldWeather])
	setNumber(&m.Elevation, r[FieldElevation])
	set(&m.Equipment, r[FieldEquipment])
	set(&m.DrillingMethod, r[FieldDrillingMethod])
	set(&m.LoggedBy, r[FieldLoggedBy])
	if d, ok := number(r[FieldTotalDepth]); ok && d > 0 {
		m.TotalDepth = d
	}

	lat, latOK := number(r[FieldLat])
	lon, lonOK := number(r[FieldLon])
	if latOK || lonOK || r[FieldCoordSystem] != "" {
		if m.Location == nil {
			m.Location = &boring.Location{}
		}
		if latOK {
			m.Location.Lat = lat
		}
		if lonOK {
			m.Location.Lon = lon
		}
		set(&m.Location.System, r[FieldCoordSystem])
	}

	if r[FieldConsultant] != "" || r[FieldConsultantContact] != "" || r[FieldConsultantPhone] != "" {
		if m.Consultant == nil {
			m.Consultant = &boring.Consultant{}
		}
		set(&m.Consultant.Company, r[FieldConsultant])
		set(&m.Consultant.Contact, r[FieldConsultantContact])
		set(&m.Consultant.Phone, r[FieldConsultantPhone])
	}

	set(&m.Driller.Name, r[FieldDriller])
	set(&m.Driller.Company, r[FieldDrillerCompany])
	set(&m.Driller.License, r[FieldDrillerLicense])
}

func (b *builder) addLayer(r row) {
	top, okTop := number(r[FieldDepthTop])
	bottom, okBottom := number(r[FieldDepthBottom])
	if !okTop || !okBottom {
		return
	}
	key := layerKey{top, bottom}
	if _, dup := b.layers[key]; dup {
		b.duplicates++
		return
	}
	b.layers[key] = struct{}{}

	layer := boring.Layer{
		DepthTop:    top,
		DepthBottom: bottom,
		USCS:        r[FieldUSCS],
		Description: r[FieldDescription],
		Moisture:    boring.Moisture(strings.ToLower(r[FieldMoisture])),
		Odor:        boring.Odor(strings.ToLower(r[FieldOdor])),
	}
	setNumber(&layer.PID, r[FieldPID])
	b.rec.Layers = append(b.rec.Layers, layer)
}

func (b *builder) addSample(r row) {
	s := boring.Sample{
		ID:   r[FieldSampleID],
		Type: r[FieldSampleType],
	}
	setNumber(&s.Depth, r[FieldSampleDepth])
	setNumber(&s.DepthTop, r[FieldSampleTop])
	setNumber(&s.DepthBottom, r[FieldSampleBottom])
	if s.Depth == nil && s.DepthTop == nil && s.DepthBottom == nil {
		return
	}
	if s.DepthTop != nil && s.DepthBottom != nil {
		s.Depth = nil
	}

	key := sampleKey{s.Key(), s.ID}
	if _, dup := b.samples[key]; dup {
		b.duplicates++
		return
	}
	b.samples[key] = struct{}{}

	if counts, ok := blows(r); ok {
		s.Blows = counts
	} else {
		b.droppedBlows++
	}
	setNumber(&s.Recovery, r[FieldRecovery])
	b.rec.Samples = append(b.rec.Samples, s)
}

// blows reads blow counts from blows_1..3, falling back to a single "4-5-6"
// cell. Each positional cell holds the count of its own 6-inch interval, so
// the cells must fill from the first one on: a blank cell before a count, or
// any malformed count, drops the counts as a whole and reports ok=false.
func blows(r row) (counts []int, ok bool) {
	cells := []string{r[FieldBlows1], r[FieldBlows2], r[FieldBlows3]}
	filled := func(c string) bool { return strings.TrimSpace(c) != "" }
	if !slices.ContainsFunc(cells, filled) {
		out, err := errors.ParseBlows("", r[FieldBlows])
		return out, err == nil
	}

	for i, c := range cells {
		if !filled(c) {
			if slices.ContainsFunc(cells[i+1:], filled) {
				return nil, false
			}
			break
		}
		n, err := errors.ParseBlows(string(blowFields[i]), c)
		if err != nil || len(n) != 1 {
			return nil, false
		}
		counts = append(counts, n[0])
	}
	return counts, true
}

var blowFields = [...]Field{FieldBlows1, FieldBlows2, FieldBlows3}

func (b *builder) addGroundwater(r row) {
	setNumber(&b.water.Depth, r[FieldWaterDepth])
	set(&b.water.Note, r[FieldWaterNote])
}

func (b *builder) addWell(r row) {
	w := &b.well
	set(&w.Type, r[FieldWellType])
	setNumber(&w.CasingDiameter, r[FieldCasingDiameter])
	set(&w.CasingMaterial, r[FieldCasingMaterial])
	setNumber(&w.ScreenTop, r[FieldScreenTop])
	setNumber(&w.ScreenBottom, r[FieldScreenBottom])
	set(&w.ScreenSlotSize, r[FieldSlotSize])
	set(&w.FilterPack, r[FieldFilterPack])
	setNumber(&w.SealTop, r[FieldSealTop])
	setNumber(&w.SealBottom, r[FieldSealBottom])
	set(&w.SealMaterial, r[FieldSealMaterial])
}

// build finishes the record: optional sections are attached only when they
// carry data, total depth is derived when absent, and the record is
// normalized.
func (b *builder) build() *boring.Record {
	rec := b.rec
	if b.water.Depth != nil || b.water.Note != "" {
		water := b.water
		rec.Groundwater = &water
	}
	if !b.well.IsEmpty() {
		well := b.well
		rec.Well = &well
	}
	if rec.Boring.TotalDepth <= 0 {
		rec.Boring.TotalDepth = rec.EffectiveTotalDepth()
	}
	rec.Normalize()
	return &rec
}

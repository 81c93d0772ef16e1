package ingest

import (
	"regexp"
	"strings"
)

// Field names a recognized input column after alias resolution.
type Field string

const (
	// Metadata
	FieldID                Field = "boring_id"
	FieldProject           Field = "project"
	FieldClient            Field = "client"
	FieldDate              Field = "date"
	FieldDateStart         Field = "date_start"
	FieldDateComplete      Field = "date_complete"
	FieldTime              Field = "time"
	FieldWeather           Field = "weather"
	FieldElevation         Field = "elevation"
	FieldLat               Field = "lat"
	FieldLon               Field = "lon"
	FieldCoordSystem       Field = "coord_system"
	FieldConsultant        Field = "consultant"
	FieldConsultantContact Field = "consultant_contact"
	FieldConsultantPhone   Field = "consultant_phone"
	FieldDriller           Field = "driller"
	FieldDrillerCompany    Field = "driller_company"
	FieldDrillerLicense    Field = "driller_license"
	FieldEquipment         Field = "equipment"
	FieldDrillingMethod    Field = "drilling_method"
	FieldLoggedBy          Field = "logged_by"
	FieldTotalDepth        Field = "total_depth"

	// Layers
	FieldDepthTop    Field = "depth_top"
	FieldDepthBottom Field = "depth_bottom"
	FieldUSCS        Field = "uscs"
	FieldDescription Field = "description"
	FieldMoisture    Field = "moisture"
	FieldOdor        Field = "odor"
	FieldPID         Field = "pid"

	// Samples
	FieldSampleID     Field = "sample_id"
	FieldSampleType   Field = "sample_type"
	FieldSampleDepth  Field = "sample_depth"
	FieldSampleTop    Field = "sample_top"
	FieldSampleBottom Field = "sample_bottom"
	FieldBlows        Field = "blows"
	FieldBlows1       Field = "blows_1"
	FieldBlows2       Field = "blows_2"
	FieldBlows3       Field = "blows_3"
	FieldRecovery     Field = "recovery"

	// Groundwater
	FieldWaterDepth Field = "groundwater_depth"
	FieldWaterNote  Field = "groundwater_note"

	// Well
	FieldWellType       Field = "well_type"
	FieldCasingDiameter Field = "casing_diameter"
	FieldCasingMaterial Field = "casing_material"
	FieldScreenTop      Field = "screen_top"
	FieldScreenBottom   Field = "screen_bottom"
	FieldSlotSize       Field = "screen_slot_size"
	FieldFilterPack     Field = "filter_pack"
	FieldSealTop        Field = "seal_top"
	FieldSealBottom     Field = "seal_bottom"
	FieldSealMaterial   Field = "seal_material"
)

// aliases maps alternative normalized header names onto fields. Canonical
// names map onto themselves through [Lookup].
var aliases = map[string]Field{
	"id":                  FieldID,
	"boring":              FieldID,
	"boring_no":           FieldID,
	"boring_number":       FieldID,
	"project_name":        FieldProject,
	"site":                FieldProject,
	"start_date":          FieldDateStart,
	"date_started":        FieldDateStart,
	"end_date":            FieldDateComplete,
	"date_completed":      FieldDateComplete,
	"completion_date":     FieldDateComplete,
	"ground_elevation":    FieldElevation,
	"surface_elevation":   FieldElevation,
	"elev":                FieldElevation,
	"latitude":            FieldLat,
	"lng":                 FieldLon,
	"long":                FieldLon,
	"longitude":           FieldLon,
	"coordinate_system":   FieldCoordSystem,
	"datum":               FieldCoordSystem,
	"consultant_company":  FieldConsultant,
	"contact":             FieldConsultantContact,
	"phone":               FieldConsultantPhone,
	"driller_name":        FieldDriller,
	"drilling_company":    FieldDrillerCompany,
	"drilling_contractor": FieldDrillerCompany,
	"license":             FieldDrillerLicense,
	"driller_license_no":  FieldDrillerLicense,
	"rig":                 FieldEquipment,
	"method":              FieldDrillingMethod,
	"logger":              FieldLoggedBy,
	"totaldepth":          FieldTotalDepth,
	"top":                 FieldDepthTop,
	"from":                FieldDepthTop,
	"depthtop":            FieldDepthTop,
	"top_depth":           FieldDepthTop,
	"bottom":              FieldDepthBottom,
	"to":                  FieldDepthBottom,
	"depthbottom":         FieldDepthBottom,
	"bottom_depth":        FieldDepthBottom,
	"classification":      FieldUSCS,
	"soil_type":           FieldUSCS,
	"uscs_code":           FieldUSCS,
	"code":                FieldUSCS,
	"soil_description":    FieldDescription,
	"odour":               FieldOdor,
	"pid_ppm":             FieldPID,
	"sample":              FieldSampleID,
	"sample_no":           FieldSampleID,
	"sample_depth_top":    FieldSampleTop,
	"sample_depth_bottom": FieldSampleBottom,
	"blow_counts":         FieldBlows,
	"spt_blows":           FieldBlows,
	"blows1":              FieldBlows1,
	"blows2":              FieldBlows2,
	"blows3":              FieldBlows3,
	"blow_1":              FieldBlows1,
	"blow_2":              FieldBlows2,
	"blow_3":              FieldBlows3,
	"gw_depth":            FieldWaterDepth,
	"water_depth":         FieldWaterDepth,
	"water_level":         FieldWaterDepth,
	"gw_note":             FieldWaterNote,
	"water_note":          FieldWaterNote,
	"slot_size":           FieldSlotSize,
	"screen_slot":         FieldSlotSize,
}

var canonical = func() map[string]Field {
	m := make(map[string]Field)
	for _, f := range []Field{
		FieldID, FieldProject, FieldClient, FieldDate, FieldDateStart, FieldDateComplete, FieldTime,
		FieldWeather, FieldElevation, FieldLat, FieldLon, FieldCoordSystem, FieldConsultant,
		FieldConsultantContact, FieldConsultantPhone, FieldDriller, FieldDrillerCompany,
		FieldDrillerLicense, FieldEquipment, FieldDrillingMethod, FieldLoggedBy, FieldTotalDepth,
		FieldDepthTop, FieldDepthBottom, FieldUSCS, FieldDescription, FieldMoisture, FieldOdor, FieldPID,
		FieldSampleID, FieldSampleType, FieldSampleDepth, FieldSampleTop, FieldSampleBottom,
		FieldBlows, FieldBlows1, FieldBlows2, FieldBlows3, FieldRecovery,
		FieldWaterDepth, FieldWaterNote,
		FieldWellType, FieldCasingDiameter, FieldCasingMaterial, FieldScreenTop, FieldScreenBottom,
		FieldSlotSize, FieldFilterPack, FieldSealTop, FieldSealBottom, FieldSealMaterial,
	} {
		m[string(f)] = f
	}
	return m
}()

// unitSuffixes are trailing header tokens that name a unit, as in
// "Depth Top (ft)".
var unitSuffixes = []string{"_ft", "_feet", "_m", "_meters", "_in", "_inches", "_ppm", "_bgs"}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeHeader lower-cases a header cell and collapses every run of
// non-alphanumeric characters into a single underscore.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = nonAlnum.ReplaceAllString(strings.ToLower(strings.TrimSpace(h)), "_")
	return strings.Trim(h, "_")
}

// Lookup resolves a raw header cell to a field. Unknown headers report false.
func Lookup(header string) (Field, bool) {
	name := NormalizeHeader(header)
	if f, ok := resolve(name); ok {
		return f, true
	}
	for _, suffix := range unitSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok {
			if f, ok := resolve(base); ok {
				return f, true
			}
		}
	}
	return "", false
}

func resolve(name string) (Field, bool) {
	if f, ok := canonical[name]; ok {
		return f, true
	}
	f, ok := aliases[name]
	return f, ok
}

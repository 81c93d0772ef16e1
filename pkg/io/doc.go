// Package io provides import and export of boring records.
//
// # JSON Format
//
// Records are stored as a single JSON object. Only "boring.id" is required:
//
//	{
//	  "boring": {
//	    "id": "B-1",
//	    "project": "Main St",
//	    "driller": "Sam Ortiz",
//	    "totalDepth": 20
//	  },
//	  "layers": [
//	    {"depthTop": 0, "depthBottom": 5, "uscs": "SM", "description": "Silty sand", "moisture": "moist"}
//	  ],
//	  "samples": [
//	    {"depth": 2.5, "type": "SPT", "id": "S-1", "blows": [4, 5, 6], "recovery": 18},
//	    {"depthTop": 6, "depthBottom": 8, "type": "ST", "id": "S-2"}
//	  ],
//	  "groundwater": {"depth": 7.5, "note": "during drilling"},
//	  "well": {"screenTop": 5, "screenBottom": 15, "casingDiameter": 2}
//	}
//
// The driller may be a bare string (the driller's name) or an object with
// "company", "name" and "license". A sample carries either a point "depth"
// or a "depthTop"/"depthBottom" interval.
//
// # Import
//
// Use [Import] to read a record from a file of any supported kind. Files
// ending in ".json" go through [ImportJSON]; everything else is parsed as a
// spreadsheet export by the [ingest] package:
//
//	rec, err := io.Import("B-1.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Export
//
// Use [ExportJSON] to write a record to a file, or [WriteJSON] to write to
// any io.Writer. Converting a spreadsheet to JSON is an import followed by
// an export.
//
// Rendered diagrams are written by the sinks in [borelog/sink].
//
// [ingest]: github.com/matzehuels/stratalog/pkg/ingest
// [borelog/sink]: github.com/matzehuels/stratalog/pkg/render/borelog/sink
package io

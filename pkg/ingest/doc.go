// Package ingest turns spreadsheet exports into boring records.
//
// Field crews keep boring logs in spreadsheets: one row per layer or sample,
// with the boring's metadata repeated (or only filled in on the first row).
// [Parse] reads such a file as delimited text, detects the separator, maps
// header cells onto known fields and folds all rows into one
// [boring.Record].
//
//	rec, err := ingest.ParseFile("B-1.csv")
//
// Recognized headers include depth_top/depth_bottom (or top/bottom, from/to),
// uscs, description, moisture, odor, pid, sample_id, sample_type,
// sample_depth, sample_top/sample_bottom, blows or blows_1..blows_3,
// recovery, groundwater_depth, groundwater_note, the well construction
// fields and the metadata fields of [boring.Metadata]. A trailing unit such
// as "(ft)" is ignored.
//
// [boring.Record]: github.com/matzehuels/stratalog/pkg/boring.Record
// [boring.Metadata]: github.com/matzehuels/stratalog/pkg/boring.Metadata
package ingest

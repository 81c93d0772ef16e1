// Package boring defines the in-memory representation of a single soil boring
// log: site metadata, soil layers, samples, groundwater and an optional
// monitoring-well construction record.
//
// # Overview
//
// A [Record] is built once per document, either by the delimited-text
// ingestion in [github.com/matzehuels/stratalog/pkg/ingest] or by decoding
// JSON, and is then handed wholesale to the renderer. The types here carry no
// rendering behavior; they only provide the small derivations every consumer
// needs:
//
//   - [Record.EffectiveTotalDepth] resolves a missing total depth.
//   - [Sample.Position] resolves the point-or-interval depth of a sample.
//   - [Record.SortedLayers] and [Record.SortedSamples] return depth-ordered copies.
//   - [Record.Normalize] applies the upper-casing and defaulting rules in place.
//
// # Optional Fields
//
// Numeric fields that may legitimately be absent (elevation, PID, recovery,
// well depths) are pointers so that zero and missing stay distinguishable.
// Use [Float] to build them in literals.
//
// # Driller
//
// Older documents store the driller as a bare string, newer ones as an object
// with company, name and license. [Driller] decodes both forms and encodes a
// name-only driller back to the bare string.
package boring

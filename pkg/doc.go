// Package pkg provides the core libraries for Stratalog soil boring logs.
//
// # Overview
//
// Stratalog turns a boring record (metadata, soil layers, samples,
// groundwater observations and well construction) into a scaled vertical
// log diagram. Records come from JSON files or from delimited spreadsheet
// exports, and the diagram is written as SVG, PNG, PDF or a JSON scene.
//
// The packages are organized by concern:
//
//	boring      → the record model
//	ingest      → spreadsheet rows folded into a record
//	io          → JSON record import and export
//	config      → diagram and output settings from TOML or YAML files
//	render      → the boring log diagram and format conversion
//	pipeline    → load → render → serialize, with caching
//
// # Quick Start
//
//	rec, _ := io.Import("B-1.csv")
//	s := borelog.Render(rec, borelog.DefaultConfig())
//	svg := sink.SVG(s)
//
// # Main Packages
//
// ## Domain
//
// [boring] - Record, Metadata, Layer, Sample, Groundwater and Well types.
// [boring.Record.Normalize] sorts layers and samples by depth; the record
// also answers the queries the renderer needs (maximum depth, odor, PID).
//
// [ingest] - Delimited spreadsheet import. The delimiter is detected from
// the header line, columns are matched by name, and every row contributes
// metadata, a layer, a sample, a groundwater reading or well fields.
//
// [io] - Reading and writing records as JSON, and [io.Import], which picks
// the reader from the file extension.
//
// ## Visualization
//
// [render/borelog] - The boring log diagram. It lays out the depth scale,
// the soil column with USCS patterns, descriptions, samples with SPT blow
// counts, groundwater markers, the well schematic and the legend.
//
//   - [render/borelog/pattern]: soil pattern catalog
//   - [render/borelog/layout]: column, depth and panel geometry
//   - [render/borelog/scene]: the vector scene graph
//   - [render/borelog/sink]: SVG, PNG, PDF and JSON output
//
// [render] - SVG to PDF/PNG conversion using rsvg-convert.
//
// ## Infrastructure
//
// [pipeline] - The render pipeline shared by every command. It resolves
// options, loads the record, renders the scene and serializes artifacts,
// consulting the cache at each stage.
//
// [cache] - Content-addressed file cache for parsed records and rendered
// artifacts, keyed by input hash and scoped by build version.
//
// [config] - Loads diagram settings from TOML or YAML configuration files.
//
// [observability] - Hook interfaces for pipeline and cache events.
//
// [errors] - Coded errors and field validators with user-facing messages.
//
// [buildinfo] - Version information embedded at build time.
//
// [boring]: https://pkg.go.dev/github.com/matzehuels/stratalog/pkg/boring
// [boring.Record.Normalize]: https://pkg.go.dev/github.com/matzehuels/stratalog/pkg/boring#Record.Normalize
// [ingest]: https://pkg.go.dev/github.com/matzehuels/stratalog/pkg/ingest
// [io]: https://pkg.go.dev/github.com/matzehuels/stratalog/pkg/io
// [io.Import]: https://pkg.go.dev/github.com/matzehuels/stratalog/pkg/io#Import
// [render]: https://pkg.go.dev/github.com/matzehuels/stratalog/pkg/render
// [render/borelog]: https://pkg.go.dev/github.com/matzehuels/stratalog/pkg/render/borelog
// [render/borelog/pattern]: https://pkg.go.dev/github.com/matzehuels/stratalog/pkg/render/borelog/pattern
// [render/borelog/layout]: https://pkg.go.dev/github.com/matzehuels/stratalog/pkg/render/borelog/layout
// [render/borelog/scene]: https://pkg.go.dev/github.com/matzehuels/stratalog/pkg/render/borelog/scene
// [render/borelog/sink]: https://pkg.go.dev/github.com/matzehuels/stratalog/pkg/render/borelog/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stratalog/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/stratalog/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/stratalog/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/stratalog/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/stratalog/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/stratalog/pkg/buildinfo
package pkg

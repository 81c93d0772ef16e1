// Package render provides visualization rendering for soil boring logs.
//
// # Overview
//
// This package contains the rendering pipeline that turns a boring record
// into visual output. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - The boring log diagram (in the [borelog] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := sink.SVG(scene)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Boring Logs
//
// The [borelog] subpackage lays out and draws the log. Its subpackages split
// the work:
//   - [borelog/pattern]: soil pattern catalog
//   - [borelog/layout]: column, depth and panel geometry
//   - [borelog/scene]: the vector scene graph
//   - [borelog/sink]: SVG, PNG, PDF and JSON output
//
// [borelog]: github.com/matzehuels/stratalog/pkg/render/borelog
// [borelog/pattern]: github.com/matzehuels/stratalog/pkg/render/borelog/pattern
// [borelog/layout]: github.com/matzehuels/stratalog/pkg/render/borelog/layout
// [borelog/scene]: github.com/matzehuels/stratalog/pkg/render/borelog/scene
// [borelog/sink]: github.com/matzehuels/stratalog/pkg/render/borelog/sink
package render

// Package sink provides output format renderers for boring log scenes.
//
// # Overview
//
// A "sink" transforms a rendered [scene.Scene] into a final output format.
// This package provides renderers for:
//
//   - SVG: Scalable vector graphics, patterns emitted as <pattern> defs
//   - JSON: The scene graph for external tools
//   - PDF: Print-ready output (requires rsvg-convert)
//   - PNG: Raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [SVG] writes every element in scene order. Class names are kept as
// class attributes so the output can be restyled with CSS:
//
//	svg := sink.SVG(s, sink.WithTitle("B-1"), sink.WithInteractive())
//
// # SVG Options
//
//   - [WithTitle]: Document title
//   - [WithInteractive]: Hover highlighting of bands and samples
//   - [WithoutClasses]: Drop class attributes
//
// # PDF and PNG Output
//
// Both go through SVG and shell out to rsvg-convert:
//
//	png, err := sink.PNG(ctx, s, sink.WithScale(2))
//	pdf, err := sink.PDF(ctx, s)
//
// [scene.Scene]: github.com/matzehuels/stratalog/pkg/render/borelog/scene.Scene
package sink

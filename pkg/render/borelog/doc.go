// Package borelog renders a soil boring log into a vector scene.
//
// # Overview
//
// [Render] is the core: it takes a [boring.Record] and a [Config], computes
// the geometry with package layout, and emits a [scene.Scene] holding, in
// drawing order, the header block, column headers, layer bands with pattern
// fills, the depth and elevation scale, sample markers with SPT annotations,
// the groundwater marker, the well construction panel, the footer and the
// legend.
//
// Rendering is pure. The record is never modified, layers and samples are
// drawn from sorted copies, and two calls with equal inputs produce equal
// scenes. Missing optional data suppresses only the element that depends on
// it.
//
// # Diagram
//
// [Diagram] wraps Render for interactive callers. It keeps the current record
// and configuration and rebuilds the full scene on [Diagram.SetData],
// [Diagram.SetConfig] and [Diagram.Render]; [Diagram.Data] hands back the very
// record that was set so an editor can change fields in place between renders.
//
// # Output
//
// Scenes are turned into SVG, PNG, PDF or JSON by package sink.
//
// [boring.Record]: github.com/matzehuels/stratalog/pkg/boring.Record
// [scene.Scene]: github.com/matzehuels/stratalog/pkg/render/borelog/scene.Scene
package borelog

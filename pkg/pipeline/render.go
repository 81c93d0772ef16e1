package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/errors"
	"github.com/matzehuels/stratalog/pkg/render/borelog"
	"github.com/matzehuels/stratalog/pkg/render/borelog/scene"
	"github.com/matzehuels/stratalog/pkg/render/borelog/sink"
)

// Render draws the record and serializes it in every requested format.
func Render(ctx context.Context, rec *boring.Record, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	d := borelog.New(*opts.Config, borelog.WithLogger(opts.Logger))
	d.SetData(rec)
	return Serialize(ctx, d.Scene(), rec, opts)
}

// Serialize writes an already rendered scene in every requested format.
// The editor uses it to save the scene it is displaying.
func Serialize(ctx context.Context, s scene.Scene, rec *boring.Record, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	svgOpts := buildSVGOptions(rec, opts)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.SVG(s, svgOpts...)
		case FormatPNG:
			data, err = sink.PNG(ctx, s, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.PDF(ctx, s, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.JSON(s, sink.WithIndent())
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(rec *boring.Record, opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption

	title := opts.Title
	if title == "" && rec != nil && rec.Boring.ID != "" {
		title = "Boring log " + rec.Boring.ID
	}
	if title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(title))
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteractive())
	}
	if opts.NoClasses {
		svgOpts = append(svgOpts, sink.WithoutClasses())
	}
	return svgOpts
}

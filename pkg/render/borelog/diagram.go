package borelog

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/render/borelog/scene"
)

// Diagram holds one document and its current scene. It is the contract an
// interactive editor drives: mutate the record returned by [Diagram.Data],
// then call [Diagram.Render] (or hand a new record to [Diagram.SetData]).
//
// A Diagram is not safe for concurrent use.
type Diagram struct {
	cfg    Config
	record *boring.Record
	scene  scene.Scene
	logger *log.Logger
}

// Option configures a Diagram.
type Option func(*Diagram)

// WithLogger sets the logger used for per-render debug output.
func WithLogger(l *log.Logger) Option {
	return func(d *Diagram) {
		if l != nil {
			d.logger = l
		}
	}
}

// New returns a Diagram with no data. Call SetData to render.
func New(cfg Config, opts ...Option) *Diagram {
	d := &Diagram{cfg: cfg, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetData replaces the record wholesale and renders it.
func (d *Diagram) SetData(r *boring.Record) {
	d.record = r
	d.Render()
}

// Data returns the record last passed to SetData. It is the same pointer,
// not a copy; changes made through it show up on the next Render.
func (d *Diagram) Data() *boring.Record { return d.record }

// Config returns the current configuration.
func (d *Diagram) Config() Config { return d.cfg }

// SetConfig replaces the configuration and re-renders the current record.
func (d *Diagram) SetConfig(cfg Config) {
	d.cfg = cfg
	d.Render()
}

// Render discards the current scene and rebuilds it from the record and the
// configuration.
func (d *Diagram) Render() scene.Scene {
	start := time.Now()
	d.scene = Render(d.record, d.cfg)

	var id string
	var layers, samples int
	if d.record != nil {
		id, layers, samples = d.record.Boring.ID, len(d.record.Layers), len(d.record.Samples)
	}
	d.logger.Debug("rendered boring log",
		"id", id,
		"layers", layers,
		"samples", samples,
		"elements", len(d.scene.Elements),
		"size", [2]float64{d.scene.Width, d.scene.Height},
		"took", time.Since(start))
	return d.scene
}

// Scene returns the scene of the last render.
func (d *Diagram) Scene() scene.Scene { return d.scene }

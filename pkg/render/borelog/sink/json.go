package sink

import (
	"encoding/json"

	"github.com/matzehuels/stratalog/pkg/render/borelog/scene"
)

// JSONOption configures JSON rendering via [JSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent bool
}

// WithIndent pretty-prints the output.
func WithIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

// JSON serializes the scene: canvas size, pattern tiles and the ordered
// element list, each element tagged with its kind.
func JSON(s scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.indent {
		return json.MarshalIndent(s, "", "  ")
	}
	return json.Marshal(s)
}

package pipeline

import (
	"bytes"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/ingest"
	recordio "github.com/matzehuels/stratalog/pkg/io"
)

// Source kinds used in record cache keys.
const (
	KindJSON      = "json"
	KindDelimited = "delimited"
)

// SourceKind classifies an input path by extension.
func SourceKind(path string) string {
	if recordio.IsJSON(path) {
		return KindJSON
	}
	return KindDelimited
}

// Decode parses source bytes of the given kind into a normalized record.
func Decode(data []byte, kind string, opts Options) (*boring.Record, error) {
	if kind == KindJSON {
		return recordio.ReadJSON(bytes.NewReader(data))
	}
	return ingest.Parse(bytes.NewReader(data), ingestOptions(opts.Delimiter, opts.Logger)...)
}

func ingestOptions(delim rune, logger *log.Logger) []ingest.Option {
	var out []ingest.Option
	if delim != 0 {
		out = append(out, ingest.WithDelimiter(delim))
	}
	if logger != nil {
		out = append(out, ingest.WithLogger(logger))
	}
	return out
}

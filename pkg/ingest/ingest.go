package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/errors"
)

// Delimiters lists the separators considered by [DetectDelimiter], in order
// of preference when counts tie.
var Delimiters = []rune{',', '\t', ';', '|'}

// Option configures parsing.
type Option func(*parser)

type parser struct {
	delimiter rune
	logger    *log.Logger
}

// WithDelimiter forces the field separator instead of detecting it.
func WithDelimiter(d rune) Option {
	return func(p *parser) { p.delimiter = d }
}

// WithLogger sets the logger used to report ignored columns and duplicates.
func WithLogger(l *log.Logger) Option {
	return func(p *parser) { p.logger = l }
}

// Parse reads delimited text with a header row and folds every data row into
// a single record.
//
// Header cells are matched case-insensitively after normalization (see
// [NormalizeHeader]); unknown columns are ignored. Each row may carry
// metadata, one layer, one sample, groundwater and well fields in any
// combination. Blank and malformed numeric cells are treated as absent.
//
// Parse returns an INVALID_INPUT error when the input has no data row after
// the header.
func Parse(r io.Reader, opts ...Option) (*boring.Record, error) {
	p := parser{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&p)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read input")
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	if p.delimiter == 0 {
		p.delimiter = DetectDelimiter(firstLine(data))
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = p.delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	// Trimming would swallow empty cells of a whitespace delimiter.
	cr.TrimLeadingSpace = !unicode.IsSpace(p.delimiter)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse delimited text")
	}
	records = dropBlank(records)
	if len(records) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "need a header row and at least one data row, got %d row(s)", len(records))
	}

	columns := p.mapColumns(records[0])
	b := newBuilder()
	for _, rec := range records[1:] {
		b.add(columns.row(rec))
	}
	if b.duplicates > 0 {
		p.logger.Debug("skipped duplicate rows", "count", b.duplicates)
	}
	if b.droppedBlows > 0 {
		p.logger.Warn("dropped incomplete blow counts", "samples", b.droppedBlows)
	}

	out := b.build()
	p.logger.Debug("parsed boring", "id", out.Boring.ID, "layers", len(out.Layers), "samples", len(out.Samples))
	return out, nil
}

// ParseString is Parse over a string.
func ParseString(s string, opts ...Option) (*boring.Record, error) {
	return Parse(strings.NewReader(s), opts...)
}

// ParseFile opens path and parses it.
func ParseFile(path string, opts ...Option) (*boring.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rec, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// DetectDelimiter picks the candidate separator that occurs most often in
// the header line. It falls back to a comma.
func DetectDelimiter(header string) rune {
	best, bestCount := ',', 0
	for _, d := range Delimiters {
		if n := strings.Count(header, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func firstLine(data []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := sc.Text(); strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

func dropBlank(records [][]string) [][]string {
	out := records[:0]
	for _, rec := range records {
		for _, cell := range rec {
			if strings.TrimSpace(cell) != "" {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// columnMap maps cell index to field for the recognized header cells.
type columnMap map[int]Field

func (p *parser) mapColumns(header []string) columnMap {
	cols := make(columnMap, len(header))
	seen := make(map[Field]bool)
	for i, h := range header {
		f, ok := Lookup(h)
		if !ok {
			if strings.TrimSpace(h) != "" {
				p.logger.Debug("ignoring unknown column", "column", h)
			}
			continue
		}
		// The first column mapping to a field wins.
		if seen[f] {
			p.logger.Debug("ignoring repeated column", "column", h, "field", f)
			continue
		}
		seen[f] = true
		cols[i] = f
	}
	return cols
}

func (c columnMap) row(cells []string) row {
	r := make(row, len(c))
	for i, f := range c {
		if i >= len(cells) {
			continue
		}
		if v := strings.TrimSpace(cells[i]); v != "" {
			r[f] = v
		}
	}
	return r
}

package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/errors"
	"github.com/matzehuels/stratalog/pkg/ingest"
)

// ReadJSON decodes a boring record from r.
//
// The input must be a JSON object with a "boring" object carrying at least an
// "id". Every other section is optional:
//
//	{
//	  "boring": {"id": "B-1", "totalDepth": 20},
//	  "layers": [{"depthTop": 0, "depthBottom": 5, "uscs": "SM"}],
//	  "samples": [{"depth": 2.5, "type": "SPT", "id": "S-1", "blows": [4, 5, 6]}]
//	}
//
// The decoded record is normalized (see [boring.Record.Normalize]) so codes
// are upper-cased and layers and samples are ordered by depth.
//
// ReadJSON returns an INVALID_FORMAT error when the JSON is malformed and an
// INVALID_FIELD error when the boring id is missing. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (*boring.Record, error) {
	var rec boring.Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}
	if strings.TrimSpace(rec.Boring.ID) == "" {
		return nil, &errors.FieldError{
			Field: "boring.id",
			Err:   errors.New(errors.ErrCodeInvalidInput, "is required"),
		}
	}
	rec.Normalize()
	return &rec, nil
}

// ImportJSON reads a JSON file at path and returns the decoded record.
//
// ImportJSON returns the same errors as [ReadJSON], wrapped with the file
// path. A missing file yields a FILE_NOT_FOUND error.
func ImportJSON(path string) (*boring.Record, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rec, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// Import reads a record from path, choosing the decoder by extension: ".json"
// is read with [ImportJSON]; anything else is treated as delimited text and
// handed to [ingest.ParseFile] with opts.
//
// [ingest.ParseFile]: github.com/matzehuels/stratalog/pkg/ingest.ParseFile
func Import(path string, opts ...ingest.Option) (*boring.Record, error) {
	if IsJSON(path) {
		return ImportJSON(path)
	}
	return ingest.ParseFile(path, opts...)
}

// IsJSON reports whether path names a JSON record file.
func IsJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

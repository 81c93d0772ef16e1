package cache

import "fmt"

// Keyer builds cache keys. Implementations must be deterministic: equal
// inputs yield equal keys.
type Keyer interface {
	// RecordKey keys a parsed record by the hash of its source bytes.
	RecordKey(sourceHash string, opts RecordKeyOpts) string

	// ArtifactKey keys a rendered artifact by the hash of the record it was
	// rendered from.
	ArtifactKey(recordHash string, opts ArtifactKeyOpts) string
}

// RecordKeyOpts holds the parse options that change the parsed record.
type RecordKeyOpts struct {
	Kind      string `json:"kind"` // "json" or "delimited"
	Delimiter rune   `json:"delimiter,omitempty"`
}

// ArtifactKeyOpts holds the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	ConfigHash  string  `json:"config_hash"`
	Scale       float64 `json:"scale,omitempty"`
	Interactive bool    `json:"interactive,omitempty"`
	NoClasses   bool    `json:"no_classes,omitempty"`
	Title       string  `json:"title,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RecordKey returns "record:<hash>".
func (DefaultKeyer) RecordKey(sourceHash string, opts RecordKeyOpts) string {
	return hashKey("record", sourceHash, opts)
}

// ArtifactKey returns "artifact:<format>:<hash>". The format stays readable
// so entries can be told apart when inspecting the cache directory.
func (DefaultKeyer) ArtifactKey(recordHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), recordHash, opts)
}

package cache

// ScopedKeyer wraps a Keyer with a prefix. The CLI scopes keys by build
// version so that an upgraded renderer never serves artifacts drawn by an
// older one.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RecordKey generates a prefixed key for parsed records.
func (k *ScopedKeyer) RecordKey(sourceHash string, opts RecordKeyOpts) string {
	return k.prefix + k.inner.RecordKey(sourceHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(recordHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(recordHash, opts)
}

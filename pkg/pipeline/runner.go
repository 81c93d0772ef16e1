package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/cache"
	"github.com/matzehuels/stratalog/pkg/errors"
	"github.com/matzehuels/stratalog/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	rec, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Record = rec
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Layers = len(rec.Layers)
	result.Stats.Samples = len(rec.Samples)
	result.CacheInfo.LoadHit = loadHit

	r.Logger.Info("loaded boring",
		"id", rec.Boring.ID,
		"layers", len(rec.Layers),
		"samples", len(rec.Samples),
		"duration", result.Stats.LoadTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, rec, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit
	result.RecordHash, _ = cache.HashJSON(rec)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo reads opts.Input with caching and returns cache hit info.
// The cache is keyed by the source bytes, so an edited file always misses.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (rec *boring.Record, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Input)
	start := time.Now()
	defer func() {
		var layers, samples int
		if rec != nil {
			layers, samples = len(rec.Layers), len(rec.Samples)
		}
		hooks.OnLoadComplete(ctx, opts.Input, layers, samples, time.Since(start), err)
	}()

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", opts.Input)
		}
		return nil, false, fmt.Errorf("read %s: %w", opts.Input, err)
	}

	kind := SourceKind(opts.Input)
	cacheKey := r.Keyer.RecordKey(cache.Hash(data), opts.RecordKeyOpts(kind))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if cached, ok := r.getCached(ctx, "record", cacheKey); ok {
			var rec boring.Record
			if err := json.Unmarshal(cached, &rec); err == nil {
				return &rec, true, nil
			}
			r.Logger.Debug("discarding unreadable cached record", "key", cacheKey)
		}
	}

	rec, err = Decode(data, kind, opts)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", opts.Input, err)
	}

	if encoded, err := json.Marshal(rec); err == nil {
		r.setCached(ctx, "record", cacheKey, encoded, cache.TTLRecord)
	}
	return rec, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*boring.Record, error) {
	rec, _, err := r.LoadWithCacheInfo(ctx, opts)
	return rec, err
}

// RenderWithCacheInfo renders rec in every requested format with caching
// and returns whether all artifacts came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, rec *boring.Record, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	if rec == nil {
		rec = &boring.Record{}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	recordHash, err := cache.HashJSON(rec)
	if err != nil {
		return nil, false, fmt.Errorf("hash record: %w", err)
	}
	configHash, err := cache.HashJSON(opts.Config)
	if err != nil {
		return nil, false, fmt.Errorf("hash config: %w", err)
	}
	key := func(format string) string {
		return r.Keyer.ArtifactKey(recordHash, opts.ArtifactKeyOpts(format, configHash))
	}

	// Try to get all formats from cache
	if !opts.Refresh {
		cached := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, ok := r.getCached(ctx, "artifact", key(format))
			if !ok {
				break
			}
			cached[format] = data
		}
		if len(cached) == len(opts.Formats) {
			return cached, true, nil
		}
	}

	rendered, err := Render(ctx, rec, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		r.setCached(ctx, "artifact", key(format), data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, rec *boring.Record, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, rec, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) getCached(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
		ok = false
	}
	if ok {
		observability.Cache().OnCacheHit(ctx, keyType)
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType)
	}
	return data, ok
}

func (r *Runner) setCached(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

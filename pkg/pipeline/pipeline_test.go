package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/cache"
	"github.com/matzehuels/stratalog/pkg/errors"
	"github.com/matzehuels/stratalog/pkg/observability"
	"github.com/matzehuels/stratalog/pkg/render/borelog"
)

const sheet = `boring_id,top,bottom,uscs,description,sample_id,sample_type,sample_depth,blows
B-1,0,4,SM,Silty sand,S-1,SPT,2,4-5-6
B-1,4,10,CL,Lean clay,,,,
`

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// memCache is an in-memory Cache that counts hits.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	if ok {
		c.hits++
	}
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func quietLogger() *log.Logger { return log.New(&bytes.Buffer{}) }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Invalid format should fail with INVALID_INPUT, got %v", err)
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"svg", []string{"svg"}},
		{"SVG, pdf", []string{"svg", "pdf"}},
		{"svg,svg,,png", []string{"svg", "png"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := ParseFormats(tt.in)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Input: "b.csv"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Config == nil || opts.Config.Width != borelog.DefaultConfig().Width {
		t.Error("Config should default to borelog.DefaultConfig")
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
	if opts.NeedsConverter() {
		t.Error("svg alone does not need the converter")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"missing input", Options{}},
		{"bad format", Options{Input: "b.csv", Formats: []string{"gif"}}},
		{"negative scale", Options{Input: "b.csv", Scale: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("ValidateAndSetDefaults() = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	a := Options{Scale: 2, Interactive: true}
	b := Options{Scale: 3, Interactive: true}
	if a.ArtifactKeyOpts(FormatSVG, "c") != b.ArtifactKeyOpts(FormatSVG, "c") {
		t.Error("PNG scale should not affect the SVG key")
	}
	if a.ArtifactKeyOpts(FormatPNG, "c") == b.ArtifactKeyOpts(FormatPNG, "c") {
		t.Error("PNG scale should affect the PNG key")
	}
	c := Options{Interactive: false}
	if a.ArtifactKeyOpts(FormatJSON, "c") != c.ArtifactKeyOpts(FormatJSON, "c") {
		t.Error("SVG-only options should not affect the JSON key")
	}
}

func TestExecute(t *testing.T) {
	input := writeInput(t, "b1.csv", sheet)
	mc := newMemCache()
	r := NewRunner(mc, nil, quietLogger())

	opts := Options{Input: input, Formats: []string{FormatSVG, FormatJSON}}
	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Record.Boring.ID != "B-1" || res.Stats.Layers != 2 || res.Stats.Samples != 1 {
		t.Errorf("record = %+v, stats = %+v", res.Record.Boring, res.Stats)
	}
	svg := string(res.Artifacts[FormatSVG])
	if !strings.HasPrefix(svg, "<svg") || !strings.Contains(svg, "<title>Boring log B-1</title>") {
		t.Errorf("unexpected SVG prefix: %.80s", svg)
	}
	if !strings.Contains(svg, "N=11 (4-5-6)") {
		t.Error("SVG should carry the SPT label")
	}
	if !strings.Contains(string(res.Artifacts[FormatJSON]), `"elements"`) {
		t.Error("JSON artifact should be the scene")
	}
	if res.CacheInfo.LoadHit || res.CacheInfo.RenderHit {
		t.Errorf("first run should miss the cache: %+v", res.CacheInfo)
	}
	if res.RecordHash == "" {
		t.Error("RecordHash should be set")
	}

	again, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute (cached): %v", err)
	}
	if !again.CacheInfo.LoadHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", again.CacheInfo)
	}
	if !bytes.Equal(again.Artifacts[FormatSVG], res.Artifacts[FormatSVG]) {
		t.Error("cached SVG differs from rendered SVG")
	}
	if again.RecordHash != res.RecordHash {
		t.Error("cached record should hash like the parsed one")
	}

	opts.Refresh = true
	fresh, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute (refresh): %v", err)
	}
	if fresh.CacheInfo.LoadHit || fresh.CacheInfo.RenderHit {
		t.Errorf("refresh should bypass the cache: %+v", fresh.CacheInfo)
	}
}

func TestExecuteConfigChangeMissesCache(t *testing.T) {
	input := writeInput(t, "b1.csv", sheet)
	r := NewRunner(newMemCache(), nil, quietLogger())
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{Input: input}); err != nil {
		t.Fatal(err)
	}
	cfg := borelog.DefaultConfig()
	cfg.DepthScale = 35
	res, err := r.Execute(ctx, Options{Input: input, Config: &cfg})
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheInfo.LoadHit {
		t.Error("record should still come from the cache")
	}
	if res.CacheInfo.RenderHit {
		t.Error("a different config must not reuse cached artifacts")
	}
}

func TestExecuteJSONInput(t *testing.T) {
	input := writeInput(t, "b2.json", `{"boring":{"id":"B-2","totalDepth":8},"layers":[{"depthTop":0,"depthBottom":8,"uscs":"gw"}]}`)
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), Options{Input: input})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Record.Layers[0].USCS != "GW" {
		t.Errorf("layer code = %q, want GW", res.Record.Layers[0].USCS)
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()

	_, err := r.Execute(ctx, Options{Input: filepath.Join(t.TempDir(), "missing.csv")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing input: %v, want FILE_NOT_FOUND", err)
	}

	_, err = r.Execute(ctx, Options{Input: writeInput(t, "b.csv", "top,bottom\n")})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("header-only input: %v, want INVALID_INPUT", err)
	}
}

func TestRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Render(ctx, &boring.Record{Boring: boring.Metadata{ID: "B"}}, Options{})
	if err != context.Canceled {
		t.Errorf("Render with canceled context = %v, want context.Canceled", err)
	}
}

func TestSerializeUnsupported(t *testing.T) {
	cfg := borelog.DefaultConfig()
	s := borelog.Render(&boring.Record{}, cfg)
	_, err := Serialize(context.Background(), s, nil, Options{Formats: []string{"bmp"}})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Serialize(bmp) = %v, want UNSUPPORTED", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) add(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnLoadComplete(_ context.Context, _ string, _, _ int, _ time.Duration, err error) {
	h.add("load")
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	h.add("render")
}

func (h *recordingHooks) OnCacheHit(_ context.Context, keyType string)  { h.add("hit:" + keyType) }
func (h *recordingHooks) OnCacheMiss(_ context.Context, keyType string) { h.add("miss:" + keyType) }

func TestHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	t.Cleanup(observability.Reset)

	input := writeInput(t, "b1.csv", sheet)
	r := NewRunner(newMemCache(), cache.NewScopedKeyer(nil, "test:"), quietLogger())
	for range 2 {
		if _, err := r.Execute(context.Background(), Options{Input: input}); err != nil {
			t.Fatal(err)
		}
	}

	want := "miss:record,load,miss:artifact,render,hit:record,load,hit:artifact,render"
	if got := strings.Join(h.events, ","); got != want {
		t.Errorf("events = %s\nwant     %s", got, want)
	}
}

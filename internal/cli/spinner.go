package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/stratalog/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a single status line on w until stopped or until its
// context is cancelled. Registered as pipeline hooks, its message follows
// the stage the pipeline is in.
type Spinner struct {
	w       io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	started bool
	once    sync.Once

	mu      sync.Mutex
	message string
	widest  int
	halted  bool // stopped by the caller
}

// newSpinner creates a spinner drawing message on w.
func newSpinner(ctx context.Context, w io.Writer, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
		message: message,
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.started = true
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Pad to the widest message so a shorter one overwrites it fully.
	pad := max(s.widest-runewidth.StringWidth(s.message), 0)
	fmt.Fprintf(s.w, "\r%s %s%s", styleIconSpinner.Render(frame), StyleDim.Render(s.message), strings.Repeat(" ", pad))
}

// SetMessage replaces the text shown next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.widest = max(s.widest, runewidth.StringWidth(s.message))
	s.message = msg
}

// Message returns the current text.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Stop ends the animation and clears the line. It is safe to call more than
// once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.mu.Lock()
		s.halted = s.ctx.Err() == nil
		s.mu.Unlock()
		s.cancel()
		if s.started {
			<-s.stopped
		}
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	width := max(s.widest, runewidth.StringWidth(s.message)) + 2
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", width))
}

// Cancelled reports whether the parent context ended the spinner rather
// than a call to Stop.
func (s *Spinner) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.Err() != nil && !s.halted
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

func (s *Spinner) OnLoadStart(_ context.Context, source string) {
	s.SetMessage("Reading " + filepath.Base(source) + "...")
}

func (s *Spinner) OnLoadComplete(_ context.Context, _ string, layers, samples int, _ time.Duration, err error) {
	if err == nil {
		s.SetMessage(fmt.Sprintf("Loaded %s, %s", plural(layers, "layer"), plural(samples, "sample")))
	}
}

func (s *Spinner) OnRenderStart(_ context.Context, formats []string) {
	s.SetMessage("Rendering " + strings.Join(formats, ", ") + "...")
}

func (s *Spinner) OnRenderComplete(context.Context, []string, time.Duration, error) {}

var _ observability.PipelineHooks = (*Spinner)(nil)

package cli

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/errors"
	"github.com/matzehuels/stratalog/pkg/render/borelog"
	"github.com/matzehuels/stratalog/pkg/render/borelog/scene"
)

func editorRecord() *boring.Record {
	return &boring.Record{
		Boring: boring.Metadata{ID: "B-1", TotalDepth: 10},
		Layers: []boring.Layer{
			{DepthTop: 0, DepthBottom: 4, USCS: "SM", Description: "Silty sand"},
			{DepthTop: 4, DepthBottom: 10, USCS: "CL", Description: "Lean clay"},
		},
	}
}

func newTestEditor(save saveFunc) EditorModel {
	d := borelog.New(borelog.DefaultConfig())
	d.SetData(editorRecord())
	return NewEditorModel(d, save)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds keys to m and returns the resulting model.
func press(t *testing.T, m EditorModel, keys ...string) EditorModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(EditorModel)
	}
	return m
}

// typeText replaces the edit buffer with s.
func typeText(t *testing.T, m EditorModel, s string) EditorModel {
	t.Helper()
	for range []rune(m.Input) {
		m = press(t, m, "backspace")
	}
	for _, r := range s {
		if r == ' ' {
			m = press(t, m, "space")
			continue
		}
		m = press(t, m, string(r))
	}
	return m
}

func TestEditorNavigation(t *testing.T) {
	m := newTestEditor(nil)

	m = press(t, m, "down", "down")
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1 (clamped)", m.Cursor)
	}
	m = press(t, m, "up", "up")
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}

	m = press(t, m, "tab", "tab")
	if m.Field != fieldUSCS {
		t.Errorf("field = %v, want USCS", m.Field)
	}
	m = press(t, m, "h", "h", "h")
	if m.Field != fieldPID {
		t.Errorf("field = %v, want PID (wrapped)", m.Field)
	}
}

func TestEditorCommitRerenders(t *testing.T) {
	m := newTestEditor(nil)

	m = press(t, m, "tab", "tab", "enter")
	if !m.Editing || m.Input != "SM" {
		t.Fatalf("editing = %v, input = %q", m.Editing, m.Input)
	}
	m = typeText(t, m, "gp")
	m = press(t, m, "enter")

	if m.Editing || m.Err != nil {
		t.Fatalf("commit failed: editing = %v, err = %v", m.Editing, m.Err)
	}
	if got := m.record().Layers[0].USCS; got != "GP" {
		t.Errorf("USCS = %q, want GP", got)
	}
	if !m.Dirty {
		t.Error("model should be dirty after a change")
	}
	s := m.diagram.Scene()
	if !s.HasText(borelog.LegendLabel("GP")) || s.HasText(borelog.LegendLabel("SM")) {
		t.Error("diagram should be re-rendered with the new code")
	}
	if !strings.Contains(m.Status, "uscs") {
		t.Errorf("status = %q", m.Status)
	}
}

func TestEditorRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		field layerField
		input string
	}{
		{"negative top", fieldTop, "-1"},
		{"top below bottom", fieldTop, "5"},
		{"bottom not a number", fieldBottom, "deep"},
		{"bad code", fieldUSCS, "S M"},
		{"unknown moisture", fieldMoisture, "damp"},
		{"unknown odor", fieldOdor, "sweet"},
		{"bad pid", fieldPID, "lots"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestEditor(nil)
			orig := m.record().Layers[0]
			m.Field = tt.field
			m = press(t, m, "enter")
			m = typeText(t, m, tt.input)
			m = press(t, m, "enter")

			if !m.Editing {
				t.Error("invalid input should keep the cell in edit mode")
			}
			if !errors.Is(m.Err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT", m.Err)
			}
			if got := m.record().Layers[0]; got.DepthTop != orig.DepthTop || got.USCS != orig.USCS || got.Moisture != orig.Moisture {
				t.Errorf("layer changed on invalid input: %+v", got)
			}
			if !strings.Contains(m.View(), userMessage(m.Err)) {
				t.Error("view should show the validation message")
			}
		})
	}
}

func TestEditorCancel(t *testing.T) {
	m := newTestEditor(nil)
	m = press(t, m, "enter")
	m = typeText(t, m, "2")
	m = press(t, m, "esc")
	if m.Editing || m.record().Layers[0].DepthTop != 0 {
		t.Errorf("cancel should discard input: editing = %v, top = %v", m.Editing, m.record().Layers[0].DepthTop)
	}
}

func TestEditorOptionalFields(t *testing.T) {
	m := newTestEditor(nil)
	m.Field = fieldPID
	m = press(t, m, "enter")
	m = typeText(t, m, "12.5")
	m = press(t, m, "enter")
	if p := m.record().Layers[0].PID; p == nil || *p != 12.5 {
		t.Fatalf("PID = %v, want 12.5", p)
	}

	m = press(t, m, "enter")
	m = typeText(t, m, "")
	m = press(t, m, "enter")
	if p := m.record().Layers[0].PID; p != nil {
		t.Errorf("blank input should clear PID, got %v", *p)
	}

	m.Field = fieldMoisture
	m = press(t, m, "enter")
	m = typeText(t, m, "Wet")
	m = press(t, m, "enter")
	if got := m.record().Layers[0].Moisture; got != boring.MoistureWet {
		t.Errorf("moisture = %q, want wet", got)
	}

	m.Field = fieldDescription
	m = press(t, m, "enter")
	m = typeText(t, m, "Dense silty sand")
	m = press(t, m, "enter")
	if got := m.record().Layers[0].Description; got != "Dense silty sand" {
		t.Errorf("description = %q", got)
	}
}

func TestEditorAddDelete(t *testing.T) {
	m := newTestEditor(nil)

	m = press(t, m, "a")
	layers := m.record().Layers
	if len(layers) != 3 || m.Cursor != 1 {
		t.Fatalf("layers = %d, cursor = %d", len(layers), m.Cursor)
	}
	if layers[1].DepthTop != 4 || layers[1].DepthBottom != 5 {
		t.Errorf("new layer = [%v, %v], want [4, 5]", layers[1].DepthTop, layers[1].DepthBottom)
	}

	m = press(t, m, "down", "x")
	if len(m.record().Layers) != 2 || m.Cursor != 1 {
		t.Errorf("after delete: layers = %d, cursor = %d", len(m.record().Layers), m.Cursor)
	}
	m = press(t, m, "x", "x", "x")
	if len(m.record().Layers) != 0 || m.Cursor != 0 {
		t.Errorf("delete on empty: layers = %d, cursor = %d", len(m.record().Layers), m.Cursor)
	}
	if !strings.Contains(m.View(), "no layers") {
		t.Error("empty view should prompt to add a layer")
	}
	m = press(t, m, "a")
	if got := m.record().Layers; len(got) != 1 || got[0].DepthTop != 0 {
		t.Errorf("add on empty = %+v", got)
	}
}

func TestEditorToggleLegend(t *testing.T) {
	m := newTestEditor(nil)
	s := m.diagram.Scene()
	if len(s.Rects(borelog.ClassLegendSwatch)) == 0 {
		t.Fatal("legend should be shown by default")
	}
	m = press(t, m, "g")
	s = m.diagram.Scene()
	if len(s.Rects(borelog.ClassLegendSwatch)) != 0 {
		t.Error("legend should be hidden after toggling")
	}
	if !m.diagram.Config().HideLegend {
		t.Error("config should record the toggle")
	}
}

func TestEditorSave(t *testing.T) {
	var saved *boring.Record
	var savedScene scene.Scene
	m := newTestEditor(func(rec *boring.Record, s scene.Scene) ([]string, error) {
		saved, savedScene = rec, s
		return []string{"B-1.json", "B-1.svg"}, nil
	})

	m = press(t, m, "enter")
	m = typeText(t, m, "0.5")
	m = press(t, m, "enter", "s")

	if saved == nil || saved.Layers[0].DepthTop != 0.5 {
		t.Fatalf("saved record = %+v", saved)
	}
	if len(savedScene.Elements) == 0 {
		t.Error("save should receive the rendered scene")
	}
	if m.Dirty || len(m.Saved) != 2 {
		t.Errorf("dirty = %v, saved = %v", m.Dirty, m.Saved)
	}
}

func TestEditorSaveError(t *testing.T) {
	m := newTestEditor(func(*boring.Record, scene.Scene) ([]string, error) {
		return nil, errors.New(errors.ErrCodeInternal, "disk full")
	})
	m = press(t, m, "s")
	if m.Err == nil || len(m.Saved) != 0 {
		t.Errorf("err = %v, saved = %v", m.Err, m.Saved)
	}
	if !strings.Contains(m.View(), "disk full") {
		t.Error("view should show the save error")
	}
}

func TestEditorQuit(t *testing.T) {
	m := newTestEditor(nil)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}

	// While editing, q is text.
	m = press(t, m, "tab", "tab", "tab", "enter")
	next, cmd := m.Update(key("q"))
	if cmd != nil || !strings.HasSuffix(next.(EditorModel).Input, "q") {
		t.Error("q should be typed while editing")
	}
}

func TestUserMessage(t *testing.T) {
	_, fieldErr := errors.ParseDepth("depthTop", "-2")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"field", fieldErr, "depthTop: depth cannot be negative"},
		{"coded", errors.New(errors.ErrCodeInvalidInput, "no data rows"), "no data rows"},
		{"wrapped", fmt.Errorf("config log.toml: %w", errors.New(errors.ErrCodeInvalidConfig, "unknown keys: foo")), "config log.toml: unknown keys: foo"},
		{"plain", stderrors.New("disk full"), "disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := userMessage(tt.err); got != tt.want {
				t.Errorf("userMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

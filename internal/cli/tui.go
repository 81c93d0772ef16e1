package cli

import (
	stderrors "errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/stratalog/pkg/boring"
	"github.com/matzehuels/stratalog/pkg/errors"
	"github.com/matzehuels/stratalog/pkg/render/borelog"
	"github.com/matzehuels/stratalog/pkg/render/borelog/scene"
)

// Editor styles
var (
	editorCellStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	editorCursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editorEditingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	editorDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Fields
// =============================================================================

// layerField identifies an editable layer attribute.
type layerField int

const (
	fieldTop layerField = iota
	fieldBottom
	fieldUSCS
	fieldDescription
	fieldMoisture
	fieldOdor
	fieldPID
	numLayerFields
)

var layerFieldNames = [numLayerFields]string{"Top", "Bottom", "USCS", "Description", "Moisture", "Odor", "PID"}

// value returns the text shown for field f of l.
func (f layerField) value(l boring.Layer) string {
	switch f {
	case fieldTop:
		return strconv.FormatFloat(l.DepthTop, 'f', -1, 64)
	case fieldBottom:
		return strconv.FormatFloat(l.DepthBottom, 'f', -1, 64)
	case fieldUSCS:
		return l.USCS
	case fieldDescription:
		return l.Description
	case fieldMoisture:
		return string(l.Moisture)
	case fieldOdor:
		return string(l.Odor)
	case fieldPID:
		if l.PID == nil {
			return ""
		}
		return strconv.FormatFloat(*l.PID, 'f', -1, 64)
	}
	return ""
}

// apply validates text and stores it into field f of l. l is left unchanged
// on error.
func (f layerField) apply(l *boring.Layer, text string) error {
	text = strings.TrimSpace(text)
	switch f {
	case fieldTop:
		v, err := errors.ParseDepth("depthTop", text)
		if err != nil {
			return err
		}
		if err := errors.ValidateInterval("layer", v, l.DepthBottom); err != nil {
			return err
		}
		l.DepthTop = v
	case fieldBottom:
		v, err := errors.ParseDepth("depthBottom", text)
		if err != nil {
			return err
		}
		if err := errors.ValidateInterval("layer", l.DepthTop, v); err != nil {
			return err
		}
		l.DepthBottom = v
	case fieldUSCS:
		if err := errors.ValidateCode("uscs", text); err != nil {
			return err
		}
		l.USCS = boring.NormalizeCode(text)
	case fieldDescription:
		if err := errors.ValidateText("description", text); err != nil {
			return err
		}
		if text == "" {
			text = boring.DefaultDescription
		}
		l.Description = text
	case fieldMoisture:
		if err := errors.ValidateEnum("moisture", text, boring.MoistureValues); err != nil {
			return err
		}
		l.Moisture = boring.Moisture(strings.ToLower(text))
	case fieldOdor:
		if err := errors.ValidateEnum("odor", text, boring.OdorValues); err != nil {
			return err
		}
		l.Odor = boring.Odor(strings.ToLower(text))
	case fieldPID:
		v, err := errors.ParseOptionalNumber("pid", text)
		if err != nil {
			return err
		}
		l.PID = v
	}
	return nil
}

// =============================================================================
// EditorModel - Interactive layer editing
// =============================================================================

// saveFunc persists the record and the scene currently displayed and
// returns the paths written.
type saveFunc func(rec *boring.Record, s scene.Scene) ([]string, error)

// EditorModel is the bubbletea model for editing the layers of a boring.
// Every committed change re-renders the diagram; invalid input is rejected
// with the validator's message and the record stays unchanged.
type EditorModel struct {
	diagram *borelog.Diagram
	save    saveFunc

	Cursor  int
	Field   layerField
	Editing bool
	Input   string
	Height  int
	Offset  int

	Status string
	Err    error
	Dirty  bool
	Saved  []string
}

// NewEditorModel creates an editor over the record held by d.
func NewEditorModel(d *borelog.Diagram, save saveFunc) EditorModel {
	if d.Data() == nil {
		d.SetData(&boring.Record{})
	}
	return EditorModel{diagram: d, save: save, Height: 15}
}

func (m EditorModel) record() *boring.Record { return m.diagram.Data() }

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Editing {
			return m.updateEditing(msg), nil
		}
		return m.updateBrowsing(msg)
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m EditorModel) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	layers := m.record().Layers
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
			if m.Cursor < m.Offset {
				m.Offset = m.Cursor
			}
		}
	case "down", "j":
		if m.Cursor < len(layers)-1 {
			m.Cursor++
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case "right", "l", "tab":
		m.Field = (m.Field + 1) % numLayerFields
	case "left", "h", "shift+tab":
		m.Field = (m.Field + numLayerFields - 1) % numLayerFields
	case "enter", "e":
		if len(layers) > 0 {
			m.Editing = true
			m.Input = m.Field.value(layers[m.Cursor])
			m.Err = nil
		}
	case "a":
		m = m.addLayer()
	case "x", "delete":
		m = m.deleteLayer()
	case "g":
		cfg := m.diagram.Config()
		cfg.HideLegend = !cfg.HideLegend
		m.diagram.SetConfig(cfg)
		m.Status = fmt.Sprintf("Legend %s", onOff(!cfg.HideLegend))
	case "s":
		m = m.saveRecord()
	}
	return m, nil
}

func (m EditorModel) updateEditing(msg tea.KeyMsg) EditorModel {
	switch msg.Type {
	case tea.KeyEnter:
		m = m.commit()
	case tea.KeyEsc, tea.KeyCtrlC:
		m.Editing = false
		m.Input = ""
		m.Err = nil
	case tea.KeyBackspace:
		if r := []rune(m.Input); len(r) > 0 {
			m.Input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.Input += " "
	case tea.KeyRunes:
		m.Input += string(msg.Runes)
	}
	return m
}

// commit applies the input to the selected cell and re-renders.
func (m EditorModel) commit() EditorModel {
	rec := m.record()
	layer := rec.Layers[m.Cursor]
	if err := m.Field.apply(&layer, m.Input); err != nil {
		m.Err = err
		return m
	}
	rec.Layers[m.Cursor] = layer
	m.Editing = false
	m.Input = ""
	m.Err = nil
	m.Dirty = true
	s := m.diagram.Render()
	m.Status = fmt.Sprintf("Updated %s of layer %d (%d elements)", strings.ToLower(layerFieldNames[m.Field]), m.Cursor+1, len(s.Elements))
	return m
}

// addLayer inserts a one-unit layer below the selected one.
func (m EditorModel) addLayer() EditorModel {
	rec := m.record()
	top := 0.0
	if len(rec.Layers) > 0 {
		top = rec.Layers[m.Cursor].DepthBottom
	}
	l := boring.Layer{DepthTop: top, DepthBottom: top + 1, Description: boring.DefaultDescription}

	at := 0
	if len(rec.Layers) > 0 {
		at = m.Cursor + 1
	}
	rec.Layers = slices.Insert(rec.Layers, at, l)
	m.Cursor = at
	m.Dirty = true
	m.diagram.Render()
	m.Status = fmt.Sprintf("Added layer %d", at+1)
	return m
}

func (m EditorModel) deleteLayer() EditorModel {
	rec := m.record()
	if len(rec.Layers) == 0 {
		return m
	}
	rec.Layers = slices.Delete(rec.Layers, m.Cursor, m.Cursor+1)
	m.Status = fmt.Sprintf("Deleted layer %d", m.Cursor+1)
	if m.Cursor >= len(rec.Layers) && m.Cursor > 0 {
		m.Cursor--
	}
	m.Offset = min(m.Offset, m.Cursor)
	m.Dirty = true
	m.diagram.Render()
	return m
}

func (m EditorModel) saveRecord() EditorModel {
	if m.save == nil {
		return m
	}
	rec := m.record()
	rec.Normalize()
	s := m.diagram.Render()
	m.Cursor = min(m.Cursor, max(len(rec.Layers)-1, 0))

	paths, err := m.save(rec, s)
	if err != nil {
		m.Err = err
		return m
	}
	m.Saved = paths
	m.Dirty = false
	m.Err = nil
	m.Status = "Saved " + strings.Join(paths, ", ")
	return m
}

func (m EditorModel) View() string {
	var b strings.Builder
	rec := m.record()

	b.WriteString(StyleTitle.Render("Editing " + displayID(rec)))
	if m.Dirty {
		b.WriteString(StyleWarning.Render(" *"))
	}
	b.WriteString("\n")
	if m.Editing {
		b.WriteString(editorDimStyle.Render("type to edit  ⏎ apply  esc cancel"))
	} else {
		b.WriteString(editorDimStyle.Render("↑/↓ layer  ←/→ field  ⏎ edit  a add  x delete  g legend  s save  q quit"))
	}
	b.WriteString("\n\n")

	if len(rec.Layers) == 0 {
		b.WriteString(editorDimStyle.Render("  no layers; press a to add one"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.layerTable(rec))
		b.WriteString("\n")
	}

	s := m.diagram.Scene()
	b.WriteString(editorDimStyle.Render(fmt.Sprintf("  [%d/%d]  diagram %.0f×%.0f, %d elements",
		min(m.Cursor+1, len(rec.Layers)), len(rec.Layers), s.Width, s.Height, len(s.Elements))))
	b.WriteString("\n")

	switch {
	case m.Err != nil:
		b.WriteString(StyleError.Render(userMessage(m.Err)))
	case m.Status != "":
		b.WriteString(StyleSuccess.Render(m.Status))
	}
	return b.String()
}

func (m EditorModel) layerTable(rec *boring.Record) string {
	end := min(m.Offset+m.Height, len(rec.Layers))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		row := make([]string, numLayerFields)
		for f := range numLayerFields {
			v := f.value(rec.Layers[i])
			if m.Editing && i == m.Cursor && f == m.Field {
				v = m.Input + "▏"
			}
			row[f] = v
		}
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(layerFieldNames[:]...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row != m.Cursor {
				return editorCellStyle
			}
			if layerField(col) == m.Field {
				if m.Editing {
					return editorEditingStyle
				}
				return editorCursorStyle.Underline(true)
			}
			return editorCursorStyle
		})
	return t.Render()
}

// userMessage formats err for display, naming the field for
// validation errors.
func userMessage(err error) string {
	var fe *errors.FieldError
	if stderrors.As(err, &fe) {
		return fe.Field + ": " + errors.UserMessage(fe.Err)
	}
	if code := errors.GetCode(err); code != "" {
		return strings.Replace(err.Error(), string(code)+": ", "", 1)
	}
	return err.Error()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

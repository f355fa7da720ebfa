package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spoke-dev/spoke/internal/resource"
	"github.com/spoke-dev/spoke/internal/tui"
)

// SubmitFormMsg is sent when the user submits the create/edit form.
type SubmitFormMsg struct{}

// RefreshMsg is sent when the user asks for a collection re-fetch.
type RefreshMsg struct{}

// DeleteConfirmedMsg is sent after the user answered the delete prompt
// affirmatively. Index addresses the listed record.
type DeleteConfirmedMsg struct {
	Index int
}

// GoHomeMsg is sent when the user leaves the resource screen.
type GoHomeMsg struct{}

// viewMode is the sub-state of a resource screen.
type viewMode int

const (
	modeBrowse viewMode = iota
	modeForm
	modeConfirm
)

// formInput pairs a field definition with its input state. Select fields
// track an option index instead of free text.
type formInput struct {
	field resource.Field
	input textinput.Model
	opt   int
}

// ResourceModel is the one generic screen serving all eight resource
// variants: list pane, create/edit form and delete confirmation prompt,
// all driven by the injected Screen.
type ResourceModel struct {
	screen resource.Screen

	mode          viewMode
	cursor        int
	focus         int
	inputs        []formInput
	pendingDelete int

	width  int
	height int
}

// NewResourceModel creates the screen for one resource controller.
func NewResourceModel(screen resource.Screen, width, height int) ResourceModel {
	m := ResourceModel{
		screen: screen,
		width:  width,
		height: height,
	}
	m.rebuildInputs()
	return m
}

// Init returns the initial command for the resource view.
func (m ResourceModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the resource view.
func (m ResourceModel) Update(msg tea.Msg) (ResourceModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeBrowse:
			return m.updateBrowse(msg)
		case modeForm:
			return m.updateForm(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	if m.mode == modeForm {
		return m.updateFocusedInput(msg)
	}
	return m, nil
}

func (m ResourceModel) updateBrowse(msg tea.KeyMsg) (ResourceModel, tea.Cmd) {
	keys := tui.DefaultKeyMap
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < m.screen.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.New):
		m.screen.CancelEdit()
		m.enterForm()
	case key.Matches(msg, keys.Edit):
		if m.screen.BeginEditIndex(m.cursor) {
			m.enterForm()
		}
	case key.Matches(msg, keys.Delete):
		if m.screen.Len() > 0 {
			m.pendingDelete = m.cursor
			m.mode = modeConfirm
		}
	case key.Matches(msg, keys.Refresh):
		return m, func() tea.Msg { return RefreshMsg{} }
	case key.Matches(msg, keys.Escape):
		return m, func() tea.Msg { return GoHomeMsg{} }
	}
	return m, nil
}

func (m ResourceModel) updateForm(msg tea.KeyMsg) (ResourceModel, tea.Cmd) {
	switch msg.String() {
	case tui.KeyEsc:
		m.screen.CancelEdit()
		m.rebuildInputs()
		m.mode = modeBrowse
		return m, nil

	case "ctrl+s":
		if !m.screen.Busy() {
			return m, func() tea.Msg { return SubmitFormMsg{} }
		}
		return m, nil

	case tui.KeyEnter:
		if m.focus == len(m.inputs)-1 {
			if !m.screen.Busy() {
				return m, func() tea.Msg { return SubmitFormMsg{} }
			}
			return m, nil
		}
		m.setFocus(m.focus + 1)
		return m, nil

	case tui.KeyTab, tui.KeyDown:
		m.setFocus((m.focus + 1) % len(m.inputs))
		return m, nil

	case "shift+tab", tui.KeyUp:
		m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
		return m, nil

	case tui.KeyLeft, tui.KeyRight:
		if in := &m.inputs[m.focus]; in.field.Kind == resource.Select {
			n := len(in.field.Options)
			if n > 0 {
				if msg.String() == tui.KeyRight {
					in.opt = (in.opt + 1) % n
				} else {
					in.opt = (in.opt + n - 1) % n
				}
				m.screen.SetField(in.field.Name, in.field.Options[in.opt])
			}
			return m, nil
		}
	}

	return m.updateFocusedInput(msg)
}

func (m ResourceModel) updateConfirm(msg tea.KeyMsg) (ResourceModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		index := m.pendingDelete
		m.mode = modeBrowse
		return m, func() tea.Msg { return DeleteConfirmedMsg{Index: index} }
	case "n", "N", tui.KeyEsc:
		m.mode = modeBrowse
	}
	return m, nil
}

// updateFocusedInput forwards a message to the focused text input and
// mirrors the typed value into the controller's form buffer.
func (m ResourceModel) updateFocusedInput(msg tea.Msg) (ResourceModel, tea.Cmd) {
	if len(m.inputs) == 0 || m.inputs[m.focus].field.Kind == resource.Select {
		return m, nil
	}
	var cmd tea.Cmd
	in := &m.inputs[m.focus]
	in.input, cmd = in.input.Update(msg)
	m.screen.SetField(in.field.Name, in.input.Value())
	return m, cmd
}

// AfterSubmit resynchronizes the view once a submit round-trip finished.
// Success returns to the list with a fresh default form; failure keeps the
// form exactly as the user left it for correction and retry.
func (m *ResourceModel) AfterSubmit(err error) {
	if err != nil {
		return
	}
	m.rebuildInputs()
	m.mode = modeBrowse
	m.clampCursor()
}

// AfterListChange clamps the cursor after the collection was replaced.
func (m *ResourceModel) AfterListChange() {
	m.clampCursor()
}

// View renders the resource view.
func (m ResourceModel) View() string {
	switch m.mode {
	case modeForm:
		return m.viewForm()
	case modeConfirm:
		return m.viewConfirm()
	default:
		return m.viewBrowse()
	}
}

func (m ResourceModel) viewBrowse() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render(m.screen.Title()))
	b.WriteString("\n\n")

	if m.screen.Busy() {
		b.WriteString(tui.DimStyle.Render("Loading..."))
		b.WriteString("\n\n")
	}

	cols := m.screen.Columns()
	b.WriteString("  " + tui.HeaderStyle.Render(renderRow(cols)))
	b.WriteString("\n")

	rows := m.screen.Rows()
	if len(rows) == 0 {
		b.WriteString(tui.DimStyle.Render("  (no records)"))
		b.WriteString("\n")
	}
	for i, row := range rows {
		line := renderRow(row)
		if i == m.cursor {
			b.WriteString(tui.SelectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("n: New    e: Edit    d: Delete    r: Refresh    Esc: Back"))

	return tui.BoxStyle.Width(m.boxWidth()).Render(b.String())
}

func (m ResourceModel) viewForm() string {
	var b strings.Builder

	editing, id := m.screen.Editing()
	if editing {
		b.WriteString(tui.TitleStyle.Render(fmt.Sprintf("Edit %s #%d", m.screen.Title(), id)))
	} else {
		b.WriteString(tui.TitleStyle.Render("Add New " + m.screen.Title()))
	}
	b.WriteString("\n\n")

	for i, in := range m.inputs {
		label := in.field.Label
		if in.field.Required {
			label += " *"
		}
		if i == m.focus {
			b.WriteString(tui.SelectedStyle.Render(label))
		} else {
			b.WriteString(label)
		}
		b.WriteString("\n")

		if in.field.Kind == resource.Select {
			value := m.screen.FormValue(in.field.Name)
			marker := "  "
			if i == m.focus {
				marker = "◄ "
			}
			b.WriteString(fmt.Sprintf("%s%s %s\n", marker, value, markerRight(i == m.focus)))
		} else {
			b.WriteString(in.input.View())
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Ctrl+S: Save    Tab: Next field    Esc: Cancel"))

	return tui.BoxStyle.Width(m.boxWidth()).Render(b.String())
}

func (m ResourceModel) viewConfirm() string {
	var b strings.Builder

	id, _ := m.screen.RecordID(m.pendingDelete)
	b.WriteString(tui.TitleStyle.Render(m.screen.Title()))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Are you sure you want to delete record #%d?", id))
	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("y: Delete    n: Keep"))

	return tui.BoxStyle.Width(m.boxWidth()).Render(b.String())
}

// enterForm rebuilds the inputs from the controller's form buffer and
// switches into form mode.
func (m *ResourceModel) enterForm() {
	m.rebuildInputs()
	m.mode = modeForm
}

// rebuildInputs re-seeds the per-field inputs from the controller's form
// buffer, focusing the first field.
func (m *ResourceModel) rebuildInputs() {
	fields := m.screen.Fields()
	inputs := make([]formInput, len(fields))
	for i, field := range fields {
		in := textinput.New()
		in.Placeholder = field.Label
		in.CharLimit = 500
		in.Width = 50
		in.SetValue(m.screen.FormValue(field.Name))
		if field.Kind == resource.Password {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		opt := 0
		for j, option := range field.Options {
			if option == m.screen.FormValue(field.Name) {
				opt = j
			}
		}
		inputs[i] = formInput{field: field, input: in, opt: opt}
	}
	m.inputs = inputs
	m.focus = 0
	if len(m.inputs) > 0 {
		m.inputs[0].input.Focus()
	}
}

func (m *ResourceModel) setFocus(i int) {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focus].input.Blur()
	m.focus = i
	m.inputs[m.focus].input.Focus()
}

func (m *ResourceModel) clampCursor() {
	if n := m.screen.Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m ResourceModel) boxWidth() int {
	return min(m.width-4, 100)
}

// renderRow pads each cell to a fixed width for the list pane.
func renderRow(cells []string) string {
	const cellWidth = 14
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if len(cell) > cellWidth {
			cell = cell[:cellWidth-1] + "…"
		}
		parts[i] = fmt.Sprintf("%-*s", cellWidth, cell)
	}
	return strings.TrimRight(strings.Join(parts, " "), " ")
}

func markerRight(focused bool) string {
	if focused {
		return "►"
	}
	return ""
}

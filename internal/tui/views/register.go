package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spoke-dev/spoke/internal/tui"
)

// SubmitRegisterMsg is sent when the user submits the registration form.
type SubmitRegisterMsg struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// GoLoginMsg is sent when the user switches back to the login view.
type GoLoginMsg struct{}

// RegisterModel is the view model for the registration screen.
type RegisterModel struct {
	inputs []textinput.Model
	focus  int
	width  int
	height int
}

// NewRegisterModel creates the registration view. Role is free text and
// defaults to "customer" when left blank.
func NewRegisterModel(width, height int) RegisterModel {
	mk := func(placeholder string) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 100
		in.Width = 40
		return in
	}

	inputs := []textinput.Model{
		mk("Username"),
		mk("Email"),
		mk("Password"),
		mk("First Name"),
		mk("Last Name"),
		mk("Role (customer)"),
	}
	inputs[2].EchoMode = textinput.EchoPassword
	inputs[2].EchoCharacter = '•'
	inputs[0].Focus()

	return RegisterModel{
		inputs: inputs,
		width:  width,
		height: height,
	}
}

// Init returns the initial command for the registration view.
func (m RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the registration view.
func (m RegisterModel) Update(msg tea.Msg) (RegisterModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEnter:
			username := strings.TrimSpace(m.inputs[0].Value())
			email := strings.TrimSpace(m.inputs[1].Value())
			password := m.inputs[2].Value()
			if username != "" && email != "" && password != "" {
				return m, func() tea.Msg {
					return SubmitRegisterMsg{
						Username:  username,
						Email:     email,
						Password:  password,
						FirstName: strings.TrimSpace(m.inputs[3].Value()),
						LastName:  strings.TrimSpace(m.inputs[4].Value()),
						Role:      strings.TrimSpace(m.inputs[5].Value()),
					}
				}
			}
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil

		case tui.KeyTab, tui.KeyDown:
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil

		case "shift+tab", tui.KeyUp:
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, nil

		case tui.KeyEsc:
			return m, func() tea.Msg { return GoLoginMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View renders the registration view.
func (m RegisterModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Cycle Repair Management"))
	b.WriteString("\n\n")
	b.WriteString("Register\n\n")

	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Enter: Register    Esc: Back to login    Ctrl+C: Exit"))

	return tui.BoxStyle.Width(min(m.width-4, 60)).Render(b.String())
}

func (m *RegisterModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

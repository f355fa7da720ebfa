// Package views provides TUI view components for the admin client. Views
// hold per-screen state only; collections and form buffers are discarded
// when a view unmounts.
package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spoke-dev/spoke/internal/tui"
)

// SubmitLoginMsg is sent when the user submits credentials.
type SubmitLoginMsg struct {
	Username string
	Password string
}

// GoRegisterMsg is sent when the user switches to the registration view.
type GoRegisterMsg struct{}

// LoginModel is the view model for the login screen.
type LoginModel struct {
	inputs []textinput.Model
	focus  int
	width  int
	height int
}

// NewLoginModel creates the login view with empty credential inputs.
func NewLoginModel(width, height int) LoginModel {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 100
	username.Width = 40
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 100
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return LoginModel{
		inputs: []textinput.Model{username, password},
		width:  width,
		height: height,
	}
}

// Init returns the initial command for the login view.
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the login view.
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEnter:
			username := strings.TrimSpace(m.inputs[0].Value())
			password := m.inputs[1].Value()
			if username != "" && password != "" {
				return m, func() tea.Msg {
					return SubmitLoginMsg{Username: username, Password: password}
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

		case "ctrl+r":
			return m, func() tea.Msg { return GoRegisterMsg{} }
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

// View renders the login view.
func (m LoginModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Cycle Repair Management"))
	b.WriteString("\n\n")
	b.WriteString("Login\n\n")

	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("Enter: Login    Ctrl+R: Register    Ctrl+C: Exit"))

	return tui.BoxStyle.Width(min(m.width-4, 60)).Render(b.String())
}

func (m *LoginModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

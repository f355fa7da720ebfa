package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spoke-dev/spoke/internal/model"
	"github.com/spoke-dev/spoke/internal/tui"
)

// OpenResourceMsg is sent when the user selects a resource screen.
type OpenResourceMsg struct {
	Name string
}

// RequestLogoutMsg is sent when the user asks to log out.
type RequestLogoutMsg struct{}

// MenuEntry is one selectable resource on the home screen.
type MenuEntry struct {
	Name  string
	Title string
}

// HomeModel is the view model for the authenticated home screen.
type HomeModel struct {
	entries  []MenuEntry
	cursor   int
	identity *model.Identity
	width    int
	height   int
}

// NewHomeModel creates the home view with the given resource menu.
func NewHomeModel(entries []MenuEntry, width, height int) HomeModel {
	return HomeModel{
		entries: entries,
		width:   width,
		height:  height,
	}
}

// Init returns the initial command for the home view.
func (m HomeModel) Init() tea.Cmd {
	return nil
}

// SetIdentity records the resolved identity for the welcome line.
func (m *HomeModel) SetIdentity(ident *model.Identity) {
	m.identity = ident
}

// Update handles messages for the home view.
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		keys := tui.DefaultKeyMap
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if len(m.entries) > 0 {
				name := m.entries[m.cursor].Name
				return m, func() tea.Msg { return OpenResourceMsg{Name: name} }
			}
		case key.Matches(msg, keys.Logout):
			return m, func() tea.Msg { return RequestLogoutMsg{} }
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the home view.
func (m HomeModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Cycle Repair Management"))
	b.WriteString("\n\n")

	if m.identity != nil {
		b.WriteString(fmt.Sprintf("Logged in as: %s (%s) - Role: %s\n\n",
			m.identity.Username, m.identity.Email, m.identity.Role))
	} else {
		b.WriteString(tui.DimStyle.Render("Resolving identity..."))
		b.WriteString("\n\n")
	}

	for i, entry := range m.entries {
		if i == m.cursor {
			b.WriteString(tui.SelectedStyle.Render("> " + entry.Title))
		} else {
			b.WriteString("  " + entry.Title)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("↑/↓: Move    Enter: Open    q: Logout    Ctrl+C: Exit"))

	return tui.BoxStyle.Width(min(m.width-4, 60)).Render(b.String())
}

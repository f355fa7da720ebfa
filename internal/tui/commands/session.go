// Package commands provides Bubble Tea commands for TUI operations. Each
// command runs one blocking operation off the event loop and resumes the
// shell with a typed message.
package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spoke-dev/spoke/internal/session"
	"github.com/spoke-dev/spoke/internal/tui"
)

// LoginCmd exchanges credentials for a token.
func LoginCmd(sess *session.Manager, username, password string) tea.Cmd {
	return func() tea.Msg {
		return tui.LoginResultMsg{Err: sess.Login(username, password)}
	}
}

// RegisterCmd creates a new account without authenticating the caller.
func RegisterCmd(sess *session.Manager, username, email, password, firstName, lastName, role string) tea.Cmd {
	return func() tea.Msg {
		return tui.RegisterResultMsg{Err: sess.Register(username, email, password, firstName, lastName, role)}
	}
}

// FetchIdentityCmd resolves the current identity from the held token.
// Issued whenever the token changes, including at startup.
func FetchIdentityCmd(sess *session.Manager) tea.Cmd {
	return func() tea.Msg {
		ident, err := sess.FetchIdentity()
		return tui.IdentityMsg{Identity: ident, Err: err}
	}
}

// LogoutCmd clears the session.
func LogoutCmd(sess *session.Manager) tea.Cmd {
	return func() tea.Msg {
		sess.Logout()
		return tui.LoggedOutMsg{}
	}
}

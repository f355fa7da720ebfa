package commands

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spoke-dev/spoke/internal/api"
	"github.com/spoke-dev/spoke/internal/resource"
	"github.com/spoke-dev/spoke/internal/session"
	"github.com/spoke-dev/spoke/internal/tui"
)

// escalate applies the 401 rule for controller operations: the first
// authorization failure ends the session and converts the result into a
// SessionExpiredMsg so the shell navigates exactly once.
func escalate(sess *session.Manager, err error) (tea.Msg, bool) {
	if err != nil && errors.Is(err, api.ErrUnauthorized) && sess.Expire(err) {
		return tui.SessionExpiredMsg{}, true
	}
	return nil, false
}

// ListCmd fetches the screen's collection.
func ListCmd(screen resource.Screen, sess *session.Manager, gen int) tea.Cmd {
	return func() tea.Msg {
		err := screen.List()
		if msg, ok := escalate(sess, err); ok {
			return msg
		}
		return tui.ListDoneMsg{Gen: gen, Err: err}
	}
}

// SubmitCmd sends the screen's form buffer and resynchronizes.
func SubmitCmd(screen resource.Screen, sess *session.Manager, gen int) tea.Cmd {
	return func() tea.Msg {
		err := screen.Submit()
		if msg, ok := escalate(sess, err); ok {
			return msg
		}
		return tui.SubmitDoneMsg{Gen: gen, Err: err}
	}
}

// RemoveCmd deletes the record at the given list index and resynchronizes.
func RemoveCmd(screen resource.Screen, sess *session.Manager, gen, index int) tea.Cmd {
	return func() tea.Msg {
		err := screen.RemoveIndex(index)
		if msg, ok := escalate(sess, err); ok {
			return msg
		}
		return tui.RemoveDoneMsg{Gen: gen, Err: err}
	}
}

package tui

import "github.com/spoke-dev/spoke/internal/model"

// ============================================================================
// Session Messages
// ============================================================================

// LoginResultMsg reports the outcome of a login attempt.
type LoginResultMsg struct {
	Err error
}

// RegisterResultMsg reports the outcome of a registration attempt.
type RegisterResultMsg struct {
	Err error
}

// IdentityMsg delivers the resolved identity after a token change.
type IdentityMsg struct {
	Identity *model.Identity
	Err      error
}

// SessionExpiredMsg signals that a 401 ended the session. Sent at most once
// per authorization failure; the shell navigates to the login view.
type SessionExpiredMsg struct{}

// LoggedOutMsg signals that a user-initiated logout completed.
type LoggedOutMsg struct{}

// ============================================================================
// Resource Messages
// ============================================================================

// ListDoneMsg signals that a collection fetch finished. Gen identifies the
// screen generation the fetch was issued under.
type ListDoneMsg struct {
	Gen int
	Err error
}

// SubmitDoneMsg signals that a create/update round-trip (including its
// follow-up fetch) finished.
type SubmitDoneMsg struct {
	Gen int
	Err error
}

// RemoveDoneMsg signals that a delete round-trip (including its follow-up
// fetch) finished.
type RemoveDoneMsg struct {
	Gen int
	Err error
}

// ============================================================================
// Utility Messages
// ============================================================================

// CtrlCResetMsg clears the Ctrl+C confirmation state after its timeout.
type CtrlCResetMsg struct{}

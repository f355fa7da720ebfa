package tui

import (
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/spoke-dev/spoke/internal/resource"
	"github.com/spoke-dev/spoke/internal/session"
	"github.com/spoke-dev/spoke/internal/status"
)

// ViewState represents the current state of the TUI.
type ViewState int

const (
	StateLogin ViewState = iota
	StateRegister
	StateHome
	StateResource
)

// Model is the main TUI model that holds the shared application state.
// Per-screen state (collections, form buffers) lives in the view models
// and is discarded when the screen unmounts.
type Model struct {
	// State management
	State ViewState

	// Session and shared collaborators
	Session *session.Manager
	Status  *status.Reporter
	Deps    resource.Deps

	// Gen is the screen generation counter. Command results carry the
	// generation they were issued under; results from an unmounted screen
	// no longer match and are discarded.
	Gen int

	// Spinner shown while a controller is busy
	Spinner spinner.Model

	// Terminal dimensions
	Width  int
	Height int

	// Ctrl+C confirmation state
	CtrlCPending bool // True when waiting for second Ctrl+C press
}

// NewModel creates a new Model wired to the shared session and status.
func NewModel(sess *session.Manager, reporter *status.Reporter, deps resource.Deps) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	state := StateLogin
	if sess.Authenticated() {
		state = StateHome
	}

	return &Model{
		State:   state,
		Session: sess,
		Status:  reporter,
		Deps:    deps,
		Spinner: sp,
		Width:   80,
		Height:  24,
	}
}

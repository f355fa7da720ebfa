// Package status holds the latest user-visible operation outcome.
// A single Reporter is constructed by the shell and injected into the
// session manager and every resource controller, so ownership is visible
// at construction time rather than hidden in a package global.
package status

import (
	"fmt"
	"sync"
)

// Kind classifies a status message.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	None    Kind = ""
)

// Status is the most recent operation outcome. It is ephemeral: every
// operation clears it before starting and overwrites it when done.
type Status struct {
	Text string
	Kind Kind
}

// Reporter is the shared slot for the current Status. Safe for use from
// command goroutines.
type Reporter struct {
	mu  sync.Mutex
	cur Status
}

// NewReporter returns an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Clear resets the slot. Called at the start of every operation so stale
// messages never survive into the next one.
func (r *Reporter) Clear() {
	r.set(Status{})
}

// Successf records a success message.
func (r *Reporter) Successf(format string, args ...any) {
	r.set(Status{Text: fmt.Sprintf(format, args...), Kind: Success})
}

// Errorf records an error message. Backend-supplied text must go through
// a "%s" verb, never as the format itself.
func (r *Reporter) Errorf(format string, args ...any) {
	r.set(Status{Text: fmt.Sprintf(format, args...), Kind: Error})
}

// Current returns the latest status.
func (r *Reporter) Current() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cur
}

func (r *Reporter) set(s Status) {
	r.mu.Lock()
	r.cur = s
	r.mu.Unlock()
}

package resource

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spoke-dev/spoke/internal/api"
	"github.com/spoke-dev/spoke/internal/audit"
	"github.com/spoke-dev/spoke/internal/status"
)

// Spec configures a Controller for one resource variant. The two normalize
// hooks encapsulate per-resource quirks (date expansion, comma-separated
// lists, password handling) without changing the controller's shape.
type Spec[R any] struct {
	Name     string // endpoint name, e.g. "custom_builds"
	Title    string // plural display name, e.g. "Custom Builds"
	Singular string // singular display name, e.g. "Custom Build"
	Path     string // endpoint path, e.g. "/custom_builds"

	Fields  []Field
	Columns []string

	// ID extracts the backend-assigned identifier.
	ID func(R) int64
	// Row renders one record as list columns.
	Row func(R) []string
	// OnSubmit converts the form buffer to the outbound JSON body.
	// editing distinguishes update from create for fields like passwords.
	OnSubmit func(f Form, editing bool) map[string]any
	// OnEdit loads an existing record into a form buffer.
	OnEdit func(R) Form
}

// Deps are the collaborators shared across controller instances. Confirm is
// the external confirmation prompt consulted before any delete; a nil or
// negative Confirm makes Remove a no-op.
type Deps struct {
	Client  *api.Client
	Status  *status.Reporter
	Audit   *audit.Logger
	Confirm func(id int64) bool
}

// Controller owns the fetched collection, the active form buffer, the
// identifier being edited (if any) and a busy flag for one resource
// variant. Writes never touch the collection directly; every successful
// write triggers exactly one re-fetch.
type Controller[R any] struct {
	spec Spec[R]
	deps Deps

	mu        sync.Mutex
	records   []R
	form      Form
	editing   bool
	editingID int64
	busy      bool
}

// New builds a Controller with an empty collection and a default form.
func New[R any](spec Spec[R], deps Deps) *Controller[R] {
	return &Controller[R]{
		spec: spec,
		deps: deps,
		form: DefaultForm(spec.Fields),
	}
}

// Name returns the endpoint name, e.g. "parts".
func (c *Controller[R]) Name() string { return c.spec.Name }

// Title returns the plural display name.
func (c *Controller[R]) Title() string { return c.spec.Title }

// Columns returns the list column headers.
func (c *Controller[R]) Columns() []string { return c.spec.Columns }

// Fields returns the editable field definitions.
func (c *Controller[R]) Fields() []Field { return c.spec.Fields }

// List fetches the collection. On success the in-memory collection is
// replaced wholesale; on failure it is emptied. Calling without a token is
// a safe no-op that leaves the collection unchanged.
func (c *Controller[R]) List() error {
	c.deps.Status.Clear()
	if c.deps.Client.Token() == "" {
		return nil
	}

	c.setBusy(true)
	defer c.setBusy(false)
	started := time.Now()

	var records []R
	err := c.deps.Client.Get(c.spec.Path, &records)
	c.deps.Audit.Record(audit.EventList, c.spec.Name, 0, started, err)
	if err != nil {
		c.setRecords(nil)
		c.deps.Status.Errorf("%s", api.Message(err, fmt.Sprintf("Failed to fetch %s.", strings.ToLower(c.spec.Title))))
		return &api.FetchError{Resource: c.spec.Name, Err: err}
	}

	c.setRecords(records)
	c.deps.Status.Successf("%s fetched successfully!", c.spec.Title)
	return nil
}

// BeginEdit loads a record into the form buffer and marks its identifier
// as being edited. Does not touch the server.
func (c *Controller[R]) BeginEdit(record R) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = c.spec.OnEdit(record)
	c.editing = true
	c.editingID = c.spec.ID(record)
}

// CancelEdit clears the editing identifier and resets the form buffer to
// its defaults.
func (c *Controller[R]) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = DefaultForm(c.spec.Fields)
	c.editing = false
	c.editingID = 0
}

// Submit sends the form buffer: PUT to path/{id} while editing, POST to
// path otherwise. Success resets the buffer and editing state and triggers
// exactly one List. Failure leaves both untouched so the user can correct
// and retry.
func (c *Controller[R]) Submit() error {
	c.deps.Status.Clear()

	c.mu.Lock()
	form := c.form.Clone()
	editing := c.editing
	id := c.editingID
	c.mu.Unlock()

	body := c.spec.OnSubmit(form, editing)

	c.setBusy(true)
	started := time.Now()

	var err error
	var verb, event string
	if editing {
		err = c.deps.Client.Put(fmt.Sprintf("%s/%d", c.spec.Path, id), body, nil)
		verb, event = "updated", audit.EventUpdate
	} else {
		err = c.deps.Client.Post(c.spec.Path, body, nil)
		verb, event = "added", audit.EventCreate
	}
	c.deps.Audit.Record(event, c.spec.Name, id, started, err)
	c.setBusy(false)

	if err != nil {
		c.deps.Status.Errorf("%s", api.Message(err, fmt.Sprintf("Failed to save %s.", strings.ToLower(c.spec.Singular))))
		return &api.WriteError{Resource: c.spec.Name, Err: err}
	}

	c.mu.Lock()
	c.form = DefaultForm(c.spec.Fields)
	c.editing = false
	c.editingID = 0
	c.mu.Unlock()

	c.deps.Status.Successf("%s %s successfully!", c.spec.Singular, verb)
	// Exactly one follow-up fetch; its outcome message supersedes the
	// write's.
	return c.List()
}

// Remove deletes a record after the confirmation collaborator approves.
// Declining is a no-op, not an error: no call is issued and the status is
// left alone. Success triggers exactly one List; failure leaves the
// collection unchanged.
func (c *Controller[R]) Remove(id int64) error {
	if c.deps.Confirm == nil || !c.deps.Confirm(id) {
		return nil
	}

	c.deps.Status.Clear()
	c.setBusy(true)
	started := time.Now()

	err := c.deps.Client.Delete(fmt.Sprintf("%s/%d", c.spec.Path, id))
	c.deps.Audit.Record(audit.EventDelete, c.spec.Name, id, started, err)
	c.setBusy(false)

	if err != nil {
		c.deps.Status.Errorf("%s", api.Message(err, fmt.Sprintf("Failed to delete %s.", strings.ToLower(c.spec.Singular))))
		return &api.WriteError{Resource: c.spec.Name, Err: err}
	}

	c.deps.Status.Successf("%s deleted successfully!", c.spec.Singular)
	return c.List()
}

// Records returns a copy of the current collection.
func (c *Controller[R]) Records() []R {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]R, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the collection size.
func (c *Controller[R]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Rows renders the collection for the list pane.
func (c *Controller[R]) Rows() [][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows := make([][]string, len(c.records))
	for i, r := range c.records {
		rows[i] = c.spec.Row(r)
	}
	return rows
}

// RecordID returns the identifier of the record at list index i.
func (c *Controller[R]) RecordID(i int) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.records) {
		return 0, false
	}
	return c.spec.ID(c.records[i]), true
}

// BeginEditIndex is BeginEdit addressed by list index, for the shell.
func (c *Controller[R]) BeginEditIndex(i int) bool {
	c.mu.Lock()
	if i < 0 || i >= len(c.records) {
		c.mu.Unlock()
		return false
	}
	record := c.records[i]
	c.mu.Unlock()
	c.BeginEdit(record)
	return true
}

// RemoveIndex is Remove addressed by list index, for the shell.
func (c *Controller[R]) RemoveIndex(i int) error {
	id, ok := c.RecordID(i)
	if !ok {
		return nil
	}
	return c.Remove(id)
}

// SetField writes one form buffer value.
func (c *Controller[R]) SetField(name, value string) {
	c.mu.Lock()
	c.form[name] = value
	c.mu.Unlock()
}

// FormValue reads one form buffer value.
func (c *Controller[R]) FormValue(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form[name]
}

// FormSnapshot returns a copy of the form buffer.
func (c *Controller[R]) FormSnapshot() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.Clone()
}

// Editing reports whether a record is being edited and which one.
func (c *Controller[R]) Editing() (bool, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing, c.editingID
}

// Busy reports whether a network operation is in flight. The shell uses it
// to disable submission; the controller itself does not serialize
// overlapping writes.
func (c *Controller[R]) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

func (c *Controller[R]) setBusy(b bool) {
	c.mu.Lock()
	c.busy = b
	c.mu.Unlock()
}

func (c *Controller[R]) setRecords(records []R) {
	c.mu.Lock()
	c.records = records
	c.mu.Unlock()
}

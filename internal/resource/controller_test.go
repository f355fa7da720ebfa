package resource

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/spoke-dev/spoke/internal/api"
	"github.com/spoke-dev/spoke/internal/status"
)

type widget struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func widgetSpec() Spec[widget] {
	return Spec[widget]{
		Name:     "widgets",
		Title:    "Widgets",
		Singular: "Widget",
		Path:     "/widgets",
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: Text, Required: true},
		},
		Columns: []string{"ID", "Name"},
		ID:      func(w widget) int64 { return w.ID },
		Row:     func(w widget) []string { return []string{"", w.Name} },
		OnSubmit: func(f Form, editing bool) map[string]any {
			return map[string]any{"name": f["name"]}
		},
		OnEdit: func(w widget) Form {
			return Form{"name": w.Name}
		},
	}
}

// widgetServer is a fake backend tracking each request by method.
type widgetServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string // "GET /widgets", "DELETE /widgets/2", ...
	records  []widget
	failList bool
	failCode int
	failBody string
}

func newWidgetServer(t *testing.T, records ...widget) *widgetServer {
	t.Helper()
	ws := &widgetServer{records: records}
	ws.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws.mu.Lock()
		ws.requests = append(ws.requests, r.Method+" "+r.URL.Path)
		failList, code, body := ws.failList, ws.failCode, ws.failBody
		ws.mu.Unlock()

		if code != 0 && (failList || r.Method != http.MethodGet) {
			w.WriteHeader(code)
			w.Write([]byte(body))
			return
		}

		switch {
		case r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(ws.snapshot())
		default:
			w.Write([]byte(`{"msg": "ok"}`))
		}
	}))
	t.Cleanup(ws.Close)
	return ws
}

func (ws *widgetServer) snapshot() []widget {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	out := make([]widget, len(ws.records))
	copy(out, ws.records)
	return out
}

func (ws *widgetServer) fail(code int, body string, includeList bool) {
	ws.mu.Lock()
	ws.failCode, ws.failBody, ws.failList = code, body, includeList
	ws.mu.Unlock()
}

func (ws *widgetServer) count(prefix string) int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	n := 0
	for _, r := range ws.requests {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

func newWidgetController(t *testing.T, ws *widgetServer, confirm func(int64) bool) (*Controller[widget], *status.Reporter) {
	t.Helper()
	client := api.New(ws.URL, 0)
	client.SetToken("tok")
	reporter := status.NewReporter()
	return New(widgetSpec(), Deps{
		Client:  client,
		Status:  reporter,
		Confirm: confirm,
	}), reporter
}

func TestListReplacesCollection(t *testing.T) {
	ws := newWidgetServer(t, widget{ID: 1, Name: "spoke wrench"}, widget{ID: 2, Name: "chain whip"})
	c, reporter := newWidgetController(t, ws, nil)

	if err := c.List(); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if s := reporter.Current(); s.Text != "Widgets fetched successfully!" || s.Kind != status.Success {
		t.Errorf("status = %+v, want fetch success message", s)
	}

	// A later fetch replaces wholesale, never merges.
	ws.mu.Lock()
	ws.records = []widget{{ID: 3, Name: "tire lever"}}
	ws.mu.Unlock()
	if err := c.List(); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got := c.Records(); len(got) != 1 || got[0].ID != 3 {
		t.Errorf("Records() = %+v, want only id 3", got)
	}
}

func TestListFailureEmptiesCollection(t *testing.T) {
	ws := newWidgetServer(t, widget{ID: 1, Name: "spoke wrench"})
	c, reporter := newWidgetController(t, ws, nil)

	if err := c.List(); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	ws.fail(http.StatusInternalServerError, `{}`, true)
	err := c.List()
	var fetchErr *api.FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Resource != "widgets" {
		t.Fatalf("List() error = %v, want *api.FetchError for widgets", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after failed fetch, want 0", c.Len())
	}
	if s := reporter.Current(); s.Text != "Failed to fetch widgets." || s.Kind != status.Error {
		t.Errorf("status = %+v, want fetch failure message", s)
	}
}

func TestListWithoutTokenIsNoOp(t *testing.T) {
	ws := newWidgetServer(t, widget{ID: 1, Name: "spoke wrench"})
	c, _ := newWidgetController(t, ws, nil)
	c.List()

	cl := api.New(ws.URL, 0) // no token
	c2 := New(widgetSpec(), Deps{Client: cl, Status: status.NewReporter()})
	if err := c2.List(); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got := ws.count("GET"); got != 1 {
		t.Errorf("GET count = %d, want 1 (anonymous list must not call)", got)
	}
}

func TestSubmitCreateResetsFormAndRefetches(t *testing.T) {
	ws := newWidgetServer(t)
	c, reporter := newWidgetController(t, ws, nil)

	c.SetField("name", "spoke wrench")
	if err := c.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if got := ws.count("POST /widgets"); got != 1 {
		t.Errorf("POST count = %d, want 1", got)
	}
	if got := ws.count("GET /widgets"); got != 1 {
		t.Errorf("GET count after submit = %d, want exactly one re-fetch", got)
	}
	if v := c.FormValue("name"); v != "" {
		t.Errorf("form name = %q after success, want reset to default", v)
	}
	// The re-fetch's message wins over the write's.
	if s := reporter.Current(); s.Text != "Widgets fetched successfully!" {
		t.Errorf("status = %q, want the re-fetch message", s.Text)
	}
}

func TestSubmitEditUsesPut(t *testing.T) {
	ws := newWidgetServer(t, widget{ID: 5, Name: "chain whip"})
	c, _ := newWidgetController(t, ws, nil)
	if err := c.List(); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if !c.BeginEditIndex(0) {
		t.Fatal("BeginEditIndex(0) = false")
	}
	if v := c.FormValue("name"); v != "chain whip" {
		t.Errorf("form seeded with %q, want record value", v)
	}

	c.SetField("name", "chain whip XL")
	if err := c.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if got := ws.count("PUT /widgets/5"); got != 1 {
		t.Errorf("PUT /widgets/5 count = %d, want 1", got)
	}
	if editing, _ := c.Editing(); editing {
		t.Error("still editing after successful submit")
	}
}

func TestSubmitFailureKeepsBuffer(t *testing.T) {
	ws := newWidgetServer(t, widget{ID: 5, Name: "chain whip"})
	c, reporter := newWidgetController(t, ws, nil)
	c.List()
	c.BeginEditIndex(0)
	c.SetField("name", "chain whip XL")

	ws.fail(http.StatusBadRequest, `{"msg": "Name already taken"}`, false)
	err := c.Submit()
	var writeErr *api.WriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("Submit() error = %v, want *api.WriteError", err)
	}

	if v := c.FormValue("name"); v != "chain whip XL" {
		t.Errorf("form name = %q after failure, want user's value kept", v)
	}
	editing, id := c.Editing()
	if !editing || id != 5 {
		t.Errorf("Editing() = %v, %d after failure, want true, 5", editing, id)
	}
	if s := reporter.Current(); s.Text != "Name already taken" || s.Kind != status.Error {
		t.Errorf("status = %+v, want backend message", s)
	}
	if got := ws.count("GET"); got != 1 {
		t.Errorf("GET count = %d, want no re-fetch after failure", got)
	}
}

func TestCancelEditRestoresDefaults(t *testing.T) {
	ws := newWidgetServer(t, widget{ID: 5, Name: "chain whip"})
	c, _ := newWidgetController(t, ws, nil)
	c.List()
	c.BeginEditIndex(0)

	c.CancelEdit()
	if editing, _ := c.Editing(); editing {
		t.Error("Editing() = true after cancel")
	}
	if v := c.FormValue("name"); v != "" {
		t.Errorf("form name = %q after cancel, want default", v)
	}
}

func TestRemoveConfirmed(t *testing.T) {
	ws := newWidgetServer(t, widget{ID: 2, Name: "tire lever"})
	var asked int64
	c, _ := newWidgetController(t, ws, func(id int64) bool {
		asked = id
		return true
	})
	c.List()

	if err := c.RemoveIndex(0); err != nil {
		t.Fatalf("RemoveIndex() error = %v", err)
	}
	if asked != 2 {
		t.Errorf("confirmation asked for id %d, want 2", asked)
	}
	if got := ws.count("DELETE /widgets/2"); got != 1 {
		t.Errorf("DELETE count = %d, want 1", got)
	}
	if got := ws.count("GET"); got != 2 {
		t.Errorf("GET count = %d, want re-fetch after delete", got)
	}
}

func TestRemoveDeclinedLeavesEverything(t *testing.T) {
	ws := newWidgetServer(t, widget{ID: 2, Name: "tire lever"})
	c, reporter := newWidgetController(t, ws, func(int64) bool { return false })
	c.List()
	before := reporter.Current()

	if err := c.RemoveIndex(0); err != nil {
		t.Fatalf("RemoveIndex() error = %v", err)
	}
	if got := ws.count("DELETE"); got != 0 {
		t.Errorf("DELETE count = %d after declined confirmation, want 0", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want collection untouched", c.Len())
	}
	if after := reporter.Current(); after != before {
		t.Errorf("status changed from %+v to %+v on declined delete", before, after)
	}
}

func TestRemoveFailureKeepsCollection(t *testing.T) {
	ws := newWidgetServer(t, widget{ID: 2, Name: "tire lever"})
	c, reporter := newWidgetController(t, ws, func(int64) bool { return true })
	c.List()

	ws.fail(http.StatusConflict, `{"msg": "Widget is referenced by a repair"}`, false)
	if err := c.RemoveIndex(0); err == nil {
		t.Fatal("RemoveIndex() error = nil, want error")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d after failed delete, want 1", c.Len())
	}
	if s := reporter.Current(); s.Text != "Widget is referenced by a repair" {
		t.Errorf("status = %q, want backend message", s.Text)
	}
}

func TestUnauthorizedListSurfacesSentinel(t *testing.T) {
	ws := newWidgetServer(t)
	c, _ := newWidgetController(t, ws, nil)
	ws.fail(http.StatusUnauthorized, `{"msg": "Token is not valid"}`, true)

	err := c.List()
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("List() error = %v, want ErrUnauthorized", err)
	}
}

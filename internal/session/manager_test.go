package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spoke-dev/spoke/internal/api"
	"github.com/spoke-dev/spoke/internal/status"
)

func newTestManager(t *testing.T, handler http.Handler) (*Manager, *api.Client, *status.Reporter) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := api.New(srv.URL, 0)
	reporter := status.NewReporter()
	return NewManager(client, reporter, nil, nil), client, reporter
}

func TestLoginSuccess(t *testing.T) {
	m, client, reporter := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth" {
			t.Errorf("request = %s %s, want POST /auth", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "alice" || body["password"] != "s3cret" {
			t.Errorf("credentials = %v", body)
		}
		w.Write([]byte(`{"token": "tok-abc"}`))
	}))

	if err := m.Login("alice", "s3cret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if client.Token() != "tok-abc" {
		t.Errorf("token = %q, want tok-abc", client.Token())
	}
	if s := reporter.Current(); s.Text != "Login successful!" || s.Kind != status.Success {
		t.Errorf("status = %+v, want success message", s)
	}
	if !m.Authenticated() {
		t.Error("Authenticated() = false after login")
	}
}

func TestLoginFailure(t *testing.T) {
	m, client, reporter := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"msg": "Invalid credentials"}`))
	}))

	err := m.Login("alice", "wrong")
	var authErr *api.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("Login() error = %v, want *api.AuthError", err)
	}
	if client.Token() != "" {
		t.Errorf("token = %q, want empty after failed login", client.Token())
	}
	if s := reporter.Current(); s.Text != "Invalid credentials" || s.Kind != status.Error {
		t.Errorf("status = %+v, want backend error message", s)
	}
}

func TestLoginFailureFallbackMessage(t *testing.T) {
	m, _, reporter := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	m.Login("alice", "wrong")
	if s := reporter.Current(); s.Text != "Login failed. Invalid credentials." {
		t.Errorf("status = %q, want fallback message", s.Text)
	}
}

func TestRegisterDefaultsRole(t *testing.T) {
	var gotRole string
	m, client, reporter := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			t.Errorf("path = %q, want /users", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		gotRole = body["role"]
		w.Write([]byte(`{"msg": "User registered successfully"}`))
	}))

	if err := m.Register("bob", "bob@example.com", "pw", "Bob", "Bones", ""); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if gotRole != "customer" {
		t.Errorf("role = %q, want customer default", gotRole)
	}
	if client.Token() != "" {
		t.Error("registration must not authenticate the caller")
	}
	if s := reporter.Current(); s.Text != "User registered successfully" {
		t.Errorf("status = %q, want backend message", s.Text)
	}
}

func TestFetchIdentityWithoutToken(t *testing.T) {
	called := false
	m, _, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	ident, err := m.FetchIdentity()
	if err != nil || ident != nil {
		t.Errorf("FetchIdentity() = %v, %v, want nil, nil", ident, err)
	}
	if called {
		t.Error("identity fetch without a token must not hit the network")
	}
}

func TestFetchIdentitySuccess(t *testing.T) {
	m, client, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-auth-token") != "tok" {
			t.Errorf("x-auth-token = %q, want tok", r.Header.Get("x-auth-token"))
		}
		w.Write([]byte(`{"id": 7, "username": "alice", "email": "a@example.com", "role": "admin"}`))
	}))
	client.SetToken("tok")

	ident, err := m.FetchIdentity()
	if err != nil {
		t.Fatalf("FetchIdentity() error = %v", err)
	}
	if ident.Username != "alice" || ident.Role != "admin" {
		t.Errorf("identity = %+v", ident)
	}
	if m.Identity() == nil {
		t.Error("Identity() = nil after successful fetch")
	}
}

func TestFetchIdentityUnauthorizedClearsSession(t *testing.T) {
	m, client, reporter := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"msg": "Token is not valid"}`))
	}))
	client.SetToken("stale")

	if _, err := m.FetchIdentity(); err == nil {
		t.Fatal("FetchIdentity() error = nil, want error")
	}
	if client.Token() != "" {
		t.Error("token not cleared after 401")
	}
	if s := reporter.Current(); s.Text != "Token is not valid" {
		t.Errorf("status = %q, want backend message", s.Text)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	m, client, reporter := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("logout must not hit the network")
	}))
	client.SetToken("tok")

	m.Logout()
	m.Logout()
	if client.Token() != "" {
		t.Error("token not cleared by logout")
	}
	if s := reporter.Current(); s.Text != "You have been logged out." || s.Kind != status.Success {
		t.Errorf("status = %+v, want logout message", s)
	}
}

func TestExpireEndsSessionOnce(t *testing.T) {
	m, client, reporter := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client.SetToken("tok")

	err := &api.Error{Code: http.StatusUnauthorized, Msg: "Token is not valid"}
	if !m.Expire(err) {
		t.Fatal("Expire() = false for the first 401, want true")
	}
	if client.Token() != "" {
		t.Error("token not cleared by Expire")
	}
	if s := reporter.Current(); s.Text != "Token is not valid" || s.Kind != status.Error {
		t.Errorf("status = %+v, want the failure's message", s)
	}

	// A second overlapping 401 finds the session already ended.
	if m.Expire(err) {
		t.Error("Expire() = true for a second 401, want false")
	}
}

func TestLoginPersistsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token": "tok-disk"}`))
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	store := NewStore(dir)
	m := NewManager(api.New(srv.URL, 0), status.NewReporter(), store, nil)

	if err := m.Login("alice", "pw"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	token, err := store.Load()
	if err != nil || token != "tok-disk" {
		t.Errorf("stored token = %q, %v, want tok-disk", token, err)
	}

	m.Logout()
	token, err = store.Load()
	if err != nil || token != "" {
		t.Errorf("stored token after logout = %q, %v, want empty", token, err)
	}
}

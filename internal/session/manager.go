// Package session owns the authentication token and the resolved identity.
// It exposes login, registration, logout and the 401 escalation path that
// every authenticated call funnels into.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/spoke-dev/spoke/internal/api"
	"github.com/spoke-dev/spoke/internal/audit"
	"github.com/spoke-dev/spoke/internal/model"
	"github.com/spoke-dev/spoke/internal/status"
)

// Fallback messages used when the backend error body carries no msg field.
const (
	loginFallback    = "Login failed. Invalid credentials."
	registerFallback = "Registration failed."
	identityFallback = "Failed to fetch user details."
	expiredFallback  = "Session expired. Please log in again."
)

// Manager is the session lifecycle: Anonymous until a login succeeds,
// Authenticated once the token is held, back to Anonymous on logout or on
// a 401 from any call.
type Manager struct {
	client *api.Client
	status *status.Reporter
	store  *Store
	audit  *audit.Logger

	mu       sync.Mutex
	identity *model.Identity
}

// NewManager wires the session manager to the shared client, status
// reporter and token store. store and log may be nil (tests, stateless use).
func NewManager(client *api.Client, reporter *status.Reporter, store *Store, log *audit.Logger) *Manager {
	return &Manager{
		client: client,
		status: reporter,
		store:  store,
		audit:  log,
	}
}

// tokenResponse is the backend's login reply.
type tokenResponse struct {
	Token string `json:"token"`
}

// msgResponse is the backend's generic acknowledgement reply.
type msgResponse struct {
	Msg string `json:"msg"`
}

// credentials is the login request body.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// registration is the new-account request body.
type registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// Login exchanges credentials for a token. On success the token is stored
// and any previously resolved identity is invalidated; on failure an
// existing token is left untouched.
func (m *Manager) Login(username, password string) error {
	m.status.Clear()
	started := time.Now()

	var resp tokenResponse
	err := m.client.Post("/auth", credentials{Username: username, Password: password}, &resp)
	m.audit.Record(audit.EventLogin, "", 0, started, err)
	if err != nil {
		m.status.Errorf("%s", api.Message(err, loginFallback))
		return &api.AuthError{Err: err}
	}

	m.client.SetToken(resp.Token)
	m.setIdentity(nil)
	if m.store != nil {
		// Persistence is best-effort; the in-memory session is authoritative.
		_ = m.store.Save(resp.Token)
	}
	m.status.Successf("Login successful!")
	return nil
}

// Register creates a new account. It never authenticates the caller as a
// side effect. An empty role defaults to "customer".
func (m *Manager) Register(username, email, password, firstName, lastName, role string) error {
	m.status.Clear()
	if role == "" {
		role = "customer"
	}
	started := time.Now()

	var resp msgResponse
	err := m.client.Post("/users", registration{
		Username:  username,
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
	}, &resp)
	m.audit.Record(audit.EventRegister, "", 0, started, err)
	if err != nil {
		m.status.Errorf("%s", api.Message(err, registerFallback))
		return &api.AuthError{Err: err}
	}

	if resp.Msg != "" {
		m.status.Successf("%s", resp.Msg)
	} else {
		m.status.Successf("Registration successful!")
	}
	return nil
}

// FetchIdentity resolves the current identity from the held token. With no
// token it short-circuits to "no identity" without a network call. A 401
// clears the session; other failures only surface a message.
func (m *Manager) FetchIdentity() (*model.Identity, error) {
	if m.client.Token() == "" {
		m.setIdentity(nil)
		return nil, nil
	}
	started := time.Now()

	var ident model.Identity
	err := m.client.Get("/auth", &ident)
	m.audit.Record(audit.EventIdentity, "", 0, started, err)
	if err != nil {
		m.setIdentity(nil)
		m.status.Errorf("%s", api.Message(err, identityFallback))
		if errors.Is(err, api.ErrUnauthorized) {
			m.clear()
		}
		return nil, &api.AuthError{Err: err}
	}

	m.setIdentity(&ident)
	return &ident, nil
}

// Logout clears token and identity and reports success. Idempotent: safe
// to call when already logged out.
func (m *Manager) Logout() {
	m.clear()
	m.status.Successf("You have been logged out.")
	m.audit.Record(audit.EventLogout, "", 0, time.Now(), nil)
}

// Expire handles the 401 escalation rule: the failure's message is set
// first, then token and identity are cleared. Returns true when the call
// actually ended a session, so navigation happens exactly once per
// authorization failure even if several in-flight calls all hit 401.
func (m *Manager) Expire(err error) bool {
	if m.client.Token() == "" {
		return false
	}
	m.status.Errorf("%s", api.Message(err, expiredFallback))
	m.clear()
	m.audit.Record(audit.EventExpired, "", 0, time.Now(), err)
	return true
}

// Authenticated reports whether a token is held. The identity may still be
// resolving; the UI treats that as the transient Authenticating state.
func (m *Manager) Authenticated() bool {
	return m.client.Token() != ""
}

// Identity returns the resolved identity, nil while anonymous or before
// the identity fetch completes.
func (m *Manager) Identity() *model.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}

func (m *Manager) setIdentity(ident *model.Identity) {
	m.mu.Lock()
	m.identity = ident
	m.mu.Unlock()
}

func (m *Manager) clear() {
	m.client.SetToken("")
	m.setIdentity(nil)
	if m.store != nil {
		_ = m.store.Clear()
	}
}

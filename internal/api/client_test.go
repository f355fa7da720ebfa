package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %q, want GET", r.Method)
		}
		if r.URL.Path != "/bikes" {
			t.Errorf("path = %q, want /bikes", r.URL.Path)
		}
		w.Write([]byte(`[{"id": 1}, {"id": 2}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	var out []struct {
		ID int64 `json:"id"`
	}
	if err := c.Get("/bikes", &out); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(out) != 2 || out[1].ID != 2 {
		t.Errorf("decoded = %+v, want two records ending in id 2", out)
	}
}

func TestTokenHeader(t *testing.T) {
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("x-auth-token")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 0)

	// Without a token the header must be absent entirely.
	if err := c.Get("/auth", &struct{}{}); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if gotToken != "" {
		t.Errorf("x-auth-token = %q, want unset", gotToken)
	}

	c.SetToken("tok-123")
	if err := c.Get("/auth", &struct{}{}); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if gotToken != "tok-123" {
		t.Errorf("x-auth-token = %q, want tok-123", gotToken)
	}
}

func TestPostSetsJSONContentType(t *testing.T) {
	var gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	if err := c.Post("/users", map[string]any{"username": "alice"}, nil); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if gotType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotType)
	}
}

func TestErrorEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"with msg", http.StatusBadRequest, `{"msg": "Name is required"}`, "Name is required"},
		{"without msg", http.StatusInternalServerError, `{}`, ""},
		{"malformed body", http.StatusBadGateway, `<html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := New(srv.URL, 0).Get("/parts", &struct{}{})
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *Error", err)
			}
			if apiErr.Code != tt.status {
				t.Errorf("Code = %d, want %d", apiErr.Code, tt.status)
			}
			if apiErr.Msg != tt.wantMsg {
				t.Errorf("Msg = %q, want %q", apiErr.Msg, tt.wantMsg)
			}
		})
	}
}

func TestUnauthorizedIsDetectable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"msg": "Token is not valid"}`))
	}))
	defer srv.Close()

	err := New(srv.URL, 0).Get("/repairs", &struct{}{})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("errors.Is(err, ErrUnauthorized) = false, want true; err = %v", err)
	}
	if got := Message(err, "fallback"); got != "Token is not valid" {
		t.Errorf("Message() = %q, want backend msg", got)
	}
}

func TestForbiddenIsNotUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	err := New(srv.URL, 0).Delete("/users/1")
	if errors.Is(err, ErrUnauthorized) {
		t.Errorf("403 matched ErrUnauthorized, want no match")
	}
}

func TestMessageFallback(t *testing.T) {
	if got := Message(errors.New("dial tcp: refused"), "Failed to fetch users."); got != "Failed to fetch users." {
		t.Errorf("Message() = %q, want fallback", got)
	}
	if got := Message(&Error{Code: 500}, "Failed to save part."); got != "Failed to save part." {
		t.Errorf("Message() with empty msg = %q, want fallback", got)
	}
}

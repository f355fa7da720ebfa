// Package audit provides structured operation logging.
// This file appends JSON events to log.jsonl in the config directory.
package audit

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event type constants.
const (
	EventLogin    = "login"
	EventRegister = "register"
	EventIdentity = "identity"
	EventLogout   = "logout"
	EventExpired  = "session_expired"
	EventList     = "list"
	EventCreate   = "create"
	EventUpdate   = "update"
	EventDelete   = "delete"
)

// Event represents a single structured event written to the log.
type Event struct {
	Time       time.Time `json:"time"`
	ID         string    `json:"id"`
	Event      string    `json:"event"`
	Resource   string    `json:"resource,omitempty"`
	RecordID   int64     `json:"record_id,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"duration_ms,omitempty"`
}

// Logger writes append-only JSONL events to a log file.
type Logger struct {
	path string
	mu   sync.Mutex
}

// NewLogger creates a Logger that writes to log.jsonl inside dir.
// Creates the directory if it does not already exist.
// Does not truncate an existing log file.
func NewLogger(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create audit directory: %w", err)
	}

	return &Logger{
		path: filepath.Join(dir, "log.jsonl"),
	}, nil
}

// Append writes a single Event as one JSON line to the log file.
// If event.Time is the zero value, it is set to time.Now().UTC(); if
// event.ID is empty, a fresh UUID is assigned.
// The file is opened in append mode, written to, and then closed.
// Thread-safe via mutex.
func (l *Logger) Append(event Event) error {
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write audit event: %w", err)
	}

	return nil
}

// ReadAll reads and parses all events from the log file.
// Returns an empty slice (not an error) if the file does not exist.
func (l *Logger) ReadAll() ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Event{}, nil
		}
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("parse audit line %d: %w", lineNum, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}

	return events, nil
}

// Record appends a timing event for a completed operation. Best-effort:
// callers treat audit failures as non-fatal, so Record swallows them.
func (l *Logger) Record(event, resource string, recordID int64, started time.Time, opErr error) {
	if l == nil {
		return
	}
	e := Event{
		Event:      event,
		Resource:   resource,
		RecordID:   recordID,
		DurationMs: time.Since(started).Milliseconds(),
	}
	if opErr != nil {
		e.Error = opErr.Error()
	}
	_ = l.Append(e)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"pollcast/cliparse"
	"pollcast/db"
	"pollcast/event"
	"pollcast/service"
	"pollcast/store"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8000,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
	}
}

// NewTestService wires a service over the given database with an
// EventRecorder instead of the broadcast hub. Metrics are unregistered.
func NewTestService(t *testing.T, conn *sql.DB) (*service.Service, *EventRecorder) {
	t.Helper()

	rec := &EventRecorder{}
	svc := service.New(conn, store.NewPollStore(conn), store.NewLedger(conn), rec, nil)
	return svc, rec
}

// CreateTestPoll inserts a poll directly and returns its ID.
// options must contain 2 to 4 labels.
func CreateTestPoll(t *testing.T, conn *sql.DB, title string, options ...string) string {
	t.Helper()

	if len(options) < 2 || len(options) > 4 {
		t.Fatalf("CreateTestPoll needs 2-4 options, got %d", len(options))
	}

	cols := []interface{}{uuid.NewString(), title}
	for i := 0; i < 4; i++ {
		if i < len(options) {
			cols = append(cols, options[i])
		} else {
			cols = append(cols, nil)
		}
	}
	now := time.Now().UTC()
	cols = append(cols, now, now)

	_, err := conn.Exec(`
		INSERT INTO poll (id, title, option1, option2, option3, option4, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, cols...)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return cols[0].(string)
}

// EventRecorder captures published events for assertions. It satisfies
// service.Publisher.
type EventRecorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *EventRecorder) Publish(e event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of everything published so far
func (r *EventRecorder) Events() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Last returns the most recent event, or nil if none were published
func (r *EventRecorder) Last() event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

func (r *EventRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Reset discards all recorded events
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pollcast/models"
	"pollcast/service"
	"pollcast/testutil"
)

func setupHandlers(t *testing.T) (*sql.DB, *service.Service, *testutil.EventRecorder) {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	svc, rec := testutil.NewTestService(t, conn)
	return conn, svc, rec
}

func TestCreatePollHandler(t *testing.T) {
	conn, svc, _ := setupHandlers(t)
	handler := NewPollHandler(conn, svc)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name: "valid poll",
			requestBody: models.CreatePollRequest{
				Title:           "Cats or Dogs?",
				Option1:         "Cats",
				Option2:         "Dogs",
				CreatorUsername: "alice",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing title",
			requestBody: models.CreatePollRequest{
				Option1: "A",
				Option2: "B",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing second option",
			requestBody: models.CreatePollRequest{
				Title:   "Lonely option",
				Option1: "A",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "title too long",
			requestBody: models.CreatePollRequest{
				Title:   strings.Repeat("x", models.MaxTitleLen+1),
				Option1: "A",
				Option2: "B",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/polls", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.CreatePoll(w, req)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus != http.StatusCreated {
				return
			}

			var poll models.Poll
			testutil.AssertJSON(t, w, &poll)
			if poll.ID == "" {
				t.Error("Expected non-empty poll id")
			}
			if poll.Votes.Total() != 0 {
				t.Errorf("New poll should start at zero, got %+v", poll.Votes)
			}

			// Persisted
			var exists bool
			err := conn.QueryRow(`SELECT EXISTS(SELECT 1 FROM poll WHERE id = $1)`, poll.ID).Scan(&exists)
			if err != nil {
				t.Fatalf("Failed to check poll: %v", err)
			}
			if !exists {
				t.Error("Poll was not persisted")
			}
		})
	}
}

func TestCreatePollInvalidJSON(t *testing.T) {
	conn, svc, rec := setupHandlers(t)
	handler := NewPollHandler(conn, svc)

	req := httptest.NewRequest("POST", "/polls", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.CreatePoll(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	if rec.Count() != 0 {
		t.Error("Malformed request must not emit events")
	}
}

func TestGetPollHandler(t *testing.T) {
	conn, svc, _ := setupHandlers(t)
	handler := NewPollHandler(conn, svc)
	pollID := testutil.CreateTestPoll(t, conn, "Test Poll", "A", "B", "C")

	t.Run("found", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/polls/"+pollID, nil, nil)
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()

		handler.GetPoll(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var poll models.Poll
		testutil.AssertJSON(t, w, &poll)
		if poll.ID != pollID || poll.Title != "Test Poll" {
			t.Errorf("Wrong poll returned: %+v", poll)
		}
		if poll.Option3 == nil || *poll.Option3 != "C" {
			t.Error("option3 missing from response")
		}
		if poll.Option4 != nil {
			t.Error("Absent option4 should be null")
		}
	})

	t.Run("not found", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/polls/nonexistent", nil, nil)
		req.SetPathValue("id", "nonexistent")
		w := httptest.NewRecorder()

		handler.GetPoll(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestListPollsHandler(t *testing.T) {
	conn, svc, _ := setupHandlers(t)
	handler := NewPollHandler(conn, svc)

	t.Run("empty", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/polls", nil, nil)
		w := httptest.NewRecorder()

		handler.ListPolls(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.PollListResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Polls == nil {
			t.Error("Expected empty array, not null")
		}
		if len(resp.Polls) != 0 {
			t.Errorf("Expected no polls, got %d", len(resp.Polls))
		}
	})

	t.Run("several", func(t *testing.T) {
		testutil.CreateTestPoll(t, conn, "One", "A", "B")
		testutil.CreateTestPoll(t, conn, "Two", "A", "B")

		req := testutil.MakeRequest("GET", "/polls", nil, nil)
		w := httptest.NewRecorder()

		handler.ListPolls(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.PollListResponse
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Polls) != 2 {
			t.Errorf("Expected 2 polls, got %d", len(resp.Polls))
		}
	})
}

func TestDeletePollHandler(t *testing.T) {
	conn, svc, rec := setupHandlers(t)
	handler := NewPollHandler(conn, svc)
	pollID := testutil.CreateTestPoll(t, conn, "Doomed", "A", "B")

	req := testutil.MakeRequest("DELETE", "/polls/"+pollID, nil, nil)
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()

	handler.DeletePoll(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.DeletePollResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "Poll deleted successfully" {
		t.Errorf("Unexpected message: %q", resp.Message)
	}
	if rec.Count() != 1 {
		t.Errorf("Expected 1 poll_deleted event, got %d", rec.Count())
	}

	// Gone now
	req = testutil.MakeRequest("DELETE", "/polls/"+pollID, nil, nil)
	req.SetPathValue("id", pollID)
	w = httptest.NewRecorder()

	handler.DeletePoll(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestGetVotersHandler(t *testing.T) {
	conn, svc, _ := setupHandlers(t)
	handler := NewPollHandler(conn, svc)
	pollID := testutil.CreateTestPoll(t, conn, "Test", "A", "B")

	if _, err := svc.CastVote(pollID, 1, "alice"); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if _, err := svc.CastVote(pollID, 2, ""); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	req := testutil.MakeRequest("GET", "/polls/"+pollID+"/voters", nil, nil)
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()

	handler.GetVoters(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var voters models.PollVoters
	testutil.AssertJSON(t, w, &voters)
	if len(voters.Option1Voters) != 1 || voters.Option1Voters[0].Username == nil {
		t.Errorf("Expected alice on option 1, got %+v", voters.Option1Voters)
	}
	if len(voters.Option2Voters) != 1 || voters.Option2Voters[0].Username != nil {
		t.Errorf("Expected one anonymous voter on option 2, got %+v", voters.Option2Voters)
	}
	if voters.Option3Voters == nil {
		t.Error("Expected empty array for option 3, not null")
	}

	t.Run("unknown poll", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/polls/nonexistent/voters", nil, nil)
		req.SetPathValue("id", "nonexistent")
		w := httptest.NewRecorder()

		handler.GetVoters(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"pollcast/hub"
	"pollcast/models"
	"pollcast/testutil"
)

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	reg := prometheus.NewRegistry()
	h := hub.New(reg)
	t.Cleanup(h.Shutdown)
	svc, _ := testutil.NewTestService(t, conn)
	return NewRouter(conn, svc, h, reg)
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := testutil.MakeRequest("GET", "/health", nil, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "OK" {
		t.Errorf("Expected OK body, got %q", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := testutil.MakeRequest("GET", "/", nil, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestMetricsEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := testutil.MakeRequest("GET", "/metrics", nil, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
}

// TestPollLifecycleThroughRouter drives the full flow over real routes:
// create, vote, revote, inspect voters, reset, delete.
func TestPollLifecycleThroughRouter(t *testing.T) {
	mux := newTestRouter(t)

	// Create
	req := testutil.MakeRequest("POST", "/polls", models.CreatePollRequest{
		Title:           "Cats or Dogs?",
		Option1:         "Cats",
		Option2:         "Dogs",
		CreatorUsername: "alice",
	}, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var poll models.Poll
	testutil.AssertJSON(t, w, &poll)

	// Vote, then revote
	req = testutil.MakeRequest("POST", "/polls/"+poll.ID+"/vote", models.VoteRequest{
		Option: 1, VoterUsername: "alice",
	}, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = testutil.MakeRequest("POST", "/polls/"+poll.ID+"/vote", models.VoteRequest{
		Option: 2, VoterUsername: "alice",
	}, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var voteResp models.VoteResponse
	testutil.AssertJSON(t, w, &voteResp)
	if voteResp.Votes.Option1 != 0 || voteResp.Votes.Option2 != 1 {
		t.Errorf("Revote should move the tally, got %+v", voteResp.Votes)
	}

	// Voters list shows the single standing vote
	req = testutil.MakeRequest("GET", "/polls/"+poll.ID+"/voters", nil, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var voters models.PollVoters
	testutil.AssertJSON(t, w, &voters)
	if len(voters.Option1Voters) != 0 || len(voters.Option2Voters) != 1 {
		t.Errorf("Expected the standing vote on option 2, got %+v", voters)
	}

	// Reset
	req = testutil.MakeRequest("POST", "/polls/"+poll.ID+"/reset-votes", nil, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Delete
	req = testutil.MakeRequest("DELETE", "/polls/"+poll.ID, nil, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = testutil.MakeRequest("GET", "/polls/"+poll.ID, nil, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestLikeRoutes(t *testing.T) {
	mux := newTestRouter(t)

	req := testutil.MakeRequest("POST", "/users/like", models.UserLikeRequest{
		LikerUsername: "alice", LikedUsername: "bob",
	}, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = testutil.MakeRequest("GET", "/users/bob/likes", nil, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var likes models.UserLikesResponse
	testutil.AssertJSON(t, w, &likes)
	if likes.LikesCount != 1 {
		t.Errorf("Expected 1 like for bob, got %d", likes.LikesCount)
	}

	req = testutil.MakeRequest("DELETE", "/users/like", models.UserLikeRequest{
		LikerUsername: "alice", LikedUsername: "bob",
	}, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = testutil.MakeRequest("GET", "/users/alice/likes-given", nil, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var given models.LikedUsersResponse
	testutil.AssertJSON(t, w, &given)
	if len(given.LikedUsers) != 0 {
		t.Errorf("Expected empty liked set, got %v", given.LikedUsers)
	}
}

func TestMethodRouting(t *testing.T) {
	mux := newTestRouter(t)

	// Wrong method on a registered path
	req := testutil.MakeRequest("PUT", "/polls", nil, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", w.Code)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pollcast/models"
	"pollcast/testutil"
)

func TestLikeUserHandler(t *testing.T) {
	conn, svc, rec := setupHandlers(t)
	handler := NewUserHandler(conn, svc)

	like := func() models.UserLikeResponse {
		t.Helper()
		req := testutil.MakeRequest("POST", "/users/like", models.UserLikeRequest{
			LikerUsername: "alice",
			LikedUsername: "bob",
		}, nil)
		w := httptest.NewRecorder()
		handler.LikeUser(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.UserLikeResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	// First call creates the edge
	resp := like()
	if !resp.IsLiked || resp.LikesCount != 1 {
		t.Errorf("Expected liked with count 1, got %v/%d", resp.IsLiked, resp.LikesCount)
	}
	if resp.Message != "You liked bob!" {
		t.Errorf("Unexpected message: %q", resp.Message)
	}

	// Second call toggles it off
	resp = like()
	if resp.IsLiked || resp.LikesCount != 0 {
		t.Errorf("Expected unliked with count 0, got %v/%d", resp.IsLiked, resp.LikesCount)
	}
	if resp.Message != "You unliked bob!" {
		t.Errorf("Unexpected message: %q", resp.Message)
	}

	if rec.Count() != 2 {
		t.Errorf("Expected 2 like_toggle_update events, got %d", rec.Count())
	}
}

func TestLikeUserErrors(t *testing.T) {
	conn, svc, rec := setupHandlers(t)
	handler := NewUserHandler(conn, svc)

	tests := []struct {
		name string
		req  models.UserLikeRequest
	}{
		{"self like", models.UserLikeRequest{LikerUsername: "alice", LikedUsername: "alice"}},
		{"missing liker", models.UserLikeRequest{LikedUsername: "bob"}},
		{"missing liked", models.UserLikeRequest{LikerUsername: "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/users/like", tt.req, nil)
			w := httptest.NewRecorder()

			handler.LikeUser(w, req)
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}

	if rec.Count() != 0 {
		t.Errorf("Rejected likes must not emit events, got %d", rec.Count())
	}
}

func TestUnlikeUserHandler(t *testing.T) {
	conn, svc, rec := setupHandlers(t)
	handler := NewUserHandler(conn, svc)

	// Removing an edge that was never there is fine
	req := testutil.MakeRequest("DELETE", "/users/like", models.UserLikeRequest{
		LikerUsername: "alice",
		LikedUsername: "bob",
	}, nil)
	w := httptest.NewRecorder()

	handler.UnlikeUser(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.UserLikeResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.IsLiked || resp.LikesCount != 0 {
		t.Errorf("Expected absent edge, got %v/%d", resp.IsLiked, resp.LikesCount)
	}
	if rec.Count() != 0 {
		t.Error("No-op unlike must not emit an event")
	}

	// Create the edge, then the unlike takes effect
	if _, _, err := svc.ToggleUserLike("alice", "bob", ""); err != nil {
		t.Fatalf("ToggleUserLike failed: %v", err)
	}
	rec.Reset()

	req = testutil.MakeRequest("DELETE", "/users/like", models.UserLikeRequest{
		LikerUsername: "alice",
		LikedUsername: "bob",
	}, nil)
	w = httptest.NewRecorder()

	handler.UnlikeUser(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	testutil.AssertJSON(t, w, &resp)
	if resp.IsLiked || resp.LikesCount != 0 {
		t.Errorf("Expected edge removed, got %v/%d", resp.IsLiked, resp.LikesCount)
	}
	if rec.Count() != 1 {
		t.Errorf("Effective unlike should emit one event, got %d", rec.Count())
	}
}

func TestGetProfileHandler(t *testing.T) {
	conn, svc, _ := setupHandlers(t)
	handler := NewUserHandler(conn, svc)

	// alice: creates a poll, votes on another, gets liked twice
	if _, err := svc.CreatePoll(models.CreatePollRequest{
		Title: "Mine", Option1: "A", Option2: "B", CreatorUsername: "alice",
	}); err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}
	otherID := testutil.CreateTestPoll(t, conn, "Other", "X", "Y")
	if _, err := svc.CastVote(otherID, 1, "alice"); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	for _, liker := range []string{"bob", "carol"} {
		if _, _, err := svc.ToggleUserLike(liker, "alice", ""); err != nil {
			t.Fatalf("ToggleUserLike failed: %v", err)
		}
	}

	req := testutil.MakeRequest("GET", "/users/alice/profile", nil, nil)
	req.SetPathValue("username", "alice")
	w := httptest.NewRecorder()

	handler.GetProfile(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.UserProfileResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Username != "alice" {
		t.Errorf("Wrong username: %q", resp.Username)
	}
	if resp.LikesReceived != 2 {
		t.Errorf("Expected 2 likes received, got %d", resp.LikesReceived)
	}
	if resp.PollsCreated != 1 {
		t.Errorf("Expected 1 poll created, got %d", resp.PollsCreated)
	}
	if resp.TotalVotes != 1 {
		t.Errorf("Expected 1 vote cast, got %d", resp.TotalVotes)
	}
}

func TestGetProfileUnknownUser(t *testing.T) {
	conn, svc, _ := setupHandlers(t)
	handler := NewUserHandler(conn, svc)

	// Profiles are projections; an unknown user is all zeroes, not a 404
	req := testutil.MakeRequest("GET", "/users/ghost/profile", nil, nil)
	req.SetPathValue("username", "ghost")
	w := httptest.NewRecorder()

	handler.GetProfile(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.UserProfileResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.LikesReceived != 0 || resp.PollsCreated != 0 || resp.TotalVotes != 0 {
		t.Errorf("Expected zero profile, got %+v", resp)
	}
}

func TestGetLikesHandler(t *testing.T) {
	conn, svc, _ := setupHandlers(t)
	handler := NewUserHandler(conn, svc)

	if _, _, err := svc.ToggleUserLike("bob", "alice", ""); err != nil {
		t.Fatalf("ToggleUserLike failed: %v", err)
	}

	req := testutil.MakeRequest("GET", "/users/alice/likes", nil, nil)
	req.SetPathValue("username", "alice")
	w := httptest.NewRecorder()

	handler.GetLikes(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.UserLikesResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Username != "alice" || resp.LikesCount != 1 {
		t.Errorf("Expected alice with 1 like, got %+v", resp)
	}
}

func TestGetLikesGivenHandler(t *testing.T) {
	conn, svc, _ := setupHandlers(t)
	handler := NewUserHandler(conn, svc)

	for _, liked := range []string{"bob", "carol"} {
		if _, _, err := svc.ToggleUserLike("alice", liked, ""); err != nil {
			t.Fatalf("ToggleUserLike failed: %v", err)
		}
	}
	// Toggled off again, so carol drops out
	if _, _, err := svc.ToggleUserLike("alice", "carol", ""); err != nil {
		t.Fatalf("ToggleUserLike failed: %v", err)
	}

	req := testutil.MakeRequest("GET", "/users/alice/likes-given", nil, nil)
	req.SetPathValue("username", "alice")
	w := httptest.NewRecorder()

	handler.GetLikesGiven(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.LikedUsersResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.LikedUsers) != 1 || resp.LikedUsers[0] != "bob" {
		t.Errorf("Expected [bob], got %v", resp.LikedUsers)
	}
}

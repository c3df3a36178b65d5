// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kinshare/server/middleware"
	"github.com/kinshare/server/models"
	"github.com/kinshare/server/session"
	"github.com/kinshare/server/testutil"
)

func newPhotoTest(t *testing.T) (*PhotoHandler, *sql.DB, *session.Manager) {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	sessions := session.NewManager(conn)
	sessions.Start()
	t.Cleanup(sessions.Stop)

	return NewPhotoHandler(conn, testutil.GetTestConfig()), conn, sessions
}

func likeRequest(method, albumID, photoID, token string) *http.Request {
	req := testutil.MakeRequest(method, "/albums/"+albumID+"/photos/"+photoID+"/like", nil,
		map[string]string{"X-Session-Token": token})
	req.SetPathValue("id", albumID)
	req.SetPathValue("pid", photoID)
	return req
}

func TestListPhotos(t *testing.T) {
	handler, conn, sessions := newPhotoTest(t)

	acct := testutil.CreateTestAccount(t, conn, "member@example.com", models.RoleUser)
	other := testutil.CreateTestAccount(t, conn, "other@example.com", models.RoleUser)
	token := testutil.IssueTestSession(t, conn, acct.ID)
	authed := middleware.WithAuth(sessions, handler.ListPhotos)

	albumID := testutil.CreateTestAlbum(t, conn, "Hiking", acct.ID)
	photo1 := testutil.AddTestPhoto(t, conn, albumID, "http://test/blobs/p1.jpg")
	photo2 := testutil.AddTestPhoto(t, conn, albumID, "http://test/blobs/p2.jpg")

	// photo1: liked by both accounts; photo2: liked by the other account only
	for _, row := range [][2]string{{photo1, acct.ID}, {photo1, other.ID}, {photo2, other.ID}} {
		if _, err := conn.Exec(`
			INSERT INTO photo_like (photo_id, account_id) VALUES ($1, $2)
		`, row[0], row[1]); err != nil {
			t.Fatalf("Failed to insert like: %v", err)
		}
	}

	req := testutil.MakeRequest("GET", "/albums/"+albumID+"/photos", nil,
		map[string]string{"X-Session-Token": token})
	req.SetPathValue("id", albumID)

	w := httptest.NewRecorder()
	authed(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var photos []models.Photo
	testutil.AssertJSON(t, w, &photos)

	if len(photos) != 2 {
		t.Fatalf("Expected 2 photos, got %d", len(photos))
	}

	if photos[0].ID != photo1 && photos[1].ID != photo1 {
		t.Fatal("photo1 missing from feed")
	}
	for _, ph := range photos {
		switch ph.ID {
		case photo1:
			if ph.LikeCount != 2 {
				t.Errorf("photo1: expected like_count 2, got %d", ph.LikeCount)
			}
			if !ph.UserLiked {
				t.Error("photo1: expected user_liked true for caller")
			}
		case photo2:
			if ph.LikeCount != 1 {
				t.Errorf("photo2: expected like_count 1, got %d", ph.LikeCount)
			}
			if ph.UserLiked {
				t.Error("photo2: expected user_liked false for caller")
			}
		default:
			t.Errorf("Unexpected photo %s in feed", ph.ID)
		}
	}
}

func TestListPhotosAlbumNotFound(t *testing.T) {
	handler, conn, sessions := newPhotoTest(t)

	acct := testutil.CreateTestAccount(t, conn, "member@example.com", models.RoleUser)
	token := testutil.IssueTestSession(t, conn, acct.ID)
	authed := middleware.WithAuth(sessions, handler.ListPhotos)

	req := testutil.MakeRequest("GET", "/albums/nope/photos", nil,
		map[string]string{"X-Session-Token": token})
	req.SetPathValue("id", "nope")

	w := httptest.NewRecorder()
	authed(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestLikeUnlikeRoundTrip(t *testing.T) {
	handler, conn, sessions := newPhotoTest(t)

	acct := testutil.CreateTestAccount(t, conn, "member@example.com", models.RoleUser)
	token := testutil.IssueTestSession(t, conn, acct.ID)

	albumID := testutil.CreateTestAlbum(t, conn, "Hiking", acct.ID)
	photoID := testutil.AddTestPhoto(t, conn, albumID, "http://test/blobs/p.jpg")

	like := middleware.WithAuth(sessions, handler.Like)
	unlike := middleware.WithAuth(sessions, handler.Unlike)

	// Like
	w := httptest.NewRecorder()
	like(w, likeRequest("PUT", albumID, photoID, token))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.LikeResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Liked || resp.LikeCount != 1 {
		t.Errorf("Expected liked=true count=1, got liked=%v count=%d", resp.Liked, resp.LikeCount)
	}

	// Like again: set semantics, count stays at 1
	w = httptest.NewRecorder()
	like(w, likeRequest("PUT", albumID, photoID, token))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &resp)
	if resp.LikeCount != 1 {
		t.Errorf("Expected count 1 after duplicate like, got %d", resp.LikeCount)
	}

	// Unlike
	w = httptest.NewRecorder()
	unlike(w, likeRequest("DELETE", albumID, photoID, token))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &resp)
	if resp.Liked || resp.LikeCount != 0 {
		t.Errorf("Expected liked=false count=0, got liked=%v count=%d", resp.Liked, resp.LikeCount)
	}

	// Unlike when not liked: no-op
	w = httptest.NewRecorder()
	unlike(w, likeRequest("DELETE", albumID, photoID, token))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &resp)
	if resp.LikeCount != 0 {
		t.Errorf("Expected count 0 after redundant unlike, got %d", resp.LikeCount)
	}
}

func TestLikePhotoNotFound(t *testing.T) {
	handler, conn, sessions := newPhotoTest(t)

	acct := testutil.CreateTestAccount(t, conn, "member@example.com", models.RoleUser)
	token := testutil.IssueTestSession(t, conn, acct.ID)
	albumID := testutil.CreateTestAlbum(t, conn, "Hiking", acct.ID)

	like := middleware.WithAuth(sessions, handler.Like)

	w := httptest.NewRecorder()
	like(w, likeRequest("PUT", albumID, "missing", token))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

// Likes are scoped to the (photo, account) pair: two accounts liking the
// same photo count separately, and each sees their own membership.
func TestLikesPerAccount(t *testing.T) {
	handler, conn, sessions := newPhotoTest(t)

	alice := testutil.CreateTestAccount(t, conn, "alice@example.com", models.RoleUser)
	bob := testutil.CreateTestAccount(t, conn, "bob@example.com", models.RoleUser)
	aliceToken := testutil.IssueTestSession(t, conn, alice.ID)
	bobToken := testutil.IssueTestSession(t, conn, bob.ID)

	albumID := testutil.CreateTestAlbum(t, conn, "Hiking", alice.ID)
	photoID := testutil.AddTestPhoto(t, conn, albumID, "http://test/blobs/p.jpg")

	like := middleware.WithAuth(sessions, handler.Like)
	unlike := middleware.WithAuth(sessions, handler.Unlike)

	w := httptest.NewRecorder()
	like(w, likeRequest("PUT", albumID, photoID, aliceToken))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	like(w, likeRequest("PUT", albumID, photoID, bobToken))
	var resp models.LikeResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.LikeCount != 2 {
		t.Errorf("Expected count 2 after both likes, got %d", resp.LikeCount)
	}

	// Bob's unlike removes only bob's membership
	w = httptest.NewRecorder()
	unlike(w, likeRequest("DELETE", albumID, photoID, bobToken))
	testutil.AssertJSON(t, w, &resp)
	if resp.LikeCount != 1 {
		t.Errorf("Expected count 1 after bob unliked, got %d", resp.LikeCount)
	}
}

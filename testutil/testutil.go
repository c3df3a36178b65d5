// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kinshare/server/auth"
	"github.com/kinshare/server/cliparse"
	"github.com/kinshare/server/db"
	"github.com/kinshare/server/models"
)

// SetupTestDB creates a fresh in-memory database with the full schema.
// Each call gets its own database, so tests never share state.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A :memory: database exists per connection; keep the pool at one.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8080,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		DataDir:      "testdata-ignore",
		BaseURL:      "http://localhost:8080",
		MaxUpload:    25 << 20,
		LogLevel:     "error",
	}
}

// CreateTestAccount creates an account with a profile row and an approved
// email, ready to sign in. The password is always "test-password".
func CreateTestAccount(t *testing.T, conn *sql.DB, email, role string) models.Account {
	t.Helper()

	acct := CreateTestAccountWithoutProfile(t, conn, email)

	_, err := conn.Exec(`
		INSERT INTO profile (account_id, role) VALUES ($1, $2)
	`, acct.ID, role)
	if err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}

	ApproveTestEmail(t, conn, email)
	return acct
}

// CreateTestAccountWithoutProfile creates a bare identity record: no
// profile document and no approval-gate entry.
func CreateTestAccountWithoutProfile(t *testing.T, conn *sql.DB, email string) models.Account {
	t.Helper()

	id, _ := auth.GenerateID(16)
	hash, err := auth.HashPassword("test-password")
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	now := time.Now()
	_, err = conn.Exec(`
		INSERT INTO account (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, id, auth.NormalizeEmail(email), hash, now)
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return models.Account{ID: id, Email: auth.NormalizeEmail(email), CreatedAt: now}
}

// ApproveTestEmail adds an email to the authorization gate
func ApproveTestEmail(t *testing.T, conn *sql.DB, email string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO approved_email (email, added_at) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, auth.NormalizeEmail(email), time.Now())
	if err != nil {
		t.Fatalf("Failed to approve test email: %v", err)
	}
}

// IssueTestSession inserts a session row directly and returns the token
func IssueTestSession(t *testing.T, conn *sql.DB, accountID string) string {
	t.Helper()

	token, _ := auth.GenerateSessionToken()
	_, err := conn.Exec(`
		INSERT INTO session (token, account_id, created_at)
		VALUES ($1, $2, $3)
	`, token, accountID, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return token
}

// CreateTestAlbum inserts an album row and returns its ID
func CreateTestAlbum(t *testing.T, conn *sql.DB, name, createdBy string) string {
	t.Helper()
	return CreateTestAlbumAt(t, conn, name, createdBy, time.Now())
}

// CreateTestAlbumAt inserts an album row with an explicit creation time,
// for tests that assert ordering without depending on the wall clock.
func CreateTestAlbumAt(t *testing.T, conn *sql.DB, name, createdBy string, createdAt time.Time) string {
	t.Helper()

	albumID, _ := auth.GenerateID(16)
	_, err := conn.Exec(`
		INSERT INTO album (id, name, created_by, cover_url, created_at)
		VALUES ($1, $2, $3, '', $4)
	`, albumID, name, createdBy, createdAt)
	if err != nil {
		t.Fatalf("Failed to create test album: %v", err)
	}

	return albumID
}

// AddTestPhoto inserts a photo row under an album and returns its ID
func AddTestPhoto(t *testing.T, conn *sql.DB, albumID, url string) string {
	t.Helper()

	photoID, _ := auth.GenerateID(16)
	_, err := conn.Exec(`
		INSERT INTO photo (id, album_id, url, comment_count, created_at)
		VALUES ($1, $2, $3, 0, $4)
	`, photoID, albumID, url, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test photo: %v", err)
	}

	return photoID
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

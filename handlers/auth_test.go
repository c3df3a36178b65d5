// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kinshare/server/models"
	"github.com/kinshare/server/session"
	"github.com/kinshare/server/testutil"
)

func newAuthHandler(t *testing.T) (*AuthHandler, *sql.DB, *session.Manager) {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	sessions := session.NewManager(conn)
	sessions.Start()
	t.Cleanup(sessions.Stop)

	return NewAuthHandler(conn, testutil.GetTestConfig(), sessions), conn, sessions
}

func countSessions(t *testing.T, conn *sql.DB) int {
	t.Helper()
	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM session`).Scan(&n); err != nil {
		t.Fatalf("Failed to count sessions: %v", err)
	}
	return n
}

func TestSignup(t *testing.T) {
	handler, conn, _ := newAuthHandler(t)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.SignupResponse)
	}{
		{
			name: "valid signup",
			requestBody: models.SignupRequest{
				Email:    "alice@example.com",
				Password: "hunter2hunter2",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.SignupResponse) {
				if resp.AccountID == "" {
					t.Error("Expected non-empty account_id")
				}

				// The account exists but is not approved
				var exists bool
				err := conn.QueryRow(`
					SELECT EXISTS(SELECT 1 FROM account WHERE email = 'alice@example.com')
				`).Scan(&exists)
				if err != nil {
					t.Fatalf("Failed to check account: %v", err)
				}
				if !exists {
					t.Error("Account was not created in database")
				}

				var approved bool
				err = conn.QueryRow(`
					SELECT EXISTS(SELECT 1 FROM approved_email WHERE email = 'alice@example.com')
				`).Scan(&approved)
				if err != nil {
					t.Fatalf("Failed to check approval: %v", err)
				}
				if approved {
					t.Error("New signup should not be pre-approved")
				}

				// Signup must not create a session
				if n := countSessions(t, conn); n != 0 {
					t.Errorf("Expected 0 sessions after signup, got %d", n)
				}
			},
		},
		{
			name: "duplicate email",
			requestBody: models.SignupRequest{
				Email:    "alice@example.com",
				Password: "differentpassword",
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "email is case-insensitive for duplicates",
			requestBody: models.SignupRequest{
				Email:    "ALICE@Example.com",
				Password: "differentpassword",
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "missing email",
			requestBody:    models.SignupRequest{Password: "hunter2hunter2"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing password",
			requestBody:    models.SignupRequest{Email: "bob@example.com"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/auth/signup", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.Signup(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.checkResponse != nil && w.Code == http.StatusCreated {
				var resp models.SignupResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestSignupPromotesConfiguredAdmin(t *testing.T) {
	handler, conn, _ := newAuthHandler(t)
	handler.cfg.AdminEmail = "admin@example.com"

	req := testutil.MakeRequest("POST", "/auth/signup", models.SignupRequest{
		Email:    "Admin@Example.com",
		Password: "hunter2hunter2",
	}, nil)
	w := httptest.NewRecorder()

	handler.Signup(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var role string
	err := conn.QueryRow(`
		SELECT p.role FROM profile p
		JOIN account a ON a.id = p.account_id
		WHERE a.email = 'admin@example.com'
	`).Scan(&role)
	if err != nil {
		t.Fatalf("Failed to query admin profile: %v", err)
	}
	if role != models.RoleAdmin {
		t.Errorf("Expected role %q, got %q", models.RoleAdmin, role)
	}
}

func TestLogin(t *testing.T) {
	handler, conn, _ := newAuthHandler(t)

	approved := testutil.CreateTestAccount(t, conn, "member@example.com", models.RoleUser)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.LoginResponse)
	}{
		{
			name: "valid login",
			requestBody: models.LoginRequest{
				Email:    "member@example.com",
				Password: "test-password",
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *models.LoginResponse) {
				if resp.SessionToken == "" {
					t.Error("Expected non-empty session_token")
				}
				if resp.Account.ID != approved.ID {
					t.Errorf("Expected account %s, got %s", approved.ID, resp.Account.ID)
				}
				if resp.Profile.Role != models.RoleUser {
					t.Errorf("Expected role %q, got %q", models.RoleUser, resp.Profile.Role)
				}

				// The token must resolve to a stored session
				var exists bool
				err := conn.QueryRow(`
					SELECT EXISTS(SELECT 1 FROM session WHERE token = $1)
				`, resp.SessionToken).Scan(&exists)
				if err != nil {
					t.Fatalf("Failed to check session: %v", err)
				}
				if !exists {
					t.Error("Session was not persisted")
				}
			},
		},
		{
			name: "wrong password",
			requestBody: models.LoginRequest{
				Email:    "member@example.com",
				Password: "wrong-password",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown email",
			requestBody: models.LoginRequest{
				Email:    "stranger@example.com",
				Password: "test-password",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing password",
			requestBody:    models.LoginRequest{Email: "member@example.com"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/auth/login", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.Login(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.checkResponse != nil && w.Code == http.StatusOK {
				var resp models.LoginResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

// An unapproved account with correct credentials is authenticated but
// not authorized: the login is refused with the pending-approval message
// and no session survives the request.
func TestLoginUnapprovedAccount(t *testing.T) {
	handler, conn, _ := newAuthHandler(t)

	testutil.CreateTestAccountWithoutProfile(t, conn, "pending@example.com")

	req := testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{
		Email:    "pending@example.com",
		Password: "test-password",
	}, nil)
	w := httptest.NewRecorder()

	handler.Login(w, req)

	testutil.AssertStatus(t, w, http.StatusForbidden)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != PendingApprovalMessage {
		t.Errorf("Expected %q, got %q", PendingApprovalMessage, resp.Message)
	}

	if n := countSessions(t, conn); n != 0 {
		t.Errorf("Expected 0 sessions after refused login, got %d", n)
	}
}

// Wrong password wins over missing approval: an unapproved account with
// bad credentials sees the credentials error, not the approval message.
func TestLoginUnapprovedWrongPassword(t *testing.T) {
	handler, conn, _ := newAuthHandler(t)

	testutil.CreateTestAccountWithoutProfile(t, conn, "pending@example.com")

	req := testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{
		Email:    "pending@example.com",
		Password: "wrong-password",
	}, nil)
	w := httptest.NewRecorder()

	handler.Login(w, req)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestLogout(t *testing.T) {
	handler, conn, _ := newAuthHandler(t)

	acct := testutil.CreateTestAccount(t, conn, "member@example.com", models.RoleUser)
	token := testutil.IssueTestSession(t, conn, acct.ID)

	req := testutil.MakeRequest("POST", "/auth/logout", nil, map[string]string{
		"X-Session-Token": token,
	})
	w := httptest.NewRecorder()

	handler.Logout(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	if n := countSessions(t, conn); n != 0 {
		t.Errorf("Expected 0 sessions after logout, got %d", n)
	}

	// Logging out again is a no-op, not an error
	w = httptest.NewRecorder()
	handler.Logout(w, testutil.MakeRequest("POST", "/auth/logout", nil, map[string]string{
		"X-Session-Token": token,
	}))
	testutil.AssertStatus(t, w, http.StatusNoContent)
}

func TestLogoutMissingHeader(t *testing.T) {
	handler, _, _ := newAuthHandler(t)

	w := httptest.NewRecorder()
	handler.Logout(w, testutil.MakeRequest("POST", "/auth/logout", nil, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/kinshare/server/auth"
	"github.com/kinshare/server/cliparse"
	"github.com/kinshare/server/middleware"
	"github.com/kinshare/server/models"
	"github.com/kinshare/server/session"
)

// PendingApprovalMessage is shown whenever authentication succeeds but
// the email is not in the approval gate.
const PendingApprovalMessage = "Your account is pending approval. Please contact the admin."

type AuthHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	sessions *session.Manager
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, sessions: sessions}
}

// Signup handles POST /auth/signup
// New accounts start unapproved and get no session; they stay signed out
// until an admin adds their email to the gate.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := auth.NormalizeEmail(req.Email)
	if email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}
	if req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password is required")
		return
	}

	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM account WHERE email = $1)
	`, email).Scan(&exists)
	if err != nil {
		slog.Error("failed to check existing account", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if exists {
		middleware.ErrorResponse(w, http.StatusConflict, "An account with this email already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	accountID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate account ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO account (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, accountID, email, hash, time.Now())
	if err != nil {
		slog.Error("failed to insert account", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	// The configured bootstrap admin gets its profile promoted on signup;
	// everyone else has no profile row yet and defaults to role user.
	if h.cfg.AdminEmail != "" && email == auth.NormalizeEmail(h.cfg.AdminEmail) {
		if _, err := h.db.Exec(`
			INSERT INTO profile (account_id, role) VALUES ($1, 'admin')
			ON CONFLICT (account_id) DO UPDATE SET role = 'admin'
		`, accountID); err != nil {
			slog.Warn("failed to promote bootstrap admin", "error", err)
		}
	}

	slog.Info("account created", "account_id", accountID, "email", email)

	middleware.JSONResponse(w, http.StatusCreated, models.SignupResponse{
		AccountID: accountID,
		Message:   "Signup successful! Your account is pending approval. Please wait for an admin to approve your access.",
	})
}

// Login handles POST /auth/login
// Authentication and authorization are two distinct gates: a valid
// credential signs the account in at the identity layer, but an email
// missing from the approval gate revokes that session immediately.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := auth.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var acct models.Account
	err := h.db.QueryRow(`
		SELECT id, email, password_hash, created_at
		FROM account WHERE email = $1
	`, email).Scan(&acct.ID, &acct.Email, &acct.PasswordHash, &acct.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		slog.Error("failed to query account", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.VerifyPassword(req.Password, acct.PasswordHash); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	// Identity-layer sign-in succeeded.
	token, err := h.sessions.Issue(acct)
	if err != nil {
		slog.Error("failed to issue session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	// Application-layer authorization check.
	var approved bool
	err = h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM approved_email WHERE email = $1)
	`, email).Scan(&approved)
	if err != nil {
		slog.Error("failed to check approval", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !approved {
		// Forced sign-out: the credential was valid but access is not
		// granted until the email is approved.
		if err := h.sessions.Revoke(token); err != nil {
			slog.Error("failed to revoke unapproved session", "error", err)
		}
		slog.Info("login revoked pending approval", "account_id", acct.ID, "email", email, "error", auth.ErrNotApproved)
		middleware.ErrorResponse(w, http.StatusForbidden, PendingApprovalMessage)
		return
	}

	_, profile, err := h.sessions.Lookup(token)
	if err != nil {
		slog.Error("failed to load session after issue", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	slog.Info("login", "account_id", acct.ID, "email", email, "role", profile.Role)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		SessionToken: token,
		Account:      acct,
		Profile:      profile,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(middleware.SessionHeader)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.SessionHeader+" header required")
		return
	}

	if err := h.sessions.Revoke(token); err != nil {
		slog.Error("failed to revoke session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign out")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in required")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MeResponse{
		Account: p.Account,
		Profile: p.Profile,
	})
}

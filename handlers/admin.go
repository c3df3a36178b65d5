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
)

type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

// ListApprovedEmails handles GET /admin/approved-emails
func (h *AdminHandler) ListApprovedEmails(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	rows, err := h.db.Query(`
		SELECT email, added_at FROM approved_email ORDER BY added_at, email
	`)
	if err != nil {
		slog.Error("failed to query approved emails", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	emails := []models.ApprovedEmail{}
	for rows.Next() {
		var e models.ApprovedEmail
		if err := rows.Scan(&e.Email, &e.AddedAt); err != nil {
			slog.Error("failed to scan approved email", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		emails = append(emails, e)
	}

	middleware.JSONResponse(w, http.StatusOK, emails)
}

// ApproveEmail handles POST /admin/approved-emails
//
// Approval is keyed by email, not account: an address can be cleared
// before its owner has ever signed up, and their first login afterwards
// just works. Re-approving is a no-op rather than an error.
func (h *AdminHandler) ApproveEmail(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req models.ApproveEmailRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := auth.NormalizeEmail(req.Email)
	if email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email is required")
		return
	}

	now := time.Now()
	_, err := h.db.Exec(`
		INSERT INTO approved_email (email, added_at) VALUES ($1, $2)
		ON CONFLICT (email) DO NOTHING
	`, email, now)
	if err != nil {
		slog.Error("failed to approve email", "email", email, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to approve email")
		return
	}

	slog.Info("email approved", "email", email)
	middleware.JSONResponse(w, http.StatusCreated, models.ApprovedEmail{Email: email, AddedAt: now})
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in required")
		return false
	}
	if p.Profile.Role != models.RoleAdmin {
		middleware.ErrorResponse(w, http.StatusForbidden, "Admin access required")
		return false
	}
	return true
}

// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kinshare/server/auth"
	"github.com/kinshare/server/cliparse"
	"github.com/kinshare/server/middleware"
	"github.com/kinshare/server/models"
)

type CommentHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCommentHandler(db *sql.DB, cfg cliparse.Config) *CommentHandler {
	return &CommentHandler{db: db, cfg: cfg}
}

// ListComments handles GET /albums/{id}/photos/{pid}/comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("id")
	photoID := r.PathValue("pid")
	if albumID == "" || photoID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "album and photo ids are required")
		return
	}

	if !h.photoInAlbum(w, albumID, photoID) {
		return
	}

	resp, ok := h.commentList(w, photoID)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// CreateComment handles POST /albums/{id}/photos/{pid}/comments
// Whitespace-only text is a silent no-op: nothing is written and nothing
// is reported. A real comment is stamped with the author and the server
// clock, then the denormalized counter moves by exactly one atomic
// increment, then the refreshed list is returned.
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("id")
	photoID := r.PathValue("pid")
	if albumID == "" || photoID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "album and photo ids are required")
		return
	}

	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in required")
		return
	}

	var req models.CreateCommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if !h.photoInAlbum(w, albumID, photoID) {
		return
	}

	commentID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate comment ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to post comment")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO comment (id, photo_id, account_id, email, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, commentID, photoID, p.Account.ID, p.Account.Email, text, time.Now())
	if err != nil {
		slog.Error("failed to insert comment", "photo_id", photoID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to post comment")
		return
	}

	// Atomic increment, not read-modify-write: concurrent commenters
	// cannot lose each other's updates.
	_, err = h.db.Exec(`
		UPDATE photo SET comment_count = comment_count + 1 WHERE id = $1
	`, photoID)
	if err != nil {
		slog.Error("failed to increment comment count", "photo_id", photoID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to post comment")
		return
	}

	slog.Info("comment posted", "photo_id", photoID, "comment_id", commentID, "account_id", p.Account.ID)

	resp, ok := h.commentList(w, photoID)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// commentList re-fetches the full comment list and the stored counter.
// Writes the error response itself on failure.
func (h *CommentHandler) commentList(w http.ResponseWriter, photoID string) (models.CommentListResponse, bool) {
	rows, err := h.db.Query(`
		SELECT id, photo_id, account_id, email, body, created_at
		FROM comment
		WHERE photo_id = $1
		ORDER BY created_at, id
	`, photoID)
	if err != nil {
		slog.Error("failed to query comments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.CommentListResponse{}, false
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PhotoID, &c.AccountID, &c.Email, &c.Text, &c.CreatedAt); err != nil {
			slog.Error("failed to scan comment", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return models.CommentListResponse{}, false
		}
		comments = append(comments, c)
	}

	var count int
	err = h.db.QueryRow(`
		SELECT COALESCE(comment_count, 0) FROM photo WHERE id = $1
	`, photoID).Scan(&count)
	if err != nil {
		slog.Error("failed to read comment count", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.CommentListResponse{}, false
	}

	return models.CommentListResponse{Comments: comments, CommentCount: count}, true
}

func (h *CommentHandler) photoInAlbum(w http.ResponseWriter, albumID, photoID string) bool {
	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM photo WHERE id = $1 AND album_id = $2)
	`, photoID, albumID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query photo", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Photo not found")
		return false
	}
	return true
}

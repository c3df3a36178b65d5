// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/kinshare/server/cliparse"
	"github.com/kinshare/server/middleware"
	"github.com/kinshare/server/models"
)

type PhotoHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPhotoHandler(db *sql.DB, cfg cliparse.Config) *PhotoHandler {
	return &PhotoHandler{db: db, cfg: cfg}
}

// ListPhotos handles GET /albums/{id}/photos
// Every photo carries its aggregates for the caller: like_count is the
// size of the liked-by set, user_liked is the caller's membership in it.
// Absent values read as empty set / zero count.
func (h *PhotoHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	albumID := r.PathValue("id")
	if albumID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "album id is required")
		return
	}

	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in required")
		return
	}

	var exists bool
	err := h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM album WHERE id = $1)`, albumID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query album", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Album not found")
		return
	}

	rows, err := h.db.Query(`
		SELECT p.id, p.album_id, p.url, COALESCE(p.comment_count, 0), p.created_at,
		       (SELECT COUNT(*) FROM photo_like l WHERE l.photo_id = p.id),
		       (SELECT COUNT(*) FROM photo_like l WHERE l.photo_id = p.id AND l.account_id = $2)
		FROM photo p
		WHERE p.album_id = $1
		ORDER BY p.created_at, p.id
	`, albumID, p.Account.ID)
	if err != nil {
		slog.Error("failed to query photos", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	photos := []models.Photo{}
	for rows.Next() {
		var ph models.Photo
		var mine int
		if err := rows.Scan(&ph.ID, &ph.AlbumID, &ph.URL, &ph.CommentCount, &ph.CreatedAt,
			&ph.LikeCount, &mine); err != nil {
			slog.Error("failed to scan photo", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		ph.UserLiked = mine > 0
		photos = append(photos, ph)
	}

	middleware.JSONResponse(w, http.StatusOK, photos)
}

// Like handles PUT /albums/{id}/photos/{pid}/like
// Adding to the liked-by set is idempotent: liking an already-liked photo
// changes nothing, so a double-tap fire is always safe.
func (h *PhotoHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.setLike(w, r, true)
}

// Unlike handles DELETE /albums/{id}/photos/{pid}/like
func (h *PhotoHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.setLike(w, r, false)
}

func (h *PhotoHandler) setLike(w http.ResponseWriter, r *http.Request, like bool) {
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

	if !h.photoExists(w, albumID, photoID) {
		return
	}

	var err error
	if like {
		// Set union: the composite primary key plus DO NOTHING keeps
		// membership unique without a read-modify-write.
		_, err = h.db.Exec(`
			INSERT INTO photo_like (photo_id, account_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, photoID, p.Account.ID)
	} else {
		_, err = h.db.Exec(`
			DELETE FROM photo_like WHERE photo_id = $1 AND account_id = $2
		`, photoID, p.Account.ID)
	}
	if err != nil {
		slog.Error("failed to update like", "photo_id", photoID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update like")
		return
	}

	var count int
	if err := h.db.QueryRow(`
		SELECT COUNT(*) FROM photo_like WHERE photo_id = $1
	`, photoID).Scan(&count); err != nil {
		slog.Error("failed to count likes", "photo_id", photoID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LikeResponse{
		PhotoID:   photoID,
		Liked:     like,
		LikeCount: count,
	})
}

// photoExists writes the error response itself when the photo is missing.
func (h *PhotoHandler) photoExists(w http.ResponseWriter, albumID, photoID string) bool {
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

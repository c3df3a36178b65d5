// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/kinshare/server/auth"
	"github.com/kinshare/server/blobstore"
	"github.com/kinshare/server/cliparse"
	"github.com/kinshare/server/middleware"
	"github.com/kinshare/server/models"
)

type AlbumHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	blobs blobstore.Store
}

func NewAlbumHandler(db *sql.DB, cfg cliparse.Config, blobs blobstore.Store) *AlbumHandler {
	return &AlbumHandler{db: db, cfg: cfg, blobs: blobs}
}

// ListAlbums handles GET /albums
// Always reads fresh from the store; clients re-fetch on every screen focus.
func (h *AlbumHandler) ListAlbums(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, created_by, cover_url, created_at
		FROM album
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		slog.Error("failed to query albums", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	albums := []models.Album{}
	for rows.Next() {
		var a models.Album
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedBy, &a.CoverURL, &a.CreatedAt); err != nil {
			slog.Error("failed to scan album", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		albums = append(albums, a)
	}

	middleware.JSONResponse(w, http.StatusOK, albums)
}

// CreateAlbum handles POST /albums
// Admin-only multipart upload: a "name" field plus one or more "images"
// files. Validation happens before any write; after the album row is
// created the images are uploaded concurrently and the image at selection
// index 0 becomes the cover. Failures after that point are not rolled
// back - the album keeps whatever photos committed.
func (h *AlbumHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in required")
		return
	}
	if p.Profile.Role != models.RoleAdmin {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only admins can create albums")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, int64(h.cfg.MaxUpload))
	if err := r.ParseMultipartForm(int64(h.cfg.MaxUpload)); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			"Upload too large or malformed (limit "+humanize.IBytes(h.cfg.MaxUpload)+")")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	files := r.MultipartForm.File["images"]
	if name == "" || len(files) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Album name and at least one photo are required")
		return
	}

	// Read every image up front so a broken part aborts before any
	// remote write happens.
	images := make([]uploadImage, len(files))
	var total uint64
	for i, fh := range files {
		f, err := fh.Open()
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Unreadable image: "+fh.Filename)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Unreadable image: "+fh.Filename)
			return
		}
		images[i] = uploadImage{filename: fh.Filename, data: data}
		total += uint64(len(data))
	}

	albumID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate album ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error uploading album.")
		return
	}

	// Step 1: the album record, with an empty cover reference.
	_, err = h.db.Exec(`
		INSERT INTO album (id, name, created_by, cover_url, created_at)
		VALUES ($1, $2, $3, '', $4)
	`, albumID, name, p.Account.ID, time.Now())
	if err != nil {
		slog.Error("failed to insert album", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error uploading album.")
		return
	}

	// Step 2: concurrent image uploads; the barrier inside waits for
	// every branch before reporting.
	if err := createAlbumPhotos(h.db, h.blobs, albumID, images); err != nil {
		slog.Error("album upload failed", "album_id", albumID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Error uploading album.")
		return
	}

	slog.Info("album created",
		"album_id", albumID,
		"name", name,
		"photos", len(images),
		"bytes", humanize.IBytes(total),
		"created_by", p.Account.ID,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateAlbumResponse{
		AlbumID:    albumID,
		PhotoCount: len(images),
	})
}

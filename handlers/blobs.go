// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/kinshare/server/blobstore"
	"github.com/kinshare/server/middleware"
)

type BlobHandler struct {
	disk *blobstore.Disk
}

func NewBlobHandler(disk *blobstore.Disk) *BlobHandler {
	return &BlobHandler{disk: disk}
}

// ServeBlob handles GET /blobs/{path...}
//
// Blob paths embed a random image ID, so the content behind a given
// path never changes and clients may cache it indefinitely.
func (h *BlobHandler) ServeBlob(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")

	f, err := h.disk.Open(path)
	if err != nil {
		h.blobError(w, path, err)
		return
	}
	defer f.Close()

	ctype := mime.TypeByExtension(filepath.Ext(path))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

	if _, err := io.Copy(w, f); err != nil {
		slog.Error("failed to stream blob", "path", path, "error", err)
	}
}

// ServeThumbnail handles GET /thumbs/{path...}
func (h *BlobHandler) ServeThumbnail(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")

	thumb, err := h.disk.Thumbnail(path)
	if err != nil {
		h.blobError(w, path, err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(thumb); err != nil {
		slog.Error("failed to write thumbnail", "path", path, "error", err)
	}
}

func (h *BlobHandler) blobError(w http.ResponseWriter, path string, err error) {
	switch {
	case errors.Is(err, blobstore.ErrInvalidPath):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid path")
	case errors.Is(err, os.ErrNotExist):
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	default:
		slog.Error("failed to open blob", "path", path, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
	}
}

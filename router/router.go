// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/kinshare/server/blobstore"
	"github.com/kinshare/server/cliparse"
	"github.com/kinshare/server/handlers"
	"github.com/kinshare/server/middleware"
	"github.com/kinshare/server/session"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, sessions *session.Manager, disk *blobstore.Disk) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg, sessions)
	albumHandler := handlers.NewAlbumHandler(db, cfg, disk)
	photoHandler := handlers.NewPhotoHandler(db, cfg)
	commentHandler := handlers.NewCommentHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)
	blobHandler := handlers.NewBlobHandler(disk)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth (public)
	mux.HandleFunc("POST /auth/signup", middleware.WithLogging(authHandler.Signup))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /auth/logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /auth/me", middleware.WithLogging(middleware.WithAuth(sessions, authHandler.Me)))

	// Albums
	mux.HandleFunc("GET /albums", middleware.WithLogging(middleware.WithAuth(sessions, albumHandler.ListAlbums)))
	mux.HandleFunc("POST /albums", middleware.WithLogging(middleware.WithAuth(sessions, albumHandler.CreateAlbum)))

	// Photos and likes
	mux.HandleFunc("GET /albums/{id}/photos", middleware.WithLogging(middleware.WithAuth(sessions, photoHandler.ListPhotos)))
	mux.HandleFunc("PUT /albums/{id}/photos/{pid}/like", middleware.WithLogging(middleware.WithAuth(sessions, photoHandler.Like)))
	mux.HandleFunc("DELETE /albums/{id}/photos/{pid}/like", middleware.WithLogging(middleware.WithAuth(sessions, photoHandler.Unlike)))

	// Comments
	mux.HandleFunc("GET /albums/{id}/photos/{pid}/comments", middleware.WithLogging(middleware.WithAuth(sessions, commentHandler.ListComments)))
	mux.HandleFunc("POST /albums/{id}/photos/{pid}/comments", middleware.WithLogging(middleware.WithAuth(sessions, commentHandler.CreateComment)))

	// Admin operations
	mux.HandleFunc("GET /admin/approved-emails", middleware.WithLogging(middleware.WithAuth(sessions, adminHandler.ListApprovedEmails)))
	mux.HandleFunc("POST /admin/approved-emails", middleware.WithLogging(middleware.WithAuth(sessions, adminHandler.ApproveEmail)))

	// Stored images and thumbnails
	mux.HandleFunc("GET /blobs/{path...}", middleware.WithLogging(blobHandler.ServeBlob))
	mux.HandleFunc("GET /thumbs/{path...}", middleware.WithLogging(blobHandler.ServeThumbnail))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("kinshare API v1"))
	})

	return mux
}

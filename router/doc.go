// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Kinshare API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, sessions, disk)

# Endpoints

Health:

	GET /health

Auth (public):

	POST /auth/signup - Create a pending account
	POST /auth/login  - Sign in (approved accounts only)
	POST /auth/logout - Revoke the presented session

Authenticated (requires X-Session-Token):

	GET    /auth/me                              - Current account and profile
	GET    /albums                               - Album directory
	POST   /albums                               - Create album with images (admin)
	GET    /albums/{id}/photos                   - Photo feed
	PUT    /albums/{id}/photos/{pid}/like        - Like a photo
	DELETE /albums/{id}/photos/{pid}/like        - Remove a like
	GET    /albums/{id}/photos/{pid}/comments    - Comment thread
	POST   /albums/{id}/photos/{pid}/comments    - Post a comment

Admin (requires an admin session):

	GET  /admin/approved-emails - List cleared emails
	POST /admin/approved-emails - Clear an email for login

Stored images (public):

	GET /blobs/{path...}  - Original image bytes
	GET /thumbs/{path...} - Cached JPEG thumbnail

# Handler Initialization

The router creates handler instances with dependency injection:

	authHandler := handlers.NewAuthHandler(db, cfg, sessions)
	albumHandler := handlers.NewAlbumHandler(db, cfg, disk)

Auth-gated routes are wrapped in middleware.WithAuth, which resolves
the session token to a principal before the handler runs.
*/
package router

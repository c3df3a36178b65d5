// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Kinshare API server.

Kinshare is a private photo-album service for small groups: anyone can
sign up, but an admin has to clear each email before its owner can sign
in. Admins publish albums of photos; members browse them, like photos,
and leave comments.

# Starting the Server

The server runs on an embedded SQLite database out of the box:

	go run main.go

Or against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run main.go

A .env file in the working directory is loaded if present.

# Configuration

Optional settings:

  - PORT (-p): Server port (default: 8080)
  - DATABASE_URL (-d): Connection string or SQLite path (default: kinshare.db)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - DATA_DIR (-data): Directory for stored images (default: data)
  - BASE_URL (-base-url): Public URL prefix for image links
  - ADMIN_EMAIL (-admin-email): Email to pre-approve and promote to admin
  - MAX_UPLOAD (-max-upload): Per-request upload cap (default: 25 MiB)
  - LOG_LEVEL (-log-level): debug, info, warn, or error

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, albums, photos, comments, admin, blobs)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Auth, CORS, logging, JSON helpers
  - session: Session lifecycle and auth-state events
  - blobstore: Image storage and thumbnailing
  - gesture: Tap-stream classification for like shortcuts
  - models: Request/response types
  - auth: Password hashing and token generation
  - db: Schema creation and connection setup
  - cliparse: Configuration parsing
  - logging: slog handler setup

See package documentation for each component.
*/
package main

// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Kinshare API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AuthHandler: Signup, login, logout, and current-user lookup
  - AlbumHandler: Album directory and multi-image album creation
  - PhotoHandler: Photo feeds and like toggling
  - CommentHandler: Per-photo comment threads
  - AdminHandler: Approved-email management
  - BlobHandler: Stored image and thumbnail delivery

Handlers are created via constructor functions that accept their
dependencies, typically *sql.DB and Config:

	albumHandler := handlers.NewAlbumHandler(db, cfg, blobs)

# Auth Flow

Signing up creates an account but no session; accounts stay locked out
until an admin clears their email:

	POST /auth/signup → Signup (account created, pending approval)
	POST /auth/login  → Login (credentials + approval gate)
	POST /auth/logout → Logout
	GET  /auth/me     → Me

Login checks credentials first and approval second, so an unapproved
user with a wrong password sees the credentials error, and one with the
right password sees the pending-approval message. Authenticated
operations require the X-Session-Token header.

# Album Creation

Admins create an album and its photos in one multipart request:

	POST /albums (fields: name, images[])

Image uploads fan out concurrently, one goroutine per image. The first
image becomes the album cover. A partial failure reports "Error
uploading album." but does not roll back photos that already landed.

# Likes and Comments

Likes are a set, not a counter: liking twice is one like, and unliking
something never liked is a no-op.

	PUT    /albums/{id}/photos/{pid}/like → Like
	DELETE /albums/{id}/photos/{pid}/like → Unlike

Comments are append-only and keep a denormalized per-photo count that
moves by atomic increments:

	GET  /albums/{id}/photos/{pid}/comments → ListComments
	POST /albums/{id}/photos/{pid}/comments → CreateComment

# Admin Operations

Approval is managed by email so addresses can be cleared before their
owners sign up:

	GET  /admin/approved-emails → ListApprovedEmails
	POST /admin/approved-emails → ApproveEmail
*/
package handlers

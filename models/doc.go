// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the typed records and request/response shapes for
the Kinshare API.

# Domain Types

The persisted entities mirror the document model the mobile client renders:

  - Account: an authenticated principal (identity record)
  - Profile: per-account role document; absent rows default to role "user"
  - Album: named photo collection with a mutable cover reference
  - Photo: immutable image reference plus aggregate like/comment fields
  - Comment: append-only photo sub-record with an author email snapshot
  - ApprovedEmail: entry in the application-level authorization gate

# Aggregates

Photo.LikeCount and Photo.UserLiked are derived from the liked-by set at
fetch time and never stored. Photo.CommentCount is a denormalized counter
maintained with atomic single-row increments so concurrent commenters
cannot lose updates.

# Request/Response Types

Handlers decode request bodies into the *Request types and encode *Response
types. ErrorResponse is the uniform error envelope written by
middleware.ErrorResponse.
*/
package models

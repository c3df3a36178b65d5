// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Profile role constants
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Request types

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}

type ApproveEmailRequest struct {
	Email string `json:"email"`
}

// Response types

type SignupResponse struct {
	AccountID string `json:"account_id"`
	Message   string `json:"message"`
}

type LoginResponse struct {
	SessionToken string  `json:"session_token"`
	Account      Account `json:"account"`
	Profile      Profile `json:"profile"`
}

type MeResponse struct {
	Account Account `json:"account"`
	Profile Profile `json:"profile"`
}

type CreateAlbumResponse struct {
	AlbumID    string `json:"album_id"`
	PhotoCount int    `json:"photo_count"`
}

type LikeResponse struct {
	PhotoID   string `json:"photo_id"`
	Liked     bool   `json:"liked"`
	LikeCount int    `json:"like_count"`
}

type CommentListResponse struct {
	Comments     []Comment `json:"comments"`
	CommentCount int       `json:"comment_count"`
}

// Domain types

// Account is the identity record for a principal. The password hash
// never leaves the server.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the derived per-account document. Accounts without a stored
// profile row are treated as plain users.
type Profile struct {
	AccountID string `json:"account_id,omitempty"`
	Role      string `json:"role"`
}

type Album struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CoverURL  string    `json:"cover_url"`
	CreatedAt time.Time `json:"created_at"`
}

// Photo carries the aggregate fields the feed renders. LikeCount and
// UserLiked are derived from the liked-by set at fetch time; CommentCount
// is the stored denormalized counter.
type Photo struct {
	ID           string    `json:"id"`
	AlbumID      string    `json:"album_id"`
	URL          string    `json:"url"`
	LikeCount    int       `json:"like_count"`
	UserLiked    bool      `json:"user_liked"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	PhotoID   string    `json:"photo_id"`
	AccountID string    `json:"account_id"`
	Email     string    `json:"email"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type ApprovedEmail struct {
	Email   string    `json:"email"`
	AddedAt time.Time `json:"added_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are always written by the application so the DDL stays
// portable between SQLite and PostgreSQL.
const schema = `
-- Identity records
CREATE TABLE IF NOT EXISTS account (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_account_email ON account(email);

-- Derived profile documents; a missing row means role 'user'
CREATE TABLE IF NOT EXISTS profile (
    account_id TEXT PRIMARY KEY REFERENCES account(id) ON DELETE CASCADE,
    role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user'))
);

-- Application-level authorization gate, keyed by email
CREATE TABLE IF NOT EXISTS approved_email (
    email TEXT PRIMARY KEY,
    added_at TIMESTAMP NOT NULL
);

-- Issued bearer sessions
CREATE TABLE IF NOT EXISTS session (
    token TEXT PRIMARY KEY,
    account_id TEXT NOT NULL REFERENCES account(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_account ON session(account_id);

-- Albums
CREATE TABLE IF NOT EXISTS album (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_by TEXT NOT NULL,
    cover_url TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

-- Photos
CREATE TABLE IF NOT EXISTS photo (
    id TEXT PRIMARY KEY,
    album_id TEXT NOT NULL REFERENCES album(id) ON DELETE CASCADE,
    url TEXT NOT NULL,
    comment_count INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_photo_album_id ON photo(album_id);

-- Liked-by set: one row per (photo, account) pair
CREATE TABLE IF NOT EXISTS photo_like (
    photo_id TEXT NOT NULL REFERENCES photo(id) ON DELETE CASCADE,
    account_id TEXT NOT NULL,
    PRIMARY KEY (photo_id, account_id)
);

-- Comments (append-only)
CREATE TABLE IF NOT EXISTS comment (
    id TEXT PRIMARY KEY,
    photo_id TEXT NOT NULL REFERENCES photo(id) ON DELETE CASCADE,
    account_id TEXT NOT NULL,
    email TEXT NOT NULL,
    body TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comment_photo_id ON comment(photo_id);
`

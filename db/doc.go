// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Opening a Connection

Open selects the driver from the configured database type and verifies the
connection with a ping:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported types are "sqlite" (modernc.org/sqlite, pure Go, the default) and
"postgres" (lib/pq). All queries in the codebase use $1-style placeholders,
which both drivers accept.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - account: identity records (email + password hash)
  - profile: per-account role documents
  - approved_email: application-level authorization gate
  - session: issued bearer sessions
  - album: album metadata and cover reference
  - photo: image references and the denormalized comment counter
  - photo_like: liked-by set membership rows
  - comment: append-only photo comments

# Relationships

	account 1──1 profile
	account 1──* session
	album   1──* photo
	photo   *──* account (via photo_like)
	photo   1──* comment

All foreign keys use ON DELETE CASCADE. The liked-by set is modelled as one
row per (photo, account) pair: inserting with ON CONFLICT DO NOTHING gives
the idempotent set-union semantics the like operation requires, and the
composite primary key keeps membership unique.
*/
package db

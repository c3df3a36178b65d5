// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8080)
  - DatabaseURL: SQLite path or PostgreSQL connection string
    (default: kinshare.db for sqlite; required for postgres)
  - DatabaseType: "sqlite" (default) or "postgres"
  - DataDir: Directory for uploaded image blobs (default: data)
  - BaseURL: Public base URL used in download links (default: derived from port)
  - AdminEmail: Optional email approved and promoted to admin at startup
  - MaxUpload: Request body cap for album uploads, parsed with
    go-humanize (default: 25 MiB)
  - LogLevel: debug, info, warn, or error (default: info)

# CLI Flags

	-p           Server port
	-d           Database URL or path
	-t           Database type (sqlite or postgres)
	-data        Blob directory
	-base-url    Public base URL
	-admin-email Startup admin bootstrap
	-max-upload  Upload size cap
	-log-level   Log level

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	DATA_DIR      → -data
	BASE_URL      → -base-url
	ADMIN_EMAIL   → -admin-email
	MAX_UPLOAD    → -max-upload
	LOG_LEVEL     → -log-level

CLI flags take precedence over environment variables. main loads a .env
file (via godotenv) before parsing, so a local .env feeds the same fallback
chain.

# Validation

ParseFlags returns an error if the database type is not sqlite/postgres,
the type is postgres and DATABASE_URL is missing, or the upload size
cannot be parsed.
*/
package cliparse

// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database and verifies the connection.
// dbType selects the driver: "sqlite" (default) or "postgres".
func Open(dbType, dbURL string) (*sql.DB, error) {
	driver, dsn, err := driverFor(dbType, dbURL)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == "sqlite" {
		// An in-process SQLite file tolerates exactly one writer;
		// the shared pool would otherwise return SQLITE_BUSY under load.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

func driverFor(dbType, dbURL string) (driver, dsn string, err error) {
	switch dbType {
	case "", "sqlite":
		dsn = dbURL
		if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
			dsn = "file:" + dsn
		}
		return "sqlite", dsn, nil
	case "postgres":
		return "postgres", dbURL, nil
	default:
		return "", "", fmt.Errorf("unsupported database type %q", dbType)
	}
}

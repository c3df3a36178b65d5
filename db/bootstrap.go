// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/kinshare/server/auth"
)

// BootstrapAdmin pre-approves the configured admin email and, if an
// account already exists for it, promotes that account to the admin
// role. Safe to call on every start.
func BootstrapAdmin(conn *sql.DB, email string) error {
	email = auth.NormalizeEmail(email)
	if email == "" {
		return nil
	}

	_, err := conn.Exec(`
		INSERT INTO approved_email (email, added_at) VALUES ($1, $2)
		ON CONFLICT (email) DO NOTHING
	`, email, time.Now())
	if err != nil {
		return fmt.Errorf("failed to approve admin email: %w", err)
	}

	var accountID string
	err = conn.QueryRow(`SELECT id FROM account WHERE email = $1`, email).Scan(&accountID)
	if err == sql.ErrNoRows {
		// Promotion happens at signup instead.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	_, err = conn.Exec(`
		INSERT INTO profile (account_id, role) VALUES ($1, 'admin')
		ON CONFLICT (account_id) DO UPDATE SET role = 'admin'
	`, accountID)
	if err != nil {
		return fmt.Errorf("failed to promote admin account: %w", err)
	}

	return nil
}

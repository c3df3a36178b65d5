// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential hashing and token generation utilities.

# Passwords

Passwords are hashed with bcrypt (golang.org/x/crypto/bcrypt) at the
default cost:

	hash, err := auth.HashPassword(password)
	err = auth.VerifyPassword(password, hash)

VerifyPassword returns ErrInvalidCredentials on any mismatch, including a
malformed stored hash, so callers never need to distinguish the two.

# Session Tokens

Session tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateSessionToken()

Tokens are URL-safe base64 encoded and presented by clients in the
X-Session-Token header.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# Email Normalization

NormalizeEmail lowercases and trims addresses. Both the account uniqueness
check and the approved-email gate key on the normalized form.
*/
package auth

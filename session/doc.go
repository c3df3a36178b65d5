// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session owns authenticated-session state and its lifecycle.

# Lifecycle

The Manager is constructed once by main and passed by reference to the
router - there is no ambient global session state:

	sessions := session.NewManager(db)
	sessions.Start()
	defer sessions.Stop()

Until Start is called every operation returns ErrNotStarted; nothing
downstream may act on session state before the first auth-state event has
been delivered.

# Operations

	token, err := sessions.Issue(account)   // sign-in
	acct, profile, err := sessions.Lookup(token)
	err = sessions.Revoke(token)            // sign-out

Issue stores a bearer token, loads the account's derived profile, and
notifies subscribers. Lookup resolves the X-Session-Token header for
request middleware. Revoke deletes the session; revoking an unknown token
is a no-op and emits nothing.

# Derived Profiles

Profiles are loaded fail-open: an account without a profile row gets role
"user" rather than an error, so a half-provisioned account can still sign
in with ordinary permissions.

# Subscriptions

OnChange registers a handler for started/signed-in/signed-out events and
returns an unsubscribe function:

	unsub := sessions.OnChange(func(ev session.Event) { ... })
	defer unsub()

main subscribes a logger so every auth-state change lands in the
structured log. Handlers run synchronously and must not block.
*/
package session

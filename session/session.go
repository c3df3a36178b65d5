// Copyright (c) 2025 Kinshare Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kinshare/server/auth"
	"github.com/kinshare/server/models"
)

var (
	ErrNotStarted = errors.New("session manager not started")
	ErrNoSession  = errors.New("no such session")
)

// Event types delivered to OnChange subscribers.
const (
	EventStarted   = "started"
	EventSignedIn  = "signed-in"
	EventSignedOut = "signed-out"
)

// Event describes an auth-state change. Account and Profile are set for
// signed-in events only.
type Event struct {
	Type    string
	Account models.Account
	Profile models.Profile
}

// Manager owns the authenticated-session state for the process. It is
// constructed once by main, started before the router accepts traffic,
// and stopped at teardown. Handlers issue, look up, and revoke sessions
// through it; subscribers observe every sign-in/sign-out.
type Manager struct {
	db *sql.DB

	mu      sync.Mutex
	started bool
	nextID  int
	subs    map[int]func(Event)
}

func NewManager(db *sql.DB) *Manager {
	return &Manager{db: db, subs: make(map[int]func(Event))}
}

// Start marks the manager ready and delivers the initial event. Lookups
// fail with ErrNotStarted before this, so nothing downstream acts on
// session state before the first event has fired.
func (m *Manager) Start() {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	m.emit(Event{Type: EventStarted})
}

// Stop drops all subscribers. Sessions themselves are persisted and
// survive a restart.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = false
	m.subs = make(map[int]func(Event))
}

// OnChange registers a handler for auth-state events and returns an
// unsubscribe function. Handlers run synchronously on the mutating
// goroutine and must not block.
func (m *Manager) OnChange(fn func(Event)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.subs[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Issue creates a session for the account and reports the sign-in.
// The derived profile is loaded fail-open: an account with no profile row
// is a plain user, not an error.
func (m *Manager) Issue(account models.Account) (string, error) {
	if !m.isStarted() {
		return "", ErrNotStarted
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		return "", err
	}

	_, err = m.db.Exec(`
		INSERT INTO session (token, account_id, created_at)
		VALUES ($1, $2, $3)
	`, token, account.ID, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	profile := m.profileFor(account.ID)
	m.emit(Event{Type: EventSignedIn, Account: account, Profile: profile})

	return token, nil
}

// Revoke deletes a session and reports the sign-out. Revoking an unknown
// token is a no-op.
func (m *Manager) Revoke(token string) error {
	if !m.isStarted() {
		return ErrNotStarted
	}

	res, err := m.db.Exec(`DELETE FROM session WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		m.emit(Event{Type: EventSignedOut})
	}
	return nil
}

// Lookup resolves a bearer token to its account and derived profile.
func (m *Manager) Lookup(token string) (models.Account, models.Profile, error) {
	if !m.isStarted() {
		return models.Account{}, models.Profile{}, ErrNotStarted
	}
	if token == "" {
		return models.Account{}, models.Profile{}, ErrNoSession
	}

	var acct models.Account
	err := m.db.QueryRow(`
		SELECT a.id, a.email, a.created_at
		FROM session s
		JOIN account a ON a.id = s.account_id
		WHERE s.token = $1
	`, token).Scan(&acct.ID, &acct.Email, &acct.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Account{}, models.Profile{}, ErrNoSession
	}
	if err != nil {
		return models.Account{}, models.Profile{}, fmt.Errorf("failed to look up session: %w", err)
	}

	return acct, m.profileFor(acct.ID), nil
}

// profileFor reads the derived profile document, defaulting to role
// "user" when absent or unreadable.
func (m *Manager) profileFor(accountID string) models.Profile {
	var p models.Profile
	err := m.db.QueryRow(`
		SELECT account_id, role FROM profile WHERE account_id = $1
	`, accountID).Scan(&p.AccountID, &p.Role)
	if err != nil {
		return models.Profile{AccountID: accountID, Role: models.RoleUser}
	}
	return p
}

func (m *Manager) isStarted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

func (m *Manager) emit(ev Event) {
	m.mu.Lock()
	handlers := make([]func(Event), 0, len(m.subs))
	for _, fn := range m.subs {
		handlers = append(handlers, fn)
	}
	m.mu.Unlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sportivo/platform/internal/domain"
	"github.com/sportivo/platform/internal/repository"
)

// CookieName is the session cookie carried by browsers.
const CookieName = "sportivo_session"

// DefaultTTL is the session lifetime when config does not override it.
const DefaultTTL = 14 * 24 * time.Hour

// Manager owns the server-side session lifecycle: create on login, resolve on
// every guarded request, destroy on logout. Resolution self-heals: a session
// pointing at a deleted user is removed and treated as anonymous instead of
// erroring on every subsequent request.
type Manager struct {
	db       repository.DB
	sessions repository.SessionRepository
	users    repository.UserRepository
	ttl      time.Duration
}

// NewManager builds a session manager. A non-positive ttl falls back to
// DefaultTTL.
func NewManager(db repository.DB, sessions repository.SessionRepository, users repository.UserRepository, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{db: db, sessions: sessions, users: users, ttl: ttl}
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Create opens a new session for the user with the profile cache populated.
func (m *Manager) Create(ctx context.Context, u *domain.User) (*domain.Session, error) {
	s := domain.NewSession(u, m.ttl)
	if err := m.sessions.Create(ctx, m.db, s); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return s, nil
}

// Resolve maps a cookie token to a live session. It returns (nil, nil) for
// unknown, expired, or orphaned tokens; callers treat nil as anonymous.
func (m *Manager) Resolve(ctx context.Context, token uuid.UUID) (*domain.Session, error) {
	s, err := m.sessions.Find(ctx, m.db, token)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	if s == nil {
		return nil, nil
	}

	if s.Expired(time.Now()) {
		_ = m.sessions.Delete(ctx, m.db, token)
		return nil, nil
	}

	// Self-heal: the user row may be gone while the session row survives.
	// Drop the stale session so the client falls back to anonymous cleanly.
	u, err := m.users.FindByID(ctx, m.db, s.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve session user: %w", err)
	}
	if u == nil {
		_ = m.sessions.Delete(ctx, m.db, token)
		return nil, nil
	}

	return s, nil
}

// Destroy removes a session. Destroying an unknown token is a no-op.
func (m *Manager) Destroy(ctx context.Context, token uuid.UUID) error {
	if err := m.sessions.Delete(ctx, m.db, token); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// Refresh rewrites the denormalized profile cache on all of the user's
// sessions after a profile edit.
func (m *Manager) Refresh(ctx context.Context, u *domain.User) error {
	if err := m.sessions.UpdateProfileCache(ctx, m.db, u); err != nil {
		return fmt.Errorf("refresh session cache: %w", err)
	}
	return nil
}

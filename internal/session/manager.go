// Package session owns the current local identity. Login is a toy
// gate: the password is only checked for presence, and the admin role
// needs nothing more than the shared admin key.
package session

import (
	"encoding/json"
	"sync"

	"github.com/davidlugo/recetasworld/internal/domain"
	"github.com/davidlugo/recetasworld/internal/logger"
)

// DefaultAdminKey is the shared secret for minting admin sessions.
// Overridable through configuration; intentionally not a credential.
const DefaultAdminKey = "cocina-maestra"

// Option configures the manager.
type Option func(*Manager)

// WithAdminKey overrides the shared admin key.
func WithAdminKey(key string) Option {
	return func(m *Manager) {
		if key != "" {
			m.adminKey = key
		}
	}
}

// Manager holds the current session and persists it across runs.
type Manager struct {
	mu       sync.RWMutex
	current  *domain.Session
	kv       domain.KeyValue
	log      *logger.Logger
	adminKey string
}

// New creates a manager with no active session.
func New(kv domain.KeyValue, log *logger.Logger, opts ...Option) *Manager {
	m := &Manager{
		kv:       kv,
		log:      log,
		adminKey: DefaultAdminKey,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login creates and persists a session. Username and password must be
// non-empty; the password is never compared against anything. An admin
// login additionally requires the shared key. On any failure the
// current session, if there is one, stays as it was.
func (m *Manager) Login(username, password string, role domain.Role, adminKey string) (*domain.Session, error) {
	if username == "" || password == "" {
		return nil, domain.ErrMissingFields
	}
	if !role.Valid() {
		role = domain.RoleUser
	}
	if role == domain.RoleAdmin && adminKey != m.adminKey {
		m.log.Warn("admin login rejected for %q: bad key", username)
		return nil, domain.ErrInvalidAdminKey
	}

	sess := &domain.Session{Username: username, Role: role}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = sess
	m.persist(sess)
	m.log.Info("logged in as %q (%s)", username, role)
	return sess, nil
}

// Logout clears the session and removes it from the persistent store.
// A no-op when nobody is logged in.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return
	}
	m.log.Info("logged out %q", m.current.Username)
	m.current = nil
	if err := m.kv.Delete(domain.KeyCurrentUser); err != nil {
		m.log.Error("removing persisted session: %v", err)
	}
}

// Current returns the active session, or nil.
func (m *Manager) Current() *domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// IsAdmin reports whether an admin session is active.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.IsAdmin()
}

// Restore loads a persisted session. Called once at startup; a missing
// or corrupt blob means starting logged out.
func (m *Manager) Restore() {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := m.kv.Get(domain.KeyCurrentUser)
	if err != nil || raw == "" {
		return
	}
	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil || sess.Username == "" {
		m.log.Warn("persisted session unreadable, starting logged out")
		return
	}
	if !sess.Role.Valid() {
		sess.Role = domain.RoleUser
	}
	m.current = &sess
	m.log.Debug("restored session for %q (%s)", sess.Username, sess.Role)
}

// persist writes the session blob. Callers hold the lock.
func (m *Manager) persist(sess *domain.Session) {
	blob, err := json.Marshal(sess)
	if err != nil {
		m.log.Error("encoding session: %v", err)
		return
	}
	if err := m.kv.Set(domain.KeyCurrentUser, string(blob)); err != nil {
		m.log.Error("persisting session: %v", err)
	}
}

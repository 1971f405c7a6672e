package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lgbarn/minimax-chess-go/internal/config"
	"github.com/lgbarn/minimax-chess-go/internal/errors"
	"github.com/lgbarn/minimax-chess-go/internal/uci"
)

// SessionManager keeps the open sessions by id.
type SessionManager struct {
	mu       sync.RWMutex
	cfg      *config.Config
	sessions map[string]*uci.Session
}

// NewSessionManager creates an empty manager. New sessions start from cfg.
func NewSessionManager(cfg *config.Config) *SessionManager {
	return &SessionManager{
		cfg:      cfg,
		sessions: make(map[string]*uci.Session),
	}
}

// Create opens a session at the initial position and returns its id.
func (m *SessionManager) Create() (string, *uci.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit := m.cfg.Server.MaxSessions; limit > 0 && len(m.sessions) >= limit {
		return "", nil, errors.Wrapf(errors.ErrSessionLimit, "limit %d", limit)
	}
	id := uuid.New().String()
	sess := uci.NewSession(m.cfg)
	m.sessions[id] = sess
	return id, sess, nil
}

// Get returns the session with the given id.
func (m *SessionManager) Get(id string) (*uci.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrSessionNotFound, "%q", id)
	}
	return sess, nil
}

// Delete closes a session.
func (m *SessionManager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return errors.Wrapf(errors.ErrSessionNotFound, "%q", id)
	}
	delete(m.sessions, id)
	return nil
}

// Len returns the number of open sessions.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

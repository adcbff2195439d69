package session

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("session: no session for meeting id")
	ErrDuplicateID     = errors.New("session: meeting id already in use")
)

// Manager is the registry of live session lifecycles, keyed by meeting id.
// Instances share no mutable state with each other.
type Manager struct {
	cfg    Config
	logger *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Lifecycle
}

func NewManager(cfg Config, logger *zap.Logger) *Manager {
	return &Manager{
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*Lifecycle),
	}
}

// Create starts a new lifecycle for a minted meeting id. Meeting ids are
// never reused, so a duplicate is a caller bug and is rejected.
func (m *Manager) Create(meetingID string) (*Lifecycle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[meetingID]; exists {
		return nil, ErrDuplicateID
	}
	s := NewLifecycle(meetingID, m.cfg, m.logger)
	m.sessions[meetingID] = s
	m.logger.Info("Session created", zap.String("meetingId", meetingID))
	return s, nil
}

// Get returns the lifecycle for a meeting id.
func (m *Manager) Get(meetingID string) (*Lifecycle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[meetingID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Teardown ends the session and removes it from the registry, releasing its
// scheduled work as a unit.
func (m *Manager) Teardown(meetingID string) error {
	m.mu.Lock()
	s, ok := m.sessions[meetingID]
	if ok {
		delete(m.sessions, meetingID)
	}
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.End()
	return nil
}

// ActiveCount reports the number of registered sessions.
func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

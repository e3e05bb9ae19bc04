package store

import (
	"context"
	"sync"

	"github.com/jsamuelsen/quotedeck/internal/domain"
)

// MemoryStore keeps visitor state in process memory. It is the default
// backend for local profiles and tests; state does not survive restarts.
// Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.NavigatorState
	themes   map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]domain.NavigatorState),
		themes:   make(map[string]string),
	}
}

// Load retrieves the navigator state for a session.
// Implements ports.SessionStore.
func (s *MemoryStore) Load(ctx context.Context, sessionID string) (domain.NavigatorState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return domain.NavigatorState{}, domain.NewNotFoundError("session", sessionID)
	}

	return state, nil
}

// Save persists the navigator state for a session.
// Implements ports.SessionStore.
func (s *MemoryStore) Save(ctx context.Context, sessionID string, state domain.NavigatorState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = state

	return nil
}

// Delete removes a session's saved state.
// Implements ports.SessionStore.
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)

	return nil
}

// Theme returns the raw stored theme string for a visitor.
// Implements ports.PreferenceStore.
func (s *MemoryStore) Theme(ctx context.Context, clientID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	theme, ok := s.themes[clientID]
	if !ok {
		return "", domain.NewNotFoundError("theme preference", clientID)
	}

	return theme, nil
}

// SetTheme stores the theme choice for a visitor.
// Implements ports.PreferenceStore.
func (s *MemoryStore) SetTheme(ctx context.Context, clientID string, theme domain.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.themes[clientID] = string(theme)

	return nil
}

// Name identifies this component in health check responses.
// Implements ports.HealthChecker.
func (s *MemoryStore) Name() string {
	return "storage"
}

// Check always succeeds for the in-memory store.
// Implements ports.HealthChecker.
func (s *MemoryStore) Check(ctx context.Context) error {
	return nil
}

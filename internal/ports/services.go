// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrUnavailable, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/jsamuelsen/quotedeck/internal/domain"
)

// QuoteSource provides the immutable quote collection.
// Implementations load the dataset once at startup; the returned
// collection must never change afterwards.
type QuoteSource interface {
	// Collection returns the full ordered quote collection.
	// An empty collection is valid and must not be an error.
	Collection() domain.Collection
}

// SessionStore persists per-visitor navigator state between requests.
type SessionStore interface {
	// Load retrieves the navigator state for a session.
	// Returns domain.ErrNotFound when the session has no saved state yet.
	Load(ctx context.Context, sessionID string) (domain.NavigatorState, error)

	// Save persists the navigator state for a session, creating or
	// overwriting as appropriate.
	Save(ctx context.Context, sessionID string, state domain.NavigatorState) error

	// Delete removes a session's saved state.
	// Does not return an error if the session does not exist.
	Delete(ctx context.Context, sessionID string) error
}

// PreferenceStore persists a visitor's explicit theme choice.
// This is the server-side analog of client-local storage: one value
// per visitor, overwritten on every explicit change.
type PreferenceStore interface {
	// Theme returns the raw stored theme string for a visitor.
	// Returns domain.ErrNotFound when no preference has been stored.
	// Callers must treat unparseable values as absent, never as errors.
	Theme(ctx context.Context, clientID string) (string, error)

	// SetTheme stores the theme choice for a visitor.
	SetTheme(ctx context.Context, clientID string, theme domain.Theme) error
}

// Prefetcher warms remote image resources ahead of need.
// Calls are fire-and-forget: the caller never waits for completion and
// failures are absorbed silently, since the regular on-demand load is
// the fallback path.
type Prefetcher interface {
	// Prefetch requests the resource at the given asset path in the
	// background. Repeated calls with the same path within one process
	// lifetime are de-duplicated.
	Prefetch(path string)
}

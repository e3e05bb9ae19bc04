package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/jsamuelsen/quotedeck/internal/domain"
)

// Key namespaces. Each namespace maps to a subdirectory under the base path.
const (
	nsSessions = "sessions"
	nsThemes   = "themes"

	// diskCacheSize is the in-memory read cache for the disk store (1MB).
	diskCacheSize = 1 << 20
)

// DiskStore persists visitor state as small JSON/string records on disk,
// one file per key. It implements ports.SessionStore, ports.PreferenceStore
// and ports.HealthChecker.
type DiskStore struct {
	d *diskv.Diskv
}

// NewDiskStore creates a disk-backed store rooted at basePath.
// The directory is created on first write.
func NewDiskStore(basePath string) *DiskStore {
	return &DiskStore{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    namespaceTransform,
			CacheSizeMax: diskCacheSize,
		}),
	}
}

// namespaceTransform places each key in its namespace subdirectory.
// Keys look like "sessions.<id>"; the namespace becomes the directory
// and the full key the file name.
func namespaceTransform(key string) []string {
	ns, _, found := strings.Cut(key, ".")
	if !found {
		return nil
	}

	return []string{ns}
}

// Load retrieves the navigator state for a session.
// Implements ports.SessionStore.
func (s *DiskStore) Load(ctx context.Context, sessionID string) (domain.NavigatorState, error) {
	val, err := s.d.Read(sessionKey(sessionID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NavigatorState{}, domain.NewNotFoundError("session", sessionID)
		}

		return domain.NavigatorState{}, fmt.Errorf("reading session %q: %w", sessionID, err)
	}

	var state domain.NavigatorState

	err = json.Unmarshal(val, &state)
	if err != nil {
		// Corrupt state is treated as absent; the caller starts fresh.
		return domain.NavigatorState{}, domain.NewNotFoundError("session", sessionID)
	}

	return state, nil
}

// Save persists the navigator state for a session.
// Implements ports.SessionStore.
func (s *DiskStore) Save(ctx context.Context, sessionID string, state domain.NavigatorState) error {
	val, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding session %q: %w", sessionID, err)
	}

	err = s.d.Write(sessionKey(sessionID), val)
	if err != nil {
		return fmt.Errorf("writing session %q: %w", sessionID, err)
	}

	return nil
}

// Delete removes a session's saved state.
// Implements ports.SessionStore.
func (s *DiskStore) Delete(ctx context.Context, sessionID string) error {
	err := s.d.Erase(sessionKey(sessionID))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting session %q: %w", sessionID, err)
	}

	return nil
}

// Theme returns the raw stored theme string for a visitor.
// Implements ports.PreferenceStore.
func (s *DiskStore) Theme(ctx context.Context, clientID string) (string, error) {
	val, err := s.d.Read(themeKey(clientID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", domain.NewNotFoundError("theme preference", clientID)
		}

		return "", fmt.Errorf("reading theme for %q: %w", clientID, err)
	}

	return string(val), nil
}

// SetTheme stores the theme choice for a visitor.
// Implements ports.PreferenceStore.
func (s *DiskStore) SetTheme(ctx context.Context, clientID string, theme domain.Theme) error {
	err := s.d.Write(themeKey(clientID), []byte(theme))
	if err != nil {
		return fmt.Errorf("writing theme for %q: %w", clientID, err)
	}

	return nil
}

// Name identifies this component in health check responses.
// Implements ports.HealthChecker.
func (s *DiskStore) Name() string {
	return "storage"
}

// Check verifies the store is writable by round-tripping a probe key.
// Implements ports.HealthChecker.
func (s *DiskStore) Check(ctx context.Context) error {
	const probe = "health.probe"

	err := s.d.Write(probe, []byte("ok"))
	if err != nil {
		return fmt.Errorf("storage write: %w", err)
	}

	_, err = s.d.Read(probe)
	if err != nil {
		return fmt.Errorf("storage read: %w", err)
	}

	return nil
}

func sessionKey(id string) string {
	return nsSessions + "." + id
}

func themeKey(id string) string {
	return nsThemes + "." + id
}

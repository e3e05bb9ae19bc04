package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quotedeck/internal/domain"
	"github.com/jsamuelsen/quotedeck/internal/platform/logging"
	"github.com/jsamuelsen/quotedeck/internal/ports"
)

// ThemeService resolves and persists the visitor's display theme.
//
// Resolution precedence (first match wins): previously stored explicit
// choice, then the ambient signal reported by the visitor's environment,
// then light. A missing or unreadable store never fails resolution; it
// simply falls through the chain.
type ThemeService struct {
	store  ports.PreferenceStore
	logger *slog.Logger
}

// ThemeServiceConfig contains configuration for the theme service.
type ThemeServiceConfig struct {
	Store  ports.PreferenceStore
	Logger *slog.Logger
}

// NewThemeService creates a new theme service.
// Panics if Store is nil. Defaults logger to slog.Default() if nil.
func NewThemeService(cfg ThemeServiceConfig) *ThemeService {
	if cfg.Store == nil {
		panic("ThemeService: Store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ThemeService{
		store:  cfg.Store,
		logger: logger,
	}
}

// Resolve determines the visitor's active theme.
func (s *ThemeService) Resolve(ctx context.Context, clientID string, ambient domain.AmbientSignal) domain.Theme {
	stored, err := s.store.Theme(ctx, clientID)
	if err != nil && !domain.IsNotFound(err) {
		// Storage trouble is absorbed: treated as no stored preference.
		logging.FromContext(ctx).WarnContext(ctx, "theme store unavailable, falling back",
			slog.Any("error", err),
		)

		stored = ""
	}

	return domain.ResolveTheme(stored, ambient)
}

// Set persists an explicit theme choice. Subsequent Resolve calls for the
// same visitor see this value at the first precedence tier.
// Invalid values are rejected with a validation error.
func (s *ThemeService) Set(ctx context.Context, clientID string, value string) (domain.Theme, error) {
	theme, ok := domain.ParseTheme(value)
	if !ok {
		return "", domain.NewValidationError("theme", `must be "dark" or "light"`)
	}

	err := s.store.SetTheme(ctx, clientID, theme)
	if err != nil {
		return "", err
	}

	return theme, nil
}

// Toggle flips the visitor's current theme and persists the result.
// The current theme is resolved with the same precedence chain as Resolve.
func (s *ThemeService) Toggle(ctx context.Context, clientID string, ambient domain.AmbientSignal) (domain.Theme, error) {
	current := s.Resolve(ctx, clientID, ambient)
	next := current.Toggled()

	err := s.store.SetTheme(ctx, clientID, next)
	if err != nil {
		return "", err
	}

	return next, nil
}

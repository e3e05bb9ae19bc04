// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quotedeck/internal/domain"
	"github.com/jsamuelsen/quotedeck/internal/platform/logging"
	"github.com/jsamuelsen/quotedeck/internal/ports"
)

// DeckView is what a visitor sees of the deck: the current quote (nil when
// the collection is empty) plus position metadata for "i / N" display.
type DeckView struct {
	Quote     *domain.Quote
	Position  int
	Total     int
	CanGoBack bool
	Policy    domain.Policy
}

// DeckService orchestrates per-visitor navigation over the quote
// collection. Each visitor session owns an independent cursor; the backing
// collection is shared and immutable.
type DeckService struct {
	source     ports.QuoteSource
	sessions   ports.SessionStore
	prefetcher ports.Prefetcher
	policy     domain.Policy
	logger     *slog.Logger
}

// DeckServiceConfig contains configuration for the deck service.
type DeckServiceConfig struct {
	Source     ports.QuoteSource
	Sessions   ports.SessionStore
	Prefetcher ports.Prefetcher
	Policy     domain.Policy
	Logger     *slog.Logger
}

// NewDeckService creates a new deck service with the provided dependencies.
// Panics if Source or Sessions is nil. Defaults logger to slog.Default()
// and policy to cyclic.
func NewDeckService(cfg DeckServiceConfig) *DeckService {
	if cfg.Source == nil {
		panic("DeckService: Source is required")
	}

	if cfg.Sessions == nil {
		panic("DeckService: Sessions is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	policy := cfg.Policy
	if !policy.Valid() {
		policy = domain.PolicyCyclic
	}

	return &DeckService{
		source:     cfg.Source,
		sessions:   cfg.Sessions,
		prefetcher: cfg.Prefetcher,
		policy:     policy,
		logger:     logger,
	}
}

// Current returns the visitor's current deck view without moving the
// cursor. First-time visitors start at the first quote.
func (s *DeckService) Current(ctx context.Context, sessionID string) (DeckView, error) {
	nav, err := s.navigator(ctx, sessionID)
	if err != nil {
		return DeckView{}, err
	}

	s.warmImages(nav)

	return s.view(nav), nil
}

// Next advances the visitor's cursor and persists the new state.
func (s *DeckService) Next(ctx context.Context, sessionID string) (DeckView, error) {
	return s.move(ctx, sessionID, (*domain.Navigator).Next)
}

// Prev moves the visitor's cursor backward and persists the new state.
// Under the random policy this pops the undo history; with nothing to
// return to it leaves the cursor unchanged.
func (s *DeckService) Prev(ctx context.Context, sessionID string) (DeckView, error) {
	return s.move(ctx, sessionID, (*domain.Navigator).Prev)
}

// Reset discards the visitor's saved navigation state.
func (s *DeckService) Reset(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// move applies a navigation step, saves the resulting state and kicks off
// image prefetching for the new position.
func (s *DeckService) move(ctx context.Context, sessionID string, step func(*domain.Navigator)) (DeckView, error) {
	logger := logging.FromContext(ctx)

	nav, err := s.navigator(ctx, sessionID)
	if err != nil {
		return DeckView{}, err
	}

	step(nav)

	err = s.sessions.Save(ctx, sessionID, nav.State())
	if err != nil {
		return DeckView{}, err
	}

	logger.DebugContext(ctx, "deck cursor moved",
		slog.Int("position", nav.Position()),
		slog.Int("total", nav.Total()),
	)

	s.warmImages(nav)

	return s.view(nav), nil
}

// navigator reconstructs the visitor's navigator from saved state.
// Missing or corrupt state starts a fresh navigator; never an error.
func (s *DeckService) navigator(ctx context.Context, sessionID string) (*domain.Navigator, error) {
	collection := s.source.Collection()

	state, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.NewNavigator(collection, domain.WithPolicy(s.policy)), nil
		}

		return nil, err
	}

	// Configured policy wins over the stored one so a deployment-time
	// policy change takes effect for returning visitors.
	return domain.NewNavigator(collection,
		domain.WithState(state),
		domain.WithPolicy(s.policy),
	), nil
}

// warmImages prefetches the current and upcoming author photos so the
// next navigation feels instant. Fire-and-forget; a wasted prefetch is
// never observed.
func (s *DeckService) warmImages(nav *domain.Navigator) {
	if s.prefetcher == nil {
		return
	}

	if current, ok := nav.Current(); ok {
		if photo := current.AuthorPhoto(); photo != "" {
			s.prefetcher.Prefetch(photo)
		}
	}

	if next, ok := nav.Peek(); ok {
		if photo := next.AuthorPhoto(); photo != "" {
			s.prefetcher.Prefetch(photo)
		}
	}
}

// view assembles the response shape from navigator state.
func (s *DeckService) view(nav *domain.Navigator) DeckView {
	v := DeckView{
		Position:  nav.Position(),
		Total:     nav.Total(),
		CanGoBack: nav.CanGoBack(),
		Policy:    nav.Policy(),
	}

	if current, ok := nav.Current(); ok {
		v.Quote = &current
	}

	return v
}

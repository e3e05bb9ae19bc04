package app

import (
	"context"
	"sync"

	"github.com/jsamuelsen/quotedeck/internal/domain"
)

// fakeSource serves a fixed collection.
type fakeSource struct {
	collection domain.Collection
}

func (f *fakeSource) Collection() domain.Collection {
	return f.collection
}

// fakeSessions is an in-memory session store with error injection.
type fakeSessions struct {
	mu      sync.Mutex
	states  map[string]domain.NavigatorState
	loadErr error
	saveErr error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{states: make(map[string]domain.NavigatorState)}
}

func (f *fakeSessions) Load(ctx context.Context, sessionID string) (domain.NavigatorState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loadErr != nil {
		return domain.NavigatorState{}, f.loadErr
	}

	state, ok := f.states[sessionID]
	if !ok {
		return domain.NavigatorState{}, domain.NewNotFoundError("session", sessionID)
	}

	return state, nil
}

func (f *fakeSessions) Save(ctx context.Context, sessionID string, state domain.NavigatorState) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return f.saveErr
	}

	f.states[sessionID] = state

	return nil
}

func (f *fakeSessions) Delete(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.states, sessionID)

	return nil
}

// fakePrefs is an in-memory preference store with error injection.
// setCalls counts SetTheme invocations for write-amplification checks.
type fakePrefs struct {
	mu       sync.Mutex
	themes   map[string]string
	setCalls int
	themeErr error
	setErr   error
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{themes: make(map[string]string)}
}

func (f *fakePrefs) Theme(ctx context.Context, clientID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.themeErr != nil {
		return "", f.themeErr
	}

	theme, ok := f.themes[clientID]
	if !ok {
		return "", domain.NewNotFoundError("theme preference", clientID)
	}

	return theme, nil
}

func (f *fakePrefs) SetTheme(ctx context.Context, clientID string, theme domain.Theme) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.setCalls++

	if f.setErr != nil {
		return f.setErr
	}

	f.themes[clientID] = string(theme)

	return nil
}

// fakePrefetcher records requested paths.
type fakePrefetcher struct {
	mu    sync.Mutex
	paths []string
}

func (f *fakePrefetcher) Prefetch(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.paths = append(f.paths, path)
}

func (f *fakePrefetcher) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.paths...)
}

// testCollection builds a small deterministic collection.
func testCollection() domain.Collection {
	return domain.Collection{
		{ID: "q-1", Text: "First things first.", Author: &domain.Author{
			Name:  "Ada",
			Photo: "https://img.example.com/ada.png",
		}},
		{ID: "q-2", Text: "Second wind.", Author: &domain.Author{
			Name:  "Grace",
			Photo: "https://img.example.com/grace.png",
		}},
		{ID: "q-3", Text: "Third time lucky."},
	}
}

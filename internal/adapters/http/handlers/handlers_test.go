package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotedeck/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotedeck/internal/adapters/store"
	"github.com/jsamuelsen/quotedeck/internal/app"
	"github.com/jsamuelsen/quotedeck/internal/domain"
)

// testCatalog returns a small fixed collection: two attributed quotes
// with photos and one authorless quote.
func testCatalog() *store.Catalog {
	return store.NewCatalog(domain.Collection{
		{
			ID:   "q-1",
			Text: "Stay hungry.<br>Stay foolish.",
			Author: &domain.Author{
				Name:  "Ada",
				Bio:   "Mathematician",
				Photo: "/img/ada.png",
			},
		},
		{
			ID:   "q-2",
			Text: "Ship it.",
			Author: &domain.Author{
				Name:  "Grace",
				Photo: "/img/grace.png",
			},
		},
		{
			ID:   "q-3",
			Text: "Less is more.",
		},
	})
}

// testAPI wires the handlers behind a real router group with session
// middleware, backed by an in-memory store.
type testAPI struct {
	engine  *gin.Engine
	catalog *store.Catalog
	storage *store.MemoryStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	catalog := testCatalog()
	storage := store.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	deck := app.NewDeckService(app.DeckServiceConfig{
		Source:   catalog,
		Sessions: storage,
		Policy:   domain.PolicyCyclic,
		Logger:   logger,
	})

	themes := app.NewThemeService(app.ThemeServiceConfig{
		Store:  storage,
		Logger: logger,
	})

	share := app.NewShareService(catalog, app.ShareLinks{
		Title:            "Quote Deck",
		SiteURL:          "https://quotes.example.com/",
		TwitterIntentURL: "https://twitter.com/intent/tweet",
		LinkedInShareURL: "https://www.linkedin.com/sharing/share-offsite/",
	})

	engine := gin.New()
	api := engine.Group("/api/v1")
	api.Use(middleware.SessionID())

	NewDeckHandler(deck, themes).RegisterDeckRoutes(api)
	NewThemeHandler(themes).RegisterThemeRoutes(api)
	NewQuotesHandler(catalog, share).RegisterQuoteRoutes(api)

	return &testAPI{
		engine:  engine,
		catalog: catalog,
		storage: storage,
	}
}

// do performs a request against the test router with the given session
// identity and decodes the JSON body into out when out is non-nil.
func (a *testAPI) do(t *testing.T, method, target, sessionID string, out any) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)

	if sessionID != "" {
		req.Header.Set(middleware.HeaderSessionID, sessionID)
	}

	a.engine.ServeHTTP(w, req)

	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}

	return w
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedeck/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotedeck/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotedeck/internal/app"
	"github.com/jsamuelsen/quotedeck/internal/domain"
)

// DeckHandler handles deck navigation HTTP endpoints.
type DeckHandler struct {
	deck   *app.DeckService
	themes *app.ThemeService
}

// NewDeckHandler creates a new deck handler.
func NewDeckHandler(deck *app.DeckService, themes *app.ThemeService) *DeckHandler {
	return &DeckHandler{
		deck:   deck,
		themes: themes,
	}
}

// AuthorResponse is the author block of a quote response.
type AuthorResponse struct {
	Name  string `json:"name"`
	Bio   string `json:"bio,omitempty"`
	Photo string `json:"photo,omitempty"`
}

// QuoteResponse is the HTTP response structure for a quote.
// Text carries the raw quote with line-break markers; HTML is safe to
// inject into a page, with markers rendered as <br> tags.
type QuoteResponse struct {
	ID     string         `json:"id"`
	Text   string         `json:"text"`
	HTML   string         `json:"html"`
	Author AuthorResponse `json:"author"`
}

// toQuoteResponse converts a domain Quote to an HTTP response.
// Authorless quotes are attributed to the anonymous fallback.
func toQuoteResponse(q domain.Quote) *QuoteResponse {
	return &QuoteResponse{
		ID:   q.ID,
		Text: q.Text,
		HTML: q.DisplayHTML(),
		Author: AuthorResponse{
			Name:  q.AuthorName(),
			Bio:   q.AuthorBio(),
			Photo: q.AuthorPhoto(),
		},
	}
}

// DeckResponse is the HTTP response structure for the visitor's deck view.
type DeckResponse struct {
	// Quote is the current quote; null when the collection is empty.
	Quote *QuoteResponse `json:"quote"`

	// Position is the 1-based position for "i / N" display.
	Position int `json:"position"`

	// Total is the collection size.
	Total int `json:"total"`

	// CanGoBack reports whether a backward step will move the cursor.
	CanGoBack bool `json:"canGoBack"`

	// Policy is the active navigation policy ("cyclic" or "random").
	Policy string `json:"policy"`
}

// BootstrapResponse is the initial page-load payload: the deck view and
// the resolved theme in one round trip.
type BootstrapResponse struct {
	Deck  DeckResponse `json:"deck"`
	Theme string       `json:"theme"`
}

// toDeckResponse converts an application deck view to an HTTP response.
func toDeckResponse(view app.DeckView) DeckResponse {
	resp := DeckResponse{
		Position:  view.Position,
		Total:     view.Total,
		CanGoBack: view.CanGoBack,
		Policy:    string(view.Policy),
	}

	if view.Quote != nil {
		resp.Quote = toQuoteResponse(*view.Quote)
	}

	return resp
}

// Bootstrap handles GET /api/v1/deck
// Returns the deck view and resolved theme in a single round trip for
// initial page load. The two lookups run concurrently.
//
// @Summary Bootstrap the quote deck
// @Description Returns the current deck view and resolved theme together
// @Tags deck
// @Produce json
// @Success 200 {object} BootstrapResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/deck [get]
func (h *DeckHandler) Bootstrap(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	ambient := ambientSignal(c)

	view, theme, err := app.Parallel2(c.Request.Context(),
		func(ctx context.Context) (app.DeckView, error) {
			return h.deck.Current(ctx, sessionID)
		},
		func(ctx context.Context) (domain.Theme, error) {
			return h.themes.Resolve(ctx, sessionID, ambient), nil
		},
	)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header(HeaderTheme, string(theme))
	c.JSON(http.StatusOK, BootstrapResponse{
		Deck:  toDeckResponse(view),
		Theme: string(theme),
	})
}

// Current handles GET /api/v1/deck/current
// Returns the visitor's current quote without moving the cursor.
//
// @Summary Get the current quote
// @Description Returns the visitor's current deck position
// @Tags deck
// @Produce json
// @Success 200 {object} DeckResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/deck/current [get]
func (h *DeckHandler) Current(c *gin.Context) {
	view, err := h.deck.Current(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDeckResponse(view))
}

// Next handles POST /api/v1/deck/next
// Advances the visitor's cursor and returns the new view.
//
// @Summary Advance to the next quote
// @Tags deck
// @Produce json
// @Success 200 {object} DeckResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/deck/next [post]
func (h *DeckHandler) Next(c *gin.Context) {
	view, err := h.deck.Next(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDeckResponse(view))
}

// Prev handles POST /api/v1/deck/prev
// Moves the visitor's cursor backward and returns the new view.
//
// @Summary Go back to the previous quote
// @Tags deck
// @Produce json
// @Success 200 {object} DeckResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/deck/prev [post]
func (h *DeckHandler) Prev(c *gin.Context) {
	view, err := h.deck.Prev(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDeckResponse(view))
}

// Reset handles DELETE /api/v1/deck
// Discards the visitor's saved navigation state.
//
// @Summary Reset the deck position
// @Tags deck
// @Success 204
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/deck [delete]
func (h *DeckHandler) Reset(c *gin.Context) {
	err := h.deck.Reset(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterDeckRoutes registers deck routes on the given router group.
func (h *DeckHandler) RegisterDeckRoutes(rg *gin.RouterGroup) {
	deck := rg.Group("/deck")
	deck.GET("", h.Bootstrap)
	deck.DELETE("", h.Reset)
	deck.GET("/current", h.Current)
	deck.POST("/next", h.Next)
	deck.POST("/prev", h.Prev)
}

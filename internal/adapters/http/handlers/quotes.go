package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedeck/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotedeck/internal/app"
	"github.com/jsamuelsen/quotedeck/internal/domain"
	"github.com/jsamuelsen/quotedeck/internal/ports"
)

// QuotesHandler handles quote catalog HTTP endpoints.
type QuotesHandler struct {
	source ports.QuoteSource
	share  *app.ShareService
}

// NewQuotesHandler creates a new quotes handler.
func NewQuotesHandler(source ports.QuoteSource, share *app.ShareService) *QuotesHandler {
	return &QuotesHandler{
		source: source,
		share:  share,
	}
}

// ShareResponse carries everything needed to share a quote: the native
// share fields plus prebuilt links for specific networks.
type ShareResponse struct {
	Title       string `json:"title"`
	Text        string `json:"text"`
	URL         string `json:"url"`
	TwitterURL  string `json:"twitterUrl,omitempty"`
	LinkedInURL string `json:"linkedinUrl,omitempty"`
}

// List handles GET /api/v1/quotes
// Returns the quote catalog as a cursor-paginated list in catalog order.
//
// @Summary List quotes
// @Description Returns the quote catalog, cursor-paginated
// @Tags quotes
// @Produce json
// @Param cursor query string false "Opaque cursor from a previous page"
// @Param limit query int false "Page size (1-100, default 20)"
// @Success 200 {object} dto.PaginatedResponse[QuoteResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes [get]
func (h *QuotesHandler) List(c *gin.Context) {
	var req dto.PaginationRequest

	err := dto.BindQueryAndValidate(c, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
			dto.ErrorCodeValidation,
			"request validation failed",
			dto.ValidationErrors(err),
		).WithTraceID(dto.GetTraceID(c)))

		return
	}

	collection := h.source.Collection()
	limit := req.GetLimit()

	start := 0

	cursor, err := req.DecodeCursor()

	switch {
	case errors.Is(err, dto.ErrNoCursor):
		// First page.
	case err != nil:
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeBadRequest,
			"invalid cursor",
		).WithTraceID(dto.GetTraceID(c)))

		return
	default:
		start = indexAfter(collection, cursor.ID)
	}

	end := start + limit + 1
	if end > len(collection) {
		end = len(collection)
	}

	page := make([]*QuoteResponse, 0, end-start)
	for _, q := range collection[start:end] {
		page = append(page, toQuoteResponse(q))
	}

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page, limit, func(q *QuoteResponse) *dto.CursorData {
		return dto.NewCursor("id", q.ID, q.ID)
	}))
}

// indexAfter returns the collection index just past the given quote ID.
// An unknown ID restarts from the beginning rather than failing the page.
func indexAfter(collection domain.Collection, id string) int {
	for i, q := range collection {
		if q.ID == id {
			return i + 1
		}
	}

	return 0
}

// GetByID handles GET /api/v1/quotes/:id
// Returns a specific quote by its identifier.
//
// @Summary Get a quote by ID
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{id} [get]
func (h *QuotesHandler) GetByID(c *gin.Context) {
	quote, err := h.source.Collection().ByID(c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// Share handles GET /api/v1/quotes/:id/share
// Returns the share payload for a quote.
//
// @Summary Get share payload for a quote
// @Description Returns native share fields plus prebuilt network links
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} ShareResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{id}/share [get]
func (h *QuotesHandler) Share(c *gin.Context) {
	payload, err := h.share.Build(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ShareResponse{
		Title:       payload.Title,
		Text:        payload.Text,
		URL:         payload.URL,
		TwitterURL:  payload.TwitterURL,
		LinkedInURL: payload.LinkedInURL,
	})
}

// RegisterQuoteRoutes registers quote catalog routes on the given router group.
func (h *QuotesHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.List)
	quotes.GET("/:id", h.GetByID)
	quotes.GET("/:id/share", h.Share)
}

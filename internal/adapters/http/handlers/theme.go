package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedeck/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotedeck/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotedeck/internal/app"
	"github.com/jsamuelsen/quotedeck/internal/domain"
)

const (
	// HeaderPrefersColorScheme is the client hint carrying the ambient
	// color-scheme preference of the visitor's environment.
	HeaderPrefersColorScheme = "Sec-CH-Prefers-Color-Scheme"

	// HeaderTheme echoes the resolved theme on responses.
	HeaderTheme = "X-Theme"
)

// ThemeHandler handles theme preference HTTP endpoints.
type ThemeHandler struct {
	themes *app.ThemeService
}

// NewThemeHandler creates a new theme handler.
func NewThemeHandler(themes *app.ThemeService) *ThemeHandler {
	return &ThemeHandler{
		themes: themes,
	}
}

// ThemeResponse is the HTTP response structure for the resolved theme.
type ThemeResponse struct {
	Theme string `json:"theme"`
}

// ThemeRequest is the body for explicitly setting a theme.
type ThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=dark light"`
}

// ambientSignal reads the visitor environment's color-scheme hint.
// An absent or unrecognized hint is simply unknown, never an error.
func ambientSignal(c *gin.Context) domain.AmbientSignal {
	switch c.GetHeader(HeaderPrefersColorScheme) {
	case "dark":
		return domain.AmbientDark
	case "light":
		return domain.AmbientLight
	default:
		return domain.AmbientUnknown
	}
}

// Get handles GET /api/v1/theme
// Resolves the visitor's theme: stored choice, then ambient hint, then light.
//
// @Summary Get the resolved theme
// @Tags theme
// @Produce json
// @Success 200 {object} ThemeResponse
// @Router /api/v1/theme [get]
func (h *ThemeHandler) Get(c *gin.Context) {
	theme := h.themes.Resolve(c.Request.Context(), middleware.GetSessionID(c), ambientSignal(c))

	c.Header(HeaderTheme, string(theme))
	c.JSON(http.StatusOK, ThemeResponse{Theme: string(theme)})
}

// Set handles PUT /api/v1/theme
// Persists an explicit theme choice for the visitor.
//
// @Summary Set the theme
// @Tags theme
// @Accept json
// @Produce json
// @Param body body ThemeRequest true "Theme choice"
// @Success 200 {object} ThemeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/theme [put]
func (h *ThemeHandler) Set(c *gin.Context) {
	var req ThemeRequest

	err := dto.BindAndValidate(c, &req)
	if err != nil {
		if dto.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
				dto.ErrorCodeValidation,
				"request validation failed",
				dto.ValidationErrors(err),
			).WithTraceID(dto.GetTraceID(c)))
			return
		}

		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeBadRequest,
			"invalid request body",
		).WithTraceID(dto.GetTraceID(c)))

		return
	}

	theme, err := h.themes.Set(c.Request.Context(), middleware.GetSessionID(c), req.Theme)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header(HeaderTheme, string(theme))
	c.JSON(http.StatusOK, ThemeResponse{Theme: string(theme)})
}

// Toggle handles POST /api/v1/theme/toggle
// Flips the visitor's current theme and persists the result.
//
// @Summary Toggle the theme
// @Tags theme
// @Produce json
// @Success 200 {object} ThemeResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/theme/toggle [post]
func (h *ThemeHandler) Toggle(c *gin.Context) {
	theme, err := h.themes.Toggle(c.Request.Context(), middleware.GetSessionID(c), ambientSignal(c))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header(HeaderTheme, string(theme))
	c.JSON(http.StatusOK, ThemeResponse{Theme: string(theme)})
}

// RegisterThemeRoutes registers theme routes on the given router group.
func (h *ThemeHandler) RegisterThemeRoutes(rg *gin.RouterGroup) {
	theme := rg.Group("/theme")
	theme.GET("", h.Get)
	theme.PUT("", h.Set)
	theme.POST("/toggle", h.Toggle)
}

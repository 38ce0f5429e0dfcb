package api

import (
	"net/http"
	"strconv"

	"github.com/album-index-api/internal/config"
	"github.com/album-index-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ListHandler handles the public listing endpoint
type ListHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewListHandler creates a new ListHandler
func NewListHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ListHandler {
	return &ListHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "list").Logger(),
	}
}

// ListPosts handles GET /v1/posts?page=&pageSize=&q=&sort=&showHidden=
// Hidden entries are only included for authenticated callers that ask
// for them explicitly.
func (h *ListHandler) ListPosts(c *gin.Context) {
	ctx := c.Request.Context()

	opts := service.ListOptions{
		Page:          intQuery(c, "page", 1),
		PageSize:      intQuery(c, "pageSize", service.DefaultPageSize),
		Query:         c.Query("q"),
		Sort:          c.DefaultQuery("sort", service.SortDateDesc),
		IncludeHidden: c.Query("showHidden") == "1" && isAdmin(c),
	}

	result, err := h.services.List.List(ctx, opts)
	if err != nil {
		h.log.Error().Err(err).Msg("List failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// intQuery parses an integer query parameter, falling back on junk
func intQuery(c *gin.Context, name string, fallback int) int {
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

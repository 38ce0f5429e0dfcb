package api

import (
	"errors"
	"net/http"

	"github.com/album-index-api/internal/config"
	"github.com/album-index-api/internal/models"
	"github.com/album-index-api/internal/repository"
	"github.com/album-index-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PostHandler handles the mutating post endpoints
type PostHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "post").Logger(),
	}
}

// CreatePost handles POST /v1/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	post, err := h.services.Post.Create(ctx, &req)
	if err != nil {
		h.respondError(c, err, "Create failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "slug": post.Slug})
}

// UpdateVisibility handles POST /v1/posts/visibility
func (h *PostHandler) UpdateVisibility(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.UpdateVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if req.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug required"})
		return
	}
	if req.Visible == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "visible required (boolean)"})
		return
	}

	post, err := h.services.Post.SetVisibility(ctx, req.Slug, *req.Visible)
	if err != nil {
		h.respondError(c, err, "Visibility update failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "slug": post.Slug, "visible": post.IsVisible()})
}

// RebuildIndex handles POST /v1/index/rebuild
func (h *PostHandler) RebuildIndex(c *gin.Context) {
	ctx := c.Request.Context()

	total, err := h.services.Post.RebuildIndex(ctx)
	if err != nil {
		h.respondError(c, err, "Rebuild failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "total": total})
}

// respondError maps service errors to HTTP statuses with a best-effort
// human-readable message
func (h *PostHandler) respondError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

package api

import (
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/album-index-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// shareTemplate renders the preview metadata as raw HTML so link crawlers
// see the tags, then redirects human visitors to the viewer page.
var shareTemplate = template.Must(template.New("share").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>

  <meta name="description" content="{{.Description}}">

  <meta property="og:type" content="website">
  <meta property="og:title" content="{{.Title}}">
  <meta property="og:description" content="{{.Description}}">
  <meta property="og:image" content="{{.Image}}">
  <meta property="og:url" content="{{.ShareURL}}">

  <meta name="twitter:card" content="summary_large_image">
  <meta name="twitter:title" content="{{.Title}}">
  <meta name="twitter:description" content="{{.Description}}">
  <meta name="twitter:image" content="{{.Image}}">

  <meta http-equiv="refresh" content="0; url={{.TargetURL}}">
</head>
<body style="font-family:system-ui,-apple-system,Segoe UI,Roboto,Helvetica,Arial; padding:24px; line-height:1.5;">
  <div>Opening the album… if nothing happens, use this link:</div>
  <p><a href="{{.TargetURL}}">{{.TargetURL}}</a></p>
  <script>location.replace("{{.TargetURL}}");</script>
</body>
</html>`))

// ShareHandler serves the social-preview redirect pages
type ShareHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewShareHandler creates a new ShareHandler
func NewShareHandler(services *service.Services, log zerolog.Logger) *ShareHandler {
	return &ShareHandler{
		services: services,
		log:      log.With().Str("handler", "share").Logger(),
	}
}

// SharePost handles GET /share/:slug and GET /share?slug=
func (h *ShareHandler) SharePost(c *gin.Context) {
	ctx := c.Request.Context()

	slug := resolveSlug(c)
	if slug == "" {
		c.String(http.StatusBadRequest, "slug required")
		return
	}

	preview := h.services.Share.Preview(ctx, slug, c.Query("showDates"))

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Header("Cache-Control", "no-store")
	c.Status(http.StatusOK)
	if err := shareTemplate.Execute(c.Writer, preview); err != nil {
		h.log.Error().Err(err).Str("slug", slug).Msg("Share template failed")
	}
}

// resolveSlug accepts the slug as a query parameter, a path parameter or
// the last segment of a rewritten path such as /p/<slug>
func resolveSlug(c *gin.Context) string {
	if slug := strings.TrimSpace(c.Query("slug")); slug != "" {
		return decodeSlug(slug)
	}
	if slug := c.Param("slug"); slug != "" {
		return decodeSlug(slug)
	}
	parts := strings.Split(strings.Trim(c.Request.URL.Path, "/"), "/")
	if len(parts) >= 2 && (parts[0] == "p" || parts[0] == "share") {
		return decodeSlug(parts[len(parts)-1])
	}
	return ""
}

func decodeSlug(s string) string {
	if decoded, err := url.QueryUnescape(s); err == nil {
		return decoded
	}
	return s
}

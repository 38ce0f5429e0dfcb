package service

import (
	"context"
	"net/url"

	"github.com/album-index-api/internal/config"
	"github.com/album-index-api/internal/repository"
	"github.com/rs/zerolog"
)

// descriptionBudget is the hard character budget for preview descriptions
const descriptionBudget = 160

// SharePreview is the metadata embedded in a share page
type SharePreview struct {
	Title       string
	Description string
	Image       string
	ShareURL    string
	TargetURL   string
}

// shareService is the concrete implementation of ShareService
type shareService struct {
	records repository.RecordRepository
	site    *config.SiteConfig
	log     zerolog.Logger
}

func newShareService(records repository.RecordRepository, site *config.SiteConfig, log zerolog.Logger) *shareService {
	return &shareService{
		records: records,
		site:    site,
		log:     log.With().Str("service", "share").Logger(),
	}
}

// Preview derives the share metadata for a slug. The canonical record is
// read directly, bypassing the index, since only the record carries the
// full description and preview image. Every fetch failure degrades to the
// configured site defaults: a generic preview beats a broken one.
func (s *shareService) Preview(ctx context.Context, slug, showDates string) *SharePreview {
	p := &SharePreview{
		Title:       s.site.Name,
		Description: s.site.Description,
		Image:       s.defaultImage(),
		ShareURL:    s.shareURL(slug, showDates),
		TargetURL:   s.targetURL(slug, showDates),
	}

	post, err := s.records.Get(ctx, slug)
	if err != nil {
		s.log.Debug().Err(err).Str("slug", slug).Msg("Falling back to default share metadata")
		return p
	}

	if post.Title != "" {
		p.Title = post.Title
	}
	if post.Desc != "" {
		p.Description = truncate(post.Desc, descriptionBudget)
	}
	if post.Preview != "" {
		p.Image = post.Preview
	}
	return p
}

// shareURL is the canonical public URL of the post
func (s *shareService) shareURL(slug, showDates string) string {
	u := s.site.BaseURL + "/p/" + url.PathEscape(slug)
	if showDates != "" {
		u += "?showDates=" + url.QueryEscape(showDates)
	}
	return u
}

// targetURL is the viewer page the share page redirects to
func (s *shareService) targetURL(slug, showDates string) string {
	u := s.site.BaseURL + s.site.ViewerPage + "?slug=" + url.QueryEscape(slug)
	if showDates != "" {
		u += "&showDates=" + url.QueryEscape(showDates)
	}
	return u
}

func (s *shareService) defaultImage() string {
	img := s.site.DefaultImage
	if img == "" {
		img = "/logo.png"
	}
	if s.site.BaseURL != "" && len(img) > 0 && img[0] == '/' {
		return s.site.BaseURL + img
	}
	return img
}

// truncate cuts a string at budget runes, marking the cut with an ellipsis
func truncate(s string, budget int) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget-3]) + "…"
}

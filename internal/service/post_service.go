package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/album-index-api/internal/models"
	"github.com/album-index-api/internal/repository"
	"github.com/rs/zerolog"
)

// postService is the concrete implementation of PostService.
//
// Every write goes to the canonical record first and the index second. A
// failed index write therefore surfaces as a failed request even though
// the record write already succeeded; the index catches up on the next
// write or rebuild.
type postService struct {
	records repository.RecordRepository
	index   repository.IndexRepository
	log     zerolog.Logger
	now     func() time.Time
}

func newPostService(repos *repository.Repositories, log zerolog.Logger) *postService {
	return &postService{
		records: repos.Record,
		index:   repos.Index,
		log:     log.With().Str("service", "post").Logger(),
		now:     time.Now,
	}
}

// Create validates the request, writes the canonical record and upserts
// its index entry. Creating an existing slug rewrites the record but
// keeps its original created_at.
func (s *postService) Create(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		return nil, fmt.Errorf("%w: slug required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}

	now := models.FormatTime(s.now())
	createdAt := now
	existing, err := s.records.Get(ctx, slug)
	switch {
	case err == nil:
		if existing.CreatedAt != "" {
			createdAt = existing.CreatedAt
		}
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrCorrupt):
		// first write for this slug, or overwriting a broken document
	default:
		return nil, err
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	post := &models.Post{
		Version:   models.DocumentVersion,
		Slug:      slug,
		Title:     req.Title,
		Date:      req.Date,
		Desc:      req.Desc,
		Tags:      models.NormalizeTags(req.Tags),
		Items:     req.Items,
		Preview:   req.Items[0].URL,
		Visible:   &visible,
		CreatedAt: createdAt,
		UpdatedAt: now,
	}

	if err := s.records.Put(ctx, post); err != nil {
		return nil, err
	}
	if err := s.index.Upsert(ctx, post.ToIndexEntry()); err != nil {
		return nil, err
	}

	s.log.Info().Str("slug", slug).Msg("Post created")
	return post, nil
}

// SetVisibility toggles the visible flag on the canonical record and
// syncs the index entry
func (s *postService) SetVisibility(ctx context.Context, slug string, visible bool) (*models.Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("%w: slug required", ErrValidation)
	}

	post, err := s.records.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	post.Slug = slug
	post.Visible = &visible
	post.UpdatedAt = models.FormatTime(s.now())

	if err := s.records.Put(ctx, post); err != nil {
		return nil, err
	}
	if err := s.index.Upsert(ctx, post.ToIndexEntry()); err != nil {
		return nil, err
	}

	s.log.Info().Str("slug", slug).Bool("visible", visible).Msg("Post visibility updated")
	return post, nil
}

// RebuildIndex reconstructs the index from all canonical records
func (s *postService) RebuildIndex(ctx context.Context) (int, error) {
	return s.index.Rebuild(ctx)
}

package service

import (
	"context"
	"errors"

	"github.com/album-index-api/internal/config"
	"github.com/album-index-api/internal/models"
	"github.com/album-index-api/internal/repository"
	"github.com/rs/zerolog"
)

// ErrValidation marks invalid caller input
var ErrValidation = errors.New("invalid input")

// PostService defines the mutating post operations
type PostService interface {
	Create(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error)
	SetVisibility(ctx context.Context, slug string, visible bool) (*models.Post, error)
	RebuildIndex(ctx context.Context) (int, error)
}

// ListService turns the index document into a page of results
type ListService interface {
	List(ctx context.Context, opts ListOptions) (*ListResult, error)
}

// ShareService derives social-preview metadata for a single post
type ShareService interface {
	Preview(ctx context.Context, slug, showDates string) *SharePreview
}

// Services holds all service interfaces
type Services struct {
	Post  PostService
	List  ListService
	Share ShareService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Post:  newPostService(repos, log),
		List:  newListService(repos.Index, log),
		Share: newShareService(repos.Record, &cfg.Site, log),
	}
}

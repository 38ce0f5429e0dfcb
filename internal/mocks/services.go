package mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/album-index-api/internal/models"
	"github.com/album-index-api/internal/repository"
	"github.com/album-index-api/internal/service"
)

// MockPostService is a mock implementation of service.PostService
type MockPostService struct {
	Posts         map[string]*models.Post
	CreateErr     error
	VisibilityErr error
	RebuildTotal  int
	RebuildErr    error
	RebuildCalls  int
}

func NewMockPostService() *MockPostService {
	return &MockPostService{Posts: make(map[string]*models.Post)}
}

func (m *MockPostService) Create(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		return nil, fmt.Errorf("%w: slug required", service.ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", service.ErrValidation)
	}
	post := &models.Post{
		Version: models.DocumentVersion,
		Slug:    slug,
		Title:   req.Title,
		Date:    req.Date,
		Desc:    req.Desc,
		Tags:    models.NormalizeTags(req.Tags),
		Items:   req.Items,
		Preview: req.Items[0].URL,
		Visible: req.Visible,
	}
	m.Posts[slug] = post
	return post, nil
}

func (m *MockPostService) SetVisibility(ctx context.Context, slug string, visible bool) (*models.Post, error) {
	if m.VisibilityErr != nil {
		return nil, m.VisibilityErr
	}
	post, ok := m.Posts[slug]
	if !ok {
		return nil, fmt.Errorf("post %q: %w", slug, repository.ErrNotFound)
	}
	post.Visible = &visible
	return post, nil
}

func (m *MockPostService) RebuildIndex(ctx context.Context) (int, error) {
	m.RebuildCalls++
	if m.RebuildErr != nil {
		return 0, m.RebuildErr
	}
	return m.RebuildTotal, nil
}

// MockListService is a mock implementation of service.ListService
type MockListService struct {
	Result   *service.ListResult
	Err      error
	LastOpts service.ListOptions
}

func NewMockListService() *MockListService {
	return &MockListService{
		Result: &service.ListResult{
			Items:      []models.IndexEntry{},
			Page:       1,
			PageSize:   service.DefaultPageSize,
			TotalPages: 1,
		},
	}
}

func (m *MockListService) List(ctx context.Context, opts service.ListOptions) (*service.ListResult, error) {
	m.LastOpts = opts
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// MockShareService is a mock implementation of service.ShareService
type MockShareService struct {
	Previews map[string]*service.SharePreview
	Default  service.SharePreview
}

func NewMockShareService() *MockShareService {
	return &MockShareService{
		Previews: make(map[string]*service.SharePreview),
		Default: service.SharePreview{
			Title:       "Photo Album",
			Description: "Open to browse the full photo album.",
			Image:       "/logo.png",
		},
	}
}

func (m *MockShareService) Preview(ctx context.Context, slug, showDates string) *service.SharePreview {
	if p, ok := m.Previews[slug]; ok {
		return p
	}
	p := m.Default
	p.TargetURL = "/post.html?slug=" + slug
	p.ShareURL = "/p/" + slug
	return &p
}

package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/album-index-api/internal/models"
	"github.com/album-index-api/internal/repository"
	"github.com/album-index-api/internal/service"
)

func createRequest(slug string) *models.CreatePostRequest {
	return &models.CreatePostRequest{
		Slug:  slug,
		Title: "Title " + slug,
		Date:  "2024-03-01",
		Desc:  "desc",
		Tags:  json.RawMessage(`["a"," b ","c"]`),
		Items: []models.MediaItem{
			{URL: "https://cdn.example.com/" + slug + "/1.jpg"},
			{URL: "https://cdn.example.com/" + slug + "/2.jpg"},
		},
	}
}

func TestCreate_WritesRecordAndIndex(t *testing.T) {
	services, repos, _ := newTestStack()
	ctx := context.Background()

	post, err := services.Post.Create(ctx, createRequest("trip"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if post.Preview != "https://cdn.example.com/trip/1.jpg" {
		t.Errorf("preview should be the first item URL, got %q", post.Preview)
	}
	if post.CreatedAt == "" || post.UpdatedAt == "" {
		t.Error("timestamps must be stamped on creation")
	}
	if len(post.Tags) != 3 || post.Tags[1] != "b" {
		t.Errorf("tags not normalized: %v", post.Tags)
	}

	// Canonical record is in place
	stored, err := repos.Record.Get(ctx, "trip")
	if err != nil {
		t.Fatalf("record missing after create: %v", err)
	}
	if stored.Title != "Title trip" {
		t.Errorf("stored title = %q", stored.Title)
	}

	// Index entry mirrors the record
	doc, _ := repos.Index.Load(ctx)
	if len(doc.Items) != 1 {
		t.Fatalf("expected 1 index entry, got %d", len(doc.Items))
	}
	e := doc.Items[0]
	if e.Slug != "trip" || e.Title != stored.Title || e.Desc != stored.Desc ||
		e.Preview != stored.Preview || e.UpdatedAt != stored.UpdatedAt {
		t.Errorf("index entry does not mirror record: %+v", e)
	}
}

func TestCreate_Validation(t *testing.T) {
	services, _, _ := newTestStack()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.CreatePostRequest
	}{
		{"missing slug", &models.CreatePostRequest{Items: []models.MediaItem{{URL: "x"}}}},
		{"blank slug", &models.CreatePostRequest{Slug: "   ", Items: []models.MediaItem{{URL: "x"}}}},
		{"missing items", &models.CreatePostRequest{Slug: "ok"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := services.Post.Create(ctx, tt.req)
			if !errors.Is(err, service.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCreate_PreservesCreatedAt(t *testing.T) {
	services, repos, _ := newTestStack()
	ctx := context.Background()

	first, err := services.Post.Create(ctx, createRequest("trip"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req := createRequest("trip")
	req.Title = "Renamed"
	second, err := services.Post.Create(ctx, req)
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}

	if second.CreatedAt != first.CreatedAt {
		t.Errorf("created_at changed across rewrites: %q -> %q", first.CreatedAt, second.CreatedAt)
	}

	doc, _ := repos.Index.Load(ctx)
	if len(doc.Items) != 1 {
		t.Fatalf("recreate must not duplicate the index entry, got %d", len(doc.Items))
	}
	if doc.Items[0].Title != "Renamed" {
		t.Errorf("index entry not refreshed: %+v", doc.Items[0])
	}
}

func TestCreate_VisibleDefaultsTrue(t *testing.T) {
	services, _, _ := newTestStack()
	ctx := context.Background()

	post, err := services.Post.Create(ctx, createRequest("defaulted"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !post.IsVisible() {
		t.Error("posts default to visible")
	}

	hidden := false
	req := createRequest("hidden")
	req.Visible = &hidden
	post, err = services.Post.Create(ctx, req)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if post.IsVisible() {
		t.Error("explicit visible=false must stick")
	}
}

func TestSetVisibility(t *testing.T) {
	services, repos, _ := newTestStack()
	ctx := context.Background()

	created, err := services.Post.Create(ctx, createRequest("toggle-me"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	post, err := services.Post.SetVisibility(ctx, "toggle-me", false)
	if err != nil {
		t.Fatalf("SetVisibility failed: %v", err)
	}
	if post.IsVisible() {
		t.Error("post should be hidden")
	}
	if post.CreatedAt != created.CreatedAt {
		t.Error("visibility toggle must not touch created_at")
	}

	// Both stores reflect the toggle
	stored, _ := repos.Record.Get(ctx, "toggle-me")
	if stored.IsVisible() {
		t.Error("canonical record still visible")
	}
	doc, _ := repos.Index.Load(ctx)
	if doc.Items[0].IsVisible() {
		t.Error("index entry still visible")
	}
	if doc.Items[0].UpdatedAt != stored.UpdatedAt {
		t.Error("index updated_at must equal the record's after a write")
	}
}

func TestSetVisibility_UnknownSlug(t *testing.T) {
	services, _, _ := newTestStack()

	_, err := services.Post.SetVisibility(context.Background(), "missing", false)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSetVisibility_HealsMissingIndexEntry(t *testing.T) {
	services, repos, store := newTestStack()
	ctx := context.Background()

	if _, err := services.Post.Create(ctx, createRequest("orphan")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	// Simulate a lost index
	store.Delete("posts/index")

	if _, err := services.Post.SetVisibility(ctx, "orphan", false); err != nil {
		t.Fatalf("SetVisibility failed: %v", err)
	}

	doc, _ := repos.Index.Load(ctx)
	if len(doc.Items) != 1 || doc.Items[0].Slug != "orphan" {
		t.Errorf("toggle should re-insert the missing entry: %+v", doc.Items)
	}
}

func TestRebuildIndex_MatchesCanonicalSet(t *testing.T) {
	services, repos, store := newTestStack()
	ctx := context.Background()

	for _, slug := range []string{"a", "b", "c"} {
		if _, err := services.Post.Create(ctx, createRequest(slug)); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	store.Delete("posts/index")

	total, err := services.Post.RebuildIndex(ctx)
	if err != nil {
		t.Fatalf("RebuildIndex failed: %v", err)
	}
	if total != 3 {
		t.Errorf("expected 3 entries, got %d", total)
	}

	doc, _ := repos.Index.Load(ctx)
	if len(doc.Items) != 3 {
		t.Errorf("index should hold every canonical record, got %d", len(doc.Items))
	}
}

func TestCreate_IndexWriteFailureSurfaces(t *testing.T) {
	services, repos, store := newTestStack()
	ctx := context.Background()

	if _, err := services.Post.Create(ctx, createRequest("first")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	store.PutErr = errors.New("store unreachable")
	_, err := services.Post.Create(ctx, createRequest("second"))
	if err == nil {
		t.Fatal("index write failure must fail the request")
	}
	store.PutErr = nil

	// The canonical record may have landed; rebuild repairs the index
	if _, err := services.Post.RebuildIndex(ctx); err != nil {
		t.Fatalf("RebuildIndex failed: %v", err)
	}
	doc, _ := repos.Index.Load(ctx)
	if len(doc.Items) != 1 {
		t.Errorf("expected 1 entry after repair, got %d", len(doc.Items))
	}
}

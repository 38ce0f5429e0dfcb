package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/album-index-api/internal/blobstore"
	"github.com/album-index-api/internal/models"
	"github.com/rs/zerolog"
)

const (
	// listPageSize is the page size requested from the object store
	listPageSize = 500

	// maxListPages bounds enumeration against a misbehaving store
	maxListPages = 20
)

// recordRepo is the concrete implementation of RecordRepository
type recordRepo struct {
	store blobstore.ObjectStore
	keys  Keys
	log   zerolog.Logger
}

// newRecordRepo creates a record repository over the object store
func newRecordRepo(store blobstore.ObjectStore, keys Keys, log zerolog.Logger) *recordRepo {
	return &recordRepo{
		store: store,
		keys:  keys,
		log:   log.With().Str("component", "record_repo").Logger(),
	}
}

// Put serializes the post and overwrites its canonical document. It has
// no side effect on the index.
func (r *recordRepo) Put(ctx context.Context, post *models.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("marshal post %q: %w", post.Slug, err)
	}
	if err := r.store.Put(ctx, r.keys.Record(post.Slug), data); err != nil {
		return fmt.Errorf("store post %q: %w", post.Slug, err)
	}
	return nil
}

// Get fetches and parses the canonical document for a slug
func (r *recordRepo) Get(ctx context.Context, slug string) (*models.Post, error) {
	data, err := r.store.Get(ctx, r.keys.Record(slug))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, fmt.Errorf("post %q: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("fetch post %q: %w", slug, err)
	}

	var post models.Post
	if err := json.Unmarshal(data, &post); err != nil {
		return nil, fmt.Errorf("post %q: %w: %v", slug, ErrCorrupt, err)
	}
	return &post, nil
}

// FindAllSlugs enumerates every canonical record key under the namespace
// prefix. Pagination from the store is followed for at most maxListPages
// pages.
func (r *recordRepo) FindAllSlugs(ctx context.Context) ([]string, error) {
	var slugs []string
	cursor := ""

	for page := 0; page < maxListPages; page++ {
		keys, next, err := r.store.List(ctx, r.keys.Prefix+"/", cursor, listPageSize)
		if err != nil {
			return nil, fmt.Errorf("list records: %w", err)
		}
		for _, key := range keys {
			if slug := r.keys.SlugFromRecordKey(key); slug != "" {
				slugs = append(slugs, slug)
			}
		}
		if next == "" {
			return slugs, nil
		}
		cursor = next
	}

	r.log.Warn().Int("pages", maxListPages).Msg("Record listing stopped at page cap")
	return slugs, nil
}

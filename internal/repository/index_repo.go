package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/album-index-api/internal/blobstore"
	"github.com/album-index-api/internal/models"
	"github.com/rs/zerolog"
)

// indexRepo is the concrete implementation of IndexRepository.
//
// There is no lock and no compare-and-swap on the index document: two
// concurrent writers race and the later Save wins. The canonical records
// are unaffected, so a lost index update is always repairable via Rebuild.
type indexRepo struct {
	store   blobstore.ObjectStore
	keys    Keys
	records RecordRepository
	log     zerolog.Logger
	now     func() time.Time
}

// newIndexRepo creates an index repository over the object store
func newIndexRepo(store blobstore.ObjectStore, keys Keys, records RecordRepository, log zerolog.Logger, now func() time.Time) *indexRepo {
	return &indexRepo{
		store:   store,
		keys:    keys,
		records: records,
		log:     log.With().Str("component", "index_repo").Logger(),
		now:     now,
	}
}

// Load fetches the index document. A missing or unparseable index is an
// expected state (first run, interrupted write) and yields an empty
// document; only transport failures propagate.
func (r *indexRepo) Load(ctx context.Context) (*models.IndexDocument, error) {
	data, err := r.store.Get(ctx, r.keys.Index())
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return models.EmptyIndexDocument(), nil
		}
		return nil, fmt.Errorf("fetch index: %w", err)
	}

	var doc models.IndexDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		r.log.Warn().Err(err).Msg("Index document is corrupt, treating as empty")
		return models.EmptyIndexDocument(), nil
	}
	if doc.Items == nil {
		doc.Items = []models.IndexEntry{}
	}
	return &doc, nil
}

// Save wraps entries in a fresh document and overwrites the index key.
// Every save rewrites the whole document; there is no partial update.
func (r *indexRepo) Save(ctx context.Context, entries []models.IndexEntry) error {
	if entries == nil {
		entries = []models.IndexEntry{}
	}
	doc := models.IndexDocument{
		Version:   models.DocumentVersion,
		UpdatedAt: models.FormatTime(r.now()),
		Items:     entries,
	}
	data, err := json.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	if err := r.store.Put(ctx, r.keys.Index(), data); err != nil {
		return fmt.Errorf("store index: %w", err)
	}
	return nil
}

// Upsert loads the index, replaces the entry matching the slug or appends
// it, re-sorts by recency and saves. Last write wins at document level.
func (r *indexRepo) Upsert(ctx context.Context, entry models.IndexEntry) error {
	doc, err := r.Load(ctx)
	if err != nil {
		return err
	}

	entries := doc.Items
	replaced := false
	for i := range entries {
		if entries[i].Slug == entry.Slug {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	models.SortEntriesByRecency(entries)
	return r.Save(ctx, entries)
}

// Rebuild reconstructs the whole index from the canonical records.
// Records that fail to fetch or parse are skipped so a single corrupt
// document cannot block reconstruction of the rest.
func (r *indexRepo) Rebuild(ctx context.Context) (int, error) {
	slugs, err := r.records.FindAllSlugs(ctx)
	if err != nil {
		return 0, err
	}

	entries := make([]models.IndexEntry, 0, len(slugs))
	for _, slug := range slugs {
		post, err := r.records.Get(ctx, slug)
		if err != nil {
			r.log.Warn().Err(err).Str("slug", slug).Msg("Skipping record during rebuild")
			continue
		}
		// The storage key is authoritative for the slug
		post.Slug = slug
		entries = append(entries, post.ToIndexEntry())
	}

	models.SortEntriesByRecency(entries)
	if err := r.Save(ctx, entries); err != nil {
		return 0, err
	}

	r.log.Info().Int("total", len(entries)).Msg("Index rebuilt")
	return len(entries), nil
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/album-index-api/internal/blobstore"
	"github.com/album-index-api/internal/models"
	"github.com/rs/zerolog"
)

var (
	// ErrNotFound is returned when no canonical record exists for a slug
	ErrNotFound = errors.New("record not found")

	// ErrCorrupt is returned when a stored document fails to parse
	ErrCorrupt = errors.New("stored document is corrupt")
)

// RecordRepository stores one canonical JSON document per slug
type RecordRepository interface {
	Put(ctx context.Context, post *models.Post) error
	Get(ctx context.Context, slug string) (*models.Post, error)
	FindAllSlugs(ctx context.Context) ([]string, error)
}

// IndexRepository maintains the single shared index document. The index
// is derived data: loading treats absence and corruption as an empty
// index, and Rebuild reconstructs it from the canonical records.
type IndexRepository interface {
	Load(ctx context.Context) (*models.IndexDocument, error)
	Save(ctx context.Context, entries []models.IndexEntry) error
	Upsert(ctx context.Context, entry models.IndexEntry) error
	Rebuild(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Record RecordRepository
	Index  IndexRepository
}

// New creates all repositories over the given object store. keyPrefix is
// the top-level namespace inside the store (normally "posts").
func New(store blobstore.ObjectStore, keyPrefix string, log zerolog.Logger) *Repositories {
	keys := Keys{Prefix: keyPrefix}
	record := newRecordRepo(store, keys, log)
	index := newIndexRepo(store, keys, record, log, time.Now)
	return &Repositories{
		Record: record,
		Index:  index,
	}
}

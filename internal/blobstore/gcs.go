package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCS is an ObjectStore backed by a Google Cloud Storage bucket
type GCS struct {
	client *storage.Client
	bucket string
}

// NewGCS creates an ObjectStore over the given bucket
func NewGCS(client *storage.Client, bucket string) (*GCS, error) {
	if client == nil {
		return nil, errors.New("gcs: client is nil")
	}
	if bucket == "" {
		return nil, errors.New("gcs: bucket is empty")
	}
	return &GCS{client: client, bucket: bucket}, nil
}

// Put writes data at key, overwriting any existing object
func (s *GCS) Put(ctx context.Context, key string, data []byte) error {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("write object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("write object %q: %w", key, err)
	}
	return nil
}

// Get fetches the object at key
func (s *GCS) Get(ctx context.Context, key string) ([]byte, error) {
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("object %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("read object %q: %w", key, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read object %q: %w", key, err)
	}
	return data, nil
}

// List returns one page of keys under prefix starting at cursor
func (s *GCS) List(ctx context.Context, prefix, cursor string, limit int) ([]string, string, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	pager := iterator.NewPager(it, limit, cursor)

	var attrs []*storage.ObjectAttrs
	next, err := pager.NextPage(&attrs)
	if err != nil {
		return nil, "", fmt.Errorf("list objects under %q: %w", prefix, err)
	}

	keys := make([]string, 0, len(attrs))
	for _, a := range attrs {
		keys = append(keys, a.Name)
	}
	return keys, next, nil
}

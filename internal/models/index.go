package models

import (
	"sort"
	"time"
)

// IndexEntry is the denormalized projection of one post inside the
// shared index document. Lookups are by slug; position carries no meaning.
type IndexEntry struct {
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Desc      string   `json:"desc"`
	Tags      []string `json:"tags"`
	Preview   string   `json:"preview,omitempty"`
	Visible   *bool    `json:"visible,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
	UpdatedAt string   `json:"updated_at,omitempty"`
}

// IsVisible reports the effective visibility: anything but an explicit
// false counts as visible.
func (e *IndexEntry) IsVisible() bool {
	return e.Visible == nil || *e.Visible
}

// IndexDocument is the single shared list index. It is derived data and
// can always be regenerated from the canonical records.
type IndexDocument struct {
	Version   int          `json:"version"`
	UpdatedAt string       `json:"updated_at"`
	Items     []IndexEntry `json:"items"`
}

// EmptyIndexDocument returns the document used when no index exists yet
func EmptyIndexDocument() *IndexDocument {
	return &IndexDocument{
		Version: DocumentVersion,
		Items:   []IndexEntry{},
	}
}

// recencyKey is the sort key shared by upsert and rebuild: updated_at if
// present, else created_at. Unparseable or missing timestamps sort as
// epoch zero, i.e. oldest.
func recencyKey(e *IndexEntry) time.Time {
	ts := e.UpdatedAt
	if ts == "" {
		ts = e.CreatedAt
	}
	return ParseTime(ts)
}

// SortEntriesByRecency sorts entries descending by recency in place
func SortEntriesByRecency(entries []IndexEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return recencyKey(&entries[i]).After(recencyKey(&entries[j]))
	})
}

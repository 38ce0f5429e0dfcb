package models

import (
	"encoding/json"
)

// DocumentVersion is written into every stored document for forward
// compatibility. Nothing branches on it yet.
const DocumentVersion = 1

// MediaItem is a single media descriptor inside a post
type MediaItem struct {
	URL     string `json:"url"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// Post is the canonical per-slug document stored in the object store.
// The slug is the storage key and never changes after creation.
type Post struct {
	Version   int         `json:"version"`
	Slug      string      `json:"slug"`
	Title     string      `json:"title"`
	Date      string      `json:"date"`
	Desc      string      `json:"desc"`
	Tags      []string    `json:"tags"`
	Items     []MediaItem `json:"items"`
	Preview   string      `json:"preview,omitempty"`
	Visible   *bool       `json:"visible,omitempty"`
	CreatedAt string      `json:"created_at,omitempty"`
	UpdatedAt string      `json:"updated_at,omitempty"`
}

// IsVisible reports the effective visibility: anything but an explicit
// false counts as visible.
func (p *Post) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

// FirstItemURL returns the URL of the first media item, or ""
func (p *Post) FirstItemURL() string {
	if len(p.Items) == 0 {
		return ""
	}
	return p.Items[0].URL
}

// ToIndexEntry derives the denormalized index projection of the post.
// Tags are normalized, the preview falls back to the first item URL and
// visibility is made explicit.
func (p *Post) ToIndexEntry() IndexEntry {
	preview := p.Preview
	if preview == "" {
		preview = p.FirstItemURL()
	}
	visible := p.IsVisible()
	return IndexEntry{
		Slug:      p.Slug,
		Title:     p.Title,
		Date:      p.Date,
		Desc:      p.Desc,
		Tags:      NormalizeTagList(p.Tags),
		Preview:   preview,
		Visible:   &visible,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// CreatePostRequest is the request body for post creation. Tags may be
// either a JSON array of strings or a single delimiter-separated string.
type CreatePostRequest struct {
	Slug    string          `json:"slug"`
	Title   string          `json:"title"`
	Date    string          `json:"date"`
	Desc    string          `json:"desc"`
	Tags    json.RawMessage `json:"tags"`
	Items   []MediaItem     `json:"items"`
	Visible *bool           `json:"visible"`
}

// UpdateVisibilityRequest is the request body for visibility toggles
type UpdateVisibilityRequest struct {
	Slug    string `json:"slug"`
	Visible *bool  `json:"visible"`
}

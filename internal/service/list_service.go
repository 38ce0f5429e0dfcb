package service

import (
	"context"
	"sort"
	"strings"

	"github.com/album-index-api/internal/models"
	"github.com/album-index-api/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	// DefaultPageSize is used when the caller does not ask for one
	DefaultPageSize = 6

	// MaxPageSize caps a single page of results
	MaxPageSize = 50
)

// Sort modes accepted by List
const (
	SortDateDesc  = "date_desc"
	SortDateAsc   = "date_asc"
	SortTitleAsc  = "title_asc"
	SortTitleDesc = "title_desc"
)

// newTitleCollator gives a fixed collation for title sorting so that
// ordering is deterministic across deployments. A Collator keeps
// internal iterator state, so each sort gets its own.
func newTitleCollator() *collate.Collator {
	return collate.New(language.English)
}

// ListOptions are the query parameters of a list request
type ListOptions struct {
	Page          int
	PageSize      int
	Query         string
	Sort          string
	IncludeHidden bool // only honored for authenticated callers
}

// ListResult is one page of index entries
type ListResult struct {
	Items      []models.IndexEntry `json:"items"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
	TotalPages int                 `json:"totalPages"`
}

// listService is the concrete implementation of ListService
type listService struct {
	index repository.IndexRepository
	log   zerolog.Logger
}

func newListService(index repository.IndexRepository, log zerolog.Logger) *listService {
	return &listService{
		index: index,
		log:   log.With().Str("service", "list").Logger(),
	}
}

// List runs the fixed pipeline: load, project, visibility filter,
// free-text filter, sort, paginate.
func (s *listService) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	doc, err := s.index.Load(ctx)
	if err != nil {
		return nil, err
	}

	items := projectEntries(doc.Items)

	if !opts.IncludeHidden {
		items = filterVisible(items)
	}

	if q := strings.ToLower(strings.TrimSpace(opts.Query)); q != "" {
		items = filterQuery(items, q)
	}

	sortEntries(items, opts.Sort)

	return paginate(items, opts.Page, opts.PageSize), nil
}

// projectEntries maps raw index entries to the public shape: entries
// without a slug are dropped, tags are normalized and visibility is made
// explicit
func projectEntries(entries []models.IndexEntry) []models.IndexEntry {
	out := make([]models.IndexEntry, 0, len(entries))
	for _, e := range entries {
		if e.Slug == "" {
			continue
		}
		visible := e.IsVisible()
		e.Tags = models.NormalizeTagList(e.Tags)
		e.Visible = &visible
		out = append(out, e)
	}
	return out
}

func filterVisible(entries []models.IndexEntry) []models.IndexEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.IsVisible() {
			out = append(out, e)
		}
	}
	return out
}

// filterQuery keeps entries whose title, slug, description or tags
// contain the lower-cased query substring
func filterQuery(entries []models.IndexEntry, q string) []models.IndexEntry {
	out := entries[:0]
	for _, e := range entries {
		hay := strings.ToLower(strings.Join([]string{
			e.Title, e.Slug, e.Desc, strings.Join(e.Tags, " "),
		}, " "))
		if strings.Contains(hay, q) {
			out = append(out, e)
		}
	}
	return out
}

// entryDate is the timestamp used by the date sort modes: the free-form
// date field, falling back to created_at
func entryDate(e *models.IndexEntry) int64 {
	ts := e.Date
	if ts == "" {
		ts = e.CreatedAt
	}
	t := models.ParseTime(ts)
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func sortEntries(entries []models.IndexEntry, mode string) {
	var titles *collate.Collator
	if mode == SortTitleAsc || mode == SortTitleDesc {
		titles = newTitleCollator()
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := &entries[i], &entries[j]
		switch mode {
		case SortDateAsc:
			return entryDate(a) < entryDate(b)
		case SortTitleAsc:
			return titles.CompareString(a.Title, b.Title) < 0
		case SortTitleDesc:
			return titles.CompareString(b.Title, a.Title) < 0
		default: // SortDateDesc
			return entryDate(a) > entryDate(b)
		}
	})
}

// paginate clamps pageSize to [1,MaxPageSize] and page to [1,totalPages]
func paginate(entries []models.IndexEntry, page, pageSize int) *ListResult {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(entries)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &ListResult{
		Items:      entries[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/JuzzThyne/ERI-backend/models"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// SearchQuery is a page request over items whose name contains Term.
type SearchQuery struct {
	Term     string
	Page     int
	PageSize int
	Sort     SortDirection
}

// Summary is the projection returned by searches. Timestamps are left out.
type Summary struct {
	ID        string
	PhotoURLs []string
	Name      string
	Price     models.Price
}

type SearchResult struct {
	Items      []Summary
	Count      int
	Page       int
	TotalPages int
	Total      int64
}

// ParseSearchQuery reads the raw query values. Missing, non-numeric or
// non-positive page and limit values fall back to the defaults.
func ParseSearchQuery(term, page, limit, sortOrder string) SearchQuery {
	return SearchQuery{
		Term:     strings.TrimSpace(term),
		Page:     positiveOr(page, DefaultPage),
		PageSize: positiveOr(limit, DefaultPageSize),
		Sort:     ParseSortDirection(sortOrder),
	}
}

func positiveOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// ParseSortDirection accepts asc/ascending/1 and desc/descending/-1.
// Anything else sorts ascending.
func ParseSortDirection(s string) SortDirection {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending", "-1":
		return SortDescending
	default:
		return SortAscending
	}
}

func (q SearchQuery) withDefaults() SearchQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return q
}

func (q SearchQuery) filter() Filter {
	return Filter{NameContains: q.Term}
}

// window returns the store window for the page. ok is false when the page
// starts beyond any representable offset; such a page is always empty.
func (q SearchQuery) window() (opts FindOptions, ok bool) {
	if q.Page-1 > math.MaxInt/q.PageSize {
		return FindOptions{}, false
	}
	return FindOptions{
		Skip:  (q.Page - 1) * q.PageSize,
		Limit: q.PageSize,
		Sort:  q.Sort,
	}, true
}

// TotalPages is ceil(total / pageSize).
func TotalPages(total int64, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 0
	}
	return int((total-1)/int64(pageSize) + 1)
}

func summarize(items []models.Item) []Summary {
	out := make([]Summary, 0, len(items))
	for _, it := range items {
		out = append(out, Summary{
			ID:        it.ID,
			PhotoURLs: it.PhotoURLs,
			Name:      it.Name,
			Price:     it.Price,
		})
	}
	return out
}

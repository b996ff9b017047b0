package catalog

import (
	"math"
	"testing"
)

func TestParseSearchQueryDefaults(t *testing.T) {
	q := ParseSearchQuery("  vase ", "", "abc", "")
	if q.Term != "vase" || q.Page != DefaultPage || q.PageSize != DefaultPageSize || q.Sort != SortAscending {
		t.Fatalf("unexpected query %+v", q)
	}
	q = ParseSearchQuery("", "0", "-5", "sideways")
	if q.Page != DefaultPage || q.PageSize != DefaultPageSize || q.Sort != SortAscending {
		t.Fatalf("unexpected query %+v", q)
	}
}

func TestParseSortDirection(t *testing.T) {
	for _, s := range []string{"desc", "DESC", "descending", "-1"} {
		if ParseSortDirection(s) != SortDescending {
			t.Fatalf("%q should sort descending", s)
		}
	}
	for _, s := range []string{"asc", "ascending", "1", ""} {
		if ParseSortDirection(s) != SortAscending {
			t.Fatalf("%q should sort ascending", s)
		}
	}
}

func TestWindow(t *testing.T) {
	w, ok := SearchQuery{Page: 3, PageSize: 4, Sort: SortDescending}.window()
	if !ok || w.Skip != 8 || w.Limit != 4 || w.Sort != SortDescending {
		t.Fatalf("unexpected window %+v", w)
	}
}

func TestWindowOverflow(t *testing.T) {
	q := ParseSearchQuery("", "4611686018427387905", "2", "")
	if _, ok := q.window(); ok {
		t.Fatalf("a page beyond any offset must not produce a window")
	}
	if w, ok := ParseSearchQuery("", "2", "9223372036854775807", "").window(); !ok || w.Skip != math.MaxInt {
		t.Fatalf("page 2 of a maximal page size starts at MaxInt: %+v %v", w, ok)
	}
	if _, ok := ParseSearchQuery("", "3", "9223372036854775807", "").window(); ok {
		t.Fatalf("page 3 of a maximal page size must not produce a window")
	}
	if w, ok := ParseSearchQuery("", "1", "9223372036854775807", "").window(); !ok || w.Skip != 0 {
		t.Fatalf("first page of a maximal page size starts at zero: %+v %v", w, ok)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{5, 2, 3},
		{5, 0, 0},
		{5, math.MaxInt, 1},
		{math.MaxInt64, 1, math.MaxInt},
	}
	for _, c := range cases {
		if got := TotalPages(c.total, c.size); got != c.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", c.total, c.size, got, c.want)
		}
	}
}

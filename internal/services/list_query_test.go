package services

import (
	"testing"

	"task-tracker/internal/models"
)

func TestNormalizeListQueryDefaults(t *testing.T) {
	q := NormalizeListQuery("", "", "", "", "", "", "")

	want := models.ListQuery{SortBy: "date", Order: -1, Page: 1, Limit: 10}
	if q != want {
		t.Errorf("expected defaults %+v, got %+v", want, q)
	}
}

func TestNormalizeListQueryCoercion(t *testing.T) {
	cases := []struct {
		name        string
		page, limit string
		wantPage    int
		wantLimit   int
	}{
		{"numeric", "3", "25", 3, 25},
		{"non-numeric collapses to defaults", "abc", "xyz", 1, 10},
		{"zero collapses to defaults", "0", "0", 1, 10},
		{"negative collapses to defaults", "-2", "-5", 1, 10},
		{"no upper bound on limit", "1", "100000", 1, 100000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := NormalizeListQuery("", "", "", "", "", tc.page, tc.limit)
			if q.Page != tc.wantPage {
				t.Errorf("page: expected %d, got %d", tc.wantPage, q.Page)
			}
			if q.Limit != tc.wantLimit {
				t.Errorf("limit: expected %d, got %d", tc.wantLimit, q.Limit)
			}
		})
	}
}

func TestNormalizeListQueryOrder(t *testing.T) {
	cases := []struct {
		order string
		want  int
	}{
		{"desc", -1},
		{"-1", -1},
		{"asc", 1},
		{"", 1},
		{"sideways", 1}, // anything unrecognized defaults to ascending
	}

	for _, tc := range cases {
		q := NormalizeListQuery("", "", "", "company", tc.order, "", "")
		if q.Order != tc.want {
			t.Errorf("order %q: expected %d, got %d", tc.order, tc.want, q.Order)
		}
	}
}

func TestNormalizeListQuerySortWhitelist(t *testing.T) {
	q := NormalizeListQuery("", "", "", "company", "asc", "", "")
	if q.SortBy != "company" || q.Order != 1 {
		t.Errorf("expected company asc, got %s %d", q.SortBy, q.Order)
	}

	// Unknown sort fields fall back to the default instead of reaching the store
	q = NormalizeListQuery("", "", "", "__proto__", "asc", "", "")
	if q.SortBy != "date" || q.Order != -1 {
		t.Errorf("expected fallback to date desc, got %s %d", q.SortBy, q.Order)
	}
}

func TestListQuerySkip(t *testing.T) {
	q := models.ListQuery{Page: 3, Limit: 10}
	if q.Skip() != 20 {
		t.Errorf("expected skip=20, got %d", q.Skip())
	}
}

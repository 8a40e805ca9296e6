package services

import (
	"strconv"

	"task-tracker/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// sortableFields is the whitelist of attributes a caller may sort by. Unknown
// values fall back to the default sort instead of being passed to the store.
var sortableFields = map[string]bool{
	"date":        true,
	"company":     true,
	"description": true,
	"category":    true,
	"createdAt":   true,
}

// NormalizeListQuery coerces raw query-string values into a ListQuery.
// Non-numeric or missing page/limit collapse to the defaults, never an error.
// Order is descending for "desc" or "-1", ascending for anything else; the
// default sort when sortBy is omitted is date descending.
func NormalizeListQuery(search, category, company, sortBy, order, page, limit string) models.ListQuery {
	q := models.ListQuery{
		Search:   search,
		Category: category,
		Company:  company,
		Page:     parsePositiveInt(page, DefaultPage),
		Limit:    parsePositiveInt(limit, DefaultLimit),
	}

	if sortableFields[sortBy] {
		q.SortBy = sortBy
		q.Order = 1
		if order == "desc" || order == "-1" {
			q.Order = -1
		}
	} else {
		q.SortBy = "date"
		q.Order = -1
	}

	return q
}

func parsePositiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

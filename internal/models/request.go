package models

import "time"

// CreateTaskRequest represents the request to create a task
type CreateTaskRequest struct {
	Date        *time.Time `json:"date,omitempty"` // Optional, defaults to now
	Company     string     `json:"company"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
}

// UpdateTaskRequest represents a partial update. Nil fields are left untouched.
type UpdateTaskRequest struct {
	Date        *time.Time `json:"date,omitempty"`
	Company     *string    `json:"company,omitempty"`
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
}

// TaskUpdate holds the fields a partial update actually modifies, after
// normalization. The store adapter turns it into a $set document.
type TaskUpdate struct {
	Date        *time.Time
	Company     *string
	Description *string
	Category    *string
}

// IsEmpty reports whether the update modifies nothing
func (u TaskUpdate) IsEmpty() bool {
	return u.Date == nil && u.Company == nil && u.Description == nil && u.Category == nil
}

// ListQuery holds normalized listing parameters
type ListQuery struct {
	Search   string
	Category string
	Company  string
	SortBy   string
	Order    int // 1 ascending, -1 descending
	Page     int
	Limit    int
}

// Skip returns the number of documents to skip for the requested page
func (q ListQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}

// TaskListResponse is the page envelope returned by the list endpoint
type TaskListResponse struct {
	Tasks       []Task `json:"tasks"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
	TotalItems  int64  `json:"totalItems"`
}

// DeleteResponse confirms a successful delete
type DeleteResponse struct {
	Msg string `json:"msg"`
}

// ErrorResponse is the error body shape shared by all handlers
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

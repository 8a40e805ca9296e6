package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"task-tracker/internal/models"
	"task-tracker/internal/taskerr"
)

// DefaultServerURL is used when no server is configured
const DefaultServerURL = "http://localhost:5000"

// Client talks to the task API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultServerURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListParams holds the listing parameters sent as query strings. Zero values
// are omitted, letting the server apply its defaults.
type ListParams struct {
	Search   string
	Category string
	Company  string
	SortBy   string
	Order    string
	Page     int
	Limit    int
}

func (p ListParams) encode() string {
	v := url.Values{}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Category != "" {
		v.Set("category", p.Category)
	}
	if p.Company != "" {
		v.Set("company", p.Company)
	}
	if p.SortBy != "" {
		v.Set("sortBy", p.SortBy)
	}
	if p.Order != "" {
		v.Set("order", p.Order)
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	return v.Encode()
}

// ListTasks fetches one page of tasks
func (c *Client) ListTasks(ctx context.Context, p ListParams) (*models.TaskListResponse, error) {
	u := c.baseURL + "/api/tasks"
	if qs := p.encode(); qs != "" {
		u += "?" + qs
	}

	var resp models.TaskListResponse
	if err := c.do(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTask fetches a single task by identifier
func (c *Client) GetTask(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/api/tasks/"+url.PathEscape(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a new task
func (c *Client) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update
func (c *Client) UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPut, c.baseURL+"/api/tasks/"+url.PathEscape(id), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask deletes a task by identifier
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/api/tasks/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, u string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeError turns an error response into a taskerr category matching the
// server's taxonomy. Bodies that aren't the expected shape degrade to the raw
// text so nothing is silently swallowed.
func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	var body models.ErrorResponse
	message := ""
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		message = body.Error
	} else {
		message = string(bytes.TrimSpace(data))
	}
	if message == "" {
		message = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return taskerr.NotFound(message)
	case http.StatusBadRequest:
		return taskerr.Invalid(message, body.Fields)
	default:
		return taskerr.Internal(message, nil)
	}
}

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"task-tracker/internal/api"
	"task-tracker/internal/models"
	"task-tracker/internal/services"
	"task-tracker/internal/taskerr"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore backs the handlers with in-memory state. failing flips every call
// into a store-level error to exercise the 500 path.
type fakeStore struct {
	tasks   map[string]models.Task
	order   []string
	failing bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{tasks: make(map[string]models.Task)}
}

func (f *fakeStore) InsertTask(_ context.Context, task models.Task) (models.Task, error) {
	if f.failing {
		return models.Task{}, taskerr.Internal("store down", errors.New("connection refused"))
	}
	task.ID = primitive.NewObjectID()
	f.tasks[task.ID.Hex()] = task
	f.order = append(f.order, task.ID.Hex())
	return task, nil
}

func (f *fakeStore) FindTaskByID(_ context.Context, id string) (*models.Task, error) {
	if f.failing {
		return nil, taskerr.Internal("store down", errors.New("connection refused"))
	}
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, taskerr.BadID("Invalid Task ID format")
	}
	task, ok := f.tasks[id]
	if !ok {
		return nil, taskerr.NotFound("Task not found")
	}
	return &task, nil
}

func (f *fakeStore) UpdateTaskByID(_ context.Context, id string, update models.TaskUpdate) (*models.Task, error) {
	task, err := f.FindTaskByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	if update.Date != nil {
		task.Date = *update.Date
	}
	if update.Company != nil {
		task.Company = *update.Company
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Category != nil {
		task.Category = *update.Category
	}
	f.tasks[id] = *task
	return task, nil
}

func (f *fakeStore) DeleteTaskByID(_ context.Context, id string) error {
	if _, err := f.FindTaskByID(context.Background(), id); err != nil {
		return err
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeStore) FindTasks(_ context.Context, q models.ListQuery) ([]models.Task, int64, error) {
	if f.failing {
		return nil, 0, taskerr.Internal("store down", errors.New("connection refused"))
	}
	matched := []models.Task{}
	for _, id := range f.order {
		if task, ok := f.tasks[id]; ok {
			matched = append(matched, task)
		}
	}
	total := int64(len(matched))
	start := q.Skip()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func newTestRouter(store *fakeStore) *gin.Engine {
	handlers := api.NewHandlers(services.NewTaskService(store), zap.NewNop())
	return api.SetupRoutes(handlers, zap.NewNop())
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateTaskReturns201(t *testing.T) {
	router := newTestRouter(newFakeStore())

	before := time.Now()
	w := doJSON(t, router, http.MethodPost, "/api/tasks", map[string]string{
		"company":     "Acme",
		"description": "Kickoff call",
		"category":    "Meeting",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var task models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if task.ID.IsZero() {
		t.Error("expected generated identifier in response")
	}
	if task.Company != "Acme" || task.Description != "Kickoff call" || task.Category != "Meeting" {
		t.Errorf("stored fields differ from input: %+v", task)
	}
	if task.Date.Before(before.Add(-time.Minute)) || task.Date.After(time.Now().Add(time.Minute)) {
		t.Errorf("expected date defaulted to now, got %v", task.Date)
	}
	if task.CreatedAt.IsZero() {
		t.Error("expected createdAt to be set")
	}
}

func TestCreateTaskMissingFieldReturns400(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store)

	for _, missing := range []string{"company", "description", "category"} {
		body := map[string]string{
			"company":     "Acme",
			"description": "Kickoff call",
			"category":    "Meeting",
		}
		delete(body, missing)

		w := doJSON(t, router, http.MethodPost, "/api/tasks", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("missing %s: expected 400, got %d", missing, w.Code)
		}

		var resp models.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode error body: %v", err)
		}
		if _, ok := resp.Fields[missing]; !ok {
			t.Errorf("missing %s: expected per-field message, got %+v", missing, resp.Fields)
		}
	}

	if len(store.tasks) != 0 {
		t.Errorf("expected nothing persisted after validation failures, got %d", len(store.tasks))
	}
}

func TestCreateTaskInvalidCategoryReturns400(t *testing.T) {
	router := newTestRouter(newFakeStore())

	w := doJSON(t, router, http.MethodPost, "/api/tasks", map[string]string{
		"company":     "Acme",
		"description": "Kickoff call",
		"category":    "Gardening",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if _, ok := resp.Fields["category"]; !ok {
		t.Errorf("expected per-field category message, got %+v", resp.Fields)
	}
}

func TestGetTaskStatusCodes(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store)

	created := doJSON(t, router, http.MethodPost, "/api/tasks", map[string]string{
		"company": "Acme", "description": "Kickoff call", "category": "Meeting",
	})
	var task models.Task
	if err := json.Unmarshal(created.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to decode created task: %v", err)
	}

	w := doJSON(t, router, http.MethodGet, "/api/tasks/"+task.ID.Hex(), nil)
	if w.Code != http.StatusOK {
		t.Errorf("existing id: expected 200, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/tasks/"+primitive.NewObjectID().Hex(), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown well-formed id: expected 404, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/tasks/not-an-objectid", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed id: expected 400, got %d", w.Code)
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	router := newTestRouter(newFakeStore())

	created := doJSON(t, router, http.MethodPost, "/api/tasks", map[string]string{
		"company": "Acme", "description": "Kickoff call", "category": "Meeting",
	})
	var task models.Task
	if err := json.Unmarshal(created.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to decode created task: %v", err)
	}

	w := doJSON(t, router, http.MethodPut, "/api/tasks/"+task.ID.Hex(), map[string]string{
		"description": "Kickoff call (rescheduled)",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to decode updated task: %v", err)
	}
	if updated.Description != "Kickoff call (rescheduled)" {
		t.Errorf("expected new description, got %q", updated.Description)
	}
	if updated.Company != "Acme" || updated.Category != "Meeting" {
		t.Errorf("expected untouched fields preserved, got %+v", updated)
	}
}

func TestUpdateTaskInvalidCategoryReturns400(t *testing.T) {
	router := newTestRouter(newFakeStore())

	created := doJSON(t, router, http.MethodPost, "/api/tasks", map[string]string{
		"company": "Acme", "description": "Kickoff call", "category": "Meeting",
	})
	var task models.Task
	if err := json.Unmarshal(created.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to decode created task: %v", err)
	}

	w := doJSON(t, router, http.MethodPut, "/api/tasks/"+task.ID.Hex(), map[string]string{
		"category": "Gardening",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid category, got %d", w.Code)
	}
}

func TestDeleteTaskFlow(t *testing.T) {
	router := newTestRouter(newFakeStore())

	created := doJSON(t, router, http.MethodPost, "/api/tasks", map[string]string{
		"company": "Acme", "description": "Kickoff call", "category": "Meeting",
	})
	var task models.Task
	if err := json.Unmarshal(created.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to decode created task: %v", err)
	}

	w := doJSON(t, router, http.MethodDelete, "/api/tasks/"+task.ID.Hex(), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp models.DeleteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode delete confirmation: %v", err)
	}
	if resp.Msg == "" {
		t.Error("expected a confirmation message")
	}

	// Deleted task is gone
	w = doJSON(t, router, http.MethodGet, "/api/tasks/"+task.ID.Hex(), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}

	// Deleting again is a 404, malformed id is a 400
	w = doJSON(t, router, http.MethodDelete, "/api/tasks/"+task.ID.Hex(), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting twice, got %d", w.Code)
	}
	w = doJSON(t, router, http.MethodDelete, "/api/tasks/oops", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed id, got %d", w.Code)
	}
}

func TestListTasksEnvelope(t *testing.T) {
	router := newTestRouter(newFakeStore())

	for i := 0; i < 25; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/tasks", map[string]string{
			"company": "Acme", "description": fmt.Sprintf("Task %d", i), "category": "Coding",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("setup create failed: %d", w.Code)
		}
	}

	w := doJSON(t, router, http.MethodGet, "/api/tasks?limit=10&page=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp models.TaskListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if len(resp.Tasks) != 10 {
		t.Errorf("expected 10 tasks, got %d", len(resp.Tasks))
	}
	if resp.TotalItems != 25 || resp.TotalPages != 3 || resp.CurrentPage != 2 {
		t.Errorf("unexpected envelope: %+v", resp)
	}
}

func TestListTasksStoreFailureReturns500(t *testing.T) {
	store := newFakeStore()
	store.failing = true
	router := newTestRouter(store)

	w := doJSON(t, router, http.MethodGet, "/api/tasks", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	// No store detail leaks into the response
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if resp.Error != "Server Error" {
		t.Errorf("expected generic error message, got %q", resp.Error)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(newFakeStore())

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(newFakeStore())

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header on response")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("expected inbound request id echoed, got %q", got)
	}
}

package services

import (
	"context"
	"strings"
	"time"

	"task-tracker/internal/models"
	"task-tracker/internal/taskerr"
)

// TaskStore is the persistence contract the service runs against
type TaskStore interface {
	InsertTask(ctx context.Context, task models.Task) (models.Task, error)
	FindTaskByID(ctx context.Context, id string) (*models.Task, error)
	UpdateTaskByID(ctx context.Context, id string, update models.TaskUpdate) (*models.Task, error)
	DeleteTaskByID(ctx context.Context, id string) error
	FindTasks(ctx context.Context, q models.ListQuery) ([]models.Task, int64, error)
}

// TaskService implements task CRUD and the listing contract over a TaskStore
type TaskService struct {
	store TaskStore
}

// NewTaskService creates a new task service
func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

// CreateTask validates and persists a new task. The date defaults to the
// creation time only when omitted.
func (s *TaskService) CreateTask(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error) {
	company := strings.TrimSpace(req.Company)
	description := strings.TrimSpace(req.Description)
	category := strings.TrimSpace(req.Category)

	fields := make(map[string]string)
	if company == "" {
		fields["company"] = "Company name is required"
	}
	if description == "" {
		fields["description"] = "Task description is required"
	}
	if category == "" {
		fields["category"] = "Category is required"
	} else if !models.IsValidCategory(category) {
		fields["category"] = "Category must be one of: " + strings.Join(models.Categories, ", ")
	}
	if len(fields) > 0 {
		return nil, taskerr.Invalid("Please include company, description, and category", fields)
	}

	now := time.Now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	task, err := s.store.InsertTask(ctx, models.Task{
		Date:        date,
		Company:     company,
		Description: description,
		Category:    category,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTask retrieves a task by its identifier
func (s *TaskService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	return s.store.FindTaskByID(ctx, id)
}

// UpdateTask applies a partial update. Only fields present in the request are
// modified; identifier and createdAt are never touched. A provided field is
// re-validated exactly as at create.
func (s *TaskService) UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (*models.Task, error) {
	update := models.TaskUpdate{Date: req.Date}
	fields := make(map[string]string)

	if req.Company != nil {
		company := strings.TrimSpace(*req.Company)
		if company == "" {
			fields["company"] = "Company name is required"
		}
		update.Company = &company
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			fields["description"] = "Task description is required"
		}
		update.Description = &description
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if !models.IsValidCategory(category) {
			fields["category"] = "Category must be one of: " + strings.Join(models.Categories, ", ")
		}
		update.Category = &category
	}
	if len(fields) > 0 {
		return nil, taskerr.Invalid("Validation Error", fields)
	}

	// Nothing to change, hand back the current document
	if update.IsEmpty() {
		return s.store.FindTaskByID(ctx, id)
	}

	return s.store.UpdateTaskByID(ctx, id, update)
}

// DeleteTask removes a task unconditionally. There is no soft-delete.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.store.DeleteTaskByID(ctx, id)
}

// ListTasks runs the listing query and composes the page envelope
func (s *TaskService) ListTasks(ctx context.Context, q models.ListQuery) (*models.TaskListResponse, error) {
	tasks, total, err := s.store.FindTasks(ctx, q)
	if err != nil {
		return nil, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(q.Limit) - 1) / int64(q.Limit))
	}

	return &models.TaskListResponse{
		Tasks:       tasks,
		CurrentPage: q.Page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}, nil
}

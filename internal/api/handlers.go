package api

import (
	"encoding/json"
	"net/http"

	"task-tracker/internal/models"
	"task-tracker/internal/services"
	"task-tracker/internal/taskerr"
	"task-tracker/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	taskService *services.TaskService
	log         *zap.Logger
}

// NewHandlers creates a new handlers instance
func NewHandlers(taskService *services.TaskService, log *zap.Logger) *Handlers {
	return &Handlers{
		taskService: taskService,
		log:         log,
	}
}

// CreateTaskHandler handles POST /api/tasks
func (h *Handlers) CreateTaskHandler(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		h.respondError(c, taskerr.Invalid("failed to read request body", nil))
		return
	}

	// Schema validation runs before anything touches the store
	if err := validation.ValidateCreateTask(payload); err != nil {
		h.respondError(c, err)
		return
	}

	var req models.CreateTaskRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		h.respondError(c, taskerr.Invalid("invalid JSON payload", nil))
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// ListTasksHandler handles GET /api/tasks with search/filter/sort/page/limit
// query parameters
func (h *Handlers) ListTasksHandler(c *gin.Context) {
	q := services.NormalizeListQuery(
		c.Query("search"),
		c.Query("category"),
		c.Query("company"),
		c.Query("sortBy"),
		c.Query("order"),
		c.Query("page"),
		c.Query("limit"),
	)

	resp, err := h.taskService.ListTasks(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTaskHandler handles GET /api/tasks/:id
func (h *Handlers) GetTaskHandler(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTaskHandler handles PUT /api/tasks/:id (partial update)
func (h *Handlers) UpdateTaskHandler(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		h.respondError(c, taskerr.Invalid("failed to read request body", nil))
		return
	}

	if err := validation.ValidateUpdateTask(payload); err != nil {
		h.respondError(c, err)
		return
	}

	var req models.UpdateTaskRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		h.respondError(c, taskerr.Invalid("invalid JSON payload", nil))
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTaskHandler handles DELETE /api/tasks/:id
func (h *Handlers) DeleteTaskHandler(c *gin.Context) {
	if err := h.taskService.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DeleteResponse{Msg: "Task removed successfully"})
}

// respondError maps a domain error to its HTTP status. Store failures are
// logged with the request ID and surface as a generic 500 with no detail.
func (h *Handlers) respondError(c *gin.Context, err error) {
	switch taskerr.CodeOf(err) {
	case taskerr.CodeInvalid, taskerr.CodeBadID:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:  err.Error(),
			Fields: taskerr.FieldsOf(err),
		})
	case taskerr.CodeNotFound:
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	default:
		h.log.Error("request failed",
			zap.String("request_id", RequestIDFrom(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Server Error"})
	}
}

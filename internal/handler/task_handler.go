package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskhub/internal/model"
	"taskhub/internal/repository"
	"taskhub/internal/service"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	svc service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(svc service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string      `json:"title" validate:"required,max=255"`
	Description string      `json:"description"`
	DueDate     *model.Date `json:"dueDate"`
	Priority    string      `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      string      `json:"status" validate:"omitempty,oneof=todo in-progress completed"`
}

// UpdateTaskRequest represents a partial task update. Absent fields stay
// unchanged; an explicit null dueDate clears the due date.
type UpdateTaskRequest struct {
	Title       *string      `json:"title" validate:"omitempty,max=255"`
	Description *string      `json:"description"`
	DueDate     OptionalDate `json:"dueDate"`
	Priority    *string      `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      *string      `json:"status" validate:"omitempty,oneof=todo in-progress completed"`
}

// OptionalDate distinguishes an absent JSON field from an explicit null:
// a plain pointer decodes both to nil, which would make a due date
// impossible to clear.
type OptionalDate struct {
	Set   bool
	Value *model.Date
}

// UnmarshalJSON records that the field was present; null leaves Value nil.
func (o *OptionalDate) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var d model.Date
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	o.Value = &d
	return nil
}

// List godoc
// @Summary List the current user's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param status query string false "Exact status filter"
// @Param due_date__gte query string false "Inclusive due date lower bound (YYYY-MM-DD)"
// @Param due_date__lte query string false "Inclusive due date upper bound (YYYY-MM-DD)"
// @Success 200 {array} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	filter := repository.TaskFilter{}
	if status := c.QueryParam("status"); status != "" {
		filter.Status = model.TaskStatus(status)
	}
	// Two spellings are accepted for compatibility with older clients;
	// the first present value wins. Unparsable dates leave the bound off.
	if raw := firstQueryParam(c, "due_date__gte", "dueDate__gte"); raw != "" {
		if parsed, err := model.ParseDate(raw); err == nil {
			filter.DueFrom = &parsed
		}
	}
	if raw := firstQueryParam(c, "due_date__lte", "dueDate__lte"); raw != "" {
		if parsed, err := model.ParseDate(raw); err == nil {
			filter.DueTo = &parsed
		}
	}

	tasks, err := h.svc.List(c.Request().Context(), userID, filter)
	if err != nil {
		return handleDBError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

func firstQueryParam(c echo.Context, keys ...string) string {
	for _, key := range keys {
		if value := c.QueryParam(key); value != "" {
			return value
		}
	}
	return ""
}

// Get godoc
// @Summary Get one of the current user's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} model.Task
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	task, err := h.svc.Get(c.Request().Context(), userID, uint(taskID))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// Create godoc
// @Summary Create a task owned by the current user
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task fields"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.svc.Create(c.Request().Context(), userID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, task)
}

// Update godoc
// @Summary Update one of the current user's tasks
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body UpdateTaskRequest true "Partial task fields"
// @Success 200 {object} model.Task
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.svc.Update(c.Request().Context(), userID, uint(taskID), service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate.Value,
		ClearDue:    req.DueDate.Set && req.DueDate.Value == nil,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// Delete godoc
// @Summary Delete one of the current user's tasks
// @Tags tasks
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.svc.Delete(c.Request().Context(), userID, uint(taskID)); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// CreateTaskInput carries the fields accepted when creating a task. The
// owner is always taken from the session, never from the payload.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *model.Date
	Priority    string
	Status      string
}

// UpdateTaskInput carries a partial update; nil fields stay unchanged.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *model.Date
	ClearDue    bool
	Priority    *string
	Status      *string
}

// TaskService exposes ownership-scoped task operations.
type TaskService interface {
	List(ctx context.Context, userID uint, filter repository.TaskFilter) ([]model.Task, error)
	Get(ctx context.Context, userID, taskID uint) (*model.Task, error)
	Create(ctx context.Context, userID uint, input CreateTaskInput) (*model.Task, error)
	Update(ctx context.Context, userID, taskID uint, input UpdateTaskInput) (*model.Task, error)
	Delete(ctx context.Context, userID, taskID uint) error
}

type taskService struct {
	tasks repository.TaskRepository
}

// NewTaskService creates a new task service.
func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) List(ctx context.Context, userID uint, filter repository.TaskFilter) ([]model.Task, error) {
	return s.tasks.ListByUser(ctx, userID, filter)
}

// Get returns a task within the caller's scope. A task owned by someone
// else reads as not found: reads never reveal other users' rows.
func (s *taskService) Get(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	if task.UserID != userID {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, nil
}

func (s *taskService) Create(ctx context.Context, userID uint, input CreateTaskInput) (*model.Task, error) {
	task := &model.Task{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Priority:    model.TaskPriorityMedium,
		Status:      model.TaskStatusTodo,
	}
	if input.Priority != "" {
		priority, ok := model.ParsePriority(input.Priority)
		if !ok {
			return nil, fmt.Errorf("%w: priority %q", apperrors.ErrInvalidChoice, input.Priority)
		}
		task.Priority = priority
	}
	if input.Status != "" {
		status, ok := model.ParseStatus(input.Status)
		if !ok {
			return nil, fmt.Errorf("%w: status %q", apperrors.ErrInvalidChoice, input.Status)
		}
		task.Status = status
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// Update applies a partial update after re-checking ownership. A mismatch
// is a permission failure, not a not-found: the row exists, access is
// denied.
func (s *taskService) Update(ctx context.Context, userID, taskID uint, input UpdateTaskInput) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	if task.UserID != userID {
		return nil, apperrors.ErrPermissionDenied
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	} else if input.ClearDue {
		task.DueDate = nil
	}
	if input.Priority != nil {
		priority, ok := model.ParsePriority(*input.Priority)
		if !ok {
			return nil, fmt.Errorf("%w: priority %q", apperrors.ErrInvalidChoice, *input.Priority)
		}
		task.Priority = priority
	}
	if input.Status != nil {
		status, ok := model.ParseStatus(*input.Status)
		if !ok {
			return nil, fmt.Errorf("%w: status %q", apperrors.ErrInvalidChoice, *input.Status)
		}
		task.Status = status
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}
	return task, nil
}

// Delete removes a task after re-checking ownership.
func (s *taskService) Delete(ctx context.Context, userID, taskID uint) error {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return err
	}
	if task.UserID != userID {
		return apperrors.ErrPermissionDenied
	}
	return s.tasks.Delete(ctx, task)
}

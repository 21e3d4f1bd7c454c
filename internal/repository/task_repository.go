package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"taskhub/internal/model"
)

// TaskFilter narrows a task listing. Zero values leave that criterion off.
type TaskFilter struct {
	Status  model.TaskStatus
	DueFrom *model.Date // inclusive lower bound
	DueTo   *model.Date // inclusive upper bound
}

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Save(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	ListByUser(ctx context.Context, userID uint, filter TaskFilter) ([]model.Task, error)
	Count(ctx context.Context) (int64, error)
	// Upsert writes an imported task. When task.ID is set and a row with
	// that primary key exists, only the columns named in cols are updated;
	// otherwise a new row is inserted (preserving a supplied legacy ID).
	Upsert(ctx context.Context, task *model.Task, cols []string) (created bool, err error)
	// OverrideTimestamps writes created_at/updated_at directly, bypassing
	// GORM's auto-time handling so imported historical values survive.
	OverrideTimestamps(ctx context.Context, id uint, createdAt, updatedAt *time.Time) error
	WithTx(tx *gorm.DB) TaskRepository
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) WithTx(tx *gorm.DB) TaskRepository {
	return &taskRepository{db: tx}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) Save(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Delete(task).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByUser(ctx context.Context, userID uint, filter TaskFilter) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DueFrom != nil {
		query = query.Where("due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("due_date <= ?", *filter.DueTo)
	}

	var tasks []model.Task
	if err := query.Order("updated_at DESC, created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).Count(&count).Error
	return count, err
}

func (r *taskRepository) Upsert(ctx context.Context, task *model.Task, cols []string) (bool, error) {
	db := r.db.WithContext(ctx)
	if task.ID != 0 {
		var existing model.Task
		err := db.First(&existing, task.ID).Error
		if err == nil {
			return false, db.Model(&model.Task{}).
				Where("id = ?", task.ID).
				Select(cols).
				Updates(task).Error
		}
		if err != gorm.ErrRecordNotFound {
			return false, err
		}
	}
	return true, db.Create(task).Error
}

func (r *taskRepository) OverrideTimestamps(ctx context.Context, id uint, createdAt, updatedAt *time.Time) error {
	values := map[string]interface{}{}
	if createdAt != nil {
		values["created_at"] = *createdAt
	}
	if updatedAt != nil {
		values["updated_at"] = *updatedAt
	}
	if len(values) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		UpdateColumns(values).Error
}

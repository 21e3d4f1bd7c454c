package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"taskhub/internal/model"
)

// HistoryRepository defines AI history persistence operations.
type HistoryRepository interface {
	Create(ctx context.Context, entry *model.AIHistory) error
	Delete(ctx context.Context, entry *model.AIHistory) error
	FindByID(ctx context.Context, id uint) (*model.AIHistory, error)
	ListByUser(ctx context.Context, userID uint) ([]model.AIHistory, error)
	Count(ctx context.Context) (int64, error)
	Upsert(ctx context.Context, entry *model.AIHistory, cols []string) (created bool, err error)
	// OverrideCreatedAt writes created_at directly, past GORM's auto-time
	// handling, so imported historical timestamps survive.
	OverrideCreatedAt(ctx context.Context, id uint, createdAt time.Time) error
	WithTx(tx *gorm.DB) HistoryRepository
}

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository builds a GORM-backed repository.
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) WithTx(tx *gorm.DB) HistoryRepository {
	return &historyRepository{db: tx}
}

func (r *historyRepository) Create(ctx context.Context, entry *model.AIHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *historyRepository) Delete(ctx context.Context, entry *model.AIHistory) error {
	return r.db.WithContext(ctx).Delete(entry).Error
}

func (r *historyRepository) FindByID(ctx context.Context, id uint) (*model.AIHistory, error) {
	var entry model.AIHistory
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *historyRepository) ListByUser(ctx context.Context, userID uint) ([]model.AIHistory, error) {
	var entries []model.AIHistory
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *historyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AIHistory{}).Count(&count).Error
	return count, err
}

func (r *historyRepository) Upsert(ctx context.Context, entry *model.AIHistory, cols []string) (bool, error) {
	db := r.db.WithContext(ctx)
	if entry.ID != 0 {
		var existing model.AIHistory
		err := db.First(&existing, entry.ID).Error
		if err == nil {
			return false, db.Model(&model.AIHistory{}).
				Where("id = ?", entry.ID).
				Select(cols).
				Updates(entry).Error
		}
		if err != gorm.ErrRecordNotFound {
			return false, err
		}
	}
	return true, db.Create(entry).Error
}

func (r *historyRepository) OverrideCreatedAt(ctx context.Context, id uint, createdAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.AIHistory{}).
		Where("id = ?", id).
		UpdateColumn("created_at", createdAt).Error
}

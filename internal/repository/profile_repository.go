package repository

import (
	"context"

	"gorm.io/gorm"

	"taskhub/internal/model"
)

// ProfileRepository defines profile persistence operations.
type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	Save(ctx context.Context, profile *model.Profile) error
	// SaveFields persists only the named columns of the profile.
	SaveFields(ctx context.Context, profile *model.Profile, cols []string) error
	FindByUser(ctx context.Context, userID uint) (*model.Profile, error)
	Count(ctx context.Context) (int64, error)
	// ReassignID moves a profile to a legacy primary key with a direct
	// column update; GORM will not change a primary key through Save.
	ReassignID(ctx context.Context, currentID, newID uint) (*model.Profile, error)
	WithTx(tx *gorm.DB) ProfileRepository
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository builds a GORM-backed repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) WithTx(tx *gorm.DB) ProfileRepository {
	return &profileRepository{db: tx}
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) Save(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) SaveFields(ctx context.Context, profile *model.Profile, cols []string) error {
	if len(cols) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("id = ?", profile.ID).
		Select(cols).
		Updates(profile).Error
}

func (r *profileRepository) FindByUser(ctx context.Context, userID uint) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Profile{}).Count(&count).Error
	return count, err
}

func (r *profileRepository) ReassignID(ctx context.Context, currentID, newID uint) (*model.Profile, error) {
	if err := r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("id = ?", currentID).
		UpdateColumn("id", newID).Error; err != nil {
		return nil, err
	}
	var profile model.Profile
	if err := r.db.WithContext(ctx).First(&profile, newID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

package repository

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
)

// columnNamePattern restricts dynamic lookup columns to plain identifiers.
var columnNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Save(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindOneByColumn looks a user up by an arbitrary column, as the CSV
	// importer's --user-field option requires. Email-like columns compare
	// case-insensitively. Exactly one match is required.
	FindOneByColumn(ctx context.Context, column string, value interface{}) (*model.User, error)
	WithTx(tx *gorm.DB) UserRepository
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Save(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindOneByColumn(ctx context.Context, column string, value interface{}) (*model.User, error) {
	if !columnNamePattern.MatchString(column) {
		return nil, fmt.Errorf("invalid lookup column %q", column)
	}

	query := r.db.WithContext(ctx).Model(&model.User{})
	if strings.HasSuffix(column, "email") {
		query = query.Where(fmt.Sprintf("LOWER(%s) = LOWER(?)", column), value)
	} else {
		query = query.Where(fmt.Sprintf("%s = ?", column), value)
	}

	var users []model.User
	if err := query.Limit(2).Find(&users).Error; err != nil {
		return nil, err
	}
	switch len(users) {
	case 0:
		return nil, gorm.ErrRecordNotFound
	case 1:
		return &users[0], nil
	default:
		return nil, apperrors.ErrMultipleUsers
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"taskhub/internal/assistant"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// MockHistoryRepository is a mock implementation of HistoryRepository.
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Create(ctx context.Context, entry *model.AIHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) Delete(ctx context.Context, entry *model.AIHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockHistoryRepository) FindByID(ctx context.Context, id uint) (*model.AIHistory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AIHistory), args.Error(1)
}

func (m *MockHistoryRepository) ListByUser(ctx context.Context, userID uint) ([]model.AIHistory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AIHistory), args.Error(1)
}

func (m *MockHistoryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHistoryRepository) Upsert(ctx context.Context, entry *model.AIHistory, cols []string) (bool, error) {
	args := m.Called(ctx, entry, cols)
	return args.Bool(0), args.Error(1)
}

func (m *MockHistoryRepository) OverrideCreatedAt(ctx context.Context, id uint, createdAt time.Time) error {
	args := m.Called(ctx, id, createdAt)
	return args.Error(0)
}

func (m *MockHistoryRepository) WithTx(tx *gorm.DB) repository.HistoryRepository {
	m.Called(tx)
	return m
}

func TestAssistantService_Ask(t *testing.T) {
	mockHistory := new(MockHistoryRepository)
	mockHistory.On("Create", mock.Anything, mock.AnythingOfType("*model.AIHistory")).Return(nil)

	service := NewAssistantService(mockHistory, false)
	entry, err := service.Ask(context.Background(), 7, "Plan my week", []assistant.TaskRef{
		{ID: 1, Title: "Buy groceries", Status: "todo"},
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(7), entry.UserID)
	assert.Equal(t, "Plan my week", entry.Title)
	assert.Equal(t, "Plan my week", entry.Query)
	assert.Equal(t, "Assistant (stub): Plan my week Relevant tasks: Buy groceries.", entry.Response)
	mockHistory.AssertExpectations(t)
}

func TestAssistantService_Ask_WithAPIKey(t *testing.T) {
	mockHistory := new(MockHistoryRepository)
	mockHistory.On("Create", mock.Anything, mock.AnythingOfType("*model.AIHistory")).Return(nil)

	service := NewAssistantService(mockHistory, true)
	entry, err := service.Ask(context.Background(), 7, "hello", nil)

	assert.NoError(t, err)
	assert.Equal(t, "Assistant (stub with OPENAI_API_KEY configured): hello", entry.Response)
}

func TestAssistantService_DeleteHistory(t *testing.T) {
	t.Run("owner deletes own entry", func(t *testing.T) {
		entry := &model.AIHistory{ID: 1, UserID: 7}
		mockHistory := new(MockHistoryRepository)
		mockHistory.On("FindByID", mock.Anything, uint(1)).Return(entry, nil)
		mockHistory.On("Delete", mock.Anything, entry).Return(nil)

		service := NewAssistantService(mockHistory, false)
		assert.NoError(t, service.DeleteHistory(context.Background(), 7, 1))
		mockHistory.AssertExpectations(t)
	})

	t.Run("someone else's entry is a permission failure", func(t *testing.T) {
		mockHistory := new(MockHistoryRepository)
		mockHistory.On("FindByID", mock.Anything, uint(1)).Return(&model.AIHistory{ID: 1, UserID: 99}, nil)

		service := NewAssistantService(mockHistory, false)
		err := service.DeleteHistory(context.Background(), 7, 1)

		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		mockHistory.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing entry reads as not found", func(t *testing.T) {
		mockHistory := new(MockHistoryRepository)
		mockHistory.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)

		service := NewAssistantService(mockHistory, false)
		assert.ErrorIs(t, service.DeleteHistory(context.Background(), 7, 1), apperrors.ErrHistoryNotFound)
	})
}

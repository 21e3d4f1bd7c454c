package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"taskhub/internal/assistant"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// AssistantService handles assistant interactions and the history they
// produce.
type AssistantService interface {
	Ask(ctx context.Context, userID uint, message string, tasks []assistant.TaskRef) (*model.AIHistory, error)
	ListHistory(ctx context.Context, userID uint) ([]model.AIHistory, error)
	DeleteHistory(ctx context.Context, userID, historyID uint) error
}

type assistantService struct {
	history   repository.HistoryRepository
	hasAPIKey bool
}

// NewAssistantService creates a new assistant service. hasAPIKey reflects
// whether a provider credential is configured; it only changes the stub
// preamble until the real integration lands.
func NewAssistantService(history repository.HistoryRepository, hasAPIKey bool) AssistantService {
	return &assistantService{history: history, hasAPIKey: hasAPIKey}
}

// Ask computes the stub reply and persists the exchange as history.
func (s *assistantService) Ask(ctx context.Context, userID uint, message string, tasks []assistant.TaskRef) (*model.AIHistory, error) {
	response := assistant.Reply(message, tasks, s.hasAPIKey)

	entry := &model.AIHistory{
		UserID:   userID,
		Title:    assistant.HistoryTitle(message),
		Query:    message,
		Response: response,
	}
	if err := s.history.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("persist history: %w", err)
	}
	return entry, nil
}

func (s *assistantService) ListHistory(ctx context.Context, userID uint) ([]model.AIHistory, error) {
	return s.history.ListByUser(ctx, userID)
}

// DeleteHistory removes an entry after re-checking ownership; a mismatch is
// a permission failure, not a not-found.
func (s *assistantService) DeleteHistory(ctx context.Context, userID, historyID uint) error {
	entry, err := s.history.FindByID(ctx, historyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrHistoryNotFound
		}
		return err
	}
	if entry.UserID != userID {
		return apperrors.ErrPermissionDenied
	}
	return s.history.Delete(ctx, entry)
}

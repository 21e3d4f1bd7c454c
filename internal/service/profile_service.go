package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// UpdateProfileInput carries a partial profile update; nil fields stay
// unchanged.
type UpdateProfileInput struct {
	Name      *string
	AvatarURL *string
}

// UpdateSettingsInput carries a partial settings update; nil fields stay
// unchanged.
type UpdateSettingsInput struct {
	Theme           *string
	Language        *string
	AIResponseStyle *string
}

// ProfileService exposes profile/settings operations. Both surfaces are
// views over the same Profile row.
type ProfileService interface {
	// GetOrCreate fetches the user's profile, initializing a default-valued
	// row first if none exists. An authenticated user never sees "profile
	// not found".
	GetOrCreate(ctx context.Context, userID uint) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*model.Profile, error)
	UpdateSettings(ctx context.Context, userID uint, input UpdateSettingsInput) (*model.Profile, error)
}

type profileService struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(profiles repository.ProfileRepository, users repository.UserRepository) ProfileService {
	return &profileService{profiles: profiles, users: users}
}

func (s *profileService) GetOrCreate(ctx context.Context, userID uint) (*model.Profile, error) {
	profile, err := s.profiles.FindByUser(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find profile: %w", err)
	}

	profile = model.DefaultProfile(userID)
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile applies the editable profile fields. A name change also
// re-derives the user's first/last name split.
func (s *profileService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*model.Profile, error) {
	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		profile.Name = strings.TrimSpace(*input.Name)
	}
	if input.AvatarURL != nil {
		profile.AvatarURL = *input.AvatarURL
	}
	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	if input.Name != nil {
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("find user: %w", err)
		}
		user.FirstName, user.LastName = SplitName(profile.Name)
		if err := s.users.Save(ctx, user); err != nil {
			return nil, fmt.Errorf("save user: %w", err)
		}
	}

	return profile, nil
}

// UpdateSettings applies the settings view fields, validating enumerated
// values against their choice sets.
func (s *profileService) UpdateSettings(ctx context.Context, userID uint, input UpdateSettingsInput) (*model.Profile, error) {
	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Theme != nil {
		theme, ok := model.ParseTheme(*input.Theme)
		if !ok {
			return nil, fmt.Errorf("%w: theme %q", apperrors.ErrInvalidChoice, *input.Theme)
		}
		profile.Theme = theme
	}
	if input.Language != nil {
		profile.Language = strings.TrimSpace(*input.Language)
	}
	if input.AIResponseStyle != nil {
		style, ok := model.ParseAIResponseStyle(*input.AIResponseStyle)
		if !ok {
			return nil, fmt.Errorf("%w: aiResponseStyle %q", apperrors.ErrInvalidChoice, *input.AIResponseStyle)
		}
		profile.AIResponseStyle = style
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return profile, nil
}

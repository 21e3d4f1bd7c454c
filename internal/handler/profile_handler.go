package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskhub/internal/model"
	"taskhub/internal/service"
)

// ProfileHandler handles profile and settings endpoints. Both are views
// over the same Profile row.
type ProfileHandler struct {
	svc service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// UpdateProfileRequest represents a partial profile update.
type UpdateProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=150"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,max=500"`
}

// UpdateSettingsRequest represents a partial settings update.
type UpdateSettingsRequest struct {
	Theme           *string `json:"theme" validate:"omitempty,oneof=light dark"`
	Language        *string `json:"language" validate:"omitempty,max=8"`
	AIResponseStyle *string `json:"aiResponseStyle" validate:"omitempty,oneof=concise detailed"`
}

// ProfileResponse is the profile view of the Profile row.
type ProfileResponse struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// SettingsResponse is the settings view of the Profile row.
type SettingsResponse struct {
	Theme           model.Theme           `json:"theme"`
	Language        string                `json:"language"`
	AIResponseStyle model.AIResponseStyle `json:"aiResponseStyle"`
}

func profileView(p *model.Profile) ProfileResponse {
	return ProfileResponse{Name: p.Name, AvatarURL: p.AvatarURL}
}

func settingsView(p *model.Profile) SettingsResponse {
	return SettingsResponse{Theme: p.Theme, Language: p.Language, AIResponseStyle: p.AIResponseStyle}
}

// GetProfile godoc
// @Summary Get the current user's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.svc.GetOrCreate(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, profileView(profile))
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Partial profile fields"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.svc.UpdateProfile(c.Request().Context(), userID, service.UpdateProfileInput{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, profileView(profile))
}

// GetSettings godoc
// @Summary Get the current user's settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SettingsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /settings [get]
func (h *ProfileHandler) GetSettings(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.svc.GetOrCreate(c.Request().Context(), userID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, settingsView(profile))
}

// UpdateSettings godoc
// @Summary Update the current user's settings
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateSettingsRequest true "Partial settings fields"
// @Success 200 {object} SettingsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /settings [put]
func (h *ProfileHandler) UpdateSettings(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.svc.UpdateSettings(c.Request().Context(), userID, service.UpdateSettingsInput{
		Theme:           req.Theme,
		Language:        req.Language,
		AIResponseStyle: req.AIResponseStyle,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, settingsView(profile))
}

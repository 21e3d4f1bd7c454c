package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskhub/internal/assistant"
	"taskhub/internal/service"
)

// AssistantHandler handles assistant and AI history endpoints.
type AssistantHandler struct {
	svc service.AssistantService
}

// NewAssistantHandler creates a new assistant handler.
func NewAssistantHandler(svc service.AssistantService) *AssistantHandler {
	return &AssistantHandler{svc: svc}
}

// AskRequest represents an assistant request with optional task context.
type AskRequest struct {
	Message string              `json:"message" validate:"required"`
	Tasks   []assistant.TaskRef `json:"tasks"`
}

// AskResponse carries the reply and the persisted history entry's ID.
type AskResponse struct {
	Response  string `json:"response"`
	HistoryID uint   `json:"historyId"`
}

// Ask godoc
// @Summary Ask the assistant
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AskRequest true "Message and optional task context"
// @Success 200 {object} AskResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /ai/ask [post]
func (h *AssistantHandler) Ask(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.svc.Ask(c.Request().Context(), userID, req.Message, req.Tasks)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, AskResponse{
		Response:  entry.Response,
		HistoryID: entry.ID,
	})
}

// ListHistory godoc
// @Summary List the current user's AI history
// @Tags ai
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.AIHistory
// @Failure 401 {object} errors.ErrorResponse
// @Router /ai/history [get]
func (h *AssistantHandler) ListHistory(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	entries, err := h.svc.ListHistory(c.Request().Context(), userID)
	if err != nil {
		return handleDBError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// DeleteHistory godoc
// @Summary Delete one of the current user's AI history entries
// @Tags ai
// @Security BearerAuth
// @Param id path int true "History ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ai/history/{id} [delete]
func (h *AssistantHandler) DeleteHistory(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	historyID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.svc.DeleteHistory(c.Request().Context(), userID, uint(historyID)); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

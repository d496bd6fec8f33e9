package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/meinc/jobagent/api/http/presenter"
	"github.com/meinc/jobagent/pkg/security/jwt"
	"github.com/meinc/jobagent/pkg/tracker"
)

// PreferencesHandler serves per-user job-search preferences. Routes are
// JWT-protected: the preference row is keyed by the token subject.
type PreferencesHandler struct {
	svc tracker.UseCase
}

func NewPreferencesHandler(svc tracker.UseCase) *PreferencesHandler {
	return &PreferencesHandler{svc: svc}
}

// Get returns the caller's preferences.
// @Summary Get user preferences
// @Tags    preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} tracker.UserPreference
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /preferences [get]
func (h *PreferencesHandler) Get(c *fiber.Ctx) error {
	userID, ok := jwt.Subject(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing authenticated subject")
	}
	p, err := h.svc.GetPreference(c.Context(), userID)
	if err != nil {
		if errors.Is(err, tracker.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "preferences not set")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load preferences")
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// preferencesRequest shadows confidence_threshold with a pointer so an
// explicit zero is distinguishable from an absent field.
type preferencesRequest struct {
	tracker.UserPreference
	ConfidenceThreshold *float64 `json:"confidence_threshold"`
}

// Put replaces the caller's preferences.
// @Summary Save user preferences
// @Tags    preferences
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body tracker.UserPreference true "preferences"
// @Success 200 {object} tracker.UserPreference
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /preferences [put]
func (h *PreferencesHandler) Put(c *fiber.Ctx) error {
	userID, ok := jwt.Subject(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "missing authenticated subject")
	}
	var req preferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	p := req.UserPreference
	p.UserID = userID
	if req.ConfidenceThreshold != nil {
		p.ConfidenceThreshold = *req.ConfidenceThreshold
	} else {
		p.ConfidenceThreshold = 0.80
	}
	saved, err := h.svc.SavePreference(c.Context(), p)
	if err != nil {
		if errors.Is(err, tracker.ErrScoreRange) {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to save preferences")
	}
	return presenter.JSON(c, http.StatusOK, saved)
}

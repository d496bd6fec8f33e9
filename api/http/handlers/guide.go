package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/meinc/jobagent/api/http/presenter"
	"github.com/meinc/jobagent/pkg/guide"
)

// GuideHandler serves the bullet-point coaching endpoints.
type GuideHandler struct {
	svc guide.UseCase
}

func NewGuideHandler(svc guide.UseCase) *GuideHandler {
	return &GuideHandler{svc: svc}
}

type critiqueRequest struct {
	Text       string `json:"text"`
	Domain     string `json:"domain"`
	Experience *int   `json:"experience"`
}

// Critique analyzes a bullet point against the STAR rubric.
// @Summary Critique a resume bullet point
// @Tags    guide
// @Accept  json
// @Produce json
// @Param   input body critiqueRequest true "bullet text plus optional domain/experience context"
// @Success 200 {object} guide.Critique
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /guide/critique [post]
func (h *GuideHandler) Critique(c *fiber.Ctx) error {
	var req critiqueRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Text) == "" {
		return presenter.Error(c, http.StatusBadRequest, "text is required")
	}
	domain := req.Domain
	if domain == "" {
		domain = "General"
	}
	experience := 5
	if req.Experience != nil {
		experience = *req.Experience
	}

	result, err := h.svc.AnalyzeBullet(c.Context(), req.Text, domain, experience)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, fmt.Sprintf("critique failed: %v", err))
	}
	return presenter.JSON(c, http.StatusOK, result)
}

type refineRequest struct {
	Original string `json:"original"`
	Answer   string `json:"answer"`
	Domain   string `json:"domain"`
}

// Refine rewrites a bullet point using the user's answer to the follow-up
// question.
// @Summary Rewrite a resume bullet point
// @Tags    guide
// @Accept  json
// @Produce json
// @Param   input body refineRequest true "original bullet, follow-up answer and optional domain"
// @Success 200 {object} guide.Refinement
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /guide/refine [post]
func (h *GuideHandler) Refine(c *fiber.Ctx) error {
	var req refineRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Original) == "" {
		return presenter.Error(c, http.StatusBadRequest, "original is required")
	}
	domain := req.Domain
	if domain == "" {
		domain = "General"
	}

	result, err := h.svc.RefineBullet(c.Context(), req.Original, req.Answer, domain)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, fmt.Sprintf("refine failed: %v", err))
	}
	return presenter.JSON(c, http.StatusOK, result)
}

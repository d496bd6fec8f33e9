package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/meinc/jobagent/api/http/presenter"
	"github.com/meinc/jobagent/pkg/profile"
)

type ProfileHandler struct {
	svc profile.UseCase
	// Limit uploaded file size read into memory (bytes)
	maxBytes int64
}

func NewProfileHandler(svc profile.UseCase, maxUploadMB int) *ProfileHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 15
	}
	return &ProfileHandler{svc: svc, maxBytes: int64(maxUploadMB) << 20}
}

type resumeResponse struct {
	ProfileID   string           `json:"profile_id"`
	ProfileName string           `json:"profile_name"`
	Content     profile.Document `json:"content"`
}

func toResumeResponse(p profile.ResumeProfile) resumeResponse {
	return resumeResponse{
		ProfileID:   p.ProfileID.String(),
		ProfileName: p.ProfileName,
		Content:     p.Content,
	}
}

// Upload accepts a resume file, parses it with the LLM and stores the
// structured document.
// @Summary Upload and parse a resume
// @Description Accepts a PDF or DOCX resume, extracts the text and converts it into a structured profile document.
// @Tags    resume
// @Accept  multipart/form-data
// @Produce json
// @Param   file formData file true "Resume file (PDF or DOCX)"
// @Success 200 {object} resumeResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ErrorResponse "No extractable text in the document"
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /resume/upload [post]
func (h *ProfileHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf or docx)")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" && ext != ".docx" {
		return presenter.Error(c, http.StatusBadRequest, "unsupported file format: only pdf and docx are allowed")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}

	p, err := h.svc.UploadAndParse(c.Context(), fh.Filename, data)
	switch {
	case err == nil:
	case errors.Is(err, profile.ErrUnsupportedFormat):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, profile.ErrEmptyDocument), errors.Is(err, profile.ErrExtraction):
		return presenter.Error(c, http.StatusUnprocessableEntity, fmt.Sprintf("could not parse document: %v", err))
	default:
		return presenter.Error(c, http.StatusInternalServerError, fmt.Sprintf("error parsing resume: %v", err))
	}
	return presenter.JSON(c, http.StatusOK, toResumeResponse(p))
}

type createProfileRequest struct {
	Name string `json:"name"`
}

// Create makes an empty profile with skeleton content.
// @Summary Create an empty profile
// @Tags    resume
// @Accept  json
// @Produce json
// @Param   input body createProfileRequest true "profile name"
// @Success 201 {object} resumeResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /resume [post]
func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	var req createProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Name) == "" {
		return presenter.Error(c, http.StatusBadRequest, "name is required")
	}
	p, err := h.svc.CreateEmpty(c.Context(), req.Name)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to create profile")
	}
	return presenter.JSON(c, http.StatusCreated, toResumeResponse(p))
}

// Get returns one profile by id. Soft-deleted profiles stay fetchable.
// @Summary Get a profile
// @Tags    resume
// @Produce json
// @Param   id path string true "Profile ID (UUID)"
// @Success 200 {object} resumeResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resume/{id} [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid profile ID format")
	}
	p, err := h.svc.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "profile not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load profile")
	}
	return presenter.JSON(c, http.StatusOK, toResumeResponse(p))
}

// List returns active profiles: identifier, name and creation time only.
// @Summary List active profiles
// @Tags    resume
// @Produce json
// @Success 200 {array} profile.ListItem
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /resumes [get]
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.svc.List(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list profiles")
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Patch applies shallow top-level key replacement to the stored content.
// @Summary Update profile content
// @Description Each top-level key in the body replaces the same key in the stored document wholesale; siblings are untouched.
// @Tags    resume
// @Accept  json
// @Produce json
// @Param   id path string true "Profile ID (UUID)"
// @Param   input body map[string]any true "top-level keys to replace"
// @Success 200 {object} resumeResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resume/{id} [patch]
func (h *ProfileHandler) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid profile ID format")
	}
	var updates map[string]any
	if err := c.BodyParser(&updates); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if len(updates) == 0 {
		return presenter.Error(c, http.StatusBadRequest, "no keys to update")
	}
	p, err := h.svc.UpdateContent(c.Context(), id, updates)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "profile not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to update profile")
	}
	return presenter.JSON(c, http.StatusOK, toResumeResponse(p))
}

// Delete soft deletes a profile: it disappears from listings but remains
// fetchable by id.
// @Summary Soft delete a profile
// @Tags    resume
// @Produce json
// @Param   id path string true "Profile ID (UUID)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /resume/{id} [delete]
func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid profile ID format")
	}
	if err := h.svc.SoftDelete(c.Context(), id); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "profile not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to delete profile")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"message":    "Profile deleted",
		"profile_id": id.String(),
	})
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}

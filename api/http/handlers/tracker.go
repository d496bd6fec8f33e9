package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/meinc/jobagent/api/http/presenter"
	"github.com/meinc/jobagent/pkg/tracker"
)

// TrackerHandler serves the job-search metadata endpoints.
type TrackerHandler struct {
	svc tracker.UseCase
}

func NewTrackerHandler(svc tracker.UseCase) *TrackerHandler {
	return &TrackerHandler{svc: svc}
}

func trackerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, tracker.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "record not found")
	case errors.Is(err, tracker.ErrInvalidStatus), errors.Is(err, tracker.ErrScoreRange):
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	default:
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}
}

// CreateJob registers a discovered job posting.
// @Summary Create a tracked job
// @Tags    tracker
// @Accept  json
// @Produce json
// @Param   input body tracker.Job true "job posting"
// @Success 201 {object} tracker.Job
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /jobs [post]
func (h *TrackerHandler) CreateJob(c *fiber.Ctx) error {
	var j tracker.Job
	if err := c.BodyParser(&j); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if j.Title == "" || j.Company == "" {
		return presenter.Error(c, http.StatusBadRequest, "title and company are required")
	}
	created, err := h.svc.CreateJob(c.Context(), j)
	if err != nil {
		return trackerError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, created)
}

// ListJobs returns tracked jobs, newest first.
// @Summary List tracked jobs
// @Tags    tracker
// @Produce json
// @Success 200 {array} tracker.Job
// @Router  /jobs [get]
func (h *TrackerHandler) ListJobs(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	jobs, err := h.svc.ListJobs(c.Context(), limit, offset)
	if err != nil {
		return trackerError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, jobs)
}

// GetJob returns one tracked job.
// @Summary Get a tracked job
// @Tags    tracker
// @Produce json
// @Param   id path string true "Job ID (UUID)"
// @Success 200 {object} tracker.Job
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [get]
func (h *TrackerHandler) GetJob(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid job ID format")
	}
	j, err := h.svc.GetJob(c.Context(), id)
	if err != nil {
		return trackerError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, j)
}

type jobStatusRequest struct {
	Status   string `json:"status"`
	FitScore *int   `json:"fit_score"`
}

// UpdateJobStatus moves a job through its lifecycle.
// @Summary Update job status
// @Tags    tracker
// @Accept  json
// @Produce json
// @Param   id path string true "Job ID (UUID)"
// @Param   input body jobStatusRequest true "new status and optional fit score"
// @Success 200 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/status [patch]
func (h *TrackerHandler) UpdateJobStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid job ID format")
	}
	var req jobStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := h.svc.UpdateJobStatus(c.Context(), id, req.Status, req.FitScore); err != nil {
		return trackerError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"status": req.Status})
}

// CreateContact adds a network contact.
// @Summary Create a network contact
// @Tags    tracker
// @Accept  json
// @Produce json
// @Param   input body tracker.Contact true "contact"
// @Success 201 {object} tracker.Contact
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /network [post]
func (h *TrackerHandler) CreateContact(c *fiber.Ctx) error {
	var contact tracker.Contact
	if err := c.BodyParser(&contact); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if contact.Name == "" {
		return presenter.Error(c, http.StatusBadRequest, "name is required")
	}
	created, err := h.svc.CreateContact(c.Context(), contact)
	if err != nil {
		return trackerError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, created)
}

// ListContacts returns network contacts.
// @Summary List network contacts
// @Tags    tracker
// @Produce json
// @Success 200 {array} tracker.Contact
// @Router  /network [get]
func (h *TrackerHandler) ListContacts(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	contacts, err := h.svc.ListContacts(c.Context(), limit, offset)
	if err != nil {
		return trackerError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, contacts)
}

// CreateDecision records an agent decision.
// @Summary Record a decision
// @Tags    tracker
// @Accept  json
// @Produce json
// @Param   input body tracker.Decision true "decision"
// @Success 201 {object} tracker.Decision
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /decisions [post]
func (h *TrackerHandler) CreateDecision(c *fiber.Ctx) error {
	var d tracker.Decision
	if err := c.BodyParser(&d); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if d.Agent == "" || d.ActionTaken == "" || d.Reasoning == "" {
		return presenter.Error(c, http.StatusBadRequest, "agent, action_taken and reasoning are required")
	}
	created, err := h.svc.CreateDecision(c.Context(), d)
	if err != nil {
		return trackerError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, created)
}

// ListDecisions returns the decision audit trail, newest first.
// @Summary List decisions
// @Tags    tracker
// @Produce json
// @Success 200 {array} tracker.Decision
// @Router  /decisions [get]
func (h *TrackerHandler) ListDecisions(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	decisions, err := h.svc.ListDecisions(c.Context(), limit, offset)
	if err != nil {
		return trackerError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, decisions)
}

// CreateWorkflow starts a workflow execution record.
// @Summary Start a workflow execution
// @Tags    tracker
// @Accept  json
// @Produce json
// @Param   input body tracker.WorkflowExecution true "workflow"
// @Success 201 {object} tracker.WorkflowExecution
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /workflows [post]
func (h *TrackerHandler) CreateWorkflow(c *fiber.Ctx) error {
	var w tracker.WorkflowExecution
	if err := c.BodyParser(&w); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if w.StrategySelected == "" {
		return presenter.Error(c, http.StatusBadRequest, "strategy_selected is required")
	}
	created, err := h.svc.CreateWorkflow(c.Context(), w)
	if err != nil {
		return trackerError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, created)
}

type completeWorkflowRequest struct {
	Status  string `json:"status"`
	Outcome string `json:"outcome"`
}

// CompleteWorkflow marks a workflow execution finished.
// @Summary Complete a workflow execution
// @Tags    tracker
// @Accept  json
// @Produce json
// @Param   id path string true "Execution ID (UUID)"
// @Param   input body completeWorkflowRequest true "final status and outcome"
// @Success 200 {object} tracker.WorkflowExecution
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /workflows/{id} [patch]
func (h *TrackerHandler) CompleteWorkflow(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid execution ID format")
	}
	var req completeWorkflowRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if req.Status == "" {
		req.Status = "completed"
	}
	w, err := h.svc.CompleteWorkflow(c.Context(), id, req.Status, req.Outcome)
	if err != nil {
		return trackerError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, w)
}

// ListWorkflows returns workflow executions.
// @Summary List workflow executions
// @Tags    tracker
// @Produce json
// @Success 200 {array} tracker.WorkflowExecution
// @Router  /workflows [get]
func (h *TrackerHandler) ListWorkflows(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	workflows, err := h.svc.ListWorkflows(c.Context(), limit, offset)
	if err != nil {
		return trackerError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, workflows)
}

package tracker

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

// UseCase wraps the repository with range and status validation mirroring
// the database check constraints.
type UseCase interface {
	CreateJob(ctx context.Context, j Job) (Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (Job, error)
	ListJobs(ctx context.Context, limit, offset int) ([]Job, error)
	UpdateJobStatus(ctx context.Context, id uuid.UUID, status string, fitScore *int) error

	CreateContact(ctx context.Context, c Contact) (Contact, error)
	ListContacts(ctx context.Context, limit, offset int) ([]Contact, error)

	CreateDecision(ctx context.Context, d Decision) (Decision, error)
	ListDecisions(ctx context.Context, limit, offset int) ([]Decision, error)

	CreateWorkflow(ctx context.Context, w WorkflowExecution) (WorkflowExecution, error)
	CompleteWorkflow(ctx context.Context, id uuid.UUID, status, outcome string) (WorkflowExecution, error)
	ListWorkflows(ctx context.Context, limit, offset int) ([]WorkflowExecution, error)

	SavePreference(ctx context.Context, p UserPreference) (UserPreference, error)
	GetPreference(ctx context.Context, userID uuid.UUID) (UserPreference, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo}
}

func (s *service) CreateJob(ctx context.Context, j Job) (Job, error) {
	if j.Status == "" {
		j.Status = "discovered"
	}
	if !slices.Contains(JobStatuses, j.Status) {
		return Job{}, ErrInvalidStatus
	}
	if j.FitScore != nil && (*j.FitScore < 0 || *j.FitScore > 100) {
		return Job{}, ErrScoreRange
	}
	j.JobID = uuid.New()
	now := time.Now().UTC()
	j.CreatedAt, j.UpdatedAt = now, now
	if j.RequiredSkills == nil {
		j.RequiredSkills = []string{}
	}
	if j.NiceToHaveSkills == nil {
		j.NiceToHaveSkills = []string{}
	}
	if err := s.repo.CreateJob(ctx, j); err != nil {
		return Job{}, err
	}
	return j, nil
}

func (s *service) GetJob(ctx context.Context, id uuid.UUID) (Job, error) {
	return s.repo.GetJob(ctx, id)
}

func (s *service) ListJobs(ctx context.Context, limit, offset int) ([]Job, error) {
	return s.repo.ListJobs(ctx, limit, offset)
}

func (s *service) UpdateJobStatus(ctx context.Context, id uuid.UUID, status string, fitScore *int) error {
	if !slices.Contains(JobStatuses, status) {
		return ErrInvalidStatus
	}
	if fitScore != nil && (*fitScore < 0 || *fitScore > 100) {
		return ErrScoreRange
	}
	return s.repo.UpdateJobStatus(ctx, id, status, fitScore)
}

func (s *service) CreateContact(ctx context.Context, c Contact) (Contact, error) {
	if c.RelationshipStrength != nil && (*c.RelationshipStrength < 0 || *c.RelationshipStrength > 100) {
		return Contact{}, ErrScoreRange
	}
	c.PersonID = uuid.New()
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if c.WorksAtCompanies == nil {
		c.WorksAtCompanies = []string{}
	}
	if err := s.repo.CreateContact(ctx, c); err != nil {
		return Contact{}, err
	}
	return c, nil
}

func (s *service) ListContacts(ctx context.Context, limit, offset int) ([]Contact, error) {
	return s.repo.ListContacts(ctx, limit, offset)
}

func (s *service) CreateDecision(ctx context.Context, d Decision) (Decision, error) {
	if d.ConfidenceScore != nil && (*d.ConfidenceScore < 0 || *d.ConfidenceScore > 1) {
		return Decision{}, ErrScoreRange
	}
	d.DecisionID = uuid.New()
	d.CreatedAt = time.Now().UTC()
	if d.Context == nil {
		d.Context = map[string]any{}
	}
	if err := s.repo.CreateDecision(ctx, d); err != nil {
		return Decision{}, err
	}
	return d, nil
}

func (s *service) ListDecisions(ctx context.Context, limit, offset int) ([]Decision, error) {
	return s.repo.ListDecisions(ctx, limit, offset)
}

func (s *service) CreateWorkflow(ctx context.Context, w WorkflowExecution) (WorkflowExecution, error) {
	w.ExecutionID = uuid.New()
	now := time.Now().UTC()
	w.StartedAt, w.UpdatedAt = now, now
	w.CompletedAt = nil
	if w.Status == "" {
		w.Status = "running"
	}
	if w.StepsCompleted == nil {
		w.StepsCompleted = []string{}
	}
	if err := s.repo.CreateWorkflow(ctx, w); err != nil {
		return WorkflowExecution{}, err
	}
	return w, nil
}

func (s *service) CompleteWorkflow(ctx context.Context, id uuid.UUID, status, outcome string) (WorkflowExecution, error) {
	w, err := s.repo.GetWorkflow(ctx, id)
	if err != nil {
		return WorkflowExecution{}, err
	}
	now := time.Now().UTC()
	w.Status = status
	w.CurrentStep = outcome
	w.CompletedAt = &now
	w.UpdatedAt = now
	if err := s.repo.UpdateWorkflow(ctx, w); err != nil {
		return WorkflowExecution{}, err
	}
	return w, nil
}

func (s *service) ListWorkflows(ctx context.Context, limit, offset int) ([]WorkflowExecution, error) {
	return s.repo.ListWorkflows(ctx, limit, offset)
}

func (s *service) SavePreference(ctx context.Context, p UserPreference) (UserPreference, error) {
	if p.ConfidenceThreshold < 0 || p.ConfidenceThreshold > 1 {
		return UserPreference{}, ErrScoreRange
	}
	now := time.Now().UTC()
	p.UpdatedAt = now
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.TargetRoles == nil {
		p.TargetRoles = []string{}
	}
	if p.CoreSkills == nil {
		p.CoreSkills = []string{}
	}
	if p.PreferredLocations == nil {
		p.PreferredLocations = []string{}
	}
	if p.IndustriesOfInterest == nil {
		p.IndustriesOfInterest = []string{}
	}
	if p.CompanySizePreference == nil {
		p.CompanySizePreference = []string{}
	}
	if p.DealBreakers == nil {
		p.DealBreakers = []string{}
	}
	if err := s.repo.UpsertPreference(ctx, p); err != nil {
		return UserPreference{}, err
	}
	return p, nil
}

func (s *service) GetPreference(ctx context.Context, userID uuid.UUID) (UserPreference, error) {
	return s.repo.GetPreference(ctx, userID)
}

package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

// memRepo is an in-memory Repository for use case tests.
type memRepo struct {
	jobs      map[uuid.UUID]Job
	contacts  []Contact
	decisions []Decision
	workflows map[uuid.UUID]WorkflowExecution
	prefs     map[uuid.UUID]UserPreference
}

func newMemRepo() *memRepo {
	return &memRepo{
		jobs:      map[uuid.UUID]Job{},
		workflows: map[uuid.UUID]WorkflowExecution{},
		prefs:     map[uuid.UUID]UserPreference{},
	}
}

func (r *memRepo) CreateJob(ctx context.Context, j Job) error {
	r.jobs[j.JobID] = j
	return nil
}

func (r *memRepo) GetJob(ctx context.Context, id uuid.UUID) (Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return j, nil
}

func (r *memRepo) ListJobs(ctx context.Context, limit, offset int) ([]Job, error) {
	out := make([]Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		out = append(out, j)
	}
	return out, nil
}

func (r *memRepo) UpdateJobStatus(ctx context.Context, id uuid.UUID, status string, fitScore *int) error {
	j, ok := r.jobs[id]
	if !ok {
		return ErrNotFound
	}
	j.Status = status
	if fitScore != nil {
		j.FitScore = fitScore
	}
	r.jobs[id] = j
	return nil
}

func (r *memRepo) CreateContact(ctx context.Context, c Contact) error {
	r.contacts = append(r.contacts, c)
	return nil
}

func (r *memRepo) ListContacts(ctx context.Context, limit, offset int) ([]Contact, error) {
	return r.contacts, nil
}

func (r *memRepo) CreateDecision(ctx context.Context, d Decision) error {
	r.decisions = append(r.decisions, d)
	return nil
}

func (r *memRepo) ListDecisions(ctx context.Context, limit, offset int) ([]Decision, error) {
	return r.decisions, nil
}

func (r *memRepo) CreateWorkflow(ctx context.Context, w WorkflowExecution) error {
	r.workflows[w.ExecutionID] = w
	return nil
}

func (r *memRepo) UpdateWorkflow(ctx context.Context, w WorkflowExecution) error {
	if _, ok := r.workflows[w.ExecutionID]; !ok {
		return ErrNotFound
	}
	r.workflows[w.ExecutionID] = w
	return nil
}

func (r *memRepo) GetWorkflow(ctx context.Context, id uuid.UUID) (WorkflowExecution, error) {
	w, ok := r.workflows[id]
	if !ok {
		return WorkflowExecution{}, ErrNotFound
	}
	return w, nil
}

func (r *memRepo) ListWorkflows(ctx context.Context, limit, offset int) ([]WorkflowExecution, error) {
	out := make([]WorkflowExecution, 0, len(r.workflows))
	for _, w := range r.workflows {
		out = append(out, w)
	}
	return out, nil
}

func (r *memRepo) UpsertPreference(ctx context.Context, p UserPreference) error {
	r.prefs[p.UserID] = p
	return nil
}

func (r *memRepo) GetPreference(ctx context.Context, userID uuid.UUID) (UserPreference, error) {
	p, ok := r.prefs[userID]
	if !ok {
		return UserPreference{}, ErrNotFound
	}
	return p, nil
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestCreateJobDefaultsAndValidation(t *testing.T) {
	svc := NewService(newMemRepo())

	j, err := svc.CreateJob(context.Background(), Job{Title: "SWE", Company: "Acme"})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if j.Status != "discovered" {
		t.Errorf("Status = %q, want discovered", j.Status)
	}
	if j.JobID == uuid.Nil {
		t.Error("JobID must be assigned")
	}
	if j.RequiredSkills == nil || j.NiceToHaveSkills == nil {
		t.Error("skill lists must be non-nil")
	}

	if _, err := svc.CreateJob(context.Background(), Job{Title: "x", Status: "hired"}); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("unknown status: err = %v, want ErrInvalidStatus", err)
	}
	if _, err := svc.CreateJob(context.Background(), Job{Title: "x", FitScore: intPtr(101)}); !errors.Is(err, ErrScoreRange) {
		t.Errorf("fit score 101: err = %v, want ErrScoreRange", err)
	}
	if _, err := svc.CreateJob(context.Background(), Job{Title: "x", FitScore: intPtr(-1)}); !errors.Is(err, ErrScoreRange) {
		t.Errorf("fit score -1: err = %v, want ErrScoreRange", err)
	}
}

func TestUpdateJobStatus(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	j, err := svc.CreateJob(context.Background(), Job{Title: "SWE", Company: "Acme"})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if err := svc.UpdateJobStatus(context.Background(), j.JobID, "applied", intPtr(85)); err != nil {
		t.Fatalf("UpdateJobStatus: %v", err)
	}
	got, _ := svc.GetJob(context.Background(), j.JobID)
	if got.Status != "applied" || got.FitScore == nil || *got.FitScore != 85 {
		t.Errorf("job after update = %+v", got)
	}

	if err := svc.UpdateJobStatus(context.Background(), j.JobID, "ghosted", nil); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
	if err := svc.UpdateJobStatus(context.Background(), uuid.New(), "applied", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateContactValidation(t *testing.T) {
	svc := NewService(newMemRepo())

	c, err := svc.CreateContact(context.Background(), Contact{Name: "Sam Lee", RelationshipStrength: intPtr(60)})
	if err != nil {
		t.Fatalf("CreateContact: %v", err)
	}
	if c.PersonID == uuid.Nil {
		t.Error("PersonID must be assigned")
	}
	if c.Tags == nil || c.WorksAtCompanies == nil {
		t.Error("list fields must be non-nil")
	}

	if _, err := svc.CreateContact(context.Background(), Contact{Name: "x", RelationshipStrength: intPtr(150)}); !errors.Is(err, ErrScoreRange) {
		t.Errorf("err = %v, want ErrScoreRange", err)
	}
}

func TestCreateDecisionValidation(t *testing.T) {
	svc := NewService(newMemRepo())

	d, err := svc.CreateDecision(context.Background(), Decision{
		Agent:           "extractor",
		ActionTaken:     "parse_resume",
		ConfidenceScore: floatPtr(0.9),
	})
	if err != nil {
		t.Fatalf("CreateDecision: %v", err)
	}
	if d.Context == nil {
		t.Error("Context must default to an empty map")
	}

	if _, err := svc.CreateDecision(context.Background(), Decision{Agent: "a", ConfidenceScore: floatPtr(1.5)}); !errors.Is(err, ErrScoreRange) {
		t.Errorf("err = %v, want ErrScoreRange", err)
	}
}

func TestWorkflowLifecycle(t *testing.T) {
	svc := NewService(newMemRepo())

	w, err := svc.CreateWorkflow(context.Background(), WorkflowExecution{StrategySelected: "aggressive_apply"})
	if err != nil {
		t.Fatalf("CreateWorkflow: %v", err)
	}
	if w.Status != "running" || w.CompletedAt != nil {
		t.Errorf("new workflow = %+v", w)
	}

	done, err := svc.CompleteWorkflow(context.Background(), w.ExecutionID, "completed", "applied to 5 jobs")
	if err != nil {
		t.Fatalf("CompleteWorkflow: %v", err)
	}
	if done.Status != "completed" || done.CompletedAt == nil {
		t.Errorf("completed workflow = %+v", done)
	}

	if _, err := svc.CompleteWorkflow(context.Background(), uuid.New(), "completed", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSavePreference(t *testing.T) {
	svc := NewService(newMemRepo())
	userID := uuid.New()

	p, err := svc.SavePreference(context.Background(), UserPreference{
		UserID:              userID,
		TargetRoles:         []string{"Staff Engineer"},
		ConfidenceThreshold: 0.8,
	})
	if err != nil {
		t.Fatalf("SavePreference: %v", err)
	}
	if p.CoreSkills == nil || p.DealBreakers == nil {
		t.Error("list fields must be non-nil")
	}

	got, err := svc.GetPreference(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetPreference: %v", err)
	}
	if got.ConfidenceThreshold != 0.8 {
		t.Errorf("ConfidenceThreshold = %v", got.ConfidenceThreshold)
	}

	if _, err := svc.SavePreference(context.Background(), UserPreference{UserID: userID, ConfidenceThreshold: 1.2}); !errors.Is(err, ErrScoreRange) {
		t.Errorf("err = %v, want ErrScoreRange", err)
	}
}

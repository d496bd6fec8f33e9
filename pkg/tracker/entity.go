package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Job search metadata entities. These are plain relational records around
// the resume documents; scores carry bounded ranges checked in the use case.

var (
	ErrNotFound      = errors.New("record not found")
	ErrScoreRange    = errors.New("score out of range")
	ErrInvalidStatus = errors.New("invalid status")
)

// JobStatuses is the allowed lifecycle of a tracked job posting.
var JobStatuses = []string{"discovered", "analyzed", "applied", "responded", "rejected", "passed"}

type Job struct {
	JobID            uuid.UUID      `json:"job_id"`
	Title            string         `json:"title"`
	Company          string         `json:"company"`
	URL              string         `json:"url,omitempty"`
	FitScore         *int           `json:"fit_score,omitempty"` // [0,100]
	Status           string         `json:"status"`
	RequiredSkills   []string       `json:"required_skills"`
	NiceToHaveSkills []string       `json:"nice_to_have_skills"`
	SalaryRange      map[string]any `json:"salary_range,omitempty"`
	Location         string         `json:"location,omitempty"`
	RemotePolicy     string         `json:"remote_policy,omitempty"`
	RawDescription   string         `json:"raw_description,omitempty"`
	CompanySize      string         `json:"company_size,omitempty"`
	Industry         string         `json:"industry,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type Contact struct {
	PersonID             uuid.UUID `json:"person_id"`
	Name                 string    `json:"name"`
	CurrentTitle         string    `json:"current_title,omitempty"`
	CurrentCompany       string    `json:"current_company,omitempty"`
	RelationshipStrength *int      `json:"relationship_strength,omitempty"` // [0,100]
	WorksAtCompanies     []string  `json:"works_at_companies"`
	Source               string    `json:"source,omitempty"`
	LinkedInURL          string    `json:"linkedin_url,omitempty"`
	Email                string    `json:"email,omitempty"`
	Phone                string    `json:"phone,omitempty"`
	Notes                string    `json:"notes,omitempty"`
	Tags                 []string  `json:"tags"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type Decision struct {
	DecisionID       uuid.UUID      `json:"decision_id"`
	Agent            string         `json:"agent"`
	ActionTaken      string         `json:"action_taken"`
	Reasoning        string         `json:"reasoning"`
	ConfidenceScore  *float64       `json:"confidence_score,omitempty"` // [0,1]
	Context          map[string]any `json:"context"`
	Outcome          string         `json:"outcome,omitempty"`
	RelatedJobID     *uuid.UUID     `json:"related_job_id,omitempty"`
	RelatedPersonID  *uuid.UUID     `json:"related_person_id,omitempty"`
	RelatedProfileID *uuid.UUID     `json:"related_resume_profile_id,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

type WorkflowExecution struct {
	ExecutionID      uuid.UUID  `json:"execution_id"`
	StrategySelected string     `json:"strategy_selected"`
	UserGoal         string     `json:"user_goal,omitempty"`
	CurrentStep      string     `json:"current_step,omitempty"`
	Status           string     `json:"status,omitempty"`
	StepsCompleted   []string   `json:"steps_completed"`
	JobsDiscovered   int        `json:"jobs_discovered"`
	JobsApplied      int        `json:"jobs_applied"`
	ConnectionsMade  int        `json:"connections_made"`
	ResumesGenerated int        `json:"resumes_generated"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type UserPreference struct {
	UserID                uuid.UUID `json:"user_id"`
	TargetRoles           []string  `json:"target_roles"`
	MinSalary             *int      `json:"min_salary,omitempty"`
	MaxSalary             *int      `json:"max_salary,omitempty"`
	PreferredLocations    []string  `json:"preferred_locations"`
	RemotePreference      string    `json:"remote_preference,omitempty"`
	CoreSkills            []string  `json:"core_skills"`
	YearsExperience       int       `json:"years_experience"`
	IndustriesOfInterest  []string  `json:"industries_of_interest"`
	CompanySizePreference []string  `json:"company_size_preference"`
	DealBreakers          []string  `json:"deal_breakers"`
	AutoApplyEnabled      bool      `json:"auto_apply_enabled"`
	AutoNetworkEnabled    bool      `json:"auto_network_enabled"`
	ConfidenceThreshold   float64   `json:"confidence_threshold"` // [0,1]
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Repository is the persistence port for job-search metadata.
type Repository interface {
	CreateJob(ctx context.Context, j Job) error
	GetJob(ctx context.Context, id uuid.UUID) (Job, error)
	ListJobs(ctx context.Context, limit, offset int) ([]Job, error)
	UpdateJobStatus(ctx context.Context, id uuid.UUID, status string, fitScore *int) error

	CreateContact(ctx context.Context, c Contact) error
	ListContacts(ctx context.Context, limit, offset int) ([]Contact, error)

	CreateDecision(ctx context.Context, d Decision) error
	ListDecisions(ctx context.Context, limit, offset int) ([]Decision, error)

	CreateWorkflow(ctx context.Context, w WorkflowExecution) error
	UpdateWorkflow(ctx context.Context, w WorkflowExecution) error
	GetWorkflow(ctx context.Context, id uuid.UUID) (WorkflowExecution, error)
	ListWorkflows(ctx context.Context, limit, offset int) ([]WorkflowExecution, error)

	UpsertPreference(ctx context.Context, p UserPreference) error
	GetPreference(ctx context.Context, userID uuid.UUID) (UserPreference, error)
}

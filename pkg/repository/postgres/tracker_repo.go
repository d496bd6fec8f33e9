package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meinc/jobagent/pkg/tracker"
)

// TrackerRepository stores job-search metadata: jobs, network contacts,
// agent decisions, workflow executions and user preferences.
type TrackerRepository struct {
	pool *pgxpool.Pool
}

func NewTrackerRepository(pool *pgxpool.Pool) (*TrackerRepository, error) {
	r := &TrackerRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *TrackerRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	job_id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	company TEXT NOT NULL,
	url TEXT,
	fit_score INT CHECK (fit_score >= 0 AND fit_score <= 100),
	status TEXT CHECK (status IN ('discovered', 'analyzed', 'applied', 'responded', 'rejected', 'passed')),
	required_skills JSONB NOT NULL DEFAULT '[]',
	nice_to_have_skills JSONB NOT NULL DEFAULT '[]',
	salary_range JSONB,
	location TEXT,
	remote_policy TEXT,
	raw_description TEXT,
	company_size TEXT,
	industry TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS network (
	person_id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	current_title TEXT,
	current_company TEXT,
	relationship_strength INT CHECK (relationship_strength >= 0 AND relationship_strength <= 100),
	works_at_companies JSONB NOT NULL DEFAULT '[]',
	source TEXT,
	linkedin_url TEXT,
	email TEXT,
	phone TEXT,
	notes TEXT,
	tags JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS decisions (
	decision_id UUID PRIMARY KEY,
	agent TEXT NOT NULL,
	action_taken TEXT NOT NULL,
	reasoning TEXT NOT NULL,
	confidence_score NUMERIC(3,2) CHECK (confidence_score >= 0 AND confidence_score <= 1),
	context JSONB NOT NULL DEFAULT '{}',
	outcome TEXT,
	related_job_id UUID,
	related_person_id UUID,
	related_resume_profile_id UUID,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS workflow_executions (
	execution_id UUID PRIMARY KEY,
	strategy_selected TEXT NOT NULL,
	user_goal TEXT,
	current_step TEXT,
	status TEXT,
	steps_completed JSONB NOT NULL DEFAULT '[]',
	jobs_discovered INT NOT NULL DEFAULT 0,
	jobs_applied INT NOT NULL DEFAULT 0,
	connections_made INT NOT NULL DEFAULT 0,
	resumes_generated INT NOT NULL DEFAULT 0,
	started_at TIMESTAMPTZ NOT NULL,
	completed_at TIMESTAMPTZ,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS user_preferences (
	user_id UUID PRIMARY KEY,
	prefs JSONB NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *TrackerRepository) CreateJob(ctx context.Context, j tracker.Job) error {
	required, _ := json.Marshal(j.RequiredSkills)
	nice, _ := json.Marshal(j.NiceToHaveSkills)
	var salary []byte
	if j.SalaryRange != nil {
		salary, _ = json.Marshal(j.SalaryRange)
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO jobs (job_id, title, company, url, fit_score, status, required_skills, nice_to_have_skills,
	salary_range, location, remote_policy, raw_description, company_size, industry, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
`, j.JobID, j.Title, j.Company, nullIfEmpty(j.URL), j.FitScore, j.Status, required, nice,
		salary, nullIfEmpty(j.Location), nullIfEmpty(j.RemotePolicy), nullIfEmpty(j.RawDescription),
		nullIfEmpty(j.CompanySize), nullIfEmpty(j.Industry), j.CreatedAt, j.UpdatedAt)
	return err
}

func (r *TrackerRepository) GetJob(ctx context.Context, id uuid.UUID) (tracker.Job, error) {
	row := r.pool.QueryRow(ctx, `
SELECT job_id, title, company, url, fit_score, status, required_skills, nice_to_have_skills,
	salary_range, location, remote_policy, raw_description, company_size, industry, created_at, updated_at
FROM jobs WHERE job_id = $1
`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tracker.Job{}, tracker.ErrNotFound
		}
		return tracker.Job{}, err
	}
	return j, nil
}

func (r *TrackerRepository) ListJobs(ctx context.Context, limit, offset int) ([]tracker.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT job_id, title, company, url, fit_score, status, required_skills, nice_to_have_skills,
	salary_range, location, remote_policy, raw_description, company_size, industry, created_at, updated_at
FROM jobs
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	jobs := []tracker.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *TrackerRepository) UpdateJobStatus(ctx context.Context, id uuid.UUID, status string, fitScore *int) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE jobs SET status = $2, fit_score = COALESCE($3, fit_score), updated_at = $4 WHERE job_id = $1
`, id, status, fitScore, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return tracker.ErrNotFound
	}
	return nil
}

func scanJob(row pgx.Row) (tracker.Job, error) {
	var j tracker.Job
	var url, location, remote, rawDesc, companySize, industry *string
	var required, nice, salary []byte
	var created, updated time.Time
	if err := row.Scan(&j.JobID, &j.Title, &j.Company, &url, &j.FitScore, &j.Status, &required, &nice,
		&salary, &location, &remote, &rawDesc, &companySize, &industry, &created, &updated); err != nil {
		return tracker.Job{}, err
	}
	j.URL = deref(url)
	j.Location = deref(location)
	j.RemotePolicy = deref(remote)
	j.RawDescription = deref(rawDesc)
	j.CompanySize = deref(companySize)
	j.Industry = deref(industry)
	_ = json.Unmarshal(required, &j.RequiredSkills)
	_ = json.Unmarshal(nice, &j.NiceToHaveSkills)
	if len(salary) > 0 {
		_ = json.Unmarshal(salary, &j.SalaryRange)
	}
	j.CreatedAt = created.UTC()
	j.UpdatedAt = updated.UTC()
	return j, nil
}

func (r *TrackerRepository) CreateContact(ctx context.Context, c tracker.Contact) error {
	works, _ := json.Marshal(c.WorksAtCompanies)
	tags, _ := json.Marshal(c.Tags)
	_, err := r.pool.Exec(ctx, `
INSERT INTO network (person_id, name, current_title, current_company, relationship_strength,
	works_at_companies, source, linkedin_url, email, phone, notes, tags, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`, c.PersonID, c.Name, nullIfEmpty(c.CurrentTitle), nullIfEmpty(c.CurrentCompany), c.RelationshipStrength,
		works, nullIfEmpty(c.Source), nullIfEmpty(c.LinkedInURL), nullIfEmpty(c.Email), nullIfEmpty(c.Phone),
		nullIfEmpty(c.Notes), tags, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *TrackerRepository) ListContacts(ctx context.Context, limit, offset int) ([]tracker.Contact, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT person_id, name, current_title, current_company, relationship_strength,
	works_at_companies, source, linkedin_url, email, phone, notes, tags, created_at, updated_at
FROM network
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	contacts := []tracker.Contact{}
	for rows.Next() {
		var c tracker.Contact
		var title, company, source, linkedin, email, phone, notes *string
		var works, tags []byte
		var created, updated time.Time
		if err := rows.Scan(&c.PersonID, &c.Name, &title, &company, &c.RelationshipStrength,
			&works, &source, &linkedin, &email, &phone, &notes, &tags, &created, &updated); err != nil {
			return nil, err
		}
		c.CurrentTitle = deref(title)
		c.CurrentCompany = deref(company)
		c.Source = deref(source)
		c.LinkedInURL = deref(linkedin)
		c.Email = deref(email)
		c.Phone = deref(phone)
		c.Notes = deref(notes)
		_ = json.Unmarshal(works, &c.WorksAtCompanies)
		_ = json.Unmarshal(tags, &c.Tags)
		c.CreatedAt = created.UTC()
		c.UpdatedAt = updated.UTC()
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *TrackerRepository) CreateDecision(ctx context.Context, d tracker.Decision) error {
	contextJSON, _ := json.Marshal(d.Context)
	_, err := r.pool.Exec(ctx, `
INSERT INTO decisions (decision_id, agent, action_taken, reasoning, confidence_score, context,
	outcome, related_job_id, related_person_id, related_resume_profile_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`, d.DecisionID, d.Agent, d.ActionTaken, d.Reasoning, d.ConfidenceScore, contextJSON,
		nullIfEmpty(d.Outcome), d.RelatedJobID, d.RelatedPersonID, d.RelatedProfileID, d.CreatedAt)
	return err
}

func (r *TrackerRepository) ListDecisions(ctx context.Context, limit, offset int) ([]tracker.Decision, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT decision_id, agent, action_taken, reasoning, confidence_score, context,
	outcome, related_job_id, related_person_id, related_resume_profile_id, created_at
FROM decisions
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	decisions := []tracker.Decision{}
	for rows.Next() {
		var d tracker.Decision
		var outcome *string
		var contextBytes []byte
		var created time.Time
		if err := rows.Scan(&d.DecisionID, &d.Agent, &d.ActionTaken, &d.Reasoning, &d.ConfidenceScore,
			&contextBytes, &outcome, &d.RelatedJobID, &d.RelatedPersonID, &d.RelatedProfileID, &created); err != nil {
			return nil, err
		}
		d.Outcome = deref(outcome)
		_ = json.Unmarshal(contextBytes, &d.Context)
		d.CreatedAt = created.UTC()
		decisions = append(decisions, d)
	}
	return decisions, rows.Err()
}

func (r *TrackerRepository) CreateWorkflow(ctx context.Context, w tracker.WorkflowExecution) error {
	steps, _ := json.Marshal(w.StepsCompleted)
	_, err := r.pool.Exec(ctx, `
INSERT INTO workflow_executions (execution_id, strategy_selected, user_goal, current_step, status,
	steps_completed, jobs_discovered, jobs_applied, connections_made, resumes_generated,
	started_at, completed_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`, w.ExecutionID, w.StrategySelected, nullIfEmpty(w.UserGoal), nullIfEmpty(w.CurrentStep), nullIfEmpty(w.Status),
		steps, w.JobsDiscovered, w.JobsApplied, w.ConnectionsMade, w.ResumesGenerated,
		w.StartedAt, w.CompletedAt, w.UpdatedAt)
	return err
}

func (r *TrackerRepository) UpdateWorkflow(ctx context.Context, w tracker.WorkflowExecution) error {
	steps, _ := json.Marshal(w.StepsCompleted)
	tag, err := r.pool.Exec(ctx, `
UPDATE workflow_executions SET current_step = $2, status = $3, steps_completed = $4,
	jobs_discovered = $5, jobs_applied = $6, connections_made = $7, resumes_generated = $8,
	completed_at = $9, updated_at = $10
WHERE execution_id = $1
`, w.ExecutionID, nullIfEmpty(w.CurrentStep), nullIfEmpty(w.Status), steps,
		w.JobsDiscovered, w.JobsApplied, w.ConnectionsMade, w.ResumesGenerated, w.CompletedAt, w.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return tracker.ErrNotFound
	}
	return nil
}

func (r *TrackerRepository) GetWorkflow(ctx context.Context, id uuid.UUID) (tracker.WorkflowExecution, error) {
	row := r.pool.QueryRow(ctx, `
SELECT execution_id, strategy_selected, user_goal, current_step, status, steps_completed,
	jobs_discovered, jobs_applied, connections_made, resumes_generated, started_at, completed_at, updated_at
FROM workflow_executions WHERE execution_id = $1
`, id)
	w, err := scanWorkflow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tracker.WorkflowExecution{}, tracker.ErrNotFound
		}
		return tracker.WorkflowExecution{}, err
	}
	return w, nil
}

func (r *TrackerRepository) ListWorkflows(ctx context.Context, limit, offset int) ([]tracker.WorkflowExecution, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT execution_id, strategy_selected, user_goal, current_step, status, steps_completed,
	jobs_discovered, jobs_applied, connections_made, resumes_generated, started_at, completed_at, updated_at
FROM workflow_executions
ORDER BY started_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	workflows := []tracker.WorkflowExecution{}
	for rows.Next() {
		w, err := scanWorkflow(rows)
		if err != nil {
			return nil, err
		}
		workflows = append(workflows, w)
	}
	return workflows, rows.Err()
}

func scanWorkflow(row pgx.Row) (tracker.WorkflowExecution, error) {
	var w tracker.WorkflowExecution
	var goal, step, status *string
	var steps []byte
	var started, updated time.Time
	if err := row.Scan(&w.ExecutionID, &w.StrategySelected, &goal, &step, &status, &steps,
		&w.JobsDiscovered, &w.JobsApplied, &w.ConnectionsMade, &w.ResumesGenerated,
		&started, &w.CompletedAt, &updated); err != nil {
		return tracker.WorkflowExecution{}, err
	}
	w.UserGoal = deref(goal)
	w.CurrentStep = deref(step)
	w.Status = deref(status)
	_ = json.Unmarshal(steps, &w.StepsCompleted)
	w.StartedAt = started.UTC()
	w.UpdatedAt = updated.UTC()
	return w, nil
}

// Preferences are stored as one JSONB blob per user: the shape is wide,
// evolves often and is only ever read back whole.
func (r *TrackerRepository) UpsertPreference(ctx context.Context, p tracker.UserPreference) error {
	prefs, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO user_preferences (user_id, prefs, created_at, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE SET prefs = EXCLUDED.prefs, updated_at = EXCLUDED.updated_at
`, p.UserID, prefs, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *TrackerRepository) GetPreference(ctx context.Context, userID uuid.UUID) (tracker.UserPreference, error) {
	row := r.pool.QueryRow(ctx, `
SELECT prefs FROM user_preferences WHERE user_id = $1
`, userID)
	var prefs []byte
	if err := row.Scan(&prefs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tracker.UserPreference{}, tracker.ErrNotFound
		}
		return tracker.UserPreference{}, err
	}
	var p tracker.UserPreference
	if err := json.Unmarshal(prefs, &p); err != nil {
		return tracker.UserPreference{}, err
	}
	p.UserID = userID
	return p, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

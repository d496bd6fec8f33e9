package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meinc/jobagent/pkg/profile"
)

// ProfileRepository stores resume profile documents as JSONB.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) (*ProfileRepository, error) {
	r := &ProfileRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ProfileRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS resume_profiles (
	profile_id UUID PRIMARY KEY,
	profile_name TEXT,
	content JSONB NOT NULL DEFAULT '{}',
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *ProfileRepository) Create(ctx context.Context, p profile.ResumeProfile) error {
	if p.ProfileID == uuid.Nil {
		p.ProfileID = uuid.New()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	contentJSON, err := json.Marshal(p.Content)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO resume_profiles (profile_id, profile_name, content, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, p.ProfileID, p.ProfileName, contentJSON, p.IsActive, p.CreatedAt, p.UpdatedAt)
	return err
}

// GetByID resolves soft-deleted profiles too; only listings filter on
// is_active.
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (profile.ResumeProfile, error) {
	row := r.pool.QueryRow(ctx, `
SELECT profile_id, profile_name, content, is_active, created_at, updated_at
FROM resume_profiles WHERE profile_id = $1
`, id)
	return scanProfile(row)
}

func (r *ProfileRepository) ListActive(ctx context.Context, limit, offset int) ([]profile.ListItem, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT profile_id, profile_name, created_at
FROM resume_profiles WHERE is_active = TRUE
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []profile.ListItem{}
	for rows.Next() {
		var it profile.ListItem
		var created time.Time
		if err := rows.Scan(&it.ProfileID, &it.ProfileName, &created); err != nil {
			return nil, err
		}
		it.CreatedAt = created.UTC()
		items = append(items, it)
	}
	return items, rows.Err()
}

// ReplaceKeys applies shallow top-level key replacement to the stored
// content inside one transaction: the row is locked, the named keys are
// replaced wholesale (never deep-merged) and the document is written back
// with a refreshed updated_at.
func (r *ProfileRepository) ReplaceKeys(ctx context.Context, id uuid.UUID, updates map[string]any) (profile.ResumeProfile, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return profile.ResumeProfile{}, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
SELECT profile_id, profile_name, content, is_active, created_at, updated_at
FROM resume_profiles WHERE profile_id = $1
FOR UPDATE
`, id)
	p, err := scanProfile(row)
	if err != nil {
		return profile.ResumeProfile{}, err
	}

	if p.Content == nil {
		p.Content = profile.Document{}
	}
	for key, value := range updates {
		p.Content[key] = value
	}
	p.UpdatedAt = time.Now().UTC()

	contentJSON, err := json.Marshal(p.Content)
	if err != nil {
		return profile.ResumeProfile{}, err
	}
	if _, err := tx.Exec(ctx, `
UPDATE resume_profiles SET content = $2, updated_at = $3 WHERE profile_id = $1
`, id, contentJSON, p.UpdatedAt); err != nil {
		return profile.ResumeProfile{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return profile.ResumeProfile{}, err
	}
	return p, nil
}

func (r *ProfileRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE resume_profiles SET is_active = $2, updated_at = $3 WHERE profile_id = $1
`, id, active, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func scanProfile(row pgx.Row) (profile.ResumeProfile, error) {
	var p profile.ResumeProfile
	var contentBytes []byte
	var created, updated time.Time
	if err := row.Scan(&p.ProfileID, &p.ProfileName, &contentBytes, &p.IsActive, &created, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.ResumeProfile{}, profile.ErrNotFound
		}
		return profile.ResumeProfile{}, err
	}
	if err := json.Unmarshal(contentBytes, &p.Content); err != nil {
		return profile.ResumeProfile{}, err
	}
	p.CreatedAt = created.UTC()
	p.UpdatedAt = updated.UTC()
	return p, nil
}

package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Document is the semi-structured resume content stored as JSONB.
// Recognized top-level keys: basics, work_experience, education, skills,
// certifications, projects, meta. Unknown keys (e.g. _raw_text,
// _parse_error) are legal and preserved as-is.
type Document map[string]any

// Name returns basics.name if present.
func (d Document) Name() string {
	basics, ok := d["basics"].(map[string]any)
	if !ok {
		return ""
	}
	name, _ := basics["name"].(string)
	return name
}

// ResumeProfile is the stored document plus lifecycle metadata.
type ResumeProfile struct {
	ProfileID   uuid.UUID `json:"profile_id"`
	ProfileName string    `json:"profile_name"`
	Content     Document  `json:"content"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListItem is the listing projection: no content.
type ListItem struct {
	ProfileID   uuid.UUID `json:"profile_id"`
	ProfileName string    `json:"profile_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Common errors used by repository/use cases.
var (
	ErrNotFound          = errors.New("profile not found")
	ErrEmptyDocument     = errors.New("no extractable text in document")
	ErrUnsupportedFormat = errors.New("unsupported file format: only pdf and docx are allowed")
	ErrExtraction        = errors.New("could not extract text")
)

// Repository is the persistence port for resume profiles.
//
// Soft delete only hides a profile from ListActive: GetByID and ReplaceKeys
// still resolve soft-deleted rows. Nothing is ever hard-deleted.
type Repository interface {
	Create(ctx context.Context, p ResumeProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (ResumeProfile, error)
	ListActive(ctx context.Context, limit, offset int) ([]ListItem, error)
	// ReplaceKeys replaces each named top-level content key with the given
	// value inside a single transaction and returns the updated profile.
	ReplaceKeys(ctx context.Context, id uuid.UUID, updates map[string]any) (ResumeProfile, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UseCase describes the application scenarios around resume profiles.
type UseCase interface {
	UploadAndParse(ctx context.Context, filename string, data []byte) (ResumeProfile, error)
	CreateEmpty(ctx context.Context, name string) (ResumeProfile, error)
	Get(ctx context.Context, id uuid.UUID) (ResumeProfile, error)
	List(ctx context.Context, limit, offset int) ([]ListItem, error)
	UpdateContent(ctx context.Context, id uuid.UUID, updates map[string]any) (ResumeProfile, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// Auditor records agent decisions for the audit trail. Best-effort: a
// failing auditor never fails the request.
type Auditor interface {
	RecordParse(ctx context.Context, profileID uuid.UUID, degraded bool, detail string)
}

// DocumentExtractor turns resume file bytes into a structured Document.
type DocumentExtractor interface {
	ExtractFile(ctx context.Context, filename string, data []byte) (Document, error)
}

type service struct {
	repo      Repository
	extractor DocumentExtractor
	audit     Auditor // may be nil
}

// NewService returns the default UseCase implementation.
func NewService(repo Repository, extractor DocumentExtractor, audit Auditor) UseCase {
	return &service{repo: repo, extractor: extractor, audit: audit}
}

func (s *service) UploadAndParse(ctx context.Context, filename string, data []byte) (ResumeProfile, error) {
	doc, err := s.extractor.ExtractFile(ctx, filename, data)
	if err != nil {
		return ResumeProfile{}, err
	}

	name := doc.Name()
	if name == "" {
		name = "Unnamed Profile"
	}
	now := time.Now().UTC()
	p := ResumeProfile{
		ProfileID:   uuid.New(),
		ProfileName: name,
		Content:     doc,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return ResumeProfile{}, err
	}

	if s.audit != nil {
		detail, degraded := "", false
		if msg, ok := doc["_parse_error"].(string); ok {
			detail, degraded = msg, true
		}
		s.audit.RecordParse(ctx, p.ProfileID, degraded, detail)
	}
	return p, nil
}

func (s *service) CreateEmpty(ctx context.Context, name string) (ResumeProfile, error) {
	now := time.Now().UTC()
	p := ResumeProfile{
		ProfileID:   uuid.New(),
		ProfileName: name,
		Content: Document{
			"basics":          map[string]any{},
			"work_experience": []any{},
			"education":       []any{},
			"skills":          map[string]any{},
		},
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return ResumeProfile{}, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (ResumeProfile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]ListItem, error) {
	return s.repo.ListActive(ctx, limit, offset)
}

func (s *service) UpdateContent(ctx context.Context, id uuid.UUID, updates map[string]any) (ResumeProfile, error) {
	return s.repo.ReplaceKeys(ctx, id, updates)
}

func (s *service) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, false)
}

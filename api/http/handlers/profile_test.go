package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/meinc/jobagent/pkg/profile"
)

// stubProfileUseCase returns canned values for handler tests.
type stubProfileUseCase struct {
	profiles map[uuid.UUID]profile.ResumeProfile
}

func newStubProfileUseCase() *stubProfileUseCase {
	return &stubProfileUseCase{profiles: map[uuid.UUID]profile.ResumeProfile{}}
}

func (s *stubProfileUseCase) UploadAndParse(ctx context.Context, filename string, data []byte) (profile.ResumeProfile, error) {
	return profile.ResumeProfile{}, profile.ErrEmptyDocument
}

func (s *stubProfileUseCase) CreateEmpty(ctx context.Context, name string) (profile.ResumeProfile, error) {
	p := profile.ResumeProfile{ProfileID: uuid.New(), ProfileName: name, Content: profile.Document{}, IsActive: true}
	s.profiles[p.ProfileID] = p
	return p, nil
}

func (s *stubProfileUseCase) Get(ctx context.Context, id uuid.UUID) (profile.ResumeProfile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return profile.ResumeProfile{}, profile.ErrNotFound
	}
	return p, nil
}

func (s *stubProfileUseCase) List(ctx context.Context, limit, offset int) ([]profile.ListItem, error) {
	return []profile.ListItem{}, nil
}

func (s *stubProfileUseCase) UpdateContent(ctx context.Context, id uuid.UUID, updates map[string]any) (profile.ResumeProfile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return profile.ResumeProfile{}, profile.ErrNotFound
	}
	for k, v := range updates {
		p.Content[k] = v
	}
	s.profiles[id] = p
	return p, nil
}

func (s *stubProfileUseCase) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.profiles[id]; !ok {
		return profile.ErrNotFound
	}
	return nil
}

func newProfileApp(svc profile.UseCase) *fiber.App {
	app := fiber.New()
	h := NewProfileHandler(svc, 15)
	app.Post("/api/resume/", h.Create)
	app.Get("/api/resume/:id", h.Get)
	app.Patch("/api/resume/:id", h.Patch)
	app.Delete("/api/resume/:id", h.Delete)
	return app
}

func TestProfileGetInvalidID(t *testing.T) {
	app := newProfileApp(newStubProfileUseCase())

	req := httptest.NewRequest(http.MethodGet, "/api/resume/not-a-uuid", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestProfileGetNotFound(t *testing.T) {
	app := newProfileApp(newStubProfileUseCase())

	req := httptest.NewRequest(http.MethodGet, "/api/resume/"+uuid.NewString(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestProfileCreateRequiresName(t *testing.T) {
	app := newProfileApp(newStubProfileUseCase())

	req := httptest.NewRequest(http.MethodPost, "/api/resume/", strings.NewReader(`{"name": "  "}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestProfileCreateAndGet(t *testing.T) {
	svc := newStubProfileUseCase()
	app := newProfileApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/resume/", strings.NewReader(`{"name": "Draft"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	var body resumeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ProfileName != "Draft" || body.ProfileID == "" {
		t.Errorf("body = %+v", body)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/resume/"+body.ProfileID, nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestProfilePatchRejectsEmptyBody(t *testing.T) {
	svc := newStubProfileUseCase()
	app := newProfileApp(svc)
	p, _ := svc.CreateEmpty(context.Background(), "Draft")

	req := httptest.NewRequest(http.MethodPatch, "/api/resume/"+p.ProfileID.String(), strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestProfileDelete(t *testing.T) {
	svc := newStubProfileUseCase()
	app := newProfileApp(svc)
	p, _ := svc.CreateEmpty(context.Background(), "Draft")

	req := httptest.NewRequest(http.MethodDelete, "/api/resume/"+p.ProfileID.String(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["message"] != "Profile deleted" || body["profile_id"] != p.ProfileID.String() {
		t.Errorf("body = %v", body)
	}
}

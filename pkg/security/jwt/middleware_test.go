package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/meinc/jobagent/pkg/auth"
)

func newProtectedApp(secret, issuer string, got *uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Get("/me", AuthRequired(secret, issuer), func(c *fiber.Ctx) error {
		id, ok := Subject(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		*got = id
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	userID := uuid.New()
	gen := NewGenerator("secret", "job-agent", time.Minute)
	token, err := gen.Generate(context.Background(), auth.User{ID: userID})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var got uuid.UUID
	app := newProtectedApp("secret", "job-agent", &got)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got != userID {
		t.Errorf("Subject = %s, want %s", got, userID)
	}
}

func TestAuthRequiredRejections(t *testing.T) {
	ctx := context.Background()
	otherIssuer, _ := NewGenerator("secret", "someone-else", time.Minute).Generate(ctx, auth.User{ID: uuid.New()})
	wrongKey, _ := NewGenerator("other-secret", "job-agent", time.Minute).Generate(ctx, auth.User{ID: uuid.New()})
	expired, _ := NewGenerator("secret", "job-agent", -time.Minute).Generate(ctx, auth.User{ID: uuid.New()})

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong issuer", "Bearer " + otherIssuer},
		{"wrong key", "Bearer " + wrongKey},
		{"expired", "Bearer " + expired},
	}
	var got uuid.UUID
	app := newProtectedApp("secret", "job-agent", &got)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
		})
	}
}

func TestSubjectAbsentWithoutMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/open", func(c *fiber.Ctx) error {
		if _, ok := Subject(c); ok {
			t.Error("Subject set on an unauthenticated request")
		}
		return c.SendStatus(http.StatusOK)
	})
	if _, err := app.Test(httptest.NewRequest(http.MethodGet, "/open", nil)); err != nil {
		t.Fatalf("app.Test: %v", err)
	}
}

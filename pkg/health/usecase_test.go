package health

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeChecker struct {
	name string
	err  error
}

func (c *fakeChecker) Name() string                    { return c.name }
func (c *fakeChecker) Check(ctx context.Context) error { return c.err }

func TestReadyAllHealthy(t *testing.T) {
	svc := NewService(&fakeChecker{name: "postgres"}, &fakeChecker{name: "cache"})
	if err := svc.Ready(context.Background()); err != nil {
		t.Fatalf("Ready: %v", err)
	}
}

func TestReadyNamesFailingDependency(t *testing.T) {
	pingErr := errors.New("connection refused")
	svc := NewService(
		&fakeChecker{name: "postgres"},
		&fakeChecker{name: "llm", err: pingErr},
	)
	err := svc.Ready(context.Background())
	if err == nil {
		t.Fatal("Ready must fail when a dependency is down")
	}
	if !errors.Is(err, pingErr) {
		t.Errorf("err = %v, want wrapped ping error", err)
	}
	if !strings.Contains(err.Error(), "llm") {
		t.Errorf("err = %v, must name the failing checker", err)
	}
}

func TestReadyNoCheckers(t *testing.T) {
	if err := NewService().Ready(context.Background()); err != nil {
		t.Fatalf("Ready with no checkers: %v", err)
	}
}

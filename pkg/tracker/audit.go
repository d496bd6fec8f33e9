package tracker

import (
	"context"

	"github.com/google/uuid"
)

// ParseAuditor records extraction outcomes as Decision rows so the agent's
// choices stay inspectable after the fact. Implements profile.Auditor.
type ParseAuditor struct {
	svc UseCase
}

func NewParseAuditor(svc UseCase) *ParseAuditor {
	return &ParseAuditor{svc: svc}
}

func (a *ParseAuditor) RecordParse(ctx context.Context, profileID uuid.UUID, degraded bool, detail string) {
	confidence := 0.9
	reasoning := "model reply parsed into the v1 document schema"
	outcome := "parsed"
	if degraded {
		confidence = 0.1
		reasoning = "model reply failed strict JSON parsing; stored degraded document"
		outcome = "degraded"
	}
	d := Decision{
		Agent:            "extractor",
		ActionTaken:      "parse_resume",
		Reasoning:        reasoning,
		ConfidenceScore:  &confidence,
		Context:          map[string]any{"parse_error": detail},
		Outcome:          outcome,
		RelatedProfileID: &profileID,
	}
	// Best-effort: the audit trail must never fail the upload.
	_, _ = a.svc.CreateDecision(ctx, d)
}

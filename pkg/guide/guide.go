package guide

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/meinc/jobagent/pkg/llm"
)

// Critique is the result of analyzing one bullet point against the STAR
// (Situation, Task, Action, Result) rubric.
type Critique struct {
	MissingComponents []string `json:"missing_components"`
	Critique          string   `json:"critique"`
	Question          string   `json:"question"`
}

// Refinement is a rewritten bullet point plus the rationale.
type Refinement struct {
	RefinedText string `json:"refined_text"`
	Reasoning   string `json:"reasoning"`
}

// UseCase describes the bullet-point coaching scenarios.
type UseCase interface {
	AnalyzeBullet(ctx context.Context, text, domain string, yearsExperience int) (Critique, error)
	RefineBullet(ctx context.Context, original, answer, domain string) (Refinement, error)
}

type service struct {
	llm llm.ChatModel
}

// NewService returns the default UseCase implementation.
func NewService(model llm.ChatModel) UseCase {
	return &service{llm: model}
}

const critiqueSystem = `You are an expert resume coach. Analyze a resume bullet point using the STAR (Situation, Task, Action, Result) methodology. Identify missing components and vague language.

Return ONLY a JSON object with this structure:
{
  "missing_star_components": ["STAR components missing, e.g. Result, Action"],
  "weakness_explanation": "Brief explanation of why the bullet point is weak",
  "follow_up_question": "A specific, probing question to get the missing details"
}`

const rewriteSystem = `You are an expert resume coach. Rewrite a resume bullet point to be high-impact, using strong action verbs and metrics.

Return ONLY a JSON object with this structure:
{
  "refined_bullet": "The polished, high-impact bullet point",
  "improvement_reason": "Why this version is better"
}`

type critiqueReply struct {
	MissingStarComponents any    `json:"missing_star_components"`
	WeaknessExplanation   string `json:"weakness_explanation"`
	FollowUpQuestion      string `json:"follow_up_question"`
}

type rewriteReply struct {
	RefinedBullet     string `json:"refined_bullet"`
	ImprovementReason string `json:"improvement_reason"`
}

func (s *service) AnalyzeBullet(ctx context.Context, text, domain string, yearsExperience int) (Critique, error) {
	user := fmt.Sprintf(
		"Resume bullet point:\n<<<\n%s\n>>>\n\nProfessional domain: %s\nYears of experience: %d\n\nReturn ONLY the JSON object.",
		text, domain, yearsExperience,
	)
	raw, err := s.llm.Ask(ctx, critiqueSystem, user)
	if err != nil {
		return Critique{}, err
	}

	var reply critiqueReply
	if err := unmarshalReply(raw, &reply); err != nil {
		return Critique{}, err
	}
	return Critique{
		// Models sometimes emit the list as a stringified literal;
		// normalizeList repairs that without executing anything.
		MissingComponents: normalizeList(reply.MissingStarComponents),
		Critique:          reply.WeaknessExplanation,
		Question:          reply.FollowUpQuestion,
	}, nil
}

func (s *service) RefineBullet(ctx context.Context, original, answer, domain string) (Refinement, error) {
	user := fmt.Sprintf(
		"Original bullet point:\n<<<\n%s\n>>>\n\nUser's answer to the follow-up question:\n<<<\n%s\n>>>\n\nProfessional domain: %s\n\nReturn ONLY the JSON object.",
		original, answer, domain,
	)
	raw, err := s.llm.Ask(ctx, rewriteSystem, user)
	if err != nil {
		return Refinement{}, err
	}

	var reply rewriteReply
	if err := unmarshalReply(raw, &reply); err != nil {
		return Refinement{}, err
	}
	return Refinement{
		RefinedText: reply.RefinedBullet,
		Reasoning:   reply.ImprovementReason,
	}, nil
}

// unmarshalReply parses a model reply as JSON, retrying on the outermost
// brace pair when the model wrapped the object in prose or a code fence.
func unmarshalReply(raw string, v any) error {
	raw = strings.TrimSpace(raw)
	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}
	if i := strings.Index(raw, "{"); i >= 0 {
		if j := strings.LastIndex(raw, "}"); j > i {
			if err := json.Unmarshal([]byte(raw[i:j+1]), v); err == nil {
				return nil
			}
		}
	}
	return errors.New("could not parse model reply as JSON")
}

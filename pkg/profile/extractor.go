package profile

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/meinc/jobagent/pkg/llm"
)

// Extractor turns resume file bytes into a structured Document: text
// extraction, one completion request, then parse/repair of the reply.
//
// The pipeline never fails on malformed model output. A reply that cannot
// be parsed degrades to a minimal valid document carrying diagnostics, so
// callers always receive something storable. Only empty input and
// transport/backend errors are surfaced.
type Extractor struct {
	llm        llm.ChatModel
	thresholds ArchetypeThresholds
}

func NewExtractor(model llm.ChatModel, thresholds ArchetypeThresholds) *Extractor {
	return &Extractor{llm: model, thresholds: thresholds}
}

// ExtractFile is the main entry point: file bytes -> structured Document.
func (e *Extractor) ExtractFile(ctx context.Context, filename string, data []byte) (Document, error) {
	rawText, err := ExtractText(filename, data)
	if err != nil {
		return nil, err
	}
	return e.ExtractFromText(ctx, rawText)
}

// ExtractFromText runs the LLM stage over an already-extracted transcript.
func (e *Extractor) ExtractFromText(ctx context.Context, rawText string) (Document, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, ErrEmptyDocument
	}

	raw, err := e.llm.AskJSON(ctx, extractionSystemPrompt(e.thresholds), extractionUserPrompt(rawText))
	if err != nil {
		return nil, err
	}

	doc := parseCompletion(raw, rawText)
	// Keep the transcript on the document for reference/debugging.
	doc["_raw_text"] = rawText
	return doc, nil
}

// parseCompletion coerces the model reply into a Document, falling back to
// a degraded placeholder document when strict parsing fails.
func parseCompletion(raw, rawText string) Document {
	cleaned := stripCodeFence(strings.TrimSpace(raw))

	var doc Document
	if err := json.Unmarshal([]byte(cleaned), &doc); err == nil && doc != nil {
		return doc
	} else if err != nil {
		return degradedDocument(err.Error(), raw, rawText)
	}
	return degradedDocument("model returned JSON null", raw, rawText)
}

// degradedDocument is the valid-but-placeholder document returned when the
// reply fails to parse. Diagnostics ride along in underscore-prefixed keys.
func degradedDocument(parseErr, rawResponse, rawText string) Document {
	return Document{
		"basics": map[string]any{
			"name":    "Parse Error",
			"summary": truncate(rawText, 500),
		},
		"work_experience": []any{},
		"education":       []any{},
		"skills":          map[string]any{},
		"projects":        []any{},
		"certifications":  []any{},
		"meta": map[string]any{
			"years_experience": 0,
			"core_archetype":   "Individual Contributor",
		},
		"_parse_error":  parseErr,
		"_raw_response": truncate(rawResponse, 2000),
	}
}

// stripCodeFence removes a fenced code-block wrapper if the model disobeyed
// the "JSON only" instruction. Only the first fence line and a matching
// trailing fence line are dropped.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "```" {
		lines = lines[:n-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// truncate cuts after max runes, never mid-sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

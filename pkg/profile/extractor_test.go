package profile

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

// stubModel returns a canned reply and counts calls.
type stubModel struct {
	reply string
	err   error
	calls int
}

func (m *stubModel) Ask(ctx context.Context, system, user string) (string, error) {
	m.calls++
	return m.reply, m.err
}

func (m *stubModel) AskJSON(ctx context.Context, system, user string) (string, error) {
	m.calls++
	return m.reply, m.err
}

const validReply = `{
	"basics": {"name": "Jane Doe", "email": "jane@example.com", "summary": "Engineer."},
	"work_experience": [{"company": "Acme", "title": "SWE"}],
	"education": [],
	"skills": {"technical": ["Go"]},
	"meta": {"years_experience": 7, "core_archetype": "Technical Leader"}
}`

func TestExtractFromTextValidReply(t *testing.T) {
	model := &stubModel{reply: validReply}
	e := NewExtractor(model, ArchetypeThresholds{SeniorYears: 5, ExecYears: 12})

	doc, err := e.ExtractFromText(context.Background(), "Jane Doe\nSoftware Engineer at Acme")
	if err != nil {
		t.Fatalf("ExtractFromText: %v", err)
	}
	if model.calls != 1 {
		t.Fatalf("expected one completion call, got %d", model.calls)
	}
	if got := doc.Name(); got != "Jane Doe" {
		t.Errorf("Name() = %q, want %q", got, "Jane Doe")
	}
	if _, ok := doc["_parse_error"]; ok {
		t.Error("valid reply should not carry _parse_error")
	}
	if raw, _ := doc["_raw_text"].(string); !strings.Contains(raw, "Acme") {
		t.Errorf("_raw_text not preserved: %q", raw)
	}
}

func TestExtractFromTextStripsCodeFence(t *testing.T) {
	model := &stubModel{reply: "```json\n" + validReply + "\n```"}
	e := NewExtractor(model, ArchetypeThresholds{SeniorYears: 5, ExecYears: 12})

	doc, err := e.ExtractFromText(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("ExtractFromText: %v", err)
	}
	if got := doc.Name(); got != "Jane Doe" {
		t.Errorf("fenced reply not parsed, Name() = %q", got)
	}
}

func TestExtractFromTextDegradedOnMalformedReply(t *testing.T) {
	model := &stubModel{reply: "I'm sorry, I cannot produce JSON for this."}
	e := NewExtractor(model, ArchetypeThresholds{SeniorYears: 5, ExecYears: 12})

	rawText := strings.Repeat("x", 600)
	doc, err := e.ExtractFromText(context.Background(), rawText)
	if err != nil {
		t.Fatalf("malformed reply must degrade, not error: %v", err)
	}
	if got := doc.Name(); got != "Parse Error" {
		t.Errorf("Name() = %q, want %q", got, "Parse Error")
	}
	basics := doc["basics"].(map[string]any)
	if summary, _ := basics["summary"].(string); len(summary) != 500 {
		t.Errorf("summary length = %d, want 500", len(summary))
	}
	if _, ok := doc["_parse_error"].(string); !ok {
		t.Error("degraded document must carry _parse_error")
	}
	if resp, _ := doc["_raw_response"].(string); resp == "" {
		t.Error("degraded document must carry _raw_response")
	}
	meta := doc["meta"].(map[string]any)
	if meta["core_archetype"] != "Individual Contributor" {
		t.Errorf("core_archetype = %v", meta["core_archetype"])
	}
	if doc["_raw_text"] != rawText {
		t.Error("degraded document must still carry _raw_text")
	}
}

func TestExtractFromTextEmptyInput(t *testing.T) {
	model := &stubModel{reply: validReply}
	e := NewExtractor(model, ArchetypeThresholds{SeniorYears: 5, ExecYears: 12})

	if _, err := e.ExtractFromText(context.Background(), "  \n\t "); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("err = %v, want ErrEmptyDocument", err)
	}
	if model.calls != 0 {
		t.Errorf("empty input must not reach the model, got %d calls", model.calls)
	}
}

func TestExtractFromTextPropagatesBackendError(t *testing.T) {
	backendErr := errors.New("upstream 503")
	model := &stubModel{err: backendErr}
	e := NewExtractor(model, ArchetypeThresholds{SeniorYears: 5, ExecYears: 12})

	if _, err := e.ExtractFromText(context.Background(), "some resume text"); !errors.Is(err, backendErr) {
		t.Fatalf("err = %v, want backend error", err)
	}
}

func TestExtractFileUnsupportedFormat(t *testing.T) {
	model := &stubModel{reply: validReply}
	e := NewExtractor(model, ArchetypeThresholds{SeniorYears: 5, ExecYears: 12})

	if _, err := e.ExtractFile(context.Background(), "resume.txt", []byte("plain")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
	if model.calls != 0 {
		t.Errorf("rejected file must not reach the model, got %d calls", model.calls)
	}
}

func TestDegradedSummaryKeepsRuneBoundaries(t *testing.T) {
	model := &stubModel{reply: "no json in this reply"}
	e := NewExtractor(model, ArchetypeThresholds{SeniorYears: 5, ExecYears: 12})

	rawText := strings.Repeat("ü", 600)
	doc, err := e.ExtractFromText(context.Background(), rawText)
	if err != nil {
		t.Fatalf("ExtractFromText: %v", err)
	}
	basics := doc["basics"].(map[string]any)
	summary, _ := basics["summary"].(string)
	if !utf8.ValidString(summary) {
		t.Error("summary cut mid-rune")
	}
	if n := utf8.RuneCountInString(summary); n != 500 {
		t.Errorf("summary rune count = %d, want 500", n)
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct{ in, want string }{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"```json\n{\"a\":1}", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := stripCodeFence(tc.in); got != tc.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

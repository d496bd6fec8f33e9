package guide

import (
	"errors"
	"strings"
)

// parseLiteralList parses a stringified list such as "['Result', 'Action']"
// into its string elements. It accepts single or double quoted elements and
// bare words; it is a narrow scanner, not an expression evaluator, so
// nothing is ever executed or interpreted beyond list/string syntax.
func parseLiteralList(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, errors.New("not a list literal")
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return []string{}, nil
	}

	var (
		out     []string
		cur     strings.Builder
		quote   byte
		quoted  bool
		escaped bool
	)
	flush := func() error {
		item := strings.TrimSpace(cur.String())
		cur.Reset()
		if quoted {
			quoted = false
			out = append(out, item)
			return nil
		}
		if item == "" {
			return errors.New("empty list element")
		}
		out = append(out, item)
		return nil
	}
	for i := 0; i < len(inner); i++ {
		ch := inner[i]
		switch {
		case escaped:
			cur.WriteByte(ch)
			escaped = false
		case quote != 0:
			switch ch {
			case '\\':
				escaped = true
			case quote:
				quote = 0
			default:
				cur.WriteByte(ch)
			}
		case ch == '\'' || ch == '"':
			if strings.TrimSpace(cur.String()) != "" {
				return nil, errors.New("quote inside unquoted element")
			}
			cur.Reset()
			quote = ch
			quoted = true
		case ch == ',':
			if err := flush(); err != nil {
				return nil, err
			}
		case ch == '[' || ch == ']':
			return nil, errors.New("nested lists are not supported")
		default:
			cur.WriteByte(ch)
		}
	}
	if quote != 0 {
		return nil, errors.New("unterminated quote")
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

// normalizeList coerces a heterogeneous model field into a real string
// list. JSON arrays pass through, stringified lists are parsed, any other
// non-empty string wraps into a single-element list, nil/empty becomes [].
// Repair failures are absorbed, never surfaced.
func normalizeList(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return []string{}
		}
		if parsed, err := parseLiteralList(s); err == nil {
			return parsed
		}
		return []string{s}
	default:
		return []string{}
	}
}

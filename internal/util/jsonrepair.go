package util

import "strings"

// StripCodeFence removes markdown code block wrappers from model replies.
// LLMs often wrap JSON in ```json ... ``` blocks even when told not to.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// RepairJSONLike applies a bounded, ordered list of syntactic repairs to text
// that is supposed to be JSON but may be truncated: wrap a bare field list in
// array delimiters, close an unterminated string, close unclosed brackets.
// Each rule runs at most once, and running the function on already-balanced
// input returns it unchanged.
func RepairJSONLike(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return s
	}
	s = wrapBareList(s)
	s = closeOpenString(s)
	s = closeOpenBrackets(s)
	return s
}

// wrapBareList wraps a reply that starts mid-value (a bare list of fields
// with no surrounding delimiters) in array brackets.
func wrapBareList(s string) string {
	switch s[0] {
	case '{', '[':
		return s
	case '"':
		return "[" + s + "]"
	default:
		return s
	}
}

// closeOpenString appends a closing quote when the text ends inside a string
// literal. Must run before bracket balancing, otherwise the appended closers
// would land inside the open string.
func closeOpenString(s string) string {
	inString := false
	escaped := false
	for _, r := range s {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		}
	}
	if inString {
		return s + `"`
	}
	return s
}

// closeOpenBrackets appends the closers for any unclosed { or [ in reverse
// nesting order. Assumes string literals are already balanced. Stray closers
// with no matching opener are left alone; this is a repair, not a validator.
func closeOpenBrackets(s string) string {
	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}

	var b strings.Builder
	b.WriteString(s)
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(stack[i])
	}
	return b.String()
}

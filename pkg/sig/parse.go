package sig

import (
	"fmt"
	"strings"
)

// MalformedSignatureError reports query text that does not spell a
// function type. It carries the original input for diagnostics.
type MalformedSignatureError struct {
	Input string
}

func (e *MalformedSignatureError) Error() string {
	return fmt.Sprintf("malformed function signature: %q", e.Input)
}

// Parse converts a textual function signature such as
//
//	std::vector<int>(const std::vector<int> &, size_t)
//
// into a Signature backed by this Storage. Nested parentheses (function
// pointers) and angle brackets (template argument lists) are tolerated in
// the argument list. Whitespace around tokens is trimmed; normalization
// happens eagerly. Fails with MalformedSignatureError when the input lacks
// a top-level '(' or its matching ')'.
func (s *Storage) Parse(input string) (Signature, error) {
	open := strings.IndexByte(input, '(')
	if open < 0 {
		return Signature{}, &MalformedSignatureError{Input: input}
	}
	close := matchingParen(input, open)
	if close < 0 {
		return Signature{}, &MalformedSignatureError{Input: input}
	}

	ret := strings.TrimSpace(input[:open])
	sig := Signature{
		Ret:     s.arena.Intern(ret),
		RetNorm: s.norm.Normalize(s.arena, ret),
	}

	params := strings.TrimSpace(input[open+1 : close])
	if params == "" {
		return sig, nil
	}

	// Count tokens first so the argument slices are sized exactly once;
	// appending as we go could reallocate mid-parse.
	s.spans = splitTopLevel(params, s.spans[:0])
	sig.Args = make([][]byte, 0, len(s.spans))
	sig.ArgsNorm = make([][]byte, 0, len(s.spans))
	for _, sp := range s.spans {
		tok := params[sp.start:sp.end]
		sig.Args = append(sig.Args, s.arena.Intern(tok))
		sig.ArgsNorm = append(sig.ArgsNorm, s.norm.Normalize(s.arena, tok))
	}
	return sig, nil
}

// matchingParen returns the index of the ')' closing the '(' at open,
// counting nesting so function-pointer arguments like "void (*)(int)" do
// not end the list early. Returns -1 if the input ends first.
func matchingParen(input string, open int) int {
	depth := 0
	for i := open; i < len(input); i++ {
		switch input[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel appends the trimmed, non-empty comma-separated token spans
// of params to spans. A comma separates only at nesting depth zero, where
// '(' and '<' raise the depth and ')' and '>' lower it, so template
// argument lists and function-pointer parameter lists stay whole.
func splitTopLevel(params string, spans []argSpan) []argSpan {
	depth := 0
	start := 0
	for i := 0; i <= len(params); i++ {
		if i < len(params) {
			switch params[i] {
			case '(', '<':
				depth++
				continue
			case ')', '>':
				depth--
				continue
			}
			if params[i] != ',' || depth != 0 {
				continue
			}
		}
		if sp, ok := trimSpan(params, start, i); ok {
			spans = append(spans, sp)
		}
		start = i + 1
	}
	return spans
}

// trimSpan shrinks [start, end) past surrounding whitespace; ok is false
// for all-whitespace tokens (such as one left by a trailing comma).
func trimSpan(s string, start, end int) (argSpan, bool) {
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	if start == end {
		return argSpan{}, false
	}
	return argSpan{start: start, end: end}, true
}

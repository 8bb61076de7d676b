// Package inspect is coogle's source inspector: it extracts function
// declarations from C/C++ source text, supplying the matching engine with
// already-separated return and argument type spellings plus file/line
// metadata. Extraction is lexical, not semantic; typedef aliases are
// resolved one file at a time, which covers the common
// "typedef int MyInt; MyInt foo();" case without a compiler.
package inspect

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/cloudlet-dev/coogle/pkg/types"
)

// declAnchorPattern finds "name(" occurrences; the surrounding analysis in
// scanText decides whether each one is actually a declaration.
const declAnchorPattern = `([A-Za-z_][A-Za-z0-9_]*)[ \t]*\(`

// stmtKeywords can never be a function name or appear in a return type.
var stmtKeywords = map[string]bool{
	"if": true, "else": true, "while": true, "for": true, "do": true,
	"switch": true, "case": true, "return": true, "goto": true,
	"sizeof": true, "typedef": true, "break": true, "continue": true,
	"new": true, "delete": true, "throw": true,
}

// storageClassWords are dropped from extracted return types.
var storageClassWords = map[string]bool{
	"static": true, "extern": true, "inline": true, "register": true,
	"_Noreturn": true, "constexpr": true, "virtual": true, "explicit": true,
	"friend": true,
}

// Inspector extracts function declarations from source content.
// Safe for concurrent use: the compiled pattern is read-only and all scan
// state is per-call.
type Inspector struct {
	anchor *regexp2.Regexp
}

// New compiles the declaration pattern and returns an Inspector.
func New() (*Inspector, error) {
	re, err := regexp2.Compile(declAnchorPattern, regexp2.RE2)
	if err != nil {
		return nil, fmt.Errorf("compiling declaration pattern: %w", err)
	}
	return &Inspector{anchor: re}, nil
}

// File extracts the function declarations of one source file. Extraction
// never fails: content that defeats the lexical scan simply yields fewer
// declarations.
func (ins *Inspector) File(path string, content []byte) []types.Declaration {
	text := string(sanitize(content))
	typedefs := collectTypedefs(text)

	var decls []types.Declaration
	depthPos, depth := 0, 0
	skipUntil := -1

	m, err := ins.anchor.FindStringMatch(text)
	for err == nil && m != nil {
		// Sanitized text is pure ASCII, so rune and byte offsets agree.
		idx := m.Index
		if idx < skipUntil {
			m, err = ins.anchor.FindNextMatch(m)
			continue
		}

		// Declarations live at brace depth zero; anything inside a body
		// or an aggregate is a call or a member.
		for ; depthPos < idx; depthPos++ {
			switch text[depthPos] {
			case '{':
				depth++
			case '}':
				depth--
			}
		}
		if depth != 0 {
			m, err = ins.anchor.FindNextMatch(m)
			continue
		}

		if d, end, ok := ins.declAt(text, m, typedefs); ok {
			d.File = path
			d.Line = types.LineOf(content, idx)
			decls = append(decls, d)
			skipUntil = end
		}
		m, err = ins.anchor.FindNextMatch(m)
	}
	return decls
}

// declAt validates the "name(" anchor at m as a function declaration and
// extracts it. Returns the declaration, the index just past the parameter
// list, and whether the anchor qualified.
func (ins *Inspector) declAt(text string, m *regexp2.Match, typedefs typedefTable) (types.Declaration, int, bool) {
	name := m.GroupByNumber(1).String()
	if stmtKeywords[name] {
		return types.Declaration{}, 0, false
	}

	open := m.Index + m.Length - 1
	closing := matchingParen(text, open)
	if closing < 0 {
		return types.Declaration{}, 0, false
	}

	// A declaration's parameter list is followed by ';' (prototype) or
	// '{' (definition). '(' would be a call returning a function pointer,
	// anything else is a call or macro-ish construct.
	switch nextNonSpace(text, closing+1) {
	case ';', '{':
	default:
		return types.Declaration{}, 0, false
	}

	ret, ok := returnSpelling(text, m.Index)
	if !ok {
		return types.Declaration{}, 0, false
	}

	args := argSpellings(text[open+1 : closing])
	for i, a := range args {
		args[i] = typedefs.resolve(a)
	}
	return types.Declaration{
		Name: name,
		Ret:  typedefs.resolve(ret),
		Args: args,
	}, closing + 1, true
}

// returnSpelling walks backward from the function name to recover the
// return type: everything since the previous declaration terminator,
// minus storage-class specifiers. An empty result means the anchor was a
// call, not a declaration.
func returnSpelling(text string, nameStart int) (string, bool) {
	start := nameStart
	for start > 0 {
		c := text[start-1]
		if isIdentByte(c) || c == '*' || c == '&' || c == '<' || c == '>' ||
			c == ',' || c == ':' || c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			start--
			continue
		}
		break
	}

	words := strings.Fields(text[start:nameStart])
	kept := words[:0]
	for _, w := range words {
		if storageClassWords[w] {
			continue
		}
		if stmtKeywords[strings.Trim(w, "*&")] {
			return "", false
		}
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, " "), true
}

// matchingParen returns the index of the ')' matching the '(' at open,
// or -1 if the text ends first.
func matchingParen(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
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

// nextNonSpace returns the first byte at or after i that is not
// whitespace, or 0 at end of text.
func nextNonSpace(text string, i int) byte {
	for ; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return text[i]
		}
	}
	return 0
}

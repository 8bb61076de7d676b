package inspect

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// maxTypedefDepth bounds alias chain resolution (typedef A B; typedef B C;
// ...). Deeper or cyclic chains stop resolving at the bound.
const maxTypedefDepth = 8

// typedefRe captures simple object-like typedefs: "typedef <type> <name>;".
// Function-pointer and array typedefs are out of reach of lexical
// extraction and are left unresolved.
var typedefRe = regexp2.MustCompile(
	`(?m)^[ \t]*typedef[ \t]+([A-Za-z_][A-Za-z0-9_:<>,* \t]*?)[ \t]*([*][* \t]*)?([A-Za-z_][A-Za-z0-9_]*)[ \t]*;`,
	regexp2.Multiline)

// typedefTable maps alias names to their underlying type spellings for one
// source file.
type typedefTable map[string]string

// collectTypedefs scans sanitized source text for typedef declarations.
func collectTypedefs(text string) typedefTable {
	table := typedefTable{}
	m, err := typedefRe.FindStringMatch(text)
	for err == nil && m != nil {
		body := strings.TrimSpace(m.GroupByNumber(1).String())
		name := m.GroupByNumber(3).String()
		// Pointer stars between body and name belong to the alias.
		if stars := strings.Count(m.GroupByNumber(2).String(), "*"); stars > 0 {
			body += strings.Repeat("*", stars)
		}
		if body != "" {
			table[name] = body
		}
		m, err = typedefRe.FindNextMatch(m)
	}
	return table
}

// resolve substitutes typedef aliases in a type spelling, word by word,
// following chains up to maxTypedefDepth. Unknown words pass through.
func (t typedefTable) resolve(spelling string) string {
	if len(t) == 0 {
		return spelling
	}
	var b strings.Builder
	i := 0
	changed := false
	for i < len(spelling) {
		c := spelling[i]
		if !isIdentByte(c) {
			b.WriteByte(c)
			i++
			continue
		}
		j := i
		for j < len(spelling) && isIdentByte(spelling[j]) {
			j++
		}
		word := spelling[i:j]
		if repl, ok := t.chase(word); ok {
			b.WriteString(repl)
			changed = true
		} else {
			b.WriteString(word)
		}
		i = j
	}
	if !changed {
		return spelling
	}
	return b.String()
}

// chase follows an alias chain to its underlying spelling.
func (t typedefTable) chase(word string) (string, bool) {
	cur, ok := t[word]
	if !ok {
		return "", false
	}
	for depth := 1; depth < maxTypedefDepth; depth++ {
		next, ok := t[strings.TrimRight(cur, "* \t")]
		if !ok {
			break
		}
		// Carry pointer stars accumulated along the chain.
		stars := strings.Count(cur, "*")
		cur = next + strings.Repeat("*", stars)
	}
	return cur, true
}

func isIdentByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

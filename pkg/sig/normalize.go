package sig

import "bytes"

// AliasRule rewrites a verbose template spelling to its short canonical
// name: an occurrence of Verbose immediately followed by a balanced
// template-argument list collapses to Canonical.
type AliasRule struct {
	Verbose   string // e.g. "std::basic_string"
	Canonical string // e.g. "std::string"
}

// qualifierKeywords are stripped during normalization when they appear as
// whole words. "constant" and "myconst" are untouched.
var qualifierKeywords = []string{"const", "class", "struct", "union"}

// Normalizer produces canonical comparison keys for type spellings.
// Normalization runs once at parse time; matching afterwards is pure byte
// equality on the output.
type Normalizer struct {
	rules   []AliasRule
	maxGrow int // worst growth of one replacement, 0 for shrinking tables
	minSpan int // shortest span a growing replacement can consume
}

// NewNormalizer creates a normalizer with the given alias rules.
// A nil or empty rule set disables template canonicalization.
func NewNormalizer(rules []AliasRule) *Normalizer {
	n := &Normalizer{rules: rules}
	for _, r := range rules {
		// Worst case per occurrence: the canonical name replaces just
		// "Verbose<>" and everything else shifts right.
		grow := len(r.Canonical) - len(r.Verbose) - 2
		if grow <= 0 {
			continue
		}
		if grow > n.maxGrow {
			n.maxGrow = grow
		}
		if span := len(r.Verbose) + 2; n.minSpan == 0 || span < n.minSpan {
			n.minSpan = span
		}
	}
	return n
}

// headroom bounds how far pass 2 can grow an input of the given length:
// each growing replacement consumes at least minSpan bytes of it.
func (n *Normalizer) headroom(inputLen int) int {
	if n.maxGrow == 0 {
		return 0
	}
	return n.maxGrow * (inputLen/n.minSpan + 1)
}

// Normalize writes the canonical form of typ into the arena and returns
// its view. Two passes over one writable buffer: pass 1 strips whitespace
// and qualifier keywords, pass 2 collapses verbose template spellings.
func (n *Normalizer) Normalize(a *Arena, typ string) []byte {
	buf := a.Allocate(len(typ) + n.headroom(len(typ)))
	w := stripNoise(buf, typ)
	for _, r := range n.rules {
		w = n.applyAlias(buf, w, r)
	}
	return a.Finalize(buf, w)
}

// stripNoise copies typ into buf, dropping ASCII whitespace and whole-word
// qualifier keywords. Returns the number of bytes written; never more than
// len(typ) since no character is duplicated.
func stripNoise(buf []byte, typ string) int {
	w := 0
	for i := 0; i < len(typ); i++ {
		c := typ[i]
		if isSpace(c) {
			continue
		}
		if kw := keywordAt(typ, i); kw > 0 {
			i += kw - 1
			continue
		}
		buf[w] = c
		w++
	}
	return w
}

// keywordAt reports the length of a qualifier keyword occupying a whole
// word at position i of typ, or 0. A word boundary requires the adjacent
// character, when present, to not be an identifier character.
func keywordAt(typ string, i int) int {
	if i > 0 && isIdent(typ[i-1]) {
		return 0
	}
	for _, kw := range qualifierKeywords {
		end := i + len(kw)
		if end > len(typ) || typ[i:end] != kw {
			continue
		}
		if end < len(typ) && isIdent(typ[end]) {
			continue
		}
		return len(kw)
	}
	return 0
}

// applyAlias rewrites every occurrence of r in buf[:w], left to right, and
// returns the new length. Occurrences without a balanced template argument
// list are left untouched.
func (n *Normalizer) applyAlias(buf []byte, w int, r AliasRule) int {
	verbose := []byte(r.Verbose)
	for i := 0; i+len(verbose) < w; {
		if !bytes.HasPrefix(buf[i:w], verbose) || (i > 0 && isIdent(buf[i-1])) {
			i++
			continue
		}
		open := i + len(verbose)
		if buf[open] != '<' {
			i++
			continue
		}
		close := findClosingAngle(buf[:w], open)
		if close < 0 {
			i++
			continue
		}
		w = replaceSpan(buf, w, i, close+1, r.Canonical)
		i += len(r.Canonical)
	}
	return w
}

// replaceSpan replaces buf[start:end] with repl within buf[:w], shifting
// the remainder left or right by the length delta, and returns the new
// length. The caller guarantees buf has capacity for any growth.
func replaceSpan(buf []byte, w, start, end int, repl string) int {
	delta := len(repl) - (end - start)
	copy(buf[start+len(repl):w+delta], buf[end:w])
	copy(buf[start:], repl)
	return w + delta
}

// findClosingAngle returns the index of the '>' matching the '<' at open,
// depth-counting nested angle brackets, or -1 if buf ends first.
func findClosingAngle(buf []byte, open int) int {
	depth := 1
	for i := open + 1; i < len(buf); i++ {
		switch buf[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isIdent(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

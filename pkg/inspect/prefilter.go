package inspect

import "github.com/cloudflare/ahocorasick"

// Prefilter gates files by cheap multi-pattern keyword search before the
// declaration scan runs. A file that spells none of the query's concrete
// type words cannot produce a textual match, so it is skipped wholesale.
// Typedef aliases can defeat this reasoning, which is why the scan
// pipeline only uses a prefilter when the caller opts in.
type Prefilter struct {
	matcher *ahocorasick.Matcher
}

// NewPrefilter builds a prefilter for the given keywords. With no
// keywords (an all-wildcard query) it returns nil, and a nil Prefilter
// accepts everything.
func NewPrefilter(keywords []string) *Prefilter {
	if len(keywords) == 0 {
		return nil
	}
	return &Prefilter{matcher: ahocorasick.NewStringMatcher(keywords)}
}

// Accepts reports whether content contains at least one keyword.
func (p *Prefilter) Accepts(content []byte) bool {
	if p == nil {
		return true
	}
	return len(p.matcher.Match(content)) > 0
}

// QueryKeywords extracts the identifier words of the concrete (non-
// wildcard) tokens of a query for prefiltering, skipping words every C
// file spells anyway.
func QueryKeywords(ret string, args []string) []string {
	common := map[string]bool{
		"void": true, "int": true, "char": true, "const": true,
		"unsigned": true, "signed": true, "long": true, "short": true,
	}
	seen := map[string]bool{}
	var words []string
	add := func(spelling string) {
		i := 0
		for i < len(spelling) {
			if !isIdentByte(spelling[i]) {
				i++
				continue
			}
			j := i
			for j < len(spelling) && isIdentByte(spelling[j]) {
				j++
			}
			w := spelling[i:j]
			if !common[w] && !seen[w] {
				seen[w] = true
				words = append(words, w)
			}
			i = j
		}
	}
	add(ret)
	for _, a := range args {
		if a == "*" {
			continue
		}
		add(a)
	}
	return words
}

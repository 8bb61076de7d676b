package inspect

import "strings"

// baseTypeKeywords are words that end a type spelling without being a
// parameter name. "unsigned int x" drops only "x".
var baseTypeKeywords = map[string]bool{
	"void": true, "char": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "signed": true, "unsigned": true,
	"bool": true, "_Bool": true,
}

// tagKeywords introduce a named type; the word after them is part of the
// type, not a parameter name.
var tagKeywords = map[string]bool{
	"struct": true, "union": true, "enum": true, "class": true,
	"const": true, "volatile": true,
}

// splitParams splits a parameter list on top-level commas, the same
// depth-counting discipline the signature parser uses: '(' and '<' raise
// the nesting, ')' and '>' lower it. Empty tokens are dropped.
func splitParams(params string) []string {
	var out []string
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
		if tok := strings.TrimSpace(params[start:i]); tok != "" {
			out = append(out, tok)
		}
		start = i + 1
	}
	return out
}

// argSpellings derives the argument TYPE spellings of a parameter list:
// parameter names are removed, trailing array brackets fold into a
// pointer star, and a lone "void" means zero arguments.
func argSpellings(params string) []string {
	tokens := splitParams(params)
	if len(tokens) == 0 {
		return nil
	}
	if len(tokens) == 1 && tokens[0] == "void" {
		return nil
	}
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, typeOfParam(tok))
	}
	return out
}

// typeOfParam strips the declared name from one parameter token, leaving
// the type spelling.
func typeOfParam(tok string) string {
	if tok == "..." {
		return tok
	}
	if i := strings.IndexByte(tok, '('); i >= 0 {
		return typeOfFuncPtrParam(tok, i)
	}

	// Fold array declarators: "char argv[]" and "int m[3]" are pointers.
	stars := 0
	for {
		open := strings.LastIndexByte(tok, '[')
		if open < 0 {
			break
		}
		closing := strings.IndexByte(tok[open:], ']')
		if closing < 0 {
			break
		}
		tok = tok[:open] + tok[open+closing+1:]
		stars++
	}
	tok = strings.TrimSpace(tok)

	// The last identifier word is the parameter name unless it is a base
	// type keyword or the whole token.
	w := len(tok)
	for w > 0 && isIdentByte(tok[w-1]) {
		w--
	}
	last := tok[w:]
	if last != "" && w > 0 && !baseTypeKeywords[last] {
		prev := strings.TrimRight(tok[:w], " \t")
		if strings.HasSuffix(prev, "*") || strings.HasSuffix(prev, "&") ||
			strings.HasSuffix(prev, ">") || endsAfterTypeWord(prev) {
			tok = prev
		}
	}
	if stars > 0 {
		if !strings.HasSuffix(tok, "*") {
			tok += " "
		}
		tok += strings.Repeat("*", stars)
	}
	return strings.TrimSpace(tok)
}

// endsAfterTypeWord reports whether the text ends with an identifier word
// that can close a type spelling, i.e. not a tag or qualifier keyword that
// must be followed by the type it introduces.
func endsAfterTypeWord(prev string) bool {
	if prev == "" || !isIdentByte(prev[len(prev)-1]) {
		return false
	}
	w := len(prev)
	for w > 0 && isIdentByte(prev[w-1]) {
		w--
	}
	return !tagKeywords[prev[w:]]
}

// typeOfFuncPtrParam reduces a function-pointer parameter such as
// "void (*cb)(int, char)" to its unnamed spelling "void (*)(int, char)".
func typeOfFuncPtrParam(tok string, open int) string {
	inner := tok[open:]
	star := strings.IndexByte(inner, '*')
	if star < 0 {
		return tok
	}
	nameStart := open + star + 1
	nameEnd := nameStart
	for nameEnd < len(tok) && (isIdentByte(tok[nameEnd]) || tok[nameEnd] == ' ') {
		nameEnd++
	}
	return tok[:nameStart] + tok[nameEnd:]
}

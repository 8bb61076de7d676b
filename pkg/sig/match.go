package sig

import "bytes"

// Matches reports whether a candidate declaration's signature satisfies a
// query signature. Return types and arity must agree; each argument must
// agree on its normalized spelling unless the query's ORIGINAL token at
// that position is the single character '*', which matches any type.
//
// The wildcard is honored on the query side only. Queries come from users;
// candidates come from real declarations, which never legitimately spell a
// type as '*'.
func Matches(query, candidate *Signature) bool {
	if !bytes.Equal(query.RetNorm, candidate.RetNorm) {
		return false
	}
	if len(query.Args) != len(candidate.Args) {
		return false
	}
	for i := range query.Args {
		if isWildcard(query.Args[i]) {
			continue
		}
		if !bytes.Equal(query.ArgsNorm[i], candidate.ArgsNorm[i]) {
			return false
		}
	}
	return true
}

// Wildcard is the query-side token matching any type in one argument
// position.
const Wildcard = "*"

func isWildcard(tok []byte) bool {
	return len(tok) == 1 && tok[0] == '*'
}

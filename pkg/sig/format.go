package sig

import "strings"

// Format renders a signature back to human-readable text using the
// original, non-normalized tokens: "ret(arg1, arg2)". Allocates; used for
// reporting only, never on the matching path.
func Format(sig *Signature) string {
	var b strings.Builder
	n := len(sig.Ret) + 2
	for _, arg := range sig.Args {
		n += len(arg) + 2
	}
	b.Grow(n)
	b.Write(sig.Ret)
	b.WriteByte('(')
	for i, arg := range sig.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.Write(arg)
	}
	b.WriteByte(')')
	return b.String()
}

package sig

// Signature is a structured function signature with views into a Storage
// arena. Original spellings are kept for display and wildcard detection,
// normalized spellings for matching. Immutable once built; invalid after
// the owning Storage is reset.
type Signature struct {
	Ret      []byte   // original return type
	RetNorm  []byte   // normalized return type
	Args     [][]byte // original argument types
	ArgsNorm [][]byte // normalized argument types, index-aligned with Args
}

// argSpan records token boundaries within a parameter list during the
// counting pass of Parse.
type argSpan struct {
	start, end int
}

// Storage owns the arena backing one or more Signatures plus the scratch
// used while parsing. Many signatures may share one Storage (all
// candidates from one file, say); they all die together on Reset.
// Not goroutine-safe; a parallel pipeline gives each worker its own.
type Storage struct {
	arena *Arena
	norm  *Normalizer
	spans []argSpan // parse scratch, reused across parses
}

// NewStorage creates a Storage whose signatures are normalized with the
// given normalizer. A nil normalizer strips noise but applies no template
// alias rules.
func NewStorage(n *Normalizer) *Storage {
	if n == nil {
		n = NewNormalizer(nil)
	}
	return &Storage{arena: NewArena(), norm: n}
}

// Arena exposes the backing arena for callers that intern directly.
func (s *Storage) Arena() *Arena { return s.arena }

// Intern copies str into the storage arena.
func (s *Storage) Intern(str string) []byte { return s.arena.Intern(str) }

// Normalize writes the canonical form of typ into the storage arena.
func (s *Storage) Normalize(typ string) []byte { return s.norm.Normalize(s.arena, typ) }

// Build constructs a Signature directly from already-separated type
// spellings, as supplied by the source inspector. Every field is interned
// and normalized eagerly so matching is pure byte comparison.
func (s *Storage) Build(ret string, args []string) Signature {
	sig := Signature{
		Ret:     s.arena.Intern(ret),
		RetNorm: s.norm.Normalize(s.arena, ret),
	}
	if len(args) > 0 {
		sig.Args = make([][]byte, 0, len(args))
		sig.ArgsNorm = make([][]byte, 0, len(args))
		for _, arg := range args {
			sig.Args = append(sig.Args, s.arena.Intern(arg))
			sig.ArgsNorm = append(sig.ArgsNorm, s.norm.Normalize(s.arena, arg))
		}
	}
	return sig
}

// Reset invalidates every Signature built from this Storage and reclaims
// the arena for reuse.
func (s *Storage) Reset() {
	s.arena.Reset()
	s.spans = s.spans[:0]
}

package sig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchText(t *testing.T, query, candidate string) bool {
	t.Helper()
	qs := NewStorage(NewNormalizer(stringAliases))
	q, err := qs.Parse(query)
	require.NoError(t, err)
	cs := NewStorage(NewNormalizer(stringAliases))
	c, err := cs.Parse(candidate)
	require.NoError(t, err)
	return Matches(&q, &c)
}

func TestMatches_Exact(t *testing.T) {
	assert.True(t, matchText(t, "int(int, int)", "int(int, int)"))
	assert.True(t, matchText(t, "void()", "void()"))
	assert.True(t, matchText(t, "char *(int, char *)", "char *(int, char *)"))
}

func TestMatches_ConstAndWhitespaceInsensitive(t *testing.T) {
	assert.True(t, matchText(t, "int(const int)", "int(int)"))
	assert.True(t, matchText(t, "const int(int)", "int(int)"))
	assert.True(t, matchText(t, "void(const char *)", "void(char *)"))
	assert.True(t, matchText(t, "int(int,int)", "int( int , int )"))
	assert.True(t, matchText(t, "char*(int)", "char * ( int )"))
}

func TestMatches_Mismatches(t *testing.T) {
	assert.False(t, matchText(t, "int(int)", "void(int)"), "return type")
	assert.False(t, matchText(t, "int(int)", "int(int, int)"), "arity")
	assert.False(t, matchText(t, "int(int)", "int(char)"), "argument type")
	assert.False(t, matchText(t, "int(int)", "int(int *)"), "pointer vs value")
}

func TestMatches_Wildcard(t *testing.T) {
	assert.True(t, matchText(t, "int(*, int)", "int(char, int)"))
	assert.True(t, matchText(t, "int(*, *)", "int(char, double)"))
	assert.True(t, matchText(t, "void(*)", "void(struct Node *)"))

	// Arity still binds: one wildcard is one position.
	assert.False(t, matchText(t, "int(*)", "int(int, int)"))
	assert.False(t, matchText(t, "int(*, *)", "int(int)"))

	// Never a wildcard in the return type.
	assert.False(t, matchText(t, "*(int)", "void(int)"))

	// Directional: a candidate spelling '*' does not match a concrete
	// query argument.
	assert.False(t, matchText(t, "int(int)", "int(*)"))
}

func TestMatches_TemplateAlias(t *testing.T) {
	assert.True(t, matchText(t,
		"void(std::string)",
		"void(std::basic_string<char, std::char_traits<char>, std::allocator<char>>)"))
}

func TestMatches_BuiltCandidates(t *testing.T) {
	// Candidates from the source inspector arrive pre-split; Build must
	// land in the same normalized space as Parse.
	qs := NewStorage(nil)
	query, err := qs.Parse("int(*, *)")
	require.NoError(t, err)

	cs := NewStorage(nil)
	add := cs.Build("int", []string{"int", "int"})
	assert.True(t, Matches(&query, &add))

	narrow, err := qs.Parse("int(int)")
	require.NoError(t, err)
	assert.False(t, Matches(&narrow, &add), "arity mismatch")

	inc := cs.Build("void", []string{"int *"})
	ptrQuery, err := qs.Parse("void(int *)")
	require.NoError(t, err)
	valQuery, err := qs.Parse("void(int)")
	require.NoError(t, err)
	assert.True(t, Matches(&ptrQuery, &inc))
	assert.False(t, Matches(&valQuery, &inc))
}

package sig

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_Intern(t *testing.T) {
	a := NewArena()

	v := a.Intern("char *")
	assert.Equal(t, "char *", string(v))

	// Repeated interning is not deduplicated.
	v2 := a.Intern("char *")
	assert.Equal(t, "char *", string(v2))
	assert.Equal(t, 12, a.Size())
}

func TestArena_ViewsSurviveGrowth(t *testing.T) {
	// A tiny chunk size forces growth every few interns. Earlier views
	// must keep their contents: growth appends chunks, never reallocates.
	a := NewArenaSize(16)

	var views [][]byte
	var want []string
	for i := 0; i < 100; i++ {
		s := fmt.Sprintf("type_%02d", i)
		views = append(views, a.Intern(s))
		want = append(want, s)
	}
	for i, v := range views {
		assert.Equal(t, want[i], string(v), "view %d invalidated by growth", i)
	}
}

func TestArena_AllocateFinalize(t *testing.T) {
	a := NewArena()

	buf := a.Allocate(10)
	require.Len(t, buf, 10)
	copy(buf, "const int")

	v := a.Finalize(buf, 3)
	assert.Equal(t, 3, len(v))
	assert.Equal(t, 3, a.Size(), "tail of the last allocation is reclaimed")

	// The next intern reuses the reclaimed space without touching v.
	next := a.Intern("int")
	assert.Equal(t, "con", string(v))
	assert.Equal(t, "int", string(next))
}

func TestArena_FinalizeNotLast(t *testing.T) {
	a := NewArena()

	buf := a.Allocate(8)
	a.Intern("x")
	v := a.Finalize(buf, 4)

	// buf is no longer the newest allocation, so the tail is not
	// reclaimed, only the view is shortened.
	assert.Equal(t, 4, len(v))
	assert.Equal(t, 9, a.Size())
}

func TestArena_Reset(t *testing.T) {
	a := NewArenaSize(32)
	for i := 0; i < 10; i++ {
		a.Intern("some type spelling")
	}
	require.NotZero(t, a.Size())

	a.Reset()
	assert.Zero(t, a.Size())

	v := a.Intern("int")
	assert.Equal(t, "int", string(v))
}

func TestArena_AllocateLargerThanChunk(t *testing.T) {
	a := NewArenaSize(8)
	buf := a.Allocate(100)
	require.Len(t, buf, 100)

	v := a.Intern("after")
	assert.Equal(t, "after", string(v))
}

func TestArena_ZeroLength(t *testing.T) {
	a := NewArena()
	assert.Nil(t, a.Allocate(0))
	assert.Empty(t, a.Intern(""))
}

package sig

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

// Arena is a chunked bump allocator for type-spelling strings.
// Every string the engine compares lives in an arena; views handed out by
// Intern/Finalize stay valid until Reset because growth appends a new chunk
// instead of reallocating the backing store. Not goroutine-safe.
type Arena struct {
	chunks    [][]byte
	cur       int // index of the chunk allocations come from
	off       int // allocation offset within chunks[cur]
	chunkSize int
	size      int    // total bytes handed out since last Reset
	last      []byte // most recent Allocate result, for Finalize reclaim
}

// NewArena creates an arena with the default chunk size.
func NewArena() *Arena {
	return NewArenaSize(DefaultChunkSize)
}

// NewArenaSize creates an arena with the given chunk size.
// Sizes smaller than one byte fall back to DefaultChunkSize.
func NewArenaSize(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	a := &Arena{chunkSize: chunkSize}
	a.chunks = append(a.chunks, make([]byte, chunkSize))
	return a
}

// Intern copies s into the arena and returns a stable view of it.
// Equal strings are not deduplicated; callers that want sharing must
// intern once and reuse the view.
func (a *Arena) Intern(s string) []byte {
	b := a.Allocate(len(s))
	copy(b, s)
	return b
}

// Allocate reserves a writable region of exactly n bytes.
// The region is contiguous within a single chunk.
func (a *Arena) Allocate(n int) []byte {
	if n == 0 {
		a.last = nil
		return nil
	}
	c := a.chunks[a.cur]
	if a.off+n > len(c) {
		a.grow(n)
		c = a.chunks[a.cur]
	}
	b := c[a.off : a.off+n : a.off+n]
	a.off += n
	a.size += n
	a.last = b
	return b
}

// Finalize truncates a previously allocated region to its real length and
// returns the committed view. When buf is the most recent allocation, the
// unused tail is returned to the arena.
func (a *Arena) Finalize(buf []byte, used int) []byte {
	if used > len(buf) {
		used = len(buf)
	}
	if len(buf) > 0 && len(a.last) > 0 && &buf[0] == &a.last[0] {
		a.off -= len(buf) - used
		a.size -= len(buf) - used
		a.last = nil
	}
	return buf[:used:used]
}

// Reset invalidates all views and makes the arena's memory reusable.
// Chunks are kept so steady-state scanning does not reallocate.
func (a *Arena) Reset() {
	a.cur = 0
	a.off = 0
	a.size = 0
	a.last = nil
}

// Size reports the number of live bytes handed out since the last Reset.
func (a *Arena) Size() int { return a.size }

// grow makes room for an allocation of n bytes by advancing to the next
// chunk, appending one of at least n bytes if needed. Existing chunks are
// never resized, so previously issued views keep their addresses.
func (a *Arena) grow(n int) {
	if a.cur+1 < len(a.chunks) && n <= len(a.chunks[a.cur+1]) {
		a.cur++
		a.off = 0
		return
	}
	size := a.chunkSize
	if n > size {
		size = n
	}
	a.chunks = append(a.chunks, make([]byte, size))
	a.cur = len(a.chunks) - 1
	a.off = 0
}

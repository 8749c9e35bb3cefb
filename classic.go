package malloc

import "sync"

// This file is a thin facade over Arena matching the package's original,
// C-flavored surface: a single process-wide arena configured by a
// module-scoped size and driven by free functions rather than methods.
// Arena itself is the preferred, explicit-handle API -- nothing here does
// anything Arena can't -- but the free-function form is kept because it is
// the contract external callers were written against, and because an explicit handle
// can't accidentally be used before init or after close the way a global
// can, which is exactly the hazard this form is meant to demonstrate.
var (
	classicMu   sync.Mutex
	classicSize int
	classic     *Arena
)

// SetArenaSize configures the size, in bytes, that ArenaInit will use. It
// must be called before ArenaInit.
func SetArenaSize(n int) {
	classicMu.Lock()
	defer classicMu.Unlock()
	classicSize = n
}

// ArenaInit creates the process-wide arena at the size last configured
// with SetArenaSize. Calling any of Allocate, Free, Reallocate, or
// ArenaClose before ArenaInit, or after ArenaClose, is undefined.
func ArenaInit() {
	classicMu.Lock()
	defer classicMu.Unlock()
	classic = NewArena(classicSize)
}

// Allocate is Arena.Allocate on the process-wide arena.
func Allocate(size int) []byte { return classic.Allocate(size) }

// Free is Arena.Free on the process-wide arena.
func Free(p []byte) { classic.Free(p) }

// Reallocate is Arena.Realloc on the process-wide arena.
func Reallocate(p []byte, newSize int) []byte { return classic.Realloc(p, newSize) }

// ArenaClose releases the process-wide arena.
func ArenaClose() {
	classic.Close()
	classic = nil
}

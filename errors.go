package malloc

import "fmt"

// ErrOutOfSystemMemory is panicked by NewArena when the host cannot supply
// the requested region. There is no allocator state yet to roll back to at
// that point, so host exhaustion during arena construction is always fatal,
// never a recoverable error value.
type ErrOutOfSystemMemory struct {
	Requested int
}

func (e *ErrOutOfSystemMemory) Error() string {
	return fmt.Sprintf("malloc: out of system memory acquiring %d bytes for arena", e.Requested)
}

// ErrInvalidFree is panicked by Free and Realloc when the address handed
// back does not describe a block this arena currently considers allocated.
// Per the package's contract, freeing an invalid address is unrecoverable:
// the caller has violated the allocator's invariants and the heap can no
// longer be trusted.
type ErrInvalidFree struct {
	// Off is the byte offset IsValid was asked to check, -1 if the
	// pointer didn't even resolve to a position inside the arena.
	Off int
}

func (e *ErrInvalidFree) Error() string {
	if e.Off < 0 {
		return "malloc: free of a pointer that does not belong to this arena"
	}
	return fmt.Sprintf("malloc: free of invalid or already-freed block at offset %d", e.Off)
}

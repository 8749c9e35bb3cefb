package malloc

import (
	"fmt"
	"os"
)

// minArenaSize is the smallest region that can hold a single valid block:
// a header, the link fields a free block needs, and a footer.
const minArenaSize = tagSize + linkFields + tagSize

// Arena is a single contiguous byte region managed with boundary-tag
// blocks and an explicit doubly linked free list threaded through the
// free blocks themselves. An Arena is strictly single-threaded and
// non-reentrant: it makes no attempt at locking, and using one from
// multiple goroutines concurrently requires external synchronization.
//
// A zero Arena is not usable. Create one with NewArena, and release it
// with Close when done.
type Arena struct {
	buf      []byte
	freeHead int
}

// NewArena acquires size bytes from the host and installs a single free
// block spanning the entire region. It panics with *ErrOutOfSystemMemory
// if the host cannot supply the requested memory: arena construction has
// no established heap state to roll back to, so failure here is always
// fatal, never a null return.
func NewArena(size int) *Arena {
	if size < minArenaSize {
		panic(&ErrOutOfSystemMemory{Requested: size})
	}

	buf, err := acquire(size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "malloc: arena_init: %v\n", err)
		panic(&ErrOutOfSystemMemory{Requested: size})
	}

	a := &Arena{buf: buf, freeHead: nilOffset}
	payload := int32(size - 2*tagSize)
	root := a.at(0)
	root.setHeaderTag(payload)
	root.setFooterTag(payload)
	a.pushFront(0, nil)
	return a
}

// acquire carves the host memory backing an arena out of its own function
// so that a pathologically large request -- which the Go runtime reports
// via a panic out of make(), not an error value -- can be turned into a
// regular, diagnosable failure instead of taking the whole process down
// with an unrelated-looking stack trace.
func acquire(size int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("host allocation of %d bytes failed: %v", size, r)
		}
	}()
	return make([]byte, size), nil
}

// Close releases the region back to the host. A closed Arena must not be
// used again; doing so is undefined, matching the package's single-arena,
// init-before-use, close-after-last-use contract.
func (a *Arena) Close() {
	a.buf = nil
	a.freeHead = nilOffset
}

// Size returns the total number of bytes the arena was created with,
// including all boundary-tag overhead.
func (a *Arena) Size() int { return len(a.buf) }

package malloc

import "unsafe"

// headerOffsetOf maps a payload slice, as previously handed out by
// Allocate or Realloc, back to its block's header offset within the
// arena's buffer. It is the one place in the package that compares raw
// pointers; everywhere else operates purely on offsets. It returns false
// if p could not possibly be a payload of this arena -- including when
// the arena has been closed.
func (a *Arena) headerOffsetOf(p []byte) (int, bool) {
	if len(a.buf) == 0 || len(p) == 0 {
		return 0, false
	}

	base := uintptr(unsafe.Pointer(&a.buf[0]))
	ptr := uintptr(unsafe.Pointer(&p[0]))
	end := base + uintptr(len(a.buf))

	if ptr < base+uintptr(tagSize) || ptr >= end {
		return 0, false
	}

	return int(ptr-base) - tagSize, true
}

// validAt is the offset-based core of IsValid: it checks the boundary-tag
// invariants for the block whose header is at off, without needing a
// payload slice to resolve first.
func (a *Arena) validAt(off int) bool {
	if off < 0 || off+tagSize > len(a.buf) {
		return false
	}

	c := a.at(off)
	header := c.headerTag()
	if header >= 0 { // not marked allocated
		return false
	}

	size := int(-header)
	if c.payloadOff()+size+tagSize > len(a.buf) {
		return false
	}

	return c.footerTag() == header
}

// IsValid reports whether p could be a payload this arena currently
// considers allocated. It is necessary but not sufficient: a stray
// pointer into the middle of a block whose bytes happen to encode a
// symmetric negative tag will still pass. The allocator is not
// adversarial -- this check exists to catch programming errors, not to
// resist a malicious caller.
func (a *Arena) IsValid(p []byte) bool {
	off, ok := a.headerOffsetOf(p)
	if !ok {
		return false
	}
	return a.validAt(off)
}

// Free deallocates the block backing p, merging it with any physically
// adjacent free neighbors. It is O(1).
//
// Freeing an address IsValid rejects is unrecoverable: the caller has
// broken the allocator's contract, so Free panics with *ErrInvalidFree
// rather than attempting to continue against a heap it can no longer
// trust.
func (a *Arena) Free(p []byte) {
	off, ok := a.headerOffsetOf(p)
	if !ok {
		panic(&ErrInvalidFree{Off: nilOffset})
	}
	if !a.validAt(off) {
		panic(&ErrInvalidFree{Off: off})
	}
	a.freeBlock(off, nil)
}

// freeBlock does the actual work of Free: flip the block's tags to free,
// push it onto the free list, then coalesce with the physical predecessor
// and/or successor if either is itself free. Both checks are independent
// and both may fire for a single block.
//
// log, if non-nil, records every free-list mutation performed so that
// Arena.Realloc can undo the whole sequence if the allocation it attempts
// afterwards fails.
func (a *Arena) freeBlock(off int, log *[]freeOp) {
	c := a.at(off)
	size := -c.headerTag()
	c.setHeaderTag(size)
	c.setFooterTag(size)
	a.pushFront(off, log)

	cur := off
	if a.at(cur).hasPrev() {
		p := a.at(cur).prev()
		if p.isFree() {
			a.remove(p.off, log)
			a.remove(cur, log)
			cur = a.merge(p.off, cur, log)
			a.pushFront(cur, log)
		}
	}
	if a.at(cur).hasNext() {
		n := a.at(cur).next()
		if n.isFree() {
			a.remove(n.off, log)
			a.remove(cur, log)
			cur = a.merge(cur, n.off, log)
			a.pushFront(cur, log)
		}
	}
}

package malloc

// Realloc is built on top of Free and Allocate: free the old block,
// allocate newSize bytes, and copy the overlapping content across. The
// wrinkle is that Free mutates the old block's payload (to install free
// list link fields) and may coalesce it away into a neighbor entirely, so
// if the subsequent Allocate fails, undoing that mutation takes more than
// just remembering the old tag.
//
// Realloc is therefore transactional: on failure the heap -- block
// boundaries, tags, free-list membership and order, and the bytes at p --
// is restored bit-for-bit to what it was before the call, and Realloc
// returns nil. p remains valid to use in that case. On success, p must
// not be used again; the returned slice is the only valid handle to the
// data from then on.
func (a *Arena) Realloc(p []byte, newSize int) []byte {
	if newSize <= 0 {
		return nil
	}

	off, ok := a.headerOffsetOf(p)
	if !ok {
		panic(&ErrInvalidFree{Off: nilOffset})
	}
	if !a.validAt(off) {
		panic(&ErrInvalidFree{Off: off})
	}

	c := a.at(off)
	oldSize := c.payloadSize()

	// Snapshot the live payload before Free gets anywhere near it. Once
	// the block is freed its first linkFields bytes are overwritten with
	// free-list pointers, and if it coalesces with a neighbor its old
	// boundary tags stop existing altogether; this copy is the only
	// record of the caller's data from that point on.
	saved := make([]byte, oldSize)
	copy(saved, c.payload())

	var log []freeOp
	a.freeBlock(off, &log)

	newP := a.Allocate(newSize)
	if newP == nil {
		a.undo(log)

		c = a.at(off)
		c.setHeaderTag(int32(-oldSize))
		c.setFooterTag(int32(-oldSize))
		copy(c.payload(), saved)

		return nil
	}

	n := oldSize
	if newSize < n {
		n = newSize
	}
	copy(newP, saved[:n])

	return newP
}

package malloc

import "github.com/cznic/mathutil"

// findFit scans the free list for the best fit: the free block with the
// smallest payload size that is still >= size, tie-broken by whichever
// such block is encountered first. An exact match short-circuits the
// scan. It returns nilOffset if no free block is large enough. O(n) in
// the number of free blocks -- the only linear operation in the package.
func (a *Arena) findFit(size int) int {
	best, bestSize := nilOffset, 0
	for off := a.freeHead; off != nilOffset; off = a.at(off).nextLink() {
		s := a.at(off).payloadSize()
		if s == size {
			return off
		}
		if s > size && (best == nilOffset || s < bestSize) {
			best, bestSize = off, s
		}
	}
	return best
}

// split carves a free block's payload into a size-byte prefix, kept at
// off, and a remainder suffix, writing fresh boundary tags for both. It
// does not touch the free list -- the caller is responsible for deciding
// how the two resulting blocks get threaded in.
func (a *Arena) split(off, size int) (prefix, suffix int) {
	c := a.at(off)
	total := c.payloadSize()
	c.setHeaderTag(int32(size))
	c.setFooterTag(int32(size))

	suffixOff := off + tagSize + size + tagSize
	suffixSize := int32(total - size - 2*tagSize)
	s := a.at(suffixOff)
	s.setHeaderTag(suffixSize)
	s.setFooterTag(suffixSize)

	return off, suffixOff
}

// canSplit reports whether carving size bytes out of a free block with
// the given total payload would leave enough of a remainder to host a
// viable free block (its own tag overhead plus link fields).
func canSplit(totalPayload, size int) bool {
	return totalPayload >= size+2*tagSize+linkFields
}

// Allocate finds a best-fit free block for request bytes, splitting it if
// the remainder would be large enough to stand on its own, and returns a
// slice over the new block's payload, truncated to exactly request bytes.
// It returns nil if no free block is large enough, or if request is not
// positive; insufficient space is a recoverable condition reported
// entirely through this nil return, never a panic.
//
// Requests smaller than the minimum free-list link footprint are
// transparently inflated so that the block remains freeable later.
func (a *Arena) Allocate(request int) []byte {
	if request <= 0 {
		return nil
	}

	size := mathutil.Max(request, linkFields)

	off := a.findFit(size)
	if off == nilOffset {
		return nil
	}

	total := a.at(off).payloadSize()
	if canSplit(total, size) {
		_, suffixOff := a.split(off, size)
		a.remove(off, nil)
		a.pushFront(suffixOff, nil)
	} else {
		a.remove(off, nil)
	}

	c := a.at(off)
	used := int32(c.payloadSize())
	c.setHeaderTag(-used)
	c.setFooterTag(-used)

	return c.payload()[:request:request]
}

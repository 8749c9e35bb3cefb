package malloc

import "fmt"

// Stats summarizes one TotalAccounted traversal of the arena.
type Stats struct {
	AllocBytes int // sum of allocated blocks' payload sizes
	FreeBytes  int // sum of free blocks' payload sizes
	Blocks     int // total number of blocks, free or allocated
	Total      int // AllocBytes + FreeBytes + 2*tagSize*Blocks
}

// TotalAccounted walks every block left to right, reading each header's
// magnitude and advancing by |payload|+2*tagSize, and returns the sum of
// payload and tag-overhead bytes across the whole arena. On a healthy
// heap this always equals Arena.Size(). It is meant for debug assertions
// only: it does not check the chain as it walks, so on a corrupted heap it
// can panic on an out-of-range read or return a wrong total.
func (a *Arena) TotalAccounted() int {
	return a.stats().Total
}

func (a *Arena) stats() Stats {
	var st Stats
	for off := 0; off < len(a.buf); {
		c := a.at(off)
		size := c.payloadSize()
		if c.isFree() {
			st.FreeBytes += size
		} else {
			st.AllocBytes += size
		}
		st.Blocks++
		st.Total += size + 2*tagSize
		off = c.blockEnd()
	}
	return st
}

// Verify walks the whole heap checking the structural invariants the
// allocator is supposed to maintain between every public call: tag
// symmetry, no two adjacent free blocks, and a free list whose membership
// and links exactly match the set of free-tagged blocks. It returns the
// first violation found, or nil if the heap is consistent.
//
// Verify is O(n) in the number of blocks. It exists for tests and
// debugging, not as a defense the public API runs on every call.
func (a *Arena) Verify() error {
	prevFree := false
	off := 0
	for off < len(a.buf) {
		if off+tagSize > len(a.buf) {
			return fmt.Errorf("block at %d: header runs past the end of the arena", off)
		}

		c := a.at(off)
		if c.headerTag() != c.footerTag() {
			return fmt.Errorf("block at %d: header %d and footer %d disagree", off, c.headerTag(), c.footerTag())
		}

		size := c.payloadSize()
		if c.footerOff()+tagSize > len(a.buf) {
			return fmt.Errorf("block at %d: payload size %d runs past the end of the arena", off, size)
		}

		free := c.isFree()
		if free && prevFree {
			return fmt.Errorf("block at %d: physically adjacent to another free block", off)
		}
		prevFree = free
		off = c.blockEnd()
	}
	if off != len(a.buf) {
		return fmt.Errorf("trailing %d bytes past %d do not form a whole block", len(a.buf)-off, off)
	}

	return a.verifyFreeList()
}

func (a *Arena) verifyFreeList() error {
	inList := make(map[int]bool)
	prev := nilOffset
	for off := a.freeHead; off != nilOffset; {
		if off < 0 || off >= len(a.buf) {
			return fmt.Errorf("free list: offset %d is out of range", off)
		}
		if inList[off] {
			return fmt.Errorf("free list: cycle detected at offset %d", off)
		}

		c := a.at(off)
		if !c.isFree() {
			return fmt.Errorf("free list: block at %d is linked in but tagged allocated", off)
		}
		if c.prevLink() != prev {
			return fmt.Errorf("free list: block at %d has prev %d, want %d", off, c.prevLink(), prev)
		}

		inList[off] = true
		prev = off
		off = c.nextLink()
	}

	for off := 0; off < len(a.buf); {
		c := a.at(off)
		switch {
		case c.isFree() && !inList[off]:
			return fmt.Errorf("block at %d is tagged free but absent from the free list", off)
		case !c.isFree() && inList[off]:
			return fmt.Errorf("block at %d is tagged allocated but present in the free list", off)
		}
		off = c.blockEnd()
	}

	return nil
}

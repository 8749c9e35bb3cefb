package malloc

import "encoding/binary"

// Sizes, in bytes, of the two kinds of in-band words the allocator reads
// and writes. tagSize is T in the design: a 4-byte signed magnitude/sign
// boundary tag. linkSize is the width of one free-list link field; a free
// block stores two of them (prev, next) at the start of its payload, so
// linkFields is L, the minimum payload a block must have to be freeable.
const (
	tagSize    = 4
	linkSize   = 8
	linkFields = 2 * linkSize
)

// nilOffset terminates the free list, playing the role of a null handle.
// Offset 0 is a legitimate block address in this package (the arena's
// first block starts there), so, unlike a classic null pointer, -1 rather
// than 0 is used as the sentinel.
const nilOffset = -1

// blockCursor is a typed view onto the block whose header tag begins at
// off within an Arena's backing buffer. It holds the tag and link-field
// layout arithmetic; outside it, only split, headerOffsetOf and the bounds
// checks in validAt and Verify compute offsets. A blockCursor never copies
// block data -- reads and writes
// pass straight through to the arena's buffer.
type blockCursor struct {
	a   *Arena
	off int
}

// at returns a cursor onto the block whose header begins at off.
func (a *Arena) at(off int) blockCursor { return blockCursor{a, off} }

func (c blockCursor) headerTag() int32 {
	return int32(binary.BigEndian.Uint32(c.a.buf[c.off:]))
}

func (c blockCursor) setHeaderTag(v int32) {
	binary.BigEndian.PutUint32(c.a.buf[c.off:], uint32(v))
}

// payloadSize is the magnitude of the header tag -- the block's payload
// size in bytes, regardless of whether the block is free or allocated.
func (c blockCursor) payloadSize() int {
	v := c.headerTag()
	if v < 0 {
		v = -v
	}
	return int(v)
}

// isFree reports the block's state per the sign of its header tag.
func (c blockCursor) isFree() bool { return c.headerTag() > 0 }

func (c blockCursor) payloadOff() int { return c.off + tagSize }

func (c blockCursor) footerOff() int { return c.payloadOff() + c.payloadSize() }

func (c blockCursor) footerTag() int32 {
	return int32(binary.BigEndian.Uint32(c.a.buf[c.footerOff():]))
}

func (c blockCursor) setFooterTag(v int32) {
	binary.BigEndian.PutUint32(c.a.buf[c.footerOff():], uint32(v))
}

// blockEnd is the offset immediately past this block's footer -- the
// header offset of its physical successor, if any.
func (c blockCursor) blockEnd() int { return c.footerOff() + tagSize }

func (c blockCursor) hasNext() bool { return c.blockEnd() < len(c.a.buf) }
func (c blockCursor) hasPrev() bool { return c.off > 0 }

// next returns a cursor onto the physical successor block. Callers must
// check hasNext first; next does not.
func (c blockCursor) next() blockCursor { return c.a.at(c.blockEnd()) }

// prev locates the physical predecessor by reading the single word
// immediately before this block's header -- the predecessor's footer tag
// -- and walking backwards by its magnitude. Callers must check hasPrev
// first.
func (c blockCursor) prev() blockCursor {
	footerOff := c.off - tagSize
	tag := int32(binary.BigEndian.Uint32(c.a.buf[footerOff:]))
	size := tag
	if size < 0 {
		size = -size
	}
	return c.a.at(footerOff - int(size) - tagSize)
}

// payload returns the full payload region as a slice over the arena's own
// buffer -- no copy.
func (c blockCursor) payload() []byte {
	return c.a.buf[c.payloadOff():c.footerOff()]
}

// The following four accessors are valid only while the block is free;
// they alias the first linkFields bytes of an allocated block's payload,
// which belong to the caller.

func (c blockCursor) prevLink() int {
	return int(int64(binary.BigEndian.Uint64(c.a.buf[c.payloadOff():])))
}

func (c blockCursor) setPrevLink(off int) {
	binary.BigEndian.PutUint64(c.a.buf[c.payloadOff():], uint64(int64(off)))
}

func (c blockCursor) nextLink() int {
	return int(int64(binary.BigEndian.Uint64(c.a.buf[c.payloadOff()+linkSize:])))
}

func (c blockCursor) setNextLink(off int) {
	binary.BigEndian.PutUint64(c.a.buf[c.payloadOff()+linkSize:], uint64(int64(off)))
}

// Package malloc implements a single-arena, byte-granular heap allocator
// over a fixed, contiguous region of memory that the allocator itself owns.
// It provides the classic allocate/free/realloc triad plus the lifecycle
// operations to create and tear down the arena.
//
// All bookkeeping -- block sizes, allocation state, and the free list --
// lives inside the managed region itself, in the style of a textbook
// boundary-tag allocator. No auxiliary storage holds bookkeeping; apart
// from the arena's own backing buffer, the only heap-allocated Go values
// are Arena.Realloc's temporary payload copy and undo log, and the scratch
// map Arena.Verify builds.
//
// # Block layout
//
// The arena is a sequence of blocks laid out contiguously from the first
// byte to the last, with no gaps. Every block carries two boundary tags, a
// 4-byte header immediately before its payload and a 4-byte footer
// immediately after it:
//
//	+--------+-----------------------------------+--------+
//	| header |              payload               | footer |
//	+--------+-----------------------------------+--------+
//
// Both tags store the same signed 32-bit value. The magnitude is the
// payload size in bytes; the sign is the discriminant: positive means free,
// negative means allocated. Because header and footer always agree, the
// physical predecessor of any block can be found by reading a single word
// just before its header -- that word is the predecessor's footer -- without
// any side table of block boundaries.
//
// A free block's payload begins with two 8-byte fields that thread it into
// the arena's free list: a previous-block offset and a next-block offset,
// each using -1 to mean "no such block". Consequently a block's payload
// must be at least 16 bytes to be freeable, and the allocator transparently
// inflates any smaller request to that floor.
//
// # Free list and allocation policy
//
// Free blocks are kept on a doubly linked list, threaded entirely through
// the blocks' own payloads, with insertion at the head and O(1) removal of
// an arbitrary node. Allocation is best-fit: a linear scan of the free list
// returns the smallest free block whose payload is at least as large as the
// request, short-circuiting on an exact match. A big enough block is split
// into an allocated prefix and a free suffix; the suffix is pushed back onto
// the free list.
//
// Freeing a block is O(1): flip its tags back to positive, push it onto the
// free list, then inspect its physical left and right neighbors via their
// boundary tags and merge with whichever of them are free. Eager coalescing
// means the heap never holds two physically adjacent free blocks.
//
// Reallocation is built from freeing and allocation: free the old block,
// allocate the new size, and copy the overlap. Because freeing mutates the
// old block's link fields (and may coalesce it away entirely), a failed
// reallocation needs an explicit rollback to restore the arena exactly as it
// was; see Arena.Realloc.
package malloc

package malloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreePanicsOnInvalidPointer(t *testing.T) {
	a := NewArena(1000)
	defer a.Close()

	assert.Panics(t, func() { a.Free(make([]byte, 10)) })

	p := a.Allocate(50)
	require.NotNil(t, p)
	a.Free(p)
	assert.Panics(t, func() { a.Free(p) })
}

func TestFreeCoalescesBackwardAndForward(t *testing.T) {
	a := NewArena(40000)
	defer a.Close()

	pa := a.Allocate(100)
	pb := a.Allocate(200)
	pc := a.Allocate(300)
	require.NotNil(t, pa)
	require.NotNil(t, pb)
	require.NotNil(t, pc)

	a.Free(pb)
	require.NoError(t, a.Verify())
	st := a.stats()
	assert.Equal(t, 200, headFreeSize(t, a, 2))
	_ = st

	a.Free(pa)
	require.NoError(t, a.Verify())
	assert.Equal(t, 100+200+2*tagSize, headFreeSize(t, a, 2))

	a.Free(pc)
	require.NoError(t, a.Verify())
	assert.Equal(t, 40000-2*tagSize, freeBlockSize(t, a))
	assert.Equal(t, 40000, a.TotalAccounted())
}

// freeBlockSize asserts the free list holds exactly one node and returns its
// payload size.
func freeBlockSize(t *testing.T, a *Arena) int {
	t.Helper()
	require.NotEqual(t, nilOffset, a.freeHead)
	c := a.at(a.freeHead)
	require.Equal(t, nilOffset, c.nextLink())
	return c.payloadSize()
}

// headFreeSize asserts the free list holds exactly n nodes and returns the
// payload size of its head, the block most recently freed or merged.
func headFreeSize(t *testing.T, a *Arena, n int) int {
	t.Helper()
	count := 0
	for off := a.freeHead; off != nilOffset; off = a.at(off).nextLink() {
		count++
	}
	require.Equal(t, n, count)
	return a.at(a.freeHead).payloadSize()
}

func TestFreeDoesNotCoalesceAcrossAllocatedBlock(t *testing.T) {
	a := NewArena(40000)
	defer a.Close()

	pa := a.Allocate(100)
	pb := a.Allocate(200)
	_ = a.Allocate(300)
	require.NotNil(t, pa)
	require.NotNil(t, pb)

	a.Free(pb)
	require.NoError(t, a.Verify())

	off, ok := a.headerOffsetOf(pb)
	require.True(t, ok)
	assert.True(t, a.at(off).isFree())
	assert.False(t, a.at(0).isFree())
}

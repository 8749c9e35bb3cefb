package malloc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReallocGrowsInPlaceWhenNothingElseLiveForces(t *testing.T) {
	a := NewArena(40000)
	defer a.Close()

	p := a.Allocate(200)
	require.NotNil(t, p)
	copy(p, bytes.Repeat([]byte{'B'}, 200))

	q := a.Realloc(p, 400)
	require.NotNil(t, q)
	assert.Equal(t, bytes.Repeat([]byte{'B'}, 200), q[:200])
	require.NoError(t, a.Verify())
}

func TestReallocFailureLeavesHeapAndPayloadUntouched(t *testing.T) {
	a := NewArena(40000)
	defer a.Close()

	p := a.Allocate(40000 - 2*tagSize)
	require.NotNil(t, p)
	for i := range p {
		p[i] = byte(i)
	}

	before := make([]byte, len(p))
	copy(before, p)

	off, ok := a.headerOffsetOf(p)
	require.True(t, ok)

	q := a.Realloc(p, 40000-2*tagSize+1)
	assert.Nil(t, q)

	assert.Equal(t, before, p)
	assert.True(t, a.validAt(off))
	st := a.stats()
	assert.Equal(t, 1, st.Blocks)
	assert.Equal(t, 40000-2*tagSize, st.AllocBytes)
	require.NoError(t, a.Verify())
}

func TestReallocRollbackWithBothNeighborsFree(t *testing.T) {
	a := NewArena(40000)
	defer a.Close()

	pa := a.Allocate(100)
	pb := a.Allocate(16)
	pc := a.Allocate(300)
	require.NotNil(t, pa)
	require.NotNil(t, pb)
	require.NotNil(t, pc)

	a.Free(pa)
	a.Free(pc)
	require.NoError(t, a.Verify())

	for i := range pb {
		pb[i] = byte('X' + i%3)
	}
	before := append([]byte(nil), pb...)

	// The whole arena minus pb's own block is free, so asking for
	// something larger than that free space forces allocate to fail
	// and Realloc to roll back a free that coalesced both neighbors.
	huge := a.Size() * 2
	q := a.Realloc(pb, huge)
	assert.Nil(t, q)
	assert.Equal(t, before, pb)
	require.NoError(t, a.Verify())
	assert.Equal(t, 40000, a.TotalAccounted())

	st := a.stats()
	assert.Equal(t, 3, st.Blocks)
}

func TestReallocShrinkPreservesPrefix(t *testing.T) {
	a := NewArena(1000)
	defer a.Close()

	p := a.Allocate(100)
	require.NotNil(t, p)
	copy(p, bytes.Repeat([]byte{'Z'}, 100))

	q := a.Realloc(p, 40)
	require.NotNil(t, q)
	assert.Equal(t, bytes.Repeat([]byte{'Z'}, 40), q)
	require.NoError(t, a.Verify())
}

// SPDX-License-Identifier: MIT

package bpl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	type point struct{ x, y int64 }

	p := New[point](nil)
	require.NotNil(t, p)
	require.Zero(t, p.x)

	arena := NewArena(PageSize())
	defer arena.Release()

	q := New[point](arena)
	require.NotNil(t, q)
	require.Zero(t, q.y)
	q.x, q.y = 1, 2
	require.Equal(t, point{1, 2}, *q)
	require.GreaterOrEqual(t, arena.Size(), uintptr(16))
}

func TestMakeSlice(t *testing.T) {
	s := MakeSlice[int](nil, 3, 10)
	require.Len(t, s, 3)
	require.Equal(t, 10, cap(s))

	arena := NewArena(PageSize())
	defer arena.Release()

	s = MakeSlice[int](arena, 5, 8)
	require.Len(t, s, 5)
	require.Equal(t, 8, cap(s))
	for _, x := range s {
		require.Zero(t, x)
	}
	s[0] = 42
	require.Equal(t, 42, s[0])
}

func TestMakeSliceZeroCap(t *testing.T) {
	arena := NewArena(PageSize())
	defer arena.Release()

	s := MakeSlice[int](arena, 0, 0)
	require.Empty(t, s)
	require.True(t, arena.Empty())
}

func TestAppend(t *testing.T) {
	arena := NewArena(PageSize())
	defer arena.Release()

	var s []int
	for i := range 100 {
		s = Append(arena, s, i)
	}
	require.Len(t, s, 100)
	for i := range 100 {
		require.Equal(t, i, s[i])
	}

	// Nil allocator falls back to the built-in append.
	s2 := Append[int](nil, nil, 1, 2, 3)
	require.Equal(t, []int{1, 2, 3}, s2)
}

func TestAppendWithinCapacity(t *testing.T) {
	arena := NewArena(PageSize())
	defer arena.Release()

	s := MakeSlice[int](arena, 0, 8)
	before := arena.Size()
	s = Append(arena, s, 1, 2, 3)
	require.Equal(t, before, arena.Size(), "no growth within capacity")
	require.Equal(t, []int{1, 2, 3}, s)
}

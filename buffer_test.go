// SPDX-License-Identifier: MIT

package bpl

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferWriteRead(t *testing.T) {
	b := NewBuffer(nil)

	n, err := b.Write([]byte("hello, "))
	require.NoError(t, err)
	require.Equal(t, 7, n)

	n, err = b.WriteString("world")
	require.NoError(t, err)
	require.Equal(t, 5, n)

	require.NoError(t, b.WriteByte('!'))

	require.Equal(t, 13, b.Len())
	require.Equal(t, "hello, world!", b.String())

	p := make([]byte, 5)
	n, err = b.Read(p)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "hello", string(p))
	require.Equal(t, 8, b.Len())

	p = make([]byte, 64)
	n, err = b.Read(p)
	require.ErrorIs(t, err, io.EOF)
	require.Equal(t, 8, n)
	require.Equal(t, ", world!", string(p[:n]))

	_, err = b.Read(p)
	require.ErrorIs(t, err, io.EOF)
}

func TestBufferReadByte(t *testing.T) {
	b := NewBuffer(nil)
	_, err := b.WriteString("ab")
	require.NoError(t, err)

	c, err := b.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte('a'), c)

	c, err = b.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte('b'), c)

	_, err = b.ReadByte()
	require.ErrorIs(t, err, io.EOF)
}

func TestBufferReadFrom(t *testing.T) {
	b := NewBuffer(nil)
	n, err := b.ReadFrom(strings.NewReader("the quick brown fox"))
	require.NoError(t, err)
	require.Equal(t, int64(19), n)
	require.Equal(t, "the quick brown fox", b.String())
}

func TestBufferWriteTo(t *testing.T) {
	b := NewBuffer(nil)
	_, err := b.WriteString("payload")
	require.NoError(t, err)

	var sink bytes.Buffer
	n, err := b.WriteTo(&sink)
	require.NoError(t, err)
	require.Equal(t, int64(7), n)
	require.Equal(t, "payload", sink.String())
	require.Zero(t, b.Len())

	n, err = b.WriteTo(&sink)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestBufferResetTruncate(t *testing.T) {
	b := NewBuffer(nil)
	_, err := b.WriteString("0123456789")
	require.NoError(t, err)

	b.Truncate(4)
	require.Equal(t, "0123", b.String())

	require.Panics(t, func() { b.Truncate(5) })
	require.Panics(t, func() { b.Truncate(-1) })

	b.Reset()
	require.Zero(t, b.Len())
	require.GreaterOrEqual(t, b.Cap(), 10, "storage kept after Reset")
}

func TestBufferNext(t *testing.T) {
	b := NewBuffer(nil)
	_, err := b.WriteString("abcdef")
	require.NoError(t, err)

	require.Equal(t, []byte("abc"), b.Next(3))
	require.Equal(t, []byte("def"), b.Next(10))
	require.Empty(t, b.Next(1))
	require.Empty(t, b.Next(0))
}

func TestBufferOnArena(t *testing.T) {
	arena := NewArena(PageSize())
	defer arena.Release()

	b := NewBuffer(arena)
	_, err := b.WriteString("arena-backed")
	require.NoError(t, err)
	require.Equal(t, "arena-backed", b.String())
	require.False(t, arena.Empty())

	b.Reset()
	_, err = b.WriteString("reused")
	require.NoError(t, err)
	require.Equal(t, "reused", b.String())
}

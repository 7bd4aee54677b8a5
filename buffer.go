// SPDX-License-Identifier: MIT

package bpl

import (
	"io"
)

// Buffer is a bytes.Buffer-like reader/writer whose storage comes
// from an Allocator. It implements io.Reader, io.Writer,
// io.ReaderFrom and io.WriterTo.
type Buffer struct {
	buf     Array[byte]
	readBuf []byte // intermediate buffer for ReadFrom
}

// NewBuffer creates an empty Buffer that allocates from a. A nil
// allocator means GlobalAllocator.
func NewBuffer(a Allocator) *Buffer {
	return &Buffer{buf: NewArray[byte](a)}
}

// Write appends p to the buffer. It never returns an error.
func (b *Buffer) Write(p []byte) (int, error) {
	b.buf.AppendSlice(p)
	return len(p), nil
}

// WriteByte appends a single byte to the buffer.
func (b *Buffer) WriteByte(c byte) error {
	b.buf.Append(c)
	return nil
}

// WriteString appends s to the buffer.
func (b *Buffer) WriteString(s string) (int, error) {
	b.buf.AppendSlice([]byte(s))
	return len(s), nil
}

// WriteTo writes the unread contents to w until the buffer is
// drained or w reports an error.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	if b.buf.Empty() {
		return 0, nil
	}
	m, err := w.Write(b.buf.Data())
	if m > 0 {
		b.buf.RemoveRange(0, m)
	}
	return int64(m), err
}

// Read reads up to len(p) bytes from the buffer into p. It returns
// io.EOF once the buffer cannot satisfy the full read.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.buf.Empty() {
		return 0, io.EOF
	}
	n := copy(p, b.buf.Data())
	b.buf.RemoveRange(0, n)
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// ReadByte reads and returns the next byte from the buffer.
func (b *Buffer) ReadByte() (byte, error) {
	if b.buf.Empty() {
		return 0, io.EOF
	}
	return b.buf.Remove(0), nil
}

// ReadFrom reads from r until EOF or error, appending to the buffer.
// The intermediate read buffer comes from the buffer's allocator.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	const readBufferSize = 4 * 1024
	if b.readBuf == nil {
		b.readBuf = MakeSlice[byte](b.buf.Allocator(), readBufferSize, readBufferSize)
	}

	var n int64
	for {
		nr, err := r.Read(b.readBuf)
		if nr > 0 {
			b.buf.AppendSlice(b.readBuf[:nr])
			n += int64(nr)
		}
		if err != nil {
			if err == io.EOF {
				return n, nil
			}
			return n, err
		}
	}
}

// Bytes returns the unread portion of the buffer. The slice is valid
// only until the next modification.
func (b *Buffer) Bytes() []byte {
	return b.buf.Data()
}

// String returns the unread portion of the buffer as a string.
func (b *Buffer) String() string {
	return string(b.buf.Data())
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int {
	return b.buf.Len()
}

// Cap returns the capacity of the underlying storage.
func (b *Buffer) Cap() int {
	return b.buf.Cap()
}

// Reset discards all contents, keeping the storage for reuse.
func (b *Buffer) Reset() {
	b.buf.Clear()
}

// Truncate discards all but the first n unread bytes. It panics if n
// is negative or greater than Len.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > b.buf.Len() {
		panic("bpl: buffer truncation out of range")
	}
	b.buf.ResizeUninit(n)
}

// Next returns a copy of the next n bytes, advancing the buffer as
// if they had been returned by Read. Fewer bytes are returned when
// the buffer holds fewer.
func (b *Buffer) Next(n int) []byte {
	if n <= 0 {
		return []byte{}
	}
	if n > b.buf.Len() {
		n = b.buf.Len()
	}
	if n == 0 {
		return []byte{}
	}
	result := make([]byte, n)
	copy(result, b.buf.Data())
	b.buf.RemoveRange(0, n)
	return result
}

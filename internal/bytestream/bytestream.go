// SPDX-License-Identifier: EPL-2.0

// Package bytestream provides little-endian typed writes and reads over a
// byte slice with length tracking.
package bytestream

import (
	"encoding/binary"
	"errors"
)

var ErrShortBuffer = errors.New("read past end of buffer")

// Writer appends little-endian values to a growing buffer.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer whose buffer is pre-sized to capacity bytes.
func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

// NewAppendWriter returns a Writer that appends to b.
func NewAppendWriter(b []byte) *Writer {
	return &Writer{buf: b}
}

func (w *Writer) PutUint32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }
func (w *Writer) PutInt64(v int64)   { w.buf = binary.LittleEndian.AppendUint64(w.buf, uint64(v)) }
func (w *Writer) PutBytes(b []byte)  { w.buf = append(w.buf, b...) }

// PutBool writes a single byte, 1 for true and 0 for false.
func (w *Writer) PutBool(v bool) {
	var b byte
	if v {
		b = 1
	}
	w.buf = append(w.buf, b)
}

func (w *Writer) Len() int { return len(w.buf) }

// Bytes returns the written buffer. The Writer must not be used afterwards.
func (w *Writer) Bytes() []byte { return w.buf }

// Reader consumes little-endian values from a byte slice.
//
// Reads that run past the end return zero values and set a sticky error,
// reported by Err.
type Reader struct {
	buf []byte
	off int
	err error
}

func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.Remaining() < n {
		r.err = ErrShortBuffer
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *Reader) Uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *Reader) Int64() int64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return int64(binary.LittleEndian.Uint64(b))
}

// Bool reads one byte; any non-zero value is true.
func (r *Reader) Bool() bool {
	b := r.take(1)
	if b == nil {
		return false
	}
	return b[0] != 0
}

// Bytes returns a copy of the next n bytes.
func (r *Reader) Bytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

func (r *Reader) Remaining() int { return len(r.buf) - r.off }
func (r *Reader) Offset() int    { return r.off }
func (r *Reader) Err() error     { return r.err }

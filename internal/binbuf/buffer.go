// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GiantsEdit Authors

// Package binbuf provides a position-tracked reader/writer over a byte
// buffer, with the little-endian primitives the legacy map formats use.
package binbuf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrEndOfStream indicates a read required more bytes than remain.
var ErrEndOfStream = errors.New("end of stream")

// Buffer wraps a byte slice and a cursor position. Reads consume from the
// cursor forward; writes overwrite in place when inside the buffer and
// append when at the end, which supports seeking back to patch a field.
type Buffer struct {
	data []byte
	pos  int
}

// New returns an empty Buffer for writing.
func New() *Buffer {
	return &Buffer{}
}

// From returns a Buffer reading from data. The slice is not copied; callers
// must not mutate it for the lifetime of the Buffer.
func From(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Pos returns the current cursor position.
func (b *Buffer) Pos() int { return b.pos }

// SetPos moves the cursor. Positions beyond the current length are invalid.
func (b *Buffer) SetPos(p int) error {
	if p < 0 || p > len(b.data) {
		return fmt.Errorf("position %d out of range [0, %d]", p, len(b.data))
	}
	b.pos = p
	return nil
}

// Len returns the total buffer length.
func (b *Buffer) Len() int { return len(b.data) }

// HasMore reports whether unread bytes remain after the cursor.
func (b *Buffer) HasMore() bool { return b.pos < len(b.data) }

// Bytes returns the underlying buffer.
func (b *Buffer) Bytes() []byte { return b.data }

func (b *Buffer) take(n int) ([]byte, error) {
	if len(b.data)-b.pos < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrEndOfStream, n, b.pos, len(b.data)-b.pos)
	}
	p := b.data[b.pos : b.pos+n]
	b.pos += n
	return p, nil
}

// ReadByte reads one byte.
func (b *Buffer) ReadByte() (byte, error) {
	p, err := b.take(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

// ReadWord reads a 16-bit unsigned integer.
func (b *Buffer) ReadWord() (uint16, error) {
	p, err := b.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(p), nil
}

// ReadInt32 reads a 32-bit signed integer.
func (b *Buffer) ReadInt32() (int32, error) {
	v, err := b.ReadUint32()
	return int32(v), err
}

// ReadUint32 reads a 32-bit unsigned integer.
func (b *Buffer) ReadUint32() (uint32, error) {
	p, err := b.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(p), nil
}

// ReadSingle reads a 32-bit IEEE float. The bit pattern is preserved
// exactly, including NaN payloads.
func (b *Buffer) ReadSingle() (float32, error) {
	v, err := b.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFixedString reads exactly n bytes and interprets the bytes up to the
// first NUL (or all n when none) as the string value.
func (b *Buffer) ReadFixedString(n int) (string, error) {
	p, err := b.take(n)
	if err != nil {
		return "", err
	}
	for i, c := range p {
		if c == 0 {
			return string(p[:i]), nil
		}
	}
	return string(p), nil
}

// ReadPrefixedString reads a one-byte length followed by that many bytes.
func (b *Buffer) ReadPrefixedString() (string, error) {
	n, err := b.ReadByte()
	if err != nil {
		return "", err
	}
	p, err := b.take(int(n))
	if err != nil {
		return "", err
	}
	return string(p), nil
}

// ReadCString reads bytes up to and including a NUL terminator. A missing
// terminator ends the string at the end of the buffer; reading with the
// cursor already at the end fails.
func (b *Buffer) ReadCString() (string, error) {
	if b.pos >= len(b.data) {
		return "", fmt.Errorf("%w: need terminated string at offset %d", ErrEndOfStream, b.pos)
	}
	start := b.pos
	for b.pos < len(b.data) {
		if b.data[b.pos] == 0 {
			s := string(b.data[start:b.pos])
			b.pos++
			return s, nil
		}
		b.pos++
	}
	return string(b.data[start:]), nil
}

// ReadRGB reads three bytes as unsigned color channels.
func (b *Buffer) ReadRGB() (r, g, bl byte, err error) {
	p, err := b.take(3)
	if err != nil {
		return 0, 0, 0, err
	}
	return p[0], p[1], p[2], nil
}

func (b *Buffer) put(p []byte) {
	n := copy(b.data[b.pos:], p)
	if n < len(p) {
		b.data = append(b.data, p[n:]...)
	}
	b.pos += len(p)
}

// WriteByte writes one byte.
func (b *Buffer) WriteByte(v byte) {
	b.put([]byte{v})
}

// WriteWord writes a 16-bit unsigned integer.
func (b *Buffer) WriteWord(v uint16) {
	var p [2]byte
	binary.LittleEndian.PutUint16(p[:], v)
	b.put(p[:])
}

// WriteInt32 writes a 32-bit signed integer.
func (b *Buffer) WriteInt32(v int32) {
	b.WriteUint32(uint32(v))
}

// WriteUint32 writes a 32-bit unsigned integer.
func (b *Buffer) WriteUint32(v uint32) {
	var p [4]byte
	binary.LittleEndian.PutUint32(p[:], v)
	b.put(p[:])
}

// WriteSingle writes a 32-bit IEEE float.
func (b *Buffer) WriteSingle(v float32) {
	b.WriteUint32(math.Float32bits(v))
}

// WriteFixedString writes s NUL-padded to exactly n bytes. Strings longer
// than n-1 bytes are rejected so the buffer always carries a terminator.
func (b *Buffer) WriteFixedString(s string, n int) error {
	if len(s) >= n {
		return fmt.Errorf("string %q exceeds fixed field of %d bytes", s, n)
	}
	p := make([]byte, n)
	copy(p, s)
	b.put(p)
	return nil
}

// WritePrefixedString writes a one-byte length followed by the string bytes.
func (b *Buffer) WritePrefixedString(s string) error {
	if len(s) > 255 {
		return fmt.Errorf("string of %d bytes exceeds one-byte length prefix", len(s))
	}
	b.WriteByte(byte(len(s)))
	b.put([]byte(s))
	return nil
}

// WriteCString writes the string bytes followed by a NUL terminator.
func (b *Buffer) WriteCString(s string) {
	b.put([]byte(s))
	b.WriteByte(0)
}

// WriteRGB writes three color channel bytes.
func (b *Buffer) WriteRGB(r, g, bl byte) {
	b.put([]byte{r, g, bl})
}

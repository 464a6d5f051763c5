// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
)

// Cursor reads sequentially from an in-memory byte slice and tracks the read
// position. It implements io.Reader, so every ReadElement style helper can
// read from it, and it lets decoders bound length prefixes by the number of
// bytes actually remaining.
//
// A Cursor is not safe for concurrent use.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor positioned at the start of buf. The slice is
// not copied and must not be modified while the cursor is in use.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Read implements io.Reader.
func (c *Cursor) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if c.pos >= len(c.buf) {
		return 0, io.EOF
	}
	n := copy(p, c.buf[c.pos:])
	c.pos += n
	return n, nil
}

// Position returns the offset of the next byte to be read.
func (c *Cursor) Position() int {
	return c.pos
}

// SetPosition moves the cursor to pos, which must lie within the buffer.
// Setting it to the buffer length leaves nothing to read.
func (c *Cursor) SetPosition(pos int) error {
	if pos < 0 || pos > len(c.buf) {
		return messageError("Cursor.SetPosition", fmt.Sprintf(
			"position %d is outside of the %d byte buffer", pos, len(c.buf)))
	}
	c.pos = pos
	return nil
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// ReadBytes returns a copy of the next n bytes. Asking for more bytes than
// remain is a malformed error and does not move the cursor.
func (c *Cursor) ReadBytes(n uint64) ([]byte, error) {
	if n > uint64(c.Remaining()) {
		return nil, messageError("Cursor.ReadBytes", fmt.Sprintf(
			"cannot read %d bytes, only %d remain", n, c.Remaining()))
	}
	b := make([]byte, n)
	copy(b, c.buf[c.pos:])
	c.pos += int(n)
	return b, nil
}

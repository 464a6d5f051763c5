// Package binaryserializer reads and writes fixed-width little-endian
// integers to and from io.Readers and io.Writers.
package binaryserializer

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// maxItems is the number of buffers to keep in the free
// list to use for binary serialization and deserialization.
const maxItems = 1024

// binaryFreeList provides a free list of 8-byte buffers used to read and
// write primitive integer values. It is safe for concurrent use.
var binaryFreeList = make(chan []byte, maxItems)

// Borrow returns a byte slice from the free list with a length of 8. A new
// buffer is allocated if there are not any available on the free list.
func Borrow() []byte {
	var buf []byte
	select {
	case buf = <-binaryFreeList:
	default:
		buf = make([]byte, 8)
	}
	return buf[:8]
}

// Return puts the provided byte slice back on the free list. Buffers that
// were not obtained through Borrow are left to the garbage collector.
func Return(buf []byte) {
	if cap(buf) != 8 {
		return
	}
	select {
	case binaryFreeList <- buf[:8]:
	default:
	}
}

// readFull borrows a buffer, fills its first size bytes from r and hands
// them to decode before the buffer goes back to the free list.
func readFull(r io.Reader, size int, decode func([]byte)) error {
	buf := Borrow()
	defer Return(buf)
	if _, err := io.ReadFull(r, buf[:size]); err != nil {
		return errors.WithStack(err)
	}
	decode(buf[:size])
	return nil
}

// Uint8 reads a single byte from r.
func Uint8(r io.Reader) (uint8, error) {
	var rv uint8
	err := readFull(r, 1, func(b []byte) { rv = b[0] })
	return rv, err
}

// Uint16 reads two little-endian bytes from r.
func Uint16(r io.Reader) (uint16, error) {
	var rv uint16
	err := readFull(r, 2, func(b []byte) { rv = binary.LittleEndian.Uint16(b) })
	return rv, err
}

// Uint32 reads four little-endian bytes from r.
func Uint32(r io.Reader) (uint32, error) {
	var rv uint32
	err := readFull(r, 4, func(b []byte) { rv = binary.LittleEndian.Uint32(b) })
	return rv, err
}

// Uint64 reads eight little-endian bytes from r.
func Uint64(r io.Reader) (uint64, error) {
	var rv uint64
	err := readFull(r, 8, func(b []byte) { rv = binary.LittleEndian.Uint64(b) })
	return rv, err
}

// Int32 reads four little-endian bytes from r as a two's complement value.
func Int32(r io.Reader) (int32, error) {
	rv, err := Uint32(r)
	return int32(rv), err
}

// Int64 reads eight little-endian bytes from r as a two's complement value.
func Int64(r io.Reader) (int64, error) {
	rv, err := Uint64(r)
	return int64(rv), err
}

func writeFull(w io.Writer, size int, encode func([]byte)) error {
	buf := Borrow()
	defer Return(buf)
	encode(buf[:size])
	_, err := w.Write(buf[:size])
	return errors.WithStack(err)
}

// PutUint8 writes val to w as a single byte.
func PutUint8(w io.Writer, val uint8) error {
	return writeFull(w, 1, func(b []byte) { b[0] = val })
}

// PutUint16 writes val to w as two little-endian bytes.
func PutUint16(w io.Writer, val uint16) error {
	return writeFull(w, 2, func(b []byte) { binary.LittleEndian.PutUint16(b, val) })
}

// PutUint32 writes val to w as four little-endian bytes.
func PutUint32(w io.Writer, val uint32) error {
	return writeFull(w, 4, func(b []byte) { binary.LittleEndian.PutUint32(b, val) })
}

// PutUint64 writes val to w as eight little-endian bytes.
func PutUint64(w io.Writer, val uint64) error {
	return writeFull(w, 8, func(b []byte) { binary.LittleEndian.PutUint64(b, val) })
}

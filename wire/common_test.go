// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

// fixedWriter implements the io.Writer interface and intentionally allows
// testing of error paths by forcing short writes.
type fixedWriter struct {
	b   []byte
	pos int
}

func (w *fixedWriter) Write(p []byte) (n int, err error) {
	lenp := len(p)
	if w.pos+lenp > cap(w.b) {
		return 0, io.ErrShortWrite
	}
	n = lenp
	w.pos += copy(w.b[w.pos:], p)
	return
}

func newFixedWriter(max int) io.Writer {
	return &fixedWriter{b: make([]byte, max)}
}

// TestElementWire tests wire encode and decode for various element types.
func TestElementWire(t *testing.T) {
	tests := []struct {
		in  interface{} // Value to encode
		buf []byte      // Wire encoding
	}{
		{int32(1), []byte{0x01, 0x00, 0x00, 0x00}},
		{int32(-2), []byte{0xfe, 0xff, 0xff, 0xff}},
		{uint32(256), []byte{0x00, 0x01, 0x00, 0x00}},
		{int64(-1), []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
		{uint64(65536), []byte{0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00}},
		{uint16(0x0102), []byte{0x02, 0x01}},
		{uint8(0x7f), []byte{0x7f}},
		{
			Hash{0x01, 0x02, 0x03, 0x04},
			[]byte{
				0x01, 0x02, 0x03, 0x04, 0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			},
		},
		{
			KeyID{0xaa, 0xbb},
			[]byte{
				0xaa, 0xbb, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00,
			},
		},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		// Write to wire format.
		var buf bytes.Buffer
		err := WriteElement(&buf, test.in)
		if err != nil {
			t.Errorf("WriteElement #%d error %v", i, err)
			continue
		}
		if !bytes.Equal(buf.Bytes(), test.buf) {
			t.Errorf("WriteElement #%d\n got: %s want: %s", i,
				spew.Sdump(buf.Bytes()), spew.Sdump(test.buf))
			continue
		}

		// Read from wire format.
		rbuf := bytes.NewReader(test.buf)
		val := reflect.New(reflect.TypeOf(test.in)).Interface()
		err = ReadElement(rbuf, val)
		if err != nil {
			t.Errorf("ReadElement #%d error %v", i, err)
			continue
		}
		got := reflect.Indirect(reflect.ValueOf(val)).Interface()
		if !reflect.DeepEqual(got, test.in) {
			t.Errorf("ReadElement #%d\n got: %s want: %s", i,
				spew.Sdump(got), spew.Sdump(test.in))
			continue
		}
	}
}

func TestElementNoEncoding(t *testing.T) {
	var s string
	if err := ReadElement(bytes.NewReader(nil), &s); !errors.Is(err, errNoEncodingForType) {
		t.Errorf("ReadElement: got %v, want errNoEncodingForType", err)
	}
	if err := WriteElement(io.Discard, s); !errors.Is(err, errNoEncodingForType) {
		t.Errorf("WriteElement: got %v, want errNoEncodingForType", err)
	}
}

// TestVarIntWire tests wire encode and decode for variable length integers.
func TestVarIntWire(t *testing.T) {
	tests := []struct {
		in  uint64 // Value to encode
		buf []byte // Wire encoding
	}{
		// Single byte
		{0, []byte{0x00}},
		// Max single byte
		{0xfc, []byte{0xfc}},
		// Min 2-byte
		{0xfd, []byte{0xfd, 0x0fd, 0x00}},
		// Max 2-byte
		{0xffff, []byte{0xfd, 0xff, 0xff}},
		// Min 4-byte
		{0x10000, []byte{0xfe, 0x00, 0x00, 0x01, 0x00}},
		// Max 4-byte
		{0xffffffff, []byte{0xfe, 0xff, 0xff, 0xff, 0xff}},
		// Min 8-byte
		{
			0x100000000,
			[]byte{0xff, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00},
		},
		// Max 8-byte
		{
			0xffffffffffffffff,
			[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		var buf bytes.Buffer
		err := WriteVarInt(&buf, test.in)
		if err != nil {
			t.Errorf("WriteVarInt #%d error %v", i, err)
			continue
		}
		if !bytes.Equal(buf.Bytes(), test.buf) {
			t.Errorf("WriteVarInt #%d\n got: %s want: %s", i,
				spew.Sdump(buf.Bytes()), spew.Sdump(test.buf))
			continue
		}
		if size := VarIntSerializeSize(test.in); size != len(test.buf) {
			t.Errorf("VarIntSerializeSize #%d got: %d, want: %d", i, size, len(test.buf))
		}

		val, err := ReadVarInt(NewCursor(test.buf))
		if err != nil {
			t.Errorf("ReadVarInt #%d error %v", i, err)
			continue
		}
		if val != test.in {
			t.Errorf("ReadVarInt #%d\n got: %d want: %d", i, val, test.in)
			continue
		}
	}
}

// TestVarIntNonCanonical ensures variable length integers that are not
// encoded canonically return the expected error.
func TestVarIntNonCanonical(t *testing.T) {
	tests := []struct {
		name string // Test name for easier identification
		in   []byte // Value to decode
	}{
		{"0 encoded with 3 bytes", []byte{0xfd, 0x00, 0x00}},
		{"max single-byte value encoded with 3 bytes", []byte{0xfd, 0xfc, 0x00}},
		{"0 encoded with 5 bytes", []byte{0xfe, 0x00, 0x00, 0x00, 0x00}},
		{"max three-byte value encoded with 5 bytes", []byte{0xfe, 0xff, 0xff, 0x00, 0x00}},
		{"0 encoded with 9 bytes", []byte{0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},
		{"max five-byte value encoded with 9 bytes", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00}},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		_, err := ReadVarInt(NewCursor(test.in))
		var msgErr *MessageError
		if !errors.As(err, &msgErr) {
			t.Errorf("ReadVarInt #%d (%s) unexpected error %v", i, test.name, err)
			continue
		}
		if !IsMalformedError(err) {
			t.Errorf("ReadVarInt #%d (%s) error is not malformed: %v", i, test.name, err)
		}
	}
}

// TestVarBytesBounds ensures that length prefixes are checked before any
// allocation happens.
func TestVarBytesBounds(t *testing.T) {
	// Length prefix of 0xffffffff followed by a single byte.
	huge := []byte{0xfe, 0xff, 0xff, 0xff, 0xff, 0x01}

	_, err := ReadVarBytes(NewCursor(huge), MaxMessagePayload, "huge")
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("ReadVarBytes over max allowed: got %v, want ErrMalformed", err)
	}

	// Within max allowed but past the end of the cursor.
	short := []byte{0x05, 0x01, 0x02}
	_, err = ReadVarBytes(NewCursor(short), MaxMessagePayload, "short")
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("ReadVarBytes past cursor end: got %v, want ErrMalformed", err)
	}

	// Plain readers report truncation through io errors.
	_, err = ReadVarBytes(bytes.NewReader(short), MaxMessagePayload, "short")
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadVarBytes on plain reader: got %v, want io.ErrUnexpectedEOF", err)
	}

	var buf bytes.Buffer
	if err := WriteVarBytes(&buf, []byte{0x01, 0x02}); err != nil {
		t.Fatalf("WriteVarBytes: %v", err)
	}
	got, err := ReadVarBytes(bytes.NewReader(buf.Bytes()), 2, "exact")
	if err != nil || !bytes.Equal(got, []byte{0x01, 0x02}) {
		t.Errorf("ReadVarBytes round trip: got %x, %v", got, err)
	}
}

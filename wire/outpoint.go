// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// OutpointSize is the serialized size of an Outpoint: hash plus index.
const OutpointSize = HashSize + 4

// Outpoint references an output of a previous transaction.
type Outpoint struct {
	TxID  Hash
	Index uint32
}

// NewOutpoint returns a new outpoint with the provided hash and index.
func NewOutpoint(txID *Hash, index uint32) *Outpoint {
	return &Outpoint{
		TxID:  *txID,
		Index: index,
	}
}

// String returns the Outpoint in the human-readable form "txID:index".
func (o Outpoint) String() string {
	buf := make([]byte, 2*HashSize+1, 2*HashSize+1+10)
	copy(buf, o.TxID.String())
	buf[2*HashSize] = ':'
	buf = strconv.AppendUint(buf, uint64(o.Index), 10)
	return string(buf)
}

// ReadOutpoint reads the 32-byte hash and 4-byte index of an outpoint.
func ReadOutpoint(r io.Reader, op *Outpoint) error {
	return ReadElements(r, &op.TxID, &op.Index)
}

// WriteOutpoint writes op as its 32-byte hash followed by its 4-byte index.
func WriteOutpoint(w io.Writer, op *Outpoint) error {
	return WriteElements(w, &op.TxID, op.Index)
}

// NewOutpointFromString parses the "txID:index" form produced by
// Outpoint.String.
func NewOutpointFromString(s string) (*Outpoint, error) {
	sep := strings.LastIndexByte(s, ':')
	if sep < 0 {
		return nil, errors.Errorf("outpoint %q is not in the form txid:index", s)
	}
	txID, err := NewHashFromStr(s[:sep])
	if err != nil {
		return nil, err
	}
	index, err := strconv.ParseUint(s[sep+1:], 10, 32)
	if err != nil {
		return nil, errors.Wrapf(err, "outpoint %q has a bad index", s)
	}
	return NewOutpoint(txID, uint32(index)), nil
}

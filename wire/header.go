// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"math"

	"github.com/pkg/errors"
)

// MinSpecialTxVersion is the lowest version a special transaction can have.
// Headers with a non-zero type and a lower version are legacy.
const MinSpecialTxVersion = 3

// ParseTxHeader splits the first four bytes of a transaction, read as a
// little-endian uint32, into its version and special transaction type.
//
// The upper 16 bits are the type and the lower 16 bits the version. A type
// of 0 means a legacy transaction whose version is the whole header as a
// signed 32-bit value. A non-zero type with a version below
// MinSpecialTxVersion is also legacy: the wire format cannot tell it apart
// from a legacy version with its upper bits set, and special transactions
// never used such versions.
func ParseTxHeader(header uint32) (version int32, txType uint16) {
	txType = uint16(header >> 16)
	if txType == 0 {
		return int32(header), 0
	}

	version16 := header & 0xffff
	if version16 < MinSpecialTxVersion {
		log.Tracef("Header %08x has type %d but version %d, decoding as legacy",
			header, txType, version16)
		return int32(header), 0
	}
	return int32(version16), txType
}

// MakeTxHeader is the inverse of ParseTxHeader for values it can produce.
// A special transaction's version must fit in 16 bits.
func MakeTxHeader(version int32, txType uint16) (uint32, error) {
	if txType == 0 {
		return uint32(version), nil
	}
	if version < 0 || version > math.MaxUint16 {
		return 0, errors.Wrapf(ErrInvariantViolation,
			"version %d of special transaction type %d does not fit in 16 bits", version, txType)
	}
	return uint32(txType)<<16 | uint32(version), nil
}

// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/hex"

	"github.com/btcsuite/btcutil"
	"github.com/pkg/errors"
)

// KeyIDSize is the size of a key id in bytes.
const KeyIDSize = 20

// KeyID identifies a signing key by the HASH160 (RIPEMD-160 of SHA-256) of
// its serialized public key.
type KeyID [KeyIDSize]byte

// NewKeyIDFromSlice returns a KeyID holding a copy of b. Any length other
// than KeyIDSize is an ErrInvariantViolation.
func NewKeyIDFromSlice(b []byte) (*KeyID, error) {
	if len(b) != KeyIDSize {
		return nil, errors.Wrapf(ErrInvariantViolation,
			"invalid key id length of %d, want %d", len(b), KeyIDSize)
	}
	var id KeyID
	copy(id[:], b)
	return &id, nil
}

// KeyIDFromPubKey returns the key id of a serialized public key.
func KeyIDFromPubKey(serializedPubKey []byte) KeyID {
	var id KeyID
	copy(id[:], btcutil.Hash160(serializedPubKey))
	return id
}

// String returns the key id in hexadecimal, in wire order.
func (id KeyID) String() string {
	return hex.EncodeToString(id[:])
}

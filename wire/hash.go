// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
)

// HashSize is the size of a transaction hash in bytes.
const HashSize = 32

// MaxHashStringSize is the maximum length of a Hash hash string.
const MaxHashStringSize = HashSize * 2

// Hash is a double SHA-256 transaction hash. Being an array, it always holds
// exactly HashSize bytes.
type Hash [HashSize]byte

// String returns the Hash as the hexadecimal string of the byte-reversed
// hash, which is how transaction ids are displayed.
func (hash Hash) String() string {
	for i := 0; i < HashSize/2; i++ {
		hash[i], hash[HashSize-1-i] = hash[HashSize-1-i], hash[i]
	}
	return hex.EncodeToString(hash[:])
}

// IsEqual returns true if target is the same as hash.
func (hash *Hash) IsEqual(target *Hash) bool {
	if hash == nil && target == nil {
		return true
	}
	if hash == nil || target == nil {
		return false
	}
	return *hash == *target
}

// NewHashFromSlice returns a Hash holding a copy of b. Any length other than
// HashSize is an ErrInvariantViolation.
func NewHashFromSlice(b []byte) (*Hash, error) {
	if len(b) != HashSize {
		return nil, errors.Wrapf(ErrInvariantViolation,
			"invalid hash length of %d, want %d", len(b), HashSize)
	}
	var hash Hash
	copy(hash[:], b)
	return &hash, nil
}

// MustNewHashFromSlice is like NewHashFromSlice but panics on a wrong length.
// It is meant for values that are known to be well formed.
func MustNewHashFromSlice(b []byte) Hash {
	hash, err := NewHashFromSlice(b)
	if err != nil {
		panic(err)
	}
	return *hash
}

// NewHashFromStr parses the byte-reversed hexadecimal form produced by
// Hash.String.
func NewHashFromStr(s string) (*Hash, error) {
	if len(s) != MaxHashStringSize {
		return nil, errors.Wrapf(ErrInvariantViolation,
			"hash string %q has length %d, want %d", s, len(s), MaxHashStringSize)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "hash string %q is not hexadecimal", s)
	}
	var hash Hash
	for i, v := range b {
		hash[HashSize-1-i] = v
	}
	return &hash, nil
}

// DoubleHashH returns the double SHA-256 of b.
func DoubleHashH(b []byte) Hash {
	return Hash(chainhash.DoubleHashH(b))
}


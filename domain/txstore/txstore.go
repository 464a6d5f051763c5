// Package txstore persists encoded Crown transactions in a key-value
// database, keyed by transaction hash.
//
// The store keeps the exact bytes a transaction was received as. Reads
// decode them again through the store's codec, so a transaction whose
// special type gained a registered variant after it was stored comes back
// with that variant.
package txstore

import (
	"bytes"

	"github.com/crownplatform/crownwire/infrastructure/db/database"
	"github.com/crownplatform/crownwire/wire"
	"github.com/pkg/errors"
)

var txBucket = database.MakeBucket([]byte("tx"))

// ErrNonCanonical is returned by PutRaw for encodings that do not re-encode
// to the same bytes.
var ErrNonCanonical = errors.New("transaction encoding is not canonical")

// TxStore stores transactions in a database.
type TxStore struct {
	db    database.Database
	codec *wire.TxCodec
}

// New returns a store on top of db. A nil codec selects the default one.
func New(db database.Database, codec *wire.TxCodec) *TxStore {
	if codec == nil {
		codec = &wire.TxCodec{}
	}
	return &TxStore{db: db, codec: codec}
}

func hashKey(hash *wire.Hash) *database.Key {
	return txBucket.Key(hash[:])
}

// Put encodes tx and stores it under its hash.
func (s *TxStore) Put(tx *wire.MsgTx) (wire.Hash, error) {
	raw, err := s.codec.Encode(tx)
	if err != nil {
		return wire.Hash{}, err
	}
	return s.put(raw)
}

// PutRaw stores an encoded transaction under its hash. The bytes must decode
// as a single transaction and re-encode to themselves.
func (s *TxStore) PutRaw(raw []byte) (wire.Hash, error) {
	tx, err := s.codec.Decode(raw)
	if err != nil {
		return wire.Hash{}, err
	}
	reencoded, err := s.codec.Encode(tx)
	if err != nil {
		return wire.Hash{}, err
	}
	if !bytes.Equal(raw, reencoded) {
		return wire.Hash{}, errors.Wrapf(ErrNonCanonical,
			"%d byte transaction re-encodes to %d different bytes", len(raw), len(reencoded))
	}
	return s.put(raw)
}

func (s *TxStore) put(raw []byte) (wire.Hash, error) {
	hash := wire.DoubleHashH(raw)
	err := s.db.Put(hashKey(&hash), raw)
	if err != nil {
		return wire.Hash{}, err
	}
	log.Debugf("Stored transaction %s (%d bytes)", hash, len(raw))
	return hash, nil
}

// GetRaw returns the stored encoding of the transaction with the given hash.
// Missing transactions are reported with database.ErrNotFound.
func (s *TxStore) GetRaw(hash *wire.Hash) ([]byte, error) {
	raw, err := s.db.Get(hashKey(hash))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get transaction %s", hash)
	}
	return raw, nil
}

// Get returns the decoded transaction with the given hash.
func (s *TxStore) Get(hash *wire.Hash) (*wire.MsgTx, error) {
	raw, err := s.GetRaw(hash)
	if err != nil {
		return nil, err
	}
	tx, err := s.codec.Decode(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "stored transaction %s does not decode", hash)
	}
	return tx, nil
}

// Has returns whether a transaction with the given hash is stored.
func (s *TxStore) Has(hash *wire.Hash) (bool, error) {
	return s.db.Has(hashKey(hash))
}

// Delete removes the transaction with the given hash. Deleting a missing
// transaction is not an error.
func (s *TxStore) Delete(hash *wire.Hash) error {
	return s.db.Delete(hashKey(hash))
}

// ForEach calls fn for every stored transaction in ascending hash byte
// order. Iteration stops at the first error, which is returned.
func (s *TxStore) ForEach(fn func(hash wire.Hash, tx *wire.MsgTx) error) (err error) {
	cursor, err := s.db.Cursor(txBucket)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := cursor.Close()
		if err == nil {
			err = closeErr
		}
	}()

	for ok := cursor.First(); ok; ok = cursor.Next() {
		key, err := cursor.Key()
		if err != nil {
			return err
		}
		hash, err := wire.NewHashFromSlice(key.Suffix())
		if err != nil {
			return errors.Wrapf(err, "bad transaction key %s", key)
		}
		raw, err := cursor.Value()
		if err != nil {
			return err
		}
		tx, err := s.codec.Decode(raw)
		if err != nil {
			return errors.Wrapf(err, "stored transaction %s does not decode", hash)
		}
		err = fn(*hash, tx)
		if err != nil {
			return err
		}
	}
	return nil
}

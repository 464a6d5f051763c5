// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// defaultTxInOutAlloc is the default size used for the backing array for
// transaction inputs and outputs when the count is not known yet.
const defaultTxInOutAlloc = 15

// MsgTx is a Crown transaction, legacy or special.
//
// TxType 0 marks a legacy transaction: Version is the full signed 32-bit
// version and ExtraPayload is nil. Any other TxType marks a special
// transaction: Version must fit in 16 bits and ExtraPayload is the variant
// registered for TxType, or OpaquePayload when none is registered.
//
// Use the AddTxIn and AddTxOut functions to build up the list of transaction
// inputs and outputs.
type MsgTx struct {
	Version      int32
	TxIn         []*TxIn
	TxOut        []*TxOut
	LockTime     uint32
	TxType       uint16
	ExtraPayload Payload
}

// NewLegacyMsgTx returns a new legacy transaction with no inputs or outputs.
func NewLegacyMsgTx(version int32) *MsgTx {
	return &MsgTx{
		Version: version,
		TxIn:    make([]*TxIn, 0, defaultTxInOutAlloc),
		TxOut:   make([]*TxOut, 0, defaultTxInOutAlloc),
	}
}

// NewSpecialMsgTx returns a new special transaction with no inputs or
// outputs.
func NewSpecialMsgTx(version uint16, txType uint16, payload Payload) *MsgTx {
	return &MsgTx{
		Version:      int32(version),
		TxIn:         make([]*TxIn, 0, defaultTxInOutAlloc),
		TxOut:        make([]*TxOut, 0, defaultTxInOutAlloc),
		TxType:       txType,
		ExtraPayload: payload,
	}
}

// AddTxIn adds a transaction input to the message.
func (msg *MsgTx) AddTxIn(ti *TxIn) {
	msg.TxIn = append(msg.TxIn, ti)
}

// AddTxOut adds a transaction output to the message.
func (msg *MsgTx) AddTxOut(to *TxOut) {
	msg.TxOut = append(msg.TxOut, to)
}

// IsSpecial returns whether the transaction carries a special type and an
// extra payload.
func (msg *MsgTx) IsSpecial() bool {
	return msg.TxType != 0
}

// Serialize encodes the transaction to w using the default codec.
func (msg *MsgTx) Serialize(w io.Writer) error {
	return defaultTxCodec.Serialize(w, msg)
}

// Deserialize decodes a transaction from r using the default codec and
// leaves r positioned right after it.
func (msg *MsgTx) Deserialize(r *Cursor) error {
	tx, err := defaultTxCodec.DecodeFromCursor(r)
	if err != nil {
		return err
	}
	*msg = *tx
	return nil
}

// Bytes returns the encoding of the transaction.
func (msg *MsgTx) Bytes() ([]byte, error) {
	return defaultTxCodec.Encode(msg)
}

// TxHash returns the double SHA-256 of the transaction encoding.
func (msg *MsgTx) TxHash() (Hash, error) {
	b, err := msg.Bytes()
	if err != nil {
		return Hash{}, err
	}
	return DoubleHashH(b), nil
}

// TxCodec decodes and encodes transactions. The zero value uses
// DefaultPayloadRegistry and StandardBodyCodec. A TxCodec is safe for
// concurrent use as long as its registry is no longer being populated.
type TxCodec struct {
	Registry *PayloadRegistry
	Body     BodyCodec
}

// NewTxCodec returns a codec that resolves extra payloads through registry
// and reads inputs and outputs through body. Nil arguments select the
// defaults.
func NewTxCodec(registry *PayloadRegistry, body BodyCodec) *TxCodec {
	return &TxCodec{Registry: registry, Body: body}
}

var defaultTxCodec = &TxCodec{}

// DecodeTransaction decodes a single transaction using the default codec.
func DecodeTransaction(b []byte) (*MsgTx, error) {
	return defaultTxCodec.Decode(b)
}

// EncodeTransaction encodes msg using the default codec.
func EncodeTransaction(msg *MsgTx) ([]byte, error) {
	return defaultTxCodec.Encode(msg)
}

func (c *TxCodec) registry() *PayloadRegistry {
	if c.Registry == nil {
		return DefaultPayloadRegistry
	}
	return c.Registry
}

func (c *TxCodec) body() BodyCodec {
	if c.Body == nil {
		return StandardBodyCodec{}
	}
	return c.Body
}

// Decode decodes b, which must hold exactly one transaction.
func (c *TxCodec) Decode(b []byte) (*MsgTx, error) {
	r := NewCursor(b)
	msg, err := c.DecodeFromCursor(r)
	if err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, messageError("TxCodec.Decode", fmt.Sprintf(
			"%d trailing bytes after the transaction", r.Remaining()))
	}
	return msg, nil
}

// DecodeFromCursor decodes the transaction starting at the cursor position
// and leaves the cursor right after it, so transactions can be read back to
// back from a larger buffer. Truncated input is reported as a MessageError.
func (c *TxCodec) DecodeFromCursor(r *Cursor) (*MsgTx, error) {
	msg, err := c.decodeFromCursor(r)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, messageError("TxCodec.DecodeFromCursor", fmt.Sprintf(
				"transaction truncated at byte %d: %s", r.Position(), err))
		}
		return nil, err
	}
	return msg, nil
}

func (c *TxCodec) decodeFromCursor(r *Cursor) (*MsgTx, error) {
	var header uint32
	err := ReadElement(r, &header)
	if err != nil {
		return nil, err
	}

	msg := &MsgTx{}
	msg.Version, msg.TxType = ParseTxHeader(header)

	count, err := readElementCount(r, "transaction inputs")
	if err != nil {
		return nil, err
	}
	msg.TxIn = make([]*TxIn, 0, count)
	for i := uint64(0); i < count; i++ {
		ti, err := c.body().ReadTxIn(r)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read transaction input %d", i)
		}
		msg.TxIn = append(msg.TxIn, ti)
	}

	count, err = readElementCount(r, "transaction outputs")
	if err != nil {
		return nil, err
	}
	msg.TxOut = make([]*TxOut, 0, count)
	for i := uint64(0); i < count; i++ {
		to, err := c.body().ReadTxOut(r)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read transaction output %d", i)
		}
		msg.TxOut = append(msg.TxOut, to)
	}

	err = ReadElement(r, &msg.LockTime)
	if err != nil {
		return nil, err
	}

	if msg.TxType != 0 {
		msg.ExtraPayload, err = c.readExtraPayload(r, msg.TxType)
		if err != nil {
			return nil, err
		}
	}
	return msg, nil
}

// readElementCount reads an input or output count. Every element takes at
// least one byte, so a count larger than the bytes remaining is malformed.
func readElementCount(r *Cursor, what string) (uint64, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return 0, err
	}
	if count > uint64(r.Remaining()) {
		return 0, messageError("readElementCount", fmt.Sprintf(
			"too many %s to fit into the remaining %d bytes [count %d]",
			what, r.Remaining(), count))
	}
	return count, nil
}

func (c *TxCodec) readExtraPayload(r *Cursor, txType uint16) (Payload, error) {
	size, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if size > uint64(r.Remaining()) {
		return nil, messageError("readExtraPayload", fmt.Sprintf(
			"extra payload declares %d bytes but only %d remain", size, r.Remaining()))
	}
	end := r.Position() + int(size)

	handler, ok := c.registry().Lookup(txType)
	if !ok {
		log.Tracef("Keeping %d byte extra payload of unregistered special transaction type %d opaque",
			size, txType)
		payload, err := r.ReadBytes(size)
		if err != nil {
			return nil, err
		}
		return OpaquePayload(payload), nil
	}

	payload, err := handler.Decode(r)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s extra payload", handler.Name)
	}
	if payload == nil || !handler.Matches(payload) {
		return nil, errors.Wrapf(ErrPayloadTypeMismatch,
			"%s decoder for special transaction type %d returned extra payload %T",
			handler.Name, txType, payload)
	}
	if r.Position() != end {
		return nil, messageError("readExtraPayload", fmt.Sprintf(
			"%s extra payload consumed %d bytes, declared %d",
			handler.Name, int(size)+r.Position()-end, size))
	}
	return payload, nil
}

// Encode returns the encoding of msg.
func (c *TxCodec) Encode(msg *MsgTx) ([]byte, error) {
	var buf bytes.Buffer
	err := c.Serialize(&buf, msg)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Serialize writes the encoding of msg to w. The extra payload is checked
// and encoded before anything is written, so a payload error leaves w
// untouched.
func (c *TxCodec) Serialize(w io.Writer, msg *MsgTx) error {
	header, err := MakeTxHeader(msg.Version, msg.TxType)
	if err != nil {
		return err
	}

	var extraPayload []byte
	if msg.TxType == 0 {
		if p, ok := msg.ExtraPayload.(OpaquePayload); msg.ExtraPayload != nil && !(ok && len(p) == 0) {
			return errors.Wrapf(ErrInvariantViolation,
				"legacy transaction carries an extra payload of type %T", msg.ExtraPayload)
		}
	} else {
		extraPayload, err = c.serializeExtraPayload(msg)
		if err != nil {
			return err
		}
	}

	err = WriteElement(w, header)
	if err != nil {
		return err
	}

	err = WriteVarInt(w, uint64(len(msg.TxIn)))
	if err != nil {
		return err
	}
	for _, ti := range msg.TxIn {
		err = c.body().WriteTxIn(w, ti)
		if err != nil {
			return err
		}
	}

	err = WriteVarInt(w, uint64(len(msg.TxOut)))
	if err != nil {
		return err
	}
	for _, to := range msg.TxOut {
		err = c.body().WriteTxOut(w, to)
		if err != nil {
			return err
		}
	}

	err = WriteElement(w, msg.LockTime)
	if err != nil {
		return err
	}

	if msg.TxType != 0 {
		return WriteVarBytes(w, extraPayload)
	}
	return nil
}

// serializeExtraPayload returns the extra payload bytes of a special
// transaction, without the length prefix.
func (c *TxCodec) serializeExtraPayload(msg *MsgTx) ([]byte, error) {
	handler, ok := c.registry().Lookup(msg.TxType)
	if !ok {
		opaque, isOpaque := msg.ExtraPayload.(OpaquePayload)
		if !isOpaque {
			return nil, errors.Wrapf(ErrMalformedOpaquePayload,
				"special transaction type %d has no registered variant, got extra payload %T",
				msg.TxType, msg.ExtraPayload)
		}
		return opaque, nil
	}

	if msg.ExtraPayload == nil || !handler.Matches(msg.ExtraPayload) {
		return nil, errors.Wrapf(ErrPayloadTypeMismatch,
			"special transaction type %d (%s) does not conform with extra payload %T: %v",
			msg.TxType, handler.Name, msg.ExtraPayload, msg.ExtraPayload)
	}

	var buf bytes.Buffer
	err := msg.ExtraPayload.Serialize(&buf)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to serialize %s extra payload", handler.Name)
	}
	return buf.Bytes(), nil
}

// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"
)

// MaxTxInSequenceNum is the maximum sequence number the sequence field
// of a transaction input can be.
const MaxTxInSequenceNum uint32 = 0xffffffff

// TxIn defines a transaction input.
type TxIn struct {
	PreviousOutpoint Outpoint
	SignatureScript  []byte
	Sequence         uint32
}

// NewTxIn returns a new transaction input with the provided previous
// outpoint and signature script with a default sequence of
// MaxTxInSequenceNum.
func NewTxIn(prevOut *Outpoint, signatureScript []byte) *TxIn {
	return &TxIn{
		PreviousOutpoint: *prevOut,
		SignatureScript:  signatureScript,
		Sequence:         MaxTxInSequenceNum,
	}
}

// TxOut defines a transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// NewTxOut returns a new transaction output with the provided value and
// public key script.
func NewTxOut(value int64, pkScript []byte) *TxOut {
	return &TxOut{
		Value:    value,
		PkScript: pkScript,
	}
}

// BodyCodec reads and writes the inputs and outputs of a transaction. The
// transaction codec only decides how many of them there are and where they
// sit; the element layout belongs to the BodyCodec.
type BodyCodec interface {
	ReadTxIn(r io.Reader) (*TxIn, error)
	WriteTxIn(w io.Writer, ti *TxIn) error
	ReadTxOut(r io.Reader) (*TxOut, error)
	WriteTxOut(w io.Writer, to *TxOut) error
}

// StandardBodyCodec is the Bitcoin input and output layout used by Crown:
//
//	txin:  outpoint | varbytes signature script | sequence:uint32
//	txout: value:int64 | varbytes public key script
type StandardBodyCodec struct{}

// ReadTxIn reads the next transaction input from r.
func (StandardBodyCodec) ReadTxIn(r io.Reader) (*TxIn, error) {
	ti := &TxIn{}
	err := ReadOutpoint(r, &ti.PreviousOutpoint)
	if err != nil {
		return nil, err
	}

	ti.SignatureScript, err = ReadVarBytes(r, MaxMessagePayload, "transaction input signature script")
	if err != nil {
		return nil, err
	}

	err = ReadElement(r, &ti.Sequence)
	if err != nil {
		return nil, err
	}
	return ti, nil
}

// WriteTxIn writes ti to w.
func (StandardBodyCodec) WriteTxIn(w io.Writer, ti *TxIn) error {
	err := WriteOutpoint(w, &ti.PreviousOutpoint)
	if err != nil {
		return err
	}

	err = WriteVarBytes(w, ti.SignatureScript)
	if err != nil {
		return err
	}

	return WriteElement(w, ti.Sequence)
}

// ReadTxOut reads the next transaction output from r.
func (StandardBodyCodec) ReadTxOut(r io.Reader) (*TxOut, error) {
	to := &TxOut{}
	err := ReadElement(r, &to.Value)
	if err != nil {
		return nil, err
	}

	to.PkScript, err = ReadVarBytes(r, MaxMessagePayload, "transaction output public key script")
	if err != nil {
		return nil, err
	}
	return to, nil
}

// WriteTxOut writes to to w.
func (StandardBodyCodec) WriteTxOut(w io.Writer, to *TxOut) error {
	err := WriteElement(w, to.Value)
	if err != nil {
		return err
	}

	return WriteVarBytes(w, to.PkScript)
}

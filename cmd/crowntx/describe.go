package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/crownplatform/crownwire/wire"
	"github.com/davecgh/go-spew/spew"
)

// describeTransaction writes a human-readable summary of tx to w. registry
// names the payload variants.
func describeTransaction(w io.Writer, tx *wire.MsgTx, registry *wire.PayloadRegistry) error {
	txID, err := tx.TxHash()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "txid:      %s\n", txID)
	fmt.Fprintf(w, "version:   %d\n", tx.Version)
	if !tx.IsSpecial() {
		fmt.Fprintf(w, "type:      legacy\n")
	} else if handler, ok := registry.Lookup(tx.TxType); ok {
		fmt.Fprintf(w, "type:      %d (%s)\n", tx.TxType, handler.Name)
	} else {
		fmt.Fprintf(w, "type:      %d (unregistered)\n", tx.TxType)
	}

	fmt.Fprintf(w, "inputs:    %d\n", len(tx.TxIn))
	for i, txIn := range tx.TxIn {
		fmt.Fprintf(w, "  %d: %s script=%s sequence=%d\n", i, txIn.PreviousOutpoint,
			hex.EncodeToString(txIn.SignatureScript), txIn.Sequence)
	}
	fmt.Fprintf(w, "outputs:   %d\n", len(tx.TxOut))
	for i, txOut := range tx.TxOut {
		fmt.Fprintf(w, "  %d: value=%d script=%s\n", i, txOut.Value,
			hex.EncodeToString(txOut.PkScript))
	}
	fmt.Fprintf(w, "locktime:  %d\n", tx.LockTime)

	switch payload := tx.ExtraPayload.(type) {
	case nil:
	case *wire.GovernanceVotePayload:
		fmt.Fprintf(w, "payload:   governance vote\n")
		fmt.Fprintf(w, "  voter:     %s\n", payload.VoterID)
		fmt.Fprintf(w, "  election:  %d\n", payload.ElectionCode)
		fmt.Fprintf(w, "  vote:      %d (%s)\n", payload.Vote, payload.Choice())
		fmt.Fprintf(w, "  candidate: %d\n", payload.Candidate)
		fmt.Fprintf(w, "  keyid:     %s\n", payload.KeyID)
		fmt.Fprintf(w, "  signature: %s\n", hex.EncodeToString(payload.Signature))
	case wire.OpaquePayload:
		fmt.Fprintf(w, "payload:   %d opaque bytes\n", len(payload))
		fmt.Fprintf(w, "  %s\n", hex.EncodeToString(payload))
	default:
		fmt.Fprintf(w, "payload:   %s", spew.Sdump(payload))
	}
	return nil
}

func printTransaction(w io.Writer, tx *wire.MsgTx, dump bool) error {
	if dump {
		spew.Fdump(w, tx)
		return nil
	}
	return describeTransaction(w, tx, wire.DefaultPayloadRegistry)
}

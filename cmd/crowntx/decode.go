package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/crownplatform/crownwire/infrastructure/logger"
	"github.com/crownplatform/crownwire/wire"
	"github.com/pkg/errors"
)

func decode(conf *decodeConfig) error {
	raw, err := readTransactionHex(conf.Args.Transaction)
	if err != nil {
		return err
	}

	onEnd := logger.LogAndMeasureExecutionTime(log, "decode")
	tx, err := wire.DecodeTransaction(raw)
	onEnd()
	if err != nil {
		return errors.Wrap(err, "error decoding the transaction")
	}
	return printTransaction(os.Stdout, tx, conf.Dump)
}

func roundtrip(conf *roundtripConfig) error {
	raw, err := readTransactionHex(conf.Args.Transaction)
	if err != nil {
		return err
	}

	tx, err := wire.DecodeTransaction(raw)
	if err != nil {
		return errors.Wrap(err, "error decoding the transaction")
	}
	reencoded, err := wire.EncodeTransaction(tx)
	if err != nil {
		return errors.Wrap(err, "error encoding the transaction")
	}
	if !bytes.Equal(raw, reencoded) {
		return errors.Errorf("the transaction re-encodes differently:\n  in:  %s\n  out: %s",
			hex.EncodeToString(raw), hex.EncodeToString(reencoded))
	}

	log.Infof("Transaction of %d bytes re-encodes identically", len(raw))
	fmt.Println("OK")
	return nil
}

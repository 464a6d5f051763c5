package main

import (
	"encoding/hex"
	"fmt"

	"github.com/crownplatform/crownwire/wire"
	"github.com/pkg/errors"
)

func encodeVote(conf *encodeVoteConfig) error {
	tx, err := buildVoteTransaction(conf)
	if err != nil {
		return err
	}
	encoded, err := wire.EncodeTransaction(tx)
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(encoded))
	return nil
}

func buildVoteTransaction(conf *encodeVoteConfig) (*wire.MsgTx, error) {
	if conf.Version < wire.MinSpecialTxVersion {
		return nil, errors.Errorf("a special transaction needs version %d or above, "+
			"got %d", wire.MinSpecialTxVersion, conf.Version)
	}

	voter, err := wire.NewOutpointFromString(conf.Voter)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing --voter")
	}

	var keyID wire.KeyID
	if conf.PublicKey != "" {
		publicKey, err := hex.DecodeString(conf.PublicKey)
		if err != nil {
			return nil, errors.Wrap(err, "error parsing --pubkey")
		}
		keyID = wire.KeyIDFromPubKey(publicKey)
	} else {
		keyIDBytes, err := hex.DecodeString(conf.KeyID)
		if err != nil {
			return nil, errors.Wrap(err, "error parsing --keyid")
		}
		parsed, err := wire.NewKeyIDFromSlice(keyIDBytes)
		if err != nil {
			return nil, errors.Wrap(err, "error parsing --keyid")
		}
		keyID = *parsed
	}

	signature, err := hex.DecodeString(conf.Signature)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing --signature")
	}

	vote := &wire.GovernanceVotePayload{
		VoterID:      *voter,
		ElectionCode: conf.ElectionCode,
		Vote:         conf.Vote,
		Candidate:    conf.Candidate,
		KeyID:        keyID,
		Signature:    signature,
	}
	switch vote.Choice() {
	case wire.VoteYes, wire.VoteNo, wire.VoteAbstain:
	default:
		log.Warnf("Vote value %d is not a known vote choice", conf.Vote)
	}

	tx := wire.NewSpecialMsgTx(conf.Version, wire.TxTypeGovernanceVote, vote)
	for _, input := range conf.Inputs {
		outpoint, err := wire.NewOutpointFromString(input)
		if err != nil {
			return nil, errors.Wrap(err, "error parsing --input")
		}
		tx.AddTxIn(wire.NewTxIn(outpoint, nil))
	}
	tx.LockTime = conf.LockTime
	return tx, nil
}

package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/crownplatform/crownwire/wire"
	"github.com/pkg/errors"
)

const genesisTxID = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
		ok   bool
	}{
		{"01020304", []byte{1, 2, 3, 4}, true},
		{"  0102\n0304\n", []byte{1, 2, 3, 4}, true},
		{"", nil, false},
		{"\n", nil, false},
		{"0g", nil, false},
		{"012", nil, false},
	}
	for _, test := range tests {
		got, err := readHex(strings.NewReader(test.in))
		if (err == nil) != test.ok || !bytes.Equal(got, test.want) {
			t.Errorf("readHex(%q): got %x, %v", test.in, got, err)
		}
	}
}

func TestBuildVoteTransaction(t *testing.T) {
	conf := &encodeVoteConfig{
		Version:      3,
		Voter:        genesisTxID + ":0",
		ElectionCode: 1,
		Vote:         1,
		Candidate:    7,
		PublicKey:    "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		Signature:    "3045",
		Inputs:       []string{genesisTxID + ":1"},
		LockTime:     500,
	}
	tx, err := buildVoteTransaction(conf)
	if err != nil {
		t.Fatalf("buildVoteTransaction: %v", err)
	}
	vote, ok := tx.ExtraPayload.(*wire.GovernanceVotePayload)
	if !ok {
		t.Fatalf("unexpected payload %T", tx.ExtraPayload)
	}
	if vote.KeyID.String() != "751e76e8199196d454941c45d1b3a323f1433bd6" {
		t.Errorf("unexpected key id %s", vote.KeyID)
	}
	if vote.VoterID.String() != genesisTxID+":0" || vote.Candidate != 7 {
		t.Errorf("unexpected vote %+v", vote)
	}
	if len(tx.TxIn) != 1 || tx.TxIn[0].PreviousOutpoint.Index != 1 || tx.LockTime != 500 {
		t.Errorf("unexpected transaction body")
	}

	encoded, err := wire.EncodeTransaction(tx)
	if err != nil {
		t.Fatalf("EncodeTransaction: %v", err)
	}
	decoded, err := wire.DecodeTransaction(encoded)
	if err != nil {
		t.Fatalf("DecodeTransaction: %v", err)
	}
	if decoded.TxType != wire.TxTypeGovernanceVote || decoded.Version != 3 {
		t.Errorf("unexpected header: version %d type %d", decoded.Version, decoded.TxType)
	}

	conf.PublicKey = ""
	conf.KeyID = "751e76e8199196d454941c45d1b3a323f1433bd6"
	tx, err = buildVoteTransaction(conf)
	if err != nil {
		t.Fatalf("buildVoteTransaction with --keyid: %v", err)
	}
	if tx.ExtraPayload.(*wire.GovernanceVotePayload).KeyID != vote.KeyID {
		t.Errorf("--keyid and --pubkey give different key ids")
	}

	conf.KeyID = "751e76"
	_, err = buildVoteTransaction(conf)
	if !errors.Is(err, wire.ErrInvariantViolation) {
		t.Errorf("short --keyid: got %v", err)
	}

	conf.KeyID = "751e76e8199196d454941c45d1b3a323f1433bd6"
	conf.Version = 2
	if _, err := buildVoteTransaction(conf); err == nil {
		t.Errorf("version 2: expected an error")
	}
}

func TestDescribeTransaction(t *testing.T) {
	raw, _ := hex.DecodeString("0500020000000000000003aabbcc")
	tx, err := wire.DecodeTransaction(raw)
	if err != nil {
		t.Fatalf("DecodeTransaction: %v", err)
	}

	var buf bytes.Buffer
	err = describeTransaction(&buf, tx, wire.DefaultPayloadRegistry)
	if err != nil {
		t.Fatalf("describeTransaction: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"version:   5\n",
		"type:      2 (unregistered)\n",
		"payload:   3 opaque bytes\n  aabbcc\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary is missing %q:\n%s", want, out)
		}
	}

	tx, err = buildVoteTransaction(&encodeVoteConfig{
		Version: 3, Voter: genesisTxID + ":2", ElectionCode: 4, Vote: 2, KeyID: strings.Repeat("00", 20),
	})
	if err != nil {
		t.Fatalf("buildVoteTransaction: %v", err)
	}
	buf.Reset()
	err = describeTransaction(&buf, tx, wire.DefaultPayloadRegistry)
	if err != nil {
		t.Fatalf("describeTransaction: %v", err)
	}
	out = buf.String()
	for _, want := range []string{
		"type:      1 (governance vote)\n",
		"  voter:     " + genesisTxID + ":2\n",
		"  vote:      2 (no)\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary is missing %q:\n%s", want, out)
		}
	}
}

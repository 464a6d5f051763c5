// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
)

// TxTypeGovernanceVote is the special transaction type of a governance vote.
const TxTypeGovernanceVote uint16 = 1

// VoteChoice names the conventional values of GovernanceVotePayload.Vote.
// The codec itself stores any int64.
type VoteChoice int64

// Vote choices.
const (
	VoteYes     VoteChoice = 1
	VoteNo      VoteChoice = 2
	VoteAbstain VoteChoice = 3
)

var voteChoiceStrings = map[VoteChoice]string{
	VoteYes:     "yes",
	VoteNo:      "no",
	VoteAbstain: "abstain",
}

// String returns the VoteChoice in human-readable form.
func (v VoteChoice) String() string {
	if s, ok := voteChoiceStrings[v]; ok {
		return s
	}
	return fmt.Sprintf("unknown(%d)", int64(v))
}

// GovernanceVotePayload is the extra payload of a governance vote. The vote
// is bound to the coin spent by VoterID and signed by the key KeyID.
//
// Wire layout:
//
//	voterid:outpoint | electioncode:int64 | vote:int64 | candidate:int64 |
//	keyid:[20]byte | varbytes signature
type GovernanceVotePayload struct {
	VoterID      Outpoint
	ElectionCode int64
	Vote         int64
	Candidate    int64
	KeyID        KeyID
	Signature    []byte
}

// Serialize writes the payload fields in wire order.
func (p *GovernanceVotePayload) Serialize(w io.Writer) error {
	err := WriteOutpoint(w, &p.VoterID)
	if err != nil {
		return err
	}

	err = WriteElements(w, p.ElectionCode, p.Vote, p.Candidate, &p.KeyID)
	if err != nil {
		return err
	}

	return WriteVarBytes(w, p.Signature)
}

// ReadGovernanceVotePayload reads a governance vote from r. Every field is
// mandatory.
func ReadGovernanceVotePayload(r *Cursor) (*GovernanceVotePayload, error) {
	p := &GovernanceVotePayload{}
	err := ReadOutpoint(r, &p.VoterID)
	if err != nil {
		return nil, err
	}

	err = ReadElements(r, &p.ElectionCode, &p.Vote, &p.Candidate, &p.KeyID)
	if err != nil {
		return nil, err
	}

	p.Signature, err = ReadVarBytes(r, MaxMessagePayload, "governance vote signature")
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Choice returns the vote as a VoteChoice.
func (p *GovernanceVotePayload) Choice() VoteChoice {
	return VoteChoice(p.Vote)
}

var governanceVoteHandler = &PayloadHandler{
	Name: "governance vote",
	Decode: func(r *Cursor) (Payload, error) {
		vote, err := ReadGovernanceVotePayload(r)
		if err != nil {
			return nil, err
		}
		return vote, nil
	},
	Matches: func(p Payload) bool {
		vote, ok := p.(*GovernanceVotePayload)
		return ok && vote != nil
	},
}

package core

import (
	"bytes"

	"github.com/ugorji/go/codec"
)

// VoteTally counts affirmative votes for a candidate airline. Votes holds the
// voter addresses in the order the votes were cast; the per-voter flag that
// prevents double voting is the membership test on this slice. Proposers
// holds the members that proposed the candidate, which is tracked separately
// from votes.
type VoteTally struct {
	Candidate string
	Votes     []string
	Proposers []string
}

// NewVoteTally ...
func NewVoteTally(candidate string) *VoteTally {
	return &VoteTally{
		Candidate: candidate,
	}
}

// HasVoted reports whether the voter already voted for this candidate.
func (t *VoteTally) HasVoted(voter string) bool {
	for _, v := range t.Votes {
		if v == voter {
			return true
		}
	}
	return false
}

// AddVote records a vote. The caller is responsible for the HasVoted check;
// AddVote does not dedupe.
func (t *VoteTally) AddVote(voter string) {
	t.Votes = append(t.Votes, voter)
}

// Count returns the current number of votes.
func (t *VoteTally) Count() int {
	return len(t.Votes)
}

// HasProposed reports whether the proposer already proposed this candidate.
func (t *VoteTally) HasProposed(proposer string) bool {
	for _, p := range t.Proposers {
		if p == proposer {
			return true
		}
	}
	return false
}

// AddProposer records a proposal. The caller is responsible for the
// HasProposed check.
func (t *VoteTally) AddProposer(proposer string) {
	t.Proposers = append(t.Proposers, proposer)
}

// Copy returns a deep copy of the tally, with its own vote and proposer
// lists.
func (t *VoteTally) Copy() *VoteTally {
	return &VoteTally{
		Candidate: t.Candidate,
		Votes:     append([]string(nil), t.Votes...),
		Proposers: append([]string(nil), t.Proposers...),
	}
}

// Marshal - canonical json encoding of VoteTally
func (t *VoteTally) Marshal() ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(t); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Unmarshal ...
func (t *VoteTally) Unmarshal(data []byte) error {
	b := bytes.NewBuffer(data)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	dec := codec.NewDecoder(b, jh)

	return dec.Decode(t)
}

package common

import "fmt"

// CoreErrType enumerates the terminal validation failures that core
// operations can return. None of them are retried internally; a caller may
// retry the whole operation with corrected inputs.
type CoreErrType uint32

const (
	// NotRegistered - the participant is not a registered oracle or a known
	// airline.
	NotRegistered CoreErrType = iota
	// AlreadyRegistered - the participant is already registered and the
	// operation runs in strict mode.
	AlreadyRegistered
	// IndexMismatch - the claimed index is not one of the reporter's three
	// assigned indexes.
	IndexMismatch
	// NoOpenRequest - no open status request exists at the derived key.
	NoOpenRequest
	// InsufficientStake - the stake provided is below the required fee.
	InsufficientStake
	// UnknownProposer - the proposer is not an admitted airline.
	UnknownProposer
	// UnknownVoter - the voter is not an admitted airline.
	UnknownVoter
	// DuplicateVote - the voter has already voted for this candidate.
	DuplicateVote
	// DuplicateProposal - the candidate already has a pending proposal from
	// this proposer.
	DuplicateProposal
	// DuplicateResponse - the reporter has already responded to this request
	// with a different value (strict mode only).
	DuplicateResponse
	// AlreadyAdmitted - the candidate is already an admitted airline.
	AlreadyAdmitted
)

// CoreErr is the error type returned by the consensus core. It always carries
// the identifier that caused the failure (participant address, request key,
// or candidate) so a caller can tell "try again" from "this will never
// succeed".
type CoreErr struct {
	op      string
	errType CoreErrType
	key     string
}

// NewCoreErr ...
func NewCoreErr(op string, errType CoreErrType, key string) CoreErr {
	return CoreErr{
		op:      op,
		errType: errType,
		key:     key,
	}
}

// Error ...
func (e CoreErr) Error() string {
	m := ""
	switch e.errType {
	case NotRegistered:
		m = "Not Registered"
	case AlreadyRegistered:
		m = "Already Registered"
	case IndexMismatch:
		m = "Index Mismatch"
	case NoOpenRequest:
		m = "No Open Request"
	case InsufficientStake:
		m = "Insufficient Stake"
	case UnknownProposer:
		m = "Unknown Proposer"
	case UnknownVoter:
		m = "Unknown Voter"
	case DuplicateVote:
		m = "Duplicate Vote"
	case DuplicateProposal:
		m = "Duplicate Proposal"
	case DuplicateResponse:
		m = "Duplicate Response"
	case AlreadyAdmitted:
		m = "Already Admitted"
	}

	return fmt.Sprintf("%s, %s, %s", e.op, e.key, m)
}

// Key returns the identifier that caused the failure.
func (e CoreErr) Key() string {
	return e.key
}

// IsCore checks that an error is of type CoreErr and that its code matches
// the provided CoreErr code.
func IsCore(err error, t CoreErrType) bool {
	coreErr, ok := err.(CoreErr)
	return ok && coreErr.errType == t
}

package core

import (
	"sync"

	cm "github.com/deeptony/flightInsurance/src/common"
	"github.com/deeptony/flightInsurance/src/notify"
	"github.com/sirupsen/logrus"
)

// VotingConsensus tallies one-vote-per-member proposals to admit a candidate
// airline. It only comes into play once the admitted set has reached
// MultipartyThreshold members; below that, AirlineRegistry admits candidates
// directly.
type VotingConsensus struct {
	mtx      sync.Mutex
	store    Store
	notifier notify.Notifier
	logger   *logrus.Entry
}

// NewVotingConsensus ...
func NewVotingConsensus(store Store, notifier notify.Notifier, logger *logrus.Entry) *VotingConsensus {
	return &VotingConsensus{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Vote casts the voter's vote for the candidate. It fails with UnknownVoter
// unless the voter is an admitted airline, with NotRegistered when the
// candidate is unknown, and with DuplicateVote when the voter already voted
// for this candidate; the tally is unchanged in all three cases.
//
// The candidate becomes admitted when its tally strictly exceeds half the
// current admitted-set size. Admission is a one-way, idempotent transition;
// votes cast after admission are recorded but have no further effect, and
// Vote keeps returning true for an admitted candidate.
func (v *VotingConsensus) Vote(candidate, voter string) (bool, error) {
	v.mtx.Lock()
	defer v.mtx.Unlock()

	voterAirline, err := v.store.GetAirline(voter)
	if err != nil || !voterAirline.Admitted {
		return false, cm.NewCoreErr("Vote", cm.UnknownVoter, voter)
	}

	// The candidate is checked before the tally is touched so that a vote for
	// an unknown candidate leaves no trace.
	candidateAirline, err := v.store.GetAirline(candidate)
	if err != nil {
		if cm.IsStore(err, cm.KeyNotFound) {
			return false, cm.NewCoreErr("Vote", cm.NotRegistered, candidate)
		}
		return false, err
	}

	tally, err := v.store.GetTally(candidate)
	if err != nil {
		if !cm.IsStore(err, cm.KeyNotFound) {
			return false, err
		}
		tally = NewVoteTally(candidate)
	}

	if tally.HasVoted(voter) {
		return false, cm.NewCoreErr("Vote", cm.DuplicateVote, voter)
	}

	tally.AddVote(voter)

	if err := v.store.SetTally(tally); err != nil {
		return false, err
	}

	admitted := v.store.AdmittedCount()

	v.logger.WithFields(logrus.Fields{
		"candidate": candidate,
		"voter":     voter,
		"tally":     tally.Count(),
		"admitted":  admitted,
	}).Debug("Vote")

	if candidateAirline.Admitted {
		return true, nil
	}

	if tally.Count() <= admitted/2 {
		return false, nil
	}

	candidateAirline.Admitted = true

	if err := v.store.SetAirline(candidateAirline); err != nil {
		return false, err
	}

	v.logger.WithField("candidate", candidate).Debug("Candidate admitted by vote")

	v.notifier.Emit(notify.Event{
		Name: notify.AirlineAdmitted,
		Payload: map[string]interface{}{
			"address": candidate,
			"votes":   tally.Count(),
		},
	})

	return true, nil
}

// TallyOf returns the current vote count for the candidate. A candidate
// without a tally has zero votes.
func (v *VotingConsensus) TallyOf(candidate string) int {
	v.mtx.Lock()
	defer v.mtx.Unlock()

	tally, err := v.store.GetTally(candidate)
	if err != nil {
		return 0
	}

	return tally.Count()
}

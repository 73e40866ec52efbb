package core

import (
	"sync"

	"github.com/deeptony/flightInsurance/src/airlines"
	cm "github.com/deeptony/flightInsurance/src/common"
	"github.com/deeptony/flightInsurance/src/ledger"
	"github.com/deeptony/flightInsurance/src/notify"
	"github.com/sirupsen/logrus"
)

// AirlineRegistry manages the admitted-participant set and its admission
// state machine. Admission and authorization are independent transitions:
// admission is granted by the existing membership, authorization by proving
// stake payment.
type AirlineRegistry struct {
	mtx      sync.Mutex
	store    Store
	stakes   ledger.StakeLedger
	fee      uint64
	notifier notify.Notifier
	logger   *logrus.Entry
}

// NewAirlineRegistry ...
func NewAirlineRegistry(
	store Store,
	stakes ledger.StakeLedger,
	fee uint64,
	notifier notify.Notifier,
	logger *logrus.Entry,
) *AirlineRegistry {
	return &AirlineRegistry{
		store:    store,
		stakes:   stakes,
		fee:      fee,
		notifier: notifier,
		logger:   logger,
	}
}

// Bootstrap admits and authorizes the first airline unconditionally. It is
// called once at system initialization, before any vote is meaningful. When
// the store already holds airlines, typically after reloading an existing
// database, Bootstrap is a no-op.
func (r *AirlineRegistry) Bootstrap(address, moniker string) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if len(r.store.Airlines()) > 0 {
		return nil
	}

	airline := airlines.NewAirline(address, moniker)
	airline.Admitted = true
	airline.Authorized = true

	if err := r.store.SetAirline(airline); err != nil {
		return err
	}

	r.logger.WithField("address", address).Debug("Bootstrapped first airline")

	r.notifier.Emit(notify.Event{
		Name: notify.AirlineAdmitted,
		Payload: map[string]interface{}{
			"address":   address,
			"bootstrap": true,
		},
	})

	return nil
}

// Propose proposes a candidate airline for admission. It fails with
// UnknownProposer unless the proposer is an admitted airline, and with
// AlreadyAdmitted when the candidate is already in.
//
// While fewer than MultipartyThreshold airlines are admitted, a single
// proposal admits the candidate immediately (the bootstrap fast-path). Once
// the threshold is reached, the proposal only creates a pending airline
// record; admission then requires a majority through VotingConsensus.Vote.
// Proposing the same pending candidate twice from the same proposer fails
// with DuplicateProposal.
//
// The returned boolean reports whether the candidate is admitted when the
// call returns.
func (r *AirlineRegistry) Propose(candidate, moniker, proposer string) (bool, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	proposerAirline, err := r.store.GetAirline(proposer)
	if err != nil || !proposerAirline.Admitted {
		return false, cm.NewCoreErr("Propose", cm.UnknownProposer, proposer)
	}

	candidateAirline, err := r.store.GetAirline(candidate)
	if err != nil && !cm.IsStore(err, cm.KeyNotFound) {
		return false, err
	}

	if candidateAirline != nil && candidateAirline.Admitted {
		return false, cm.NewCoreErr("Propose", cm.AlreadyAdmitted, candidate)
	}

	tally, err := r.store.GetTally(candidate)
	if err != nil {
		if !cm.IsStore(err, cm.KeyNotFound) {
			return false, err
		}
		tally = NewVoteTally(candidate)
	}

	if tally.HasProposed(proposer) {
		return false, cm.NewCoreErr("Propose", cm.DuplicateProposal, candidate)
	}

	tally.AddProposer(proposer)

	if err := r.store.SetTally(tally); err != nil {
		return false, err
	}

	if candidateAirline == nil {
		candidateAirline = airlines.NewAirline(candidate, moniker)
		if err := r.store.SetAirline(candidateAirline); err != nil {
			return false, err
		}
	}

	r.notifier.Emit(notify.Event{
		Name: notify.AirlineProposed,
		Payload: map[string]interface{}{
			"address":  candidate,
			"proposer": proposer,
		},
	})

	// Fast-path: below the multiparty threshold a single admitted proposer is
	// enough.
	if r.store.AdmittedCount() < MultipartyThreshold {
		candidateAirline.Admitted = true

		if err := r.store.SetAirline(candidateAirline); err != nil {
			return false, err
		}

		r.logger.WithFields(logrus.Fields{
			"address":  candidate,
			"proposer": proposer,
		}).Debug("Candidate admitted through fast-path")

		r.notifier.Emit(notify.Event{
			Name: notify.AirlineAdmitted,
			Payload: map[string]interface{}{
				"address":  candidate,
				"proposer": proposer,
			},
		})

		return true, nil
	}

	// At scale the proposal only registers the candidate; admission is up to
	// the vote.
	r.logger.WithFields(logrus.Fields{
		"address":  candidate,
		"proposer": proposer,
		"admitted": r.store.AdmittedCount(),
	}).Debug("Candidate pending, awaiting votes")

	return false, nil
}

// Authorize marks an admitted airline as authorized once it has paid its
// stake. It fails with NotRegistered when the address is not an admitted
// airline, and with InsufficientStake when the offered stake does not cover
// the fee or the transfer fails.
func (r *AirlineRegistry) Authorize(address string, stake uint64) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	airline, err := r.store.GetAirline(address)
	if err != nil || !airline.Admitted {
		return cm.NewCoreErr("Authorize", cm.NotRegistered, address)
	}

	if stake < r.fee {
		return cm.NewCoreErr("Authorize", cm.InsufficientStake, address)
	}

	if err := r.stakes.Transfer(address, r.fee); err != nil {
		return cm.NewCoreErr("Authorize", cm.InsufficientStake, address)
	}

	airline.Authorized = true

	if err := r.store.SetAirline(airline); err != nil {
		return err
	}

	r.logger.WithField("address", address).Debug("Airline authorized")

	return nil
}

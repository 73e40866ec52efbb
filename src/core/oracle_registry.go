package core

import (
	"sync"

	cm "github.com/deeptony/flightInsurance/src/common"
	"github.com/deeptony/flightInsurance/src/notify"
	"github.com/sirupsen/logrus"
)

// OracleRegistry manages oracle registrations and the index triplets assigned
// to them.
type OracleRegistry struct {
	mtx      sync.Mutex
	store    Store
	assigner *IndexAssigner
	fee      uint64
	notifier notify.Notifier
	logger   *logrus.Entry
}

// NewOracleRegistry ...
func NewOracleRegistry(
	store Store,
	assigner *IndexAssigner,
	fee uint64,
	notifier notify.Notifier,
	logger *logrus.Entry,
) *OracleRegistry {
	return &OracleRegistry{
		store:    store,
		assigner: assigner,
		fee:      fee,
		notifier: notifier,
		logger:   logger,
	}
}

// Register registers an oracle and assigns it a triplet of pairwise-distinct
// indexes. It fails with InsufficientStake when stake is below the
// registration fee.
//
// Registering the same address twice re-registers it, overwriting the
// previously assigned indexes. Callers that want strict semantics should
// check for an existing registration first.
func (r *OracleRegistry) Register(address string, stake uint64) (*Oracle, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if stake < r.fee {
		return nil, cm.NewCoreErr("RegisterOracle", cm.InsufficientStake, address)
	}

	indexes, err := r.assigner.GenerateTriplet(address)
	if err != nil {
		return nil, err
	}

	oracle := &Oracle{
		Address: address,
		Indexes: indexes,
	}

	if err := r.store.SetOracle(oracle); err != nil {
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"address": address,
		"indexes": indexes,
	}).Debug("Registered oracle")

	r.notifier.Emit(notify.Event{
		Name: notify.OracleRegistered,
		Payload: map[string]interface{}{
			"address": address,
			"indexes": indexes,
		},
	})

	return oracle, nil
}

// IndexesOf returns the triplet assigned to the oracle at registration. It
// fails with NotRegistered when the address is unknown.
func (r *OracleRegistry) IndexesOf(address string) ([TripletSize]int, error) {
	oracle, err := r.Get(address)
	if err != nil {
		return [TripletSize]int{}, err
	}
	return oracle.Indexes, nil
}

// Get returns the oracle registered under address, or NotRegistered.
func (r *OracleRegistry) Get(address string) (*Oracle, error) {
	oracle, err := r.store.GetOracle(address)
	if err != nil {
		if cm.IsStore(err, cm.KeyNotFound) {
			return nil, cm.NewCoreErr("GetOracle", cm.NotRegistered, address)
		}
		return nil, err
	}
	return oracle, nil
}

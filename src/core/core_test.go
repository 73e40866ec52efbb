package core

import (
	"sync"
	"testing"

	cm "github.com/deeptony/flightInsurance/src/common"
	"github.com/deeptony/flightInsurance/src/entropy"
	"github.com/deeptony/flightInsurance/src/ledger"
	"github.com/deeptony/flightInsurance/src/notify"
)

// testNotifier collects emitted events so tests can assert on them.
type testNotifier struct {
	sync.Mutex
	events []notify.Event
}

func newTestNotifier() *testNotifier {
	return &testNotifier{}
}

func (n *testNotifier) Emit(event notify.Event) {
	n.Lock()
	defer n.Unlock()

	n.events = append(n.events, event)
}

func (n *testNotifier) countByName(name string) int {
	n.Lock()
	defer n.Unlock()

	count := 0
	for _, e := range n.events {
		if e.Name == name {
			count++
		}
	}
	return count
}

func (n *testNotifier) lastByName(name string) (notify.Event, bool) {
	n.Lock()
	defer n.Unlock()

	for i := len(n.events) - 1; i >= 0; i-- {
		if n.events[i].Name == name {
			return n.events[i], true
		}
	}
	return notify.Event{}, false
}

// testSystem wires a full set of core components over an in-memory store.
type testSystem struct {
	store      *InmemStore
	notifier   *testNotifier
	assigner   *IndexAssigner
	oracles    *OracleRegistry
	aggregator *ResponseAggregator
	tracker    *RequestTracker
	airlineReg *AirlineRegistry
	voting     *VotingConsensus
	stakes     *ledger.InmemLedger
}

const (
	testOracleFee  = uint64(1)
	testAirlineFee = uint64(10)
)

func initTestSystem(t *testing.T, strict bool) *testSystem {
	logger := cm.NewTestEntry(t)

	store := NewInmemStore()
	notifier := newTestNotifier()
	stakes := ledger.NewInmemLedger()
	assigner := NewIndexAssigner(entropy.NewFixedSource([]byte("test seed")))

	oracles := NewOracleRegistry(store, assigner, testOracleFee, notifier, logger)
	aggregator := NewResponseAggregator(store, strict, notifier, logger)
	tracker := NewRequestTracker(store, assigner, oracles, aggregator, notifier, logger)
	voting := NewVotingConsensus(store, notifier, logger)
	airlineReg := NewAirlineRegistry(store, stakes, testAirlineFee, notifier, logger)

	return &testSystem{
		store:      store,
		notifier:   notifier,
		assigner:   assigner,
		oracles:    oracles,
		aggregator: aggregator,
		tracker:    tracker,
		airlineReg: airlineReg,
		voting:     voting,
		stakes:     stakes,
	}
}

// bootstrapAirlines admits the first airline and fast-paths the rest, in
// order.
func (s *testSystem) bootstrapAirlines(t *testing.T, addresses ...string) {
	if len(addresses) == 0 {
		return
	}

	if err := s.airlineReg.Bootstrap(addresses[0], ""); err != nil {
		t.Fatalf("err: %v", err)
	}

	for _, addr := range addresses[1:] {
		if _, err := s.airlineReg.Propose(addr, "", addresses[0]); err != nil {
			t.Fatalf("err: %v", err)
		}
	}
}

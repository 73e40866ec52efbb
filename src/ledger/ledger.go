// Package ledger defines the stake-payment collaborator. The core only ever
// asks it to move a participant's stake into the insurance pool; actual
// settlement, payouts and refunds live outside the core.
package ledger

import (
	"fmt"
	"sync"
)

// StakeLedger transfers stake from a participant to the pool. An
// implementation backed by a real payment system should return an error when
// the participant's funds do not cover the amount.
type StakeLedger interface {
	Transfer(from string, amount uint64) error
}

// InmemLedger implements StakeLedger with an in-memory balance table. It is
// used in tests and in standalone deployments where payment is handled out of
// band.
type InmemLedger struct {
	mtx      sync.Mutex
	balances map[string]uint64
	pool     uint64
}

// NewInmemLedger ...
func NewInmemLedger() *InmemLedger {
	return &InmemLedger{
		balances: make(map[string]uint64),
	}
}

// Credit adds funds to a participant's balance.
func (l *InmemLedger) Credit(address string, amount uint64) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.balances[address] += amount
}

// Balance returns a participant's current balance.
func (l *InmemLedger) Balance(address string) uint64 {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	return l.balances[address]
}

// Pool returns the total stake transferred into the pool.
func (l *InmemLedger) Pool() uint64 {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	return l.pool
}

// Transfer implements the StakeLedger interface.
func (l *InmemLedger) Transfer(from string, amount uint64) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	balance := l.balances[from]
	if balance < amount {
		return fmt.Errorf("insufficient funds: %s holds %d, needs %d", from, balance, amount)
	}

	l.balances[from] = balance - amount
	l.pool += amount

	return nil
}

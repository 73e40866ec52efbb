// Package entropy defines the source of unpredictability used to assign
// oracle indexes. The source is injected as a capability so that tests can
// substitute deterministic fixtures for a live feed.
//
// None of the implementations here are cryptographically secure. The output
// is good enough for schedule-sharding (deciding which oracles answer which
// request) but must not be used where an adversary gaining advance knowledge
// of the output has something to win.
package entropy

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/deeptony/flightInsurance/src/crypto"
)

// Source supplies externally-verifiable entropy. Latest must not be
// controllable by the participant on whose behalf it is being read.
type Source interface {
	Latest() ([]byte, error)
}

// ClockSource derives entropy from the wall clock and a process-local
// counter, standing in for a block-hash feed when the core runs outside any
// chain environment.
type ClockSource struct {
	mtx   sync.Mutex
	count uint64
}

// NewClockSource ...
func NewClockSource() *ClockSource {
	return &ClockSource{}
}

// Latest implements the Source interface.
func (c *ClockSource) Latest() ([]byte, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.count++

	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[:8], uint64(time.Now().UnixNano()))
	binary.BigEndian.PutUint64(buf[8:], c.count)

	return crypto.SHA256(buf), nil
}

// FixedSource always returns the same bytes. It is meant for tests that need
// reproducible index assignments.
type FixedSource struct {
	seed []byte
}

// NewFixedSource ...
func NewFixedSource(seed []byte) *FixedSource {
	return &FixedSource{seed: seed}
}

// Latest implements the Source interface.
func (f *FixedSource) Latest() ([]byte, error) {
	return f.seed, nil
}

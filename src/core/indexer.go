package core

import (
	"encoding/binary"
	"sync"

	"github.com/deeptony/flightInsurance/src/crypto"
	"github.com/deeptony/flightInsurance/src/entropy"
)

// IndexAssigner generates pseudo-random index slots in [0, IndexSpace). Each
// draw mixes the latest entropy with a strictly increasing nonce and the
// participant's address, so two draws for the same participant within a short
// window cannot deterministically collide.
//
// The output is unpredictable enough for schedule-sharding but is NOT
// cryptographically secure randomness; a participant able to grind the
// entropy source could bias it. Do not build anything value-sensitive on it.
type IndexAssigner struct {
	mtx    sync.Mutex
	source entropy.Source
	nonce  uint64
}

// NewIndexAssigner ...
func NewIndexAssigner(source entropy.Source) *IndexAssigner {
	return &IndexAssigner{
		source: source,
	}
}

// NextIndex draws one index for the participant. The nonce is consumed under
// the lock, which gives the single-writer discipline that the distinct
// triplet invariant depends on under concurrent registrations.
func (a *IndexAssigner) NextIndex(address string) (int, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	return a.nextIndex(address)
}

func (a *IndexAssigner) nextIndex(address string) (int, error) {
	seed, err := a.source.Latest()
	if err != nil {
		return 0, err
	}

	buf := make([]byte, 0, len(seed)+8+len(address))
	buf = append(buf, seed...)

	nonceBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(nonceBytes, a.nonce)
	buf = append(buf, nonceBytes...)

	buf = append(buf, []byte(address)...)

	a.nonce++
	if a.nonce > nonceWrap {
		a.nonce = 0
	}

	hash := crypto.SHA256(buf)

	return int(binary.BigEndian.Uint64(hash[:8]) % IndexSpace), nil
}

// GenerateTriplet draws TripletSize pairwise-distinct indexes for the
// participant, re-rolling any draw that collides with one already chosen.
func (a *IndexAssigner) GenerateTriplet(address string) ([TripletSize]int, error) {
	a.mtx.Lock()
	defer a.mtx.Unlock()

	var triplet [TripletSize]int

	for i := 0; i < TripletSize; i++ {
		for {
			index, err := a.nextIndex(address)
			if err != nil {
				return triplet, err
			}

			if !contains(triplet[:i], index) {
				triplet[i] = index
				break
			}
		}
	}

	return triplet, nil
}

func contains(indexes []int, index int) bool {
	for _, i := range indexes {
		if i == index {
			return true
		}
	}
	return false
}

package core

import (
	"sort"
	"sync"

	"github.com/deeptony/flightInsurance/src/airlines"
	cm "github.com/deeptony/flightInsurance/src/common"
)

// InmemStore implements the Store interface with native maps. It is the
// default store, and also serves as the cache layer of the BadgerStore.
//
// Setters store a private copy and getters return one, so a record held by a
// caller is a snapshot: mutating it never races with readers, and the
// mutation only becomes visible through the next Set.
type InmemStore struct {
	mtx          sync.RWMutex
	airlineSet   *airlines.Airlines
	oraclesByKey map[string]*Oracle
	requests     map[string]*StatusRequest
	tallies      map[string]*VoteTally
}

// NewInmemStore ...
func NewInmemStore() *InmemStore {
	return &InmemStore{
		airlineSet:   airlines.NewAirlines(),
		oraclesByKey: make(map[string]*Oracle),
		requests:     make(map[string]*StatusRequest),
		tallies:      make(map[string]*VoteTally),
	}
}

// GetAirline implements the Store interface.
func (s *InmemStore) GetAirline(address string) (*airlines.Airline, error) {
	airline := s.airlineSet.Get(address)
	if airline == nil {
		return nil, cm.NewStoreErr("Airline", cm.KeyNotFound, address)
	}
	return airline.Copy(), nil
}

// SetAirline implements the Store interface.
func (s *InmemStore) SetAirline(airline *airlines.Airline) error {
	s.airlineSet.Add(airline.Copy())
	return nil
}

// Airlines implements the Store interface.
func (s *InmemStore) Airlines() []*airlines.Airline {
	s.airlineSet.RLock()
	defer s.airlineSet.RUnlock()

	res := make([]*airlines.Airline, len(s.airlineSet.Sorted))
	copy(res, s.airlineSet.Sorted)

	return res
}

// AdmittedCount implements the Store interface.
func (s *InmemStore) AdmittedCount() int {
	return s.airlineSet.AdmittedCount()
}

// GetOracle implements the Store interface.
func (s *InmemStore) GetOracle(address string) (*Oracle, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	oracle, ok := s.oraclesByKey[address]
	if !ok {
		return nil, cm.NewStoreErr("Oracle", cm.KeyNotFound, address)
	}

	return oracle.Copy(), nil
}

// SetOracle implements the Store interface.
func (s *InmemStore) SetOracle(oracle *Oracle) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.oraclesByKey[oracle.Address] = oracle.Copy()

	return nil
}

// Oracles implements the Store interface.
func (s *InmemStore) Oracles() []*Oracle {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*Oracle, 0, len(s.oraclesByKey))
	for _, oracle := range s.oraclesByKey {
		res = append(res, oracle)
	}

	sort.Slice(res, func(i, j int) bool { return res[i].Address < res[j].Address })

	return res
}

// GetRequest implements the Store interface.
func (s *InmemStore) GetRequest(key string) (*StatusRequest, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	request, ok := s.requests[key]
	if !ok {
		return nil, cm.NewStoreErr("StatusRequest", cm.KeyNotFound, key)
	}

	return request.Copy(), nil
}

// SetRequest implements the Store interface.
func (s *InmemStore) SetRequest(request *StatusRequest) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.requests[request.Key] = request.Copy()

	return nil
}

// OpenRequests implements the Store interface.
func (s *InmemStore) OpenRequests() []*StatusRequest {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*StatusRequest{}
	for _, request := range s.requests {
		if request.Open && !request.Finalized {
			res = append(res, request)
		}
	}

	sort.Slice(res, func(i, j int) bool { return res[i].Key < res[j].Key })

	return res
}

// GetTally implements the Store interface.
func (s *InmemStore) GetTally(candidate string) (*VoteTally, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	tally, ok := s.tallies[candidate]
	if !ok {
		return nil, cm.NewStoreErr("VoteTally", cm.KeyNotFound, candidate)
	}

	return tally.Copy(), nil
}

// SetTally implements the Store interface.
func (s *InmemStore) SetTally(tally *VoteTally) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.tallies[tally.Candidate] = tally.Copy()

	return nil
}

// Close implements the Store interface.
func (s *InmemStore) Close() error {
	return nil
}

// StorePath implements the Store interface.
func (s *InmemStore) StorePath() string {
	return ""
}

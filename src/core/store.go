package core

import (
	"github.com/deeptony/flightInsurance/src/airlines"
)

// Store is an interface for backend stores. Reads are linearizable with
// respect to writes; the core never caches records across operations.
// Getters return snapshots: a caller may mutate a returned record freely, and
// the mutation only becomes visible through the corresponding setter.
type Store interface {
	// GetAirline returns an airline by address.
	GetAirline(address string) (*airlines.Airline, error)
	// SetAirline inserts or overwrites an airline.
	SetAirline(airline *airlines.Airline) error
	// Airlines returns all known airlines, sorted by address.
	Airlines() []*airlines.Airline
	// AdmittedCount returns the number of admitted airlines.
	AdmittedCount() int
	// GetOracle returns an oracle by address.
	GetOracle(address string) (*Oracle, error)
	// SetOracle inserts or overwrites an oracle registration.
	SetOracle(oracle *Oracle) error
	// Oracles returns all registered oracles, sorted by address.
	Oracles() []*Oracle
	// GetRequest returns a status request by composite key.
	GetRequest(key string) (*StatusRequest, error)
	// SetRequest inserts or overwrites a status request.
	SetRequest(request *StatusRequest) error
	// OpenRequests returns all requests that are open and not finalized.
	OpenRequests() []*StatusRequest
	// GetTally returns a candidate's vote tally.
	GetTally(candidate string) (*VoteTally, error)
	// SetTally inserts or overwrites a vote tally.
	SetTally(tally *VoteTally) error
	// Close closes the underlying database.
	Close() error
	// StorePath returns the filepath of the underlying database, if any.
	StorePath() string
}

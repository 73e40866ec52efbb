// Package notify defines the one-way event sink through which the consensus
// core informs external watchers of protocol progress. Delivery is best
// effort; watchers that need the full state read it back from the store.
package notify

// Event names emitted by the core.
const (
	// RequestOpened carries the computed index; eligible oracles watch for it
	// and self-select by comparing the index to their own.
	RequestOpened = "request-opened"
	// ResponseRecorded is emitted after every accepted oracle response.
	ResponseRecorded = "response-recorded"
	// QuorumReached is emitted exactly once per finalized request.
	QuorumReached = "quorum-reached"
	// OracleRegistered ...
	OracleRegistered = "oracle-registered"
	// AirlineProposed ...
	AirlineProposed = "airline-proposed"
	// AirlineAdmitted ...
	AirlineAdmitted = "airline-admitted"
)

// Event is a named payload destined for external watchers.
type Event struct {
	Name    string
	Payload map[string]interface{}
}

// Notifier is the sink interface. Emit must not block the calling operation
// indefinitely and must not fail it; implementations that cannot deliver
// should drop and log rather than propagate an error into the core.
type Notifier interface {
	Emit(event Event)
}

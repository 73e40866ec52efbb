package core

// Protocol constants. These are fixed by the protocol, not configuration:
// changing them changes what the participants agree on.
const (
	// IndexSpace is the number of index slots; indexes are in [0, IndexSpace).
	IndexSpace = 10

	// TripletSize is the number of indexes assigned to each oracle at
	// registration.
	TripletSize = 3

	// OracleQuorum is the number of independent matching responses required
	// to finalize a status request.
	OracleQuorum = 3

	// MultipartyThreshold is the admitted-set size at which the bootstrap
	// fast-path ends and quorum voting takes over.
	MultipartyThreshold = 5

	// nonceWrap bounds the index-assignment nonce so that the entropy inputs
	// stay within the freshness window of the entropy source.
	nonceWrap = 250
)

// FlightStatus is the value oracles report about a flight.
type FlightStatus int

// Flight status codes.
const (
	StatusUnknown       FlightStatus = 0
	StatusOnTime        FlightStatus = 10
	StatusLateAirline   FlightStatus = 20
	StatusLateWeather   FlightStatus = 30
	StatusLateTechnical FlightStatus = 40
	StatusLateOther     FlightStatus = 50
)

// String returns the string representation of a FlightStatus.
func (s FlightStatus) String() string {
	switch s {
	case StatusUnknown:
		return "Unknown"
	case StatusOnTime:
		return "OnTime"
	case StatusLateAirline:
		return "LateAirline"
	case StatusLateWeather:
		return "LateWeather"
	case StatusLateTechnical:
		return "LateTechnical"
	case StatusLateOther:
		return "LateOther"
	default:
		return "Invalid"
	}
}

package core

import (
	"bytes"

	"github.com/deeptony/flightInsurance/src/common"
	"github.com/deeptony/flightInsurance/src/crypto"
	"github.com/ugorji/go/codec"
)

// requestTuple is the content-addressed identity of a status request. Two
// requests with the same tuple are the same request.
type requestTuple struct {
	Index      int
	Flight     string
	Descriptor string
	Timestamp  int64
}

// RequestID derives the composite key of a status request from its tuple. The
// tuple is canonically encoded before hashing so the key does not depend on
// field order or encoder state.
func RequestID(index int, flight, descriptor string, timestamp int64) string {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	// The tuple has no unencodable fields; Encode cannot fail here.
	enc.MustEncode(requestTuple{
		Index:      index,
		Flight:     flight,
		Descriptor: descriptor,
		Timestamp:  timestamp,
	})

	return common.EncodeToString(crypto.SHA256(b.Bytes()))
}

// StatusRequest tracks an open oracle query and the responses received so
// far. Responses groups reporter addresses by the value they reported.
type StatusRequest struct {
	Key        string
	Index      int
	Flight     string
	Descriptor string
	Timestamp  int64
	Requester  string
	Open       bool
	Finalized  bool
	Responses  map[FlightStatus][]string
}

// NewStatusRequest opens a new request for the given tuple.
func NewStatusRequest(index int, flight, descriptor string, timestamp int64, requester string) *StatusRequest {
	return &StatusRequest{
		Key:        RequestID(index, flight, descriptor, timestamp),
		Index:      index,
		Flight:     flight,
		Descriptor: descriptor,
		Timestamp:  timestamp,
		Requester:  requester,
		Open:       true,
		Responses:  make(map[FlightStatus][]string),
	}
}

// HasResponse reports whether the reporter already responded with value.
func (r *StatusRequest) HasResponse(value FlightStatus, reporter string) bool {
	for _, addr := range r.Responses[value] {
		if addr == reporter {
			return true
		}
	}
	return false
}

// RespondedWith returns the first value the reporter responded with, if any.
func (r *StatusRequest) RespondedWith(reporter string) (FlightStatus, bool) {
	for value, reporters := range r.Responses {
		for _, addr := range reporters {
			if addr == reporter {
				return value, true
			}
		}
	}
	return StatusUnknown, false
}

// AddResponse appends the reporter to the response set for value. It returns
// false when the reporter already responded with that value, so a repeated
// response never double counts.
func (r *StatusRequest) AddResponse(value FlightStatus, reporter string) bool {
	if r.HasResponse(value, reporter) {
		return false
	}

	if r.Responses == nil {
		r.Responses = make(map[FlightStatus][]string)
	}

	r.Responses[value] = append(r.Responses[value], reporter)

	return true
}

// CountFor returns the number of distinct reporters that responded with
// value.
func (r *StatusRequest) CountFor(value FlightStatus) int {
	return len(r.Responses[value])
}

// Copy returns a deep copy of the request, with its own response sets.
func (r *StatusRequest) Copy() *StatusRequest {
	c := *r

	c.Responses = make(map[FlightStatus][]string, len(r.Responses))
	for value, reporters := range r.Responses {
		c.Responses[value] = append([]string(nil), reporters...)
	}

	return &c
}

// Marshal - canonical json encoding of StatusRequest
func (r *StatusRequest) Marshal() ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(r); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Unmarshal ...
func (r *StatusRequest) Unmarshal(data []byte) error {
	b := bytes.NewBuffer(data)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	dec := codec.NewDecoder(b, jh)

	return dec.Decode(r)
}

package airlines

import (
	"bytes"

	"github.com/deeptony/flightInsurance/src/common"
	"github.com/ugorji/go/codec"
)

// Airline is a participant in the registration consensus. Address is the
// authoritative identity; Moniker is a non-unique user-friendly name.
type Airline struct {
	Address    string
	Moniker    string
	Admitted   bool
	Authorized bool

	id uint32
}

// NewAirline creates a new airline in the pending state.
func NewAirline(address, moniker string) *Airline {
	airline := &Airline{
		Address: address,
		Moniker: moniker,
	}

	airline.computeID()

	return airline
}

// ID returns a compact uint32 identifier derived from the address. It is used
// for log-friendly short identifiers, never as the authoritative identity.
func (a *Airline) ID() uint32 {
	if a.id == 0 {
		a.computeID()
	}
	return a.id
}

func (a *Airline) computeID() {
	a.id = common.Hash32([]byte(a.Address))
}

// Copy returns a copy of the airline, detached from the receiver.
func (a *Airline) Copy() *Airline {
	c := *a
	return &c
}

// Marshal - canonical json encoding of Airline
func (a *Airline) Marshal() ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(a); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Unmarshal ...
func (a *Airline) Unmarshal(data []byte) error {
	b := bytes.NewBuffer(data)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	dec := codec.NewDecoder(b, jh)

	return dec.Decode(a)
}

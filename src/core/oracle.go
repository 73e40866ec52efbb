package core

import (
	"bytes"

	"github.com/ugorji/go/codec"
)

// Oracle is a registered status reporter. Indexes are assigned once at
// registration and are immutable thereafter; they determine which status
// requests the oracle is expected to answer.
type Oracle struct {
	Address string
	Indexes [TripletSize]int
}

// HasIndex reports whether index is one of the oracle's assigned indexes.
func (o *Oracle) HasIndex(index int) bool {
	for _, i := range o.Indexes {
		if i == index {
			return true
		}
	}
	return false
}

// Copy returns a copy of the oracle, detached from the receiver.
func (o *Oracle) Copy() *Oracle {
	c := *o
	return &c
}

// Marshal - canonical json encoding of Oracle
func (o *Oracle) Marshal() ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(o); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Unmarshal ...
func (o *Oracle) Unmarshal(data []byte) error {
	b := bytes.NewBuffer(data)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	dec := codec.NewDecoder(b, jh)

	return dec.Decode(o)
}

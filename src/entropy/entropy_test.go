package entropy

import (
	"bytes"
	"testing"
)

func TestClockSourceVaries(t *testing.T) {
	source := NewClockSource()

	a, err := source.Latest()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	b, err := source.Latest()
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if len(a) != 32 {
		t.Fatalf("output should be 32 bytes, not %d", len(a))
	}
	if bytes.Equal(a, b) {
		t.Fatalf("consecutive reads should differ")
	}
}

func TestFixedSource(t *testing.T) {
	source := NewFixedSource([]byte("seed"))

	a, _ := source.Latest()
	b, _ := source.Latest()

	if !bytes.Equal(a, []byte("seed")) {
		t.Fatalf("fixed source should return its seed")
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("fixed source should be stable")
	}
}

package core

import "testing"

func TestRequestIDDeterministic(t *testing.T) {
	a := RequestID(5, "ND1309", "status", 1554810000)
	b := RequestID(5, "ND1309", "status", 1554810000)

	if a != b {
		t.Fatalf("same tuple should yield the same key")
	}
}

func TestRequestIDSensitivity(t *testing.T) {
	base := RequestID(5, "ND1309", "status", 1554810000)

	variants := []string{
		RequestID(6, "ND1309", "status", 1554810000),
		RequestID(5, "ND1310", "status", 1554810000),
		RequestID(5, "ND1309", "departure", 1554810000),
		RequestID(5, "ND1309", "status", 1554810001),
	}

	for i, v := range variants {
		if v == base {
			t.Fatalf("variant %d should not collide with the base key", i)
		}
	}
}

func TestAddResponse(t *testing.T) {
	request := NewStatusRequest(5, "ND1309", "status", 1554810000, "0Xr")

	if !request.AddResponse(StatusOnTime, "0Xo1") {
		t.Fatalf("first response should be added")
	}
	if request.AddResponse(StatusOnTime, "0Xo1") {
		t.Fatalf("repeated response should not be added")
	}
	if !request.AddResponse(StatusOnTime, "0Xo2") {
		t.Fatalf("a different reporter should be added")
	}

	if request.CountFor(StatusOnTime) != 2 {
		t.Fatalf("count should be 2, not %d", request.CountFor(StatusOnTime))
	}
	if request.CountFor(StatusLateAirline) != 0 {
		t.Fatalf("empty bucket should count 0")
	}

	if prev, ok := request.RespondedWith("0Xo1"); !ok || prev != StatusOnTime {
		t.Fatalf("RespondedWith should report StatusOnTime for 0Xo1")
	}
	if _, ok := request.RespondedWith("0Xo3"); ok {
		t.Fatalf("RespondedWith should miss for a silent reporter")
	}
}

package core

import (
	"encoding/json"
	"sync"
	"testing"

	cm "github.com/deeptony/flightInsurance/src/common"
	"github.com/deeptony/flightInsurance/src/notify"
)

const (
	testFlight     = "ND1309"
	testDescriptor = "status"
	testTimestamp  = int64(1554810000)
)

// openRequestAt installs an open request with a chosen index, bypassing the
// random assignment, so response validation can be tested deterministically.
func openRequestAt(t *testing.T, s *testSystem, index int) *StatusRequest {
	request := NewStatusRequest(index, testFlight, testDescriptor, testTimestamp, "0Xrequester")
	if err := s.store.SetRequest(request); err != nil {
		t.Fatalf("err: %v", err)
	}
	return request
}

func TestOpenRequest(t *testing.T) {
	s := initTestSystem(t, false)

	request, err := s.tracker.OpenRequest(testFlight, testDescriptor, testTimestamp, "0Xrequester")
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if !request.Open {
		t.Fatalf("request should be open")
	}
	if request.Index < 0 || request.Index >= IndexSpace {
		t.Fatalf("index %d out of [0, %d)", request.Index, IndexSpace)
	}
	if request.Key != RequestID(request.Index, testFlight, testDescriptor, testTimestamp) {
		t.Fatalf("key does not match its tuple")
	}

	stored, err := s.store.GetRequest(request.Key)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if stored.Key != request.Key {
		t.Fatalf("stored key should be %s, not %s", request.Key, stored.Key)
	}

	event, ok := s.notifier.lastByName(notify.RequestOpened)
	if !ok {
		t.Fatalf("no %s event", notify.RequestOpened)
	}
	if event.Payload["index"] != request.Index {
		t.Fatalf("event index should be %d, not %v", request.Index, event.Payload["index"])
	}
}

func TestReopenRequestOverwrites(t *testing.T) {
	s := initTestSystem(t, false)

	request := openRequestAt(t, s, 5)

	if err := s.store.SetOracle(&Oracle{Address: "0Xoracle1", Indexes: [TripletSize]int{2, 5, 9}}); err != nil {
		t.Fatalf("err: %v", err)
	}

	if _, _, err := s.tracker.SubmitResponse("0Xoracle1", 5, testFlight, testDescriptor, testTimestamp, StatusOnTime); err != nil {
		t.Fatalf("err: %v", err)
	}

	// Re-inserting the same tuple resets the request, responses included.
	reopened := NewStatusRequest(5, testFlight, testDescriptor, testTimestamp, "0Xrequester")
	if err := s.store.SetRequest(reopened); err != nil {
		t.Fatalf("err: %v", err)
	}

	stored, err := s.store.GetRequest(request.Key)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if stored.CountFor(StatusOnTime) != 0 {
		t.Fatalf("re-opened request should have no responses")
	}
}

func TestSubmitResponseUnknownReporter(t *testing.T) {
	s := initTestSystem(t, false)

	openRequestAt(t, s, 5)

	_, _, err := s.tracker.SubmitResponse("0Xghost", 5, testFlight, testDescriptor, testTimestamp, StatusOnTime)
	if !cm.IsCore(err, cm.NotRegistered) {
		t.Fatalf("err should be NotRegistered, not %v", err)
	}
}

func TestSubmitResponseIndexMismatch(t *testing.T) {
	s := initTestSystem(t, false)

	openRequestAt(t, s, 7)

	if err := s.store.SetOracle(&Oracle{Address: "0Xoracle1", Indexes: [TripletSize]int{2, 5, 9}}); err != nil {
		t.Fatalf("err: %v", err)
	}

	// The reporter's claimed index is checked against its own triplet,
	// regardless of request state.
	_, _, err := s.tracker.SubmitResponse("0Xoracle1", 7, testFlight, testDescriptor, testTimestamp, StatusOnTime)
	if !cm.IsCore(err, cm.IndexMismatch) {
		t.Fatalf("err should be IndexMismatch, not %v", err)
	}
}

func TestSubmitResponseNoOpenRequest(t *testing.T) {
	s := initTestSystem(t, false)

	if err := s.store.SetOracle(&Oracle{Address: "0Xoracle1", Indexes: [TripletSize]int{2, 5, 9}}); err != nil {
		t.Fatalf("err: %v", err)
	}

	_, _, err := s.tracker.SubmitResponse("0Xoracle1", 5, testFlight, testDescriptor, testTimestamp, StatusOnTime)
	if !cm.IsCore(err, cm.NoOpenRequest) {
		t.Fatalf("err should be NoOpenRequest, not %v", err)
	}
}

// TestSubmitResponseConcurrentReads drives submissions while another
// goroutine reads and JSON-encodes the request, the way the HTTP service
// does. Run with the race detector enabled, it verifies that readers never
// observe a request mutated in place.
func TestSubmitResponseConcurrentReads(t *testing.T) {
	s := initTestSystem(t, false)

	request := openRequestAt(t, s, 5)

	for i := 0; i < 10; i++ {
		oracle := &Oracle{
			Address: string(rune('a'+i)) + "-reporter",
			Indexes: [TripletSize]int{5, 6, 7},
		}
		if err := s.store.SetOracle(oracle); err != nil {
			t.Fatalf("err: %v", err)
		}
	}

	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}

			stored, err := s.store.GetRequest(request.Key)
			if err != nil {
				continue
			}
			if _, err := json.Marshal(stored); err != nil {
				t.Errorf("err: %v", err)
				return
			}
		}
	}()

	for i := 0; i < 10; i++ {
		reporter := string(rune('a'+i)) + "-reporter"
		if _, _, err := s.tracker.SubmitResponse(reporter, 5, testFlight, testDescriptor, testTimestamp, StatusLateAirline); err != nil {
			t.Errorf("err: %v", err)
		}
	}

	close(done)
	wg.Wait()

	stored, err := s.store.GetRequest(request.Key)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if stored.CountFor(StatusLateAirline) != 10 {
		t.Fatalf("count should be 10, not %d", stored.CountFor(StatusLateAirline))
	}
}

func TestSubmitResponseMatchingIndex(t *testing.T) {
	s := initTestSystem(t, false)

	openRequestAt(t, s, 5)

	if err := s.store.SetOracle(&Oracle{Address: "0Xoracle1", Indexes: [TripletSize]int{2, 5, 9}}); err != nil {
		t.Fatalf("err: %v", err)
	}

	quorum, _, err := s.tracker.SubmitResponse("0Xoracle1", 5, testFlight, testDescriptor, testTimestamp, StatusLateAirline)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if quorum {
		t.Fatalf("a single response should not reach quorum")
	}

	if c := s.notifier.countByName(notify.ResponseRecorded); c != 1 {
		t.Fatalf("expected 1 %s event, got %d", notify.ResponseRecorded, c)
	}
}

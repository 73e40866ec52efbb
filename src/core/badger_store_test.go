package core

import (
	"io/ioutil"
	"log"
	"os"
	"testing"

	"github.com/deeptony/flightInsurance/src/airlines"
	cm "github.com/deeptony/flightInsurance/src/common"
)

func initBadgerStore(t *testing.T) *BadgerStore {
	os.RemoveAll("test_data")
	os.Mkdir("test_data", os.ModeDir|0777)
	dir, err := ioutil.TempDir("test_data", "badger")
	if err != nil {
		log.Fatal(err)
	}

	store, err := NewBadgerStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	return store
}

func removeBadgerStore(store *BadgerStore, t *testing.T) {
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(store.path); err != nil {
		t.Fatal(err)
	}
}

func TestNewBadgerStore(t *testing.T) {
	store := initBadgerStore(t)
	defer removeBadgerStore(store, t)

	if _, err := os.Stat(store.StorePath()); err != nil {
		t.Fatalf("err: %v", err)
	}
}

func TestBadgerAirlines(t *testing.T) {
	store := initBadgerStore(t)
	defer removeBadgerStore(store, t)

	airline := airlines.NewAirline("0Xa", "Alpha Air")
	airline.Admitted = true

	if err := store.SetAirline(airline); err != nil {
		t.Fatalf("err: %v", err)
	}

	// The database must hold the record independently of the cache.
	val, err := store.dbGet(airlinePrefix + "0Xa")
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	stored := &airlines.Airline{}
	if err := stored.Unmarshal(val); err != nil {
		t.Fatalf("err: %v", err)
	}
	if stored.Address != "0Xa" || !stored.Admitted {
		t.Fatalf("persisted airline does not match")
	}

	if _, err := store.dbGet(airlinePrefix + "0Xmissing"); !cm.IsStore(err, cm.KeyNotFound) {
		t.Fatalf("err should be KeyNotFound, not %v", err)
	}
}

func TestBadgerRequests(t *testing.T) {
	store := initBadgerStore(t)
	defer removeBadgerStore(store, t)

	request := NewStatusRequest(5, "ND1309", "status", 1554810000, "0Xr")
	request.AddResponse(StatusLateAirline, "0Xo1")

	if err := store.SetRequest(request); err != nil {
		t.Fatalf("err: %v", err)
	}

	val, err := store.dbGet(requestPrefix + request.Key)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	stored := &StatusRequest{}
	if err := stored.Unmarshal(val); err != nil {
		t.Fatalf("err: %v", err)
	}
	if stored.Key != request.Key {
		t.Fatalf("key should be %s, not %s", request.Key, stored.Key)
	}
	if stored.CountFor(StatusLateAirline) != 1 {
		t.Fatalf("responses should survive persistence")
	}
}

func TestLoadBadgerStore(t *testing.T) {
	store := initBadgerStore(t)
	dir := store.StorePath()
	defer os.RemoveAll("test_data")

	airline := airlines.NewAirline("0Xa", "Alpha Air")
	airline.Admitted = true
	if err := store.SetAirline(airline); err != nil {
		t.Fatalf("err: %v", err)
	}

	oracle := &Oracle{Address: "0Xo", Indexes: [TripletSize]int{2, 5, 9}}
	if err := store.SetOracle(oracle); err != nil {
		t.Fatalf("err: %v", err)
	}

	request := NewStatusRequest(5, "ND1309", "status", 1554810000, "0Xr")
	if err := store.SetRequest(request); err != nil {
		t.Fatalf("err: %v", err)
	}

	tally := NewVoteTally("0Xf")
	tally.AddVote("0Xa")
	if err := store.SetTally(tally); err != nil {
		t.Fatalf("err: %v", err)
	}

	if err := store.Close(); err != nil {
		t.Fatalf("err: %v", err)
	}

	reloaded, err := LoadBadgerStore(dir)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer reloaded.Close()

	if got, err := reloaded.GetAirline("0Xa"); err != nil || !got.Admitted {
		t.Fatalf("airline not reloaded: %v", err)
	}
	if got, err := reloaded.GetOracle("0Xo"); err != nil || got.Indexes != oracle.Indexes {
		t.Fatalf("oracle not reloaded: %v", err)
	}
	if got, err := reloaded.GetRequest(request.Key); err != nil || !got.Open {
		t.Fatalf("request not reloaded: %v", err)
	}
	if got, err := reloaded.GetTally("0Xf"); err != nil || got.Count() != 1 {
		t.Fatalf("tally not reloaded: %v", err)
	}
	if c := reloaded.AdmittedCount(); c != 1 {
		t.Fatalf("admitted count should be 1, not %d", c)
	}
}

func TestLoadBadgerStoreMissingDir(t *testing.T) {
	if _, err := LoadBadgerStore("test_data/does_not_exist"); err == nil {
		t.Fatalf("loading a missing database should fail")
	}
}

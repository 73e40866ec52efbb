package core

import (
	"testing"

	cm "github.com/deeptony/flightInsurance/src/common"
	"github.com/deeptony/flightInsurance/src/notify"
)

func TestRegisterOracle(t *testing.T) {
	s := initTestSystem(t, false)

	oracle, err := s.oracles.Register("0Xoracle1", testOracleFee)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	for j, index := range oracle.Indexes {
		if index < 0 || index >= IndexSpace {
			t.Fatalf("Indexes[%d] = %d out of [0, %d)", j, index, IndexSpace)
		}
		for k := 0; k < j; k++ {
			if oracle.Indexes[k] == index {
				t.Fatalf("indexes %v not pairwise distinct", oracle.Indexes)
			}
		}
	}

	indexes, err := s.oracles.IndexesOf("0Xoracle1")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if indexes != oracle.Indexes {
		t.Fatalf("IndexesOf should be %v, not %v", oracle.Indexes, indexes)
	}

	if c := s.notifier.countByName(notify.OracleRegistered); c != 1 {
		t.Fatalf("expected 1 %s event, got %d", notify.OracleRegistered, c)
	}
}

func TestRegisterOracleInsufficientStake(t *testing.T) {
	s := initTestSystem(t, false)

	_, err := s.oracles.Register("0Xoracle1", testOracleFee-1)
	if !cm.IsCore(err, cm.InsufficientStake) {
		t.Fatalf("err should be InsufficientStake, not %v", err)
	}
}

func TestReRegisterOverwritesIndexes(t *testing.T) {
	s := initTestSystem(t, false)

	if _, err := s.oracles.Register("0Xoracle1", testOracleFee); err != nil {
		t.Fatalf("err: %v", err)
	}

	// Registering twice is allowed and re-rolls the triplet.
	second, err := s.oracles.Register("0Xoracle1", testOracleFee)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	stored, err := s.oracles.IndexesOf("0Xoracle1")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if stored != second.Indexes {
		t.Fatalf("stored indexes should be %v, not %v", second.Indexes, stored)
	}
}

func TestIndexesOfUnknownOracle(t *testing.T) {
	s := initTestSystem(t, false)

	_, err := s.oracles.IndexesOf("0Xghost")
	if !cm.IsCore(err, cm.NotRegistered) {
		t.Fatalf("err should be NotRegistered, not %v", err)
	}
}

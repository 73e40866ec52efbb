package airlines

import (
	"reflect"
	"testing"
)

func TestAirlinesSorted(t *testing.T) {
	airlines := NewAirlines()
	airlines.Add(NewAirline("0Xc", "Charlie Air"))
	airlines.Add(NewAirline("0Xa", "Alpha Air"))
	airlines.Add(NewAirline("0Xb", "Bravo Air"))

	got := []string{}
	for _, airline := range airlines.Sorted {
		got = append(got, airline.Address)
	}

	expected := []string{"0Xa", "0Xb", "0Xc"}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("sorted addresses should be %v, not %v", expected, got)
	}
}

func TestAirlinesAddOverwrites(t *testing.T) {
	airlines := NewAirlines()
	airlines.Add(NewAirline("0Xa", "Alpha Air"))

	updated := NewAirline("0Xa", "Alpha Airways")
	updated.Admitted = true
	airlines.Add(updated)

	if airlines.Len() != 1 {
		t.Fatalf("re-adding an address should not grow the set")
	}
	if got := airlines.Get("0Xa"); got.Moniker != "Alpha Airways" {
		t.Fatalf("moniker should be Alpha Airways, not %s", got.Moniker)
	}
}

func TestIsAdmitted(t *testing.T) {
	airlines := NewAirlines()

	admitted := NewAirline("0Xa", "")
	admitted.Admitted = true
	airlines.Add(admitted)
	airlines.Add(NewAirline("0Xb", ""))

	if !airlines.IsAdmitted("0Xa") {
		t.Fatalf("0Xa should be admitted")
	}
	if airlines.IsAdmitted("0Xb") {
		t.Fatalf("0Xb should not be admitted")
	}
	if airlines.IsAdmitted("0Xghost") {
		t.Fatalf("an unknown address should not be admitted")
	}

	if c := airlines.AdmittedCount(); c != 1 {
		t.Fatalf("admitted count should be 1, not %d", c)
	}
}

func TestAirlineID(t *testing.T) {
	a := NewAirline("0Xa", "Alpha Air")
	b := NewAirline("0Xb", "Bravo Air")

	if a.ID() != NewAirline("0Xa", "other name").ID() {
		t.Fatalf("the ID should only depend on the address")
	}
	if a.ID() == b.ID() {
		t.Fatalf("different addresses should yield different IDs")
	}
}

func TestAirlineMarshal(t *testing.T) {
	airline := NewAirline("0Xa", "Alpha Air")
	airline.Admitted = true

	data, err := airline.Marshal()
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	decoded := &Airline{}
	if err := decoded.Unmarshal(data); err != nil {
		t.Fatalf("err: %v", err)
	}

	if decoded.Address != airline.Address ||
		decoded.Moniker != airline.Moniker ||
		decoded.Admitted != airline.Admitted ||
		decoded.Authorized != airline.Authorized {
		t.Fatalf("decoded airline %#v does not match %#v", decoded, airline)
	}
	if decoded.ID() != airline.ID() {
		t.Fatalf("ID should survive the round trip")
	}
}

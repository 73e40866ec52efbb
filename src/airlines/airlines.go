package airlines

import (
	"sort"
	"sync"
)

// AddressAirlines indexes airlines by address.
type AddressAirlines map[string]*Airline

// Airlines is a thread-safe set of airlines. Sorted is recomputed on every
// mutation so that iteration order is deterministic.
type Airlines struct {
	sync.RWMutex
	Sorted    []*Airline
	ByAddress AddressAirlines
}

/* Constructors */

// NewAirlines ...
func NewAirlines() *Airlines {
	return &Airlines{
		ByAddress: make(AddressAirlines),
	}
}

// NewAirlinesFromSlice ...
func NewAirlinesFromSlice(source []*Airline) *Airlines {
	airlines := NewAirlines()

	for _, airline := range source {
		airlines.addAirlineRaw(airline)
	}

	airlines.internalSort()

	return airlines
}

/* Add Methods */

// addAirlineRaw adds an airline without sorting the set. This method is
// private and is not protected by mutex. Handle with care.
func (a *Airlines) addAirlineRaw(airline *Airline) {
	a.ByAddress[airline.Address] = airline
}

// Add inserts an airline into the set, keeping Sorted up to date.
func (a *Airlines) Add(airline *Airline) {
	a.Lock()
	defer a.Unlock()

	a.addAirlineRaw(airline)

	a.internalSort()
}

func (a *Airlines) internalSort() {
	res := []*Airline{}

	for _, airline := range a.ByAddress {
		res = append(res, airline)
	}

	sort.Sort(ByAddress(res))

	a.Sorted = res
}

/* Lookups */

// Get returns the airline with the given address, or nil.
func (a *Airlines) Get(address string) *Airline {
	a.RLock()
	defer a.RUnlock()

	return a.ByAddress[address]
}

// IsAdmitted reports whether the address belongs to an admitted airline.
func (a *Airlines) IsAdmitted(address string) bool {
	a.RLock()
	defer a.RUnlock()

	airline, ok := a.ByAddress[address]

	return ok && airline.Admitted
}

// AdmittedCount returns the number of admitted airlines. It determines both
// whether the bootstrap fast-path is still active and the threshold of the
// quorum vote.
func (a *Airlines) AdmittedCount() int {
	a.RLock()
	defer a.RUnlock()

	count := 0
	for _, airline := range a.ByAddress {
		if airline.Admitted {
			count++
		}
	}

	return count
}

/* Utilities */

// Len ...
func (a *Airlines) Len() int {
	a.RLock()
	defer a.RUnlock()

	return len(a.ByAddress)
}

// ByAddress implements sort.Interface for []*Airline based on the Address
// field.
type ByAddress []*Airline

func (a ByAddress) Len() int           { return len(a) }
func (a ByAddress) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ByAddress) Less(i, j int) bool { return a[i].Address < a[j].Address }

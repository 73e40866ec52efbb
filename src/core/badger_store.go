package core

import (
	"os"
	"strings"

	"github.com/deeptony/flightInsurance/src/airlines"
	cm "github.com/deeptony/flightInsurance/src/common"
	"github.com/dgraph-io/badger"
)

const (
	airlinePrefix = "airline_"
	oraclePrefix  = "oracle_"
	requestPrefix = "request_"
	tallyPrefix   = "tally_"
)

// BadgerStore is a write-through Store: every record is kept in an underlying
// InmemStore for fast reads and persisted to a Badger database for
// durability. Reads fall back to the database when the in-memory layer
// misses, which only happens right after loading an existing database.
type BadgerStore struct {
	inmemStore *InmemStore
	db         *badger.DB
	path       string
}

// NewBadgerStore creates a brand new Store with a new database.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.SyncWrites = false
	opts.Logger = nil

	handle, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	store := &BadgerStore{
		inmemStore: NewInmemStore(),
		db:         handle,
		path:       path,
	}

	return store, nil
}

// LoadBadgerStore creates a Store from an existing database, rebuilding the
// in-memory layer from the persisted records.
func LoadBadgerStore(path string) (*BadgerStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	store, err := NewBadgerStore(path)
	if err != nil {
		return nil, err
	}

	if err := store.loadAll(); err != nil {
		store.Close()
		return nil, err
	}

	return store, nil
}

// LoadOrCreateBadgerStore ...
func LoadOrCreateBadgerStore(path string) (*BadgerStore, error) {
	store, err := LoadBadgerStore(path)
	if err != nil {
		store, err = NewBadgerStore(path)
		if err != nil {
			return nil, err
		}
	}
	return store, nil
}

func (s *BadgerStore) loadAll() error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.Key())

			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}

			switch {
			case strings.HasPrefix(key, airlinePrefix):
				airline := &airlines.Airline{}
				if err := airline.Unmarshal(val); err != nil {
					return err
				}
				if err := s.inmemStore.SetAirline(airline); err != nil {
					return err
				}
			case strings.HasPrefix(key, oraclePrefix):
				oracle := &Oracle{}
				if err := oracle.Unmarshal(val); err != nil {
					return err
				}
				if err := s.inmemStore.SetOracle(oracle); err != nil {
					return err
				}
			case strings.HasPrefix(key, requestPrefix):
				request := &StatusRequest{}
				if err := request.Unmarshal(val); err != nil {
					return err
				}
				if err := s.inmemStore.SetRequest(request); err != nil {
					return err
				}
			case strings.HasPrefix(key, tallyPrefix):
				tally := &VoteTally{}
				if err := tally.Unmarshal(val); err != nil {
					return err
				}
				if err := s.inmemStore.SetTally(tally); err != nil {
					return err
				}
			}
		}

		return nil
	})
}

/*******************************************************************************
* Store interface                                                              *
*******************************************************************************/

// GetAirline implements the Store interface.
func (s *BadgerStore) GetAirline(address string) (*airlines.Airline, error) {
	airline, err := s.inmemStore.GetAirline(address)
	if err != nil {
		val, dbErr := s.dbGet(airlinePrefix + address)
		if dbErr != nil {
			return nil, err
		}
		airline = &airlines.Airline{}
		if err := airline.Unmarshal(val); err != nil {
			return nil, err
		}
		if err := s.inmemStore.SetAirline(airline); err != nil {
			return nil, err
		}
	}
	return airline, nil
}

// SetAirline implements the Store interface.
func (s *BadgerStore) SetAirline(airline *airlines.Airline) error {
	if err := s.inmemStore.SetAirline(airline); err != nil {
		return err
	}
	val, err := airline.Marshal()
	if err != nil {
		return err
	}
	return s.dbSet(airlinePrefix+airline.Address, val)
}

// Airlines implements the Store interface.
func (s *BadgerStore) Airlines() []*airlines.Airline {
	return s.inmemStore.Airlines()
}

// AdmittedCount implements the Store interface.
func (s *BadgerStore) AdmittedCount() int {
	return s.inmemStore.AdmittedCount()
}

// GetOracle implements the Store interface.
func (s *BadgerStore) GetOracle(address string) (*Oracle, error) {
	oracle, err := s.inmemStore.GetOracle(address)
	if err != nil {
		val, dbErr := s.dbGet(oraclePrefix + address)
		if dbErr != nil {
			return nil, err
		}
		oracle = &Oracle{}
		if err := oracle.Unmarshal(val); err != nil {
			return nil, err
		}
		if err := s.inmemStore.SetOracle(oracle); err != nil {
			return nil, err
		}
	}
	return oracle, nil
}

// SetOracle implements the Store interface.
func (s *BadgerStore) SetOracle(oracle *Oracle) error {
	if err := s.inmemStore.SetOracle(oracle); err != nil {
		return err
	}
	val, err := oracle.Marshal()
	if err != nil {
		return err
	}
	return s.dbSet(oraclePrefix+oracle.Address, val)
}

// Oracles implements the Store interface.
func (s *BadgerStore) Oracles() []*Oracle {
	return s.inmemStore.Oracles()
}

// GetRequest implements the Store interface.
func (s *BadgerStore) GetRequest(key string) (*StatusRequest, error) {
	request, err := s.inmemStore.GetRequest(key)
	if err != nil {
		val, dbErr := s.dbGet(requestPrefix + key)
		if dbErr != nil {
			return nil, err
		}
		request = &StatusRequest{}
		if err := request.Unmarshal(val); err != nil {
			return nil, err
		}
		if err := s.inmemStore.SetRequest(request); err != nil {
			return nil, err
		}
	}
	return request, nil
}

// SetRequest implements the Store interface.
func (s *BadgerStore) SetRequest(request *StatusRequest) error {
	if err := s.inmemStore.SetRequest(request); err != nil {
		return err
	}
	val, err := request.Marshal()
	if err != nil {
		return err
	}
	return s.dbSet(requestPrefix+request.Key, val)
}

// OpenRequests implements the Store interface.
func (s *BadgerStore) OpenRequests() []*StatusRequest {
	return s.inmemStore.OpenRequests()
}

// GetTally implements the Store interface.
func (s *BadgerStore) GetTally(candidate string) (*VoteTally, error) {
	tally, err := s.inmemStore.GetTally(candidate)
	if err != nil {
		val, dbErr := s.dbGet(tallyPrefix + candidate)
		if dbErr != nil {
			return nil, err
		}
		tally = &VoteTally{}
		if err := tally.Unmarshal(val); err != nil {
			return nil, err
		}
		if err := s.inmemStore.SetTally(tally); err != nil {
			return nil, err
		}
	}
	return tally, nil
}

// SetTally implements the Store interface.
func (s *BadgerStore) SetTally(tally *VoteTally) error {
	if err := s.inmemStore.SetTally(tally); err != nil {
		return err
	}
	val, err := tally.Marshal()
	if err != nil {
		return err
	}
	return s.dbSet(tallyPrefix+tally.Candidate, val)
}

// Close implements the Store interface.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// StorePath implements the Store interface.
func (s *BadgerStore) StorePath() string {
	return s.path
}

/*******************************************************************************
* DB helpers                                                                   *
*******************************************************************************/

func (s *BadgerStore) dbSet(key string, val []byte) error {
	tx := s.db.NewTransaction(true)
	defer tx.Discard()

	if err := tx.Set([]byte(key), val); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *BadgerStore) dbGet(key string) ([]byte, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})

	if isDBKeyNotFoundErr(err) {
		return nil, cm.NewStoreErr("Badger", cm.KeyNotFound, key)
	}

	return val, err
}

func isDBKeyNotFoundErr(err error) bool {
	return err == badger.ErrKeyNotFound
}

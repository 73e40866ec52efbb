package flightsurety

import (
	"github.com/deeptony/flightInsurance/src/airlines"
	"github.com/deeptony/flightInsurance/src/config"
	"github.com/deeptony/flightInsurance/src/core"
	"github.com/deeptony/flightInsurance/src/entropy"
	"github.com/deeptony/flightInsurance/src/ledger"
	"github.com/deeptony/flightInsurance/src/notify"
)

// FlightSurety ties the consensus core to its collaborators: the store, the
// notification sink, the stake ledger and the entropy source. It is the
// single entry point that applications embed.
type FlightSurety struct {
	Config *config.Config
	Store  core.Store

	Assigner      *core.IndexAssigner
	Oracles       *core.OracleRegistry
	Tracker       *core.RequestTracker
	Aggregator    *core.ResponseAggregator
	AirlineReg    *core.AirlineRegistry
	Voting        *core.VotingConsensus
	Notifier      notify.Notifier
	Stakes        ledger.StakeLedger
	EntropySource entropy.Source
}

// NewFlightSurety instantiates an engine from a config. Collaborators that
// are left nil are filled in with in-memory defaults by Init.
func NewFlightSurety(cfg *config.Config) *FlightSurety {
	return &FlightSurety{
		Config: cfg,
	}
}

// Init sets up the store and all the core components, then bootstraps the
// first airline. It must be called before any other method.
func (f *FlightSurety) Init() error {
	logger := f.Config.Logger()

	if err := f.initStore(); err != nil {
		return err
	}

	if f.Notifier == nil {
		f.Notifier = notify.NewInmemNotifier(f.Config.NotifyBuffer, logger)
	}

	if f.Stakes == nil {
		f.Stakes = ledger.NewInmemLedger()
	}

	if f.EntropySource == nil {
		f.EntropySource = entropy.NewClockSource()
	}

	f.Assigner = core.NewIndexAssigner(f.EntropySource)

	f.Oracles = core.NewOracleRegistry(
		f.Store,
		f.Assigner,
		f.Config.OracleFee,
		f.Notifier,
		logger,
	)

	f.Aggregator = core.NewResponseAggregator(
		f.Store,
		f.Config.StrictResponses,
		f.Notifier,
		logger,
	)

	f.Tracker = core.NewRequestTracker(
		f.Store,
		f.Assigner,
		f.Oracles,
		f.Aggregator,
		f.Notifier,
		logger,
	)

	f.Voting = core.NewVotingConsensus(f.Store, f.Notifier, logger)

	f.AirlineReg = core.NewAirlineRegistry(
		f.Store,
		f.Stakes,
		f.Config.AirlineFee,
		f.Notifier,
		logger,
	)

	if f.Config.FirstAirline != "" {
		if err := f.AirlineReg.Bootstrap(
			f.Config.FirstAirline,
			f.Config.FirstAirlineMoniker,
		); err != nil {
			return err
		}
	}

	return nil
}

func (f *FlightSurety) initStore() error {
	if f.Store != nil {
		return nil
	}

	logger := f.Config.Logger()

	if !f.Config.Store {
		f.Store = core.NewInmemStore()

		logger.Debug("created new in-mem store")

		return nil
	}

	logger.WithField("path", f.Config.DatabaseDir).Debug("Attempting to load or create database")

	store, err := core.LoadOrCreateBadgerStore(f.Config.DatabaseDir)
	if err != nil {
		return err
	}

	f.Store = store

	return nil
}

// Shutdown closes the store.
func (f *FlightSurety) Shutdown() error {
	if f.Store != nil {
		return f.Store.Close()
	}
	return nil
}

/*******************************************************************************
* Oracle operations                                                            *
*******************************************************************************/

// RegisterOracle registers a status reporter. See OracleRegistry.Register.
func (f *FlightSurety) RegisterOracle(address string, stake uint64) (*core.Oracle, error) {
	return f.Oracles.Register(address, stake)
}

// OracleIndexes returns the triplet assigned to a registered oracle.
func (f *FlightSurety) OracleIndexes(address string) ([core.TripletSize]int, error) {
	return f.Oracles.IndexesOf(address)
}

// OpenRequest opens a status request for a flight. See
// RequestTracker.OpenRequest.
func (f *FlightSurety) OpenRequest(flight, descriptor string, timestamp int64, requester string) (*core.StatusRequest, error) {
	return f.Tracker.OpenRequest(flight, descriptor, timestamp, requester)
}

// SubmitResponse records an oracle's response to an open request. See
// RequestTracker.SubmitResponse.
func (f *FlightSurety) SubmitResponse(reporter string, index int, flight, descriptor string, timestamp int64, value core.FlightStatus) (bool, core.FlightStatus, error) {
	return f.Tracker.SubmitResponse(reporter, index, flight, descriptor, timestamp, value)
}

/*******************************************************************************
* Airline operations                                                           *
*******************************************************************************/

// ProposeAirline proposes a candidate airline for admission. See
// AirlineRegistry.Propose.
func (f *FlightSurety) ProposeAirline(candidate, moniker, proposer string) (bool, error) {
	return f.AirlineReg.Propose(candidate, moniker, proposer)
}

// VoteAirline casts a vote for a pending candidate. See
// VotingConsensus.Vote.
func (f *FlightSurety) VoteAirline(candidate, voter string) (bool, error) {
	return f.Voting.Vote(candidate, voter)
}

// AuthorizeAirline marks an admitted airline as authorized after stake
// payment. See AirlineRegistry.Authorize.
func (f *FlightSurety) AuthorizeAirline(address string, stake uint64) error {
	return f.AirlineReg.Authorize(address, stake)
}

/*******************************************************************************
* Read side                                                                    *
*******************************************************************************/

// Airlines returns all known airlines.
func (f *FlightSurety) Airlines() []*airlines.Airline {
	return f.Store.Airlines()
}

// OracleList returns all registered oracles.
func (f *FlightSurety) OracleList() []*core.Oracle {
	return f.Store.Oracles()
}

// OpenRequests returns the requests still awaiting quorum.
func (f *FlightSurety) OpenRequests() []*core.StatusRequest {
	return f.Store.OpenRequests()
}

package core

import (
	"sync"

	cm "github.com/deeptony/flightInsurance/src/common"
	"github.com/deeptony/flightInsurance/src/notify"
	"github.com/sirupsen/logrus"
)

// ResponseAggregator groups oracle responses by reported value and detects
// when a value reaches quorum. Quorum is evaluated synchronously after each
// write, so the first value to cross the threshold wins and ties are
// impossible.
//
// A reporter repeating the same value never double counts. In the default
// mode, a reporter switching values counts once under each distinct bucket,
// so a careless or malicious reporter can inflate several buckets at once.
// The strict mode closes that hole by rejecting a reporter's second,
// differing response with DuplicateResponse.
type ResponseAggregator struct {
	mtx      sync.Mutex
	store    Store
	quorum   int
	strict   bool
	notifier notify.Notifier
	logger   *logrus.Entry
}

// NewResponseAggregator ...
func NewResponseAggregator(
	store Store,
	strict bool,
	notifier notify.Notifier,
	logger *logrus.Entry,
) *ResponseAggregator {
	return &ResponseAggregator{
		store:    store,
		quorum:   OracleQuorum,
		strict:   strict,
		notifier: notifier,
		logger:   logger,
	}
}

// Record appends the reporter's response to the request and evaluates quorum.
// It returns (true, value) the moment value gathers quorum responses; every
// other call returns (false, StatusUnknown). Finalization is idempotent:
// responses arriving after quorum are recorded but never re-trigger it.
func (g *ResponseAggregator) Record(request *StatusRequest, reporter string, value FlightStatus) (bool, FlightStatus, error) {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	if g.strict {
		if prev, ok := request.RespondedWith(reporter); ok && prev != value {
			return false, StatusUnknown, cm.NewCoreErr("RecordResponse", cm.DuplicateResponse, reporter)
		}
	}

	added := request.AddResponse(value, reporter)

	if err := g.store.SetRequest(request); err != nil {
		return false, StatusUnknown, err
	}

	g.logger.WithFields(logrus.Fields{
		"key":      request.Key,
		"reporter": reporter,
		"value":    value.String(),
		"count":    request.CountFor(value),
		"added":    added,
	}).Debug("Recorded response")

	g.notifier.Emit(notify.Event{
		Name: notify.ResponseRecorded,
		Payload: map[string]interface{}{
			"key":        request.Key,
			"flight":     request.Flight,
			"descriptor": request.Descriptor,
			"timestamp":  request.Timestamp,
			"reporter":   reporter,
			"value":      int(value),
		},
	})

	if request.Finalized || request.CountFor(value) < g.quorum {
		return false, StatusUnknown, nil
	}

	request.Finalized = true

	if err := g.store.SetRequest(request); err != nil {
		return false, StatusUnknown, err
	}

	g.logger.WithFields(logrus.Fields{
		"key":   request.Key,
		"value": value.String(),
	}).Debug("Quorum reached")

	g.notifier.Emit(notify.Event{
		Name: notify.QuorumReached,
		Payload: map[string]interface{}{
			"key":        request.Key,
			"flight":     request.Flight,
			"descriptor": request.Descriptor,
			"timestamp":  request.Timestamp,
			"value":      int(value),
		},
	})

	return true, value, nil
}

package core

import (
	"sync"

	cm "github.com/deeptony/flightInsurance/src/common"
	"github.com/deeptony/flightInsurance/src/notify"
	"github.com/sirupsen/logrus"
)

// RequestTracker opens status requests and validates incoming responses
// before forwarding them to the aggregator.
type RequestTracker struct {
	mtx        sync.Mutex
	store      Store
	assigner   *IndexAssigner
	registry   *OracleRegistry
	aggregator *ResponseAggregator
	notifier   notify.Notifier
	logger     *logrus.Entry
}

// NewRequestTracker ...
func NewRequestTracker(
	store Store,
	assigner *IndexAssigner,
	registry *OracleRegistry,
	aggregator *ResponseAggregator,
	notifier notify.Notifier,
	logger *logrus.Entry,
) *RequestTracker {
	return &RequestTracker{
		store:      store,
		assigner:   assigner,
		registry:   registry,
		aggregator: aggregator,
		notifier:   notifier,
		logger:     logger,
	}
}

// OpenRequest opens a status request for a flight. The request is tagged
// with a freshly drawn index; only oracles holding that index are expected to
// respond. Keys are content-addressed, so resubmitting the exact same tuple
// overwrites the prior entry, which is treated as re-opening the request.
func (t *RequestTracker) OpenRequest(flight, descriptor string, timestamp int64, requester string) (*StatusRequest, error) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	index, err := t.assigner.NextIndex(requester)
	if err != nil {
		return nil, err
	}

	request := NewStatusRequest(index, flight, descriptor, timestamp, requester)

	if err := t.store.SetRequest(request); err != nil {
		return nil, err
	}

	t.logger.WithFields(logrus.Fields{
		"key":    request.Key,
		"index":  index,
		"flight": flight,
	}).Debug("Opened request")

	t.notifier.Emit(notify.Event{
		Name: notify.RequestOpened,
		Payload: map[string]interface{}{
			"key":        request.Key,
			"index":      index,
			"flight":     flight,
			"descriptor": descriptor,
			"timestamp":  timestamp,
		},
	})

	return request, nil
}

// SubmitResponse validates and records an oracle's response. It fails with
// NotRegistered when the reporter is unknown, IndexMismatch when the claimed
// index is not one of the reporter's assigned indexes, and NoOpenRequest when
// no open request exists at the derived key. On success the response is
// forwarded to the aggregator; the returned values are the aggregator's
// quorum verdict.
func (t *RequestTracker) SubmitResponse(reporter string, index int, flight, descriptor string, timestamp int64, value FlightStatus) (bool, FlightStatus, error) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	oracle, err := t.registry.Get(reporter)
	if err != nil {
		return false, StatusUnknown, err
	}

	if !oracle.HasIndex(index) {
		return false, StatusUnknown, cm.NewCoreErr("SubmitResponse", cm.IndexMismatch, reporter)
	}

	key := RequestID(index, flight, descriptor, timestamp)

	request, err := t.store.GetRequest(key)
	if err != nil {
		if cm.IsStore(err, cm.KeyNotFound) {
			return false, StatusUnknown, cm.NewCoreErr("SubmitResponse", cm.NoOpenRequest, key)
		}
		return false, StatusUnknown, err
	}

	if !request.Open {
		return false, StatusUnknown, cm.NewCoreErr("SubmitResponse", cm.NoOpenRequest, key)
	}

	return t.aggregator.Record(request, reporter, value)
}

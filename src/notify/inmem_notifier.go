package notify

import (
	"github.com/sirupsen/logrus"
)

// InmemNotifier implements the Notifier interface natively. Events are pushed
// into a buffered channel that the embedding application drains. When the
// buffer is full the oldest event is dropped to make room, which preserves
// the non-blocking contract at the cost of delivery of the dropped event.
type InmemNotifier struct {
	eventCh chan Event
	logger  *logrus.Entry
}

// NewInmemNotifier instantiates an InmemNotifier with a buffer of the given
// size. If no logger, a new one is created.
func NewInmemNotifier(bufferSize int, logger *logrus.Entry) *InmemNotifier {
	if logger == nil {
		log := logrus.New()
		log.Level = logrus.DebugLevel
		logger = logrus.NewEntry(log)
	}

	return &InmemNotifier{
		eventCh: make(chan Event, bufferSize),
		logger:  logger,
	}
}

// Emit implements the Notifier interface.
func (n *InmemNotifier) Emit(event Event) {
	for {
		select {
		case n.eventCh <- event:
			n.logger.WithFields(logrus.Fields{
				"name":    event.Name,
				"payload": event.Payload,
			}).Debug("Emit")
			return
		default:
			select {
			case dropped := <-n.eventCh:
				n.logger.WithField("name", dropped.Name).
					Warn("Notification buffer full, dropping oldest event")
			default:
			}
		}
	}
}

// EventCh returns the channel through which the application receives events.
func (n *InmemNotifier) EventCh() <-chan Event {
	return n.eventCh
}

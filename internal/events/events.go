package events

import (
	"encoding/json"
	"fmt"
	"time"

	"vivaham/pkg/rabbitmq"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// Event types.
const (
	InterestCreated   = "interest.created"
	InterestResponded = "interest.responded"
	MessageSent       = "message.sent"
	StoryCreated      = "story.created"
)

// Event is a domain event as it travels over the broker.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

// New stamps an event of type t carrying payload.
func New(t string, payload interface{}) Event {
	return Event{Type: t, OccurredAt: time.Now(), Payload: payload}
}

// Publisher emits domain events. Implementations must not block request
// handling on broker trouble.
type Publisher interface {
	Publish(e Event)
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}

// Broker is the transport an event is sent over; *rabbitmq.Client satisfies it.
type Broker interface {
	Publish(eventType string, body []byte) error
}

// BrokerPublisher encodes events as JSON and hands them to a Broker.
// Failures are logged, never returned.
type BrokerPublisher struct {
	broker Broker
	log    *logrus.Entry
}

// NewBrokerPublisher creates a new instance of BrokerPublisher.
func NewBrokerPublisher(broker Broker, log *logrus.Entry) *BrokerPublisher {
	return &BrokerPublisher{broker: broker, log: log}
}

func (p *BrokerPublisher) Publish(e Event) {
	body, err := json.Marshal(e)
	if err != nil {
		p.log.WithError(err).WithField("type", e.Type).Error("failed to encode event")
		return
	}
	if err := p.broker.Publish(e.Type, body); err != nil {
		p.log.WithError(err).WithField("type", e.Type).Warn("failed to publish event")
	}
}

// LogHandler returns a consumer callback that logs each received event.
// Undecodable bodies are rejected without requeue.
func LogHandler(log *logrus.Entry) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var e struct {
			Type       string          `json:"type"`
			OccurredAt time.Time       `json:"occurredAt"`
			Payload    json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal(msg.Body, &e); err != nil {
			return fmt.Errorf("%w: failed to decode event: %v", rabbitmq.ErrReject, err)
		}
		log.WithFields(logrus.Fields{
			"type":        e.Type,
			"occurred_at": e.OccurredAt.Format(time.RFC3339),
			"payload":     string(e.Payload),
		}).Info("received event")
		return nil
	}
}

package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"vivaham/pkg/rabbitmq"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBroker struct {
	mock.Mock
}

func (m *MockBroker) Publish(eventType string, body []byte) error {
	args := m.Called(eventType, body)
	return args.Error(0)
}

func testLog(buf *bytes.Buffer) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(buf)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logrus.NewEntry(l)
}

func TestBrokerPublisher_EncodesEvent(t *testing.T) {
	broker := new(MockBroker)
	var sent []byte
	broker.On("Publish", MessageSent, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]byte) }).
		Return(nil)

	var buf bytes.Buffer
	p := NewBrokerPublisher(broker, testLog(&buf))
	p.Publish(New(MessageSent, map[string]interface{}{"id": 1}))

	broker.AssertExpectations(t)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(sent, &decoded))
	assert.Equal(t, MessageSent, decoded["type"])
	assert.Equal(t, map[string]interface{}{"id": float64(1)}, decoded["payload"])
	assert.Empty(t, buf.String())
}

func TestBrokerPublisher_LogsFailures(t *testing.T) {
	broker := new(MockBroker)
	broker.On("Publish", StoryCreated, mock.Anything).Return(errors.New("connection reset"))

	var buf bytes.Buffer
	p := NewBrokerPublisher(broker, testLog(&buf))
	assert.NotPanics(t, func() { p.Publish(New(StoryCreated, nil)) })

	assert.Contains(t, buf.String(), "failed to publish event")
	assert.Contains(t, buf.String(), "connection reset")
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	handle := LogHandler(testLog(&buf))

	body, err := json.Marshal(New(InterestCreated, map[string]int{"fromUserId": 1, "toUserId": 2}))
	require.NoError(t, err)
	require.NoError(t, handle(amqp.Delivery{Body: body}))
	assert.Contains(t, buf.String(), "type=interest.created")

	err = handle(amqp.Delivery{Body: []byte("not json")})
	assert.ErrorIs(t, err, rabbitmq.ErrReject, "malformed bodies must not be requeued")
}

package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/atcdesk/pkg/core"
)

type doneToken struct{ err error }

func (t doneToken) Wait() bool                     { return true }
func (t doneToken) WaitTimeout(time.Duration) bool { return true }
func (t doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t doneToken) Error() error { return t.err }

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

type fakeClient struct {
	paho.Client
	connected bool
	err       error
	sent      []published
}

func (c *fakeClient) IsConnected() bool { return c.connected }

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	c.sent = append(c.sent, published{topic, qos, retained, payload.([]byte)})
	return doneToken{err: c.err}
}

func TestPublishPlan(t *testing.T) {
	c := &fakeClient{connected: true}
	p := newPublisher(c, Config{TopicPrefix: "gclp/", QoS: 1, Retained: true}, "tower", slog.Default())

	plan := core.FlightPlan{Callsign: "IBE3921", Departure: "gclp", Arrival: "LEMD", Timestamp: 1710009000000}
	require.NoError(t, p.PublishPlan(context.Background(), plan))
	require.Len(t, c.sent, 1)

	sent := c.sent[0]
	assert.Equal(t, "gclp/flightplans/GCLP", sent.topic)
	assert.Equal(t, byte(1), sent.qos)
	assert.True(t, sent.retained)

	var msg PlanMessage
	require.NoError(t, json.Unmarshal(sent.payload, &msg))
	assert.Equal(t, plan, msg.FlightPlan)
	assert.Equal(t, "tower", msg.Desk)
}

func TestPublishPlan_Errors(t *testing.T) {
	p := newPublisher(&fakeClient{}, Config{}, "", slog.Default())
	assert.Error(t, p.PublishPlan(context.Background(), core.FlightPlan{}))

	c := &fakeClient{connected: true, err: errors.New("not authorized")}
	p = newPublisher(c, Config{}, "", slog.Default())
	err := p.PublishPlan(context.Background(), core.FlightPlan{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "atcdesk/flightplans/unknown")
}

func TestConnect_RequiresBroker(t *testing.T) {
	_, err := Connect(Config{}, "", nil)
	assert.ErrorIs(t, err, core.ErrNotConfigured)
}

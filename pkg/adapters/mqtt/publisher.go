// Package mqtt broadcasts saved flight plans to an MQTT broker so other
// desks (or a strip board) can follow local filings.
package mqtt

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/aretw0/atcdesk/pkg/core"
)

// DefaultTopicPrefix is used when Config.TopicPrefix is empty.
const DefaultTopicPrefix = "atcdesk"

// Config describes the broker connection.
type Config struct {
	Broker      string `yaml:"broker" toml:"broker"` // e.g. tcp://localhost:1883
	Username    string `yaml:"username" toml:"username"`
	Password    string `yaml:"password" toml:"password"`
	TopicPrefix string `yaml:"topic_prefix" toml:"topic_prefix"`
	QoS         byte   `yaml:"qos" toml:"qos"`
	Retained    bool   `yaml:"retained" toml:"retained"`
}

// PlanMessage is the payload published for each saved plan.
type PlanMessage struct {
	core.FlightPlan
	Desk string `json:"desk,omitempty"`
}

// Publisher implements core.PlanPublisher.
type Publisher struct {
	client paho.Client
	config Config
	desk   string
	logger *slog.Logger
}

// generateClientID creates a random client ID.
func generateClientID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return "atcdesk_" + hex.EncodeToString(b)
}

// Connect dials the broker. An initial connection failure is logged and the
// client keeps reconnecting in the background.
func Connect(cfg Config, desk string, logger *slog.Logger) (*Publisher, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("mqtt broker: %w", core.ErrNotConfigured)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = DefaultTopicPrefix
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(generateClientID())
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(10 * time.Second)
	opts.SetMaxReconnectInterval(60 * time.Second)
	opts.SetConnectTimeout(5 * time.Second)
	opts.SetOnConnectHandler(func(paho.Client) {
		logger.Info("mqtt connected", "broker", cfg.Broker)
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		logger.Warn("mqtt connection lost", "broker", cfg.Broker, "error", err)
	})

	client := paho.NewClient(opts)
	token := client.Connect()
	if token.WaitTimeout(5 * time.Second) {
		if err := token.Error(); err != nil {
			logger.Warn("mqtt initial connection failed, retrying in background", "error", err)
		}
	} else {
		logger.Warn("mqtt connection timeout, retrying in background", "broker", cfg.Broker)
	}

	return newPublisher(client, cfg, desk, logger), nil
}

func newPublisher(client paho.Client, cfg Config, desk string, logger *slog.Logger) *Publisher {
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = DefaultTopicPrefix
	}
	return &Publisher{client: client, config: cfg, desk: desk, logger: logger}
}

// Topic returns the topic a plan is published on:
// {prefix}/flightplans/{DEPARTURE}.
func (p *Publisher) Topic(plan core.FlightPlan) string {
	dep := strings.ToUpper(strings.TrimSpace(plan.Departure))
	if dep == "" {
		dep = "unknown"
	}
	return fmt.Sprintf("%s/flightplans/%s", strings.TrimSuffix(p.config.TopicPrefix, "/"), dep)
}

// PublishPlan implements core.PlanPublisher.
func (p *Publisher) PublishPlan(ctx context.Context, plan core.FlightPlan) error {
	if !p.client.IsConnected() {
		return errors.New("mqtt not connected")
	}
	payload, err := json.Marshal(PlanMessage{FlightPlan: plan, Desk: p.desk})
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	topic := p.Topic(plan)
	token := p.client.Publish(topic, p.config.QoS, p.config.Retained, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	p.logger.Debug("published flight plan", "topic", topic, "callsign", plan.Callsign)
	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() error {
	p.client.Disconnect(250)
	return nil
}

var (
	_ core.PlanPublisher = (*Publisher)(nil)
	_ core.Closer        = (*Publisher)(nil)
)

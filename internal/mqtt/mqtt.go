// Package mqtt publishes kiosk telemetry to an MQTT broker. It is an
// optional edge integration: the core pipeline never waits on it, and a
// broker outage only produces log lines.
package mqtt

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/agrovision/kiosk-go/internal/conf"
	"github.com/agrovision/kiosk-go/internal/errors"
	"github.com/agrovision/kiosk-go/internal/logging"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// TransitionMessage is the JSON payload published for a state change.
type TransitionMessage struct {
	Timestamp time.Time `json:"timestamp"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Event     string    `json:"event"`
}

// ScanSummaryMessage is the JSON payload published when a session ends.
type ScanSummaryMessage struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Products  []string  `json:"products"`
}

// Publisher sends kiosk telemetry to a broker.
type Publisher struct {
	client pahomqtt.Client
	topic  string
	log    *slog.Logger
}

// NewPublisher builds a publisher from settings. Call Connect before
// publishing.
func NewPublisher(settings conf.MQTTSettings) *Publisher {
	opts := pahomqtt.NewClientOptions().
		AddBroker(settings.Broker).
		SetClientID(fmt.Sprintf("kiosk-%d", time.Now().UnixNano())).
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true)

	return &Publisher{
		client: pahomqtt.NewClient(opts),
		topic:  settings.Topic,
		log:    logging.ForService("mqtt"),
	}
}

// Connect establishes the broker connection.
func (p *Publisher) Connect() error {
	token := p.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return errors.NewStd("mqtt connect timed out")
	}
	if err := token.Error(); err != nil {
		return errors.New(fmt.Errorf("connecting to broker: %w", err)).
			Component("mqtt").
			Category(errors.CategoryMQTT).
			Build()
	}
	p.log.Info("connected to mqtt broker")
	return nil
}

// Disconnect closes the broker connection.
func (p *Publisher) Disconnect() {
	p.client.Disconnect(250)
}

// PublishTransition publishes a state transition. Failures are logged,
// never returned: telemetry must not influence the pipeline.
func (p *Publisher) PublishTransition(msg TransitionMessage) {
	p.publish(p.topic+"/transitions", msg)
}

// PublishScanSummary publishes a completed-session summary.
func (p *Publisher) PublishScanSummary(msg ScanSummaryMessage) {
	p.publish(p.topic+"/scans", msg)
}

func (p *Publisher) publish(topic string, payload any) {
	if !p.client.IsConnected() {
		p.log.Debug("skipping publish, not connected", "topic", topic)
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		p.log.Error("marshaling telemetry payload", "topic", topic, "error", err)
		return
	}
	token := p.client.Publish(topic, 0, false, data)
	go func() {
		if !token.WaitTimeout(publishTimeout) {
			p.log.Warn("publish timed out", "topic", topic)
			return
		}
		if err := token.Error(); err != nil {
			p.log.Warn("publish failed", "topic", topic, "error", err)
		}
	}()
}

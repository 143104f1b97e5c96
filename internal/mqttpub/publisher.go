// Package mqttpub publishes decoded sentences to an MQTT broker as JSON.
package mqttpub

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"nmea-ng/internal/gps"
	"nmea-ng/internal/nmea"
)

type Config struct {
	Broker      string
	ClientID    string
	TopicPrefix string
	QoS         byte
	Retain      bool
}

// client is the part of mqtt.Client the publisher uses.
type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// Message is the JSON payload for one sentence.
type Message struct {
	Type        nmea.SentenceType `json:"type"`
	Talker      string            `json:"talker"`
	ReceivedUTC string            `json:"received_utc"`
	Raw         string            `json:"raw"`
	Data        nmea.Sentence     `json:"data"`
}

type Snapshot struct {
	Broker    string `json:"broker"`
	Published uint64 `json:"published"`
	Failed    uint64 `json:"failed"`
	LastError string `json:"last_error,omitempty"`
}

// Publisher sends each decoded sentence to <prefix>/<TYPE>. Lines without a
// decoded sentence are skipped.
type Publisher struct {
	cfg Config
	c   client

	mu        sync.Mutex
	published uint64
	failed    uint64
	lastErr   string
}

const connectTimeout = 5 * time.Second

func Connect(cfg Config) (*Publisher, error) {
	cfg = withDefaults(cfg)
	if strings.TrimSpace(cfg.Broker) == "" {
		return nil, fmt.Errorf("mqtt broker is required")
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Printf("mqtt connection lost broker=%s: %v", cfg.Broker, err)
		})

	c := mqtt.NewClient(opts)
	token := c.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mqtt connect %s: timeout after %s", cfg.Broker, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.Broker, err)
	}
	log.Printf("mqtt connected broker=%s client_id=%s prefix=%s", cfg.Broker, cfg.ClientID, cfg.TopicPrefix)
	return newPublisher(cfg, c), nil
}

func newPublisher(cfg Config, c client) *Publisher {
	return &Publisher{cfg: withDefaults(cfg), c: c}
}

func withDefaults(cfg Config) Config {
	if cfg.ClientID == "" {
		cfg.ClientID = "nmea-ng"
	}
	cfg.TopicPrefix = strings.TrimRight(cfg.TopicPrefix, "/")
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = "nmea"
	}
	return cfg
}

func (p *Publisher) Topic(t nmea.SentenceType) string {
	return p.cfg.TopicPrefix + "/" + t.String()
}

func (p *Publisher) Handle(l gps.Line) {
	if l.Sentence == nil {
		return
	}
	payload, err := json.Marshal(Message{
		Type:        l.Sentence.Type(),
		Talker:      l.Frame.Talker(),
		ReceivedUTC: l.At.UTC().Format(time.RFC3339Nano),
		Raw:         string(l.Raw),
		Data:        l.Sentence,
	})
	if err != nil {
		p.record(err)
		return
	}

	token := p.c.Publish(p.Topic(l.Sentence.Type()), p.cfg.QoS, p.cfg.Retain, payload)
	// Never wait here; this runs on the reader goroutine. Only failures that
	// are already known get counted.
	select {
	case <-token.Done():
		p.record(token.Error())
	default:
		p.record(nil)
	}
}

func (p *Publisher) record(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.failed++
		p.lastErr = err.Error()
		return
	}
	p.published++
}

func (p *Publisher) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{Broker: p.cfg.Broker, Published: p.published, Failed: p.failed, LastError: p.lastErr}
}

func (p *Publisher) Close() {
	if p == nil || p.c == nil {
		return
	}
	p.c.Disconnect(250)
}

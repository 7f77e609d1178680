// internal/services/events.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/marketplace/internal/config"
)

// Event types
const (
	EventOrderPlaced    = "order.placed"
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
	EventProductRated   = "product.rated"
	EventAccountDeleted = "account.deleted"
)

type Event struct {
	Type       string      `json:"type"`
	Key        string      `json:"key"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// EventPublisher is fire-and-forget: Publish never fails the caller's
// operation.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
	Close() error
}

// NewEventPublisher returns a kafka publisher when brokers are configured
// and a log-only publisher otherwise.
func NewEventPublisher(cfg config.KafkaConfig) EventPublisher {
	if len(cfg.Brokers) == 0 {
		logrus.Info("No kafka brokers configured; events are logged only")
		return LogPublisher{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		MaxAttempts:  3,
		Transport: &kafka.Transport{
			Dial: func(ctx context.Context, network string, address string) (net.Conn, error) {
				dialer := &kafka.Dialer{
					Timeout:   10 * time.Second,
					DualStack: true,
					KeepAlive: 30 * time.Second,
				}
				return dialer.DialContext(ctx, network, address)
			},
		},
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logrus.WithError(err).WithField("count", len(messages)).Warn("Failed to deliver events")
			}
		},
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logrus.Errorf("kafka writer: "+msg, args...)
		}),
	}

	logrus.WithFields(logrus.Fields{
		"brokers": cfg.Brokers,
		"topic":   cfg.Topic,
	}).Info("Publishing events to kafka")
	return NewKafkaPublisher(writer)
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	closed atomic.Bool
}

func NewKafkaPublisher(writer messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	if p.closed.Load() {
		return
	}

	msg, err := encodeEvent(event)
	if err != nil {
		logrus.WithError(err).WithField("type", event.Type).Error("Failed to encode event")
		return
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logrus.WithError(err).WithField("type", event.Type).Warn("Failed to publish event")
	}
}

func (p *KafkaPublisher) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}

func encodeEvent(event Event) (kafka.Message, error) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode %s event: %w", event.Type, err)
	}
	return kafka.Message{
		Key:   []byte(event.Key),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}, nil
}

type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, event Event) {
	logrus.WithFields(logrus.Fields{
		"type": event.Type,
		"key":  event.Key,
	}).Debug("Event")
}

func (LogPublisher) Close() error {
	return nil
}

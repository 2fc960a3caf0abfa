// Package kafka publishes catalog change events so downstream consumers
// (search indexers, audit sinks) can follow vendor ingestion.
package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/VendorIQ/internal/config"
	"github.com/turtacn/VendorIQ/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/VendorIQ/pkg/errors"
)

// Publisher is the outbound-event port. The zero-broker configuration uses
// NopPublisher so ingestion works without a message bus.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
	Close() error
}

// Producer writes events to a single topic, keyed so events for one vendor
// stay ordered within a partition.
type Producer struct {
	writer *kafka.Writer
	logger logging.Logger
}

func NewProducer(cfg config.KafkaConfig, log logging.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		WriteTimeout:           cfg.WriteTimeout,
		MaxAttempts:            cfg.MaxRetries,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	log.Info("kafka producer ready",
		logging.Any("brokers", cfg.Brokers), logging.String("topic", cfg.Topic))
	return &Producer{writer: writer, logger: log}
}

func (p *Producer) Publish(ctx context.Context, key string, value []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		p.logger.Error("publishing catalog event failed",
			logging.String("key", key), logging.Err(err))
		return errors.Wrap(err, errors.ErrCodeExternalService, "publishing catalog event")
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, []byte) error { return nil }
func (NopPublisher) Close() error                                  { return nil }

// NewPublisher picks the real producer or the no-op one from configuration.
func NewPublisher(cfg config.KafkaConfig, log logging.Logger) Publisher {
	if len(cfg.Brokers) == 0 {
		log.Info("kafka disabled, catalog events will be dropped")
		return NopPublisher{}
	}
	return NewProducer(cfg, log)
}

package repository

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"novated-lease/domain"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes records as JSON events keyed by record id. Only
// the configured kinds are published; anything else is accepted and skipped.
type KafkaPublisher struct {
	writer messageWriter
	kinds  map[domain.RecordKind]bool
	logger *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, kinds []domain.RecordKind, logger *zap.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return newKafkaPublisher(w, kinds, logger)
}

func newKafkaPublisher(w messageWriter, kinds []domain.RecordKind, logger *zap.Logger) *KafkaPublisher {
	set := make(map[domain.RecordKind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return &KafkaPublisher{writer: w, kinds: set, logger: logger}
}

func (p *KafkaPublisher) Save(ctx context.Context, record domain.QuoteRecord) (domain.QuoteRecord, error) {
	if !p.kinds[record.Kind] {
		return record, nil
	}

	value, err := json.Marshal(record)
	if err != nil {
		return domain.QuoteRecord{}, errors.Wrap(err, "failed to encode record")
	}

	msg := kafka.Message{
		Key:   []byte(record.ID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(record.Kind)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return domain.QuoteRecord{}, errors.Wrapf(err, "failed to publish %s record", record.Kind)
	}
	p.logger.Debug("published record", zap.String("id", record.ID), zap.String("kind", string(record.Kind)))
	return record, nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

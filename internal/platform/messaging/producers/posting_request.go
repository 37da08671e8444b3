package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/freightbooks-ledger/internal/config"
)

// PostingReqMessageProducer publishes journal batch posting requests from
// the report API to the journal processor's topic.
type PostingReqMessageProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewPostingReqMessageProducer creates the producer and ensures the posting
// topic exists.
func NewPostingReqMessageProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*PostingReqMessageProducer, error) {
	if cfg.PostingTopic == "" {
		return nil, fmt.Errorf("kafka posting topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for posting producer: %w", err)
	}
	defer conn.Close()

	err = createKafkaTopicIfNotExists(conn, cfg.PostingTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure posting topic %s exists: %w", cfg.PostingTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.PostingTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Posting submissions tolerate async acks
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write messages asynchronously", "topic", cfg.PostingTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote messages asynchronously", "topic", cfg.PostingTopic, "count", len(messages))
			}
		},
	}

	return &PostingReqMessageProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.PostingTopic,
	}, nil
}

func (p *PostingReqMessageProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal message value for posting producer: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish posting request",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish message to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published posting request",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *PostingReqMessageProducer) Close() error {
	p.logger.Info("Closing posting request Kafka producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}

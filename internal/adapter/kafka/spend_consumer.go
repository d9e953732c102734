// Package kafkaadapter consumes spend events from Kafka and feeds them to the
// ingestion pipeline.
package kafkaadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"mesa-budget/internal/config/configs"
	"mesa-budget/internal/core/port"
	"mesa-budget/internal/metrics"
)

const maxBackoff = time.Minute

// spendNamespace scopes spend IDs derived from message coordinates.
var spendNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("mesa-budget/kafka-spend"))

// MessageSpendID derives a stable spend ID from the coordinates of msg, so
// a redelivered message maps onto the ledger row it already produced.
func MessageSpendID(msg kafka.Message) uuid.UUID {
	return uuid.NewSHA1(spendNamespace, []byte(fmt.Sprintf("%s/%d/%d", msg.Topic, msg.Partition, msg.Offset)))
}

// Reader is the part of *kafka.Reader the consumer relies on.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewReader builds a consumer-group reader for the spend topic.
func NewReader(cfg configs.Kafka) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
	})
}

// SpendConsumer reads spend messages one at a time and commits each offset
// only after the message was ingested or deliberately skipped. Delivery is
// at least once; a message without an event_id is keyed by its coordinates
// so ingesting it again is a no-op.
type SpendConsumer struct {
	reader      Reader
	engine      port.SpendIngester
	log         *slog.Logger
	metrics     *metrics.Metrics
	maxAttempts int
	backoff     time.Duration
	sleep       func(context.Context, time.Duration) error
}

// NewSpendConsumer wires a consumer. m may be nil.
func NewSpendConsumer(reader Reader, engine port.SpendIngester, logger *slog.Logger, m *metrics.Metrics, cfg configs.Kafka) *SpendConsumer {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}
	return &SpendConsumer{
		reader:      reader,
		engine:      engine,
		log:         logger.With("component", "spend_consumer"),
		metrics:     m,
		maxAttempts: attempts,
		backoff:     backoff,
		sleep:       sleep,
	}
}

// Close shuts down the underlying reader.
func (c *SpendConsumer) Close() error {
	return c.reader.Close()
}

// Run blocks until ctx is cancelled or the reader is closed. A message whose
// processing is interrupted by cancellation stays uncommitted.
func (c *SpendConsumer) Run(ctx context.Context) error {
	c.log.InfoContext(ctx, "spend consumer started")
	defer c.log.Info("spend consumer stopped")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) || errors.Is(err, kafka.ErrGroupClosed) {
				return nil
			}
			return err
		}
		if err := c.handle(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// handle returns nil once msg is ingested or skipped. It only fails when ctx
// ends while a retry is pending.
func (c *SpendConsumer) handle(ctx context.Context, msg kafka.Message) error {
	log := c.log.With("partition", msg.Partition, "offset", msg.Offset)

	var payload port.SpendPayload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		log.WarnContext(ctx, "skipping malformed spend message", "error", err)
		c.metrics.Consumed("skipped")
		return nil
	}
	event, err := payload.ToEvent()
	if err != nil {
		log.WarnContext(ctx, "skipping invalid spend message", "error", err)
		c.metrics.Consumed("skipped")
		return nil
	}
	if event.ID == uuid.Nil {
		event.ID = MessageSpendID(msg)
	}

	delay := c.backoff
	for attempt := 1; ; attempt++ {
		res, err := c.engine.Ingest(ctx, event)
		switch {
		case err == nil && res != nil && res.Duplicate:
			log.InfoContext(ctx, "spend already ingested", "spend_id", event.ID)
			c.metrics.Consumed("duplicate")
			return nil
		case err == nil:
			c.metrics.Consumed("ingested")
			return nil
		case errors.Is(err, port.ErrValidation):
			log.WarnContext(ctx, "skipping rejected spend", "campaign_id", event.CampaignID, "error", err)
			c.metrics.Consumed("skipped")
			return nil
		case !port.Retryable(err) && attempt >= c.maxAttempts:
			log.ErrorContext(ctx, "dropping spend after retries",
				"campaign_id", event.CampaignID,
				"attempts", attempt,
				"error", err,
			)
			c.metrics.Consumed("skipped")
			return nil
		}

		log.WarnContext(ctx, "spend ingestion failed, retrying",
			"campaign_id", event.CampaignID,
			"attempt", attempt,
			"delay", delay,
			"error", err,
		)
		c.metrics.Consumed("retried")
		if err := c.sleep(ctx, delay); err != nil {
			return err
		}
		delay = min(delay*2, maxBackoff)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

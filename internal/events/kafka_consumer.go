package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Reloader refreshes a local view of the record store.
type Reloader interface {
	Load(ctx context.Context) error
}

// PetEventConsumer listens to pet record events and reloads the client cache
// on each one.
type PetEventConsumer struct {
	reader   *kafkago.Reader
	reloader Reloader
	logger   *zap.Logger
	onEvent  func(PetRecordEvent, string)
}

// NewPetEventConsumer creates a new PetEventConsumer in consumer group groupID.
func NewPetEventConsumer(
	brokers []string,
	groupID string,
	reloader Reloader,
	logger *zap.Logger,
) *PetEventConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        brokers,
		GroupID:        groupID,
		Topic:          TopicPetEvents,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        500 * time.Millisecond,
		CommitInterval: 0,
	})
	return &PetEventConsumer{
		reader:   reader,
		reloader: reloader,
		logger:   logger,
	}
}

// OnEvent registers a callback run after each successfully handled event.
func (c *PetEventConsumer) OnEvent(fn func(evt PetRecordEvent, eventType string)) {
	c.onEvent = fn
}

// Start begins consuming pet events. This blocks until the context is cancelled.
func (c *PetEventConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return ctx.Err()
			}
			return fmt.Errorf("failed to fetch message: %w", err)
		}

		if err := c.handleMessage(ctx, msg); err != nil {
			// Leave uncommitted so the event is redelivered.
			c.logger.Warn("pet event handling failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("failed to commit pet event", zap.Error(err))
		}
	}
}

// Close closes the underlying Kafka reader.
func (c *PetEventConsumer) Close() error {
	return c.reader.Close()
}

func (c *PetEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from pet topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case PetRecordCreated, PetRecordUpdated, PetRecordDeleted:
		return c.handleRecordChanged(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled pet event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *PetEventConsumer) handleRecordChanged(ctx context.Context, cloudEvent CloudEvent) error {
	var evt PetRecordEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse PetRecordEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing pet record event",
		zap.String("type", cloudEvent.Type),
		zap.String("pet_id", evt.PetID.String()),
		zap.Int64("version", evt.Version),
	)

	if err := c.reloader.Load(ctx); err != nil {
		return fmt.Errorf("failed to reload after %s: %w", cloudEvent.Type, err)
	}

	if c.onEvent != nil {
		c.onEvent(evt, cloudEvent.Type)
	}
	return nil
}

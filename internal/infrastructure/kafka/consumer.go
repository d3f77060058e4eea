package kafka

import (
	"context"
	"fmt"

	"laza-storefront/internal/domain"
	"laza-storefront/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
)

type MessageHandler func(ctx context.Context, key, value []byte) error

// Consumer reads the catalog topic. Each instance uses its own group so that
// every instance sees every event.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		StartOffset: kafka.LastOffset,
		MinBytes:    1,
		MaxBytes:    10e6, // 10MB
	})
	return &Consumer{reader: reader}
}

func (c *Consumer) Consume(ctx context.Context, handler MessageHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Error().Err(err).Msg("Error reading catalog event")
				continue
			}

			if err := handler(ctx, msg.Key, msg.Value); err != nil {
				logger.Error().Err(err).Str("key", string(msg.Key)).Msg("Error handling catalog event")
			}
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

// CatalogEventApplier is implemented by the catalog repository.
type CatalogEventApplier interface {
	ApplyRemoteEvent(ctx context.Context, event domain.CatalogEvent) error
}

// CatalogEventHandler decodes catalog events and hands them to the repository.
func CatalogEventHandler(applier CatalogEventApplier) MessageHandler {
	return func(ctx context.Context, _, value []byte) error {
		event, err := DecodeCatalogEvent(value)
		if err != nil {
			return err
		}
		return applier.ApplyRemoteEvent(ctx, event)
	}
}

func DecodeCatalogEvent(value []byte) (domain.CatalogEvent, error) {
	var event domain.CatalogEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return domain.CatalogEvent{}, fmt.Errorf("decode catalog event: %w", err)
	}
	if event.Type == "" {
		return domain.CatalogEvent{}, fmt.Errorf("decode catalog event: missing type")
	}
	return event, nil
}

// Package kafka implements the review event ingester on Kafka.
package kafka

import (
	"context"
	"encoding/json"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"go.uber.org/zap"

	"github.com/jeisonBorba/reactive-app/review/pkg/model"
)

// Ingester defines a Kafka-based review event ingester.
type Ingester struct {
	consumer *kafka.Consumer
	logger   *zap.Logger
	topic    string
}

// NewIngester creates a new Kafka-based review event ingester.
func NewIngester(addr string, groupID string, topic string, logger *zap.Logger) (*Ingester, error) {
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": addr,
		"group.id":          groupID,
		"auto.offset.reset": "earliest",
	})
	if err != nil {
		return nil, err
	}
	return &Ingester{consumer: consumer, logger: logger, topic: topic}, nil
}

// Ingest starts ingestion and returns the channel review events are emitted
// on. The channel is closed and the consumer released when ctx is cancelled.
func (i *Ingester) Ingest(ctx context.Context) (chan model.ReviewEvent, error) {
	if err := i.consumer.SubscribeTopics([]string{i.topic}, nil); err != nil {
		return nil, err
	}
	ch := make(chan model.ReviewEvent, 1)
	go func() {
		defer close(ch)
		defer i.consumer.Close()
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			msg, err := i.consumer.ReadMessage(-1)
			if err != nil {
				i.logger.Warn("Failed to read message", zap.Error(err))
				continue
			}
			var event model.ReviewEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				i.logger.Warn("Failed to unmarshal review event", zap.Error(err))
				continue
			}
			select {
			case ch <- event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

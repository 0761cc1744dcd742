// Package events publishes routing domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SafeHaul-Logistics/service-routing/internal/domain/route"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	// TopicRoutingEvents carries all routing lifecycle events.
	TopicRoutingEvents = "routing.events"

	// EvaluationCompleted is emitted after a batch was ranked and the
	// response produced.
	EvaluationCompleted = "routing.evaluation.completed"
)

// Envelope is the CloudEvents-style wrapper every published event uses.
type Envelope struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Type   string          `json:"type"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

// EvaluationCompletedEvent summarizes one finished route evaluation.
type EvaluationCompletedEvent struct {
	Origin             route.LatLng `json:"origin"`
	Destination        route.LatLng `json:"destination"`
	CandidateCount     int          `json:"candidate_count"`
	RankedCount        int          `json:"ranked_count"`
	SafestRouteID      string       `json:"safest_route_id"`
	SafestDisplayScore float64      `json:"safest_display_score"`
	TankerType         string       `json:"tanker_type"`
	OccurredAt         time.Time    `json:"occurred_at"`
}

// Producer publishes envelopes to Kafka. Publishing is best-effort from the
// caller's point of view: failures are returned for logging, never fatal to
// a request.
type Producer struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

// NewProducer creates a producer for the given brokers.
func NewProducer(brokers []string, logger *zap.Logger) *Producer {
	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Balancer:               &kafkago.LeastBytes{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return &Producer{writer: writer, logger: logger}
}

// Publish wraps the payload in an envelope and writes it to the topic.
func (p *Producer) Publish(ctx context.Context, topic, eventType, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	env := Envelope{
		ID:     uuid.NewString(),
		Source: "service-routing",
		Type:   eventType,
		Time:   time.Now().UTC(),
		Data:   data,
	}

	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("write event %s: %w", eventType, err)
	}

	p.logger.Debug("event published",
		zap.String("topic", topic),
		zap.String("type", eventType),
		zap.String("key", key),
	)
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

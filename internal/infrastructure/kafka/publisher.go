package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/cajun-local/ask-local/api/internal/asklocal/application"
)

// ImpressionEvent is the wire form of one featured placement.
type ImpressionEvent struct {
	EventID    string    `json:"event_id"`
	BusinessID string    `json:"business_id"`
	Position   int       `json:"position"`
	Reason     string    `json:"reason,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ImpressionPublisher reports featured placements to a Kafka topic.
// Writes are asynchronous; delivery failures are logged by the writer.
type ImpressionPublisher struct {
	writer messageWriter
	newID  func() string
}

// NewImpressionPublisher creates an async writer for topic.
func NewImpressionPublisher(brokers []string, topic string, logger *zap.Logger) *ImpressionPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warn("featured impression delivery failed", zap.Int("messages", len(messages)), zap.Error(err))
			}
		},
	}
	return &ImpressionPublisher{writer: writer, newID: uuid.NewString}
}

// PublishFeatured implements application.ImpressionPublisher.
func (p *ImpressionPublisher) PublishFeatured(ctx context.Context, impressions []application.FeaturedImpression) error {
	if len(impressions) == 0 {
		return nil
	}
	messages, err := buildMessages(impressions, p.newID)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("write impressions: %w", err)
	}
	return nil
}

// Close flushes pending messages.
func (p *ImpressionPublisher) Close() error {
	return p.writer.Close()
}

func buildMessages(impressions []application.FeaturedImpression, newID func() string) ([]kafka.Message, error) {
	messages := make([]kafka.Message, 0, len(impressions))
	for _, imp := range impressions {
		value, err := json.Marshal(ImpressionEvent{
			EventID:    newID(),
			BusinessID: imp.BusinessID,
			Position:   imp.Position,
			Reason:     imp.Reason,
			RequestID:  imp.RequestID,
			OccurredAt: imp.At,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal impression: %w", err)
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(imp.BusinessID),
			Value: value,
			Time:  imp.At,
		})
	}
	return messages, nil
}

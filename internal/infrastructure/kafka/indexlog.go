package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// IndexLog appends marketplace events to a compacted topic consumed by
// off-service indexers. Publishing is fire-and-forget: a broker outage must
// never fail the auction operation that produced the event.
type IndexLog struct {
	writer *kafka.Writer
}

func NewIndexLog(brokers []string, topic string) *IndexLog {
	return &IndexLog{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

type indexRecord struct {
	EventType string    `json:"event_type"`
	Payload   any       `json:"payload"`
	LoggedAt  time.Time `json:"logged_at"`
}

func (l *IndexLog) Append(ctx context.Context, eventType string, payload any) {
	go func() {
		msg, err := json.Marshal(indexRecord{
			EventType: eventType,
			Payload:   payload,
			LoggedAt:  time.Now(),
		})
		if err != nil {
			slog.Error("failed to marshal index record", "event_type", eventType, "error", err.Error())
			return
		}

		writeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := l.writer.WriteMessages(writeCtx, kafka.Message{
			Key:   []byte(eventType),
			Value: msg,
			Time:  time.Now(),
		}); err != nil {
			slog.Error("failed to append index record", "event_type", eventType, "error", err.Error())
		}
	}()
}

func (l *IndexLog) Close() error {
	return l.writer.Close()
}

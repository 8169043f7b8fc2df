package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// NetworkEvent is published for every create and cascading delete against the
// flight network. Deleted counts are zero for creates.
type NetworkEvent struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	Entity           string    `json:"entity"`
	Key              string    `json:"key"`
	DeletedAirports  int       `json:"deleted_airports,omitempty"`
	DeletedTypes     int       `json:"deleted_types,omitempty"`
	DeletedAirplanes int       `json:"deleted_airplanes,omitempty"`
	DeletedRoutes    int       `json:"deleted_routes,omitempty"`
	DeletedFlights   int       `json:"deleted_flights,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

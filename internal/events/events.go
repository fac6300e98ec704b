package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"rentalhub/internal/pkg/logger"
)

const (
	BookingCreated = "booking.created"
	BookingDeleted = "booking.deleted"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data any) error
	Close() error
}

type BookingEvent struct {
	BookingID  string    `json:"booking_id"`
	PropertyID string    `json:"property_id,omitempty"`
	BookDate   string    `json:"book_date,omitempty"`
	EndDate    string    `json:"end_date,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("rentalhub-api"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (n *NATSPublisher) Publish(ctx context.Context, subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}
	logger.WithContext(ctx).Debug("publishing event", "subject", subject, "data", string(payload))
	return n.conn.Publish(subject, payload)
}

func (n *NATSPublisher) Close() error {
	return n.conn.Drain()
}

// Noop drops events; used when NATS_URL is not configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }

func (Noop) Close() error { return nil }

package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventPaymentUpdated     = "OrderPaymentUpdated"

	producerName = "hostel-food-api"
)

type (
	Envelope struct {
		EventID       string          `json:"event_id"`
		EventType     string          `json:"event_type"`
		EventVersion  int             `json:"event_version"`
		OccurredAt    time.Time       `json:"occurred_at"`
		Producer      string          `json:"producer"`
		CorrelationID string          `json:"correlation_id,omitempty"`
		Payload       json.RawMessage `json:"payload"`
	}

	OrderPlacedPayload struct {
		OrderID      string `json:"order_id"`
		OrderNumber  string `json:"order_number"`
		UserID       string `json:"user_id"`
		UniversityID string `json:"university_id"`
		OrderDate    string `json:"order_date"`
		TotalAmount  string `json:"total_amount"`
		ItemCount    int    `json:"item_count"`
	}

	OrderStatusChangedPayload struct {
		OrderID      string `json:"order_id"`
		OrderNumber  string `json:"order_number"`
		UserID       string `json:"user_id"`
		UniversityID string `json:"university_id"`
		From         string `json:"from"`
		To           string `json:"to"`
		Reason       string `json:"reason,omitempty"`
		ActorID      string `json:"actor_id"`
		ActorRole    string `json:"actor_role"`
	}

	PaymentUpdatedPayload struct {
		OrderNumber   string `json:"order_number"`
		PaymentStatus string `json:"payment_status"`
	}

	// Publisher delivers domain events keyed by order id so a consumer sees
	// one order's events in order.
	Publisher interface {
		Publish(ctx context.Context, key string, eventType string, payload any) error
	}
)

func NewEnvelope(eventType, correlationID string, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      producerName,
		CorrelationID: correlationID,
		Payload:       raw,
	}, nil
}

type noopPublisher struct{}

// NewNoopPublisher drops every event; used when no Kafka brokers are configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, string, any) error {
	return nil
}

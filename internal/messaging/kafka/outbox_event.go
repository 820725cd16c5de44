package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

// MaxOutboxRetries is the number of failed publishes after which an event
// is parked and no longer picked up by ListPending.
const MaxOutboxRetries = 10

// OutboxEvent doubles as the GORM model used to migrate outbox_events.
type OutboxEvent struct {
	ID            string    `gorm:"type:uuid;primaryKey"`
	RequestID     string    `gorm:"size:64"`
	AggregateType string    `gorm:"size:64;not null"`
	AggregateID   string    `gorm:"type:uuid;not null"`
	EventType     string    `gorm:"size:64;not null"`
	Topic         string    `gorm:"size:255;not null"`
	Payload       []byte    `gorm:"type:jsonb;not null"`
	Status        string    `gorm:"size:16;not null;index"`
	RetryCount    int       `gorm:"not null;default:0"`
	ErrorMessage  *string   `gorm:"size:500"`
	NextRetryAt   time.Time `gorm:"index"`
	ProcessedAt   *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (OutboxEvent) TableName() string { return "outbox_events" }

// EventMeta identifies what an outbox row is about and where it goes.
type EventMeta struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	RequestID     string
}

// NewOutboxEvent builds a pending event with a fresh id and payload
// marshalled as JSON.
func NewOutboxEvent(meta EventMeta, payload any) (OutboxEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("marshal %s payload: %w", meta.EventType, err)
	}

	event := OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     meta.RequestID,
		AggregateType: meta.AggregateType,
		AggregateID:   meta.AggregateID,
		EventType:     meta.EventType,
		Topic:         meta.Topic,
		Payload:       body,
		Status:        OutboxStatusPending,
	}
	return event, ValidateOutboxEvent(event)
}

func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}

package notification

import (
	"time"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"
)

// CreateInput describes a notification a domain service wants to send.
type CreateInput struct {
	Type          Type
	Title         string
	Message       string
	Ref           domain.Ref
	RecipientRole domain.Role
	Metadata      map[string]any
	Applicant     *Party
	Employee      *Party
}

type ReferenceResponse struct {
	Kind domain.RefKind `json:"kind"`
	ID   string         `json:"id"`
}

type NotificationResponse struct {
	ID            string             `json:"id"`
	Type          Type               `json:"type"`
	Title         string             `json:"title"`
	Message       string             `json:"message"`
	Reference     *ReferenceResponse `json:"reference,omitempty"`
	RecipientRole domain.Role        `json:"recipient_role"`
	Seen          bool               `json:"seen"`
	SeenAt        *time.Time         `json:"seen_at,omitempty"`
	Metadata      map[string]any     `json:"metadata,omitempty"`
	Applicant     *Party             `json:"applicant,omitempty"`
	Employee      *Party             `json:"employee,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

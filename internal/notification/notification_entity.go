package notification

import (
	"time"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Type string

const (
	TypeLeaveRequest          Type = "leave_request"
	TypeLeaveDecision         Type = "leave_decision"
	TypeRequisitionRequest    Type = "requisition_request"
	TypeRequisitionDecision   Type = "requisition_decision"
	TypeApplicationSubmitted  Type = "application_submitted"
	TypeApplicationDecision   Type = "application_decision"
	TypeWorkExperienceRequest Type = "work_experience_request"
	TypeWorkExperienceUpdate  Type = "work_experience_update"
)

// Party is contact info of the person a notification is about.
type Party struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (p Party) IsZero() bool {
	return p == Party{}
}

type Notification struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type          Type           `gorm:"type:varchar(50);not null"`
	Title         string         `gorm:"type:varchar(255);not null"`
	Message       string         `gorm:"type:text"`
	RefKind       domain.RefKind `gorm:"type:varchar(32);index:idx_notifications_ref"`
	RefID         *uuid.UUID     `gorm:"type:uuid;index:idx_notifications_ref"`
	RecipientRole domain.Role    `gorm:"type:varchar(32);not null;index"`
	Seen          bool           `gorm:"not null;default:false"`
	SeenAt        *time.Time
	Metadata      datatypes.JSONMap         `gorm:"type:jsonb"`
	Applicant     datatypes.JSONType[Party] `gorm:"type:jsonb;not null;default:'{}'"`
	Employee      datatypes.JSONType[Party] `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt     time.Time                 `gorm:"index"`
}

// Ref returns the tagged reference, zero when the notification points
// nowhere.
func (n Notification) Ref() domain.Ref {
	if n.RefID == nil {
		return domain.Ref{}
	}
	return domain.Ref{Kind: n.RefKind, ID: *n.RefID}
}

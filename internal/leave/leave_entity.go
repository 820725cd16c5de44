package leave

import (
	"time"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const DefaultLeaveType = "annual"

type LeaveRequest struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequesterID    uuid.UUID           `gorm:"type:uuid;not null;index:idx_leave_requests_requester_dates"`
	RequesterKind  domain.IdentityKind `gorm:"type:varchar(16);not null"`
	RequesterName  string              `gorm:"type:varchar(255)"`
	RequesterEmail string              `gorm:"type:varchar(255)"`
	RequesterRole  domain.Role         `gorm:"type:varchar(32);not null"`
	TargetRole     domain.Role         `gorm:"type:varchar(32);not null;index"`
	DepartmentID   *uuid.UUID          `gorm:"type:uuid;index"`
	DepartmentName string              `gorm:"type:varchar(255)"`

	LeaveType   string                      `gorm:"type:varchar(30);not null;default:'annual'"`
	StartDate   time.Time                   `gorm:"type:date;not null;index:idx_leave_requests_requester_dates"`
	EndDate     time.Time                   `gorm:"type:date;not null;index:idx_leave_requests_requester_dates"`
	TotalDays   int                         `gorm:"type:int;not null;default:1"`
	Reason      string                      `gorm:"type:text"`
	Attachments datatypes.JSONSlice[string] `gorm:"type:jsonb"`

	Status    string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	DecidedBy *uuid.UUID `gorm:"type:uuid"`
	DecidedAt *time.Time
	Comment   *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (l LeaveRequest) IsOwnedBy(id domain.Identity) bool {
	return l.RequesterID == id.ID && l.RequesterKind == id.Kind
}

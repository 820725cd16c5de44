package requisition

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Requisition struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestedByID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	RequestedByName  string     `gorm:"type:varchar(255)"`
	RequestedByEmail string     `gorm:"type:varchar(255)"`
	DepartmentID     *uuid.UUID `gorm:"type:uuid;index"`
	DepartmentName   string     `gorm:"type:varchar(255)"`

	Position    string `gorm:"type:varchar(255);not null"`
	Quantity    int    `gorm:"type:int;not null;default:1"`
	Description string `gorm:"type:text"`

	Status    string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	DecidedBy *uuid.UUID `gorm:"type:uuid"`
	DecidedAt *time.Time
	Comment   *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

package workexperience

import (
	"time"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

type WorkExperienceRequest struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeKind   string     `gorm:"type:varchar(16);not null"`
	EmployeeName   string     `gorm:"type:varchar(255)"`
	EmployeeEmail  string     `gorm:"type:varchar(255)"`
	EmployeeRole   string     `gorm:"type:varchar(32);not null"`
	DepartmentID   *uuid.UUID `gorm:"type:uuid;index"`
	DepartmentName string     `gorm:"type:varchar(255)"`
	Purpose        string     `gorm:"type:text;not null"`

	Status       string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	AdminComment *string    `gorm:"type:text"`
	LetterPath   string     `gorm:"type:varchar(500)"`
	DecidedBy    *uuid.UUID `gorm:"type:uuid"`
	DecidedAt    *time.Time
	CompletedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (WorkExperienceRequest) TableName() string {
	return "work_experience_requests"
}

func (w WorkExperienceRequest) IsOwnedBy(caller domain.Identity) bool {
	return w.EmployeeID == caller.ID
}

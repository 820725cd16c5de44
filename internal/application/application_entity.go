package application

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

type Application struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VacancyID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_application_vacancy_email"`
	VacancyTitle string    `gorm:"type:varchar(255)"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_application_vacancy_email"`
	Phone        string    `gorm:"type:varchar(50)"`
	CoverLetter  string    `gorm:"type:text"`
	ResumePath   string    `gorm:"type:varchar(500);not null"`

	Status    string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	DecidedBy *uuid.UUID `gorm:"type:uuid"`
	DecidedAt *time.Time
	Comment   *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

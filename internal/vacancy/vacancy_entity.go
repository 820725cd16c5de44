package vacancy

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

type Vacancy struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title          string     `gorm:"type:varchar(255);not null"`
	DepartmentID   *uuid.UUID `gorm:"type:uuid;index"`
	DepartmentName string     `gorm:"type:varchar(255)"`
	Description    string     `gorm:"type:text"`
	Requirements   string     `gorm:"type:text"`
	Location       string     `gorm:"type:varchar(255)"`
	EmploymentType string     `gorm:"type:varchar(50)"`
	Salary         string     `gorm:"type:varchar(100)"`
	Deadline       *time.Time `gorm:"type:date"`
	Status         string     `gorm:"type:varchar(20);not null;default:'open';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// AcceptsApplications reports whether the vacancy is open and its deadline,
// if any, has not passed on the given day.
func (v Vacancy) AcceptsApplications(now time.Time) bool {
	if v.Status != StatusOpen {
		return false
	}
	if v.Deadline == nil {
		return true
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !v.Deadline.Before(today)
}

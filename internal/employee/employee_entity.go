package employee

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusTerminated = "terminated"
)

type Employee struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string     `gorm:"size:32;not null;uniqueIndex:uq_employee_number"`
	FirstName      string     `gorm:"size:100;not null"`
	LastName       string     `gorm:"size:100;not null"`
	Email          string     `gorm:"size:255;not null;uniqueIndex:uq_employee_email"`
	Phone          string     `gorm:"size:32"`
	Position       string     `gorm:"size:255"`
	Role           string     `gorm:"size:32;not null;default:employee"`
	DepartmentID   *uuid.UUID `gorm:"type:uuid;index"`
	DepartmentName string     `gorm:"size:255"`
	PhotoPath      string     `gorm:"size:512"`
	PasswordHash   string     `gorm:"size:255;not null"`
	HireDate       *time.Time `gorm:"type:date"`
	Salary         float64    `gorm:"type:numeric(14,2);not null;default:0"`
	Status         string     `gorm:"size:16;not null;default:active"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func (e Employee) IsActive() bool {
	return e.Status == "" || e.Status == StatusActive
}

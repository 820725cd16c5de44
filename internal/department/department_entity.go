package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Department struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name          string         `gorm:"size:255;not null;uniqueIndex:uq_departments_name"`
	Head          string         `gorm:"size:255"`
	Faculty       string         `gorm:"size:255"`
	Description   string         `gorm:"type:text"`
	EmployeeCount int            `gorm:"not null;default:0"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// denormalizedTables carry a department_name copy next to department_id.
var denormalizedTables = []string{
	"employees",
	"leave_requests",
	"requisitions",
	"vacancies",
	"work_experience_requests",
}

// Package scope holds reusable gorm scopes for narrowing listings.
package scope

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Equal filters column = id when id is set and is a no-op otherwise.
func Equal(column string, id *uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id == nil {
			return db
		}
		return db.Where(column+" = ?", *id)
	}
}

func Department(id *uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return Equal("department_id", id)
}

func Employee(id *uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return Equal("employee_id", id)
}

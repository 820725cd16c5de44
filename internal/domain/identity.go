package domain

import "github.com/google/uuid"

type IdentityKind string

const (
	IdentityUser     IdentityKind = "user"
	IdentityEmployee IdentityKind = "employee"
)

// Identity is the authenticated caller attached to every request by the
// auth middleware. Role is always one of the closed Role values.
type Identity struct {
	ID             uuid.UUID
	Kind           IdentityKind
	Name           string
	Email          string
	Role           Role
	DepartmentID   *uuid.UUID
	DepartmentName string
}

func (i Identity) InDepartment(departmentID *uuid.UUID) bool {
	if i.DepartmentID == nil || departmentID == nil {
		return false
	}
	return *i.DepartmentID == *departmentID
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

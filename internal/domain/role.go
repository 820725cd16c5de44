package domain

import (
	"errors"
	"strings"
)

// Role is the closed set of roles an authenticated identity can hold.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleDepartmentHead Role = "departmenthead"
	RoleEmployee       Role = "employee"
)

var ErrUnknownRole = errors.New("unknown role")

var roleAliases = map[string]Role{
	"admin":          RoleAdmin,
	"administrator":  RoleAdmin,
	"departmenthead": RoleDepartmentHead,
	"depthead":       RoleDepartmentHead,
	"head":           RoleDepartmentHead,
	"employee":       RoleEmployee,
	"staff":          RoleEmployee,
}

// ParseRole normalizes a stored role string. Case, whitespace, underscores
// and dashes are ignored, so "Department Head" and "department_head" both
// resolve to RoleDepartmentHead.
func ParseRole(raw string) (Role, error) {
	key := strings.ToLower(strings.Join(strings.Fields(raw), ""))
	key = strings.NewReplacer("_", "", "-", "").Replace(key)
	if role, ok := roleAliases[key]; ok {
		return role, nil
	}
	return "", ErrUnknownRole
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDepartmentHead, RoleEmployee:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// In reports whether r is one of roles.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

package domain

import "github.com/google/uuid"

// RefKind tags which entity a notification points at.
type RefKind string

const (
	RefLeave          RefKind = "leave"
	RefRequisition    RefKind = "requisition"
	RefApplication    RefKind = "application"
	RefWorkExperience RefKind = "work_experience"
)

// Ref is a tagged pointer to exactly one source document.
type Ref struct {
	Kind RefKind
	ID   uuid.UUID
}

func (r Ref) IsZero() bool {
	return r.Kind == "" || r.ID == uuid.Nil
}

// DepartmentScoped reports whether documents of this kind belong to a
// department and must be filtered by it for department heads.
func (k RefKind) DepartmentScoped() bool {
	return k == RefLeave || k == RefRequisition
}

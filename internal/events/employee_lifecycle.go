package events

import "time"

const EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

const (
	EmployeeCreated = "employee.created"
	EmployeeUpdated = "employee.updated"
	EmployeeDeleted = "employee.deleted"
)

type EmployeeLifecycleEvent struct {
	EventType            string    `json:"event_type"`
	RequestID            string    `json:"request_id,omitempty"`
	EmployeeID           string    `json:"employee_id"`
	DepartmentID         string    `json:"department_id,omitempty"`
	PreviousDepartmentID string    `json:"previous_department_id,omitempty"`
	OccurredAt           time.Time `json:"occurred_at"`
}

// AffectedDepartments lists the distinct non-empty department ids whose
// headcount may have changed.
func (e EmployeeLifecycleEvent) AffectedDepartments() []string {
	out := make([]string, 0, 2)
	if e.DepartmentID != "" {
		out = append(out, e.DepartmentID)
	}
	if e.PreviousDepartmentID != "" && e.PreviousDepartmentID != e.DepartmentID {
		out = append(out, e.PreviousDepartmentID)
	}
	return out
}

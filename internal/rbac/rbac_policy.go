package rbac

import "github.com/MuleAlemuB/project1-sub002/internal/domain"

const (
	ResourceAttendance     = "attendance"
	ResourceApplication    = "application"
	ResourceDepartment     = "department"
	ResourceEmployee       = "employee"
	ResourceLeave          = "leave"
	ResourceNotification   = "notification"
	ResourceReport         = "report"
	ResourceRequisition    = "requisition"
	ResourceUser           = "user"
	ResourceVacancy        = "vacancy"
	ResourceWorkExperience = "work_experience"

	ActionRead     = "read"
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionDecide   = "decide"
	ActionGenerate = "generate"
)

type Rule struct {
	Role     domain.Role
	Resource string
	Action   string
}

// DefaultPolicy is the fixed permission table. Admins may do anything;
// ownership and department checks happen in the services.
func DefaultPolicy() []Rule {
	rules := []Rule{
		{domain.RoleAdmin, "*", "*"},
	}

	shared := []Rule{
		{Resource: ResourceDepartment, Action: ActionRead},
		{Resource: ResourceEmployee, Action: ActionRead},
		{Resource: ResourceVacancy, Action: ActionRead},
		{Resource: ResourceLeave, Action: ActionRead},
		{Resource: ResourceLeave, Action: ActionCreate},
		{Resource: ResourceLeave, Action: ActionDelete},
		{Resource: ResourceNotification, Action: ActionRead},
		{Resource: ResourceNotification, Action: ActionUpdate},
		{Resource: ResourceNotification, Action: ActionDelete},
		{Resource: ResourceWorkExperience, Action: ActionRead},
		{Resource: ResourceWorkExperience, Action: ActionCreate},
		{Resource: ResourceAttendance, Action: ActionRead},
		{Resource: ResourceAttendance, Action: ActionCreate},
	}
	for _, role := range []domain.Role{domain.RoleDepartmentHead, domain.RoleEmployee} {
		for _, r := range shared {
			r.Role = role
			rules = append(rules, r)
		}
	}

	return append(rules,
		Rule{domain.RoleDepartmentHead, ResourceLeave, ActionDecide},
		Rule{domain.RoleDepartmentHead, ResourceRequisition, ActionRead},
		Rule{domain.RoleDepartmentHead, ResourceRequisition, ActionCreate},
		Rule{domain.RoleDepartmentHead, ResourceRequisition, ActionDelete},
	)
}

package leave

type CreateLeaveRequest struct {
	LeaveType  string `json:"leave_type" form:"leave_type" binding:"omitempty,max=30"`
	StartDate  string `json:"start_date" form:"start_date" binding:"required"`
	EndDate    string `json:"end_date" form:"end_date" binding:"required"`
	Reason     string `json:"reason" form:"reason" binding:"required,max=2000"`
	TargetRole string `json:"target_role" form:"target_role"`
}

type DecisionRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment" binding:"max=2000"`
}

type LeaveResponse struct {
	ID             string   `json:"id"`
	RequesterID    string   `json:"requester_id"`
	RequesterKind  string   `json:"requester_kind"`
	RequesterName  string   `json:"requester_name"`
	RequesterEmail string   `json:"requester_email"`
	RequesterRole  string   `json:"requester_role"`
	TargetRole     string   `json:"target_role"`
	DepartmentID   *string  `json:"department_id,omitempty"`
	DepartmentName string   `json:"department_name,omitempty"`
	LeaveType      string   `json:"leave_type"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	TotalDays      int      `json:"total_days"`
	Reason         string   `json:"reason"`
	Attachments    []string `json:"attachments"`
	Status         string   `json:"status"`
	DecidedBy      *string  `json:"decided_by,omitempty"`
	DecidedAt      *string  `json:"decided_at,omitempty"`
	Comment        *string  `json:"comment,omitempty"`
	CreatedAt      string   `json:"created_at"`
}

package workexperience

type CreateRequest struct {
	Purpose string `json:"purpose" binding:"required,max=2000"`
}

type DecisionRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment" binding:"max=2000"`
}

type WorkExperienceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	EmployeeEmail  string  `json:"employee_email"`
	DepartmentID   *string `json:"department_id,omitempty"`
	DepartmentName string  `json:"department_name"`
	Purpose        string  `json:"purpose"`
	Status         string  `json:"status"`
	AdminComment   *string `json:"admin_comment,omitempty"`
	LetterPath     string  `json:"letter_path,omitempty"`
	DecidedAt      *string `json:"decided_at,omitempty"`
	CompletedAt    *string `json:"completed_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// LetterFile is a resolved letter ready to be streamed to the caller.
type LetterFile struct {
	Path     string
	Filename string
}

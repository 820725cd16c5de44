package vacancy

type VacancyRequest struct {
	Title          string `json:"title" binding:"required,max=255"`
	DepartmentID   string `json:"department_id" binding:"omitempty,uuid"`
	Description    string `json:"description"`
	Requirements   string `json:"requirements"`
	Location       string `json:"location" binding:"max=255"`
	EmploymentType string `json:"employment_type" binding:"omitempty,oneof=full_time part_time contract internship"`
	Salary         string `json:"salary" binding:"max=100"`
	Deadline       string `json:"deadline"`
	Status         string `json:"status" binding:"omitempty,oneof=open closed"`
}

type VacancyResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	DepartmentID   *string `json:"department_id,omitempty"`
	DepartmentName string  `json:"department_name,omitempty"`
	Description    string  `json:"description"`
	Requirements   string  `json:"requirements"`
	Location       string  `json:"location"`
	EmploymentType string  `json:"employment_type"`
	Salary         string  `json:"salary"`
	Deadline       *string `json:"deadline,omitempty"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
}

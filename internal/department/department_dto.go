package department

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Head        string `json:"head" binding:"max=255"`
	Faculty     string `json:"faculty" binding:"max=255"`
	Description string `json:"description"`
}

type UpdateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Head        string `json:"head" binding:"max=255"`
	Faculty     string `json:"faculty" binding:"max=255"`
	Description string `json:"description"`
}

type DepartmentResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Head          string `json:"head"`
	Faculty       string `json:"faculty"`
	Description   string `json:"description"`
	EmployeeCount int    `json:"employee_count"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

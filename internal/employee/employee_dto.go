package employee

type CreateEmployeeRequest struct {
	FirstName      string  `json:"first_name" binding:"required,max=100"`
	LastName       string  `json:"last_name" binding:"required,max=100"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          string  `json:"phone" binding:"max=32"`
	Position       string  `json:"position" binding:"max=255"`
	Role           string  `json:"role"`
	DepartmentID   string  `json:"department_id" binding:"required,uuid"`
	Password       string  `json:"password" binding:"required,min=6"`
	EmployeeNumber string  `json:"employee_number" binding:"max=32"`
	HireDate       string  `json:"hire_date"`
	Salary         float64 `json:"salary" binding:"gte=0"`
	Status         string  `json:"status" binding:"omitempty,oneof=active inactive terminated"`
}

type UpdateEmployeeRequest struct {
	FirstName    string  `json:"first_name" binding:"required,max=100"`
	LastName     string  `json:"last_name" binding:"required,max=100"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        string  `json:"phone" binding:"max=32"`
	Position     string  `json:"position" binding:"max=255"`
	Role         string  `json:"role"`
	DepartmentID string  `json:"department_id" binding:"required,uuid"`
	Password     string  `json:"password" binding:"omitempty,min=6"`
	HireDate     string  `json:"hire_date"`
	Salary       float64 `json:"salary" binding:"gte=0"`
	Status       string  `json:"status" binding:"omitempty,oneof=active inactive terminated"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	EmployeeNumber string  `json:"employee_number"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone,omitempty"`
	Position       string  `json:"position,omitempty"`
	Role           string  `json:"role"`
	DepartmentID   string  `json:"department_id,omitempty"`
	DepartmentName string  `json:"department_name,omitempty"`
	Photo          string  `json:"photo,omitempty"`
	HireDate       string  `json:"hire_date,omitempty"`
	Salary         float64 `json:"salary"`
	Status         string  `json:"status"`
}

// EmployeeOption is the light projection used by select inputs.
type EmployeeOption struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	DepartmentName string `json:"department_name,omitempty"`
}

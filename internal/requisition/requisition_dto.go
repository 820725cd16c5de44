package requisition

type CreateRequisitionRequest struct {
	Position    string `json:"position" binding:"required,max=255"`
	Quantity    int    `json:"quantity" binding:"required,min=1,max=1000"`
	Description string `json:"description" binding:"max=5000"`
}

type DecisionRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment" binding:"max=2000"`
}

type RequisitionResponse struct {
	ID               string  `json:"id"`
	RequestedByID    string  `json:"requested_by_id"`
	RequestedByName  string  `json:"requested_by_name"`
	RequestedByEmail string  `json:"requested_by_email"`
	DepartmentID     *string `json:"department_id,omitempty"`
	DepartmentName   string  `json:"department_name,omitempty"`
	Position         string  `json:"position"`
	Quantity         int     `json:"quantity"`
	Description      string  `json:"description"`
	Status           string  `json:"status"`
	DecidedBy        *string `json:"decided_by,omitempty"`
	DecidedAt        *string `json:"decided_at,omitempty"`
	Comment          *string `json:"comment,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

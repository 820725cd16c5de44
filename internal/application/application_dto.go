package application

type ApplyRequest struct {
	VacancyID   string `form:"vacancy_id" binding:"required,uuid"`
	Name        string `form:"name" binding:"required,max=255"`
	Email       string `form:"email" binding:"required,email"`
	Phone       string `form:"phone" binding:"max=50"`
	CoverLetter string `form:"cover_letter" binding:"max=5000"`
}

type DecisionRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment" binding:"max=2000"`
}

type ApplicationResponse struct {
	ID           string  `json:"id"`
	VacancyID    string  `json:"vacancy_id"`
	VacancyTitle string  `json:"vacancy_title"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	CoverLetter  string  `json:"cover_letter"`
	ResumePath   string  `json:"resume_path"`
	Status       string  `json:"status"`
	DecidedBy    *string `json:"decided_by,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
	Comment      *string `json:"comment,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

package report

type DashboardResponse struct {
	Employees             int64 `json:"employees"`
	Departments           int64 `json:"departments"`
	PendingLeaves         int64 `json:"pending_leaves"`
	PendingRequisitions   int64 `json:"pending_requisitions"`
	OpenVacancies         int64 `json:"open_vacancies"`
	PendingApplications   int64 `json:"pending_applications"`
	PendingWorkExperience int64 `json:"pending_work_experience"`
}

package attendance

type ClockInRequest struct {
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
	Source    string   `json:"source" binding:"omitempty,oneof=manual web mobile device"`
	Notes     *string  `json:"notes" binding:"omitempty,max=1000"`
}

type ClockOutRequest struct {
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
	Notes     *string  `json:"notes" binding:"omitempty,max=1000"`
}

// ListFilter narrows a listing to an inclusive date range.
type ListFilter struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

type AttendanceResponse struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   string   `json:"employee_name,omitempty"`
	AttendanceDate string   `json:"attendance_date"`
	ClockIn        string   `json:"clock_in"`
	ClockOut       *string  `json:"clock_out,omitempty"`
	WorkedMinutes  *int64   `json:"worked_minutes,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Status         string   `json:"status"`
	Source         string   `json:"source"`
	Notes          *string  `json:"notes,omitempty"`
}

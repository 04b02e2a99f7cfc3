package attendance

type CreateAttendanceRequest struct {
	EmployeeID  string  `json:"employee_id" binding:"required,uuid"`
	Date        string  `json:"date" binding:"required"`
	SignInTime  *string `json:"sign_in_time"`
	SignOutTime *string `json:"sign_out_time"`
}

type UpdateAttendanceRequest struct {
	SignInTime  *string `json:"sign_in_time"`
	SignOutTime *string `json:"sign_out_time"`
	Status      *bool   `json:"status"`
}

type ListAttendanceQuery struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=2000"`
}

type AttendanceResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"`
	SignInTime  *string `json:"sign_in_time"`
	SignOutTime *string `json:"sign_out_time"`
	Status      bool    `json:"status"`
}

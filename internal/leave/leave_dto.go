package leave

type CreateLeaveRequestRequest struct {
	LeaveTypeID    string  `json:"leave_type_id" binding:"required,uuid"`
	StartDate      string  `json:"start_date" binding:"required"`
	EndDate        string  `json:"end_date" binding:"required"`
	IsHalfDay      bool    `json:"is_half_day"`
	HalfDaySession *string `json:"half_day_session" binding:"omitempty,oneof=Morning Evening"`
	Reason         string  `json:"reason" binding:"max=500"`
}

type UpdateLeaveRequestRequest struct {
	LeaveTypeID    string  `json:"leave_type_id" binding:"required,uuid"`
	StartDate      string  `json:"start_date" binding:"required"`
	EndDate        string  `json:"end_date" binding:"required"`
	IsHalfDay      bool    `json:"is_half_day"`
	HalfDaySession *string `json:"half_day_session" binding:"omitempty,oneof=Morning Evening"`
	Reason         string  `json:"reason" binding:"max=500"`
}

type DecideLeaveRequestRequest struct {
	Decision string `json:"decision" binding:"required,oneof=Approved Rejected"`
}

type LeaveRequestResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	LeaveTypeID    string  `json:"leave_type_id"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	IsHalfDay      bool    `json:"is_half_day"`
	HalfDaySession *string `json:"half_day_session,omitempty"`
	Reason         string  `json:"reason,omitempty"`
	LeaveStatus    string  `json:"leave_status"`
	ApprovedBy     *string `json:"approved_by,omitempty"`
	Status         bool    `json:"status"`
}

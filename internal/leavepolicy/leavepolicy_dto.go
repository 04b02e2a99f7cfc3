package leavepolicy

type CreateLeavePolicyRequest struct {
	DesignationID string `json:"designation_id" binding:"required,uuid"`
	LeaveTypeID   string `json:"leave_type_id" binding:"required,uuid"`
	YearLimit     int    `json:"year_limit" binding:"min=0"`
	MonthsLimit   int    `json:"months_limit" binding:"min=0"`
}

type UpdateLeavePolicyRequest struct {
	YearLimit   int   `json:"year_limit" binding:"min=0"`
	MonthsLimit int   `json:"months_limit" binding:"min=0"`
	Status      *bool `json:"status"`
}

type LeavePolicyResponse struct {
	ID            string `json:"id"`
	DesignationID string `json:"designation_id"`
	LeaveTypeID   string `json:"leave_type_id"`
	YearLimit     int    `json:"year_limit"`
	MonthsLimit   int    `json:"months_limit"`
	Status        bool   `json:"status"`
}

package leavetype

type CreateLeaveTypeRequest struct {
	Name   string `json:"name" binding:"required"`
	IsPaid bool   `json:"is_paid"`
}

type UpdateLeaveTypeRequest struct {
	Name   string `json:"name" binding:"required"`
	IsPaid bool   `json:"is_paid"`
	Status *bool  `json:"status"`
}

type LeaveTypeResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsPaid bool   `json:"is_paid"`
	Status bool   `json:"status"`
}

package employee

type CreateEmployeeRequest struct {
	Name            string  `json:"name" binding:"required,max=255"`
	Email           string  `json:"email" binding:"required,email"`
	Password        string  `json:"password" binding:"required,min=8"`
	DepartmentID    *string `json:"department_id" binding:"omitempty,uuid"`
	DesignationID   *string `json:"designation_id" binding:"omitempty,uuid"`
	ReportingHeadID *string `json:"reporting_head_id" binding:"omitempty,uuid"`
	Role            string  `json:"role" binding:"omitempty,oneof=admin employee"`
}

type UpdateEmployeeRequest struct {
	Name            string  `json:"name" binding:"required,max=255"`
	DepartmentID    *string `json:"department_id" binding:"omitempty,uuid"`
	DesignationID   *string `json:"designation_id" binding:"omitempty,uuid"`
	ReportingHeadID *string `json:"reporting_head_id" binding:"omitempty,uuid"`
	Role            string  `json:"role" binding:"omitempty,oneof=admin employee"`
	Status          *bool   `json:"status"`
}

type EmployeeResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	DepartmentID    *string `json:"department_id,omitempty"`
	DesignationID   *string `json:"designation_id,omitempty"`
	ReportingHeadID *string `json:"reporting_head_id,omitempty"`
	Role            string  `json:"role"`
	Status          bool    `json:"status"`
}

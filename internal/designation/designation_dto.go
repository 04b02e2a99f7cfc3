package designation

type CreateDesignationRequest struct {
	Title        string `json:"title" binding:"required"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
}

type UpdateDesignationRequest struct {
	Title        string `json:"title" binding:"required"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	Status       *bool  `json:"status"`
}

type DesignationResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	DepartmentID string `json:"department_id"`
	Status       bool   `json:"status"`
}

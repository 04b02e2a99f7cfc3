package face

type EnrollFaceRequest struct {
	Descriptor []float64 `json:"descriptor" binding:"required,min=1"`
}

type RecognizeFaceRequest struct {
	Descriptor []float64 `json:"descriptor" binding:"required,min=1"`
}

type FaceProfileResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	Descriptors int    `json:"descriptors"`
}

type RecognizeFaceResponse struct {
	Matched    bool    `json:"matched"`
	EmployeeID string  `json:"employee_id,omitempty"`
	Distance   float64 `json:"distance,omitempty"`
}

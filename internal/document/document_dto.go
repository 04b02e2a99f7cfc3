package document

type UploadDocumentRequest struct {
	FileName string `json:"file_name" binding:"required,max=255"`
	FileType string `json:"file_type" binding:"required,max=128"`
	Content  string `json:"content" binding:"required,base64"`
}

type UpdateDocumentRequest struct {
	FileName string `json:"file_name" binding:"required,max=255"`
	FileType string `json:"file_type" binding:"required,max=128"`
	Content  string `json:"content" binding:"omitempty,base64"`
}

// DocumentMeta omits the payload; list endpoints return metadata only.
type DocumentMeta struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	FileName   string `json:"file_name"`
	FileType   string `json:"file_type"`
}

type DocumentResponse struct {
	DocumentMeta
	Content string `json:"content"`
}

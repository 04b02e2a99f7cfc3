package document

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is an opaque blob attached to an employee. Content is the
// base64-encoded payload as uploaded; the server never decodes it.
type Document struct {
	ID         uuid.UUID      `gorm:"column:id;type:char(36);primaryKey"`
	EmployeeID uuid.UUID      `gorm:"column:employee_id;type:char(36);not null;index"`
	FileName   string         `gorm:"column:file_name;type:varchar(255);not null"`
	FileType   string         `gorm:"column:file_type;type:varchar(128);not null"`
	Content    string         `gorm:"column:content;type:longtext;not null"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}

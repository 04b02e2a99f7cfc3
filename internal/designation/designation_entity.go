package designation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Designation struct {
	ID           uuid.UUID      `gorm:"column:id;type:char(36);primaryKey"`
	Title        string         `gorm:"column:title;size:255;not null"`
	DepartmentID uuid.UUID      `gorm:"column:department_id;type:char(36);not null;index"`
	Status       bool           `gorm:"column:status;not null;default:true"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Designation) TableName() string {
	return "designations"
}

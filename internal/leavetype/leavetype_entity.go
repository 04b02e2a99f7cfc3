package leavetype

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveType struct {
	ID        uuid.UUID      `gorm:"column:id;type:char(36);primaryKey"`
	Name      string         `gorm:"column:name;size:255;not null;uniqueIndex"`
	IsPaid    bool           `gorm:"column:is_paid;not null;default:false"`
	Status    bool           `gorm:"column:status;not null;default:true"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}

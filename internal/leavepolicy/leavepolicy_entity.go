package leavepolicy

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeavePolicy caps leave consumption per (designation, leave type).
// MonthsLimit is the per-calendar-month allowance consulted at
// submission time; zero means no monthly cap is enforced.
type LeavePolicy struct {
	ID            uuid.UUID      `gorm:"column:id;type:char(36);primaryKey"`
	DesignationID uuid.UUID      `gorm:"column:designation_id;type:char(36);not null;uniqueIndex:idx_leave_policies_pair"`
	LeaveTypeID   uuid.UUID      `gorm:"column:leave_type_id;type:char(36);not null;uniqueIndex:idx_leave_policies_pair"`
	YearLimit     int            `gorm:"column:year_limit;not null;default:0"`
	MonthsLimit   int            `gorm:"column:months_limit;not null;default:0"`
	Status        bool           `gorm:"column:status;not null;default:true"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (LeavePolicy) TableName() string {
	return "leave_policies"
}

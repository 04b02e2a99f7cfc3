package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceRecord is the single attendance row per employee per
// calendar day. The (employee_id, date) pair is unique; concurrent
// sign-ins race on the index and the loser re-reads the winner's row.
type AttendanceRecord struct {
	ID          uuid.UUID      `gorm:"column:id;type:char(36);primaryKey"`
	EmployeeID  uuid.UUID      `gorm:"column:employee_id;type:char(36);not null;uniqueIndex:idx_attendance_employee_date"`
	Date        time.Time      `gorm:"column:date;type:date;not null;uniqueIndex:idx_attendance_employee_date"`
	SignInTime  *time.Time     `gorm:"column:sign_in_time"`
	SignOutTime *time.Time     `gorm:"column:sign_out_time"`
	Status      bool           `gorm:"column:status;not null;default:true"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// Open reports whether the record has a sign-in but no sign-out yet.
func (r *AttendanceRecord) Open() bool {
	return r.SignInTime != nil && r.SignOutTime == nil
}

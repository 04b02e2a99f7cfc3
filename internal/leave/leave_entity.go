package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

const (
	SessionMorning = "Morning"
	SessionEvening = "Evening"
)

// LeaveRequest is one submitted leave. StartDate and EndDate are
// inclusive calendar dates within a single month. HalfDaySession is
// set iff IsHalfDay; a half-day request is always a single date.
type LeaveRequest struct {
	ID             uuid.UUID      `gorm:"column:id;type:char(36);primaryKey"`
	EmployeeID     uuid.UUID      `gorm:"column:employee_id;type:char(36);not null;index"`
	LeaveTypeID    uuid.UUID      `gorm:"column:leave_type_id;type:char(36);not null;index"`
	StartDate      time.Time      `gorm:"column:start_date;type:date;not null"`
	EndDate        time.Time      `gorm:"column:end_date;type:date;not null"`
	IsHalfDay      bool           `gorm:"column:is_half_day;not null;default:false"`
	HalfDaySession *string        `gorm:"column:half_day_session;type:varchar(16)"`
	Reason         string         `gorm:"column:reason;type:varchar(500)"`
	LeaveStatus    string         `gorm:"column:leave_status;type:varchar(16);not null;default:'Pending';index"`
	ApprovedBy     *uuid.UUID     `gorm:"column:approved_by;type:char(36)"`
	Status         bool           `gorm:"column:status;not null;default:true"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// Decided reports whether the request has left the Pending state.
// Decisions are terminal.
func (r *LeaveRequest) Decided() bool {
	return r.LeaveStatus != StatusPending
}

// Span returns the request's day extent.
func (r *LeaveRequest) Span() Span {
	s := Span{Start: r.StartDate, End: r.EndDate, HalfDay: r.IsHalfDay}
	if r.HalfDaySession != nil {
		s.Session = *r.HalfDaySession
	}
	return s
}

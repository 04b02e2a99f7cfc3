package events

import "time"

const LeaveDecidedTopic = "ems.leave.lifecycle.v1"

// LeaveDecidedEvent is emitted when a leave request leaves the Pending
// state. Consumed by the notification consumer.
type LeaveDecidedEvent struct {
	EventType   string    `json:"event_type"`
	LeaveID     string    `json:"leave_id"`
	EmployeeID  string    `json:"employee_id"`
	LeaveTypeID string    `json:"leave_type_id"`
	Decision    string    `json:"decision"`
	DecidedBy   string    `json:"decided_by"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	OccurredAt  time.Time `json:"occurred_at"`
}

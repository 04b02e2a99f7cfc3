package events

import "time"

const EmployeeCreatedTopic = "ems.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType    string    `json:"event_type"`
	EmployeeID   string    `json:"employee_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	DepartmentID string    `json:"department_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}

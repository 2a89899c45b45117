package events

import "time"

const (
	LeaveApprovedTopic = "leave.approved"
	LeaveRejectedTopic = "leave.rejected"
)

// LeaveDecidedEvent is published whenever a leave request reaches a decision,
// so downstream systems (payroll, team calendars) can react without polling.
type LeaveDecidedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	LeaveID      string    `json:"leave_id"`
	UserID       string    `json:"user_id"`
	DepartmentID string    `json:"department_id,omitempty"`
	Status       string    `json:"status"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	WorkDays     int       `json:"work_days"`
	OccurredAt   time.Time `json:"occurred_at"`
}

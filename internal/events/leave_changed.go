package events

import "time"

const (
	LeaveCreatedType       = "leave_request_created"
	LeaveStatusUpdatedType = "leave_request_status_updated"
)

// LeaveChangedEvent is pushed to connected dashboards.
type LeaveChangedEvent struct {
	EventType      string    `json:"event_type"`
	LeaveRequestID uint      `json:"leave_request_id"`
	Status         string    `json:"status"`
	Department     string    `json:"department"`
	OccurredAt     time.Time `json:"occurred_at"`
}

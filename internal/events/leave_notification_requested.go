package events

import "time"

const (
	LeaveNotificationTopic         = "leave.notification.requested.v1"
	LeaveNotificationRequestedType = "leave_notification_requested"
)

type LeaveNotificationRequestedEvent struct {
	EventType        string    `json:"event_type"`
	RequestID        string    `json:"request_id,omitempty"`
	NotificationType string    `json:"notification_type"`
	PhoneNumber      string    `json:"phone_number"`
	Message          string    `json:"message"`
	OccurredAt       time.Time `json:"occurred_at"`
}

package events

import "time"

const NotificationTopic = "attend.notification.requested.v1"

const (
	EventLateCheckIn   = "attendance.late_check_in"
	EventCheckedOut    = "attendance.checked_out"
	EventLeaveDecision = "leave.decision"
)

type NotificationRequestedEvent struct {
	EventType  string         `json:"event_type"`
	UserID     string         `json:"user_id"`
	Title      string         `json:"title"`
	Message    string         `json:"message"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

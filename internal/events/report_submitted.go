package events

import "time"

const ReportSubmittedTopic = "portal.report.lifecycle.v1"

type ReportSubmittedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	ReportID   string    `json:"report_id"`
	Kind       string    `json:"kind"`
	EmployeeID string    `json:"employee_id"`
	TeamID     string    `json:"team_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

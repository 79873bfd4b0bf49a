package events

import "time"

const (
	VacationLifecycleTopic = "hr.vacation.lifecycle.v1"
	VacationDecidedType    = "vacation_decided"
)

// VacationDecidedEvent is published once a manager approves or rejects a
// vacation. EventID equals the outbox row id and is stable across retries.
type VacationDecidedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	VacationID string    `json:"vacation_id"`
	UserID     string    `json:"user_id"`
	TeamID     string    `json:"team_id,omitempty"`
	Status     string    `json:"status"`
	DecidedBy  string    `json:"decided_by"`
	Reason     *string   `json:"reason,omitempty"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	OccurredAt time.Time `json:"occurred_at"`
}

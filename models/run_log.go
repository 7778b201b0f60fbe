package models

import "time"

const (
	RunStatusSuccess = "success"
	RunStatusError   = "error"

	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
)

// RunLog is the record of the most recent job. Only one is ever retained.
type RunLog struct {
	RunID     string    `bson:"run_id" json:"run_id"`
	Trigger   string    `bson:"trigger" json:"trigger"`
	Email     string    `bson:"email" json:"email"`
	Interests []string  `bson:"interests" json:"interests"`
	StartedAt time.Time `bson:"started_at" json:"started_at"`
	EndedAt   time.Time `bson:"ended_at" json:"ended_at"`
	Status    string    `bson:"status" json:"status"`
	Error     string    `bson:"error,omitempty" json:"error,omitempty"`
}

func (l RunLog) Succeeded() bool {
	return l.Status == RunStatusSuccess
}

package events

import "time"

const ApplicantRegisteredTopic = "training.applicant.registered.v1"

type ApplicantRegisteredEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	ApplicantID string    `json:"applicant_id"`
	TrainingID  string    `json:"training_id"`
	Email       string    `json:"email"`
	OccurredAt  time.Time `json:"occurred_at"`
}

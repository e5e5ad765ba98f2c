package training

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusCompleted = "completed"
)

type Training struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null"`
	StartDate   time.Time `gorm:"type:date;not null;index:idx_trainings_start_date;index:idx_trainings_status_start_date"`
	EndDate     time.Time `gorm:"type:date;not null"`
	Location    string    `gorm:"type:varchar(255);not null"`

	Capacity      int     `gorm:"type:int;not null"`
	EnrolledCount int     `gorm:"type:int;not null;default:0"`
	Price         float64 `gorm:"type:numeric(8,2);not null;default:0"`

	Status string `gorm:"type:varchar(20);not null;default:'active';index:idx_trainings_status;index:idx_trainings_status_start_date"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFull reports whether the enrolled count has reached capacity.
func (t *Training) IsFull() bool {
	return t.EnrolledCount >= t.Capacity
}

// AvailableSpots is clamped at zero; the stored count may drift above
// capacity through admin edits.
func (t *Training) AvailableSpots() int {
	if spots := t.Capacity - t.EnrolledCount; spots > 0 {
		return spots
	}
	return 0
}

// OpenForRegistration gates the public registration form: active, not yet
// started, and with at least one spot left.
func (t *Training) OpenForRegistration(now time.Time) bool {
	return t.Status == StatusActive && t.StartDate.After(now) && !t.IsFull()
}

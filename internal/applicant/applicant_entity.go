package applicant

import (
	"time"

	"go-trainreg/internal/training"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

// ValidStatus reports whether v is one of the applicant lifecycle statuses.
// Any valid status may follow any other; there is no transition graph.
func ValidStatus(v string) bool {
	switch v {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

type Applicant struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TrainingID uuid.UUID `gorm:"type:uuid;not null;index:idx_applicants_training_id;index:idx_applicants_training_status"`

	RegistrationCode string `gorm:"type:varchar(20);not null;uniqueIndex:uq_applicants_registration_code"`
	FullName         string `gorm:"type:varchar(255);not null"`
	Email            string `gorm:"type:varchar(255);not null;index:idx_applicants_email"`
	Phone            string `gorm:"type:varchar(20);not null"`
	Address          string `gorm:"type:text;not null"`

	Status       string    `gorm:"type:varchar(20);not null;default:'pending';index:idx_applicants_status;index:idx_applicants_training_status"`
	RegisteredAt time.Time `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Training *training.Training `gorm:"constraint:OnDelete:CASCADE"`
}

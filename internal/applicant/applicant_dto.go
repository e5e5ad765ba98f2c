package applicant

import "go-trainreg/internal/training"

type RegisterApplicantRequest struct {
	TrainingID string `json:"training_id" binding:"required,uuid"`
	FullName   string `json:"full_name" binding:"required,max=255"`
	Email      string `json:"email" binding:"required,email,max=255"`
	Phone      string `json:"phone" binding:"required,max=20"`
	Address    string `json:"address" binding:"required"`
}

type UpdateApplicantRequest struct {
	FullName string `json:"full_name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Phone    string `json:"phone" binding:"required,max=20"`
	Address  string `json:"address" binding:"required"`
	Status   string `json:"status" binding:"omitempty,oneof=pending approved rejected completed"`
}

type StatusLookupRequest struct {
	Email      string `json:"email" form:"email" binding:"required,email"`
	TrainingID string `json:"training_id" form:"training_id" binding:"omitempty,uuid"`
}

type ApplicantResponse struct {
	ID               string `json:"id"`
	TrainingID       string `json:"training_id"`
	RegistrationCode string `json:"registration_code"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	Status           string `json:"status"`
	RegisteredAt     string `json:"registered_at"`

	Training *training.TrainingResponse `json:"training,omitempty"`
}

package applicanterrors

import (
	"net/http"

	"go-trainreg/internal/shared/apperror"
)

var (
	ErrApplicantNotFound = apperror.New(
		apperror.CodeNotFound,
		"Applicant not found",
		http.StatusNotFound,
	)
	ErrInvalidApplicantID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid applicant ID",
		http.StatusBadRequest,
	)
	// ErrTrainingFull is a field-level error on training_id so the
	// registration form can surface it next to the selected training.
	ErrTrainingFull = apperror.NewField(
		apperror.CodeConflict,
		"training_id",
		"This training is already full",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidStatus = apperror.NewField(
		apperror.CodeInvalidInput,
		"status",
		"Invalid status selected",
		http.StatusBadRequest,
	)
	ErrRegistrationCodeExists = apperror.New(
		apperror.CodeConflict,
		"Registration code already exists",
		http.StatusConflict,
	)
)

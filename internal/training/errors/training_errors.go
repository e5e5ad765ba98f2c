package trainingerrors

import (
	"net/http"

	"go-trainreg/internal/shared/apperror"
)

var (
	ErrTrainingNotFound = apperror.New(
		apperror.CodeNotFound,
		"Training not found",
		http.StatusNotFound,
	)
	ErrInvalidTrainingID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid training ID",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.NewField(
		apperror.CodeInvalidInput,
		"end_date",
		"End date must be after or equal to start date",
		http.StatusBadRequest,
	)
)

package applicant

import (
	"errors"
	"strings"

	applicanterrors "go-trainreg/internal/applicant/errors"
	trainingerrors "go-trainreg/internal/training/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapTrainingLookupError translates a failed training existence check during
// registration.
func mapTrainingLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return trainingerrors.ErrTrainingNotFound
	}
	return err
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return applicanterrors.ErrApplicantNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			// FK violation on training_id: the training vanished between the
			// existence check and the insert.
			return trainingerrors.ErrTrainingNotFound
		case "23505":
			if pgErr.ConstraintName == "uq_applicants_registration_code" {
				return applicanterrors.ErrRegistrationCodeExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_applicants_registration_code") {
		return applicanterrors.ErrRegistrationCodeExists
	}

	return err
}

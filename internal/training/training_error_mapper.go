package training

import (
	"errors"

	trainingerrors "go-trainreg/internal/training/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return trainingerrors.ErrTrainingNotFound
	}

	return err
}

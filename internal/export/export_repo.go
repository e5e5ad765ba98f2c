package export

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ApplicantRow is one line of the applicant export, already joined with the
// training title.
type ApplicantRow struct {
	ID            string
	FullName      string
	Email         string
	Phone         string
	Address       string
	TrainingTitle string
	Status        string
	RegisteredAt  time.Time
}

//go:generate mockgen -source=export_repo.go -destination=mock/export_repo_mock.go -package=mock
type Repository interface {
	StreamApplicants(ctx context.Context, fn func(row ApplicantRow) error) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// StreamApplicants walks the full applicant set ordered by registration time
// and hands each joined row to fn. Rows are not buffered so exports stay
// cheap even on large tables.
func (r *repository) StreamApplicants(ctx context.Context, fn func(row ApplicantRow) error) error {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT a.id, a.full_name, a.email, a.phone, a.address,
		       t.title AS training_title, a.status, a.registered_at
		FROM applicants a
		JOIN trainings t ON t.id = a.training_id
		ORDER BY a.registered_at ASC
	`).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var row ApplicantRow
		if err := rows.Scan(
			&row.ID,
			&row.FullName,
			&row.Email,
			&row.Phone,
			&row.Address,
			&row.TrainingTitle,
			&row.Status,
			&row.RegisteredAt,
		); err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	return rows.Err()
}

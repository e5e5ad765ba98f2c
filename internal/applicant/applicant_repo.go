package applicant

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Filter narrows admin listings to the indexed access paths.
type Filter struct {
	Status     string
	Email      string
	TrainingID string
}

//go:generate mockgen -source=applicant_repo.go -destination=mock/applicant_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Applicant) error
	FindAll(ctx context.Context, f Filter) ([]Applicant, error)
	FindByID(ctx context.Context, id string) (*Applicant, error)
	FindByEmail(ctx context.Context, email, trainingID string) ([]Applicant, error)
	Update(ctx context.Context, a *Applicant) error
	Delete(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// Create inserts through the raw connection so the registration workflow can
// run it inside the same transaction as the capacity claim.
func (r *repository) Create(ctx context.Context, a *Applicant) error {
	query := `
        INSERT INTO applicants (
            id, training_id, registration_code, full_name, email, phone, address,
            status, registered_at, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
    `

	_, err := r.execer().ExecContext(
		ctx, query,
		a.ID, a.TrainingID, a.RegistrationCode, a.FullName, a.Email, a.Phone, a.Address,
		a.Status, a.RegisteredAt,
	)
	return err
}

func (r *repository) FindAll(ctx context.Context, f Filter) ([]Applicant, error) {
	var applicants []Applicant
	q := r.db.WithContext(ctx).
		Preload("Training").
		Order("created_at DESC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Email != "" {
		q = q.Where("email = ?", f.Email)
	}
	if f.TrainingID != "" {
		q = q.Where("training_id = ?", f.TrainingID)
	}
	err := q.Find(&applicants).Error
	return applicants, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Applicant, error) {
	var a Applicant
	err := r.db.WithContext(ctx).
		Preload("Training").
		First(&a, "id = ?", id).Error
	return &a, err
}

// FindByEmail matches the email exactly; it backs the public self-service
// status lookup.
func (r *repository) FindByEmail(ctx context.Context, email, trainingID string) ([]Applicant, error) {
	var applicants []Applicant
	q := r.db.WithContext(ctx).
		Preload("Training").
		Where("email = ?", email).
		Order("registered_at DESC")
	if trainingID != "" {
		q = q.Where("training_id = ?", trainingID)
	}
	err := q.Find(&applicants).Error
	return applicants, err
}

func (r *repository) Update(ctx context.Context, a *Applicant) error {
	return r.db.WithContext(ctx).Omit("Training").Save(a).Error
}

// Delete removes through the raw connection so the deletion workflow can pair
// it with the enrolled_count release in one transaction. The bool reports
// whether a row was actually deleted; a concurrent delete of the same
// applicant leaves nothing to remove and must not release a spot again.
func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	query := `DELETE FROM applicants WHERE id = $1`

	res, err := r.execer().ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}

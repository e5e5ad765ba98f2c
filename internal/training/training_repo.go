package training

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=training_repo.go -destination=mock/training_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Training) error
	FindAll(ctx context.Context) ([]Training, error)
	FindByID(ctx context.Context, id string) (*Training, error)
	FindUpcoming(ctx context.Context, now time.Time) ([]Training, error)
	FindOpen(ctx context.Context, now time.Time, limit int) ([]Training, error)
	Update(ctx context.Context, t *Training) error
	Delete(ctx context.Context, id string) error
	ClaimSpot(ctx context.Context, id string) (bool, error)
	ReleaseSpot(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, t *Training) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Training, error) {
	var trainings []Training
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&trainings).Error
	return trainings, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Training, error) {
	var t Training
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) FindUpcoming(ctx context.Context, now time.Time) ([]Training, error) {
	var trainings []Training
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusActive).
		Where("start_date > ?", now).
		Order("start_date ASC").
		Find(&trainings).Error
	return trainings, err
}

func (r *repository) FindOpen(ctx context.Context, now time.Time, limit int) ([]Training, error) {
	var trainings []Training
	q := r.db.WithContext(ctx).
		Where("status = ?", StatusActive).
		Where("start_date > ?", now).
		Where("enrolled_count < capacity").
		Order("start_date ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&trainings).Error
	return trainings, err
}

// Update persists admin edits. enrolled_count is omitted so the write can
// never overwrite an increment that committed after the caller's read; the
// counter only moves through ClaimSpot and ReleaseSpot.
func (r *repository) Update(ctx context.Context, t *Training) error {
	return r.db.WithContext(ctx).Omit("enrolled_count").Save(t).Error
}

// Delete removes the training; dependent applicants go with it through the
// ON DELETE CASCADE foreign key.
func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Training{}, "id = ?", id).Error
}

// ClaimSpot increments enrolled_count only while a spot is left. The
// conditional update makes the capacity check and the increment one atomic
// statement, so concurrent registrations against a near-full training cannot
// both win the last spot.
func (r *repository) ClaimSpot(ctx context.Context, id string) (bool, error) {
	query := `
        UPDATE trainings
        SET enrolled_count = enrolled_count + 1, updated_at = now()
        WHERE id = $1 AND enrolled_count < capacity
    `

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

// ReleaseSpot decrements enrolled_count, floored at zero so an out-of-band
// admin edit can never drive the counter negative.
func (r *repository) ReleaseSpot(ctx context.Context, id string) error {
	query := `
        UPDATE trainings
        SET enrolled_count = GREATEST(enrolled_count - 1, 0), updated_at = now()
        WHERE id = $1
    `

	_, err := r.execer().ExecContext(ctx, query, id)
	return err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db.ConnPool
}

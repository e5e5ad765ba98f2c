package dashboard

import (
	"context"
	"time"

	"go-trainreg/internal/applicant"
	"go-trainreg/internal/training"

	"gorm.io/gorm"
)

//go:generate mockgen -source=dashboard_repo.go -destination=mock/dashboard_repo_mock.go -package=mock
type Repository interface {
	CountTrainings(ctx context.Context) (int64, error)
	CountApplicants(ctx context.Context) (int64, error)
	CountApplicantsByStatus(ctx context.Context, status string) (int64, error)
	CountUpcomingTrainings(ctx context.Context, now time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountTrainings(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&training.Training{}).Count(&count).Error
	return count, err
}

func (r *repository) CountApplicants(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&applicant.Applicant{}).Count(&count).Error
	return count, err
}

func (r *repository) CountApplicantsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&applicant.Applicant{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *repository) CountUpcomingTrainings(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&training.Training{}).
		Where("status = ?", training.StatusActive).
		Where("start_date > ?", now).
		Count(&count).Error
	return count, err
}

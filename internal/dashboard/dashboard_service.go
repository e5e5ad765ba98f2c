package dashboard

import (
	"context"
	"time"

	"go-trainreg/internal/applicant"

	"go.uber.org/zap"
)

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	GetStats(ctx context.Context) (StatsResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetStats(ctx context.Context) (StatsResponse, error) {
	totalTrainings, err := s.repo.CountTrainings(ctx)
	if err != nil {
		s.logger.Error("count trainings failed", zap.Error(err))
		return StatsResponse{}, err
	}

	totalApplicants, err := s.repo.CountApplicants(ctx)
	if err != nil {
		s.logger.Error("count applicants failed", zap.Error(err))
		return StatsResponse{}, err
	}

	pendingApplicants, err := s.repo.CountApplicantsByStatus(ctx, applicant.StatusPending)
	if err != nil {
		s.logger.Error("count pending applicants failed", zap.Error(err))
		return StatsResponse{}, err
	}

	upcomingTrainings, err := s.repo.CountUpcomingTrainings(ctx, time.Now())
	if err != nil {
		s.logger.Error("count upcoming trainings failed", zap.Error(err))
		return StatsResponse{}, err
	}

	return StatsResponse{
		TotalTrainings:    totalTrainings,
		TotalApplicants:   totalApplicants,
		PendingApplicants: pendingApplicants,
		UpcomingTrainings: upcomingTrainings,
	}, nil
}

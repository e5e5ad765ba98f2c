package training

import (
	"context"
	"encoding/json"
	"time"

	trainingerrors "go-trainreg/internal/training/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// OpenTrainingsCacheKey holds the public highlight list of trainings that are
// open for registration. Every mutation of a training row, including the
// enrolled_count updates done by the applicant workflow, must drop it.
const OpenTrainingsCacheKey = "trainings:open"

const openTrainingsCacheTTL = 5 * time.Minute

//go:generate mockgen -source=training_service.go -destination=mock/training_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateTrainingRequest) (TrainingResponse, error)
	GetAll(ctx context.Context) ([]TrainingResponse, error)
	GetByID(ctx context.Context, id string) (TrainingResponse, error)
	GetPublicByID(ctx context.Context, id string) (TrainingResponse, error)
	GetUpcoming(ctx context.Context) ([]TrainingResponse, error)
	GetOpenHighlights(ctx context.Context) ([]TrainingResponse, error)
	GetOpenForRegistration(ctx context.Context) ([]TrainingResponse, error)
	Update(ctx context.Context, id string, req UpdateTrainingRequest) (TrainingResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("training.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("training.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateTrainingRequest) (TrainingResponse, error) {
	s.logger.Debug("create training requested",
		zap.String("title", req.Title),
		zap.Int("capacity", req.Capacity),
	)

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("create training validation failed", zap.Error(err))
		return TrainingResponse{}, err
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}

	t := &Training{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Price:       req.Price,
		Status:      status,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error("create training persist failed", zap.Error(err))
		return TrainingResponse{}, mapRepositoryError(err)
	}

	s.invalidateOpenCache(ctx)
	s.logger.Info("create training success", zap.String("training_id", t.ID.String()))

	return MapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context) ([]TrainingResponse, error) {
	trainings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all trainings failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(trainings), nil
}

func (s *service) GetByID(ctx context.Context, id string) (TrainingResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TrainingResponse{}, trainingerrors.ErrInvalidTrainingID
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get training by id failed", zap.String("training_id", id), zap.Error(err))
		return TrainingResponse{}, mapRepositoryError(err)
	}
	return MapToResponse(*t), nil
}

// GetPublicByID hides trainings that are inactive or already started; the
// public detail page treats those as missing.
func (s *service) GetPublicByID(ctx context.Context, id string) (TrainingResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TrainingResponse{}, trainingerrors.ErrTrainingNotFound
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TrainingResponse{}, mapRepositoryError(err)
	}
	if t.Status != StatusActive || !t.StartDate.After(time.Now()) {
		return TrainingResponse{}, trainingerrors.ErrTrainingNotFound
	}
	return MapToResponse(*t), nil
}

func (s *service) GetUpcoming(ctx context.Context) ([]TrainingResponse, error) {
	trainings, err := s.repo.FindUpcoming(ctx, time.Now())
	if err != nil {
		s.logger.Error("get upcoming trainings failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(trainings), nil
}

func (s *service) GetOpenHighlights(ctx context.Context) ([]TrainingResponse, error) {
	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OpenTrainingsCacheKey).Result(); err == nil {
			var resp []TrainingResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight untuk handle traffic tinggi di landing page
	v, err, _ := s.sf.Do(OpenTrainingsCacheKey, func() (interface{}, error) {
		trainings, err := s.repo.FindOpen(ctx, time.Now(), 6)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(trainings)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, OpenTrainingsCacheKey, jsonData, openTrainingsCacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]TrainingResponse), nil
}

// GetOpenForRegistration lists every training the registration form may offer,
// so it skips both the cache and the highlight limit.
func (s *service) GetOpenForRegistration(ctx context.Context) ([]TrainingResponse, error) {
	trainings, err := s.repo.FindOpen(ctx, time.Now(), 0)
	if err != nil {
		s.logger.Error("get open trainings failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(trainings), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTrainingRequest) (TrainingResponse, error) {
	s.logger.Debug("update training requested", zap.String("training_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return TrainingResponse{}, trainingerrors.ErrInvalidTrainingID
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("update training validation failed", zap.Error(err))
		return TrainingResponse{}, err
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update training fetch existing failed", zap.Error(err))
		return TrainingResponse{}, mapRepositoryError(err)
	}

	t.Title = req.Title
	t.Description = req.Description
	t.StartDate = startDate
	t.EndDate = endDate
	t.Location = req.Location
	t.Capacity = req.Capacity
	t.Price = req.Price
	if req.Status != "" {
		t.Status = req.Status
	}

	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.Error("update training persist failed", zap.Error(err))
		return TrainingResponse{}, mapRepositoryError(err)
	}

	s.invalidateOpenCache(ctx)
	s.logger.Info("update training success", zap.String("training_id", id))

	return MapToResponse(*t), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete training requested", zap.String("training_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return trainingerrors.ErrInvalidTrainingID
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete training failed", zap.String("training_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.invalidateOpenCache(ctx)
	s.logger.Info("delete training success", zap.String("training_id", id))
	return nil
}

func (s *service) invalidateOpenCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OpenTrainingsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate open trainings cache",
			zap.Error(err),
			zap.String("key", OpenTrainingsCacheKey),
		)
	}
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, trainingerrors.ErrInvalidDateFormat
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, trainingerrors.ErrInvalidDateFormat
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, trainingerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

// MapToResponse carries the derived capacity fields alongside the stored ones.
func MapToResponse(t Training) TrainingResponse {
	return TrainingResponse{
		ID:             t.ID.String(),
		Title:          t.Title,
		Description:    t.Description,
		StartDate:      t.StartDate.Format("2006-01-02"),
		EndDate:        t.EndDate.Format("2006-01-02"),
		Location:       t.Location,
		Capacity:       t.Capacity,
		EnrolledCount:  t.EnrolledCount,
		Price:          t.Price,
		Status:         t.Status,
		IsFull:         t.IsFull(),
		AvailableSpots: t.AvailableSpots(),
	}
}

func mapToListResponse(trainings []Training) []TrainingResponse {
	resp := make([]TrainingResponse, len(trainings))
	for i, t := range trainings {
		resp[i] = MapToResponse(t)
	}
	return resp
}

package applicant

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	applicanterrors "go-trainreg/internal/applicant/errors"
	"go-trainreg/internal/events"
	"go-trainreg/internal/messaging/kafka"
	"go-trainreg/internal/shared/contextutil"
	"go-trainreg/internal/shared/counter"
	"go-trainreg/internal/training"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//go:generate mockgen -source=applicant_service.go -destination=mock/applicant_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterApplicantRequest) (ApplicantResponse, error)
	GetAll(ctx context.Context, f Filter) ([]ApplicantResponse, error)
	GetByID(ctx context.Context, id string) (ApplicantResponse, error)
	Update(ctx context.Context, id string, req UpdateApplicantRequest) (ApplicantResponse, error)
	Delete(ctx context.Context, id string) error
	LookupByEmail(ctx context.Context, email, trainingID string) ([]ApplicantResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	trainingRepo training.Repository
	counter      counter.Repository
	outbox       kafka.OutboxRepository
	rdb          *redis.Client
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	trainingRepo training.Repository,
	counter counter.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, trainingRepo, counter, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	trainingRepo training.Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("applicant.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("applicant.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		trainingRepo: trainingRepo,
		counter:      counter,
		outbox:       outboxRepo,
		rdb:          rdb,
		logger:       l,
	}
}

// Register runs the public registration workflow. The capacity claim and the
// applicant insert commit together: either a spot is taken and exactly one
// applicant row exists for it, or neither happened.
func (s *service) Register(ctx context.Context, req RegisterApplicantRequest) (ApplicantResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("register applicant requested",
		zap.String("request_id", rid),
		zap.String("training_id", req.TrainingID),
		zap.String("email", req.Email),
	)

	t, err := s.trainingRepo.FindByID(ctx, req.TrainingID)
	if err != nil {
		s.logger.Warn("register applicant training lookup failed",
			zap.String("training_id", req.TrainingID),
			zap.Error(err),
		)
		return ApplicantResponse{}, mapTrainingLookupError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("register applicant begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ApplicantResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qTrainings := s.trainingRepo.WithTx(tx)

	claimed, err := qTrainings.ClaimSpot(ctx, req.TrainingID)
	if err != nil {
		s.logger.Error("register applicant claim spot failed", zap.Error(err))
		return ApplicantResponse{}, err
	}
	if !claimed {
		s.logger.Warn("register applicant training full",
			zap.String("training_id", req.TrainingID),
			zap.Int("capacity", t.Capacity),
		)
		return ApplicantResponse{}, applicanterrors.ErrTrainingFull
	}

	nextVal, err := s.counter.GetNextValue(ctx, "registration_code")
	if err != nil {
		s.logger.Error("register applicant generate code failed", zap.Error(err))
		return ApplicantResponse{}, err
	}

	a := &Applicant{
		ID:               uuid.New(),
		TrainingID:       uuid.MustParse(req.TrainingID),
		RegistrationCode: fmt.Sprintf("REG-%06d", nextVal),
		FullName:         req.FullName,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		Status:           StatusPending,
		RegisteredAt:     time.Now().UTC(),
	}

	if err := qtx.Create(ctx, a); err != nil {
		s.logger.Error("register applicant persist failed", zap.Error(err))
		return ApplicantResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.ApplicantRegisteredEvent{
			EventType:   "applicant_registered",
			RequestID:   rid,
			ApplicantID: a.ID.String(),
			TrainingID:  a.TrainingID.String(),
			Email:       a.Email,
			OccurredAt:  time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return ApplicantResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "applicant",
			AggregateID:   a.ID.String(),
			EventType:     event.EventType,
			Topic:         events.ApplicantRegisteredTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("register applicant outbox persist failed",
				zap.String("applicant_id", a.ID.String()),
				zap.Error(err),
			)
			return ApplicantResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return ApplicantResponse{}, err
	}

	s.invalidateOpenTrainingsCache(ctx)

	s.logger.Info("register applicant success",
		zap.String("request_id", rid),
		zap.String("applicant_id", a.ID.String()),
		zap.String("registration_code", a.RegistrationCode),
	)

	a.Training = t
	return mapToResponse(*a), nil
}

func (s *service) GetAll(ctx context.Context, f Filter) ([]ApplicantResponse, error) {
	s.logger.Debug("get all applicants requested",
		zap.String("status", f.Status),
		zap.String("email", f.Email),
	)
	applicants, err := s.repo.FindAll(ctx, f)
	if err != nil {
		s.logger.Error("get all applicants failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(applicants), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ApplicantResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ApplicantResponse{}, applicanterrors.ErrInvalidApplicantID
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get applicant by id failed", zap.String("applicant_id", id), zap.Error(err))
		return ApplicantResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*a), nil
}

// Update lets an admin edit contact fields and move the status. Any status may
// follow any other status.
func (s *service) Update(ctx context.Context, id string, req UpdateApplicantRequest) (ApplicantResponse, error) {
	s.logger.Debug("update applicant requested",
		zap.String("applicant_id", id),
		zap.String("target_status", req.Status),
	)

	if _, err := uuid.Parse(id); err != nil {
		return ApplicantResponse{}, applicanterrors.ErrInvalidApplicantID
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update applicant fetch existing failed", zap.Error(err))
		return ApplicantResponse{}, mapRepositoryError(err)
	}

	a.FullName = req.FullName
	a.Email = req.Email
	a.Phone = req.Phone
	a.Address = req.Address
	if req.Status != "" {
		if !ValidStatus(req.Status) {
			return ApplicantResponse{}, applicanterrors.ErrInvalidStatus
		}
		a.Status = req.Status
	}

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("update applicant persist failed", zap.Error(err))
		return ApplicantResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update applicant success",
		zap.String("applicant_id", id),
		zap.String("status", a.Status),
	)

	return mapToResponse(*a), nil
}

// Delete removes the applicant and releases its spot in one transaction.
func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete applicant requested", zap.String("applicant_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return applicanterrors.ErrInvalidApplicantID
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete applicant begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qTrainings := s.trainingRepo.WithTx(tx)

	deleted, err := qtx.Delete(ctx, id)
	if err != nil {
		s.logger.Error("delete applicant failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	// Baris sudah hilang berarti delete lain menang duluan; spot-nya
	// sudah dilepas di sana, jangan dilepas dua kali.
	if deleted {
		if err := qTrainings.ReleaseSpot(ctx, a.TrainingID.String()); err != nil {
			s.logger.Error("delete applicant release spot failed", zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete applicant commit failed", zap.Error(err))
		return err
	}

	s.invalidateOpenTrainingsCache(ctx)

	s.logger.Info("delete applicant success", zap.String("applicant_id", id))
	return nil
}

// LookupByEmail is the public self-service status check. The email is trusted
// as-is; see the rate limit on the route for the only guard applied.
func (s *service) LookupByEmail(ctx context.Context, email, trainingID string) ([]ApplicantResponse, error) {
	s.logger.Debug("status lookup requested", zap.String("email", email))

	applicants, err := s.repo.FindByEmail(ctx, email, trainingID)
	if err != nil {
		s.logger.Error("status lookup failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(applicants), nil
}

func (s *service) invalidateOpenTrainingsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, training.OpenTrainingsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate open trainings cache",
			zap.Error(err),
			zap.String("key", training.OpenTrainingsCacheKey),
		)
	}
}

func mapToResponse(a Applicant) ApplicantResponse {
	resp := ApplicantResponse{
		ID:               a.ID.String(),
		TrainingID:       a.TrainingID.String(),
		RegistrationCode: a.RegistrationCode,
		FullName:         a.FullName,
		Email:            a.Email,
		Phone:            a.Phone,
		Address:          a.Address,
		Status:           a.Status,
		RegisteredAt:     a.RegisteredAt.Format(time.RFC3339),
	}
	if a.Training != nil {
		t := training.MapToResponse(*a.Training)
		resp.Training = &t
	}
	return resp
}

func mapToListResponse(applicants []Applicant) []ApplicantResponse {
	resp := make([]ApplicantResponse, len(applicants))
	for i, a := range applicants {
		resp[i] = mapToResponse(a)
	}
	return resp
}

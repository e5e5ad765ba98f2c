package applicant_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-trainreg/internal/applicant"
	applicanterrors "go-trainreg/internal/applicant/errors"
	"go-trainreg/internal/events"
	"go-trainreg/internal/messaging/kafka"
	"go-trainreg/internal/training"
	trainingerrors "go-trainreg/internal/training/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeApplicantRepo struct {
	createFn      func(ctx context.Context, a *applicant.Applicant) error
	findAllFn     func(ctx context.Context, f applicant.Filter) ([]applicant.Applicant, error)
	findByIDFn    func(ctx context.Context, id string) (*applicant.Applicant, error)
	findByEmailFn func(ctx context.Context, email, trainingID string) ([]applicant.Applicant, error)
	updateFn      func(ctx context.Context, a *applicant.Applicant) error
	deleteFn      func(ctx context.Context, id string) (bool, error)
}

func (f *fakeApplicantRepo) WithTx(tx *sql.Tx) applicant.Repository { return f }
func (f *fakeApplicantRepo) Create(ctx context.Context, a *applicant.Applicant) error {
	return f.createFn(ctx, a)
}
func (f *fakeApplicantRepo) FindAll(ctx context.Context, fl applicant.Filter) ([]applicant.Applicant, error) {
	return f.findAllFn(ctx, fl)
}
func (f *fakeApplicantRepo) FindByID(ctx context.Context, id string) (*applicant.Applicant, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeApplicantRepo) FindByEmail(ctx context.Context, email, trainingID string) ([]applicant.Applicant, error) {
	return f.findByEmailFn(ctx, email, trainingID)
}
func (f *fakeApplicantRepo) Update(ctx context.Context, a *applicant.Applicant) error {
	return f.updateFn(ctx, a)
}
func (f *fakeApplicantRepo) Delete(ctx context.Context, id string) (bool, error) {
	return f.deleteFn(ctx, id)
}

type fakeTrainingRepo struct {
	findByIDFn    func(ctx context.Context, id string) (*training.Training, error)
	claimSpotFn   func(ctx context.Context, id string) (bool, error)
	releaseSpotFn func(ctx context.Context, id string) error
}

func (f *fakeTrainingRepo) WithTx(tx *sql.Tx) training.Repository                  { return f }
func (f *fakeTrainingRepo) Create(ctx context.Context, t *training.Training) error { return nil }
func (f *fakeTrainingRepo) FindAll(ctx context.Context) ([]training.Training, error) {
	return nil, nil
}
func (f *fakeTrainingRepo) FindByID(ctx context.Context, id string) (*training.Training, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeTrainingRepo) FindUpcoming(ctx context.Context, now time.Time) ([]training.Training, error) {
	return nil, nil
}
func (f *fakeTrainingRepo) FindOpen(ctx context.Context, now time.Time, limit int) ([]training.Training, error) {
	return nil, nil
}
func (f *fakeTrainingRepo) Update(ctx context.Context, t *training.Training) error { return nil }
func (f *fakeTrainingRepo) Delete(ctx context.Context, id string) error            { return nil }
func (f *fakeTrainingRepo) ClaimSpot(ctx context.Context, id string) (bool, error) {
	return f.claimSpotFn(ctx, id)
}
func (f *fakeTrainingRepo) ReleaseSpot(ctx context.Context, id string) error {
	return f.releaseSpotFn(ctx, id)
}

type fakeCounterRepo struct {
	next int64
	err  error
}

func (f *fakeCounterRepo) GetNextValue(ctx context.Context, counterName string) (int64, error) {
	return f.next, f.err
}

type fakeOutboxRepo struct {
	created []kafka.OutboxEvent
	err     error
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func openTraining(capacity, enrolled int) *training.Training {
	return &training.Training{
		ID:            uuid.New(),
		Title:         "Intro to Go",
		StartDate:     time.Now().Add(48 * time.Hour),
		EndDate:       time.Now().Add(72 * time.Hour),
		Capacity:      capacity,
		EnrolledCount: enrolled,
		Status:        training.StatusActive,
	}
}

func TestApplicantService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success - claims spot and writes outbox event", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		rdb, redisMock := redismock.NewClientMock()

		tr := openTraining(10, 3)
		var created *applicant.Applicant

		repo := &fakeApplicantRepo{
			createFn: func(ctx context.Context, a *applicant.Applicant) error {
				created = a
				return nil
			},
		}
		trainingRepo := &fakeTrainingRepo{
			findByIDFn: func(ctx context.Context, id string) (*training.Training, error) {
				return tr, nil
			},
			claimSpotFn: func(ctx context.Context, id string) (bool, error) {
				return true, nil
			},
		}
		counterRepo := &fakeCounterRepo{next: 123}
		outboxRepo := &fakeOutboxRepo{}

		expectTx(t, sqlMock, true)
		redisMock.ExpectDel(training.OpenTrainingsCacheKey).SetVal(1)

		svc := applicant.NewServiceWithOutbox(db, repo, trainingRepo, counterRepo, outboxRepo, rdb)

		resp, err := svc.Register(ctx, applicant.RegisterApplicantRequest{
			TrainingID: tr.ID.String(),
			FullName:   "Budi Santoso",
			Email:      "budi@example.com",
			Phone:      "0812000111",
			Address:    "Jl. Merdeka 1",
		})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, applicant.StatusPending, created.Status)
		assert.Equal(t, "REG-000123", created.RegistrationCode)
		assert.Equal(t, tr.ID, created.TrainingID)
		assert.False(t, created.RegisteredAt.IsZero())

		assert.Equal(t, "REG-000123", resp.RegistrationCode)
		assert.Equal(t, applicant.StatusPending, resp.Status)
		require.NotNil(t, resp.Training)
		assert.Equal(t, tr.Title, resp.Training.Title)

		require.Len(t, outboxRepo.created, 1)
		event := outboxRepo.created[0]
		assert.Equal(t, events.ApplicantRegisteredTopic, event.Topic)
		assert.Equal(t, kafka.OutboxStatusPending, event.Status)

		var payload events.ApplicantRegisteredEvent
		require.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.Equal(t, "applicant_registered", payload.EventType)
		assert.Equal(t, created.ID.String(), payload.ApplicantID)

		assert.NoError(t, sqlMock.ExpectationsWereMet())
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("full training - no applicant row survives", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		tr := openTraining(5, 5)
		repo := &fakeApplicantRepo{
			createFn: func(ctx context.Context, a *applicant.Applicant) error {
				t.Fatal("create must not be called when the claim fails")
				return nil
			},
		}
		trainingRepo := &fakeTrainingRepo{
			findByIDFn: func(ctx context.Context, id string) (*training.Training, error) {
				return tr, nil
			},
			claimSpotFn: func(ctx context.Context, id string) (bool, error) {
				return false, nil
			},
		}

		expectTx(t, sqlMock, false)

		svc := applicant.NewServiceWithOutbox(db, repo, trainingRepo, &fakeCounterRepo{}, &fakeOutboxRepo{}, nil)

		_, err = svc.Register(ctx, applicant.RegisterApplicantRequest{
			TrainingID: tr.ID.String(),
			FullName:   "Budi Santoso",
			Email:      "budi@example.com",
			Phone:      "0812000111",
			Address:    "Jl. Merdeka 1",
		})

		assert.ErrorIs(t, err, applicanterrors.ErrTrainingFull)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("training not found", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		trainingRepo := &fakeTrainingRepo{
			findByIDFn: func(ctx context.Context, id string) (*training.Training, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := applicant.NewServiceWithOutbox(db, &fakeApplicantRepo{}, trainingRepo, &fakeCounterRepo{}, &fakeOutboxRepo{}, nil)

		_, err = svc.Register(ctx, applicant.RegisterApplicantRequest{
			TrainingID: uuid.NewString(),
			FullName:   "Budi Santoso",
			Email:      "budi@example.com",
			Phone:      "0812000111",
			Address:    "Jl. Merdeka 1",
		})

		assert.ErrorIs(t, err, trainingerrors.ErrTrainingNotFound)
	})

	t.Run("counter failure rolls the claim back", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		tr := openTraining(10, 0)
		trainingRepo := &fakeTrainingRepo{
			findByIDFn: func(ctx context.Context, id string) (*training.Training, error) {
				return tr, nil
			},
			claimSpotFn: func(ctx context.Context, id string) (bool, error) {
				return true, nil
			},
		}

		expectTx(t, sqlMock, false)

		svc := applicant.NewServiceWithOutbox(db, &fakeApplicantRepo{}, trainingRepo, &fakeCounterRepo{err: errors.New("counter down")}, &fakeOutboxRepo{}, nil)

		_, err = svc.Register(ctx, applicant.RegisterApplicantRequest{
			TrainingID: tr.ID.String(),
			FullName:   "Budi Santoso",
			Email:      "budi@example.com",
			Phone:      "0812000111",
			Address:    "Jl. Merdeka 1",
		})

		assert.Error(t, err)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestApplicantService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success - releases the claimed spot", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		rdb, redisMock := redismock.NewClientMock()

		trainingID := uuid.New()
		applicantID := uuid.New()

		deleted := false
		released := ""

		repo := &fakeApplicantRepo{
			findByIDFn: func(ctx context.Context, id string) (*applicant.Applicant, error) {
				return &applicant.Applicant{ID: applicantID, TrainingID: trainingID}, nil
			},
			deleteFn: func(ctx context.Context, id string) (bool, error) {
				deleted = true
				return true, nil
			},
		}
		trainingRepo := &fakeTrainingRepo{
			releaseSpotFn: func(ctx context.Context, id string) error {
				released = id
				return nil
			},
		}

		expectTx(t, sqlMock, true)
		redisMock.ExpectDel(training.OpenTrainingsCacheKey).SetVal(1)

		svc := applicant.NewService(db, repo, trainingRepo, &fakeCounterRepo{}, rdb)

		err = svc.Delete(ctx, applicantID.String())

		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, trainingID.String(), released)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("row already gone - spot stays untouched", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := &fakeApplicantRepo{
			findByIDFn: func(ctx context.Context, id string) (*applicant.Applicant, error) {
				return &applicant.Applicant{ID: uuid.New(), TrainingID: uuid.New()}, nil
			},
			deleteFn: func(ctx context.Context, id string) (bool, error) {
				return false, nil
			},
		}
		trainingRepo := &fakeTrainingRepo{
			releaseSpotFn: func(ctx context.Context, id string) error {
				t.Fatal("spot must not be released when the delete removed nothing")
				return nil
			},
		}

		expectTx(t, sqlMock, true)

		svc := applicant.NewService(db, repo, trainingRepo, &fakeCounterRepo{}, nil)

		err = svc.Delete(ctx, uuid.NewString())

		require.NoError(t, err)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid id", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		svc := applicant.NewService(db, &fakeApplicantRepo{}, &fakeTrainingRepo{}, &fakeCounterRepo{}, nil)

		err = svc.Delete(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, applicanterrors.ErrInvalidApplicantID)
	})

	t.Run("not found", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := &fakeApplicantRepo{
			findByIDFn: func(ctx context.Context, id string) (*applicant.Applicant, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := applicant.NewService(db, repo, &fakeTrainingRepo{}, &fakeCounterRepo{}, nil)

		err = svc.Delete(ctx, uuid.NewString())
		assert.ErrorIs(t, err, applicanterrors.ErrApplicantNotFound)
	})
}

func TestApplicantService_Update(t *testing.T) {
	ctx := context.Background()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	applicantID := uuid.New()

	t.Run("status moves freely between lifecycle values", func(t *testing.T) {
		var saved *applicant.Applicant
		repo := &fakeApplicantRepo{
			findByIDFn: func(ctx context.Context, id string) (*applicant.Applicant, error) {
				return &applicant.Applicant{
					ID:         applicantID,
					TrainingID: uuid.New(),
					Status:     applicant.StatusCompleted,
				}, nil
			},
			updateFn: func(ctx context.Context, a *applicant.Applicant) error {
				saved = a
				return nil
			},
		}

		svc := applicant.NewService(db, repo, &fakeTrainingRepo{}, &fakeCounterRepo{}, nil)

		resp, err := svc.Update(ctx, applicantID.String(), applicant.UpdateApplicantRequest{
			FullName: "Budi Santoso",
			Email:    "budi@example.com",
			Phone:    "0812000111",
			Address:  "Jl. Merdeka 1",
			Status:   applicant.StatusPending,
		})

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, applicant.StatusPending, saved.Status)
		assert.Equal(t, applicant.StatusPending, resp.Status)
	})

	t.Run("empty status keeps the current one", func(t *testing.T) {
		var saved *applicant.Applicant
		repo := &fakeApplicantRepo{
			findByIDFn: func(ctx context.Context, id string) (*applicant.Applicant, error) {
				return &applicant.Applicant{
					ID:         applicantID,
					TrainingID: uuid.New(),
					Status:     applicant.StatusApproved,
				}, nil
			},
			updateFn: func(ctx context.Context, a *applicant.Applicant) error {
				saved = a
				return nil
			},
		}

		svc := applicant.NewService(db, repo, &fakeTrainingRepo{}, &fakeCounterRepo{}, nil)

		_, err := svc.Update(ctx, applicantID.String(), applicant.UpdateApplicantRequest{
			FullName: "Budi Santoso",
			Email:    "budi@example.com",
			Phone:    "0812000111",
			Address:  "Jl. Merdeka 1",
		})

		require.NoError(t, err)
		assert.Equal(t, applicant.StatusApproved, saved.Status)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		repo := &fakeApplicantRepo{
			findByIDFn: func(ctx context.Context, id string) (*applicant.Applicant, error) {
				return &applicant.Applicant{ID: applicantID, TrainingID: uuid.New()}, nil
			},
		}

		svc := applicant.NewService(db, repo, &fakeTrainingRepo{}, &fakeCounterRepo{}, nil)

		_, err := svc.Update(ctx, applicantID.String(), applicant.UpdateApplicantRequest{
			FullName: "Budi Santoso",
			Email:    "budi@example.com",
			Phone:    "0812000111",
			Address:  "Jl. Merdeka 1",
			Status:   "archived",
		})

		assert.ErrorIs(t, err, applicanterrors.ErrInvalidStatus)
	})
}

func TestApplicantService_LookupByEmail(t *testing.T) {
	ctx := context.Background()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Run("returns all registrations for the email", func(t *testing.T) {
		repo := &fakeApplicantRepo{
			findByEmailFn: func(ctx context.Context, email, trainingID string) ([]applicant.Applicant, error) {
				assert.Equal(t, "budi@example.com", email)
				return []applicant.Applicant{
					{ID: uuid.New(), TrainingID: uuid.New(), Status: applicant.StatusPending},
					{ID: uuid.New(), TrainingID: uuid.New(), Status: applicant.StatusApproved},
				}, nil
			},
		}

		svc := applicant.NewService(db, repo, &fakeTrainingRepo{}, &fakeCounterRepo{}, nil)

		resp, err := svc.LookupByEmail(ctx, "budi@example.com", "")
		require.NoError(t, err)
		assert.Len(t, resp, 2)
	})

	t.Run("unknown email yields empty list", func(t *testing.T) {
		repo := &fakeApplicantRepo{
			findByEmailFn: func(ctx context.Context, email, trainingID string) ([]applicant.Applicant, error) {
				return []applicant.Applicant{}, nil
			},
		}

		svc := applicant.NewService(db, repo, &fakeTrainingRepo{}, &fakeCounterRepo{}, nil)

		resp, err := svc.LookupByEmail(ctx, "nobody@example.com", "")
		require.NoError(t, err)
		assert.Empty(t, resp)
	})
}

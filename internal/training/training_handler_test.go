package training_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-trainreg/internal/shared/apperror"
	"go-trainreg/internal/training"
	trainingerrors "go-trainreg/internal/training/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	createFn  func(ctx context.Context, req training.CreateTrainingRequest) (training.TrainingResponse, error)
	getAllFn  func(ctx context.Context) ([]training.TrainingResponse, error)
	getByIDFn func(ctx context.Context, id string) (training.TrainingResponse, error)
	updateFn  func(ctx context.Context, id string, req training.UpdateTrainingRequest) (training.TrainingResponse, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (f *fakeService) Create(ctx context.Context, req training.CreateTrainingRequest) (training.TrainingResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeService) GetAll(ctx context.Context) ([]training.TrainingResponse, error) {
	return f.getAllFn(ctx)
}
func (f *fakeService) GetByID(ctx context.Context, id string) (training.TrainingResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeService) GetPublicByID(ctx context.Context, id string) (training.TrainingResponse, error) {
	return training.TrainingResponse{}, nil
}
func (f *fakeService) GetUpcoming(ctx context.Context) ([]training.TrainingResponse, error) {
	return nil, nil
}
func (f *fakeService) GetOpenHighlights(ctx context.Context) ([]training.TrainingResponse, error) {
	return nil, nil
}
func (f *fakeService) GetOpenForRegistration(ctx context.Context) ([]training.TrainingResponse, error) {
	return nil, nil
}
func (f *fakeService) Update(ctx context.Context, id string, req training.UpdateTrainingRequest) (training.TrainingResponse, error) {
	return f.updateFn(ctx, id, req)
}
func (f *fakeService) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }

func TestTrainingHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	validBody := training.CreateTrainingRequest{
		Title:       "Intro to Go",
		Description: "Three day workshop",
		StartDate:   "2026-10-01",
		EndDate:     "2026-10-03",
		Location:    "Jakarta",
		Capacity:    25,
		Price:       150000,
	}

	t.Run("created", func(t *testing.T) {
		svc := &fakeService{
			createFn: func(ctx context.Context, req training.CreateTrainingRequest) (training.TrainingResponse, error) {
				return training.TrainingResponse{ID: uuid.NewString(), Title: req.Title}, nil
			},
		}
		handler := training.NewHandler(svc)

		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		r.POST("/trainings", handler.Create)

		body, _ := json.Marshal(validBody)
		req, _ := http.NewRequest(http.MethodPost, "/trainings", bytes.NewBuffer(body))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("zero capacity rejected by binding", func(t *testing.T) {
		handler := training.NewHandler(&fakeService{})

		invalid := validBody
		invalid.Capacity = 0

		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		r.POST("/trainings", handler.Create)

		body, _ := json.Marshal(invalid)
		req, _ := http.NewRequest(http.MethodPost, "/trainings", bytes.NewBuffer(body))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid date range from service", func(t *testing.T) {
		svc := &fakeService{
			createFn: func(ctx context.Context, req training.CreateTrainingRequest) (training.TrainingResponse, error) {
				return training.TrainingResponse{}, trainingerrors.ErrInvalidDateRange
			},
		}
		handler := training.NewHandler(svc)

		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		r.POST("/trainings", handler.Create)

		body, _ := json.Marshal(validBody)
		req, _ := http.NewRequest(http.MethodPost, "/trainings", bytes.NewBuffer(body))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var res map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, false, res["ok"])
	})
}

func TestTrainingHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	items := []training.TrainingResponse{
		{ID: uuid.NewString(), Title: "Intro to Go", Location: "Jakarta", Status: training.StatusActive},
		{ID: uuid.NewString(), Title: "Advanced SQL", Location: "Bandung", Status: training.StatusInactive},
		{ID: uuid.NewString(), Title: "Go Concurrency", Location: "Jakarta", Status: training.StatusActive},
	}

	svc := &fakeService{
		getAllFn: func(ctx context.Context) ([]training.TrainingResponse, error) {
			return items, nil
		},
	}
	handler := training.NewHandler(svc)

	t.Run("keyword filter matches title", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		r.GET("/trainings", handler.GetAll)

		req, _ := http.NewRequest(http.MethodGet, "/trainings?q=go", nil)
		r.ServeHTTP(w, req)

		var res map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Len(t, res["data"], 2)
	})

	t.Run("status filter", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		r.GET("/trainings", handler.GetAll)

		req, _ := http.NewRequest(http.MethodGet, "/trainings?status=inactive", nil)
		r.ServeHTTP(w, req)

		var res map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Len(t, res["data"], 1)
	})
}

func TestTrainingHandler_GetById(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing training returns 404", func(t *testing.T) {
		svc := &fakeService{
			getByIDFn: func(ctx context.Context, id string) (training.TrainingResponse, error) {
				return training.TrainingResponse{}, trainingerrors.ErrTrainingNotFound
			},
		}
		handler := training.NewHandler(svc)

		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		r.GET("/trainings/:id", handler.GetById)

		req, _ := http.NewRequest(http.MethodGet, "/trainings/"+uuid.NewString(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTrainingHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		deleteFn: func(ctx context.Context, id string) error { return nil },
	}
	handler := training.NewHandler(svc)

	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.DELETE("/trainings/:id", handler.Delete)

	req, _ := http.NewRequest(http.MethodDelete, "/trainings/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

package create_blocked_slot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/service/schedule"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/schedule/models"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateBlocked(ctx context.Context, req *models.CreateBlockedRequest) (*models.BlockedSlotResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlockedSlotResponse), args.Error(1)
}

func TestHandler_Create(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	svc := &mockService{}
	svc.On("CreateBlocked", mock.Anything, mock.MatchedBy(func(req *models.CreateBlockedRequest) bool {
		return req.IsFullDay && req.Date.Location() == loc && req.Date.Day() == 4
	})).Return(&models.BlockedSlotResponse{ID: 2, Date: "2026-05-04", IsFullDay: true}, nil)

	w := httptest.NewRecorder()
	NewHandler(svc, loc, logger.Nop()).Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/blocked-slots",
		strings.NewReader(`{"date":"2026-05-04","isFullDay":true,"reason":"feriado"}`)))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":2`)
}

func TestHandler_Invalid(t *testing.T) {
	svc := &mockService{}
	svc.On("CreateBlocked", mock.Anything, mock.Anything).Return(nil, schedule.ErrInvalidInput)
	h := NewHandler(svc, time.UTC, logger.Nop())

	for _, body := range []string{`{"date":"2026-05-04"}`, `{"date":"tomorrow"}`, `[]`} {
		w := httptest.NewRecorder()
		h.Handle(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

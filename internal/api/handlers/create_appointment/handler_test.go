package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createAppointment.Response), args.Error(1)
}

const body = `{"clientName":"Maria","clientPhone":"11987654321","professional":"ana","services":["Corte"],"date":"2026-05-04","startTime":"10:00"}`

func TestHandler_Created(t *testing.T) {
	uc := &mockUseCase{}
	start := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createAppointment.Request) bool {
		return req.ProfessionalUsername == "ana" &&
			req.StartTime.String() == "10:00" &&
			req.Date.Equal(time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)) &&
			req.Source == createAppointment.SourceManual
	})).Return(&createAppointment.Response{
		Appointment: domain.Appointment{
			ID:                   17,
			ClientName:           "Maria",
			ClientPhone:          "11987654321",
			ProfessionalUsername: "ana",
			Services:             []domain.Service{{Name: "Corte", Value: 50, DurationMinutes: 30}},
			DateTime:             start,
			EndTime:              start.Add(30 * time.Minute),
			Status:               domain.StatusScheduled,
		},
	}, nil)

	w := httptest.NewRecorder()
	NewHandler(uc, time.UTC, logger.Nop()).Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(17), resp["id"])
	assert.Equal(t, false, resp["overridden"])
	uc.AssertExpectations(t)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "conflict", err: createAppointment.ErrSlotNotAvailable, want: http.StatusConflict},
		{name: "professional", err: createAppointment.ErrProfessionalNotFound, want: http.StatusNotFound},
		{name: "service", err: createAppointment.ErrServiceNotFound, want: http.StatusNotFound},
		{name: "day off", err: createAppointment.ErrProfessionalDayOff, want: http.StatusUnprocessableEntity},
		{name: "off grid", err: createAppointment.ErrInvalidTime, want: http.StatusBadRequest},
		{name: "internal", err: createAppointment.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			NewHandler(uc, time.UTC, logger.Nop()).Handle(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandler_BadRequest(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, time.UTC, logger.Nop())

	for _, b := range []string{`{`, `{"date":"04/05/2026","startTime":"10:00"}`, `{"date":"2026-05-04","startTime":"25:00"}`} {
		w := httptest.NewRecorder()
		h.Handle(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(b)))
		assert.Equal(t, http.StatusBadRequest, w.Code, b)
	}
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

package reschedule_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	rescheduleAppointment "github.com/m04kA/SMC-SalonScheduler/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *rescheduleAppointment.Request) (*rescheduleAppointment.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rescheduleAppointment.Response), args.Error(1)
}

func serve(h *Handler, id, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/appointments/{id}/reschedule", h.Handle).Methods(http.MethodPatch)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+id+"/reschedule", strings.NewReader(body)))
	return w
}

func TestHandler_MovesWithPayment(t *testing.T) {
	uc := &mockUseCase{}
	start := time.Date(2026, 5, 1, 14, 0, 0, 0, time.UTC)
	paid := domain.PaymentPaid
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *rescheduleAppointment.Request) bool {
		return req.AppointmentID == 5 &&
			req.OffsetMinutes != nil && *req.OffsetMinutes == 845 &&
			req.StartTime == nil &&
			req.PaymentStatus != nil && *req.PaymentStatus == domain.PaymentPaid
	})).Return(&rescheduleAppointment.Response{
		Appointment: domain.Appointment{
			ID:            5,
			DateTime:      start,
			EndTime:       start.Add(30 * time.Minute),
			Status:        domain.StatusCompleted,
			PaymentStatus: &paid,
		},
		Completed: true,
	}, nil)

	w := serve(NewHandler(uc, time.UTC, logger.Nop()), "5", `{"targetDate":"2026-05-01","offsetMinutes":845,"paymentStatus":"paid"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"completed":true`)
	assert.Contains(t, w.Body.String(), `"status":"completed"`)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: rescheduleAppointment.ErrAppointmentNotFound, want: http.StatusNotFound},
		{name: "conflict", err: rescheduleAppointment.ErrSlotConflict, want: http.StatusConflict},
		{name: "completion required", err: rescheduleAppointment.ErrCompletionRequired, want: http.StatusUnprocessableEntity},
		{name: "terminal", err: rescheduleAppointment.ErrInvalidTransition, want: http.StatusUnprocessableEntity},
		{name: "input", err: rescheduleAppointment.ErrInvalidInput, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(NewHandler(uc, time.UTC, logger.Nop()), "5", `{"targetDate":"2026-05-06","startTime":"10:00"}`)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandler_InvalidParams(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, time.UTC, logger.Nop())

	assert.Equal(t, http.StatusBadRequest, serve(h, "abc", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "5", `{"targetDate":"2026-05-06","startTime":"10:00","paymentStatus":"maybe"}`).Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

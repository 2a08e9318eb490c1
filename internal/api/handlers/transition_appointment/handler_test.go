package transition_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SalonScheduler/internal/service/appointments"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Transition(ctx context.Context, id int64, req *models.TransitionRequest) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppointmentResponse), args.Error(1)
}

func serve(h *Handler, target, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/appointments/{id}/{action:confirm|delay|complete|cancel}", h.Handle).Methods(http.MethodPatch)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body)))
	return w
}

func TestHandler_ConfirmWithoutBody(t *testing.T) {
	svc := &mockService{}
	svc.On("Transition", mock.Anything, int64(3), &models.TransitionRequest{Action: models.ActionConfirm}).
		Return(&models.AppointmentResponse{ID: 3, Status: "confirmed"}, nil)

	w := serve(NewHandler(svc, logger.Nop()), "/api/v1/appointments/3/confirm", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"confirmed"`)
	svc.AssertExpectations(t)
}

func TestHandler_CompletePassesPayment(t *testing.T) {
	svc := &mockService{}
	svc.On("Transition", mock.Anything, int64(3), mock.MatchedBy(func(req *models.TransitionRequest) bool {
		return req.Action == models.ActionComplete && req.PaymentStatus != nil && *req.PaymentStatus == "pending"
	})).Return(&models.AppointmentResponse{ID: 3, Status: "completed"}, nil)

	w := serve(NewHandler(svc, logger.Nop()), "/api/v1/appointments/3/complete", `{"paymentStatus":"pending"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: appointments.ErrAppointmentNotFound, want: http.StatusNotFound},
		{err: appointments.ErrInvalidTransition, want: http.StatusUnprocessableEntity},
		{err: appointments.ErrPaymentRequired, want: http.StatusBadRequest},
		{err: appointments.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		svc := &mockService{}
		svc.On("Transition", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

		w := serve(NewHandler(svc, logger.Nop()), "/api/v1/appointments/3/cancel", "")
		assert.Equal(t, tt.want, w.Code, tt.err.Error())
	}
}

func TestHandler_UnknownActionNotRouted(t *testing.T) {
	svc := &mockService{}
	w := serve(NewHandler(svc, logger.Nop()), "/api/v1/appointments/3/explode", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

package approve_request

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	appointmentModels "github.com/m04kA/SMC-SalonScheduler/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/requests"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/requests/models"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Approve(ctx context.Context, id int64, req *models.ApproveRequest) (*appointmentModels.AppointmentResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appointmentModels.AppointmentResponse), args.Error(1)
}

func serve(h *Handler, id, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/requests/{id}/approve", h.Handle).Methods(http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/requests/"+id+"/approve", strings.NewReader(body)))
	return w
}

func TestHandler_Approve(t *testing.T) {
	svc := &mockService{}
	svc.On("Approve", mock.Anything, int64(11), &models.ApproveRequest{}).
		Return(&appointmentModels.AppointmentResponse{ID: 11, Status: "scheduled"}, nil).Once()
	svc.On("Approve", mock.Anything, int64(12), &models.ApproveRequest{Force: true}).
		Return(&appointmentModels.AppointmentResponse{ID: 12, Status: "scheduled"}, nil).Once()

	h := NewHandler(svc, logger.Nop())
	assert.Equal(t, http.StatusCreated, serve(h, "11", "").Code)
	assert.Equal(t, http.StatusCreated, serve(h, "12", `{"force":true}`).Code)
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	svc := &mockService{}
	svc.On("Approve", mock.Anything, int64(1), mock.Anything).Return(nil, requests.ErrRequestNotFound)
	svc.On("Approve", mock.Anything, int64(2), mock.Anything).Return(nil, requests.ErrSlotNotAvailable)
	h := NewHandler(svc, logger.Nop())

	assert.Equal(t, http.StatusNotFound, serve(h, "1", "").Code)
	assert.Equal(t, http.StatusConflict, serve(h, "2", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "x", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "3", `{"force":`).Code)
}

package attach_payment_proof

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/service/appointments"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) AttachPaymentProof(ctx context.Context, id int64, image []byte, contentType string) (*models.PaymentProofResponse, error) {
	args := m.Called(ctx, id, image, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentProofResponse), args.Error(1)
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/appointments/{id}/payment-proof", h.Handle).Methods(http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_RawBody(t *testing.T) {
	svc := &mockService{}
	svc.On("AttachPaymentProof", mock.Anything, int64(8), []byte("png-bytes"), "image/png").
		Return(&models.PaymentProofResponse{ExtractedValue: 80, TotalValue: 80, Covered: true}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/8/payment-proof", bytes.NewReader([]byte("png-bytes")))
	req.Header.Set("Content-Type", "image/png")

	w := serve(NewHandler(svc, logger.Nop()), req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"covered":true`)
}

func TestHandler_Multipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(formField, "proof.jpg")
	require.NoError(t, err)
	_, _ = part.Write([]byte("jpg-bytes"))
	require.NoError(t, mw.Close())

	svc := &mockService{}
	svc.On("AttachPaymentProof", mock.Anything, int64(8), []byte("jpg-bytes"), mock.Anything).
		Return(&models.PaymentProofResponse{ExtractedValue: 10, TotalValue: 80}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/8/payment-proof", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := serve(NewHandler(svc, logger.Nop()), req)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: appointments.ErrNotRecognized, want: http.StatusUnprocessableEntity},
		{err: appointments.ErrInferenceUnavailable, want: http.StatusServiceUnavailable},
		{err: appointments.ErrAppointmentNotFound, want: http.StatusNotFound},
	}

	for _, tt := range tests {
		svc := &mockService{}
		svc.On("AttachPaymentProof", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/8/payment-proof", bytes.NewReader([]byte("x")))
		assert.Equal(t, tt.want, serve(NewHandler(svc, logger.Nop()), req).Code)
	}

	empty := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/8/payment-proof", nil)
	assert.Equal(t, http.StatusBadRequest, serve(NewHandler(&mockService{}, logger.Nop()), empty).Code)
}

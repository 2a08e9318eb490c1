package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент внешнего сервиса распознавания (разбор текста, OCR чеков)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ParseAppointment разбирает текст на естественном языке в данные записи
func (c *Client) ParseAppointment(ctx context.Context, text string) (*ParsedAppointment, error) {
	body, err := json.Marshal(parseRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	var parsed ParsedAppointment
	if err := c.post(ctx, "/v1/appointments/parse", "application/json", body, &parsed); err != nil {
		return nil, err
	}

	c.log.Info("Inference: parsed appointment for client=%q, services=%d", parsed.ClientName, len(parsed.Services))
	return &parsed, nil
}

// ExtractPaymentValue распознает сумму на изображении подтверждения оплаты
func (c *Client) ExtractPaymentValue(ctx context.Context, image []byte, contentType string) (*PaymentValue, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInternal)
	}
	if contentType == "" {
		contentType = http.DetectContentType(image)
	}

	var value PaymentValue
	if err := c.post(ctx, "/v1/payments/extract", contentType, image, &value); err != nil {
		return nil, err
	}

	c.log.Info("Inference: extracted payment value=%.2f", value.Value)
	return &value, nil
}

func (c *Client) post(ctx context.Context, path, contentType string, body []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Inference: request %s failed: %v", path, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusUnprocessableEntity:
		var e ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("%w: %s", ErrNotRecognized, e.Message)
	case resp.StatusCode >= http.StatusInternalServerError:
		respBody, _ := io.ReadAll(resp.Body)
		c.log.Error("Inference: %s returned %d: %s", path, resp.StatusCode, string(respBody))
		return fmt.Errorf("%w: status code %d", ErrServiceUnavailable, resp.StatusCode)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

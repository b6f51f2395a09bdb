package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"recordkeeper/internal/app/client/config"
)

// Record is one record as the server renders it.
type Record map[string]any

// FieldError is one entry of a problem response's errors list.
type FieldError struct {
	Message  string `json:"message"`
	Location string `json:"location"`
	Value    any    `json:"value,omitempty"`
}

// APIError is a problem response (application/problem+json) from the server.
type APIError struct {
	Status int          `json:"status"`
	Title  string       `json:"title"`
	Detail string       `json:"detail"`
	Errors []FieldError `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("ошибка сервера (%d): %s", e.Status, e.Detail)
	if e.Detail == "" {
		msg = fmt.Sprintf("ошибка сервера (%d): %s", e.Status, e.Title)
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, strings.TrimPrefix(fe.Location, "body.")+": "+fe.Message)
	}
	if len(parts) > 0 {
		msg += " [" + strings.Join(parts, "; ") + "]"
	}
	return msg
}

type HTTPClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *HTTPClient {
	client := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &HTTPClient{
		client:    client,
		log:       log,
		baseURL:   strings.TrimSuffix(cfg.BaseURL(), "/"),
		userAgent: "Recordkeeper-Client/1.0",
	}
}

// HealthCheck проверяет доступность сервера
func (h *HTTPClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}
	return h.parseResponse(resp, nil)
}

func (h *HTTPClient) List(ctx context.Context, kind string) ([]Record, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, recordsPath(kind), nil)
	if err != nil {
		return nil, err
	}

	var records []Record
	if err := h.parseResponse(resp, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (h *HTTPClient) Get(ctx context.Context, kind string, id int64) (Record, error) {
	return h.one(ctx, http.MethodGet, fmt.Sprintf("%s/%d", recordsPath(kind), id), nil)
}

func (h *HTTPClient) Latest(ctx context.Context, kind string) (Record, error) {
	return h.one(ctx, http.MethodGet, recordsPath(kind)+"/latest", nil)
}

func (h *HTTPClient) Create(ctx context.Context, kind string, body json.RawMessage) (Record, error) {
	return h.one(ctx, http.MethodPost, recordsPath(kind), body)
}

func (h *HTTPClient) Update(ctx context.Context, kind string, id int64, body json.RawMessage) (Record, error) {
	return h.one(ctx, http.MethodPut, fmt.Sprintf("%s/%d", recordsPath(kind), id), body)
}

func (h *HTTPClient) Delete(ctx context.Context, kind string, id int64) error {
	resp, err := h.doRequest(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", recordsPath(kind), id), nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

func recordsPath(kind string) string {
	return "/api/v1/" + kind
}

func (h *HTTPClient) one(ctx context.Context, method, path string, body json.RawMessage) (Record, error) {
	resp, err := h.doRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := h.parseResponse(resp, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (h *HTTPClient) doRequest(ctx context.Context, method, path string, body json.RawMessage) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		if !json.Valid(body) {
			return nil, fmt.Errorf("тело запроса не является корректным JSON")
		}
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	// Добавляем заголовки
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	h.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return resp, nil
}

func (h *HTTPClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	h.log.Debug("Получен ответ",
		"status", resp.StatusCode,
		"request_id", resp.Header.Get("X-Request-ID"),
		"body", string(body),
	)

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Status == 0 {
			apiErr.Status = resp.StatusCode
		}
		return apiErr
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}

	return nil
}

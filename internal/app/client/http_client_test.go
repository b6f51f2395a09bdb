package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"recordkeeper/internal/app/client/config"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newApp(t *testing.T, handler http.HandlerFunc) *App {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		ServerAddress: strings.TrimPrefix(srv.URL, "http://"),
		Timeout:       time.Second,
	}
	app, err := New(cfg, discard)
	require.NoError(t, err)
	return app
}

func TestApp_ListRecords(t *testing.T) {
	app := newApp(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/books", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":1,"title":"Dune"},{"id":2,"title":"Emma"}]`))
	})

	records, err := app.ListRecords(context.Background(), "books")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Emma", records[1]["title"])
}

func TestApp_CreateRecord(t *testing.T) {
	app := newApp(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/products", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Lamp", body["name"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7,"name":"Lamp","description":"","price":1999}`))
	})

	rec, err := app.CreateRecord(context.Background(), "products", json.RawMessage(`{"name":"Lamp","description":"","price":1999}`))
	require.NoError(t, err)
	assert.Equal(t, float64(7), rec["id"])
}

func TestApp_UpdateAndDelete(t *testing.T) {
	var calls []string
	app := newApp(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(`{"id":3}`))
	})

	ctx := context.Background()
	_, err := app.UpdateRecord(ctx, "users", 3, json.RawMessage(`{}`))
	require.NoError(t, err)
	require.NoError(t, app.DeleteRecord(ctx, "users", 3))
	_, err = app.LatestRecord(ctx, "users")
	require.NoError(t, err)
	_, err = app.GetRecord(ctx, "users", 3)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"PUT /api/v1/users/3",
		"DELETE /api/v1/users/3",
		"GET /api/v1/users/latest",
		"GET /api/v1/users/3",
	}, calls)
}

func TestApp_ProblemResponses(t *testing.T) {
	app := newApp(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"status":422,"title":"Unprocessable Entity","detail":"validation failed",` +
			`"errors":[{"message":"phone number must start with '+'","location":"body.phone_number","value":"123"}]}`))
	})

	_, err := app.CreateRecord(context.Background(), "users", json.RawMessage(`{"phone_number":"123"}`))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	require.Len(t, apiErr.Errors, 1)
	assert.Equal(t, "body.phone_number", apiErr.Errors[0].Location)
	assert.Contains(t, err.Error(), "phone_number: phone number must start with '+'")
}

func TestApp_RejectsBadInput(t *testing.T) {
	app := newApp(t, func(http.ResponseWriter, *http.Request) {
		t.Error("request must not be sent")
	})
	ctx := context.Background()

	_, err := app.ListRecords(ctx, "cars")
	assert.ErrorContains(t, err, `неизвестный вид записей "cars"`)

	_, err = app.CreateRecord(ctx, "users", json.RawMessage(`{not json`))
	assert.Error(t, err)
}

func TestApp_Ping(t *testing.T) {
	app := newApp(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/health", r.URL.Path)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"UNAVAILABLE"}`))
	})

	var apiErr *APIError
	require.ErrorAs(t, app.Ping(context.Background()), &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
}

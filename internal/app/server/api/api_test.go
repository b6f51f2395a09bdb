package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"

	"recordkeeper/internal/app/server/config"
	"recordkeeper/internal/domain/book"
	"recordkeeper/internal/domain/user"
	"recordkeeper/internal/infrastructure/migration"
	"recordkeeper/internal/infrastructure/storage"
	"recordkeeper/internal/infrastructure/storage/sqlite"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	path := filepath.Join(t.TempDir(), "records.db")
	cfg := &config.Config{DB: config.DB{Driver: config.DriverSQLite, DatabaseURI: path}}
	require.NoError(t, migration.NewMigration(cfg, nil).Up())

	s, err := sqlite.New(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	repos := Repositories{
		Users:    sqlite.NewRepository(s, storage.Users, log),
		Books:    sqlite.NewRepository(s, storage.Books, log),
		Products: sqlite.NewRepository(s, storage.Products, log),
	}

	srv := httptest.NewServer(New(repos, s, log))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string, body any) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestAPI_UserLifecycle(t *testing.T) {
	srv := newServer(t)
	users := srv.URL + "/api/v1/users"

	resp, body := do(t, http.MethodPost, users, map[string]any{
		"first_name": "Ann", "last_name": "Lee", "email": "ann@example.com", "phone_number": "+123", "salary": 10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var ann user.Response
	require.NoError(t, json.Unmarshal(body, &ann))
	assert.NotZero(t, ann.ID)

	// same phone number
	resp, body = do(t, http.MethodPost, users, map[string]any{
		"first_name": "Bo", "last_name": "Ray", "email": "bo@example.com", "phone_number": "+123", "salary": 5,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode, string(body))

	resp, body = do(t, http.MethodGet, users, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []user.Response
	require.NoError(t, json.Unmarshal(body, &all))
	assert.Equal(t, []user.Response{ann}, all)

	resp, body = do(t, http.MethodPut, users+"/"+itoa(ann.ID), map[string]any{
		"first_name": "Ann", "last_name": "Lee", "email": "ann@example.com", "phone_number": "+123", "salary": 20,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var updated user.Response
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, ann.ID, updated.ID)
	assert.Equal(t, 20.0, updated.Salary)

	resp, body = do(t, http.MethodGet, users+"/latest", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, ann.ID, updated.ID)

	resp, body = do(t, http.MethodDelete, users+"/"+itoa(ann.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, body)

	resp, _ = do(t, http.MethodGet, users+"/"+itoa(ann.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, users+"/latest", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_ValidationDetail(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/v1/users", map[string]any{
		"first_name": "Ann", "last_name": "Lee", "email": "not-an-address", "phone_number": "123", "salary": 1,
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, string(body))

	var problem huma.ErrorModel
	require.NoError(t, json.Unmarshal(body, &problem))
	locations := make([]string, 0, len(problem.Errors))
	for _, e := range problem.Errors {
		locations = append(locations, e.Location)
	}
	assert.ElementsMatch(t, []string{"body.email", "body.phone_number"}, locations)

	resp, body = do(t, http.MethodGet, srv.URL+"/api/v1/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestAPI_UpdateUnknownIDIsNotFoundBeforeValidation(t *testing.T) {
	srv := newServer(t)

	validUser := map[string]any{
		"first_name": "Ann", "last_name": "Lee", "email": "ann@example.com", "phone_number": "+123", "salary": 1,
	}
	validBook := map[string]any{"title": "Dune", "author": "Herbert", "page_count": 1}
	validProduct := map[string]any{"name": "Lamp", "description": "", "price": 1}

	tests := []struct {
		name  string
		path  string
		body  map[string]any
		field string
		value any
	}{
		{name: "blank first name", path: "/api/v1/users/42", body: validUser, field: "first_name", value: ""},
		{name: "blank last name", path: "/api/v1/users/42", body: validUser, field: "last_name", value: " "},
		{name: "bad email", path: "/api/v1/users/42", body: validUser, field: "email", value: "nope"},
		{name: "bad phone", path: "/api/v1/users/42", body: validUser, field: "phone_number", value: "123"},
		{name: "negative salary", path: "/api/v1/users/42", body: validUser, field: "salary", value: -1},
		{name: "empty title", path: "/api/v1/books/42", body: validBook, field: "title", value: ""},
		{name: "blank title", path: "/api/v1/books/42", body: validBook, field: "title", value: " "},
		{name: "empty author", path: "/api/v1/books/42", body: validBook, field: "author", value: ""},
		{name: "negative page count", path: "/api/v1/books/42", body: validBook, field: "page_count", value: -1},
		{name: "empty product name", path: "/api/v1/products/42", body: validProduct, field: "name", value: ""},
		{name: "negative price", path: "/api/v1/products/42", body: validProduct, field: "price", value: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := make(map[string]any, len(tt.body))
			for k, v := range tt.body {
				body[k] = v
			}
			body[tt.field] = tt.value

			resp, data := do(t, http.MethodPut, srv.URL+tt.path, body)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode, string(data))
		})
	}
}

func TestAPI_FormatRulesReportedByField(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name     string
		path     string
		body     map[string]any
		location string
		message  string
	}{
		{
			name:     "empty title",
			path:     "/api/v1/books",
			body:     map[string]any{"title": "", "author": "Herbert", "published_date": "1965-08-01", "page_count": 1},
			location: "body.title",
			message:  "must not be blank",
		},
		{
			name:     "negative page count",
			path:     "/api/v1/books",
			body:     map[string]any{"title": "Dune", "author": "Herbert", "published_date": "1965-08-01", "page_count": -1},
			location: "body.page_count",
			message:  "must not be negative",
		},
		{
			name:     "negative salary",
			path:     "/api/v1/users",
			body:     map[string]any{"first_name": "Ann", "last_name": "Lee", "email": "ann@example.com", "phone_number": "+1", "salary": -1},
			location: "body.salary",
			message:  "must not be negative",
		},
		{
			name:     "negative price",
			path:     "/api/v1/products",
			body:     map[string]any{"name": "Lamp", "description": "", "price": -1},
			location: "body.price",
			message:  "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := do(t, http.MethodPost, srv.URL+tt.path, tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, string(data))

			var problem huma.ErrorModel
			require.NoError(t, json.Unmarshal(data, &problem))
			require.Len(t, problem.Errors, 1)
			assert.Equal(t, tt.location, problem.Errors[0].Location)
			assert.Equal(t, tt.message, problem.Errors[0].Message)
		})
	}
}

func TestAPI_LongPhoneNumberAccepted(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, http.MethodPost, srv.URL+"/api/v1/users", map[string]any{
		"first_name": "Ann", "last_name": "Lee", "email": "ann@example.com", "phone_number": "+12345678901234567", "salary": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var ann user.Response
	require.NoError(t, json.Unmarshal(body, &ann))
	assert.Equal(t, "+12345678901234567", ann.PhoneNumber)
}

func TestAPI_Books(t *testing.T) {
	srv := newServer(t)
	books := srv.URL + "/api/v1/books"

	resp, body := do(t, http.MethodPost, books, map[string]any{
		"title": "Dune", "author": "Frank Herbert", "published_date": "1965-08-01", "page_count": 412,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var dune book.Response
	require.NoError(t, json.Unmarshal(body, &dune))

	resp, body = do(t, http.MethodPut, books+"/"+itoa(dune.ID), map[string]any{
		"title": "Dune", "author": "Frank Herbert", "publisher": "Chilton", "page_count": 896,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var updated book.Response
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "1965-08-01", updated.PublishedDate)
	assert.Equal(t, "Chilton", updated.Publisher)
	assert.Equal(t, 896, updated.PageCount)

	resp, body = do(t, http.MethodPost, books, map[string]any{
		"title": "Dune", "author": "Frank Herbert", "published_date": "08/01/1965", "page_count": 412,
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, string(body))
}

func TestAPI_Health(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, http.MethodGet, srv.URL+"/api/v1/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"OK"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestSchemaNamer(t *testing.T) {
	assert.Equal(t, "UserCreateRequest", schemaNamer(reflect.TypeOf(user.CreateRequest{}), ""))
	assert.Equal(t, "BookCreateRequest", schemaNamer(reflect.TypeOf(book.CreateRequest{}), ""))
	assert.Equal(t, "BookResponse", schemaNamer(reflect.TypeOf(&book.Response{}), ""))
	assert.Equal(t, "ErrorModel", schemaNamer(reflect.TypeOf(huma.ErrorModel{}), ""))
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

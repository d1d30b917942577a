package respond

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestData(t *testing.T) {
	rec := httptest.NewRecorder()
	Data(rec, map[string]string{"name": "Pacific Northwest"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Empty(t, env.Error)
	assert.Nil(t, env.Count)
}

func TestList(t *testing.T) {
	rec := httptest.NewRecorder()
	List(rec, []string{"a", "b"}, 2)

	env := decode(t, rec)
	assert.True(t, env.Success)
	require.NotNil(t, env.Count)
	assert.Equal(t, 2, *env.Count)
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]string{"id": "x"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decode(t, rec).Success)
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, []FieldError{{Field: "name", Message: "name is required"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "validation failed", env.Error)
	require.Len(t, env.Details, 1)
	assert.Equal(t, "name", env.Details[0].Field)
}

func TestNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, "area not found")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "area not found", decode(t, rec).Error)
}

// Internal error detail stays in the log; the client sees a generic
// message.
func TestServerError(t *testing.T) {
	rec := httptest.NewRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ServerError(rec, logger, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "internal server error", env.Error)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestRawJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RawJSON(rec, []byte(`{"success":true}`), `W/"abc"`, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `W/"abc"`, rec.Header().Get("ETag"))
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	RawJSON(rec, []byte(`{}`), `W/"abc"`, false)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
}

func TestNotModified(t *testing.T) {
	rec := httptest.NewRecorder()
	NotModified(rec, `W/"abc"`)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Equal(t, `W/"abc"`, rec.Header().Get("ETag"))
	assert.Empty(t, rec.Body.String())
}

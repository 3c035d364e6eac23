package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WayPool/ElysiumBOT-sub001/internal/shared/testutil"
)

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestNewErrorHandler(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	h := NewErrorHandler(logger, true)
	assert.True(t, h.includeStack)
	assert.NotNil(t, h.logger)

	assert.NotNil(t, NewErrorHandler(nil, false).logger)
}

func TestErrorHandler_ErrorToProblem(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, TypeTimeout},
		{"wrapped cancel", fmt.Errorf("read: %w", context.Canceled), http.StatusGatewayTimeout, TypeTimeout},
		{"body too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge, TypePayloadTooLarge},
		{"api missing file", ErrMissingFile, http.StatusBadRequest, TypeValidation},
		{"api unavailable", ErrServiceUnavailable, http.StatusServiceUnavailable, TypeServiceDown},
		{"api rate limit", ErrRateLimitExceeded, http.StatusTooManyRequests, TypeRateLimit},
		{"admission", NewAdmissionError("extension not allowed", nil), http.StatusUnprocessableEntity, TypeImportRejected},
		{"empty", NewEmptyFileError("empty"), http.StatusUnprocessableEntity, TypeImportEmpty},
		{"schema", fmt.Errorf("parse: %w", NewSchemaError([]string{"symbol"})), http.StatusUnprocessableEntity, TypeImportSchema},
		{"read", NewReadError("stream closed", nil), http.StatusBadRequest, TypeImportUnreadable},
		{"config", NewConfigError("bad", nil), http.StatusInternalServerError, TypeConfig},
		{"plain", fmt.Errorf("something"), http.StatusInternalServerError, TypeInternal},
	}

	h := NewErrorHandler(nil, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/v1/imports/validate", nil)
			problem := h.ErrorToProblem(tt.err, r)
			assert.Equal(t, tt.wantStatus, problem.Status)
			assert.Equal(t, tt.wantType, problem.Type)
			assert.Equal(t, "/api/v1/imports/validate", problem.Instance)
		})
	}
}

func TestErrorHandler_AppErrorHidesInternalDetail(t *testing.T) {
	h := NewErrorHandler(nil, false)
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	problem := h.ErrorToProblem(NewConfigError("secret path /etc/x", nil).WithContext("path", "/etc/x"), r)
	assert.NotContains(t, problem.Detail, "/etc/x")
	assert.NotContains(t, problem.Extensions, "details")

	problem = h.ErrorToProblem(NewSchemaError([]string{"symbol"}), r)
	assert.Equal(t, "missing required columns: symbol", problem.Detail)
	assert.Contains(t, problem.Extensions, "details")
}

func TestErrorHandler_HandleError(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, false)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/imports/validate", nil)
	r = r.WithContext(context.WithValue(r.Context(), middleware.RequestIDKey, "req-1"))
	w := httptest.NewRecorder()

	h.HandleError(w, r, ErrMissingFile)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeProblem(t, w)
	assert.Equal(t, "req-1", body["trace_id"])
	assert.Equal(t, "MISSING_FILE", body["error_code"])
	assert.NotContains(t, body, "stack")

	testutil.AssertLogContains(t, logs, slog.LevelError, "request failed")
	testutil.AssertLogAttr(t, logs, "component", "error_handler")
}

func TestErrorHandler_HandleErrorNil(t *testing.T) {
	h := NewErrorHandler(nil, false)
	w := httptest.NewRecorder()
	h.HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Equal(t, 0, w.Body.Len())
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	h := NewErrorHandler(logger, true)

	w := httptest.NewRecorder()
	h.HandlePanic(w, httptest.NewRequest(http.MethodGet, "/", nil), "kaboom")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeProblem(t, w)
	assert.Equal(t, "kaboom", body["panic"])
	assert.NotEmpty(t, body["stack"])
	assert.True(t, logs.ContainsMessage("panic recovered"))
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	h := NewErrorHandler(nil, false)

	w := httptest.NewRecorder()
	h.NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, TypeNotFound, decodeProblem(t, w)["type"])

	w = httptest.NewRecorder()
	h.MethodNotAllowed(w, httptest.NewRequest(http.MethodDelete, "/api/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, decodeProblem(t, w)["detail"], "DELETE")
}

func TestErrorHandler_JSON(t *testing.T) {
	h := NewErrorHandler(nil, false)
	w := httptest.NewRecorder()

	h.JSON(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusAccepted, map[string]string{"ok": "yes"})
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"ok":"yes"}`, w.Body.String())
}

func TestErrorHandlerConcurrency(t *testing.T) {
	h := NewErrorHandler(nil, false)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/%d", n), nil)
			h.HandleError(w, r, NewReadError("closed", nil))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}(i)
	}
	wg.Wait()
}

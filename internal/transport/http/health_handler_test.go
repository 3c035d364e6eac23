package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WayPool/ElysiumBOT-sub001/internal/config"
	"github.com/WayPool/ElysiumBOT-sub001/internal/services"
	"github.com/WayPool/ElysiumBOT-sub001/internal/shared/testutil"
	"github.com/WayPool/ElysiumBOT-sub001/internal/tradeimport"
	"github.com/WayPool/ElysiumBOT-sub001/pkg/contracts"
)

func newHealthRouter(t *testing.T, withEngine bool) *chi.Mux {
	t.Helper()

	logger, _ := testutil.NewTestLogger(t)
	var engine *tradeimport.Engine
	if withEngine {
		engine = tradeimport.New(config.DefaultImport(), logger)
	}
	imports := services.NewImportService(engine, 2, logger)
	handler := NewHealthHandler(services.NewHealthService(contracts.Version, imports, logger), logger)

	r := chi.NewRouter()
	r.Mount(config.HealthEndpoint, handler.Routes())
	r.Get("/api/version", handler.Version)
	return r
}

func getJSON(t *testing.T, router http.Handler, target string) (int, map[string]interface{}) {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealthHandler(t *testing.T) {
	router := newHealthRouter(t, true)

	tests := []struct {
		name       string
		target     string
		wantStatus string
	}{
		{"health", "/api/health", "ok"},
		{"ready", "/api/health/ready", "ready"},
		{"live", "/api/health/live", "alive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := getJSON(t, router, tt.target)
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, tt.wantStatus, body["status"])
			assert.Equal(t, contracts.Version, body["version"])
		})
	}
}

func TestHealthHandlerNotReady(t *testing.T) {
	router := newHealthRouter(t, false)

	code, body := getJSON(t, router, "/api/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not_ready", body["status"])

	code, _ = getJSON(t, router, "/api/health")
	assert.Equal(t, http.StatusOK, code)
}

func TestHealthHandlerVersion(t *testing.T) {
	router := newHealthRouter(t, true)

	code, body := getJSON(t, router, "/api/version")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, contracts.Version, body["version"])
	assert.Equal(t, contracts.ReportFormatVersion, body["report_format"])
}

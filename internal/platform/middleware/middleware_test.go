// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/catalogo-jogos/internal/platform/constants"
	"github.com/taibuivan/catalogo-jogos/internal/platform/ctxutil"
	"github.com/taibuivan/catalogo-jogos/internal/platform/metrics"
	"github.com/taibuivan/catalogo-jogos/internal/platform/middleware"
)

type stubConfig struct {
	development bool
	origins     []string
}

func (c stubConfig) IsDevelopment() bool      { return c.development }
func (c stubConfig) AllowedOrigins() []string { return c.origins }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

/*
TestRequestID_GeneratesAndPropagates checks both the generated and client-provided paths.
*/
func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	// 1. Generated when absent
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))

	// 2. Client value is kept
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "client-id")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "client-id", seen)
	assert.Equal(t, "client-id", recorder.Header().Get(constants.HeaderXRequestID))
}

/*
TestStructuredLogger_LogsStatus verifies the final log line and the injected logger.
*/
func TestStructuredLogger_LogsStatus(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))

	handler := middleware.StructuredLogger(logger)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.NotEqual(t, slog.Default(), ctxutil.GetLogger(request.Context()))
		writer.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/jogos", nil))

	output := buffer.String()
	assert.Contains(t, output, `"msg":"http_request_finished"`)
	assert.Contains(t, output, `"status":418`)
	assert.Contains(t, output, `"level":"WARN"`)
	assert.Contains(t, output, `"path":"/api/v1/jogos"`)
}

/*
TestPanicRecovery_Returns500 verifies that panics become a JSON 500.
*/
func TestPanicRecovery_Returns500(t *testing.T) {
	handler := middleware.PanicRecovery(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}

/*
TestCORS_Policy covers development, allow-listed and rejected origins.
*/
func TestCORS_Policy(t *testing.T) {
	next := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name      string
		cfg       stubConfig
		origin    string
		wantAllow bool
	}{
		{"development_allows_all", stubConfig{development: true}, "http://localhost:3000", true},
		{"listed_origin", stubConfig{origins: []string{"https://catalogo.example"}}, "https://catalogo.example", true},
		{"unlisted_origin", stubConfig{origins: []string{"https://catalogo.example"}}, "https://evil.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set(constants.HeaderOrigin, tt.origin)
			recorder := httptest.NewRecorder()

			middleware.CORS(tt.cfg)(next).ServeHTTP(recorder, request)

			if tt.wantAllow {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
			assert.Equal(t, http.StatusOK, recorder.Code)
		})
	}
}

/*
TestCORS_Preflight short-circuits OPTIONS pre-flight requests.
*/
func TestCORS_Preflight(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	request := httptest.NewRequest(http.MethodOptions, "/api/v1/jogos", nil)
	request.Header.Set(constants.HeaderOrigin, "http://localhost:3000")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder := httptest.NewRecorder()

	middleware.CORS(stubConfig{development: true})(next).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.False(t, called)
}

/*
TestMetrics_UsesRoutePattern verifies the route label comes from chi, not the raw path.
*/
func TestMetrics_UsesRoutePattern(t *testing.T) {
	recorder := metrics.NewRecorder()

	router := chi.NewRouter()
	router.Use(middleware.Metrics(recorder))
	router.Get("/jogos/{id}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/jogos/abc", nil))

	exposition := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(exposition, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := exposition.Body.String()
	assert.Contains(t, body, `route="/jogos/{id}"`)
	assert.Contains(t, body, `status="204"`)
	assert.NotContains(t, body, `route="/jogos/abc"`)
}

/*
TestRealIP checks proxy header precedence.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "203.0.113.7, 10.0.0.2")
	assert.Equal(t, "203.0.113.7", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXRealIP, "198.51.100.1")
	assert.Equal(t, "198.51.100.1", middleware.RealIP(request))
}

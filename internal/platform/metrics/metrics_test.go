// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_NilIsSafe(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.RecordHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
		r.RecordMutation("create", OutcomeSuccess)
	})
	assert.Nil(t, r.Registry())

	recorder := httptest.NewRecorder()
	r.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestRecorder_Counts(t *testing.T) {
	r := NewRecorder()

	r.RecordHTTPRequest(http.MethodGet, "/api/v1/jogos/", http.StatusOK, 5*time.Millisecond)
	r.RecordHTTPRequest(http.MethodGet, "/api/v1/jogos/", http.StatusOK, 7*time.Millisecond)
	r.RecordMutation("create", OutcomeRejected)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.requests.WithLabelValues(http.MethodGet, "/api/v1/jogos/", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.mutations.WithLabelValues("create", OutcomeRejected)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.mutations.WithLabelValues("create", OutcomeSuccess)))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.RecordMutation("delete", OutcomeSuccess)

	recorder := httptest.NewRecorder()
	r.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `catalogo_jogos_game_mutations_total{operation="delete",outcome="success"} 1`)
}

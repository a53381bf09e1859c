package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestGetHealth(t *testing.T) {
	r := newTestRouter(&fakeAgent{}, &fakeHistory{}, staticToken)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"healthy","agent":"saas-opportunity-bot"}`, w.Body.String())
}

func TestGetInfo(t *testing.T) {
	r := newTestRouter(&fakeAgent{}, &fakeHistory{}, staticToken)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var res InfoResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SaaS Opportunity Bot", res.Name)
	assert.Equal(t, "1.0.0", res.Version)
	assert.Equal(t, "/api/saas-opportunity-agent", res.Endpoint)
}

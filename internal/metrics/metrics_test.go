package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordUpstream(t *testing.T) {
	before := testutil.ToFloat64(upstreamRequests.WithLabelValues("hackernews", "error"))

	RecordUpstream("hackernews", errors.New("timeout"))
	RecordUpstream("hackernews", nil)

	assert.Equal(t, before+1, testutil.ToFloat64(upstreamRequests.WithLabelValues("hackernews", "error")))
}

func TestHandler_ExposesCounters(t *testing.T) {
	RecordOpportunity("reddit", "post")
	RecordAgentRequest("scan", true)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, true, strings.Contains(body, "oppbot_opportunities_found_total"))
	assert.Equal(t, true, strings.Contains(body, `oppbot_agent_requests_total{action="scan",success="true"}`))
}

func TestObserveScan(t *testing.T) {
	done := ObserveScan("reddit")
	done()

	assert.Equal(t, true, testutil.CollectAndCount(scanDuration, "oppbot_scan_duration_seconds") >= 1)
}
